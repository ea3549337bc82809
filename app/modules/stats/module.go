package stats

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	statsservice "github.com/Black-And-White-Club/euchre-bot/app/modules/stats/application"
	statshandlers "github.com/Black-And-White-Club/euchre-bot/app/modules/stats/infrastructure/handlers"
	statsrouter "github.com/Black-And-White-Club/euchre-bot/app/modules/stats/infrastructure/router"
	statssubscribers "github.com/Black-And-White-Club/euchre-bot/app/modules/stats/infrastructure/subscribers"
	"github.com/Black-And-White-Club/euchre-bot/internal/httpserver"
	"github.com/Black-And-White-Club/euchre-bot/internal/observability"
	"github.com/ThreeDotsLabs/watermill/message"
)

// Module represents the read-only statistics module.
type Module struct {
	Service     statsservice.Service
	eventRouter *statsrouter.EventRouter
	logger      *slog.Logger
	cancelFunc  context.CancelFunc
}

// NewStatsModule wires the stats service over source, its HTTP routes and the
// event router that keeps its cache fresh.
func NewStatsModule(
	ctx context.Context,
	obs *observability.Observability,
	source statsservice.Source,
	subscriber message.Subscriber,
	srv *httpserver.Server,
) (*Module, error) {
	logger := obs.Logger.With("module", "stats")
	logger.InfoContext(ctx, "Initializing stats module")

	service := statsservice.NewStatsService(source, logger, obs.Tracer, obs.Registry)

	if srv != nil {
		statsrouter.RegisterRoutes(srv.Router, statshandlers.NewStatsHandlers(service, logger))
	}

	eventRouter, err := statsrouter.NewEventRouter(logger, subscriber, obs.Registry)
	if err != nil {
		return nil, fmt.Errorf("failed to create stats event router: %w", err)
	}
	eventRouter.Configure(statssubscribers.NewCacheInvalidator(service, logger))

	return &Module{
		Service:     service,
		eventRouter: eventRouter,
		logger:      logger,
	}, nil
}

// Run consumes ledger events until ctx is canceled.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	if wg != nil {
		defer wg.Done()
	}

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	m.logger.InfoContext(ctx, "Starting stats module")
	if err := m.eventRouter.Run(ctx); err != nil {
		m.logger.ErrorContext(ctx, "Stats event router stopped", "error", err)
	}
	m.logger.Info("Stats module goroutine stopped")
}

// Running is closed once the event router has subscribed.
func (m *Module) Running() chan struct{} {
	return m.eventRouter.Router.Running()
}

func (m *Module) Close() error {
	m.logger.Info("Stopping stats module")
	if m.cancelFunc != nil {
		m.cancelFunc()
	}
	return m.eventRouter.Close()
}
