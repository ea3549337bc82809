package game

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	gameservice "github.com/Black-And-White-Club/euchre-bot/app/modules/game/application"
	gameevents "github.com/Black-And-White-Club/euchre-bot/app/modules/game/infrastructure/events"
	gamehandlers "github.com/Black-And-White-Club/euchre-bot/app/modules/game/infrastructure/handlers"
	gamequeue "github.com/Black-And-White-Club/euchre-bot/app/modules/game/infrastructure/queue"
	gamedb "github.com/Black-And-White-Club/euchre-bot/app/modules/game/infrastructure/repositories"
	gamerouter "github.com/Black-And-White-Club/euchre-bot/app/modules/game/infrastructure/router"
	gamemetrics "github.com/Black-And-White-Club/euchre-bot/app/modules/game/metrics"
	"github.com/Black-And-White-Club/euchre-bot/config"
	"github.com/Black-And-White-Club/euchre-bot/internal/httpserver"
	"github.com/Black-And-White-Club/euchre-bot/internal/observability"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"
)

// Module represents the game ledger module.
type Module struct {
	Service    gameservice.Service
	Queue      gamequeue.QueueService
	logger     *slog.Logger
	cancelFunc context.CancelFunc
}

// NewGameModule wires the ledger service, its HTTP routes and, when withQueue is
// set, the River audit queue.
func NewGameModule(
	ctx context.Context,
	cfg *config.Config,
	obs *observability.Observability,
	db *bun.DB,
	publisher message.Publisher,
	srv *httpserver.Server,
	withQueue bool,
) (*Module, error) {
	logger := obs.Logger.With("module", "game")
	logger.InfoContext(ctx, "Initializing game module")

	metrics := gamemetrics.NewPrometheusMetrics(obs.Registry)

	service := gameservice.NewGameService(
		gamedb.NewRepository(db),
		gameevents.NewPublisher(publisher, logger),
		logger,
		metrics,
		obs.Tracer,
		db,
		cfg.Ledger.DefaultTargetScore,
	)

	if srv != nil {
		handlers := gamehandlers.NewGameHandlers(service, logger, obs.Tracer)
		gamerouter.RegisterRoutes(srv.Router, handlers, srv.Mutating()...)
	}

	module := &Module{
		Service: service,
		logger:  logger,
	}

	if withQueue {
		queue, err := gamequeue.NewService(ctx, cfg.Postgres.DSN, service, cfg.Ledger.AuditInterval, logger, metrics)
		if err != nil {
			return nil, fmt.Errorf("failed to create ledger queue: %w", err)
		}
		module.Queue = queue
		if srv != nil {
			srv.AddHealthCheck("river", queue.HealthCheck)
		}
	}

	return module, nil
}

// Run starts the queue, if any, and blocks until ctx is canceled.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	if wg != nil {
		defer wg.Done()
	}

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	m.logger.InfoContext(ctx, "Starting game module")
	if m.Queue != nil {
		if err := m.Queue.Start(ctx); err != nil {
			m.logger.ErrorContext(ctx, "Failed to start ledger queue", "error", err)
			return
		}
	}

	<-ctx.Done()
	m.logger.Info("Game module goroutine stopped")
}

// Close stops the module.
func (m *Module) Close() error {
	m.logger.Info("Stopping game module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	if m.Queue != nil {
		if err := m.Queue.Stop(context.Background()); err != nil {
			return fmt.Errorf("failed to stop ledger queue: %w", err)
		}
	}

	m.logger.Info("Game module stopped")
	return nil
}
