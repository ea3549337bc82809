package statsrouter

import (
	"context"
	"fmt"
	"log/slog"

	gameevents "github.com/Black-And-White-Club/euchre-bot/app/modules/game/infrastructure/events"
	statssubscribers "github.com/Black-And-White-Club/euchre-bot/app/modules/stats/infrastructure/subscribers"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/components/metrics"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

// EventRouter consumes ledger events for the stats module.
type EventRouter struct {
	Router     *message.Router
	subscriber message.Subscriber
	logger     *slog.Logger
}

// NewEventRouter creates the watermill router. reg may be nil to skip router
// metrics.
func NewEventRouter(logger *slog.Logger, subscriber message.Subscriber, reg prometheus.Registerer) (*EventRouter, error) {
	router, err := message.NewRouter(message.RouterConfig{}, watermill.NewSlogLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create stats router: %w", err)
	}

	if reg != nil {
		builder := metrics.NewPrometheusMetricsBuilder(reg, "euchre", "stats")
		builder.AddPrometheusRouterMetrics(router)
	}

	return &EventRouter{
		Router:     router,
		subscriber: subscriber,
		logger:     logger,
	}, nil
}

// Configure subscribes the cache invalidator to every ledger topic.
func (r *EventRouter) Configure(invalidator *statssubscribers.CacheInvalidator) {
	r.Router.AddMiddleware(
		middleware.CorrelationID,
		middleware.Recoverer,
	)

	for _, topic := range gameevents.AllTopics {
		r.Router.AddNoPublisherHandler(
			"stats."+topic,
			topic,
			r.subscriber,
			invalidator.Handle,
		)
	}
}

// Run blocks until ctx is canceled or the router is closed.
func (r *EventRouter) Run(ctx context.Context) error {
	return r.Router.Run(ctx)
}

func (r *EventRouter) Close() error {
	return r.Router.Close()
}
