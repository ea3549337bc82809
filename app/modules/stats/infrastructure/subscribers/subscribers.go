package statssubscribers

import (
	"encoding/json"
	"log/slog"

	gameevents "github.com/Black-And-White-Club/euchre-bot/app/modules/game/infrastructure/events"
	"github.com/Black-And-White-Club/euchre-bot/internal/observability/attr"
	"github.com/ThreeDotsLabs/watermill/message"
)

// Invalidator drops cached aggregates.
type Invalidator interface {
	InvalidateCache()
}

// CacheInvalidator clears the stats cache whenever a ledger event arrives.
type CacheInvalidator struct {
	cache  Invalidator
	logger *slog.Logger
}

func NewCacheInvalidator(cache Invalidator, logger *slog.Logger) *CacheInvalidator {
	return &CacheInvalidator{cache: cache, logger: logger}
}

// Handle never fails: an undecodable payload still means the ledger changed.
func (c *CacheInvalidator) Handle(msg *message.Message) error {
	c.cache.InvalidateCache()

	var env gameevents.Envelope
	if err := json.Unmarshal(msg.Payload, &env); err != nil {
		c.logger.WarnContext(msg.Context(), "Undecodable ledger event",
			attr.String("message_id", msg.UUID),
			attr.String("topic", msg.Metadata.Get("topic")),
			attr.Error(err),
		)
		return nil
	}

	c.logger.DebugContext(msg.Context(), "Stats cache invalidated by ledger event",
		attr.String("topic", msg.Metadata.Get("topic")),
		attr.String("correlation_id", msg.Metadata.Get("correlation_id")),
		attr.GameID(env.ID()),
	)
	return nil
}
