package gameevents

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/Black-And-White-Club/euchre-bot/internal/observability/attr"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
)

// Publisher emits game events.
type Publisher interface {
	Publish(ctx context.Context, topic string, payload any) error
}

// WatermillPublisher marshals payloads to JSON watermill messages.
type WatermillPublisher struct {
	publisher message.Publisher
	logger    *slog.Logger
}

func NewPublisher(publisher message.Publisher, logger *slog.Logger) *WatermillPublisher {
	return &WatermillPublisher{publisher: publisher, logger: logger}
}

func (p *WatermillPublisher) Publish(ctx context.Context, topic string, payload any) error {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload for event %s: %w", topic, err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payloadBytes)
	msg.SetContext(ctx)

	correlationID := attr.ExtractCorrelationID(ctx).Value.String()
	if correlationID == "" {
		correlationID = watermill.NewUUID()
	}
	msg.Metadata.Set(middleware.CorrelationIDMetadataKey, correlationID)
	msg.Metadata.Set("topic", topic)

	p.logger.DebugContext(ctx, "Publishing event",
		attr.String("topic", topic),
		attr.String("correlation_id", correlationID),
		attr.String("message_id", msg.UUID),
	)

	if err := p.publisher.Publish(topic, msg); err != nil {
		return fmt.Errorf("failed to publish event %s: %w", topic, err)
	}
	return nil
}
