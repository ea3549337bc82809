// Package eventbus provides the watermill publisher/subscriber pair used for
// domain events. NATS JetStream is used when a URL is configured; otherwise events
// stay in-process on a go channel.
package eventbus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/euchre-bot/config"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	nc "github.com/nats-io/nats.go"
	"github.com/nats-io/nkeys"
)

// EventBus publishes and subscribes to watermill messages.
type EventBus interface {
	message.Publisher
	message.Subscriber
}

type eventBus struct {
	publisher  message.Publisher
	subscriber message.Subscriber
	logger     *slog.Logger

	// shared is set when publisher and subscriber are the same go channel.
	shared bool
}

// New builds an EventBus from configuration.
func New(ctx context.Context, cfg config.NATSConfig, logger *slog.Logger) (EventBus, error) {
	wmLogger := watermill.NewSlogLogger(logger)

	if cfg.URL == "" {
		logger.InfoContext(ctx, "NATS not configured, using in-process event bus")
		return NewInMemory(wmLogger), nil
	}

	options, err := natsOptions(cfg)
	if err != nil {
		return nil, err
	}

	if err := ensureStream(ctx, cfg.URL, options, logger); err != nil {
		return nil, err
	}

	marshaler := &nats.NATSMarshaler{}
	jsConfig := nats.JetStreamConfig{
		AutoProvision: false,
		SubscribeOptions: []nc.SubOpt{
			nc.DeliverNew(),
			nc.AckExplicit(),
		},
	}

	publisher, err := nats.NewPublisher(
		nats.PublisherConfig{
			URL:               cfg.URL,
			Marshaler:         marshaler,
			NatsOptions:       options,
			JetStream:         jsConfig,
			SubjectCalculator: nats.DefaultSubjectCalculator,
		},
		wmLogger,
	)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to create Watermill publisher", slog.Any("error", err))
		return nil, fmt.Errorf("failed to create NATS publisher: %w", err)
	}

	subscriber, err := nats.NewSubscriber(
		nats.SubscriberConfig{
			URL:               cfg.URL,
			QueueGroupPrefix:  "euchre",
			CloseTimeout:      30 * time.Second,
			AckWaitTimeout:    30 * time.Second,
			NatsOptions:       options,
			Unmarshaler:       marshaler,
			JetStream:         jsConfig,
			SubjectCalculator: nats.DefaultSubjectCalculator,
		},
		wmLogger,
	)
	if err != nil {
		_ = publisher.Close()
		logger.ErrorContext(ctx, "Failed to create Watermill subscriber", slog.Any("error", err))
		return nil, fmt.Errorf("failed to create NATS subscriber: %w", err)
	}

	logger.InfoContext(ctx, "Connected event bus to NATS", slog.String("url", cfg.URL))
	return &eventBus{publisher: publisher, subscriber: subscriber, logger: logger}, nil
}

// NewInMemory returns a go-channel backed bus. Messages published before a
// subscriber exists are dropped.
func NewInMemory(logger watermill.LoggerAdapter) EventBus {
	ch := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 256}, logger)
	return &eventBus{publisher: ch, subscriber: ch, shared: true}
}

func natsOptions(cfg config.NATSConfig) ([]nc.Option, error) {
	options := []nc.Option{
		nc.Name("euchre-bot"),
		nc.RetryOnFailedConnect(true),
		nc.Timeout(30 * time.Second),
		nc.ReconnectWait(time.Second),
	}
	if cfg.NKeySeed == "" {
		return options, nil
	}

	opt, err := nkeyOption(cfg.NKeySeed)
	if err != nil {
		return nil, err
	}
	return append(options, opt), nil
}

// nkeyOption authenticates with a user nkey seed.
func nkeyOption(seed string) (nc.Option, error) {
	kp, err := nkeys.FromSeed([]byte(seed))
	if err != nil {
		return nil, fmt.Errorf("invalid NATS nkey seed: %w", err)
	}
	pub, err := kp.PublicKey()
	if err != nil {
		return nil, fmt.Errorf("failed to derive nkey public key: %w", err)
	}
	return nc.Nkey(pub, kp.Sign), nil
}

func (eb *eventBus) Publish(topic string, messages ...*message.Message) error {
	return eb.publisher.Publish(topic, messages...)
}

func (eb *eventBus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	return eb.subscriber.Subscribe(ctx, topic)
}

func (eb *eventBus) Close() error {
	var errs []error
	if err := eb.publisher.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close publisher: %w", err))
	}
	if !eb.shared {
		if err := eb.subscriber.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close subscriber: %w", err))
		}
	}
	return errors.Join(errs...)
}
