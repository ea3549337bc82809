package eventbus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	nc "github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// StreamName is the JetStream stream holding every ledger event.
const (
	StreamName    = "EUCHRE"
	StreamSubject = "euchre.>"
)

// ensureStream creates the ledger stream, or adds the subject to an existing
// stream of the same name.
func ensureStream(ctx context.Context, url string, options []nc.Option, logger *slog.Logger) error {
	conn, err := nc.Connect(url, options...)
	if err != nil {
		return fmt.Errorf("failed to connect to NATS: %w", err)
	}
	defer conn.Close()

	js, err := jetstream.New(conn)
	if err != nil {
		return fmt.Errorf("failed to create JetStream context: %w", err)
	}

	stream, err := js.Stream(ctx, StreamName)
	if errors.Is(err, jetstream.ErrStreamNotFound) {
		if _, err := js.CreateStream(ctx, jetstream.StreamConfig{
			Name:     StreamName,
			Subjects: []string{StreamSubject},
		}); err != nil {
			return fmt.Errorf("failed to create stream: %w", err)
		}
		logger.InfoContext(ctx, "Created JetStream stream", slog.String("stream", StreamName))
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to check stream: %w", err)
	}

	info, err := stream.Info(ctx)
	if err != nil {
		return fmt.Errorf("failed to get stream info: %w", err)
	}
	for _, subject := range info.Config.Subjects {
		if subject == StreamSubject {
			return nil
		}
	}

	info.Config.Subjects = append(info.Config.Subjects, StreamSubject)
	if _, err := js.UpdateStream(ctx, info.Config); err != nil {
		return fmt.Errorf("failed to update stream subjects: %w", err)
	}
	logger.InfoContext(ctx, "Stream updated with ledger subject", slog.String("stream", StreamName))
	return nil
}
