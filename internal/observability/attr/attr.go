// Package attr holds the slog attribute helpers used across the service so log
// keys stay consistent.
package attr

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

func String(key, value string) slog.Attr { return slog.String(key, value) }

func Int(key string, value int) slog.Attr { return slog.Int(key, value) }

func Int64(key string, value int64) slog.Attr { return slog.Int64(key, value) }

func Bool(key string, value bool) slog.Attr { return slog.Bool(key, value) }

func Any(key string, value any) slog.Attr { return slog.Any(key, value) }

func Duration(key string, value time.Duration) slog.Attr { return slog.Duration(key, value) }

// Error renders err under the "error" key. A nil error renders as an empty string.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}
	return slog.String("error", err.Error())
}

func GameID(id uuid.UUID) slog.Attr { return slog.String("game_id", id.String()) }

func HandID(id uuid.UUID) slog.Attr { return slog.String("hand_id", id.String()) }

// ExtractCorrelationID returns the request id assigned by the HTTP middleware, or
// the correlation id stored by the event subscriber.
func ExtractCorrelationID(ctx context.Context) slog.Attr {
	if id := middleware.GetReqID(ctx); id != "" {
		return slog.String("correlation_id", id)
	}
	if id, ok := ctx.Value(correlationKey{}).(string); ok {
		return slog.String("correlation_id", id)
	}
	return slog.String("correlation_id", "")
}

type correlationKey struct{}

// WithCorrelationID stores a correlation id for code paths that do not pass
// through the HTTP middleware.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationKey{}, id)
}
