// Package observability builds the logger, tracer and metrics registry shared by
// every module.
package observability

import (
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/Black-And-White-Club/euchre-bot/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const serviceName = "euchre-bot"

// Observability groups the telemetry handles injected into modules.
type Observability struct {
	Logger   *slog.Logger
	Tracer   trace.Tracer
	Registry *prometheus.Registry
}

// New builds observability components from configuration.
func New(cfg config.ObservabilityConfig) *Observability {
	return &Observability{
		Logger:   newLogger(os.Stdout, cfg),
		Tracer:   otel.Tracer(serviceName),
		Registry: newRegistry(),
	}
}

// NewNoop returns components that discard everything. Used by tests.
func NewNoop() *Observability {
	return &Observability{
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		Tracer:   noop.NewTracerProvider().Tracer("test"),
		Registry: prometheus.NewRegistry(),
	}
}

// MetricsHandler exposes the registry in the Prometheus text format.
func (o *Observability) MetricsHandler() http.Handler {
	return promhttp.HandlerFor(o.Registry, promhttp.HandlerOpts{Registry: o.Registry})
}

func newLogger(w io.Writer, cfg config.ObservabilityConfig) *slog.Logger {
	level := slog.LevelInfo
	if cfg.LogLevel != "" {
		if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
			level = slog.LevelInfo
		}
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.EqualFold(cfg.Environment, "development") {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	return slog.New(handler).With(
		slog.String("service", serviceName),
		slog.String("environment", cfg.Environment),
	)
}

func newRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}
