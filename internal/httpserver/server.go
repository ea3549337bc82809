// Package httpserver hosts the chi router shared by the module HTTP APIs.
package httpserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Black-And-White-Club/euchre-bot/config"
	"github.com/Black-And-White-Club/euchre-bot/internal/observability/attr"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"
)

// HealthCheck reports whether a dependency is usable.
type HealthCheck func(ctx context.Context) error

// Server wraps an http.Server around a chi router.
type Server struct {
	Router   chi.Router
	server   *http.Server
	logger   *slog.Logger
	limiter  *IPRateLimiter
	provider *TokenProvider
	checks   map[string]HealthCheck
}

// New builds the router with the common middleware stack, /healthz and /metrics.
func New(cfg config.HTTPConfig, jwtCfg config.JWTConfig, metrics http.Handler, logger *slog.Logger) *Server {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(CORSMiddleware(cfg.AllowedOrigins))

	var provider *TokenProvider
	if jwtCfg.Secret != "" {
		provider = NewTokenProvider(jwtCfg.Secret, jwtCfg.Issuer, jwtCfg.Audience)
	} else {
		logger.Warn("JWT secret not configured; mutating routes are unauthenticated")
	}

	s := &Server{
		Router:   r,
		logger:   logger,
		limiter:  NewIPRateLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst),
		provider: provider,
		checks:   make(map[string]HealthCheck),
	}

	r.Get("/healthz", s.handleHealth)
	if metrics != nil {
		r.Handle("/metrics", metrics)
	}

	s.server = &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Mutating returns the middleware applied to routes that change the ledger.
func (s *Server) Mutating() []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		RateLimitMiddleware(s.limiter),
		BearerAuthMiddleware(s.provider, s.logger),
	}
}

// AddHealthCheck registers a named dependency check for /healthz.
func (s *Server) AddHealthCheck(name string, check HealthCheck) {
	s.checks[name] = check
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := map[string]string{}
	healthy := true
	for name, check := range s.checks {
		if err := check(ctx); err != nil {
			status[name] = err.Error()
			healthy = false
			continue
		}
		status[name] = "ok"
	}

	code := http.StatusOK
	if !healthy {
		code = http.StatusServiceUnavailable
	}
	WriteJSON(w, code, map[string]any{"healthy": healthy, "checks": status})
}

// Start serves until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server", attr.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Stopping HTTP server")
	return s.server.Shutdown(ctx)
}
