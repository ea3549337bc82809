package httpserver

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Black-And-White-Club/euchre-bot/config"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(secret string, burst int) *Server {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	metrics := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("# metrics"))
	})
	s := New(
		config.HTTPConfig{Addr: ":0", RateLimit: 1, RateBurst: burst, AllowedOrigins: []string{"https://score.example"}},
		config.JWTConfig{Secret: secret, Issuer: "euchre-bot"},
		metrics,
		logger,
	)
	s.Router.Group(func(r chi.Router) {
		r.Use(s.Mutating()...)
		r.Post("/mutate", func(w http.ResponseWriter, r *http.Request) {
			claims, ok := OperatorFromContext(r.Context())
			if ok {
				_, _ = w.Write([]byte(claims.Subject))
			}
		})
	})
	return s
}

func TestServer_HealthAndMetrics(t *testing.T) {
	s := newTestServer("", 10)

	rr := httptest.NewRecorder()
	s.Router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	s.AddHealthCheck("postgres", func(ctx context.Context) error { return errors.New("down") })
	rr = httptest.NewRecorder()
	s.Router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Contains(t, rr.Body.String(), "down")

	rr = httptest.NewRecorder()
	s.Router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, "# metrics", rr.Body.String())
}

func TestServer_BearerAuth(t *testing.T) {
	s := newTestServer("secret", 10)
	token, err := NewTokenProvider("secret", "euchre-bot", "").GenerateToken("scorekeeper", time.Hour)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	s.Router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/mutate", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	req := httptest.NewRequest(http.MethodPost, "/mutate", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr = httptest.NewRecorder()
	s.Router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "scorekeeper", rr.Body.String())
}

func TestServer_AuthDisabledWithoutSecret(t *testing.T) {
	s := newTestServer("", 10)

	rr := httptest.NewRecorder()
	s.Router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/mutate", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestServer_RateLimit(t *testing.T) {
	s := newTestServer("", 2)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/mutate", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rr := httptest.NewRecorder()
		s.Router.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestCORSMiddleware(t *testing.T) {
	s := newTestServer("", 10)

	req := httptest.NewRequest(http.MethodOptions, "/mutate", nil)
	req.Header.Set("Origin", "https://score.example")
	rr := httptest.NewRecorder()
	s.Router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "https://score.example", rr.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/mutate", nil)
	req.Header.Set("Origin", "https://evil.example")
	rr = httptest.NewRecorder()
	s.Router.ServeHTTP(rr, req)
	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
}
