package gamehandlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	gameservice "github.com/Black-And-White-Club/euchre-bot/app/modules/game/application"
	"github.com/Black-And-White-Club/euchre-bot/internal/httpserver"
	"github.com/Black-And-White-Club/euchre-bot/internal/observability/attr"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

// GameHandlers implements Handlers on top of the game service.
type GameHandlers struct {
	service gameservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewGameHandlers creates a new GameHandlers instance.
func NewGameHandlers(service gameservice.Service, logger *slog.Logger, tracer trace.Tracer) Handlers {
	return &GameHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
	}
}

// appendHandRequest is a hand report plus the operator's confirmation that a
// game-ending hand should be recorded.
type appendHandRequest struct {
	gameservice.HandInput
	Confirm bool `json:"confirm"`
}

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func pathID(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, name))
}

// writeServiceError maps service errors onto status codes. Anything that is not a
// domain error is reported as a 500 and logged.
func (h *GameHandlers) writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, gameservice.ErrGameNotFound), errors.Is(err, gameservice.ErrHandNotFound):
		httpserver.WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, gameservice.ErrGameFinished):
		httpserver.WriteError(w, http.StatusConflict, err.Error())
	case gameservice.IsDomainError(err):
		httpserver.WriteError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.ErrorContext(r.Context(), "Game request failed",
			attr.ExtractCorrelationID(r.Context()),
			attr.String("operation", op),
			attr.Error(err),
		)
		httpserver.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}
