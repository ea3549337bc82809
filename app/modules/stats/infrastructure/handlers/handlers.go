package statshandlers

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	gameservice "github.com/Black-And-White-Club/euchre-bot/app/modules/game/application"
	statsservice "github.com/Black-And-White-Club/euchre-bot/app/modules/stats/application"
	"github.com/Black-And-White-Club/euchre-bot/internal/httpserver"
	"github.com/Black-And-White-Club/euchre-bot/internal/observability/attr"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Handlers serves read-only ledger statistics over HTTP.
type Handlers interface {
	HandleOverview(w http.ResponseWriter, r *http.Request)
	HandleCallStats(w http.ResponseWriter, r *http.Request)
	HandlePlayerStats(w http.ResponseWriter, r *http.Request)
	HandleTeamStats(w http.ResponseWriter, r *http.Request)
	HandlePlayerList(w http.ResponseWriter, r *http.Request)
	HandlePlayerTeams(w http.ResponseWriter, r *http.Request)
	HandleGameCalls(w http.ResponseWriter, r *http.Request)
	HandleScoreHistory(w http.ResponseWriter, r *http.Request)
	HandleScoreChart(w http.ResponseWriter, r *http.Request)
	HandleExport(w http.ResponseWriter, r *http.Request)
}

type StatsHandlers struct {
	service statsservice.Service
	logger  *slog.Logger
	now     func() time.Time
}

func NewStatsHandlers(service statsservice.Service, logger *slog.Logger) Handlers {
	return &StatsHandlers{service: service, logger: logger, now: time.Now}
}

func (h *StatsHandlers) filter(r *http.Request) (statsservice.Filter, error) {
	since, err := statsservice.ParseSince(r.URL.Query().Get("since"), h.now())
	if err != nil {
		return statsservice.Filter{}, err
	}
	return statsservice.Filter{Since: since}, nil
}

func (h *StatsHandlers) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, gameservice.ErrGameNotFound):
		httpserver.WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, statsservice.ErrInvalidSince):
		httpserver.WriteError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.ErrorContext(r.Context(), "Stats request failed",
			attr.ExtractCorrelationID(r.Context()),
			attr.String("operation", op),
			attr.Error(err),
		)
		httpserver.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}

func (h *StatsHandlers) HandleOverview(w http.ResponseWriter, r *http.Request) {
	f, err := h.filter(r)
	if err != nil {
		h.fail(w, r, "Overview", err)
		return
	}
	o, err := h.service.Overview(r.Context(), f)
	if err != nil {
		h.fail(w, r, "Overview", err)
		return
	}
	httpserver.WriteJSON(w, http.StatusOK, o)
}

func (h *StatsHandlers) HandleCallStats(w http.ResponseWriter, r *http.Request) {
	f, err := h.filter(r)
	if err != nil {
		h.fail(w, r, "CallValueStats", err)
		return
	}
	stats, err := h.service.CallValueStats(r.Context(), f)
	if err != nil {
		h.fail(w, r, "CallValueStats", err)
		return
	}
	httpserver.WriteJSON(w, http.StatusOK, stats)
}

func (h *StatsHandlers) HandlePlayerStats(w http.ResponseWriter, r *http.Request) {
	f, err := h.filter(r)
	if err != nil {
		h.fail(w, r, "PlayerStats", err)
		return
	}
	stats, err := h.service.PlayerStats(r.Context(), f)
	if err != nil {
		h.fail(w, r, "PlayerStats", err)
		return
	}
	httpserver.WriteJSON(w, http.StatusOK, stats)
}

func (h *StatsHandlers) HandleTeamStats(w http.ResponseWriter, r *http.Request) {
	f, err := h.filter(r)
	if err != nil {
		h.fail(w, r, "TeamStats", err)
		return
	}
	stats, err := h.service.TeamStats(r.Context(), f)
	if err != nil {
		h.fail(w, r, "TeamStats", err)
		return
	}
	httpserver.WriteJSON(w, http.StatusOK, stats)
}

func (h *StatsHandlers) HandlePlayerList(w http.ResponseWriter, r *http.Request) {
	players, err := h.service.Players(r.Context())
	if err != nil {
		h.fail(w, r, "Players", err)
		return
	}
	httpserver.WriteJSON(w, http.StatusOK, players)
}

func (h *StatsHandlers) HandlePlayerTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.service.PlayerTeams(r.Context())
	if err != nil {
		h.fail(w, r, "PlayerTeams", err)
		return
	}
	httpserver.WriteJSON(w, http.StatusOK, teams)
}

func gameID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "gameID"))
	if err != nil {
		httpserver.WriteError(w, http.StatusBadRequest, "invalid game id")
		return uuid.Nil, false
	}
	return id, true
}

func (h *StatsHandlers) HandleGameCalls(w http.ResponseWriter, r *http.Request) {
	id, ok := gameID(w, r)
	if !ok {
		return
	}
	stats, err := h.service.GameCallBreakdown(r.Context(), id)
	if err != nil {
		h.fail(w, r, "GameCallBreakdown", err)
		return
	}
	httpserver.WriteJSON(w, http.StatusOK, stats)
}

func (h *StatsHandlers) HandleScoreHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := gameID(w, r)
	if !ok {
		return
	}
	history, err := h.service.ScoreHistory(r.Context(), id)
	if err != nil {
		h.fail(w, r, "ScoreHistory", err)
		return
	}
	httpserver.WriteJSON(w, http.StatusOK, history)
}

func (h *StatsHandlers) HandleScoreChart(w http.ResponseWriter, r *http.Request) {
	id, ok := gameID(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := h.service.RenderScoreChart(r.Context(), id, &buf); err != nil {
		h.fail(w, r, "RenderScoreChart", err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = buf.WriteTo(w)
}

func (h *StatsHandlers) HandleExport(w http.ResponseWriter, r *http.Request) {
	id, ok := gameID(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := h.service.ExportGame(r.Context(), id, &buf); err != nil {
		h.fail(w, r, "ExportGame", err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="euchre-%s.xlsx"`, id))
	_, _ = buf.WriteTo(w)
}
