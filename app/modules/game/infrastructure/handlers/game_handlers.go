package gamehandlers

import (
	"net/http"

	gameservice "github.com/Black-And-White-Club/euchre-bot/app/modules/game/application"
	gamedb "github.com/Black-And-White-Club/euchre-bot/app/modules/game/infrastructure/repositories"
	"github.com/Black-And-White-Club/euchre-bot/internal/httpserver"
	"github.com/Black-And-White-Club/euchre-bot/internal/observability/attr"
)

func (h *GameHandlers) HandleCreateGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "GameHandlers.HandleCreateGame")
	defer span.End()

	var req gameservice.CreateGameRequest
	if err := decodeBody(r, &req); err != nil {
		httpserver.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	game, err := h.service.CreateGame(ctx, req)
	if err != nil {
		h.writeServiceError(w, r, "CreateGame", err)
		return
	}

	h.logger.InfoContext(ctx, "Game created",
		attr.ExtractCorrelationID(ctx),
		attr.GameID(game.ID),
	)
	httpserver.WriteJSON(w, http.StatusCreated, game)
}

func (h *GameHandlers) HandleListGames(w http.ResponseWriter, r *http.Request) {
	var filter gamedb.StatusFilter
	switch status := r.URL.Query().Get("status"); status {
	case "", "all":
		filter = gamedb.FilterAll
	case "active":
		filter = gamedb.FilterActive
	case "finished":
		filter = gamedb.FilterFinished
	default:
		httpserver.WriteError(w, http.StatusBadRequest, "status must be one of all, active, finished")
		return
	}

	games, err := h.service.ListGames(r.Context(), filter)
	if err != nil {
		h.writeServiceError(w, r, "ListGames", err)
		return
	}
	httpserver.WriteJSON(w, http.StatusOK, games)
}

func (h *GameHandlers) HandleGetGame(w http.ResponseWriter, r *http.Request) {
	gameID, err := pathID(r, "gameID")
	if err != nil {
		httpserver.WriteError(w, http.StatusBadRequest, "invalid game id")
		return
	}

	game, err := h.service.GetGame(r.Context(), gameID)
	if err != nil {
		h.writeServiceError(w, r, "GetGame", err)
		return
	}
	httpserver.WriteJSON(w, http.StatusOK, game)
}

func (h *GameHandlers) HandleDeleteGame(w http.ResponseWriter, r *http.Request) {
	gameID, err := pathID(r, "gameID")
	if err != nil {
		httpserver.WriteError(w, http.StatusBadRequest, "invalid game id")
		return
	}

	if err := h.service.DeleteGame(r.Context(), gameID); err != nil {
		h.writeServiceError(w, r, "DeleteGame", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *GameHandlers) HandleRecalculateGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "GameHandlers.HandleRecalculateGame")
	defer span.End()

	gameID, err := pathID(r, "gameID")
	if err != nil {
		httpserver.WriteError(w, http.StatusBadRequest, "invalid game id")
		return
	}

	report, err := h.service.RecalculateGame(ctx, gameID)
	if err != nil {
		h.writeServiceError(w, r, "RecalculateGame", err)
		return
	}
	httpserver.WriteJSON(w, http.StatusOK, report)
}
