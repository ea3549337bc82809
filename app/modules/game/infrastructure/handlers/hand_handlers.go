package gamehandlers

import (
	"net/http"

	gameservice "github.com/Black-And-White-Club/euchre-bot/app/modules/game/application"
	"github.com/Black-And-White-Club/euchre-bot/internal/httpserver"
	"github.com/Black-And-White-Club/euchre-bot/internal/observability/attr"
)

func (h *GameHandlers) HandleListHands(w http.ResponseWriter, r *http.Request) {
	gameID, err := pathID(r, "gameID")
	if err != nil {
		httpserver.WriteError(w, http.StatusBadRequest, "invalid game id")
		return
	}

	hands, err := h.service.ListHands(r.Context(), gameID)
	if err != nil {
		h.writeServiceError(w, r, "ListHands", err)
		return
	}
	httpserver.WriteJSON(w, http.StatusOK, hands)
}

func (h *GameHandlers) HandlePreviewHand(w http.ResponseWriter, r *http.Request) {
	gameID, err := pathID(r, "gameID")
	if err != nil {
		httpserver.WriteError(w, http.StatusBadRequest, "invalid game id")
		return
	}

	var in gameservice.HandInput
	if err := decodeBody(r, &in); err != nil {
		httpserver.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	preview, err := h.service.PreviewHand(r.Context(), gameID, in)
	if err != nil {
		h.writeServiceError(w, r, "PreviewHand", err)
		return
	}
	httpserver.WriteJSON(w, http.StatusOK, preview)
}

// HandleAppendHand records a hand. A hand that would end the game is only
// recorded when the request carries confirm=true; otherwise the preview is
// returned with 409 so the operator can confirm it.
func (h *GameHandlers) HandleAppendHand(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "GameHandlers.HandleAppendHand")
	defer span.End()

	gameID, err := pathID(r, "gameID")
	if err != nil {
		httpserver.WriteError(w, http.StatusBadRequest, "invalid game id")
		return
	}

	var req appendHandRequest
	if err := decodeBody(r, &req); err != nil {
		httpserver.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if !req.Confirm {
		preview, err := h.service.PreviewHand(ctx, gameID, req.HandInput)
		if err != nil {
			h.writeServiceError(w, r, "PreviewHand", err)
			return
		}
		if preview.EndsGame {
			h.logger.InfoContext(ctx, "Game-ending hand awaiting confirmation",
				attr.ExtractCorrelationID(ctx),
				attr.GameID(gameID),
				attr.String("winner", preview.Winner),
			)
			httpserver.WriteJSON(w, http.StatusConflict, map[string]any{
				"error":   "hand ends the game; resubmit with confirm=true",
				"preview": preview,
			})
			return
		}
	}

	hand, err := h.service.AppendHand(ctx, gameID, req.HandInput)
	if err != nil {
		h.writeServiceError(w, r, "AppendHand", err)
		return
	}
	httpserver.WriteJSON(w, http.StatusCreated, hand)
}

func (h *GameHandlers) HandleUndoLastHand(w http.ResponseWriter, r *http.Request) {
	gameID, err := pathID(r, "gameID")
	if err != nil {
		httpserver.WriteError(w, http.StatusBadRequest, "invalid game id")
		return
	}

	removed, err := h.service.UndoLastHand(r.Context(), gameID)
	if err != nil {
		h.writeServiceError(w, r, "UndoLastHand", err)
		return
	}
	if !removed {
		httpserver.WriteError(w, http.StatusNotFound, "game has no hands")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *GameHandlers) HandleUpdateHand(w http.ResponseWriter, r *http.Request) {
	gameID, err := pathID(r, "gameID")
	if err != nil {
		httpserver.WriteError(w, http.StatusBadRequest, "invalid game id")
		return
	}
	handID, err := pathID(r, "handID")
	if err != nil {
		httpserver.WriteError(w, http.StatusBadRequest, "invalid hand id")
		return
	}

	var upd gameservice.HandUpdate
	if err := decodeBody(r, &upd); err != nil {
		httpserver.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	hand, err := h.service.UpdateHand(r.Context(), gameID, handID, upd)
	if err != nil {
		h.writeServiceError(w, r, "UpdateHand", err)
		return
	}
	httpserver.WriteJSON(w, http.StatusOK, hand)
}
