package gamerouter

import (
	"net/http"

	gamehandlers "github.com/Black-And-White-Club/euchre-bot/app/modules/game/infrastructure/handlers"
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts the game ledger API. mutating wraps every route that
// changes a game.
func RegisterRoutes(r chi.Router, h gamehandlers.Handlers, mutating ...func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Get("/api/games", h.HandleListGames)
		r.Get("/api/games/{gameID}", h.HandleGetGame)
		r.Get("/api/games/{gameID}/hands", h.HandleListHands)
		r.Post("/api/games/{gameID}/hands/preview", h.HandlePreviewHand)
	})

	r.Group(func(r chi.Router) {
		r.Use(mutating...)
		r.Post("/api/games", h.HandleCreateGame)
		r.Delete("/api/games/{gameID}", h.HandleDeleteGame)
		r.Post("/api/games/{gameID}/hands", h.HandleAppendHand)
		r.Delete("/api/games/{gameID}/hands/last", h.HandleUndoLastHand)
		r.Patch("/api/games/{gameID}/hands/{handID}", h.HandleUpdateHand)
		r.Post("/api/games/{gameID}/recalculate", h.HandleRecalculateGame)
	})
}
