package statsrouter

import (
	statshandlers "github.com/Black-And-White-Club/euchre-bot/app/modules/stats/infrastructure/handlers"
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts the read-only statistics API.
func RegisterRoutes(r chi.Router, h statshandlers.Handlers) {
	r.Route("/api/stats", func(r chi.Router) {
		r.Get("/overview", h.HandleOverview)
		r.Get("/calls", h.HandleCallStats)
		r.Get("/players", h.HandlePlayerStats)
		r.Get("/players/list", h.HandlePlayerList)
		r.Get("/players/teams", h.HandlePlayerTeams)
		r.Get("/teams", h.HandleTeamStats)
	})

	r.Get("/api/games/{gameID}/stats/calls", h.HandleGameCalls)
	r.Get("/api/games/{gameID}/history", h.HandleScoreHistory)
	r.Get("/api/games/{gameID}/chart.png", h.HandleScoreChart)
	r.Get("/api/games/{gameID}/export.xlsx", h.HandleExport)
}
