package gamehandlers

import "net/http"

// Handlers serves the game ledger over HTTP.
type Handlers interface {
	HandleCreateGame(w http.ResponseWriter, r *http.Request)
	HandleListGames(w http.ResponseWriter, r *http.Request)
	HandleGetGame(w http.ResponseWriter, r *http.Request)
	HandleDeleteGame(w http.ResponseWriter, r *http.Request)
	HandleListHands(w http.ResponseWriter, r *http.Request)
	HandlePreviewHand(w http.ResponseWriter, r *http.Request)
	HandleAppendHand(w http.ResponseWriter, r *http.Request)
	HandleUndoLastHand(w http.ResponseWriter, r *http.Request)
	HandleUpdateHand(w http.ResponseWriter, r *http.Request)
	HandleRecalculateGame(w http.ResponseWriter, r *http.Request)
}
