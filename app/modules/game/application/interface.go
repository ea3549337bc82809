package gameservice

import (
	"context"

	gamedomain "github.com/Black-And-White-Club/euchre-bot/app/modules/game/domain"
	gamedb "github.com/Black-And-White-Club/euchre-bot/app/modules/game/infrastructure/repositories"
	"github.com/google/uuid"
)

// Service is the game ledger. Mutations are serialized per game and run in a
// single transaction each.
type Service interface {
	CreateGame(ctx context.Context, req CreateGameRequest) (*gamedomain.Game, error)
	GetGame(ctx context.Context, gameID uuid.UUID) (*gamedomain.Game, error)
	ListGames(ctx context.Context, filter gamedb.StatusFilter) ([]*gamedomain.Game, error)

	// PreviewHand scores a hand against the current totals without persisting it.
	PreviewHand(ctx context.Context, gameID uuid.UUID, in HandInput) (*HandPreview, error)
	AppendHand(ctx context.Context, gameID uuid.UUID, in HandInput) (*gamedomain.Hand, error)

	// UndoLastHand removes the most recent hand. It returns false when the game has
	// no hands.
	UndoLastHand(ctx context.Context, gameID uuid.UUID) (bool, error)
	UpdateHand(ctx context.Context, gameID, handID uuid.UUID, upd HandUpdate) (*gamedomain.Hand, error)
	DeleteGame(ctx context.Context, gameID uuid.UUID) error
	ListHands(ctx context.Context, gameID uuid.UUID) ([]*gamedomain.Hand, error)
	ListAllHands(ctx context.Context) ([]*gamedomain.Hand, error)
	RecalculateGame(ctx context.Context, gameID uuid.UUID) (*RecalculationReport, error)
}

// CreateGameRequest describes a new game. A zero TargetScore uses the configured
// default.
type CreateGameRequest struct {
	Team1Name    string   `json:"team1_name"`
	Team2Name    string   `json:"team2_name"`
	Team1Players []string `json:"team1_players"`
	Team2Players []string `json:"team2_players"`
	TargetScore  int      `json:"target_score"`
}

// HandInput is an operator's hand report.
type HandInput struct {
	CallerName   string `json:"caller_name"`
	CallValue    string `json:"call_value"`
	PointsScored int    `json:"points_scored"`
	Notes        string `json:"notes,omitempty"`
}

// HandUpdate replaces declaration fields of an existing hand. Nil fields keep
// their stored value.
type HandUpdate struct {
	CallerName   *string `json:"caller_name,omitempty"`
	CallValue    *string `json:"call_value,omitempty"`
	PointsScored *int    `json:"points_scored,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

// HandPreview is the hypothetical result of appending a hand. Holding the value
// is the pending confirmation; committing it is a separate AppendHand call.
type HandPreview struct {
	GameID          uuid.UUID         `json:"game_id"`
	HandNumber      int               `json:"hand_number"`
	Input           HandInput         `json:"input"`
	CallerTeam      gamedomain.Team   `json:"caller_team"`
	CallValue       string            `json:"call_value"`
	IsEuchre        bool              `json:"is_euchre"`
	OtherTeamPoints int               `json:"other_team_points"`
	Team1Delta      int               `json:"team1_delta"`
	Team2Delta      int               `json:"team2_delta"`
	Before          gamedomain.Totals `json:"before"`
	After           gamedomain.Totals `json:"after"`
	EndsGame        bool              `json:"ends_game"`
	Winner          string            `json:"winner,omitempty"`
}

// RecalculationReport describes what a rebuild of a game's ledger changed.
type RecalculationReport struct {
	Game         *gamedomain.Game      `json:"game"`
	HandsChecked int                   `json:"hands_checked"`
	HandsChanged int                   `json:"hands_changed"`
	Before       gamedomain.Totals     `json:"before"`
	After        gamedomain.Totals     `json:"after"`
	Transition   gamedomain.Transition `json:"transition"`
}

// Drifted reports whether the rebuild changed any stored value.
func (r *RecalculationReport) Drifted() bool {
	return r.HandsChanged > 0 || r.Before != r.After || r.Transition != gamedomain.TransitionNone
}
