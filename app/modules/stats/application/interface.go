package statsservice

import (
	"context"
	"io"
	"time"

	gamedomain "github.com/Black-And-White-Club/euchre-bot/app/modules/game/domain"
	gamedb "github.com/Black-And-White-Club/euchre-bot/app/modules/game/infrastructure/repositories"
	"github.com/google/uuid"
)

// Source is the read side of the game ledger the aggregations are computed from.
type Source interface {
	GetGame(ctx context.Context, gameID uuid.UUID) (*gamedomain.Game, error)
	ListGames(ctx context.Context, filter gamedb.StatusFilter) ([]*gamedomain.Game, error)
	ListHands(ctx context.Context, gameID uuid.UUID) ([]*gamedomain.Hand, error)
	ListAllHands(ctx context.Context) ([]*gamedomain.Hand, error)
}

// Service computes read-only statistics over the ledger.
type Service interface {
	ScoreHistory(ctx context.Context, gameID uuid.UUID) (*ScoreHistory, error)
	GameCallBreakdown(ctx context.Context, gameID uuid.UUID) ([]CallStats, error)
	Overview(ctx context.Context, f Filter) (*Overview, error)
	CallValueStats(ctx context.Context, f Filter) ([]CallStats, error)
	PlayerStats(ctx context.Context, f Filter) ([]PlayerStats, error)
	TeamStats(ctx context.Context, f Filter) ([]TeamStats, error)
	Players(ctx context.Context) ([]string, error)
	PlayerTeams(ctx context.Context) (map[uuid.UUID]map[string]string, error)

	RenderScoreChart(ctx context.Context, gameID uuid.UUID, w io.Writer) error
	ExportGame(ctx context.Context, gameID uuid.UUID, w io.Writer) error

	// InvalidateCache drops cached aggregates after the ledger changed.
	InvalidateCache()
}

// Filter restricts cross-game aggregates to games created at or after Since. The
// zero Filter matches every game.
type Filter struct {
	Since time.Time
}

func (f Filter) match(g *gamedomain.Game) bool {
	return f.Since.IsZero() || !g.CreatedAt.Before(f.Since)
}

// ScorePoint is the running total after a hand. Hand 0 is the starting score.
type ScorePoint struct {
	HandNumber int `json:"hand_number"`
	Team1      int `json:"team1"`
	Team2      int `json:"team2"`
}

type ScoreHistory struct {
	GameID    uuid.UUID    `json:"game_id"`
	Team1Name string       `json:"team1_name"`
	Team2Name string       `json:"team2_name"`
	Points    []ScorePoint `json:"points"`
}

// CallStats aggregates hands sharing a call value. TotalPoints is net of
// euchres; EuchreRate is a percentage.
type CallStats struct {
	Call        string  `json:"call"`
	Count       int     `json:"count"`
	TotalPoints int     `json:"total_points"`
	AvgPoints   float64 `json:"avg_points"`
	Euchres     int     `json:"euchres"`
	EuchreRate  float64 `json:"euchre_rate"`
}

type Overview struct {
	TotalGames     int    `json:"total_games"`
	ActiveGames    int    `json:"active_games"`
	FinishedGames  int    `json:"finished_games"`
	TotalHands     int    `json:"total_hands"`
	TotalEuchres   int    `json:"total_euchres"`
	MostCommonCall string `json:"most_common_call,omitempty"`
}

type PlayerStats struct {
	Player       string  `json:"player"`
	HandsCalled  int     `json:"hands_called"`
	PointsScored int     `json:"points_scored"`
	PointsLost   int     `json:"points_lost"`
	NetPoints    int     `json:"net_points"`
	Euchres      int     `json:"euchres"`
	EuchreRate   float64 `json:"euchre_rate"`
	Games        int     `json:"games"`
	Wins         int     `json:"wins"`
}

// TeamStats aggregates finished games by team name.
type TeamStats struct {
	Team          string  `json:"team"`
	Games         int     `json:"games"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	WinRate       float64 `json:"win_rate"`
	TotalPoints   int     `json:"total_points"`
	PointsAgainst int     `json:"points_against"`
	AvgPoints     float64 `json:"avg_points"`
}
