package gamedb

import (
	"time"

	gamedomain "github.com/Black-And-White-Club/euchre-bot/app/modules/game/domain"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Game is the persisted game row. Player lists are stored as JSONB arrays.
type Game struct {
	bun.BaseModel `bun:"table:games,alias:g"`
	ID            uuid.UUID  `bun:"id,pk,type:uuid"`
	Team1Name     string     `bun:"team1_name,notnull"`
	Team2Name     string     `bun:"team2_name,notnull"`
	Team1Players  []string   `bun:"team1_players,type:jsonb,notnull"`
	Team2Players  []string   `bun:"team2_players,type:jsonb,notnull"`
	Team1Score    int        `bun:"team1_score,notnull,default:0"`
	Team2Score    int        `bun:"team2_score,notnull,default:0"`
	TargetScore   int        `bun:"target_score,notnull"`
	Status        string     `bun:"status,notnull,type:varchar(16)"`
	Winner        string     `bun:"winner,nullzero"`
	CreatedAt     time.Time  `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	FinishedAt    *time.Time `bun:"finished_at,nullzero"`
}

// Hand is the persisted ledger entry. Rows cascade with their game.
type Hand struct {
	bun.BaseModel   `bun:"table:hands,alias:h"`
	ID              uuid.UUID `bun:"id,pk,type:uuid"`
	GameID          uuid.UUID `bun:"game_id,type:uuid,notnull"`
	HandNumber      int       `bun:"hand_number,notnull"`
	CallerName      string    `bun:"caller_name,notnull"`
	CallerTeam      string    `bun:"caller_team,notnull,type:varchar(8)"`
	CallValue       string    `bun:"call_value,notnull"`
	PointsScored    int       `bun:"points_scored,notnull"`
	IsEuchre        bool      `bun:"is_euchre,notnull,default:false"`
	OtherTeamPoints int       `bun:"other_team_points,notnull,default:0"`
	Team1Delta      int       `bun:"team1_delta,notnull"`
	Team2Delta      int       `bun:"team2_delta,notnull"`
	Team1Cumulative int       `bun:"team1_cumulative,notnull"`
	Team2Cumulative int       `bun:"team2_cumulative,notnull"`
	Notes           string    `bun:"notes,nullzero"`
	CreatedAt       time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

// ToDomain converts the row to the domain type.
func (g *Game) ToDomain() *gamedomain.Game {
	return &gamedomain.Game{
		ID:           g.ID,
		Team1Name:    g.Team1Name,
		Team2Name:    g.Team2Name,
		Team1Players: g.Team1Players,
		Team2Players: g.Team2Players,
		Team1Score:   g.Team1Score,
		Team2Score:   g.Team2Score,
		TargetScore:  g.TargetScore,
		Status:       gamedomain.Status(g.Status),
		Winner:       g.Winner,
		CreatedAt:    g.CreatedAt,
		FinishedAt:   g.FinishedAt,
	}
}

// GameFromDomain converts a domain game to its row.
func GameFromDomain(g *gamedomain.Game) *Game {
	return &Game{
		ID:           g.ID,
		Team1Name:    g.Team1Name,
		Team2Name:    g.Team2Name,
		Team1Players: g.Team1Players,
		Team2Players: g.Team2Players,
		Team1Score:   g.Team1Score,
		Team2Score:   g.Team2Score,
		TargetScore:  g.TargetScore,
		Status:       string(g.Status),
		Winner:       g.Winner,
		CreatedAt:    g.CreatedAt,
		FinishedAt:   g.FinishedAt,
	}
}

func (h *Hand) ToDomain() *gamedomain.Hand {
	return &gamedomain.Hand{
		ID:              h.ID,
		GameID:          h.GameID,
		HandNumber:      h.HandNumber,
		CallerName:      h.CallerName,
		CallerTeam:      gamedomain.Team(h.CallerTeam),
		CallValue:       h.CallValue,
		PointsScored:    h.PointsScored,
		IsEuchre:        h.IsEuchre,
		OtherTeamPoints: h.OtherTeamPoints,
		Team1Delta:      h.Team1Delta,
		Team2Delta:      h.Team2Delta,
		Team1Cumulative: h.Team1Cumulative,
		Team2Cumulative: h.Team2Cumulative,
		Notes:           h.Notes,
		CreatedAt:       h.CreatedAt,
	}
}

func HandFromDomain(h *gamedomain.Hand) *Hand {
	return &Hand{
		ID:              h.ID,
		GameID:          h.GameID,
		HandNumber:      h.HandNumber,
		CallerName:      h.CallerName,
		CallerTeam:      string(h.CallerTeam),
		CallValue:       h.CallValue,
		PointsScored:    h.PointsScored,
		IsEuchre:        h.IsEuchre,
		OtherTeamPoints: h.OtherTeamPoints,
		Team1Delta:      h.Team1Delta,
		Team2Delta:      h.Team2Delta,
		Team1Cumulative: h.Team1Cumulative,
		Team2Cumulative: h.Team2Cumulative,
		Notes:           h.Notes,
		CreatedAt:       h.CreatedAt,
	}
}
