package gamedomain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidTarget = errors.New("target score must be positive")

// Game is a scored match between two fixed teams.
type Game struct {
	ID           uuid.UUID  `json:"id"`
	Team1Name    string     `json:"team1_name"`
	Team2Name    string     `json:"team2_name"`
	Team1Players []string   `json:"team1_players"`
	Team2Players []string   `json:"team2_players"`
	Team1Score   int        `json:"team1_score"`
	Team2Score   int        `json:"team2_score"`
	TargetScore  int        `json:"target_score"`
	Status       Status     `json:"status"`
	Winner       string     `json:"winner,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	FinishedAt   *time.Time `json:"finished_at,omitempty"`
}

func (g *Game) Roster() Roster {
	return Roster{
		Team1Name:    g.Team1Name,
		Team2Name:    g.Team2Name,
		Team1Players: g.Team1Players,
		Team2Players: g.Team2Players,
	}
}

func (g *Game) Totals() Totals {
	return Totals{Team1: g.Team1Score, Team2: g.Team2Score}
}

// State returns the lifecycle state; the winner is mapped back from its stored
// team name.
func (g *Game) State() State {
	s := State{Status: g.Status}
	switch g.Winner {
	case "":
	case g.Team1Name:
		s.Winner = TeamOne
	case g.Team2Name:
		s.Winner = TeamTwo
	}
	return s
}

func (g *Game) Finished() bool { return g.Status == StatusFinished }

// SetTotals stores the cumulative pair as the game score.
func (g *Game) SetTotals(t Totals) {
	g.Team1Score = t.Team1
	g.Team2Score = t.Team2
}

// Apply moves the game to the outcome's state. finished_at is stamped when the
// game finishes and kept when only the winner is corrected.
func (g *Game) Apply(o Outcome, now time.Time) {
	g.Status = o.State.Status
	switch o.State.Status {
	case StatusFinished:
		g.Winner = g.Roster().TeamName(o.State.Winner)
		if o.Transition == TransitionFinish || g.FinishedAt == nil {
			ts := now.UTC()
			g.FinishedAt = &ts
		}
	default:
		g.Winner = ""
		g.FinishedAt = nil
	}
}

// Hand is one entry of a game's ledger.
type Hand struct {
	ID              uuid.UUID `json:"id"`
	GameID          uuid.UUID `json:"game_id"`
	HandNumber      int       `json:"hand_number"`
	CallerName      string    `json:"caller_name"`
	CallerTeam      Team      `json:"caller_team"`
	CallValue       string    `json:"call_value"`
	PointsScored    int       `json:"points_scored"`
	IsEuchre        bool      `json:"is_euchre"`
	OtherTeamPoints int       `json:"other_team_points"`
	Team1Delta      int       `json:"team1_delta"`
	Team2Delta      int       `json:"team2_delta"`
	Team1Cumulative int       `json:"team1_cumulative"`
	Team2Cumulative int       `json:"team2_cumulative"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// ApplyDeclaration copies the resolved fields of d onto the hand.
func (h *Hand) ApplyDeclaration(d Declaration) {
	h.CallerName = d.CallerName
	h.CallerTeam = d.CallerTeam
	h.CallValue = d.Call.String()
	h.PointsScored = d.PointsScored
	h.IsEuchre = d.IsEuchre
	h.OtherTeamPoints = d.OtherTeamPoints
	h.Team1Delta = d.Team1Delta
	h.Team2Delta = d.Team2Delta
}

func (h *Hand) Delta() Delta { return Delta{Team1: h.Team1Delta, Team2: h.Team2Delta} }

func (h *Hand) Cumulative() Totals {
	return Totals{Team1: h.Team1Cumulative, Team2: h.Team2Cumulative}
}

func (h *Hand) SetCumulative(t Totals) {
	h.Team1Cumulative = t.Team1
	h.Team2Cumulative = t.Team2
}
