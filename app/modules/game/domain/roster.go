package gamedomain

import (
	"errors"
	"fmt"
	"strings"
)

// Team identifies one side of a game.
type Team string

const (
	TeamOne Team = "team1"
	TeamTwo Team = "team2"
)

func (t Team) Valid() bool { return t == TeamOne || t == TeamTwo }

// Opponent returns the other team.
func (t Team) Opponent() Team {
	if t == TeamOne {
		return TeamTwo
	}
	return TeamOne
}

var (
	ErrInvalidRoster = errors.New("invalid roster")
	ErrUnknownCaller = errors.New("caller is not on either roster")
)

// Roster is the fixed team/player assignment of a game.
type Roster struct {
	Team1Name    string
	Team2Name    string
	Team1Players []string
	Team2Players []string
}

// NewRoster trims names, drops blank player entries and validates the result.
func NewRoster(team1Name, team2Name string, team1Players, team2Players []string) (Roster, error) {
	r := Roster{
		Team1Name:    strings.TrimSpace(team1Name),
		Team2Name:    strings.TrimSpace(team2Name),
		Team1Players: cleanPlayers(team1Players),
		Team2Players: cleanPlayers(team2Players),
	}
	if err := r.Validate(); err != nil {
		return Roster{}, err
	}
	return r, nil
}

// Validate checks names are present and distinct and the player sets are
// non-empty and disjoint.
func (r Roster) Validate() error {
	if r.Team1Name == "" || r.Team2Name == "" {
		return fmt.Errorf("%w: both teams need a name", ErrInvalidRoster)
	}
	if r.Team1Name == r.Team2Name {
		return fmt.Errorf("%w: team names must differ", ErrInvalidRoster)
	}
	if len(r.Team1Players) == 0 || len(r.Team2Players) == 0 {
		return fmt.Errorf("%w: both teams need at least one player", ErrInvalidRoster)
	}

	seen := make(map[string]Team, len(r.Team1Players)+len(r.Team2Players))
	for _, side := range []struct {
		team    Team
		players []string
	}{{TeamOne, r.Team1Players}, {TeamTwo, r.Team2Players}} {
		for _, p := range side.players {
			if p == "" {
				return fmt.Errorf("%w: blank player name", ErrInvalidRoster)
			}
			if prev, ok := seen[p]; ok {
				if prev == side.team {
					return fmt.Errorf("%w: %q listed twice", ErrInvalidRoster, p)
				}
				return fmt.Errorf("%w: %q is on both teams", ErrInvalidRoster, p)
			}
			seen[p] = side.team
		}
	}
	return nil
}

// TeamOf returns the team whose roster contains player.
func (r Roster) TeamOf(player string) (Team, bool) {
	for _, p := range r.Team1Players {
		if p == player {
			return TeamOne, true
		}
	}
	for _, p := range r.Team2Players {
		if p == player {
			return TeamTwo, true
		}
	}
	return "", false
}

// TeamName maps a team key to its display name.
func (r Roster) TeamName(t Team) string {
	if t == TeamOne {
		return r.Team1Name
	}
	return r.Team2Name
}

// Players returns every player, team1 first.
func (r Roster) Players() []string {
	out := make([]string, 0, len(r.Team1Players)+len(r.Team2Players))
	out = append(out, r.Team1Players...)
	return append(out, r.Team2Players...)
}

func cleanPlayers(in []string) []string {
	out := make([]string, 0, len(in))
	for _, p := range in {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
