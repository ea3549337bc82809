package statsservice

import (
	"math"
	"sort"

	gamedomain "github.com/Black-And-White-Club/euchre-bot/app/modules/game/domain"
	"github.com/google/uuid"
)

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func rate(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return round(float64(part)/float64(whole)*100, 1)
}

// netPoints is what the call was worth to the caller's team: the stored delta on
// the caller's side, negative when the caller was euchred.
func netPoints(h *gamedomain.Hand) int {
	if h.CallerTeam == gamedomain.TeamOne {
		return h.Team1Delta
	}
	return h.Team2Delta
}

// buildHistory returns the running totals with a (0,0) origin row.
func buildHistory(game *gamedomain.Game, hands []*gamedomain.Hand) *ScoreHistory {
	points := make([]ScorePoint, 0, len(hands)+1)
	points = append(points, ScorePoint{})
	for _, h := range hands {
		points = append(points, ScorePoint{
			HandNumber: h.HandNumber,
			Team1:      h.Team1Cumulative,
			Team2:      h.Team2Cumulative,
		})
	}
	return &ScoreHistory{
		GameID:    game.ID,
		Team1Name: game.Team1Name,
		Team2Name: game.Team2Name,
		Points:    points,
	}
}

// breakdownCalls groups hands by call value, most frequent first.
func breakdownCalls(hands []*gamedomain.Hand) []CallStats {
	byCall := map[string]*CallStats{}
	for _, h := range hands {
		s, ok := byCall[h.CallValue]
		if !ok {
			s = &CallStats{Call: h.CallValue}
			byCall[h.CallValue] = s
		}
		s.Count++
		s.TotalPoints += netPoints(h)
		if h.IsEuchre {
			s.Euchres++
		}
	}

	out := make([]CallStats, 0, len(byCall))
	for _, s := range byCall {
		s.AvgPoints = round(float64(s.TotalPoints)/float64(s.Count), 2)
		s.EuchreRate = rate(s.Euchres, s.Count)
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Call < out[j].Call
	})
	return out
}

// mostCommonCall returns the modal call value; ties go to the smallest value.
func mostCommonCall(hands []*gamedomain.Hand) string {
	counts := map[string]int{}
	for _, h := range hands {
		counts[h.CallValue]++
	}

	best, bestCount := "", 0
	for call, n := range counts {
		if n > bestCount || (n == bestCount && call < best) {
			best, bestCount = call, n
		}
	}
	return best
}

func buildOverview(games []*gamedomain.Game, hands []*gamedomain.Hand) *Overview {
	o := &Overview{
		TotalGames:     len(games),
		TotalHands:     len(hands),
		MostCommonCall: mostCommonCall(hands),
	}
	for _, g := range games {
		switch g.Status {
		case gamedomain.StatusActive:
			o.ActiveGames++
		case gamedomain.StatusFinished:
			o.FinishedGames++
		}
	}
	for _, h := range hands {
		if h.IsEuchre {
			o.TotalEuchres++
		}
	}
	return o
}

// buildPlayerStats covers every rostered player and every caller, sorted by net
// points.
func buildPlayerStats(games []*gamedomain.Game, hands []*gamedomain.Hand) []PlayerStats {
	byPlayer := map[string]*PlayerStats{}
	get := func(name string) *PlayerStats {
		s, ok := byPlayer[name]
		if !ok {
			s = &PlayerStats{Player: name}
			byPlayer[name] = s
		}
		return s
	}

	for _, g := range games {
		roster := g.Roster()
		for _, p := range roster.Players() {
			s := get(p)
			s.Games++
			if team, _ := roster.TeamOf(p); g.Finished() && g.Winner == roster.TeamName(team) {
				s.Wins++
			}
		}
	}

	for _, h := range hands {
		s := get(h.CallerName)
		s.HandsCalled++
		net := netPoints(h)
		if h.IsEuchre {
			s.Euchres++
		}
		if net < 0 {
			s.PointsLost -= net
		} else {
			s.PointsScored += net
		}
	}

	out := make([]PlayerStats, 0, len(byPlayer))
	for _, s := range byPlayer {
		s.NetPoints = s.PointsScored - s.PointsLost
		s.EuchreRate = rate(s.Euchres, s.HandsCalled)
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].NetPoints != out[j].NetPoints {
			return out[i].NetPoints > out[j].NetPoints
		}
		return out[i].Player < out[j].Player
	})
	return out
}

// buildTeamStats aggregates finished games by team name, most wins first.
func buildTeamStats(games []*gamedomain.Game) []TeamStats {
	byTeam := map[string]*TeamStats{}
	add := func(name string, score, against int, won bool) {
		s, ok := byTeam[name]
		if !ok {
			s = &TeamStats{Team: name}
			byTeam[name] = s
		}
		s.Games++
		if won {
			s.Wins++
		}
		s.TotalPoints += score
		s.PointsAgainst += against
	}

	for _, g := range games {
		if !g.Finished() {
			continue
		}
		add(g.Team1Name, g.Team1Score, g.Team2Score, g.Winner == g.Team1Name)
		add(g.Team2Name, g.Team2Score, g.Team1Score, g.Winner == g.Team2Name)
	}

	out := make([]TeamStats, 0, len(byTeam))
	for _, s := range byTeam {
		s.Losses = s.Games - s.Wins
		s.WinRate = rate(s.Wins, s.Games)
		s.AvgPoints = round(float64(s.TotalPoints)/float64(s.Games), 1)
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Wins != out[j].Wins {
			return out[i].Wins > out[j].Wins
		}
		return out[i].Team < out[j].Team
	})
	return out
}

func playerList(games []*gamedomain.Game) []string {
	seen := map[string]struct{}{}
	for _, g := range games {
		for _, p := range g.Roster().Players() {
			seen[p] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

func playerTeams(games []*gamedomain.Game) map[uuid.UUID]map[string]string {
	out := make(map[uuid.UUID]map[string]string, len(games))
	for _, g := range games {
		m := make(map[string]string, len(g.Team1Players)+len(g.Team2Players))
		for _, p := range g.Team1Players {
			m[p] = g.Team1Name
		}
		for _, p := range g.Team2Players {
			m[p] = g.Team2Name
		}
		out[g.ID] = m
	}
	return out
}
