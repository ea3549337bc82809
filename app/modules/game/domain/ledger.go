package gamedomain

// Delta is the score change one hand contributes to each team.
type Delta struct {
	Team1 int
	Team2 int
}

// Totals is a cumulative score pair. Totals may go negative; there is no floor.
type Totals struct {
	Team1 int `json:"team1"`
	Team2 int `json:"team2"`
}

func (t Totals) Add(d Delta) Totals {
	return Totals{Team1: t.Team1 + d.Team1, Team2: t.Team2 + d.Team2}
}

// Max returns the higher of the two totals.
func (t Totals) Max() int {
	if t.Team1 > t.Team2 {
		return t.Team1
	}
	return t.Team2
}

// Leader returns the team with the higher total; team1 on ties.
func (t Totals) Leader() Team {
	if t.Team2 > t.Team1 {
		return TeamTwo
	}
	return TeamOne
}

// Fold accumulates deltas in order starting from (0,0) and returns the running
// total after each one. Fold(d)[i] is the cumulative pair of the (i+1)th hand.
func Fold(deltas []Delta) []Totals {
	out := make([]Totals, len(deltas))
	var running Totals
	for i, d := range deltas {
		running = running.Add(d)
		out[i] = running
	}
	return out
}

// Final returns the last cumulative pair, or (0,0) for an empty ledger.
func Final(cumulative []Totals) Totals {
	if len(cumulative) == 0 {
		return Totals{}
	}
	return cumulative[len(cumulative)-1]
}

// Rebuild renumbers hands densely from 1 in their given order and refolds their
// cumulative pairs. It returns the hands whose number or cumulative changed and
// the final totals. Rebuild is idempotent: a second call reports no changes.
func Rebuild(hands []*Hand) (changed []*Hand, totals Totals) {
	deltas := make([]Delta, len(hands))
	for i, h := range hands {
		deltas[i] = h.Delta()
	}
	cumulative := Fold(deltas)

	for i, h := range hands {
		number := i + 1
		if h.HandNumber == number && h.Cumulative() == cumulative[i] {
			continue
		}
		h.HandNumber = number
		h.SetCumulative(cumulative[i])
		changed = append(changed, h)
	}
	return changed, Final(cumulative)
}
