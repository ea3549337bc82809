package gamedomain

import (
	"fmt"
	"strings"
)

// Declaration is an operator's hand report after it has been checked against the
// roster and scored. It is the only source of caller team, penalty flag and
// per-team deltas stored on a hand.
type Declaration struct {
	CallerName      string
	CallerTeam      Team
	Call            Call
	PointsScored    int
	IsEuchre        bool
	OtherTeamPoints int
	Team1Delta      int
	Team2Delta      int
}

// NewDeclaration resolves a raw hand report for a game with the given roster.
// An unresolvable numeric-looking call is accepted and scored literally; callers
// inspect Call.Err to surface it.
func NewDeclaration(roster Roster, callerName, callValue string, points int) (Declaration, error) {
	callerName = strings.TrimSpace(callerName)
	team, ok := roster.TeamOf(callerName)
	if !ok {
		return Declaration{}, fmt.Errorf("%w: %q", ErrUnknownCaller, callerName)
	}

	call := ParseCall(callValue)
	res, err := Resolve(call, points)
	if err != nil {
		return Declaration{}, err
	}

	d1, d2 := res.TeamDeltas(team)
	return Declaration{
		CallerName:      callerName,
		CallerTeam:      team,
		Call:            call,
		PointsScored:    points,
		IsEuchre:        res.IsEuchre,
		OtherTeamPoints: res.OtherTeamPoints,
		Team1Delta:      d1,
		Team2Delta:      d2,
	}, nil
}

// Delta returns the per-team change this declaration contributes.
func (d Declaration) Delta() Delta {
	return Delta{Team1: d.Team1Delta, Team2: d.Team2Delta}
}
