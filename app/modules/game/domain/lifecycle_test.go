package gamedomain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAdvance(t *testing.T) {
	active := State{Status: StatusActive}

	tests := []struct {
		name   string
		state  State
		totals Totals
		want   Outcome
	}{
		{name: "below target", state: active, totals: Totals{9, 3}, want: Outcome{State: active, Transition: TransitionNone}},
		{name: "team2 reaches", state: active, totals: Totals{3, 10}, want: Outcome{State: State{StatusFinished, TeamTwo}, Transition: TransitionFinish}},
		{name: "tie goes to team1", state: active, totals: Totals{11, 11}, want: Outcome{State: State{StatusFinished, TeamOne}, Transition: TransitionFinish}},
		{name: "never reopens", state: State{StatusFinished, TeamOne}, totals: Totals{1, 1}, want: Outcome{State: State{StatusFinished, TeamOne}, Transition: TransitionNone}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Advance(tt.state, tt.totals, 10))
		})
	}
}

func TestRepair(t *testing.T) {
	finishedT1 := State{StatusFinished, TeamOne}

	tests := []struct {
		name   string
		state  State
		totals Totals
		want   Transition
	}{
		{name: "reopen", state: finishedT1, totals: Totals{7, -8}, want: TransitionReopen},
		{name: "finish", state: State{Status: StatusActive}, totals: Totals{10, 0}, want: TransitionFinish},
		{name: "winner corrected", state: finishedT1, totals: Totals{4, 12}, want: TransitionWinnerChanged},
		{name: "unchanged", state: finishedT1, totals: Totals{12, 4}, want: TransitionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Repair(tt.state, tt.totals, 10).Transition)
		})
	}
}

func TestGame_Apply(t *testing.T) {
	g := &Game{Team1Name: "Red", Team2Name: "Blue", Status: StatusActive, TargetScore: 10}
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	g.Apply(Advance(g.State(), Totals{10, -8}, g.TargetScore), now)
	assert.Equal(t, StatusFinished, g.Status)
	assert.Equal(t, "Red", g.Winner)
	assert.Equal(t, now, *g.FinishedAt)
	assert.Equal(t, State{StatusFinished, TeamOne}, g.State())

	g.Apply(Repair(g.State(), Totals{7, -8}, g.TargetScore), now.Add(time.Hour))
	assert.Equal(t, StatusActive, g.Status)
	assert.Empty(t, g.Winner)
	assert.Nil(t, g.FinishedAt)

	assert.Error(t, ValidateTarget(0))
	assert.NoError(t, ValidateTarget(32))
}
