package gamedomain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRoster(t *testing.T) {
	tests := []struct {
		name    string
		t1, t2  string
		p1, p2  []string
		wantErr bool
	}{
		{name: "valid", t1: "Red", t2: "Blue", p1: []string{"Ann", "Bob"}, p2: []string{"Cat", "Dan"}},
		{name: "blank entries dropped", t1: "Red", t2: "Blue", p1: []string{"Ann", " "}, p2: []string{"Cat"}},
		{name: "missing name", t1: "", t2: "Blue", p1: []string{"Ann"}, p2: []string{"Cat"}, wantErr: true},
		{name: "same names", t1: "Red", t2: "Red", p1: []string{"Ann"}, p2: []string{"Cat"}, wantErr: true},
		{name: "empty team", t1: "Red", t2: "Blue", p1: []string{" "}, p2: []string{"Cat"}, wantErr: true},
		{name: "shared player", t1: "Red", t2: "Blue", p1: []string{"Ann"}, p2: []string{"Ann"}, wantErr: true},
		{name: "duplicate player", t1: "Red", t2: "Blue", p1: []string{"Ann", "Ann"}, p2: []string{"Cat"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewRoster(tt.t1, tt.t2, tt.p1, tt.p2)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidRoster)
				return
			}
			require.NoError(t, err)
			for _, p := range r.Team1Players {
				assert.NotEmpty(t, p)
			}
		})
	}
}

func TestRoster_TeamOf(t *testing.T) {
	r, err := NewRoster("Red", "Blue", []string{"Ann", "Bob"}, []string{"Cat", "Dan"})
	require.NoError(t, err)

	team, ok := r.TeamOf("Dan")
	assert.True(t, ok)
	assert.Equal(t, TeamTwo, team)
	assert.Equal(t, "Blue", r.TeamName(team))

	_, ok = r.TeamOf("Eve")
	assert.False(t, ok)
	assert.Equal(t, []string{"Ann", "Bob", "Cat", "Dan"}, r.Players())
}

func TestNewDeclaration(t *testing.T) {
	r, err := NewRoster("Red", "Blue", []string{"Ann", "Bob"}, []string{"Cat", "Dan"})
	require.NoError(t, err)

	d, err := NewDeclaration(r, "Cat", "5", 2)
	require.NoError(t, err)
	assert.Equal(t, TeamTwo, d.CallerTeam)
	assert.True(t, d.IsEuchre)
	assert.Equal(t, Delta{Team1: 6, Team2: -5}, d.Delta())

	_, err = NewDeclaration(r, "Eve", "5", 5)
	assert.ErrorIs(t, err, ErrUnknownCaller)

	_, err = NewDeclaration(r, "Ann", "Alone", 9)
	assert.ErrorIs(t, err, ErrPointsOutOfRange)

	d, err = NewDeclaration(r, "Ann", "3.5", 4)
	require.NoError(t, err)
	assert.ErrorIs(t, d.Call.Err(), ErrUnresolvableCall)
	assert.Equal(t, Delta{Team1: 4}, d.Delta())
}
