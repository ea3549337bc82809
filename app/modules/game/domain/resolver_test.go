package gamedomain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		call    Call
		points  int
		want    Resolution
		wantErr error
	}{
		{name: "numeric made exactly", call: NumericCall(5), points: 5, want: Resolution{CallerDelta: 5}},
		{name: "numeric made over", call: NumericCall(3), points: 6, want: Resolution{CallerDelta: 6}},
		{name: "numeric euchred", call: NumericCall(5), points: 3, want: Resolution{IsEuchre: true, CallerDelta: -5, OtherTeamPoints: 5}},
		{name: "numeric euchred with nothing", call: NumericCall(8), points: 0, want: Resolution{IsEuchre: true, CallerDelta: -8, OtherTeamPoints: 8}},
		{name: "numeric over ceiling", call: NumericCall(4), points: 9, wantErr: ErrPointsOutOfRange},
		{name: "alone all tricks", call: AloneCall(), points: 8, want: Resolution{CallerDelta: 8}},
		{name: "alone short", call: AloneCall(), points: 6, want: Resolution{IsEuchre: true, CallerDelta: -8, OtherTeamPoints: 2}},
		{name: "partner best all tricks", call: PartnerBestCall(), points: 8, want: Resolution{CallerDelta: 16}},
		{name: "partner best short", call: PartnerBestCall(), points: 7, want: Resolution{IsEuchre: true, CallerDelta: -16, OtherTeamPoints: 1}},
		{name: "partner best over ceiling", call: PartnerBestCall(), points: 9, wantErr: ErrPointsOutOfRange},
		{name: "other literal", call: OtherCall("bonus"), points: 12, want: Resolution{CallerDelta: 12}},
		{name: "unresolvable literal", call: ParseCall("4.5"), points: 2, want: Resolution{CallerDelta: 2}},
		{name: "negative points", call: OtherCall("x"), points: -1, wantErr: ErrPointsOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.call, tt.points)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_NumericSymmetry(t *testing.T) {
	for bid := 1; bid <= TricksPerHand; bid++ {
		for p := 0; p <= TricksPerHand; p++ {
			got, err := Resolve(NumericCall(bid), p)
			require.NoError(t, err)
			if p < bid {
				assert.True(t, got.IsEuchre)
				assert.Equal(t, -bid, got.CallerDelta)
				assert.Equal(t, TricksPerHand-p, got.OtherTeamPoints)
			} else {
				assert.False(t, got.IsEuchre)
				assert.Equal(t, p, got.CallerDelta)
				assert.Zero(t, got.OtherTeamPoints)
			}
		}
	}
}

func TestResolution_TeamDeltas(t *testing.T) {
	r := Resolution{IsEuchre: true, CallerDelta: -5, OtherTeamPoints: 3}

	t1, t2 := r.TeamDeltas(TeamOne)
	assert.Equal(t, -5, t1)
	assert.Equal(t, 3, t2)

	t1, t2 = r.TeamDeltas(TeamTwo)
	assert.Equal(t, 3, t1)
	assert.Equal(t, -5, t2)
}
