package gamedomain

import (
	"errors"
	"fmt"
)

const (
	// TricksPerHand is the number of tricks (and points) available in one hand.
	TricksPerHand = 8

	// AloneStake is gained or forfeited by a lone caller.
	AloneStake = 8

	// PartnerBestStake is gained or forfeited on a Partner Best call.
	PartnerBestStake = 16
)

// ErrPointsOutOfRange is returned when reported points or tricks fall outside
// 0..TricksPerHand for a call that is scored against the trick total.
var ErrPointsOutOfRange = errors.New("points out of range")

// Resolution is the scored outcome of one hand from the caller's point of view.
// CallerDelta and OtherTeamPoints are independent: a euchre forfeits the stake
// for the caller and awards the untaken tricks to the opponents.
type Resolution struct {
	IsEuchre        bool
	CallerDelta     int
	OtherTeamPoints int
}

// Resolve applies the house scoring rules to a call and the raw points (or tricks)
// reported for the calling team.
func Resolve(call Call, points int) (Resolution, error) {
	if points < 0 {
		return Resolution{}, fmt.Errorf("%w: %d is negative", ErrPointsOutOfRange, points)
	}

	switch call.Kind() {
	case CallNumeric:
		if points > TricksPerHand {
			return Resolution{}, fmt.Errorf("%w: %d points exceed %d", ErrPointsOutOfRange, points, TricksPerHand)
		}
		if points < call.Bid() {
			return Resolution{
				IsEuchre:        true,
				CallerDelta:     -call.Bid(),
				OtherTeamPoints: TricksPerHand - points,
			}, nil
		}
		return Resolution{CallerDelta: points}, nil

	case CallAlone:
		return resolveTricks(points, AloneStake)

	case CallPartnerBest:
		return resolveTricks(points, PartnerBestStake)

	case CallOther:
		return Resolution{CallerDelta: points}, nil
	}

	return Resolution{}, fmt.Errorf("unknown call kind %d", call.Kind())
}

// resolveTricks scores an all-or-nothing call: every trick must be taken.
func resolveTricks(tricks, stake int) (Resolution, error) {
	if tricks > TricksPerHand {
		return Resolution{}, fmt.Errorf("%w: %d tricks exceed %d", ErrPointsOutOfRange, tricks, TricksPerHand)
	}
	if tricks == TricksPerHand {
		return Resolution{CallerDelta: stake}, nil
	}
	return Resolution{
		IsEuchre:        true,
		CallerDelta:     -stake,
		OtherTeamPoints: TricksPerHand - tricks,
	}, nil
}

// TeamDeltas splits a resolution into per-team deltas.
func (r Resolution) TeamDeltas(caller Team) (team1, team2 int) {
	if caller == TeamOne {
		return r.CallerDelta, r.OtherTeamPoints
	}
	return r.OtherTeamPoints, r.CallerDelta
}
