package gamedomain

import "fmt"

// Status is the lifecycle state of a game.
type Status string

const (
	StatusActive   Status = "active"
	StatusFinished Status = "finished"
)

func (s Status) Valid() bool { return s == StatusActive || s == StatusFinished }

// Transition names the lifecycle change produced by an evaluation.
type Transition string

const (
	TransitionNone          Transition = "none"
	TransitionFinish        Transition = "finish"
	TransitionReopen        Transition = "reopen"
	TransitionWinnerChanged Transition = "winner_changed"
)

// State is the lifecycle-relevant part of a game.
type State struct {
	Status Status
	Winner Team
}

// Outcome is the state a game should move to, and how it got there.
type Outcome struct {
	State      State
	Transition Transition
}

// Advance evaluates a game after a forward mutation (appending a hand). It can
// only finish a game; it never reopens one.
func Advance(current State, totals Totals, target int) Outcome {
	if current.Status == StatusFinished {
		return Outcome{State: current, Transition: TransitionNone}
	}
	if totals.Max() >= target {
		return Outcome{
			State:      State{Status: StatusFinished, Winner: totals.Leader()},
			Transition: TransitionFinish,
		}
	}
	return Outcome{State: current, Transition: TransitionNone}
}

// Repair re-derives the lifecycle from recalculated totals. Unlike Advance it may
// move a finished game back to active when its totals no longer reach the target,
// and it corrects the winner of a game that stays finished.
func Repair(current State, totals Totals, target int) Outcome {
	reached := totals.Max() >= target

	switch {
	case current.Status == StatusFinished && !reached:
		return Outcome{State: State{Status: StatusActive}, Transition: TransitionReopen}
	case current.Status != StatusFinished && reached:
		return Outcome{
			State:      State{Status: StatusFinished, Winner: totals.Leader()},
			Transition: TransitionFinish,
		}
	case current.Status == StatusFinished && current.Winner != totals.Leader():
		return Outcome{
			State:      State{Status: StatusFinished, Winner: totals.Leader()},
			Transition: TransitionWinnerChanged,
		}
	}
	return Outcome{State: current, Transition: TransitionNone}
}

// ValidateTarget rejects non-positive target scores.
func ValidateTarget(target int) error {
	if target <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidTarget, target)
	}
	return nil
}
