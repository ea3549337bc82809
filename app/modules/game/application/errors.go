package gameservice

import (
	"errors"

	gamedomain "github.com/Black-And-White-Club/euchre-bot/app/modules/game/domain"
)

// Domain errors for the game service. Handlers map these to client errors; any
// other error is an infrastructure failure.
var (
	// ErrGameNotFound indicates the game does not exist.
	ErrGameNotFound = errors.New("game not found")

	// ErrHandNotFound indicates the hand does not exist in the stated game.
	ErrHandNotFound = errors.New("hand not found")

	// ErrGameFinished indicates a hand was appended to a finished game.
	ErrGameFinished = errors.New("game is finished")

	ErrInvalidRoster = gamedomain.ErrInvalidRoster
	ErrInvalidTarget = gamedomain.ErrInvalidTarget
	ErrUnknownCaller = gamedomain.ErrUnknownCaller
	ErrInvalidPoints = gamedomain.ErrPointsOutOfRange
)

var domainErrors = []error{
	ErrGameNotFound, ErrHandNotFound, ErrGameFinished,
	ErrInvalidRoster, ErrInvalidTarget, ErrUnknownCaller, ErrInvalidPoints,
}

// IsDomainError reports whether err is one of the service's domain errors.
func IsDomainError(err error) bool {
	for _, target := range domainErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
