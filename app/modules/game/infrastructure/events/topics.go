package gameevents

import (
	"time"

	gamedomain "github.com/Black-And-White-Club/euchre-bot/app/modules/game/domain"
	"github.com/google/uuid"
)

// Topics published by the game module after a mutation commits.
const (
	GameCreatedV1  = "euchre.game.created.v1"
	GameFinishedV1 = "euchre.game.finished.v1"
	GameReopenedV1 = "euchre.game.reopened.v1"
	GameDeletedV1  = "euchre.game.deleted.v1"

	HandAppendedV1 = "euchre.hand.appended.v1"
	HandUpdatedV1  = "euchre.hand.updated.v1"
	HandUndoneV1   = "euchre.hand.undone.v1"
)

// AllTopics lists every topic, for subscribers that react to any ledger change.
var AllTopics = []string{
	GameCreatedV1, GameFinishedV1, GameReopenedV1, GameDeletedV1,
	HandAppendedV1, HandUpdatedV1, HandUndoneV1,
}

// GamePayload carries the game state after a lifecycle change.
type GamePayload struct {
	Game       *gamedomain.Game `json:"game"`
	OccurredAt time.Time        `json:"occurred_at"`
}

// HandPayload carries a hand and the game totals after it was applied or removed.
type HandPayload struct {
	Game       *gamedomain.Game `json:"game"`
	Hand       *gamedomain.Hand `json:"hand"`
	OccurredAt time.Time        `json:"occurred_at"`
}

type GameDeletedPayload struct {
	GameID     uuid.UUID `json:"game_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Envelope is the subset every payload shares; subscribers that only need the
// game id decode into it.
type Envelope struct {
	Game   *envelopeGame `json:"game"`
	GameID uuid.UUID     `json:"game_id"`
}

type envelopeGame struct {
	ID uuid.UUID `json:"id"`
}

// ID returns the game id regardless of payload shape.
func (e Envelope) ID() uuid.UUID {
	if e.Game != nil {
		return e.Game.ID
	}
	return e.GameID
}
