package gamedb

import (
	"context"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// StatusFilter selects games by lifecycle status. The empty filter matches all.
type StatusFilter string

const (
	FilterAll      StatusFilter = ""
	FilterActive   StatusFilter = "active"
	FilterFinished StatusFilter = "finished"
)

// Repository defines the contract for game and hand persistence. Every method
// takes the bun handle to run on so callers can pass a transaction; nil falls back
// to the repository's own connection.
type Repository interface {
	CreateGame(ctx context.Context, db bun.IDB, game *Game) error
	GetGame(ctx context.Context, db bun.IDB, id uuid.UUID) (*Game, error)

	// ListGames returns games newest first; finished games are ordered by
	// finished_at instead.
	ListGames(ctx context.Context, db bun.IDB, filter StatusFilter) ([]*Game, error)
	UpdateGame(ctx context.Context, db bun.IDB, game *Game) error
	DeleteGame(ctx context.Context, db bun.IDB, id uuid.UUID) error

	// AcquireGameLock takes a transaction-scoped advisory lock for the game.
	AcquireGameLock(ctx context.Context, db bun.IDB, id uuid.UUID) error

	InsertHand(ctx context.Context, db bun.IDB, hand *Hand) error

	// GetHand returns the hand only if it belongs to gameID.
	GetHand(ctx context.Context, db bun.IDB, gameID, handID uuid.UUID) (*Hand, error)

	// ListHands returns a game's hands ordered by hand_number.
	ListHands(ctx context.Context, db bun.IDB, gameID uuid.UUID) ([]*Hand, error)

	// ListAllHands returns every hand ordered by game then hand_number.
	ListAllHands(ctx context.Context, db bun.IDB) ([]*Hand, error)
	UpdateHand(ctx context.Context, db bun.IDB, hand *Hand) error
	DeleteHand(ctx context.Context, db bun.IDB, handID uuid.UUID) error
}
