package gamedb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Impl implements Repository using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new game repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

func (r *Impl) CreateGame(ctx context.Context, db bun.IDB, game *Game) error {
	db = r.resolveDB(db)
	if _, err := db.NewInsert().Model(game).Exec(ctx); err != nil {
		return fmt.Errorf("gamedb.CreateGame: %w", err)
	}
	return nil
}

func (r *Impl) GetGame(ctx context.Context, db bun.IDB, id uuid.UUID) (*Game, error) {
	db = r.resolveDB(db)
	game := new(Game)
	err := db.NewSelect().
		Model(game).
		Where("g.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("gamedb.GetGame: %w", err)
	}
	return game, nil
}

func (r *Impl) ListGames(ctx context.Context, db bun.IDB, filter StatusFilter) ([]*Game, error) {
	db = r.resolveDB(db)
	var games []*Game
	q := db.NewSelect().Model(&games)

	switch filter {
	case FilterActive:
		q = q.Where("g.status = ?", string(filter)).Order("g.created_at DESC")
	case FilterFinished:
		q = q.Where("g.status = ?", string(filter)).Order("g.finished_at DESC")
	default:
		q = q.Order("g.created_at DESC")
	}

	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("gamedb.ListGames: %w", err)
	}
	return games, nil
}

func (r *Impl) UpdateGame(ctx context.Context, db bun.IDB, game *Game) error {
	db = r.resolveDB(db)
	res, err := db.NewUpdate().
		Model(game).
		Column("team1_score", "team2_score", "status", "winner", "finished_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("gamedb.UpdateGame: %w", err)
	}
	return requireRows(res)
}

func (r *Impl) DeleteGame(ctx context.Context, db bun.IDB, id uuid.UUID) error {
	db = r.resolveDB(db)
	res, err := db.NewDelete().
		Model((*Game)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("gamedb.DeleteGame: %w", err)
	}
	return requireRows(res)
}

func (r *Impl) AcquireGameLock(ctx context.Context, db bun.IDB, id uuid.UUID) error {
	db = r.resolveDB(db)
	if _, err := db.NewRaw("SELECT pg_advisory_xact_lock(hashtext(?))", id.String()).Exec(ctx); err != nil {
		return fmt.Errorf("gamedb.AcquireGameLock: %w", err)
	}
	return nil
}

func (r *Impl) InsertHand(ctx context.Context, db bun.IDB, hand *Hand) error {
	db = r.resolveDB(db)
	if _, err := db.NewInsert().Model(hand).Exec(ctx); err != nil {
		return fmt.Errorf("gamedb.InsertHand: %w", err)
	}
	return nil
}

func (r *Impl) GetHand(ctx context.Context, db bun.IDB, gameID, handID uuid.UUID) (*Hand, error) {
	db = r.resolveDB(db)
	hand := new(Hand)
	err := db.NewSelect().
		Model(hand).
		Where("h.id = ?", handID).
		Where("h.game_id = ?", gameID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("gamedb.GetHand: %w", err)
	}
	return hand, nil
}

func (r *Impl) ListHands(ctx context.Context, db bun.IDB, gameID uuid.UUID) ([]*Hand, error) {
	db = r.resolveDB(db)
	var hands []*Hand
	err := db.NewSelect().
		Model(&hands).
		Where("h.game_id = ?", gameID).
		Order("h.hand_number ASC", "h.created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("gamedb.ListHands: %w", err)
	}
	return hands, nil
}

func (r *Impl) ListAllHands(ctx context.Context, db bun.IDB) ([]*Hand, error) {
	db = r.resolveDB(db)
	var hands []*Hand
	err := db.NewSelect().
		Model(&hands).
		Order("h.game_id ASC", "h.hand_number ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("gamedb.ListAllHands: %w", err)
	}
	return hands, nil
}

func (r *Impl) UpdateHand(ctx context.Context, db bun.IDB, hand *Hand) error {
	db = r.resolveDB(db)
	res, err := db.NewUpdate().
		Model(hand).
		ExcludeColumn("id", "game_id", "created_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("gamedb.UpdateHand: %w", err)
	}
	return requireRows(res)
}

func (r *Impl) DeleteHand(ctx context.Context, db bun.IDB, handID uuid.UUID) error {
	db = r.resolveDB(db)
	res, err := db.NewDelete().
		Model((*Hand)(nil)).
		Where("id = ?", handID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("gamedb.DeleteHand: %w", err)
	}
	return requireRows(res)
}

func requireRows(res sql.Result) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNoRowsAffected
	}
	return nil
}
