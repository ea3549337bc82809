package gamemigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating games and hands tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS games (
					id UUID PRIMARY KEY,
					team1_name TEXT NOT NULL,
					team2_name TEXT NOT NULL,
					team1_players JSONB NOT NULL DEFAULT '[]',
					team2_players JSONB NOT NULL DEFAULT '[]',
					team1_score INTEGER NOT NULL DEFAULT 0,
					team2_score INTEGER NOT NULL DEFAULT 0,
					target_score INTEGER NOT NULL CHECK (target_score > 0),
					status VARCHAR(16) NOT NULL DEFAULT 'active' CHECK (status IN ('active', 'finished')),
					winner TEXT,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					finished_at TIMESTAMPTZ,
					CHECK (team1_name <> team2_name)
				);
				CREATE INDEX IF NOT EXISTS idx_games_status_created_at ON games(status, created_at DESC);
				CREATE INDEX IF NOT EXISTS idx_games_finished_at ON games(finished_at DESC) WHERE status = 'finished';
			`); err != nil {
				return fmt.Errorf("failed to create games table: %w", err)
			}

			// Renumbering during recalculation shifts hand_number inside one
			// transaction, so uniqueness is checked at commit.
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS hands (
					id UUID PRIMARY KEY,
					game_id UUID NOT NULL REFERENCES games(id) ON DELETE CASCADE,
					hand_number INTEGER NOT NULL CHECK (hand_number > 0),
					caller_name TEXT NOT NULL,
					caller_team VARCHAR(8) NOT NULL CHECK (caller_team IN ('team1', 'team2')),
					call_value TEXT NOT NULL,
					points_scored INTEGER NOT NULL CHECK (points_scored >= 0),
					is_euchre BOOLEAN NOT NULL DEFAULT FALSE,
					other_team_points INTEGER NOT NULL DEFAULT 0,
					team1_delta INTEGER NOT NULL,
					team2_delta INTEGER NOT NULL,
					team1_cumulative INTEGER NOT NULL,
					team2_cumulative INTEGER NOT NULL,
					notes TEXT,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					CONSTRAINT uq_hands_game_number UNIQUE (game_id, hand_number) DEFERRABLE INITIALLY DEFERRED
				);
				CREATE INDEX IF NOT EXISTS idx_hands_game_id ON hands(game_id);
				CREATE INDEX IF NOT EXISTS idx_hands_caller_name ON hands(caller_name);
			`); err != nil {
				return fmt.Errorf("failed to create hands table: %w", err)
			}

			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping games and hands tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS hands;`); err != nil {
				return fmt.Errorf("failed to drop hands table: %w", err)
			}
			if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS games;`); err != nil {
				return fmt.Errorf("failed to drop games table: %w", err)
			}
			return nil
		})
	})
}
