// Package bundb opens the bun database shared by the module repositories.
package bundb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	gamedb "github.com/Black-And-White-Club/euchre-bot/app/modules/game/infrastructure/repositories"
	"github.com/Black-And-White-Club/euchre-bot/config"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

// DBService owns the connection pool.
type DBService struct {
	db *bun.DB
}

// GetDB returns the underlying database connection pool.
func (s *DBService) GetDB() *bun.DB {
	return s.db
}

// NewBunDBService connects to Postgres and registers the ledger models.
func NewBunDBService(ctx context.Context, cfg config.PostgresConfig, logger *slog.Logger) (*DBService, error) {
	sqldb, err := pgConn(ctx, cfg.DSN)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to connect to PostgreSQL", slog.Any("error", err))
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db := bun.NewDB(sqldb, pgdialect.New())
	db.RegisterModel((*gamedb.Game)(nil), (*gamedb.Hand)(nil))

	logger.InfoContext(ctx, "Connected to PostgreSQL")
	return &DBService{db: db}, nil
}

// Ping backs the /healthz postgres check.
func (s *DBService) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *DBService) Close() error {
	return s.db.Close()
}

func pgConn(ctx context.Context, dsn string) (*sql.DB, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))

	if err := sqldb.PingContext(ctx); err != nil {
		_ = sqldb.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return sqldb, nil
}
