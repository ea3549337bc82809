package testutils

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/testcontainers/testcontainers-go/modules/nats"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/Black-And-White-Club/euchre-bot/config"
	"github.com/Black-And-White-Club/euchre-bot/integration_tests/containers"
	"github.com/Black-And-White-Club/euchre-bot/internal/eventbus"
	"github.com/Black-And-White-Club/euchre-bot/internal/observability"
)

// TestEnvironment holds all resources needed for integration testing.
type TestEnvironment struct {
	Ctx           context.Context
	CancelContext context.CancelFunc
	PgContainer   *postgres.PostgresContainer
	NatsContainer *nats.NATSContainer
	DB            *bun.DB
	EventBus      eventbus.EventBus
	Observability *observability.Observability
	Config        *config.Config
}

// NewTestEnvironment starts Postgres and NATS, migrates the schema and connects
// the event bus.
func NewTestEnvironment() (*TestEnvironment, error) {
	ctx, cancel := context.WithCancel(context.Background())
	env := &TestEnvironment{
		Ctx:           ctx,
		CancelContext: cancel,
		Observability: observability.NewNoop(),
	}

	pgContainer, pgConnStr, err := containers.SetupPostgresContainer(ctx)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to setup postgres container: %w", err)
	}
	env.PgContainer = pgContainer

	natsContainer, natsURL, err := containers.SetupNatsContainer(ctx)
	if err != nil {
		env.Cleanup()
		return nil, fmt.Errorf("failed to setup nats container: %w", err)
	}
	env.NatsContainer = natsContainer

	sqlDB, err := sql.Open("pgx", pgConnStr)
	if err != nil {
		env.Cleanup()
		return nil, fmt.Errorf("failed to open sql DB connection: %w", err)
	}
	env.DB = bun.NewDB(sqlDB, pgdialect.New())

	if err := RunMigrations(ctx, env.DB, pgConnStr); err != nil {
		env.Cleanup()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	env.Config = &config.Config{
		Postgres: config.PostgresConfig{DSN: pgConnStr},
		NATS:     config.NATSConfig{URL: natsURL},
		Ledger: config.LedgerConfig{
			DefaultTargetScore: config.DefaultTargetScore,
			AuditInterval:      time.Hour,
		},
	}

	bus, err := eventbus.New(ctx, env.Config.NATS, env.Observability.Logger)
	if err != nil {
		env.Cleanup()
		return nil, fmt.Errorf("failed to create event bus: %w", err)
	}
	env.EventBus = bus

	log.Printf("Integration environment ready (nats %s)", natsURL)
	return env, nil
}

// Reset empties the ledger tables between tests.
func (env *TestEnvironment) Reset(ctx context.Context) error {
	return CleanupDatabase(ctx, env.DB)
}

// Cleanup tears down all resources created for testing.
func (env *TestEnvironment) Cleanup() {
	if env.CancelContext != nil {
		env.CancelContext()
	}
	if env.EventBus != nil {
		if err := env.EventBus.Close(); err != nil {
			log.Printf("Error closing EventBus: %v", err)
		}
	}
	if env.DB != nil {
		env.DB.Close()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if env.NatsContainer != nil {
		if err := env.NatsContainer.Terminate(ctx); err != nil {
			log.Printf("Error terminating NATS container: %v", err)
		}
	}
	if env.PgContainer != nil {
		if err := env.PgContainer.Terminate(ctx); err != nil {
			log.Printf("Error terminating Postgres container: %v", err)
		}
	}
}
