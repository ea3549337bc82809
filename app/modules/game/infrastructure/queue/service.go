package gamequeue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	gamemetrics "github.com/Black-And-White-Club/euchre-bot/app/modules/game/metrics"
	"github.com/Black-And-White-Club/euchre-bot/internal/observability/attr"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/riverqueue/river/rivermigrate"
)

const queueName = "ledger"

// QueueService schedules ledger maintenance jobs.
type QueueService interface {
	// EnqueueReconcile asks for one game's ledger to be rebuilt. Duplicate
	// requests for the same game collapse into one job.
	EnqueueReconcile(ctx context.Context, gameID uuid.UUID) error
	HealthCheck(ctx context.Context) error
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

var _ QueueService = (*Service)(nil)

// Service runs the ledger audit on River.
type Service struct {
	client  *river.Client[pgx.Tx]
	pool    *pgxpool.Pool
	logger  *slog.Logger
	metrics gamemetrics.GameMetrics
}

// NewService connects a pgx pool, brings River's schema up to date and registers
// the audit workers. The audit runs every auditInterval and once on start.
func NewService(ctx context.Context, dsn string, ledger Ledger, auditInterval time.Duration, logger *slog.Logger, metrics gamemetrics.GameMetrics) (*Service, error) {
	ctxLogger := logger.With(
		attr.String("component", "river_queue"),
	)

	start := time.Now()
	metrics.RecordOperationAttempt(ctx, "initialize_service", "river")

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		metrics.RecordOperationFailure(ctx, "initialize_service", "river")
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		metrics.RecordOperationFailure(ctx, "initialize_service", "river")
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		metrics.RecordOperationFailure(ctx, "initialize_service", "river")
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	driver := riverpgxv5.New(pool)

	migrator, err := rivermigrate.New(driver, nil)
	if err != nil {
		pool.Close()
		metrics.RecordOperationFailure(ctx, "initialize_service", "river")
		return nil, fmt.Errorf("failed to create River migrator: %w", err)
	}
	if _, err := migrator.Migrate(ctx, rivermigrate.DirectionUp, &rivermigrate.MigrateOpts{}); err != nil {
		pool.Close()
		metrics.RecordOperationFailure(ctx, "initialize_service", "river")
		return nil, fmt.Errorf("failed to migrate River schema: %w", err)
	}

	workers := river.NewWorkers()
	river.AddWorker(workers, NewAuditWorker(ledger, ctxLogger))
	river.AddWorker(workers, NewReconcileWorker(ledger, ctxLogger))

	client, err := river.NewClient(driver, &river.Config{
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: 5},
			queueName:          {MaxWorkers: 5},
		},
		Workers:      workers,
		PeriodicJobs: periodicJobs(auditInterval),
	})
	if err != nil {
		pool.Close()
		metrics.RecordOperationFailure(ctx, "initialize_service", "river")
		return nil, fmt.Errorf("failed to create River client: %w", err)
	}

	metrics.RecordOperationSuccess(ctx, "initialize_service", "river")
	metrics.RecordOperationDuration(ctx, "initialize_service", "river", time.Since(start))

	ctxLogger.Info("Ledger queue service initialized", attr.Duration("audit_interval", auditInterval))
	return &Service{
		client:  client,
		pool:    pool,
		logger:  ctxLogger,
		metrics: metrics,
	}, nil
}

func periodicJobs(interval time.Duration) []*river.PeriodicJob {
	return []*river.PeriodicJob{
		river.NewPeriodicJob(
			river.PeriodicInterval(interval),
			func() (river.JobArgs, *river.InsertOpts) {
				return LedgerAuditJob{}, &river.InsertOpts{Queue: queueName}
			},
			&river.PeriodicJobOpts{RunOnStart: true},
		),
	}
}

// Start starts the River client.
func (s *Service) Start(ctx context.Context) error {
	s.logger.Info("Starting ledger queue service")
	if err := s.client.Start(ctx); err != nil {
		return fmt.Errorf("failed to start River client: %w", err)
	}
	return nil
}

// Stop waits for running jobs and releases the pool.
func (s *Service) Stop(ctx context.Context) error {
	s.logger.Info("Stopping ledger queue service")
	defer s.pool.Close()
	if err := s.client.Stop(ctx); err != nil {
		return fmt.Errorf("failed to stop River client: %w", err)
	}
	return nil
}

func (s *Service) EnqueueReconcile(ctx context.Context, gameID uuid.UUID) error {
	start := time.Now()
	s.metrics.RecordOperationAttempt(ctx, "enqueue_reconcile", "river")

	res, err := s.client.Insert(ctx, ReconcileGameJob{GameID: gameID}, &river.InsertOpts{
		Queue: queueName,
		UniqueOpts: river.UniqueOpts{
			ByArgs: true,
		},
	})
	if err != nil {
		s.metrics.RecordOperationFailure(ctx, "enqueue_reconcile", "river")
		return fmt.Errorf("failed to enqueue reconcile job: %w", err)
	}

	s.metrics.RecordOperationSuccess(ctx, "enqueue_reconcile", "river")
	s.metrics.RecordOperationDuration(ctx, "enqueue_reconcile", "river", time.Since(start))

	s.logger.InfoContext(ctx, "Reconcile job enqueued",
		attr.GameID(gameID),
		attr.Int64("job_id", res.Job.ID),
		attr.Bool("duplicate", res.UniqueSkippedAsDuplicate),
	)
	return nil
}

func (s *Service) HealthCheck(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return fmt.Errorf("queue service health check failed: %w", err)
	}
	return nil
}
