package gameservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	gamedomain "github.com/Black-And-White-Club/euchre-bot/app/modules/game/domain"
	gameevents "github.com/Black-And-White-Club/euchre-bot/app/modules/game/infrastructure/events"
	gamedb "github.com/Black-And-White-Club/euchre-bot/app/modules/game/infrastructure/repositories"
	gamemetrics "github.com/Black-And-White-Club/euchre-bot/app/modules/game/metrics"
	"github.com/Black-And-White-Club/euchre-bot/app/shared/results"
	"github.com/Black-And-White-Club/euchre-bot/config"
	"github.com/Black-And-White-Club/euchre-bot/internal/observability/attr"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "GameService"

// GameService implements the Service interface.
type GameService struct {
	repo          gamedb.Repository
	publisher     gameevents.Publisher
	logger        *slog.Logger
	metrics       gamemetrics.GameMetrics
	tracer        trace.Tracer
	db            *bun.DB
	locks         *keyedMutex
	defaultTarget int
	now           func() time.Time
}

// NewGameService creates a new GameService. A nil db runs repository calls
// without a transaction, which is what the unit tests do.
func NewGameService(
	repo gamedb.Repository,
	publisher gameevents.Publisher,
	logger *slog.Logger,
	metrics gamemetrics.GameMetrics,
	tracer trace.Tracer,
	db *bun.DB,
	defaultTarget int,
) *GameService {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = gamemetrics.NewNoop()
	}
	if defaultTarget <= 0 {
		defaultTarget = config.DefaultTargetScore
	}
	return &GameService{
		repo:          repo,
		publisher:     publisher,
		logger:        logger,
		metrics:       metrics,
		tracer:        tracer,
		db:            db,
		locks:         newKeyedMutex(),
		defaultTarget: defaultTarget,
		now:           time.Now,
	}
}

// loadGame fetches a game, reporting a missing row as a domain failure.
func (s *GameService) loadGame(ctx context.Context, db bun.IDB, gameID uuid.UUID) (*gamedomain.Game, error) {
	row, err := s.repo.GetGame(ctx, db, gameID)
	if err != nil {
		if errors.Is(err, gamedb.ErrNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to get game: %w", err)
	}
	return row.ToDomain(), nil
}

func (s *GameService) loadHands(ctx context.Context, db bun.IDB, gameID uuid.UUID) ([]*gamedomain.Hand, error) {
	rows, err := s.repo.ListHands(ctx, db, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to list hands: %w", err)
	}
	hands := make([]*gamedomain.Hand, len(rows))
	for i, row := range rows {
		hands[i] = row.ToDomain()
	}
	return hands, nil
}

// splitErr turns a domain error into a failure result and passes anything else
// through as an infrastructure error.
func splitErr[S any](err error) (results.OperationResult[S, error], error) {
	if IsDomainError(err) {
		return results.FailureResult[S, error](err), nil
	}
	return results.OperationResult[S, error]{}, err
}

// unwrap converts an operation result back into the (value, error) pair the
// Service interface exposes.
func unwrap[S any](result results.OperationResult[S, error], err error) (S, error) {
	var zero S
	if err != nil {
		return zero, err
	}
	if result.IsFailure() {
		return zero, *result.Failure
	}
	if !result.IsSuccess() {
		return zero, errors.New("operation returned no result")
	}
	return *result.Success, nil
}

// publish emits an event after commit. Failures are logged and counted; the
// ledger change stands.
func (s *GameService) publish(ctx context.Context, topic string, payload any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, topic, payload); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish game event",
			attr.ExtractCorrelationID(ctx),
			attr.String("topic", topic),
			attr.Error(err),
		)
		s.metrics.RecordEventPublishFailure(ctx, topic)
	}
}

// publishTransition emits the lifecycle event matching a transition, if any.
func (s *GameService) publishTransition(ctx context.Context, game *gamedomain.Game, transition gamedomain.Transition) {
	switch transition {
	case gamedomain.TransitionFinish, gamedomain.TransitionWinnerChanged:
		s.publish(ctx, gameevents.GameFinishedV1, gameevents.GamePayload{Game: game, OccurredAt: s.now().UTC()})
	case gamedomain.TransitionReopen:
		s.publish(ctx, gameevents.GameReopenedV1, gameevents.GamePayload{Game: game, OccurredAt: s.now().UTC()})
	}
}

// -----------------------------------------------------------------------------
// Generic Helpers (Defined as functions because methods cannot have type params)
// -----------------------------------------------------------------------------

type operationFunc[S any, F any] func(ctx context.Context) (results.OperationResult[S, F], error)

// withTelemetry wraps a service operation with tracing, metrics, and panic recovery.
func withTelemetry[S any, F any](
	s *GameService,
	ctx context.Context,
	operationName string,
	identifier string,
	op operationFunc[S, F],
) (result results.OperationResult[S, F], err error) {
	var span trace.Span
	if s.tracer != nil {
		ctx, span = s.tracer.Start(ctx, operationName, trace.WithAttributes(
			attribute.String("operation", operationName),
			attribute.String("identifier", identifier),
		))
	} else {
		span = trace.SpanFromContext(ctx)
	}
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, operationName, serviceName)

	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operationName, serviceName, time.Since(startTime))
	}()

	s.logger.InfoContext(ctx, "Operation triggered", attr.ExtractCorrelationID(ctx), attr.String("operation", operationName))

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				attr.ExtractCorrelationID(ctx),
				attr.String("identifier", identifier),
				attr.Error(err),
			)
			s.metrics.RecordOperationFailure(ctx, operationName, serviceName)
			span.RecordError(err)
			result = results.OperationResult[S, F]{}
		}
	}()

	result, err = op(ctx)

	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Operation failed with error",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
			attr.Error(wrappedErr),
		)
		s.metrics.RecordOperationFailure(ctx, operationName, serviceName)
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	if result.IsFailure() {
		s.logger.WarnContext(ctx, "Operation returned failure result",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
			attr.Any("failure_payload", *result.Failure),
		)
	}

	if result.IsSuccess() {
		s.logger.InfoContext(ctx, "Operation completed successfully",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
		)
	}

	s.metrics.RecordOperationSuccess(ctx, operationName, serviceName)
	return result, nil
}

// runInTx ensures the operation runs within a transaction.
func runInTx[S any, F any](
	s *GameService,
	ctx context.Context,
	fn func(ctx context.Context, db bun.IDB) (results.OperationResult[S, F], error),
) (results.OperationResult[S, F], error) {
	if s.db == nil {
		return fn(ctx, nil)
	}

	var result results.OperationResult[S, F]
	err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		var txErr error
		result, txErr = fn(ctx, tx)
		if txErr == nil && result.IsFailure() {
			// Domain failures must not leave partial writes behind.
			return errRollback
		}
		return txErr
	})
	if errors.Is(err, errRollback) {
		return result, nil
	}
	return result, err
}

var errRollback = errors.New("rollback on domain failure")

// withGameLock serializes fn per game: in-process first, then with a
// transaction-scoped advisory lock so other replicas wait too.
func withGameLock[S any](
	s *GameService,
	ctx context.Context,
	gameID uuid.UUID,
	fn func(ctx context.Context, db bun.IDB) (results.OperationResult[S, error], error),
) (results.OperationResult[S, error], error) {
	unlock := s.locks.Lock(gameID)
	defer unlock()

	return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[S, error], error) {
		if err := s.repo.AcquireGameLock(ctx, db, gameID); err != nil {
			return results.OperationResult[S, error]{}, err
		}
		return fn(ctx, db)
	})
}
var _ Service = (*GameService)(nil)
