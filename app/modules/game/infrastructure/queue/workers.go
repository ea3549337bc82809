package gamequeue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	gameservice "github.com/Black-And-White-Club/euchre-bot/app/modules/game/application"
	gamedomain "github.com/Black-And-White-Club/euchre-bot/app/modules/game/domain"
	gamedb "github.com/Black-And-White-Club/euchre-bot/app/modules/game/infrastructure/repositories"
	"github.com/Black-And-White-Club/euchre-bot/internal/observability/attr"
	"github.com/google/uuid"
	"github.com/riverqueue/river"
)

// Ledger is the part of the game service the workers drive.
type Ledger interface {
	ListGames(ctx context.Context, filter gamedb.StatusFilter) ([]*gamedomain.Game, error)
	RecalculateGame(ctx context.Context, gameID uuid.UUID) (*gameservice.RecalculationReport, error)
}

// AuditWorker rebuilds the ledger of every game, finished ones included so a
// drifted winner is reopened, and logs the ones that had drifted.
type AuditWorker struct {
	river.WorkerDefaults[LedgerAuditJob]
	ledger Ledger
	logger *slog.Logger
}

func NewAuditWorker(ledger Ledger, logger *slog.Logger) *AuditWorker {
	return &AuditWorker{ledger: ledger, logger: logger}
}

func (w *AuditWorker) Timeout(*river.Job[LedgerAuditJob]) time.Duration { return 5 * time.Minute }

func (w *AuditWorker) Work(ctx context.Context, job *river.Job[LedgerAuditJob]) error {
	games, err := w.ledger.ListGames(ctx, gamedb.FilterAll)
	if err != nil {
		return fmt.Errorf("failed to list games: %w", err)
	}

	var (
		errs    []error
		drifted int
	)
	for _, g := range games {
		report, err := w.ledger.RecalculateGame(ctx, g.ID)
		if err != nil {
			// Deleted between the listing and the rebuild.
			if errors.Is(err, gameservice.ErrGameNotFound) {
				continue
			}
			errs = append(errs, fmt.Errorf("game %s: %w", g.ID, err))
			continue
		}
		if report.Drifted() {
			drifted++
		}
	}

	w.logger.InfoContext(ctx, "Ledger audit completed",
		attr.Int64("job_id", job.ID),
		attr.Int("games_checked", len(games)),
		attr.Int("games_repaired", drifted),
		attr.Int("games_failed", len(errs)),
	)

	return errors.Join(errs...)
}

// ReconcileWorker rebuilds one game's ledger on demand.
type ReconcileWorker struct {
	river.WorkerDefaults[ReconcileGameJob]
	ledger Ledger
	logger *slog.Logger
}

func NewReconcileWorker(ledger Ledger, logger *slog.Logger) *ReconcileWorker {
	return &ReconcileWorker{ledger: ledger, logger: logger}
}

func (w *ReconcileWorker) Work(ctx context.Context, job *river.Job[ReconcileGameJob]) error {
	report, err := w.ledger.RecalculateGame(ctx, job.Args.GameID)
	if err != nil {
		if errors.Is(err, gameservice.ErrGameNotFound) {
			return river.JobCancel(err)
		}
		return err
	}

	w.logger.InfoContext(ctx, "Game ledger reconciled",
		attr.Int64("job_id", job.ID),
		attr.GameID(job.Args.GameID),
		attr.Int("hands_checked", report.HandsChecked),
		attr.Int("hands_changed", report.HandsChanged),
		attr.String("transition", string(report.Transition)),
	)
	return nil
}
