package gamequeue

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	gameservice "github.com/Black-And-White-Club/euchre-bot/app/modules/game/application"
	gamedomain "github.com/Black-And-White-Club/euchre-bot/app/modules/game/domain"
	gamedb "github.com/Black-And-White-Club/euchre-bot/app/modules/game/infrastructure/repositories"
	"github.com/google/uuid"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/rivertype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type FakeLedger struct {
	trace []string

	ListGamesFunc       func(ctx context.Context, filter gamedb.StatusFilter) ([]*gamedomain.Game, error)
	RecalculateGameFunc func(ctx context.Context, gameID uuid.UUID) (*gameservice.RecalculationReport, error)
}

func (f *FakeLedger) ListGames(ctx context.Context, filter gamedb.StatusFilter) ([]*gamedomain.Game, error) {
	f.trace = append(f.trace, "ListGames:"+string(filter))
	if f.ListGamesFunc != nil {
		return f.ListGamesFunc(ctx, filter)
	}
	return nil, nil
}

func (f *FakeLedger) RecalculateGame(ctx context.Context, gameID uuid.UUID) (*gameservice.RecalculationReport, error) {
	f.trace = append(f.trace, "RecalculateGame")
	if f.RecalculateGameFunc != nil {
		return f.RecalculateGameFunc(ctx, gameID)
	}
	return &gameservice.RecalculationReport{Transition: gamedomain.TransitionNone}, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAuditWorker_Work(t *testing.T) {
	g1, g2, g3 := uuid.New(), uuid.New(), uuid.New()
	games := []*gamedomain.Game{{ID: g1}, {ID: g2}, {ID: g3}}

	tests := []struct {
		name      string
		recalc    func(ctx context.Context, id uuid.UUID) (*gameservice.RecalculationReport, error)
		listErr   error
		wantErr   bool
		wantTrace int
	}{
		{
			name:      "all clean",
			wantTrace: 4,
		},
		{
			name: "game deleted mid audit is skipped",
			recalc: func(ctx context.Context, id uuid.UUID) (*gameservice.RecalculationReport, error) {
				if id == g2 {
					return nil, gameservice.ErrGameNotFound
				}
				return &gameservice.RecalculationReport{Transition: gamedomain.TransitionNone}, nil
			},
			wantTrace: 4,
		},
		{
			name: "one failure does not stop the audit",
			recalc: func(ctx context.Context, id uuid.UUID) (*gameservice.RecalculationReport, error) {
				if id == g1 {
					return nil, errors.New("deadlock detected")
				}
				return &gameservice.RecalculationReport{HandsChanged: 2, Transition: gamedomain.TransitionNone}, nil
			},
			wantErr:   true,
			wantTrace: 4,
		},
		{
			name:      "listing fails",
			listErr:   errors.New("connection reset"),
			wantErr:   true,
			wantTrace: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := &FakeLedger{
				ListGamesFunc: func(ctx context.Context, filter gamedb.StatusFilter) ([]*gamedomain.Game, error) {
					return games, tt.listErr
				},
				RecalculateGameFunc: tt.recalc,
			}
			w := NewAuditWorker(ledger, discardLogger())

			err := w.Work(context.Background(), &river.Job[LedgerAuditJob]{JobRow: &rivertype.JobRow{ID: 1}})
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Len(t, ledger.trace, tt.wantTrace)
			assert.Equal(t, "ListGames:"+string(gamedb.FilterAll), ledger.trace[0])
		})
	}
}

func TestAuditWorker_ReopensDriftedFinishedGame(t *testing.T) {
	active := &gamedomain.Game{ID: uuid.New(), Status: gamedomain.StatusActive}
	finished := &gamedomain.Game{ID: uuid.New(), Status: gamedomain.StatusFinished, Winner: "Red"}

	var rebuilt []uuid.UUID
	ledger := &FakeLedger{
		ListGamesFunc: func(ctx context.Context, filter gamedb.StatusFilter) ([]*gamedomain.Game, error) {
			if filter == gamedb.FilterActive {
				return []*gamedomain.Game{active}, nil
			}
			return []*gamedomain.Game{active, finished}, nil
		},
		RecalculateGameFunc: func(ctx context.Context, id uuid.UUID) (*gameservice.RecalculationReport, error) {
			rebuilt = append(rebuilt, id)
			if id == finished.ID {
				return &gameservice.RecalculationReport{HandsChanged: 1, Transition: gamedomain.TransitionReopen}, nil
			}
			return &gameservice.RecalculationReport{Transition: gamedomain.TransitionNone}, nil
		},
	}

	err := NewAuditWorker(ledger, discardLogger()).Work(context.Background(), &river.Job[LedgerAuditJob]{JobRow: &rivertype.JobRow{ID: 2}})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{active.ID, finished.ID}, rebuilt)
}

func TestReconcileWorker_Work(t *testing.T) {
	gameID := uuid.New()
	job := &river.Job[ReconcileGameJob]{JobRow: &rivertype.JobRow{ID: 7}, Args: ReconcileGameJob{GameID: gameID}}

	t.Run("rebuilds the requested game", func(t *testing.T) {
		var got uuid.UUID
		ledger := &FakeLedger{
			RecalculateGameFunc: func(ctx context.Context, id uuid.UUID) (*gameservice.RecalculationReport, error) {
				got = id
				return &gameservice.RecalculationReport{HandsChecked: 3, Transition: gamedomain.TransitionNone}, nil
			},
		}
		require.NoError(t, NewReconcileWorker(ledger, discardLogger()).Work(context.Background(), job))
		assert.Equal(t, gameID, got)
	})

	t.Run("missing game cancels the job", func(t *testing.T) {
		ledger := &FakeLedger{
			RecalculateGameFunc: func(ctx context.Context, id uuid.UUID) (*gameservice.RecalculationReport, error) {
				return nil, gameservice.ErrGameNotFound
			},
		}
		err := NewReconcileWorker(ledger, discardLogger()).Work(context.Background(), job)
		require.Error(t, err)
		assert.ErrorIs(t, err, gameservice.ErrGameNotFound)
	})

	t.Run("infrastructure errors are retried", func(t *testing.T) {
		boom := errors.New("timeout")
		ledger := &FakeLedger{
			RecalculateGameFunc: func(ctx context.Context, id uuid.UUID) (*gameservice.RecalculationReport, error) {
				return nil, boom
			},
		}
		err := NewReconcileWorker(ledger, discardLogger()).Work(context.Background(), job)
		assert.Equal(t, boom, err)
	})
}

func TestJobKinds(t *testing.T) {
	assert.Equal(t, "ledger_audit", LedgerAuditJob{}.Kind())
	assert.Equal(t, "ledger_reconcile", ReconcileGameJob{}.Kind())
	assert.Len(t, periodicJobs(time.Hour), 1)
}
