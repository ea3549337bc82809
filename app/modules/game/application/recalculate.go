package gameservice

import (
	"context"
	"fmt"

	gamedomain "github.com/Black-And-White-Club/euchre-bot/app/modules/game/domain"
	gamedb "github.com/Black-And-White-Club/euchre-bot/app/modules/game/infrastructure/repositories"
	"github.com/Black-And-White-Club/euchre-bot/app/shared/results"
	"github.com/Black-And-White-Club/euchre-bot/internal/observability/attr"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// RecalculateGame rebuilds every cumulative pair and the game status from the
// stored hand deltas. Running it on a consistent game changes nothing.
func (s *GameService) RecalculateGame(ctx context.Context, gameID uuid.UUID) (*RecalculationReport, error) {
	report, err := unwrap(withTelemetry(s, ctx, "RecalculateGame", gameID.String(), func(ctx context.Context) (results.OperationResult[*RecalculationReport, error], error) {
		return withGameLock(s, ctx, gameID, func(ctx context.Context, db bun.IDB) (results.OperationResult[*RecalculationReport, error], error) {
			game, err := s.loadGame(ctx, db, gameID)
			if err != nil {
				return splitErr[*RecalculationReport](err)
			}
			report, err := s.recalculate(ctx, db, game)
			if err != nil {
				return results.OperationResult[*RecalculationReport, error]{}, err
			}
			return results.SuccessResult[*RecalculationReport, error](report), nil
		})
	}))
	if err != nil {
		return nil, err
	}

	s.publishTransition(ctx, report.Game, report.Transition)
	return report, nil
}

// recalculate folds the hand deltas from (0,0), persists drifted hands, sets the
// game totals to the last pair and runs the repair transition. Callers hold the
// game lock.
func (s *GameService) recalculate(ctx context.Context, db bun.IDB, game *gamedomain.Game) (*RecalculationReport, error) {
	hands, err := s.loadHands(ctx, db, game.ID)
	if err != nil {
		return nil, err
	}

	changed, totals := gamedomain.Rebuild(hands)
	for _, h := range changed {
		if err := s.repo.UpdateHand(ctx, db, gamedb.HandFromDomain(h)); err != nil {
			return nil, fmt.Errorf("failed to rewrite hand %d: %w", h.HandNumber, err)
		}
	}

	before := game.Totals()
	game.SetTotals(totals)
	outcome := gamedomain.Repair(game.State(), totals, game.TargetScore)
	game.Apply(outcome, s.now())

	if err := s.repo.UpdateGame(ctx, db, gamedb.GameFromDomain(game)); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	switch outcome.Transition {
	case gamedomain.TransitionFinish:
		s.metrics.RecordGameFinished(ctx)
	case gamedomain.TransitionReopen:
		s.metrics.RecordGameReopened(ctx)
	}
	if len(changed) > 0 {
		s.metrics.RecordLedgerRepair(ctx, len(changed))
	}

	report := &RecalculationReport{
		Game:         game,
		HandsChecked: len(hands),
		HandsChanged: len(changed),
		Before:       before,
		After:        totals,
		Transition:   outcome.Transition,
	}

	if report.Drifted() {
		s.logger.InfoContext(ctx, "Game ledger recalculated",
			attr.GameID(game.ID),
			attr.Int("hands_checked", report.HandsChecked),
			attr.Int("hands_changed", report.HandsChanged),
			attr.String("transition", string(report.Transition)),
			attr.Int("team1_score", totals.Team1),
			attr.Int("team2_score", totals.Team2),
		)
	}
	return report, nil
}
