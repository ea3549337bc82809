package gameservice

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gamedomain "github.com/Black-And-White-Club/euchre-bot/app/modules/game/domain"
	gameevents "github.com/Black-And-White-Club/euchre-bot/app/modules/game/infrastructure/events"
	gamedb "github.com/Black-And-White-Club/euchre-bot/app/modules/game/infrastructure/repositories"
	"github.com/Black-And-White-Club/euchre-bot/app/shared/results"
	"github.com/Black-And-White-Club/euchre-bot/internal/observability/attr"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// handPlan is a scored hand positioned at the end of a game's ledger.
type handPlan struct {
	game    *gamedomain.Game
	decl    gamedomain.Declaration
	number  int
	before  gamedomain.Totals
	after   gamedomain.Totals
	outcome gamedomain.Outcome
}

func (p *handPlan) preview(in HandInput) *HandPreview {
	pv := &HandPreview{
		GameID:          p.game.ID,
		HandNumber:      p.number,
		Input:           in,
		CallerTeam:      p.decl.CallerTeam,
		CallValue:       p.decl.Call.String(),
		IsEuchre:        p.decl.IsEuchre,
		OtherTeamPoints: p.decl.OtherTeamPoints,
		Team1Delta:      p.decl.Team1Delta,
		Team2Delta:      p.decl.Team2Delta,
		Before:          p.before,
		After:           p.after,
		EndsGame:        p.outcome.Transition == gamedomain.TransitionFinish,
	}
	if pv.EndsGame {
		pv.Winner = p.game.Roster().TeamName(p.outcome.State.Winner)
	}
	return pv
}

// planHand scores in against the current end of the ledger.
func (s *GameService) planHand(ctx context.Context, db bun.IDB, gameID uuid.UUID, in HandInput) (*handPlan, error) {
	game, err := s.loadGame(ctx, db, gameID)
	if err != nil {
		return nil, err
	}
	if game.Finished() {
		return nil, ErrGameFinished
	}

	decl, err := gamedomain.NewDeclaration(game.Roster(), in.CallerName, in.CallValue, in.PointsScored)
	if err != nil {
		return nil, err
	}

	hands, err := s.loadHands(ctx, db, gameID)
	if err != nil {
		return nil, err
	}

	before := gamedomain.Totals{}
	if n := len(hands); n > 0 {
		before = hands[n-1].Cumulative()
	}
	after := before.Add(decl.Delta())

	return &handPlan{
		game:    game,
		decl:    decl,
		number:  len(hands) + 1,
		before:  before,
		after:   after,
		outcome: gamedomain.Advance(game.State(), after, game.TargetScore),
	}, nil
}

// PreviewHand scores a hand without persisting anything.
func (s *GameService) PreviewHand(ctx context.Context, gameID uuid.UUID, in HandInput) (*HandPreview, error) {
	previewTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[*HandPreview, error], error) {
		plan, err := s.planHand(ctx, db, gameID, in)
		if err != nil {
			return splitErr[*HandPreview](err)
		}
		return results.SuccessResult[*HandPreview, error](plan.preview(in)), nil
	}

	return unwrap(withTelemetry(s, ctx, "PreviewHand", gameID.String(), func(ctx context.Context) (results.OperationResult[*HandPreview, error], error) {
		return runInTx(s, ctx, previewTx)
	}))
}

type appendOutcome struct {
	game       *gamedomain.Game
	hand       *gamedomain.Hand
	transition gamedomain.Transition
}

// AppendHand records a hand at the end of the ledger and finishes the game when
// the target is reached.
func (s *GameService) AppendHand(ctx context.Context, gameID uuid.UUID, in HandInput) (*gamedomain.Hand, error) {
	out, err := unwrap(withTelemetry(s, ctx, "AppendHand", gameID.String(), func(ctx context.Context) (results.OperationResult[*appendOutcome, error], error) {
		return withGameLock(s, ctx, gameID, func(ctx context.Context, db bun.IDB) (results.OperationResult[*appendOutcome, error], error) {
			return s.appendHandLogic(ctx, db, gameID, in)
		})
	}))
	if err != nil {
		return nil, err
	}

	s.publish(ctx, gameevents.HandAppendedV1, gameevents.HandPayload{Game: out.game, Hand: out.hand, OccurredAt: out.hand.CreatedAt})
	s.publishTransition(ctx, out.game, out.transition)
	return out.hand, nil
}

func (s *GameService) appendHandLogic(ctx context.Context, db bun.IDB, gameID uuid.UUID, in HandInput) (results.OperationResult[*appendOutcome, error], error) {
	plan, err := s.planHand(ctx, db, gameID, in)
	if err != nil {
		return splitErr[*appendOutcome](err)
	}
	s.warnUnresolvable(ctx, gameID, plan.decl)

	now := s.now().UTC()
	hand := &gamedomain.Hand{
		ID:         uuid.New(),
		GameID:     gameID,
		HandNumber: plan.number,
		Notes:      strings.TrimSpace(in.Notes),
		CreatedAt:  now,
	}
	hand.ApplyDeclaration(plan.decl)
	hand.SetCumulative(plan.after)

	if err := s.repo.InsertHand(ctx, db, gamedb.HandFromDomain(hand)); err != nil {
		return results.OperationResult[*appendOutcome, error]{}, fmt.Errorf("failed to insert hand: %w", err)
	}

	game := plan.game
	game.SetTotals(plan.after)
	game.Apply(plan.outcome, now)
	if err := s.repo.UpdateGame(ctx, db, gamedb.GameFromDomain(game)); err != nil {
		return results.OperationResult[*appendOutcome, error]{}, fmt.Errorf("failed to update game totals: %w", err)
	}

	s.metrics.RecordHandAppended(ctx, plan.decl.Call.Kind().String(), plan.decl.IsEuchre)
	if plan.outcome.Transition == gamedomain.TransitionFinish {
		s.metrics.RecordGameFinished(ctx)
		s.logger.InfoContext(ctx, "Game finished",
			attr.GameID(gameID),
			attr.String("winner", game.Winner),
			attr.Int("team1_score", game.Team1Score),
			attr.Int("team2_score", game.Team2Score),
		)
	}

	return results.SuccessResult[*appendOutcome, error](&appendOutcome{
		game:       game,
		hand:       hand,
		transition: plan.outcome.Transition,
	}), nil
}

type undoOutcome struct {
	removed *gamedomain.Hand
	report  *RecalculationReport
}

// UndoLastHand deletes the most recent hand and recalculates the game, reopening
// it if its totals fall back below the target.
func (s *GameService) UndoLastHand(ctx context.Context, gameID uuid.UUID) (bool, error) {
	out, err := unwrap(withTelemetry(s, ctx, "UndoLastHand", gameID.String(), func(ctx context.Context) (results.OperationResult[*undoOutcome, error], error) {
		return withGameLock(s, ctx, gameID, func(ctx context.Context, db bun.IDB) (results.OperationResult[*undoOutcome, error], error) {
			return s.undoLastHandLogic(ctx, db, gameID)
		})
	}))
	if err != nil {
		return false, err
	}
	if out.removed == nil {
		return false, nil
	}

	s.publish(ctx, gameevents.HandUndoneV1, gameevents.HandPayload{Game: out.report.Game, Hand: out.removed, OccurredAt: s.now().UTC()})
	s.publishTransition(ctx, out.report.Game, out.report.Transition)
	return true, nil
}

func (s *GameService) undoLastHandLogic(ctx context.Context, db bun.IDB, gameID uuid.UUID) (results.OperationResult[*undoOutcome, error], error) {
	game, err := s.loadGame(ctx, db, gameID)
	if err != nil {
		return splitErr[*undoOutcome](err)
	}

	hands, err := s.loadHands(ctx, db, gameID)
	if err != nil {
		return results.OperationResult[*undoOutcome, error]{}, err
	}
	if len(hands) == 0 {
		s.logger.InfoContext(ctx, "No hands to undo", attr.GameID(gameID))
		return results.SuccessResult[*undoOutcome, error](&undoOutcome{}), nil
	}

	last := hands[len(hands)-1]
	if err := s.repo.DeleteHand(ctx, db, last.ID); err != nil {
		return results.OperationResult[*undoOutcome, error]{}, fmt.Errorf("failed to delete hand: %w", err)
	}

	report, err := s.recalculate(ctx, db, game)
	if err != nil {
		return results.OperationResult[*undoOutcome, error]{}, err
	}

	s.logger.InfoContext(ctx, "Hand undone",
		attr.GameID(gameID),
		attr.HandID(last.ID),
		attr.Int("hand_number", last.HandNumber),
		attr.String("transition", string(report.Transition)),
	)
	return results.SuccessResult[*undoOutcome, error](&undoOutcome{removed: last, report: report}), nil
}

type updateOutcome struct {
	hand   *gamedomain.Hand
	report *RecalculationReport
}

// UpdateHand replaces a hand's declaration, re-scores it and recalculates every
// cumulative pair after it.
func (s *GameService) UpdateHand(ctx context.Context, gameID, handID uuid.UUID, upd HandUpdate) (*gamedomain.Hand, error) {
	out, err := unwrap(withTelemetry(s, ctx, "UpdateHand", handID.String(), func(ctx context.Context) (results.OperationResult[*updateOutcome, error], error) {
		return withGameLock(s, ctx, gameID, func(ctx context.Context, db bun.IDB) (results.OperationResult[*updateOutcome, error], error) {
			return s.updateHandLogic(ctx, db, gameID, handID, upd)
		})
	}))
	if err != nil {
		return nil, err
	}

	s.publish(ctx, gameevents.HandUpdatedV1, gameevents.HandPayload{Game: out.report.Game, Hand: out.hand, OccurredAt: s.now().UTC()})
	s.publishTransition(ctx, out.report.Game, out.report.Transition)
	return out.hand, nil
}

func (s *GameService) updateHandLogic(ctx context.Context, db bun.IDB, gameID, handID uuid.UUID, upd HandUpdate) (results.OperationResult[*updateOutcome, error], error) {
	game, err := s.loadGame(ctx, db, gameID)
	if err != nil {
		return splitErr[*updateOutcome](err)
	}

	row, err := s.repo.GetHand(ctx, db, gameID, handID)
	if err != nil {
		if errors.Is(err, gamedb.ErrNotFound) {
			return results.FailureResult[*updateOutcome, error](ErrHandNotFound), nil
		}
		return results.OperationResult[*updateOutcome, error]{}, fmt.Errorf("failed to get hand: %w", err)
	}
	hand := row.ToDomain()

	caller, callValue, points := hand.CallerName, hand.CallValue, hand.PointsScored
	if upd.CallerName != nil {
		caller = *upd.CallerName
	}
	if upd.CallValue != nil {
		callValue = *upd.CallValue
	}
	if upd.PointsScored != nil {
		points = *upd.PointsScored
	}

	decl, err := gamedomain.NewDeclaration(game.Roster(), caller, callValue, points)
	if err != nil {
		return splitErr[*updateOutcome](err)
	}
	s.warnUnresolvable(ctx, gameID, decl)

	hand.ApplyDeclaration(decl)
	if upd.Notes != nil {
		hand.Notes = strings.TrimSpace(*upd.Notes)
	}
	if err := s.repo.UpdateHand(ctx, db, gamedb.HandFromDomain(hand)); err != nil {
		return results.OperationResult[*updateOutcome, error]{}, fmt.Errorf("failed to update hand: %w", err)
	}

	report, err := s.recalculate(ctx, db, game)
	if err != nil {
		return results.OperationResult[*updateOutcome, error]{}, err
	}

	// Return the hand as recalculated, with its new cumulative pair.
	updated, err := s.repo.GetHand(ctx, db, gameID, handID)
	if err != nil {
		return results.OperationResult[*updateOutcome, error]{}, fmt.Errorf("failed to reload hand: %w", err)
	}

	return results.SuccessResult[*updateOutcome, error](&updateOutcome{hand: updated.ToDomain(), report: report}), nil
}

func (s *GameService) warnUnresolvable(ctx context.Context, gameID uuid.UUID, decl gamedomain.Declaration) {
	if err := decl.Call.Err(); err != nil {
		s.logger.WarnContext(ctx, "Call value scored with literal points",
			attr.ExtractCorrelationID(ctx),
			attr.GameID(gameID),
			attr.String("call_value", decl.Call.String()),
			attr.Int("points_scored", decl.PointsScored),
			attr.Error(err),
		)
		s.metrics.RecordUnresolvableCall(ctx)
	}
}
