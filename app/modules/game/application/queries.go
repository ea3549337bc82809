package gameservice

import (
	"context"
	"fmt"

	gamedomain "github.com/Black-And-White-Club/euchre-bot/app/modules/game/domain"
	gamedb "github.com/Black-And-White-Club/euchre-bot/app/modules/game/infrastructure/repositories"
	"github.com/Black-And-White-Club/euchre-bot/app/shared/results"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Reads take no game lock.

func (s *GameService) GetGame(ctx context.Context, gameID uuid.UUID) (*gamedomain.Game, error) {
	return unwrap(withTelemetry(s, ctx, "GetGame", gameID.String(), func(ctx context.Context) (results.OperationResult[*gamedomain.Game, error], error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[*gamedomain.Game, error], error) {
			game, err := s.loadGame(ctx, db, gameID)
			if err != nil {
				return splitErr[*gamedomain.Game](err)
			}
			return results.SuccessResult[*gamedomain.Game, error](game), nil
		})
	}))
}

// ListGames returns games filtered by status, newest first.
func (s *GameService) ListGames(ctx context.Context, filter gamedb.StatusFilter) ([]*gamedomain.Game, error) {
	return unwrap(withTelemetry(s, ctx, "ListGames", string(filter), func(ctx context.Context) (results.OperationResult[[]*gamedomain.Game, error], error) {
		rows, err := s.repo.ListGames(ctx, nil, filter)
		if err != nil {
			return results.OperationResult[[]*gamedomain.Game, error]{}, fmt.Errorf("failed to list games: %w", err)
		}
		games := make([]*gamedomain.Game, len(rows))
		for i, row := range rows {
			games[i] = row.ToDomain()
		}
		return results.SuccessResult[[]*gamedomain.Game, error](games), nil
	}))
}

// ListHands returns a game's hands in hand_number order.
func (s *GameService) ListHands(ctx context.Context, gameID uuid.UUID) ([]*gamedomain.Hand, error) {
	return unwrap(withTelemetry(s, ctx, "ListHands", gameID.String(), func(ctx context.Context) (results.OperationResult[[]*gamedomain.Hand, error], error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (results.OperationResult[[]*gamedomain.Hand, error], error) {
			if _, err := s.loadGame(ctx, db, gameID); err != nil {
				return splitErr[[]*gamedomain.Hand](err)
			}
			hands, err := s.loadHands(ctx, db, gameID)
			if err != nil {
				return results.OperationResult[[]*gamedomain.Hand, error]{}, err
			}
			return results.SuccessResult[[]*gamedomain.Hand, error](hands), nil
		})
	}))
}

// ListAllHands returns every stored hand, grouped by game.
func (s *GameService) ListAllHands(ctx context.Context) ([]*gamedomain.Hand, error) {
	return unwrap(withTelemetry(s, ctx, "ListAllHands", "all", func(ctx context.Context) (results.OperationResult[[]*gamedomain.Hand, error], error) {
		rows, err := s.repo.ListAllHands(ctx, nil)
		if err != nil {
			return results.OperationResult[[]*gamedomain.Hand, error]{}, fmt.Errorf("failed to list all hands: %w", err)
		}
		hands := make([]*gamedomain.Hand, len(rows))
		for i, row := range rows {
			hands[i] = row.ToDomain()
		}
		return results.SuccessResult[[]*gamedomain.Hand, error](hands), nil
	}))
}
