package gameservice

import (
	"context"
	"errors"
	"fmt"

	gameevents "github.com/Black-And-White-Club/euchre-bot/app/modules/game/infrastructure/events"
	gamedb "github.com/Black-And-White-Club/euchre-bot/app/modules/game/infrastructure/repositories"
	"github.com/Black-And-White-Club/euchre-bot/app/shared/results"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// DeleteGame removes a game and, through the foreign key, all of its hands.
func (s *GameService) DeleteGame(ctx context.Context, gameID uuid.UUID) error {
	_, err := unwrap(withTelemetry(s, ctx, "DeleteGame", gameID.String(), func(ctx context.Context) (results.OperationResult[bool, error], error) {
		return withGameLock(s, ctx, gameID, func(ctx context.Context, db bun.IDB) (results.OperationResult[bool, error], error) {
			if err := s.repo.DeleteGame(ctx, db, gameID); err != nil {
				if errors.Is(err, gamedb.ErrNoRowsAffected) || errors.Is(err, gamedb.ErrNotFound) {
					return results.FailureResult[bool, error](ErrGameNotFound), nil
				}
				return results.OperationResult[bool, error]{}, fmt.Errorf("failed to delete game: %w", err)
			}
			return results.SuccessResult[bool, error](true), nil
		})
	}))
	if err != nil {
		return err
	}

	s.publish(ctx, gameevents.GameDeletedV1, gameevents.GameDeletedPayload{GameID: gameID, OccurredAt: s.now().UTC()})
	return nil
}
