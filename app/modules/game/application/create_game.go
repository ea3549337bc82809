package gameservice

import (
	"context"
	"fmt"

	gamedomain "github.com/Black-And-White-Club/euchre-bot/app/modules/game/domain"
	gameevents "github.com/Black-And-White-Club/euchre-bot/app/modules/game/infrastructure/events"
	gamedb "github.com/Black-And-White-Club/euchre-bot/app/modules/game/infrastructure/repositories"
	"github.com/Black-And-White-Club/euchre-bot/app/shared/results"
	"github.com/Black-And-White-Club/euchre-bot/internal/observability/attr"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// CreateGame validates the roster and target and stores a new active game.
func (s *GameService) CreateGame(ctx context.Context, req CreateGameRequest) (*gamedomain.Game, error) {
	createTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[*gamedomain.Game, error], error) {
		return s.createGameLogic(ctx, db, req)
	}

	game, err := unwrap(withTelemetry(s, ctx, "CreateGame", req.Team1Name+" vs "+req.Team2Name, func(ctx context.Context) (results.OperationResult[*gamedomain.Game, error], error) {
		return runInTx(s, ctx, createTx)
	}))
	if err != nil {
		return nil, err
	}

	s.publish(ctx, gameevents.GameCreatedV1, gameevents.GamePayload{Game: game, OccurredAt: game.CreatedAt})
	return game, nil
}

func (s *GameService) createGameLogic(ctx context.Context, db bun.IDB, req CreateGameRequest) (results.OperationResult[*gamedomain.Game, error], error) {
	target := req.TargetScore
	if target == 0 {
		target = s.defaultTarget
	}
	if err := gamedomain.ValidateTarget(target); err != nil {
		return results.FailureResult[*gamedomain.Game, error](err), nil
	}

	roster, err := gamedomain.NewRoster(req.Team1Name, req.Team2Name, req.Team1Players, req.Team2Players)
	if err != nil {
		return results.FailureResult[*gamedomain.Game, error](err), nil
	}

	game := &gamedomain.Game{
		ID:           uuid.New(),
		Team1Name:    roster.Team1Name,
		Team2Name:    roster.Team2Name,
		Team1Players: roster.Team1Players,
		Team2Players: roster.Team2Players,
		TargetScore:  target,
		Status:       gamedomain.StatusActive,
		CreatedAt:    s.now().UTC(),
	}

	if err := s.repo.CreateGame(ctx, db, gamedb.GameFromDomain(game)); err != nil {
		return results.OperationResult[*gamedomain.Game, error]{}, fmt.Errorf("failed to create game: %w", err)
	}

	s.logger.InfoContext(ctx, "Game created",
		attr.GameID(game.ID),
		attr.String("team1", game.Team1Name),
		attr.String("team2", game.Team2Name),
		attr.Int("target_score", game.TargetScore),
	)
	return results.SuccessResult[*gamedomain.Game, error](game), nil
}
