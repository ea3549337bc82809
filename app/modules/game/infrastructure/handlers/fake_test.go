package gamehandlers

import (
	"context"

	gameservice "github.com/Black-And-White-Club/euchre-bot/app/modules/game/application"
	gamedomain "github.com/Black-And-White-Club/euchre-bot/app/modules/game/domain"
	gamedb "github.com/Black-And-White-Club/euchre-bot/app/modules/game/infrastructure/repositories"
	"github.com/google/uuid"
)

// ------------------------
// Fake Service
// ------------------------

type FakeService struct {
	trace []string

	CreateGameFunc      func(ctx context.Context, req gameservice.CreateGameRequest) (*gamedomain.Game, error)
	GetGameFunc         func(ctx context.Context, gameID uuid.UUID) (*gamedomain.Game, error)
	ListGamesFunc       func(ctx context.Context, filter gamedb.StatusFilter) ([]*gamedomain.Game, error)
	PreviewHandFunc     func(ctx context.Context, gameID uuid.UUID, in gameservice.HandInput) (*gameservice.HandPreview, error)
	AppendHandFunc      func(ctx context.Context, gameID uuid.UUID, in gameservice.HandInput) (*gamedomain.Hand, error)
	UndoLastHandFunc    func(ctx context.Context, gameID uuid.UUID) (bool, error)
	UpdateHandFunc      func(ctx context.Context, gameID, handID uuid.UUID, upd gameservice.HandUpdate) (*gamedomain.Hand, error)
	DeleteGameFunc      func(ctx context.Context, gameID uuid.UUID) error
	ListHandsFunc       func(ctx context.Context, gameID uuid.UUID) ([]*gamedomain.Hand, error)
	ListAllHandsFunc    func(ctx context.Context) ([]*gamedomain.Hand, error)
	RecalculateGameFunc func(ctx context.Context, gameID uuid.UUID) (*gameservice.RecalculationReport, error)
}

func (f *FakeService) Trace() []string { return f.trace }

func (f *FakeService) CreateGame(ctx context.Context, req gameservice.CreateGameRequest) (*gamedomain.Game, error) {
	f.trace = append(f.trace, "CreateGame")
	if f.CreateGameFunc != nil {
		return f.CreateGameFunc(ctx, req)
	}
	return &gamedomain.Game{ID: uuid.New(), Team1Name: req.Team1Name, Team2Name: req.Team2Name}, nil
}

func (f *FakeService) GetGame(ctx context.Context, gameID uuid.UUID) (*gamedomain.Game, error) {
	f.trace = append(f.trace, "GetGame")
	if f.GetGameFunc != nil {
		return f.GetGameFunc(ctx, gameID)
	}
	return &gamedomain.Game{ID: gameID}, nil
}

func (f *FakeService) ListGames(ctx context.Context, filter gamedb.StatusFilter) ([]*gamedomain.Game, error) {
	f.trace = append(f.trace, "ListGames")
	if f.ListGamesFunc != nil {
		return f.ListGamesFunc(ctx, filter)
	}
	return []*gamedomain.Game{}, nil
}

func (f *FakeService) PreviewHand(ctx context.Context, gameID uuid.UUID, in gameservice.HandInput) (*gameservice.HandPreview, error) {
	f.trace = append(f.trace, "PreviewHand")
	if f.PreviewHandFunc != nil {
		return f.PreviewHandFunc(ctx, gameID, in)
	}
	return &gameservice.HandPreview{GameID: gameID, Input: in}, nil
}

func (f *FakeService) AppendHand(ctx context.Context, gameID uuid.UUID, in gameservice.HandInput) (*gamedomain.Hand, error) {
	f.trace = append(f.trace, "AppendHand")
	if f.AppendHandFunc != nil {
		return f.AppendHandFunc(ctx, gameID, in)
	}
	return &gamedomain.Hand{ID: uuid.New(), GameID: gameID, HandNumber: 1, CallerName: in.CallerName}, nil
}

func (f *FakeService) UndoLastHand(ctx context.Context, gameID uuid.UUID) (bool, error) {
	f.trace = append(f.trace, "UndoLastHand")
	if f.UndoLastHandFunc != nil {
		return f.UndoLastHandFunc(ctx, gameID)
	}
	return true, nil
}

func (f *FakeService) UpdateHand(ctx context.Context, gameID, handID uuid.UUID, upd gameservice.HandUpdate) (*gamedomain.Hand, error) {
	f.trace = append(f.trace, "UpdateHand")
	if f.UpdateHandFunc != nil {
		return f.UpdateHandFunc(ctx, gameID, handID, upd)
	}
	return &gamedomain.Hand{ID: handID, GameID: gameID}, nil
}

func (f *FakeService) DeleteGame(ctx context.Context, gameID uuid.UUID) error {
	f.trace = append(f.trace, "DeleteGame")
	if f.DeleteGameFunc != nil {
		return f.DeleteGameFunc(ctx, gameID)
	}
	return nil
}

func (f *FakeService) ListHands(ctx context.Context, gameID uuid.UUID) ([]*gamedomain.Hand, error) {
	f.trace = append(f.trace, "ListHands")
	if f.ListHandsFunc != nil {
		return f.ListHandsFunc(ctx, gameID)
	}
	return []*gamedomain.Hand{}, nil
}

func (f *FakeService) ListAllHands(ctx context.Context) ([]*gamedomain.Hand, error) {
	f.trace = append(f.trace, "ListAllHands")
	if f.ListAllHandsFunc != nil {
		return f.ListAllHandsFunc(ctx)
	}
	return []*gamedomain.Hand{}, nil
}

func (f *FakeService) RecalculateGame(ctx context.Context, gameID uuid.UUID) (*gameservice.RecalculationReport, error) {
	f.trace = append(f.trace, "RecalculateGame")
	if f.RecalculateGameFunc != nil {
		return f.RecalculateGameFunc(ctx, gameID)
	}
	return &gameservice.RecalculationReport{Game: &gamedomain.Game{ID: gameID}}, nil
}

var _ gameservice.Service = (*FakeService)(nil)
