package statsservice

import (
	"context"

	gameservice "github.com/Black-And-White-Club/euchre-bot/app/modules/game/application"
	gamedomain "github.com/Black-And-White-Club/euchre-bot/app/modules/game/domain"
	gamedb "github.com/Black-And-White-Club/euchre-bot/app/modules/game/infrastructure/repositories"
	"github.com/google/uuid"
)

// FakeSource serves a fixed ledger and counts calls.
type FakeSource struct {
	trace []string

	Games []*gamedomain.Game
	Hands []*gamedomain.Hand

	ListGamesErr error
	// OnListGames runs inside ListGames before the games are returned.
	OnListGames func()
}

func (f *FakeSource) GetGame(ctx context.Context, gameID uuid.UUID) (*gamedomain.Game, error) {
	f.trace = append(f.trace, "GetGame")
	for _, g := range f.Games {
		if g.ID == gameID {
			return g, nil
		}
	}
	return nil, gameservice.ErrGameNotFound
}

func (f *FakeSource) ListGames(ctx context.Context, filter gamedb.StatusFilter) ([]*gamedomain.Game, error) {
	f.trace = append(f.trace, "ListGames")
	if f.ListGamesErr != nil {
		return nil, f.ListGamesErr
	}
	games := f.Games
	if f.OnListGames != nil {
		f.OnListGames()
	}
	return games, nil
}

func (f *FakeSource) ListHands(ctx context.Context, gameID uuid.UUID) ([]*gamedomain.Hand, error) {
	f.trace = append(f.trace, "ListHands")
	var out []*gamedomain.Hand
	for _, h := range f.Hands {
		if h.GameID == gameID {
			out = append(out, h)
		}
	}
	return out, nil
}

func (f *FakeSource) ListAllHands(ctx context.Context) ([]*gamedomain.Hand, error) {
	f.trace = append(f.trace, "ListAllHands")
	return f.Hands, nil
}

func (f *FakeSource) Trace() []string { return f.trace }
