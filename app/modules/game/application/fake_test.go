package gameservice

import (
	"context"
	"sort"
	"sync"

	gamedb "github.com/Black-And-White-Club/euchre-bot/app/modules/game/infrastructure/repositories"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Game Repo
// ------------------------

// FakeGameRepo is an in-memory Repository. XxxFunc hooks override the stateful
// default for a single method.
type FakeGameRepo struct {
	mu    sync.Mutex
	trace []string

	games map[uuid.UUID]gamedb.Game
	hands map[uuid.UUID]gamedb.Hand

	GetGameFunc         func(ctx context.Context, db bun.IDB, id uuid.UUID) (*gamedb.Game, error)
	ListHandsFunc       func(ctx context.Context, db bun.IDB, gameID uuid.UUID) ([]*gamedb.Hand, error)
	InsertHandFunc      func(ctx context.Context, db bun.IDB, hand *gamedb.Hand) error
	UpdateGameFunc      func(ctx context.Context, db bun.IDB, game *gamedb.Game) error
	AcquireGameLockFunc func(ctx context.Context, db bun.IDB, id uuid.UUID) error
}

func NewFakeGameRepo() *FakeGameRepo {
	return &FakeGameRepo{
		trace: []string{},
		games: make(map[uuid.UUID]gamedb.Game),
		hands: make(map[uuid.UUID]gamedb.Hand),
	}
}

func (f *FakeGameRepo) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeGameRepo) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

// PutHand stores a row directly, bypassing the service. Used to seed drift.
func (f *FakeGameRepo) PutHand(h gamedb.Hand) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hands[h.ID] = h
}

func (f *FakeGameRepo) PutGame(g gamedb.Game) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.games[g.ID] = g
}

// --- Repository Interface Implementation ---

func (f *FakeGameRepo) CreateGame(ctx context.Context, db bun.IDB, game *gamedb.Game) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("CreateGame")
	f.games[game.ID] = *game
	return nil
}

func (f *FakeGameRepo) GetGame(ctx context.Context, db bun.IDB, id uuid.UUID) (*gamedb.Game, error) {
	if f.GetGameFunc != nil {
		f.mu.Lock()
		f.record("GetGame")
		f.mu.Unlock()
		return f.GetGameFunc(ctx, db, id)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("GetGame")
	g, ok := f.games[id]
	if !ok {
		return nil, gamedb.ErrNotFound
	}
	return &g, nil
}

func (f *FakeGameRepo) ListGames(ctx context.Context, db bun.IDB, filter gamedb.StatusFilter) ([]*gamedb.Game, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("ListGames")
	var out []*gamedb.Game
	for _, g := range f.games {
		if filter != gamedb.FilterAll && g.Status != string(filter) {
			continue
		}
		g := g
		out = append(out, &g)
	}
	sort.Slice(out, func(i, j int) bool {
		if filter == gamedb.FilterFinished && out[i].FinishedAt != nil && out[j].FinishedAt != nil {
			return out[i].FinishedAt.After(*out[j].FinishedAt)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (f *FakeGameRepo) UpdateGame(ctx context.Context, db bun.IDB, game *gamedb.Game) error {
	if f.UpdateGameFunc != nil {
		f.mu.Lock()
		f.record("UpdateGame")
		f.mu.Unlock()
		return f.UpdateGameFunc(ctx, db, game)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("UpdateGame")
	if _, ok := f.games[game.ID]; !ok {
		return gamedb.ErrNoRowsAffected
	}
	f.games[game.ID] = *game
	return nil
}

func (f *FakeGameRepo) DeleteGame(ctx context.Context, db bun.IDB, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("DeleteGame")
	if _, ok := f.games[id]; !ok {
		return gamedb.ErrNoRowsAffected
	}
	delete(f.games, id)
	for hid, h := range f.hands {
		if h.GameID == id {
			delete(f.hands, hid)
		}
	}
	return nil
}

func (f *FakeGameRepo) AcquireGameLock(ctx context.Context, db bun.IDB, id uuid.UUID) error {
	f.mu.Lock()
	f.record("AcquireGameLock")
	f.mu.Unlock()
	if f.AcquireGameLockFunc != nil {
		return f.AcquireGameLockFunc(ctx, db, id)
	}
	return nil
}

func (f *FakeGameRepo) InsertHand(ctx context.Context, db bun.IDB, hand *gamedb.Hand) error {
	if f.InsertHandFunc != nil {
		f.mu.Lock()
		f.record("InsertHand")
		f.mu.Unlock()
		return f.InsertHandFunc(ctx, db, hand)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("InsertHand")
	f.hands[hand.ID] = *hand
	return nil
}

func (f *FakeGameRepo) GetHand(ctx context.Context, db bun.IDB, gameID, handID uuid.UUID) (*gamedb.Hand, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("GetHand")
	h, ok := f.hands[handID]
	if !ok || h.GameID != gameID {
		return nil, gamedb.ErrNotFound
	}
	return &h, nil
}

func (f *FakeGameRepo) ListHands(ctx context.Context, db bun.IDB, gameID uuid.UUID) ([]*gamedb.Hand, error) {
	if f.ListHandsFunc != nil {
		f.mu.Lock()
		f.record("ListHands")
		f.mu.Unlock()
		return f.ListHandsFunc(ctx, db, gameID)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("ListHands")
	var out []*gamedb.Hand
	for _, h := range f.hands {
		if h.GameID == gameID {
			h := h
			out = append(out, &h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].HandNumber < out[j].HandNumber })
	return out, nil
}

func (f *FakeGameRepo) ListAllHands(ctx context.Context, db bun.IDB) ([]*gamedb.Hand, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("ListAllHands")
	out := make([]*gamedb.Hand, 0, len(f.hands))
	for _, h := range f.hands {
		h := h
		out = append(out, &h)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].GameID != out[j].GameID {
			return out[i].GameID.String() < out[j].GameID.String()
		}
		return out[i].HandNumber < out[j].HandNumber
	})
	return out, nil
}

func (f *FakeGameRepo) UpdateHand(ctx context.Context, db bun.IDB, hand *gamedb.Hand) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("UpdateHand")
	if _, ok := f.hands[hand.ID]; !ok {
		return gamedb.ErrNoRowsAffected
	}
	f.hands[hand.ID] = *hand
	return nil
}

func (f *FakeGameRepo) DeleteHand(ctx context.Context, db bun.IDB, handID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("DeleteHand")
	if _, ok := f.hands[handID]; !ok {
		return gamedb.ErrNoRowsAffected
	}
	delete(f.hands, handID)
	return nil
}

var _ gamedb.Repository = (*FakeGameRepo)(nil)

// ------------------------
// Fake Publisher
// ------------------------

type FakePublisher struct {
	mu     sync.Mutex
	topics []string

	PublishFunc func(ctx context.Context, topic string, payload any) error
}

func (p *FakePublisher) Publish(ctx context.Context, topic string, payload any) error {
	p.mu.Lock()
	p.topics = append(p.topics, topic)
	p.mu.Unlock()
	if p.PublishFunc != nil {
		return p.PublishFunc(ctx, topic, payload)
	}
	return nil
}

func (p *FakePublisher) Topics() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.topics))
	copy(out, p.topics)
	return out
}
