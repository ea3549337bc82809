package statshandlers

import (
	"context"
	"io"

	statsservice "github.com/Black-And-White-Club/euchre-bot/app/modules/stats/application"
	"github.com/google/uuid"
)

// ------------------------
// Fake Service
// ------------------------

type FakeService struct {
	LastFilter statsservice.Filter

	OverviewFunc          func(ctx context.Context, f statsservice.Filter) (*statsservice.Overview, error)
	ScoreHistoryFunc      func(ctx context.Context, gameID uuid.UUID) (*statsservice.ScoreHistory, error)
	GameCallBreakdownFunc func(ctx context.Context, gameID uuid.UUID) ([]statsservice.CallStats, error)
	RenderScoreChartFunc  func(ctx context.Context, gameID uuid.UUID, w io.Writer) error
	ExportGameFunc        func(ctx context.Context, gameID uuid.UUID, w io.Writer) error
}

func (f *FakeService) ScoreHistory(ctx context.Context, gameID uuid.UUID) (*statsservice.ScoreHistory, error) {
	if f.ScoreHistoryFunc != nil {
		return f.ScoreHistoryFunc(ctx, gameID)
	}
	return &statsservice.ScoreHistory{GameID: gameID, Points: []statsservice.ScorePoint{{}}}, nil
}

func (f *FakeService) GameCallBreakdown(ctx context.Context, gameID uuid.UUID) ([]statsservice.CallStats, error) {
	if f.GameCallBreakdownFunc != nil {
		return f.GameCallBreakdownFunc(ctx, gameID)
	}
	return []statsservice.CallStats{}, nil
}

func (f *FakeService) Overview(ctx context.Context, filter statsservice.Filter) (*statsservice.Overview, error) {
	f.LastFilter = filter
	if f.OverviewFunc != nil {
		return f.OverviewFunc(ctx, filter)
	}
	return &statsservice.Overview{}, nil
}

func (f *FakeService) CallValueStats(ctx context.Context, filter statsservice.Filter) ([]statsservice.CallStats, error) {
	f.LastFilter = filter
	return []statsservice.CallStats{}, nil
}

func (f *FakeService) PlayerStats(ctx context.Context, filter statsservice.Filter) ([]statsservice.PlayerStats, error) {
	f.LastFilter = filter
	return []statsservice.PlayerStats{}, nil
}

func (f *FakeService) TeamStats(ctx context.Context, filter statsservice.Filter) ([]statsservice.TeamStats, error) {
	f.LastFilter = filter
	return []statsservice.TeamStats{}, nil
}

func (f *FakeService) Players(ctx context.Context) ([]string, error) {
	return []string{"Ann", "Bob"}, nil
}

func (f *FakeService) PlayerTeams(ctx context.Context) (map[uuid.UUID]map[string]string, error) {
	return map[uuid.UUID]map[string]string{}, nil
}

func (f *FakeService) RenderScoreChart(ctx context.Context, gameID uuid.UUID, w io.Writer) error {
	if f.RenderScoreChartFunc != nil {
		return f.RenderScoreChartFunc(ctx, gameID, w)
	}
	_, err := w.Write([]byte("\x89PNG"))
	return err
}

func (f *FakeService) ExportGame(ctx context.Context, gameID uuid.UUID, w io.Writer) error {
	if f.ExportGameFunc != nil {
		return f.ExportGameFunc(ctx, gameID, w)
	}
	_, err := w.Write([]byte("PK"))
	return err
}

func (f *FakeService) InvalidateCache() {}

var _ statsservice.Service = (*FakeService)(nil)
