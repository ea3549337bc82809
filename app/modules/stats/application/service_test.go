package statsservice

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	gameservice "github.com/Black-And-White-Club/euchre-bot/app/modules/game/application"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.opentelemetry.io/otel/trace/noop"
)

func newTestService(src *FakeSource) *StatsService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tracer := noop.NewTracerProvider().Tracer("test")
	return NewStatsService(src, logger, tracer, prometheus.NewRegistry())
}

func countCalls(trace []string, name string) int {
	n := 0
	for _, c := range trace {
		if c == name {
			n++
		}
	}
	return n
}

func TestOverview_CachedUntilInvalidated(t *testing.T) {
	games, hands := ledgerFixture()
	src := &FakeSource{Games: games, Hands: hands}
	svc := newTestService(src)
	ctx := context.Background()

	first, err := svc.Overview(ctx, Filter{})
	require.NoError(t, err)
	assert.Equal(t, 2, first.TotalGames)

	// Mutating the returned value must not leak into the cache.
	first.TotalGames = 99

	second, err := svc.Overview(ctx, Filter{})
	require.NoError(t, err)
	assert.Equal(t, 2, second.TotalGames)
	assert.Equal(t, 1, countCalls(src.Trace(), "ListGames"))

	src.Games = games[:1]
	svc.InvalidateCache()

	third, err := svc.Overview(ctx, Filter{})
	require.NoError(t, err)
	assert.Equal(t, 1, third.TotalGames)
	assert.Equal(t, 3, third.TotalHands)
	assert.Equal(t, 2, countCalls(src.Trace(), "ListGames"))
}

func TestOverview_InvalidatedDuringRead(t *testing.T) {
	games, hands := ledgerFixture()
	src := &FakeSource{Games: games, Hands: hands}
	svc := newTestService(src)
	ctx := context.Background()

	// A hand lands while the first read is in flight: the stale result is
	// returned once but must not be cached.
	src.OnListGames = func() {
		src.OnListGames = nil
		src.Games = games[:1]
		svc.InvalidateCache()
	}

	first, err := svc.Overview(ctx, Filter{})
	require.NoError(t, err)
	assert.Equal(t, 2, first.TotalGames)

	second, err := svc.Overview(ctx, Filter{})
	require.NoError(t, err)
	assert.Equal(t, 1, second.TotalGames)
	assert.Equal(t, 2, countCalls(src.Trace(), "ListGames"))

	third, err := svc.Overview(ctx, Filter{})
	require.NoError(t, err)
	assert.Equal(t, 1, third.TotalGames)
	assert.Equal(t, 2, countCalls(src.Trace(), "ListGames"))
}

func TestOverviewCache_PutSkipsStaleGeneration(t *testing.T) {
	c := newOverviewCache()
	_, gen, ok := c.get(time.Time{})
	require.False(t, ok)

	c.clear()
	assert.False(t, c.put(time.Time{}, gen, &Overview{TotalGames: 1}))
	_, _, ok = c.get(time.Time{})
	assert.False(t, ok)

	_, gen, _ = c.get(time.Time{})
	assert.True(t, c.put(time.Time{}, gen, &Overview{TotalGames: 2}))
	got, _, ok := c.get(time.Time{})
	require.True(t, ok)
	assert.Equal(t, 2, got.TotalGames)
}

func TestOverview_SinceFilter(t *testing.T) {
	games, hands := ledgerFixture()
	svc := newTestService(&FakeSource{Games: games, Hands: hands})

	got, err := svc.Overview(context.Background(), Filter{Since: gameB.CreatedAt})
	require.NoError(t, err)
	assert.Equal(t, &Overview{
		TotalGames:     1,
		ActiveGames:    1,
		TotalHands:     1,
		MostCommonCall: "3",
	}, got)
}

func TestAggregates_SourceErrors(t *testing.T) {
	boom := errors.New("db down")
	svc := newTestService(&FakeSource{ListGamesErr: boom})
	ctx := context.Background()

	_, err := svc.Overview(ctx, Filter{})
	assert.ErrorIs(t, err, boom)
	_, err = svc.PlayerStats(ctx, Filter{})
	assert.ErrorIs(t, err, boom)
	_, err = svc.TeamStats(ctx, Filter{})
	assert.ErrorIs(t, err, boom)
	_, err = svc.Players(ctx)
	assert.ErrorIs(t, err, boom)
}

func TestPerGameStats_MissingGame(t *testing.T) {
	svc := newTestService(&FakeSource{})
	ctx := context.Background()

	_, err := svc.ScoreHistory(ctx, uuid.New())
	assert.ErrorIs(t, err, gameservice.ErrGameNotFound)
	_, err = svc.GameCallBreakdown(ctx, uuid.New())
	assert.ErrorIs(t, err, gameservice.ErrGameNotFound)
	assert.ErrorIs(t, svc.RenderScoreChart(ctx, uuid.New(), io.Discard), gameservice.ErrGameNotFound)
	assert.ErrorIs(t, svc.ExportGame(ctx, uuid.New(), io.Discard), gameservice.ErrGameNotFound)
}

func TestRenderScoreChart(t *testing.T) {
	games, hands := ledgerFixture()
	svc := newTestService(&FakeSource{Games: games, Hands: hands})

	for _, id := range []uuid.UUID{gameA.ID, gameB.ID} {
		var buf bytes.Buffer
		require.NoError(t, svc.RenderScoreChart(context.Background(), id, &buf))
		assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")), "not a PNG")
	}
}

func TestExportGame(t *testing.T) {
	games, hands := ledgerFixture()
	svc := newTestService(&FakeSource{Games: games, Hands: hands})

	var buf bytes.Buffer
	require.NoError(t, svc.ExportGame(context.Background(), gameA.ID, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(handsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"Hand", "Caller", "Team", "Called", "Result", "Red", "Blue", "Notes"}, rows[0])
	require.GreaterOrEqual(t, len(rows[2]), 7)
	assert.Equal(t, []string{"2", "Cy", "Blue", "Alone", "Euchred: lost 8, other team +2", "7", "-8"}, rows[2][:7])

	calls, err := f.GetRows(callsSheet)
	require.NoError(t, err)
	require.Len(t, calls, 4)
	assert.Equal(t, []string{"3", "1", "3", "3", "0", "0"}, calls[1])
	assert.Equal(t, []string{"Alone", "1", "-8", "-8", "1", "100"}, calls[3])
}
