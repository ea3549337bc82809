package statsservice

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	gamedomain "github.com/Black-And-White-Club/euchre-bot/app/modules/game/domain"
	gamedb "github.com/Black-And-White-Club/euchre-bot/app/modules/game/infrastructure/repositories"
	"github.com/Black-And-White-Club/euchre-bot/internal/observability/attr"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// StatsService implements Service over a ledger Source.
type StatsService struct {
	source Source
	logger *slog.Logger
	tracer trace.Tracer
	cache  *overviewCache

	cacheLookups *prometheus.CounterVec
}

var _ Service = (*StatsService)(nil)

// NewStatsService creates a StatsService. reg may be nil.
func NewStatsService(source Source, logger *slog.Logger, tracer trace.Tracer, reg prometheus.Registerer) *StatsService {
	lookups := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "euchre",
		Subsystem: "stats",
		Name:      "overview_cache_lookups_total",
		Help:      "Overview cache lookups by result",
	}, []string{"result"})
	if reg != nil {
		reg.MustRegister(lookups)
	}

	return &StatsService{
		source:       source,
		logger:       logger,
		tracer:       tracer,
		cache:        newOverviewCache(),
		cacheLookups: lookups,
	}
}

func (s *StatsService) startSpan(ctx context.Context, op string) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, "StatsService."+op, trace.WithAttributes(
		attribute.String("operation", op),
	))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (s *StatsService) gameWithHands(ctx context.Context, gameID uuid.UUID) (*gamedomain.Game, []*gamedomain.Hand, error) {
	game, err := s.source.GetGame(ctx, gameID)
	if err != nil {
		return nil, nil, err
	}
	hands, err := s.source.ListHands(ctx, gameID)
	if err != nil {
		return nil, nil, err
	}
	return game, hands, nil
}

// ledger returns the games matching f and the hands that belong to them.
func (s *StatsService) ledger(ctx context.Context, f Filter) ([]*gamedomain.Game, []*gamedomain.Hand, error) {
	all, err := s.source.ListGames(ctx, gamedb.FilterAll)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list games: %w", err)
	}

	games := make([]*gamedomain.Game, 0, len(all))
	keep := make(map[uuid.UUID]struct{}, len(all))
	for _, g := range all {
		if f.match(g) {
			games = append(games, g)
			keep[g.ID] = struct{}{}
		}
	}

	allHands, err := s.source.ListAllHands(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list hands: %w", err)
	}
	hands := make([]*gamedomain.Hand, 0, len(allHands))
	for _, h := range allHands {
		if _, ok := keep[h.GameID]; ok {
			hands = append(hands, h)
		}
	}
	return games, hands, nil
}

func (s *StatsService) ScoreHistory(ctx context.Context, gameID uuid.UUID) (_ *ScoreHistory, err error) {
	ctx, span := s.startSpan(ctx, "ScoreHistory")
	defer func() { endSpan(span, err) }()

	game, hands, err := s.gameWithHands(ctx, gameID)
	if err != nil {
		return nil, err
	}
	return buildHistory(game, hands), nil
}

func (s *StatsService) GameCallBreakdown(ctx context.Context, gameID uuid.UUID) (_ []CallStats, err error) {
	ctx, span := s.startSpan(ctx, "GameCallBreakdown")
	defer func() { endSpan(span, err) }()

	_, hands, err := s.gameWithHands(ctx, gameID)
	if err != nil {
		return nil, err
	}
	return breakdownCalls(hands), nil
}

func (s *StatsService) Overview(ctx context.Context, f Filter) (_ *Overview, err error) {
	ctx, span := s.startSpan(ctx, "Overview")
	defer func() { endSpan(span, err) }()

	o, gen, ok := s.cache.get(f.Since)
	if ok {
		s.cacheLookups.WithLabelValues("hit").Inc()
		return o, nil
	}
	s.cacheLookups.WithLabelValues("miss").Inc()

	games, hands, err := s.ledger(ctx, f)
	if err != nil {
		return nil, err
	}
	o = buildOverview(games, hands)
	if !s.cache.put(f.Since, gen, o) {
		s.logger.DebugContext(ctx, "Overview computed across an invalidation, not cached")
	}
	return o, nil
}

func (s *StatsService) CallValueStats(ctx context.Context, f Filter) (_ []CallStats, err error) {
	ctx, span := s.startSpan(ctx, "CallValueStats")
	defer func() { endSpan(span, err) }()

	_, hands, err := s.ledger(ctx, f)
	if err != nil {
		return nil, err
	}
	return breakdownCalls(hands), nil
}

func (s *StatsService) PlayerStats(ctx context.Context, f Filter) (_ []PlayerStats, err error) {
	ctx, span := s.startSpan(ctx, "PlayerStats")
	defer func() { endSpan(span, err) }()

	games, hands, err := s.ledger(ctx, f)
	if err != nil {
		return nil, err
	}
	return buildPlayerStats(games, hands), nil
}

func (s *StatsService) TeamStats(ctx context.Context, f Filter) (_ []TeamStats, err error) {
	ctx, span := s.startSpan(ctx, "TeamStats")
	defer func() { endSpan(span, err) }()

	games, _, err := s.ledger(ctx, f)
	if err != nil {
		return nil, err
	}
	return buildTeamStats(games), nil
}

func (s *StatsService) Players(ctx context.Context) ([]string, error) {
	games, err := s.source.ListGames(ctx, gamedb.FilterAll)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	return playerList(games), nil
}

func (s *StatsService) PlayerTeams(ctx context.Context) (map[uuid.UUID]map[string]string, error) {
	games, err := s.source.ListGames(ctx, gamedb.FilterAll)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	return playerTeams(games), nil
}

func (s *StatsService) RenderScoreChart(ctx context.Context, gameID uuid.UUID, w io.Writer) (err error) {
	ctx, span := s.startSpan(ctx, "RenderScoreChart")
	defer func() { endSpan(span, err) }()

	game, hands, err := s.gameWithHands(ctx, gameID)
	if err != nil {
		return err
	}
	if err := renderHistoryChart(buildHistory(game, hands), game.TargetScore, w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

func (s *StatsService) ExportGame(ctx context.Context, gameID uuid.UUID, w io.Writer) (err error) {
	ctx, span := s.startSpan(ctx, "ExportGame")
	defer func() { endSpan(span, err) }()

	game, hands, err := s.gameWithHands(ctx, gameID)
	if err != nil {
		return err
	}
	return writeWorkbook(game, hands, w)
}

func (s *StatsService) InvalidateCache() {
	s.cache.clear()
	s.logger.Debug("Stats cache invalidated", attr.String("cache", "overview"))
}
