//go:build integration

package gameintegrationtests

import (
	"context"
	"testing"

	gameservice "github.com/Black-And-White-Club/euchre-bot/app/modules/game/application"
	gamedomain "github.com/Black-And-White-Club/euchre-bot/app/modules/game/domain"
	gameevents "github.com/Black-And-White-Club/euchre-bot/app/modules/game/infrastructure/events"
	gamedb "github.com/Black-And-White-Club/euchre-bot/app/modules/game/infrastructure/repositories"
	"github.com/Black-And-White-Club/euchre-bot/integration_tests/testutils"
	"github.com/stretchr/testify/require"
)

type testDeps struct {
	ctx     context.Context
	service *gameservice.GameService
	gen     *testutils.TestDataGenerator
}

func setupTest(t *testing.T) testDeps {
	t.Helper()
	ctx := testEnv.Ctx
	require.NoError(t, testEnv.Reset(ctx))

	obs := testEnv.Observability
	service := gameservice.NewGameService(
		gamedb.NewRepository(testEnv.DB),
		gameevents.NewPublisher(testEnv.EventBus, obs.Logger),
		obs.Logger,
		nil,
		obs.Tracer,
		testEnv.DB,
		testEnv.Config.Ledger.DefaultTargetScore,
	)

	return testDeps{
		ctx:     ctx,
		service: service,
		gen:     testutils.NewTestDataGenerator(42),
	}
}

func (d testDeps) createGame(t *testing.T, target int) *gamedomain.Game {
	t.Helper()
	game, err := d.service.CreateGame(d.ctx, d.gen.GameRequest(target))
	require.NoError(t, err)
	return game
}
