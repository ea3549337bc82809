package testutils

import (
	"strconv"
	"time"

	gameservice "github.com/Black-And-White-Club/euchre-bot/app/modules/game/application"
	"github.com/brianvoe/gofakeit/v7"
)

// TestDataGenerator builds randomized but valid ledger inputs.
type TestDataGenerator struct {
	faker *gofakeit.Faker
}

// NewTestDataGenerator creates a generator. Passing a seed makes runs repeatable.
func NewTestDataGenerator(seed ...uint64) *TestDataGenerator {
	s := uint64(time.Now().UnixNano())
	if len(seed) > 0 {
		s = seed[0]
	}
	return &TestDataGenerator{faker: gofakeit.New(s)}
}

// GameRequest returns a two-team game with four distinct player names.
func (g *TestDataGenerator) GameRequest(target int) gameservice.CreateGameRequest {
	players := g.uniqueNames(4)
	team1 := g.teamName()
	team2 := team1
	for team2 == team1 {
		team2 = g.teamName()
	}
	return gameservice.CreateGameRequest{
		Team1Name:    team1,
		Team2Name:    team2,
		Team1Players: players[:2],
		Team2Players: players[2:],
		TargetScore:  target,
	}
}

// MadeHand returns a numeric call the caller makes.
func (g *TestDataGenerator) MadeHand(caller string) gameservice.HandInput {
	bid := g.faker.Number(3, 6)
	return gameservice.HandInput{
		CallerName:   caller,
		CallValue:    strconv.Itoa(bid),
		PointsScored: g.faker.Number(bid, 8),
		Notes:        g.faker.Sentence(g.faker.Number(2, 5)),
	}
}

func (g *TestDataGenerator) teamName() string {
	return g.faker.RandomString([]string{"Red", "Blue", "Green", "Gold", "Black"}) + " " +
		g.faker.RandomString([]string{"Bowers", "Jacks", "Trumps", "Loners", "Dealers"})
}

func (g *TestDataGenerator) uniqueNames(n int) []string {
	seen := make(map[string]bool, n)
	names := make([]string, 0, n)
	for len(names) < n {
		name := g.faker.FirstName()
		if seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}
