package gamemigrations

import "github.com/uptrace/bun/migrate"

// Migrations holds the game module's schema migrations.
var Migrations = migrate.NewMigrations()

func init() {
	if err := Migrations.DiscoverCaller(); err != nil {
		panic(err)
	}
}
