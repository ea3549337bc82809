package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	gamemigrations "github.com/Black-And-White-Club/euchre-bot/app/modules/game/infrastructure/repositories/migrations"
	"github.com/Black-And-White-Club/euchre-bot/config"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"
	"github.com/urfave/cli/v2"
)

func main() {
	cliApp := &cli.App{
		Name:  "bun",
		Usage: "euchre-bot database migrations",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Value: "config.yaml",
				Usage: "path to the configuration file",
			},
		},
		Commands: []*cli.Command{
			newMigrateCommand(),
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// withMigrators opens the database named by the config and hands the
// per-module migrators to fn.
func withMigrators(c *cli.Context, fn func(map[string]*migrate.Migrator) error) error {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	pgdb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Postgres.DSN)))
	db := bun.NewDB(pgdb, pgdialect.New())
	defer db.Close()

	return fn(map[string]*migrate.Migrator{
		"game": migrate.NewMigrator(db, gamemigrations.Migrations),
	})
}

func sortedNames(migrators map[string]*migrate.Migrator) []string {
	names := make([]string, 0, len(migrators))
	for name := range migrators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func newMigrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "database migrations",
		Subcommands: []*cli.Command{
			{
				Name:  "init",
				Usage: "create migration tables",
				Action: func(c *cli.Context) error {
					return withMigrators(c, func(migrators map[string]*migrate.Migrator) error {
						for _, name := range sortedNames(migrators) {
							fmt.Printf("Initializing migrations for module: %s\n", name)
							if err := migrators[name].Init(c.Context); err != nil {
								return fmt.Errorf("init %s: %w", name, err)
							}
						}
						return nil
					})
				},
			},
			{
				Name:  "migrate",
				Usage: "migrate database",
				Action: func(c *cli.Context) error {
					return withMigrators(c, func(migrators map[string]*migrate.Migrator) error {
						for _, name := range sortedNames(migrators) {
							m := migrators[name]
							if err := m.Lock(c.Context); err != nil {
								return err
							}
							group, err := m.Migrate(c.Context)
							_ = m.Unlock(c.Context)
							if err != nil {
								return fmt.Errorf("migrate %s: %w", name, err)
							}
							if group.IsZero() {
								fmt.Printf("No new migrations to run for module: %s\n", name)
							} else {
								fmt.Printf("Migrated module: %s to %s\n", name, group)
							}
						}
						return nil
					})
				},
			},
			{
				Name:  "rollback",
				Usage: "rollback the last migration group",
				Action: func(c *cli.Context) error {
					return withMigrators(c, func(migrators map[string]*migrate.Migrator) error {
						for _, name := range sortedNames(migrators) {
							group, err := migrators[name].Rollback(c.Context)
							if err != nil {
								return fmt.Errorf("rollback %s: %w", name, err)
							}
							if group.IsZero() {
								fmt.Printf("No groups to roll back for module: %s\n", name)
							} else {
								fmt.Printf("Rolled back module: %s to %s\n", name, group)
							}
						}
						return nil
					})
				},
			},
			{
				Name:      "create_go",
				Usage:     "create Go migration",
				ArgsUsage: "<module> <name...>",
				Action: func(c *cli.Context) error {
					return withMigrators(c, func(migrators map[string]*migrate.Migrator) error {
						m, ok := migrators[c.Args().First()]
						if !ok {
							return fmt.Errorf("invalid module name: %s", c.Args().First())
						}
						mf, err := m.CreateGoMigration(c.Context, strings.Join(c.Args().Tail(), "_"))
						if err != nil {
							return err
						}
						fmt.Printf("Created migration %s (%s)\n", mf.Name, mf.Path)
						return nil
					})
				},
			},
			{
				Name:  "status",
				Usage: "print migrations status",
				Action: func(c *cli.Context) error {
					return withMigrators(c, func(migrators map[string]*migrate.Migrator) error {
						for _, name := range sortedNames(migrators) {
							ms, err := migrators[name].MigrationsWithStatus(c.Context)
							if err != nil {
								return err
							}
							fmt.Printf("Migrations for module: %s\n", name)
							fmt.Printf("  Applied: %s\n", ms.Applied())
							fmt.Printf("  Unapplied: %s\n", ms.Unapplied())
						}
						return nil
					})
				},
			},
		},
	}
}
