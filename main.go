package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Black-And-White-Club/euchre-bot/app"
	"github.com/Black-And-White-Club/euchre-bot/config"
	"github.com/Black-And-White-Club/euchre-bot/internal/httpserver"
	"github.com/google/uuid"
	"github.com/urfave/cli/v2"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cliApp := &cli.App{
		Name:  "euchre-bot",
		Usage: "euchre hand-scoring ledger",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Value:   "config.yaml",
				Usage:   "path to the configuration file",
				EnvVars: []string{"CONFIG_PATH"},
			},
		},
		Commands: []*cli.Command{
			serveCommand(),
			recalculateCommand(),
			tokenCommand(),
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the HTTP API, the event consumers and the audit queue",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "no-queue",
				Usage: "do not start the periodic ledger audit",
			},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			application, err := app.NewApp(ctx, cfg, app.Options{WithQueue: !c.Bool("no-queue")})
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			runErr := application.Run(ctx)

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := application.Shutdown(shutdownCtx); err != nil {
				application.Logger().Error("Graceful shutdown incomplete", "error", err)
			}

			application.Logger().Info("Application shut down")
			return runErr
		},
	}
}

func recalculateCommand() *cli.Command {
	return &cli.Command{
		Name:      "recalculate",
		Usage:     "rebuild a game's running totals from its hand history",
		ArgsUsage: "<game-id>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "queue",
				Usage: "enqueue a reconcile job instead of running it now",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return errors.New("expected exactly one game id")
			}
			gameID, err := uuid.Parse(c.Args().First())
			if err != nil {
				return fmt.Errorf("invalid game id: %w", err)
			}

			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}

			application, err := app.NewApp(c.Context, cfg, app.Options{WithQueue: c.Bool("queue")})
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}
			defer application.Close()

			if c.Bool("queue") {
				if err := application.GameModule.Queue.EnqueueReconcile(c.Context, gameID); err != nil {
					return err
				}
				fmt.Printf("Reconcile job enqueued for game %s\n", gameID)
				return nil
			}

			report, err := application.GameModule.Service.RecalculateGame(c.Context, gameID)
			if err != nil {
				return err
			}

			fmt.Printf("Game %s: checked %d hands, corrected %d\n", gameID, report.HandsChecked, report.HandsChanged)
			fmt.Printf("Totals %d-%d -> %d-%d\n", report.Before.Team1, report.Before.Team2, report.After.Team1, report.After.Team2)
			if !report.Drifted() {
				fmt.Println("Ledger already consistent")
			}
			return nil
		},
	}
}

func tokenCommand() *cli.Command {
	return &cli.Command{
		Name:  "token",
		Usage: "issue an operator token for the mutating API routes",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "subject",
				Usage:    "operator name recorded in the token",
				Required: true,
			},
			&cli.DurationFlag{
				Name:  "ttl",
				Value: 24 * time.Hour,
				Usage: "token lifetime",
			},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			if cfg.JWT.Secret == "" {
				return errors.New("jwt secret is not configured")
			}

			provider := httpserver.NewTokenProvider(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Audience)
			token, err := provider.GenerateToken(c.String("subject"), c.Duration("ttl"))
			if err != nil {
				return fmt.Errorf("failed to generate token: %w", err)
			}
			fmt.Println(token)
			return nil
		},
	}
}
