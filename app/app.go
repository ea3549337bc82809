package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/Black-And-White-Club/euchre-bot/app/modules/game"
	"github.com/Black-And-White-Club/euchre-bot/app/modules/stats"
	"github.com/Black-And-White-Club/euchre-bot/config"
	"github.com/Black-And-White-Club/euchre-bot/internal/db/bundb"
	"github.com/Black-And-White-Club/euchre-bot/internal/eventbus"
	"github.com/Black-And-White-Club/euchre-bot/internal/httpserver"
	"github.com/Black-And-White-Club/euchre-bot/internal/observability"
	"github.com/Black-And-White-Club/euchre-bot/internal/observability/attr"
)

// App holds the wired modules and their shared infrastructure.
type App struct {
	Config        *config.Config
	Observability *observability.Observability
	DB            *bundb.DBService
	EventBus      eventbus.EventBus
	Server        *httpserver.Server
	GameModule    *game.Module
	StatsModule   *stats.Module

	metricsServer *http.Server
	wg            sync.WaitGroup
	closeOnce     sync.Once
	closeErr      error
}

// Options tune which parts of the app are started.
type Options struct {
	// WithQueue starts the River audit queue alongside the ledger.
	WithQueue bool
}

// NewApp initializes the application with the necessary services and configuration.
func NewApp(ctx context.Context, cfg *config.Config, opts Options) (*App, error) {
	obs := observability.New(cfg.Observability)
	logger := obs.Logger

	app := &App{Config: cfg, Observability: obs}

	dbService, err := bundb.NewBunDBService(ctx, cfg.Postgres, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database service: %w", err)
	}
	app.DB = dbService

	bus, err := eventbus.New(ctx, cfg.NATS, logger)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to initialize event bus: %w", err)
	}
	app.EventBus = bus

	// Metrics share the API listener unless a dedicated address is configured.
	metricsHandler := obs.MetricsHandler()
	if cfg.Observability.MetricsAddress != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metricsHandler)
		app.metricsServer = &http.Server{
			Addr:              cfg.Observability.MetricsAddress,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		}
		metricsHandler = nil
	}

	app.Server = httpserver.New(cfg.HTTP, cfg.JWT, metricsHandler, logger)
	app.Server.AddHealthCheck("postgres", dbService.Ping)

	gameModule, err := game.NewGameModule(ctx, cfg, obs, dbService.GetDB(), bus, app.Server, opts.WithQueue)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to initialize game module: %w", err)
	}
	app.GameModule = gameModule

	statsModule, err := stats.NewStatsModule(ctx, obs, gameModule.Service, bus, app.Server)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to initialize stats module: %w", err)
	}
	app.StatsModule = statsModule

	logger.InfoContext(ctx, "Application initialized", attr.Bool("queue", opts.WithQueue))
	return app, nil
}

// Run starts the modules and the HTTP listeners, blocking until ctx is canceled
// or a listener fails.
func (app *App) Run(ctx context.Context) error {
	logger := app.Observability.Logger

	app.wg.Add(2)
	go app.GameModule.Run(ctx, &app.wg)
	go app.StatsModule.Run(ctx, &app.wg)

	errCh := make(chan error, 2)
	go func() { errCh <- app.Server.Start() }()
	if app.metricsServer != nil {
		go func() {
			logger.Info("Starting metrics server", attr.String("addr", app.metricsServer.Addr))
			if err := app.metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("metrics server: %w", err)
			}
		}()
	}

	select {
	case <-ctx.Done():
		logger.Info("Shutdown requested")
		return nil
	case err := <-errCh:
		if err != nil {
			logger.Error("Listener failed", attr.Error(err))
		}
		return err
	}
}

// Shutdown stops the listeners, then the modules and their infrastructure.
func (app *App) Shutdown(ctx context.Context) error {
	var errs []error
	if app.Server != nil {
		if err := app.Server.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown http server: %w", err))
		}
	}
	if app.metricsServer != nil {
		if err := app.metricsServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown metrics server: %w", err))
		}
	}

	errs = append(errs, app.Close())

	done := make(chan struct{})
	go func() {
		app.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		errs = append(errs, fmt.Errorf("modules did not stop: %w", ctx.Err()))
	}

	return errors.Join(errs...)
}

// Close releases the modules, the event bus and the database, in that order.
// Later calls return the first result.
func (app *App) Close() error {
	app.closeOnce.Do(func() { app.closeErr = app.close() })
	return app.closeErr
}

func (app *App) close() error {
	logger := app.Observability.Logger
	var errs []error

	if app.StatsModule != nil {
		if err := app.StatsModule.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if app.GameModule != nil {
		if err := app.GameModule.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if app.EventBus != nil {
		if err := app.EventBus.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close event bus: %w", err))
		}
	}
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close database: %w", err))
		}
	}

	err := errors.Join(errs...)
	if err != nil {
		logger.Error("Errors while closing application", attr.Error(err))
	}
	return err
}

// Logger is the application's root logger.
func (app *App) Logger() *slog.Logger {
	return app.Observability.Logger
}
