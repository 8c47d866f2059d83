// Package main runs the view history retention job.
//
// By default it purges views older than retention.days once and exits, for
// use from cron or a Kubernetes CronJob. With retention.interval set it keeps
// running, sweeping on a ticker and serving /-/ probes and metrics.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/jsamuelsen/quote-roulette/internal/adapters/http"
	"github.com/jsamuelsen/quote-roulette/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quote-roulette/internal/adapters/persistence"
	"github.com/jsamuelsen/quote-roulette/internal/app"
	"github.com/jsamuelsen/quote-roulette/internal/platform/config"
	"github.com/jsamuelsen/quote-roulette/internal/platform/logging"
	"github.com/jsamuelsen/quote-roulette/internal/ports"
)

// Build-time variables, injected via ldflags.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger := logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name + "-retention",
		Version: cfg.App.Version,
	})
	logging.SetDefault(logger)

	store, err := persistence.Open(&cfg.Database, logger)
	if err != nil {
		return err
	}

	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			logger.Error("closing store", slog.Any("error", closeErr))
		}
	}()

	if err := store.Migrate(ctx); err != nil {
		return err
	}

	retention := app.NewRetentionService(app.RetentionServiceConfig{
		Views:    persistence.NewViewHistoryRepository(store.DB()),
		Sessions: persistence.NewSessionRepository(store.DB()),
		Days:     cfg.Retention.Days,
		Logger:   logger,
	})

	if cfg.Retention.Interval <= 0 {
		return sweepOnce(ctx, logger, retention)
	}

	return loop(ctx, cfg, logger, store, retention)
}

func sweepOnce(ctx context.Context, logger *slog.Logger, retention *app.RetentionService) error {
	report, err := retention.Sweep(ctx)
	if err != nil {
		return fmt.Errorf("retention sweep: %w", err)
	}

	logger.Info("retention sweep finished",
		slog.Int64("views_deleted", report.ViewsDeleted),
		slog.Int64("sessions_deleted", report.SessionsDeleted),
	)

	return nil
}

// loop sweeps on every tick and serves health and metrics until ctx ends.
func loop(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	store *persistence.Store,
	retention *app.RetentionService,
) error {
	registry := ports.NewHealthRegistry()
	if err := registry.Register(store); err != nil {
		return fmt.Errorf("registering store health check: %w", err)
	}

	server := http.New(&cfg.Server, logger)
	http.SetupMinimalRouter(server.Engine(), logger,
		handlers.NewHealthHandler(registry, handlers.NewBuildInfo(Version, Commit, BuildTime)))

	// First sweep runs before the first tick.
	if err := sweepOnce(ctx, logger, retention); err != nil {
		logger.Error("initial retention sweep failed", slog.Any("error", err))
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return server.Serve(gctx) })
	g.Go(func() error { return retention.Run(gctx, cfg.Retention.Interval) })

	return g.Wait()
}
