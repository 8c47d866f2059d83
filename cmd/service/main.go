// Package main is the entry point for the quote-roulette web service.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jsamuelsen/quote-roulette/internal/adapters/clients"
	"github.com/jsamuelsen/quote-roulette/internal/adapters/clients/acl"
	"github.com/jsamuelsen/quote-roulette/internal/adapters/http"
	"github.com/jsamuelsen/quote-roulette/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quote-roulette/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quote-roulette/internal/adapters/persistence"
	"github.com/jsamuelsen/quote-roulette/internal/app"
	"github.com/jsamuelsen/quote-roulette/internal/domain"
	"github.com/jsamuelsen/quote-roulette/internal/platform/config"
	"github.com/jsamuelsen/quote-roulette/internal/platform/logging"
	"github.com/jsamuelsen/quote-roulette/internal/platform/telemetry"
	"github.com/jsamuelsen/quote-roulette/internal/ports"
)

// Build-time variables, injected via ldflags.
// Example: go build -ldflags "-X main.Version=1.0.0 -X main.Commit=$(git rev-parse HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	// Version is the semantic version of the service.
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "unknown"

	// BuildTime is the timestamp when the binary was built.
	BuildTime = "unknown"
)

// limiterSweepInterval is how often idle login limiters are dropped.
const limiterSweepInterval = 10 * time.Minute

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Determine profile from environment
	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	// 2. Load and validate configuration (fail fast)
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// 3. Initialize logging
	logger := newLogger(cfg)
	logging.SetDefault(logger)

	logger.Info("starting service",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
	)

	// 4. Initialize telemetry (noop if disabled)
	telProvider, err := telemetry.New(ctx, &telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		Endpoint:     cfg.Telemetry.Endpoint,
		ServiceName:  cfg.Telemetry.ServiceName,
		Version:      cfg.App.Version,
		Environment:  cfg.App.Environment,
		SamplingRate: cfg.Telemetry.SamplingRate,
		Insecure:     cfg.Telemetry.Insecure,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	defer func() {
		if shutdownErr := telProvider.Shutdown(context.WithoutCancel(ctx)); shutdownErr != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", shutdownErr))
		}
	}()

	// 5. Open the store and bring the schema up to date
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

	db := store.DB()
	views := persistence.NewViewHistoryRepository(db)
	sessions := persistence.NewSessionRepository(db)

	// 6. Health registry: the store gates readiness, the feed only degrades it
	healthRegistry := ports.NewHealthRegistry()
	if err := healthRegistry.Register(store); err != nil {
		return fmt.Errorf("registering store health check: %w", err)
	}

	// 7. Upstream quote feed (ACL over the instrumented client), if enabled
	var feed ports.QuoteFeed

	if cfg.Services.Quote.Enabled {
		quoteFeed, err := newQuoteFeed(cfg, logger)
		if err != nil {
			return err
		}

		if err := healthRegistry.RegisterOptional(quoteFeed); err != nil {
			return fmt.Errorf("registering quote feed health check: %w", err)
		}

		feed = quoteFeed
	}

	// 8. Application services
	quoteService := app.NewQuoteService(app.QuoteServiceConfig{
		Quotes:            persistence.NewQuoteRepository(db),
		Views:             views,
		Reactions:         persistence.NewReactionRepository(db),
		Feed:              feed,
		Rand:              domain.NewRandSource(cfg.Selection.Seed),
		ImportConcurrency: cfg.Services.Quote.ImportConcurrency,
		Logger:            logger,
	})

	authService := app.NewAuthService(app.AuthServiceConfig{
		Users:      persistence.NewUserRepository(db),
		Sessions:   sessions,
		SessionTTL: cfg.Auth.SessionTTL,
		BcryptCost: cfg.Auth.BcryptCost,
		Logger:     logger,
	})

	retentionService := app.NewRetentionService(app.RetentionServiceConfig{
		Views:    views,
		Sessions: sessions,
		Days:     cfg.Retention.Days,
		Logger:   logger,
	})

	// 9. Handlers and router
	cookie := middleware.SessionCookie{Name: cfg.Auth.CookieName, Secure: cfg.Auth.SecureCookie}
	limiter := middleware.NewRateLimiter(cfg.Auth.RateLimit.Requests, cfg.Auth.RateLimit.Window, cfg.Auth.RateLimit.Burst)

	server := http.New(&cfg.Server, logger)

	routerCfg := http.NewDefaultRouterConfig(
		logger,
		cfg.Telemetry.ServiceName,
		handlers.NewHealthHandler(healthRegistry, handlers.NewBuildInfo(Version, Commit, BuildTime)),
	)
	routerCfg.QuoteHandler = handlers.NewQuoteHandler(quoteService)
	routerCfg.AuthHandler = handlers.NewAuthHandler(authService, cookie)
	routerCfg.Sessions = authService
	routerCfg.Cookie = cookie
	routerCfg.RateLimiter = limiter
	http.SetupRouter(server.Engine(), routerCfg)

	// 10. Run the server and background loops until a signal arrives
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error { return server.Serve(gctx) })
	g.Go(func() error { return limiter.Run(gctx, limiterSweepInterval) })

	if cfg.Retention.Interval > 0 {
		g.Go(func() error { return retentionService.Run(gctx, cfg.Retention.Interval) })
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("service stopped: %w", err)
	}

	logger.Info("shutdown complete")

	return nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	return logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
}

func newQuoteFeed(cfg *config.Config, logger *slog.Logger) (*acl.QuoteFeed, error) {
	client, err := clients.New(&clients.Config{
		BaseURL:     cfg.Services.Quote.BaseURL,
		ServiceName: cfg.Services.Quote.Name,
		Timeout:     cfg.Client.Timeout,
		Retry:       cfg.Client.Retry,
		Circuit:     cfg.Client.CircuitBreaker,
		Transport:   cfg.Client.Transport,
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating quote feed client: %w", err)
	}

	return acl.NewQuoteFeed(acl.QuoteFeedConfig{
		Client: client,
		Name:   cfg.Services.Quote.Name,
		Logger: logger,
	}), nil
}
