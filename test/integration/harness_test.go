//go:build integration

package integration

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http/httptest"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/jsamuelsen/quote-roulette/internal/adapters/clients"
	"github.com/jsamuelsen/quote-roulette/internal/adapters/clients/acl"
	apihttp "github.com/jsamuelsen/quote-roulette/internal/adapters/http"
	"github.com/jsamuelsen/quote-roulette/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quote-roulette/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quote-roulette/internal/adapters/persistence"
	"github.com/jsamuelsen/quote-roulette/internal/app"
	"github.com/jsamuelsen/quote-roulette/internal/domain"
	"github.com/jsamuelsen/quote-roulette/internal/platform/config"
	"github.com/jsamuelsen/quote-roulette/internal/ports"
)

const sessionCookie = "qr_session"

var storeSeq atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// harness runs the whole service in process on a private in-memory store.
type harness struct {
	server    *httptest.Server
	store     *persistence.Store
	quotes    *app.QuoteService
	retention *app.RetentionService
	views     *persistence.ViewHistoryRepository
}

type harnessOptions struct {
	// feedURL, when set, enables import from a fake upstream.
	feedURL string
	// maxOpenConns defaults to 1.
	maxOpenConns int
	// loginLimit, when positive, rate limits auth to that many attempts per hour.
	loginLimit int
}

func newHarness(opts harnessOptions) (*harness, error) {
	ctx := context.Background()
	logger := discardLogger()

	conns := opts.maxOpenConns
	if conns <= 0 {
		conns = 1
	}

	store, err := persistence.Open(&config.DatabaseConfig{
		DSN:          fmt.Sprintf("file:integration_%d?mode=memory&cache=shared", storeSeq.Add(1)),
		MaxOpenConns: conns,
		LogLevel:     "silent",
	}, logger)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}

	db := store.DB()
	views := persistence.NewViewHistoryRepository(db)
	sessions := persistence.NewSessionRepository(db)

	var feed ports.QuoteFeed
	if opts.feedURL != "" {
		client, err := clients.New(&clients.Config{
			BaseURL:     opts.feedURL,
			ServiceName: "quotable",
			Timeout:     2 * time.Second,
			Retry: config.RetryConfig{
				MaxAttempts:     2,
				InitialInterval: 10 * time.Millisecond,
				MaxInterval:     50 * time.Millisecond,
				Multiplier:      2,
			},
			Circuit: config.CircuitBreakerConfig{MaxFailures: 20, Timeout: time.Second, HalfOpenLimit: 1},
			Logger:  logger,
		})
		if err != nil {
			_ = store.Close()
			return nil, err
		}

		feed = acl.NewQuoteFeed(acl.QuoteFeedConfig{Client: client, Name: "quotable", Logger: logger})
	}

	quotes := app.NewQuoteService(app.QuoteServiceConfig{
		Quotes:            persistence.NewQuoteRepository(db),
		Views:             views,
		Reactions:         persistence.NewReactionRepository(db),
		Feed:              feed,
		Rand:              domain.NewRandSource(7),
		ImportConcurrency: 4,
		Logger:            logger,
	})

	auth := app.NewAuthService(app.AuthServiceConfig{
		Users:      persistence.NewUserRepository(db),
		Sessions:   sessions,
		SessionTTL: time.Hour,
		BcryptCost: bcrypt.MinCost,
		Logger:     logger,
	})

	retention := app.NewRetentionService(app.RetentionServiceConfig{
		Views:    views,
		Sessions: sessions,
		Days:     app.DefaultRetentionDays,
		Logger:   logger,
	})

	registry := ports.NewHealthRegistry()
	if err := registry.Register(store); err != nil {
		_ = store.Close()
		return nil, err
	}

	cookie := middleware.SessionCookie{Name: sessionCookie}

	cfg := apihttp.NewDefaultRouterConfig(logger, "quote-roulette",
		handlers.NewHealthHandler(registry, handlers.NewBuildInfo("test", "none", "now")))
	cfg.QuoteHandler = handlers.NewQuoteHandler(quotes)
	cfg.AuthHandler = handlers.NewAuthHandler(auth, cookie)
	cfg.Sessions = auth
	cfg.Cookie = cookie

	if opts.loginLimit > 0 {
		cfg.RateLimiter = middleware.NewRateLimiter(opts.loginLimit, time.Hour, opts.loginLimit)
	}

	engine := gin.New()
	apihttp.SetupRouter(engine, cfg)

	return &harness{
		server:    httptest.NewServer(engine),
		store:     store,
		quotes:    quotes,
		retention: retention,
		views:     views,
	}, nil
}

func (h *harness) Close() {
	h.server.Close()
	_ = h.store.Close()
}

// seed creates quotes directly through the service, bypassing HTTP auth.
func (h *harness) seed(ctx context.Context, text, source string, weight int) (*domain.Quote, error) {
	return h.quotes.CreateQuote(ctx, domain.QuoteDraft{Text: text, Source: source, Weight: weight})
}
