package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quote-roulette/internal/adapters/http/dto"
	"github.com/jsamuelsen/quote-roulette/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quote-roulette/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quote-roulette/internal/platform/telemetry"
)

const (
	// DefaultRequestTimeout is the default timeout for API requests.
	DefaultRequestTimeout = 10 * time.Second

	// DefaultImportTimeout bounds POST /quotes/import, which waits on the
	// upstream feed.
	DefaultImportTimeout = 60 * time.Second
)

// RouterConfig contains configuration for setting up the router.
type RouterConfig struct {
	// Logger is the structured logger for request logging.
	Logger *slog.Logger

	// ServiceName names the otelgin tracer and HTTP metrics.
	ServiceName string

	// HealthHandler handles health check endpoints.
	HealthHandler *handlers.HealthHandler

	// QuoteHandler serves quotes, reactions and the dashboard.
	QuoteHandler *handlers.QuoteHandler

	// AuthHandler serves registration, login and logout.
	AuthHandler *handlers.AuthHandler

	// Sessions resolves the session cookie into an identity.
	Sessions middleware.SessionResolver

	// Cookie names and secures the session cookie.
	Cookie middleware.SessionCookie

	// RateLimiter throttles login and registration per client IP.
	// Nil disables throttling.
	RateLimiter *middleware.RateLimiter

	// Timeout is the default request timeout.
	Timeout time.Duration

	// ImportTimeout is the timeout for quote imports.
	ImportTimeout time.Duration
}

// SetupRouter configures all routes and middleware on the Gin engine.
// Middleware is applied in the following order (first to last):
//  1. Recovery - catch panics first
//  2. Request ID and correlation ID
//  3. OpenTelemetry - otelgin span, then HTTP metrics and X-Trace-ID
//  4. Logging - request logging (skips health endpoints)
//
// The /api/v1 group adds a timeout and the session identity.
//
// Route groups:
//   - /-/ (internal): Health endpoints, no session
//   - /api/v1/ (public API): quotes, dashboard and auth
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	engine.Use(
		middleware.Recovery(cfg.Logger),
		middleware.RequestID(),
		middleware.CorrelationID(),
		telemetry.TracingMiddleware(cfg.ServiceName),
		telemetry.Middleware(cfg.ServiceName),
		middleware.Logging(cfg.Logger),
	)

	engine.NoRoute(func(c *gin.Context) {
		dto.RespondWithErrorCode(c, dto.ErrorCodeNotFound, "route not found")
	})

	// Probes get neither timeout nor session.
	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterHealthRoutesOnEngine(engine)
	}

	apiV1 := engine.Group("/api/v1")
	apiV1.Use(middleware.Timeout(cfg.Timeout, map[string]time.Duration{
		"/api/v1/quotes/import": cfg.ImportTimeout,
	}))

	if cfg.Sessions != nil {
		apiV1.Use(middleware.Identity(cfg.Sessions, cfg.Cookie))
	}

	setupAPIRoutes(apiV1, cfg)
}

// setupAPIRoutes registers business API routes.
func setupAPIRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	if cfg.QuoteHandler != nil {
		cfg.QuoteHandler.RegisterQuoteRoutes(rg, middleware.RequireUser())
	}

	if cfg.AuthHandler != nil {
		cfg.AuthHandler.RegisterAuthRoutes(rg, func(action string) gin.HandlerFunc {
			if cfg.RateLimiter == nil {
				return func(c *gin.Context) { c.Next() }
			}

			return middleware.RateLimit(cfg.RateLimiter, action)
		})
	}
}

// SetupMinimalRouter sets up a minimal router with just health endpoints.
// The retention job uses it to expose probes and metrics.
func SetupMinimalRouter(engine *gin.Engine, logger *slog.Logger, healthHandler *handlers.HealthHandler) {
	engine.Use(
		middleware.Recovery(logger),
		middleware.RequestID(),
	)

	if healthHandler != nil {
		healthHandler.RegisterHealthRoutesOnEngine(engine)
	}
}

// NewDefaultRouterConfig creates a RouterConfig with default timeouts.
func NewDefaultRouterConfig(logger *slog.Logger, serviceName string, healthHandler *handlers.HealthHandler) RouterConfig {
	return RouterConfig{
		Logger:        logger,
		ServiceName:   serviceName,
		HealthHandler: healthHandler,
		Timeout:       DefaultRequestTimeout,
		ImportTimeout: DefaultImportTimeout,
	}
}
