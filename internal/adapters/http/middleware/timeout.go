package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quote-roulette/internal/adapters/http/dto"
	"github.com/jsamuelsen/quote-roulette/internal/platform/logging"
)

// Timeout returns middleware that puts a deadline on the request context.
// Routes listed in overrides, keyed by gin route pattern, get their own
// budget. Handlers run on the request goroutine and must honor ctx; if the
// deadline passed and nothing was written, a 504 is returned.
func Timeout(timeout time.Duration, overrides map[string]time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		budget := timeout
		if d, ok := overrides[c.FullPath()]; ok {
			budget = d
		}

		if budget <= 0 {
			c.Next()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), budget)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)

		c.Next()

		if errors.Is(ctx.Err(), context.DeadlineExceeded) && !c.Writer.Written() {
			handleTimeout(c, budget)
		}
	}
}

func handleTimeout(c *gin.Context, budget time.Duration) {
	logging.FromContext(c.Request.Context()).Warn("request timeout",
		slog.String("route", c.FullPath()),
		slog.String("method", c.Request.Method),
		slog.Duration("timeout", budget),
	)

	dto.AbortWithErrorCode(c, dto.ErrorCodeTimeout, "request timeout exceeded")
}
