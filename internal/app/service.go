// Package app contains application services that orchestrate use cases.
// This is the application layer in Clean Architecture - it coordinates
// domain logic and infrastructure through ports.
//
// Application Layer Responsibilities:
//   - Orchestrate use cases (selection, reactions, creation, accounts)
//   - Compose pure domain rules with repository reads and writes
//   - Handle cross-cutting concerns (logging, metrics)
//
// What does NOT belong here:
//   - HTTP specifics such as cookies or partial rendering (that's adapters)
//   - SQL and transactions (that's the persistence adapter)
//   - Selection and validation rules (that's the domain layer)
package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/jsamuelsen/quote-roulette/internal/platform/logging"
)

// Clock returns the current time. Services default to time.Now.
type Clock func() time.Time

func (c Clock) orDefault() Clock {
	if c == nil {
		return time.Now
	}

	return c
}

// componentLogger tags logger with the service name, defaulting to slog.Default.
func componentLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = slog.Default()
	}

	return logger.With(slog.String("component", component))
}

// requestLogger prefers the request-scoped logger set by the HTTP middleware.
func requestLogger(ctx context.Context, fallback *slog.Logger, method string) *slog.Logger {
	return logging.FromContextOr(ctx, fallback).With(slog.String("method", method))
}
