package clients

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/jsamuelsen/quote-roulette/internal/platform/config"
	"github.com/jsamuelsen/quote-roulette/internal/platform/metrics"
)

// Defaults applied when the circuit config leaves a field unset.
const (
	defaultBreakerMaxFailures   = 5
	defaultBreakerHalfOpenLimit = 1
)

// newBreaker builds the per-upstream breaker. It opens after MaxFailures
// consecutive failed calls, stays open for Timeout, then lets HalfOpenLimit
// probe calls through.
func newBreaker(name string, cfg config.CircuitBreakerConfig, logger *slog.Logger) *gobreaker.CircuitBreaker[*http.Response] {
	maxFailures := cfg.MaxFailures
	if maxFailures <= 0 {
		maxFailures = defaultBreakerMaxFailures
	}

	halfOpen := cfg.HalfOpenLimit
	if halfOpen <= 0 {
		halfOpen = defaultBreakerHalfOpenLimit
	}

	metrics.UpstreamCircuitState.WithLabelValues(name).Set(stateValue(gobreaker.StateClosed))

	return gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
		Name:        name,
		MaxRequests: uint32(halfOpen), //nolint:gosec // bounded by config validation
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(maxFailures) //nolint:gosec // bounded by config validation
		},
		// A caller giving up says nothing about upstream health.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
			metrics.RecordCircuitTransition(name, from.String(), to.String(), stateValue(to))
		},
	})
}

// isBreakerRejection reports whether err came from the breaker refusing a call.
func isBreakerRejection(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
