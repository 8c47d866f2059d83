// Package clients provides the instrumented HTTP client used to reach
// upstream quote providers.
package clients

import "errors"

// Transport-level failures. The acl package maps them to domain errors.
var (
	// ErrCircuitOpen means the breaker rejected the call without sending it.
	ErrCircuitOpen = errors.New("circuit breaker open")

	// ErrMaxRetriesExceeded wraps the last failure once every attempt is spent.
	ErrMaxRetriesExceeded = errors.New("max retries exceeded")
)
