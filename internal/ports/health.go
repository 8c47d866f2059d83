package ports

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// ErrDuplicateChecker rejects a second checker under an already used name.
var ErrDuplicateChecker = errors.New("duplicate health checker")

// DefaultCheckTimeout bounds a single readiness check.
const DefaultCheckTimeout = 2 * time.Second

// HealthChecker reports whether one dependency can serve. The SQLite store
// and the upstream quote feed implement it.
type HealthChecker interface {
	// Name identifies the checker in readiness output.
	Name() string

	// Check returns nil when healthy. It must honor ctx.
	Check(ctx context.Context) error
}

// HealthRegistry runs the registered checkers for the readiness probe.
type HealthRegistry interface {
	// Register adds a checker whose failure makes the service unhealthy.
	Register(checker HealthChecker) error

	// RegisterOptional adds a checker whose failure only degrades it.
	RegisterOptional(checker HealthChecker) error

	// CheckAll runs every checker concurrently.
	CheckAll(ctx context.Context) *HealthResult
}

// HealthStatus is the outcome of one check or of the whole registry.
type HealthStatus string

const (
	HealthStatusHealthy   HealthStatus = "healthy"
	HealthStatusDegraded  HealthStatus = "degraded"
	HealthStatusUnhealthy HealthStatus = "unhealthy"
)

// Serving reports whether traffic should still be routed here.
func (s HealthStatus) Serving() bool {
	return s != HealthStatusUnhealthy
}

// HealthResult is the readiness report.
type HealthResult struct {
	Status    HealthStatus            `json:"status"`
	Checks    map[string]*CheckResult `json:"checks"`
	Timestamp time.Time               `json:"timestamp"`
}

// CheckResult is the report for one checker.
type CheckResult struct {
	Status   HealthStatus  `json:"status"`
	Message  string        `json:"message,omitempty"`
	Duration time.Duration `json:"duration"`
	Optional bool          `json:"optional,omitempty"`
}

type entry struct {
	checker  HealthChecker
	optional bool
}

// DefaultHealthRegistry is the concurrency-safe HealthRegistry.
type DefaultHealthRegistry struct {
	timeout time.Duration

	mu      sync.RWMutex
	entries []entry
}

// RegistryOption customizes a DefaultHealthRegistry.
type RegistryOption func(*DefaultHealthRegistry)

// WithCheckTimeout bounds every check by d. Non-positive values keep the
// default.
func WithCheckTimeout(d time.Duration) RegistryOption {
	return func(r *DefaultHealthRegistry) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// NewHealthRegistry creates an empty registry.
func NewHealthRegistry(opts ...RegistryOption) *DefaultHealthRegistry {
	r := &DefaultHealthRegistry{timeout: DefaultCheckTimeout}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

func (r *DefaultHealthRegistry) Register(checker HealthChecker) error {
	return r.add(entry{checker: checker})
}

func (r *DefaultHealthRegistry) RegisterOptional(checker HealthChecker) error {
	return r.add(entry{checker: checker, optional: true})
}

func (r *DefaultHealthRegistry) add(e entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.entries {
		if existing.checker.Name() == e.checker.Name() {
			return fmt.Errorf("%w: %s", ErrDuplicateChecker, e.checker.Name())
		}
	}

	r.entries = append(r.entries, e)

	return nil
}

// CheckAll runs every checker concurrently, each under the check timeout.
// A failing required checker makes the result unhealthy; a failing
// optional one makes it degraded.
func (r *DefaultHealthRegistry) CheckAll(ctx context.Context) *HealthResult {
	r.mu.RLock()
	entries := append([]entry(nil), r.entries...)
	r.mu.RUnlock()

	results := make([]*CheckResult, len(entries))

	var g errgroup.Group

	for i, e := range entries {
		g.Go(func() error {
			results[i] = r.run(ctx, e)
			return nil
		})
	}

	_ = g.Wait()

	report := &HealthResult{
		Status:    HealthStatusHealthy,
		Checks:    make(map[string]*CheckResult, len(entries)),
		Timestamp: time.Now(),
	}

	for i, e := range entries {
		res := results[i]
		report.Checks[e.checker.Name()] = res

		switch {
		case res.Status == HealthStatusHealthy:
		case e.optional:
			if report.Status == HealthStatusHealthy {
				report.Status = HealthStatusDegraded
			}
		default:
			report.Status = HealthStatusUnhealthy
		}
	}

	return report
}

func (r *DefaultHealthRegistry) run(ctx context.Context, e entry) *CheckResult {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()
	err := e.checker.Check(ctx)

	res := &CheckResult{
		Status:   HealthStatusHealthy,
		Duration: time.Since(start),
		Optional: e.optional,
	}

	if err != nil {
		res.Status = HealthStatusUnhealthy
		res.Message = err.Error()
	}

	return res
}
