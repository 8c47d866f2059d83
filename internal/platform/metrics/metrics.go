// Package metrics exposes Prometheus counters for quote activity. They are
// registered on the default registry and served by /-/metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// QuotesServed counts random quote responses.
	// Labels:
	//   - mode: "fresh", "exhausted" or "empty"
	//   - identity: "user" or "session"
	QuotesServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quotes_served_total",
			Help: "Total number of random quotes served",
		},
		[]string{"mode", "identity"},
	)

	// QuoteViewsRecorded counts first views written to view history.
	QuoteViewsRecorded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "quote_views_recorded_total",
			Help: "Total number of first views recorded",
		},
	)

	// QuotesCreated counts creation attempts.
	// Labels:
	//   - origin: "user" or "import"
	//   - outcome: "created", "rejected" or "error"
	QuotesCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quotes_created_total",
			Help: "Total number of quote creation attempts",
		},
		[]string{"origin", "outcome"},
	)

	// Reactions counts like and dislike attempts.
	// Labels:
	//   - kind: "like" or "dislike"
	//   - outcome: "recorded" or "already_voted"
	Reactions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quote_reactions_total",
			Help: "Total number of quote reactions",
		},
		[]string{"kind", "outcome"},
	)

	// ViewsPurged counts view history rows removed by retention.
	ViewsPurged = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "quote_views_purged_total",
			Help: "Total number of view history rows purged",
		},
	)

	// RetentionDuration measures each purge run.
	RetentionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "quote_retention_duration_seconds",
			Help:    "Duration of view history purge runs",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
	)

	// AuthAttempts counts login and registration attempts.
	// Labels:
	//   - action: "login", "register" or "logout"
	//   - outcome: "success", "failure", "rejected", "error" or "rate_limited"
	AuthAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_attempts_total",
			Help: "Total number of authentication attempts",
		},
		[]string{"action", "outcome"},
	)

	// UpstreamCircuitState reports each upstream breaker as 0 closed,
	// 1 half-open or 2 open.
	UpstreamCircuitState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "upstream_circuit_state",
			Help: "Circuit breaker state per upstream service",
		},
		[]string{"service"},
	)

	// UpstreamCircuitTransitions counts breaker state changes.
	UpstreamCircuitTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_circuit_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"service", "from", "to"},
	)
)

// RecordServed records one random quote response.
func RecordServed(mode, identity string) {
	QuotesServed.WithLabelValues(mode, identity).Inc()
}

// RecordCreated records one creation attempt.
func RecordCreated(origin, outcome string) {
	QuotesCreated.WithLabelValues(origin, outcome).Inc()
}

// RecordReaction records one reaction attempt.
func RecordReaction(kind string, alreadyVoted bool) {
	outcome := "recorded"
	if alreadyVoted {
		outcome = "already_voted"
	}

	Reactions.WithLabelValues(kind, outcome).Inc()
}

// RecordPurge records a retention run.
func RecordPurge(deleted int64, duration time.Duration) {
	ViewsPurged.Add(float64(deleted))
	RetentionDuration.Observe(duration.Seconds())
}

// RecordAuth records an authentication attempt.
func RecordAuth(action, outcome string) {
	AuthAttempts.WithLabelValues(action, outcome).Inc()
}

// RecordCircuitTransition records a breaker moving between states.
func RecordCircuitTransition(service, from, to string, state float64) {
	UpstreamCircuitState.WithLabelValues(service).Set(state)
	UpstreamCircuitTransitions.WithLabelValues(service, from, to).Inc()
}
