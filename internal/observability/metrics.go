// Package observability holds the Prometheus collectors shared by the client packages.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "trainmate"

var (
	apiRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "api",
		Name:      "requests_total",
		Help:      "Remote API calls grouped by resource, method and outcome.",
	}, []string{"resource", "method", "outcome"})

	apiDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "api",
		Name:      "request_duration_seconds",
		Help:      "Latency of remote API calls.",
		Buckets:   prometheus.ExponentialBuckets(0.01, 2, 10),
	}, []string{"resource", "method"})

	syncRollbacks = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "sync",
		Name:      "rollbacks_total",
		Help:      "Optimistic removals restored after the remote delete failed.",
	}, []string{"collection"})

	syncStaleLoads = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "sync",
		Name:      "stale_loads_discarded_total",
		Help:      "Load responses dropped because a newer load superseded them or the collection was disposed.",
	}, []string{"collection"})

	syncValidationFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "sync",
		Name:      "validation_failures_total",
		Help:      "Mutations rejected locally before any remote call.",
	}, []string{"collection"})

	syncLastLoadGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "sync",
		Name:      "last_load_timestamp_seconds",
		Help:      "Unix timestamp of the most recent successful load per collection.",
	}, []string{"collection"})

	sessionTransitions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "session",
		Name:      "transitions_total",
		Help:      "Session guard transitions (login, logout, restore) by resulting role.",
	}, []string{"transition", "role"})

	sessionStorageErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "session",
		Name:      "storage_errors_total",
		Help:      "Durable session slot failures that were degraded rather than surfaced.",
	}, []string{"op"})
)

func init() {
	prometheus.MustRegister(
		apiRequests,
		apiDuration,
		syncRollbacks,
		syncStaleLoads,
		syncValidationFailures,
		syncLastLoadGauge,
		sessionTransitions,
		sessionStorageErrors,
	)
}

// ObserveRequest records the outcome and latency of one remote call.
func ObserveRequest(resource, method, outcome string, elapsed time.Duration) {
	apiRequests.WithLabelValues(resource, method, outcome).Inc()
	apiDuration.WithLabelValues(resource, method).Observe(elapsed.Seconds())
}

// RecordRollback counts a restored optimistic removal.
func RecordRollback(collection string) {
	syncRollbacks.WithLabelValues(collection).Inc()
}

// RecordStaleLoad counts a discarded load response.
func RecordStaleLoad(collection string) {
	syncStaleLoads.WithLabelValues(collection).Inc()
}

// RecordValidationFailure counts a locally rejected mutation.
func RecordValidationFailure(collection string) {
	syncValidationFailures.WithLabelValues(collection).Inc()
}

// RecordLoaded updates the load watermark for a collection.
func RecordLoaded(collection string, ts time.Time) {
	if ts.IsZero() {
		return
	}
	syncLastLoadGauge.WithLabelValues(collection).Set(float64(ts.Unix()))
}

// RecordSessionTransition counts a guard transition.
func RecordSessionTransition(transition, role string) {
	if role == "" {
		role = "none"
	}
	sessionTransitions.WithLabelValues(transition, role).Inc()
}

// RecordSessionStorageError counts a degraded storage failure.
func RecordSessionStorageError(op string) {
	sessionStorageErrors.WithLabelValues(op).Inc()
}

// Collectors exposes the counters tests assert on.
var Collectors = struct {
	APIRequests        *prometheus.CounterVec
	Rollbacks          *prometheus.CounterVec
	StaleLoads         *prometheus.CounterVec
	ValidationFailures *prometheus.CounterVec
	SessionStorage     *prometheus.CounterVec
}{
	APIRequests:        apiRequests,
	Rollbacks:          syncRollbacks,
	StaleLoads:         syncStaleLoads,
	ValidationFailures: syncValidationFailures,
	SessionStorage:     sessionStorageErrors,
}
