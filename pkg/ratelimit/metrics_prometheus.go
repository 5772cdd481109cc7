package ratelimit

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusMetrics implements RateLimitMetrics on its own registry, so several
// instances can coexist in tests. Expose it with promhttp.HandlerFor(m.Registry(), ...)
// or by gathering it together with the default registry.
type PrometheusMetrics struct {
	registry *prometheus.Registry

	// requestsTotal labels: limiter, status ("allowed" | "denied").
	requestsTotal *prometheus.CounterVec

	// checkDuration includes the counter store round-trips.
	checkDuration *prometheus.HistogramVec

	storeErrorsTotal *prometheus.CounterVec
}

// NewPrometheusMetrics creates the collectors and registers them on a fresh registry.
func NewPrometheusMetrics() *PrometheusMetrics {
	registry := prometheus.NewRegistry()

	requestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quirkit_ratelimit_requests_total",
			Help: "Rate limit checks by limiter and outcome",
		},
		[]string{"limiter", "status"},
	)

	checkDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "quirkit_ratelimit_check_duration_seconds",
			Help:    "Duration of rate limit checks",
			Buckets: []float64{.0005, .001, .002, .005, .01, .025, .05, .1, .25},
		},
		[]string{"limiter"},
	)

	storeErrorsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quirkit_ratelimit_store_errors_total",
			Help: "Counter store failures seen by the rate limiter",
		},
		[]string{"limiter"},
	)

	registry.MustRegister(requestsTotal, checkDuration, storeErrorsTotal)

	return &PrometheusMetrics{
		registry:         registry,
		requestsTotal:    requestsTotal,
		checkDuration:    checkDuration,
		storeErrorsTotal: storeErrorsTotal,
	}
}

// Registry returns the registry holding the rate limit collectors.
func (m *PrometheusMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordAllowed implements RateLimitMetrics.
func (m *PrometheusMetrics) RecordAllowed(limiterType string) {
	m.requestsTotal.WithLabelValues(limiterType, "allowed").Inc()
}

// RecordDenied implements RateLimitMetrics.
func (m *PrometheusMetrics) RecordDenied(limiterType string) {
	m.requestsTotal.WithLabelValues(limiterType, "denied").Inc()
}

// RecordCheckDuration implements RateLimitMetrics.
func (m *PrometheusMetrics) RecordCheckDuration(limiterType string, duration time.Duration) {
	m.checkDuration.WithLabelValues(limiterType).Observe(duration.Seconds())
}

// RecordStoreError implements RateLimitMetrics.
func (m *PrometheusMetrics) RecordStoreError(limiterType string) {
	m.storeErrorsTotal.WithLabelValues(limiterType).Inc()
}
