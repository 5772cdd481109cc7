package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics track request patterns and latency.
var (
	// HTTPRequestsTotal counts requests by method, route and status.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration measures request duration in seconds.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// HTTPResponseSize measures response body size in bytes.
	HTTPResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_size_bytes",
			Help:    "HTTP response size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 6),
		},
		[]string{"method", "path"},
	)
)

// Fallback resolution metrics.
var (
	// ResolutionsTotal counts resolver outcomes per feature.
	// outcome: cache_hit, upstream, fallback, error.
	ResolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quirkit_resolutions_total",
			Help: "Fallback resolver outcomes by feature",
		},
		[]string{"feature", "outcome"},
	)

	// CacheWriteFailuresTotal counts best-effort cache writes that failed.
	CacheWriteFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quirkit_cache_write_failures_total",
			Help: "Cache writes that failed after a successful upstream call",
		},
		[]string{"feature"},
	)
)

// Upstream metrics.
var (
	// UpstreamRequestDuration measures outbound calls by API and result.
	// result: ok, unavailable, error.
	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "quirkit_upstream_request_duration_seconds",
			Help:    "Duration of calls to third-party APIs",
			Buckets: []float64{.05, .1, .25, .5, 1, 2, 5},
		},
		[]string{"api", "result"},
	)

	// UpstreamHealthy is 1 when the last probe of an API succeeded.
	UpstreamHealthy = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "quirkit_upstream_healthy",
			Help: "Result of the last health probe per upstream API (1 healthy, 0 unhealthy)",
		},
		[]string{"api"},
	)
)

// Compliment metrics.
var (
	// ComplimentsSubmittedTotal counts submissions by status.
	// status: approved, moderation.
	ComplimentsSubmittedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quirkit_compliments_submitted_total",
			Help: "Compliments submitted, split by moderation status",
		},
		[]string{"status"},
	)

	// ComplimentStoreFailoversTotal counts operations served by the in-memory store
	// because the primary store failed.
	ComplimentStoreFailoversTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quirkit_compliment_store_failovers_total",
			Help: "Compliment operations that fell back to the in-memory store",
		},
		[]string{"operation"},
	)
)
