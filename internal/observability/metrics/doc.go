// Package metrics declares the application's Prometheus collectors. They are
// registered on the default registry and served from /metrics.
package metrics
