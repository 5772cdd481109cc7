// Package observability groups the logging, metrics and tracing helpers.
//
// Subpackages:
//   - logging: slog construction (JSON in production, tint-coloured text locally) and context propagation
//   - metrics: Prometheus collectors for HTTP traffic, fallback resolution and upstream calls
//   - tracing: OpenTelemetry tracer provider setup and HTTP middleware
package observability
