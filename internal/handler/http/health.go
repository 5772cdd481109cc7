// Package http provides the HTTP surface of the API server: the fun tool and
// compliment routes (in subpackages), health and metrics endpoints, and the
// middleware chain that wraps them.
package http

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"quirkit/internal/handler/http/respond"
	"quirkit/internal/infra/cache"
)

// Check statuses.
const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp string                 `json:"timestamp"`
	Checks    map[string]CheckStatus `json:"checks"`
	Version   string                 `json:"version"`
}

// CheckStatus is the result of one health check.
type CheckStatus struct {
	Status  string         `json:"status"`
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// Pinger is a dependency that answers a liveness ping.
type Pinger interface {
	Ping(ctx context.Context) error
}

// UpstreamHealthReader returns the latest prober results.
type UpstreamHealthReader interface {
	AllAPIHealth(ctx context.Context) (map[string]cache.APIHealth, error)
}

// BreakerReporter reports whether rate limiting is suspended.
type BreakerReporter interface {
	BreakerOpen() bool
}

// HealthHandler serves GET /health.
//
// The key-value store and, when configured, the compliment database decide
// the overall status. Upstream API results and the rate limiter breaker are
// reported but never make the service unhealthy, because every feature has
// a fallback.
type HealthHandler struct {
	Store       Pinger
	DB          *sql.DB
	Upstreams   UpstreamHealthReader
	RateLimiter BreakerReporter
	Version     string
	Logger      *slog.Logger
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]CheckStatus)
	allHealthy := true

	checks["kv"] = pingCheck(ctx, h.Store)
	if checks["kv"].Status != StatusHealthy {
		allHealthy = false
	}

	if h.DB != nil {
		checks["database"] = h.checkDatabase(ctx)
		if checks["database"].Status == StatusUnhealthy {
			allHealthy = false
		}
	}

	if h.Upstreams != nil {
		checks["upstreams"] = h.checkUpstreams(ctx)
	}

	if h.RateLimiter != nil {
		state := "closed"
		if h.RateLimiter.BreakerOpen() {
			state = "open"
		}
		checks["rate_limiter"] = CheckStatus{
			Status:  StatusHealthy,
			Details: map[string]any{"circuit_breaker": state},
		}
	}

	status := StatusHealthy
	statusCode := http.StatusOK
	if !allHealthy {
		status = StatusUnhealthy
		statusCode = http.StatusServiceUnavailable
	}

	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	respond.JSON(w, statusCode, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	})
}

func pingCheck(ctx context.Context, p Pinger) CheckStatus {
	if p == nil {
		return CheckStatus{Status: StatusUnhealthy, Message: "not configured"}
	}
	if err := p.Ping(ctx); err != nil {
		return CheckStatus{Status: StatusUnhealthy, Message: respond.SanitizeError(err)}
	}
	return CheckStatus{Status: StatusHealthy}
}

// checkDatabase pings the compliment database and reports pool usage.
func (h *HealthHandler) checkDatabase(ctx context.Context) CheckStatus {
	if err := h.DB.PingContext(ctx); err != nil {
		return CheckStatus{Status: StatusUnhealthy, Message: respond.SanitizeError(err)}
	}

	stats := h.DB.Stats()
	details := map[string]any{
		"max_open_connections": stats.MaxOpenConnections,
		"open_connections":     stats.OpenConnections,
		"in_use":               stats.InUse,
		"idle":                 stats.Idle,
		"wait_count":           stats.WaitCount,
	}
	if stats.MaxOpenConnections > 0 && float64(stats.InUse)/float64(stats.MaxOpenConnections) >= 0.8 {
		return CheckStatus{
			Status:  StatusDegraded,
			Message: "connection pool utilization above 80%",
			Details: details,
		}
	}
	return CheckStatus{Status: StatusHealthy, Details: details}
}

// checkUpstreams summarizes the health:* records written by the prober.
func (h *HealthHandler) checkUpstreams(ctx context.Context) CheckStatus {
	results, err := h.Upstreams.AllAPIHealth(ctx)
	if err != nil {
		if h.Logger != nil {
			h.Logger.WarnContext(ctx, "failed to read upstream health", slog.Any("error", err))
		}
		return CheckStatus{Status: StatusDegraded, Message: "upstream health unavailable"}
	}
	if len(results) == 0 {
		return CheckStatus{Status: StatusHealthy, Message: "no probe results yet"}
	}

	details := make(map[string]any, len(results))
	status := StatusHealthy
	for api, result := range results {
		details[api] = result
		if !result.Healthy {
			status = StatusDegraded
		}
	}
	return CheckStatus{Status: status, Details: details}
}

// ReadyHandler serves GET /ready. The server is ready when the key-value
// store answers.
type ReadyHandler struct {
	Store Pinger
}

func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if check := pingCheck(ctx, h.Store); check.Status != StatusHealthy {
		http.Error(w, "kv not ready: "+check.Message, http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// LiveHandler serves GET /live.
type LiveHandler struct{}

func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("alive"))
}
