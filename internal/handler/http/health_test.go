package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quirkit/internal/infra/cache"
	"quirkit/internal/infra/kv"
)

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

type stubBreaker struct{ open bool }

func (b stubBreaker) BreakerOpen() bool { return b.open }

func serveHealth(t *testing.T, h http.Handler) (int, HealthResponse) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	assert.Equal(t, "no-cache, no-store, must-revalidate", rec.Header().Get("Cache-Control"))
	return rec.Code, resp
}

func TestHealthHandler_Healthy(t *testing.T) {
	store := kv.NewMemory()
	c := cache.New(store)
	require.NoError(t, c.SetAPIHealth(context.Background(), "jokeapi", true, 120*time.Millisecond))
	require.NoError(t, c.SetAPIHealth(context.Background(), "quotable", false, 3*time.Second))

	code, resp := serveHealth(t, &HealthHandler{
		Store:       store,
		Upstreams:   c,
		RateLimiter: stubBreaker{open: true},
		Version:     "1.2.3",
	})

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, StatusHealthy, resp.Status)
	assert.Equal(t, "1.2.3", resp.Version)
	assert.Equal(t, StatusHealthy, resp.Checks["kv"].Status)

	upstreams := resp.Checks["upstreams"]
	assert.Equal(t, StatusDegraded, upstreams.Status, "an unhealthy API degrades but does not fail the service")
	assert.Contains(t, upstreams.Details, "jokeapi")
	assert.Contains(t, upstreams.Details, "quotable")

	assert.Equal(t, "open", resp.Checks["rate_limiter"].Details["circuit_breaker"])
	_, hasDB := resp.Checks["database"]
	assert.False(t, hasDB)
}

func TestHealthHandler_NoProbeResults(t *testing.T) {
	store := kv.NewMemory()
	_, resp := serveHealth(t, &HealthHandler{Store: store, Upstreams: cache.New(store)})

	assert.Equal(t, StatusHealthy, resp.Checks["upstreams"].Status)
	assert.Equal(t, "no probe results yet", resp.Checks["upstreams"].Message)
}

func TestHealthHandler_StoreDown(t *testing.T) {
	code, resp := serveHealth(t, &HealthHandler{Store: stubPinger{err: errors.New("dial tcp: connection refused")}})

	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, StatusUnhealthy, resp.Status)
	assert.Equal(t, StatusUnhealthy, resp.Checks["kv"].Status)
	assert.Contains(t, resp.Checks["kv"].Message, "connection refused")
}

func TestHealthHandler_StoreNotConfigured(t *testing.T) {
	code, resp := serveHealth(t, &HealthHandler{})

	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "not configured", resp.Checks["kv"].Message)
}

func TestHealthHandler_Database(t *testing.T) {
	tests := []struct {
		name       string
		pingErr    error
		wantCode   int
		wantStatus string
	}{
		{name: "reachable", wantCode: http.StatusOK, wantStatus: StatusHealthy},
		{name: "unreachable", pingErr: errors.New("connection refused"), wantCode: http.StatusServiceUnavailable, wantStatus: StatusUnhealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
			require.NoError(t, err)
			defer db.Close()
			db.SetMaxOpenConns(10)
			mock.ExpectPing().WillReturnError(tt.pingErr)

			code, resp := serveHealth(t, &HealthHandler{Store: stubPinger{}, DB: db})

			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantStatus, resp.Checks["database"].Status)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestReadyHandler(t *testing.T) {
	tests := []struct {
		name     string
		store    Pinger
		wantCode int
	}{
		{name: "ready", store: stubPinger{}, wantCode: http.StatusOK},
		{name: "store down", store: stubPinger{err: errors.New("timeout")}, wantCode: http.StatusServiceUnavailable},
		{name: "not configured", store: nil, wantCode: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			(&ReadyHandler{Store: tt.store}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestLiveHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	(&LiveHandler{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/live", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alive", rec.Body.String())
}
