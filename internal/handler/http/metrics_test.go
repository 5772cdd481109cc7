package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"quirkit/internal/handler/http/pathutil"
	"quirkit/internal/observability/metrics"
)

func TestMetricsMiddleware(t *testing.T) {
	h := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/joke" {
			_, _ = w.Write([]byte(`{"success":true}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))

	jokes := metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/joke", "200")
	unmatched := metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, pathutil.Unmatched, "404")
	beforeJokes := testutil.ToFloat64(jokes)
	beforeUnmatched := testutil.ToFloat64(unmatched)

	for _, path := range []string{"/api/joke", "/api/joke?lang=en", "/wp-login.php", "/.env"} {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(jokes)-beforeJokes)
	assert.Equal(t, 2.0, testutil.ToFloat64(unmatched)-beforeUnmatched, "unknown paths share one label")
	assert.Equal(t, 0.0, testutil.ToFloat64(httpRequestsInFlight))
}

func TestMetricsHandler(t *testing.T) {
	extra := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "quirkit_test_extra_total", Help: "test"})
	extra.MustRegister(counter)
	counter.Inc()

	rec := httptest.NewRecorder()
	MetricsHandler(extra).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "quirkit_test_extra_total 1")
	assert.Contains(t, rec.Body.String(), "go_goroutines")

	rec = httptest.NewRecorder()
	MetricsHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
