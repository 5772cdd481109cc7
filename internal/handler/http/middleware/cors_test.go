package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func TestCORS_Preflight(t *testing.T) {
	tests := []struct {
		name       string
		origins    []string
		origin     string
		wantOrigin string
	}{
		{name: "wildcard", origins: []string{"*"}, origin: "http://anything.test", wantOrigin: "*"},
		{name: "no origins configured", origins: nil, origin: "http://anything.test", wantOrigin: "*"},
		{name: "whitelisted origin is echoed", origins: []string{"http://localhost:3000"}, origin: "http://localhost:3000", wantOrigin: "http://localhost:3000"},
		{name: "other origin gets no allow header", origins: []string{"http://localhost:3000"}, origin: "http://evil.test", wantOrigin: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			h := CORS(NewCORSConfig(tt.origins, discardLogger()))(okHandler(&called))

			req := httptest.NewRequest(http.MethodOptions, "/api/joke", nil)
			req.Header.Set("Origin", tt.origin)
			req.Header.Set("Access-Control-Request-Method", http.MethodGet)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.False(t, called, "preflight must not reach the route")
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.wantOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, "GET, POST, PUT, DELETE, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
			assert.Equal(t, "Content-Type, Authorization", rec.Header().Get("Access-Control-Allow-Headers"))
			assert.Equal(t, "86400", rec.Header().Get("Access-Control-Max-Age"))
		})
	}
}

func TestCORS_ActualRequest(t *testing.T) {
	called := false
	h := CORS(NewCORSConfig([]string{"https://quirkit.app/"}, discardLogger()))(okHandler(&called))

	req := httptest.NewRequest(http.MethodGet, "/api/joke", nil)
	req.Header.Set("Origin", "https://QUIRKIT.app")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.True(t, called)
	assert.Equal(t, "https://QUIRKIT.app", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "Origin", rec.Header().Get("Vary"))
}

func TestCORS_SameOriginRequest(t *testing.T) {
	called := false
	h := CORS(NewCORSConfig([]string{"http://localhost:3000"}, discardLogger()))(okHandler(&called))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/joke", nil))

	assert.True(t, called)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestWhitelistValidator(t *testing.T) {
	v := NewWhitelistValidator([]string{" http://localhost:3000/ ", "", "https://Example.com"})

	assert.Equal(t, []string{"http://localhost:3000", "https://example.com"}, v.GetAllowedOrigins())

	tests := []struct {
		origin string
		want   bool
	}{
		{origin: "http://localhost:3000", want: true},
		{origin: "HTTP://LOCALHOST:3000/", want: true},
		{origin: "https://example.com", want: true},
		{origin: "https://example.com.evil.test", want: false},
		{origin: "http://localhost:3001", want: false},
		{origin: "", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.origin, func(t *testing.T) {
			assert.Equal(t, tt.want, v.IsAllowed(tt.origin))
		})
	}

	origins := v.GetAllowedOrigins()
	origins[0] = "mutated"
	assert.True(t, v.IsAllowed("http://localhost:3000"), "GetAllowedOrigins must return a copy")
}
