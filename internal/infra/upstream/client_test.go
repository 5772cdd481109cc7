package upstream

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quirkit/internal/resilience/circuitbreaker"
	"quirkit/internal/resilience/fallback"
	"quirkit/internal/resilience/retry"
)

func fastRetry(attempts int) retry.Config {
	return retry.Config{
		MaxAttempts:  attempts,
		InitialDelay: time.Millisecond,
		MaxDelay:     time.Millisecond,
		Multiplier:   1,
	}
}

// newMockedClient returns a Client whose HTTP client is served by httpmock.
func newMockedClient(t *testing.T, opts ...Option) *Client {
	t.Helper()
	hc := &http.Client{}
	httpmock.ActivateNonDefault(hc)
	t.Cleanup(httpmock.DeactivateAndReset)

	base := []Option{
		WithHTTPClient(hc),
		WithRetryConfig(fastRetry(2)),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}
	return NewClient(append(base, opts...)...)
}

func TestFetchJSON_Success(t *testing.T) {
	c := newMockedClient(t)
	httpmock.RegisterResponder(http.MethodGet, "https://api.test/random",
		func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "application/json", req.Header.Get("Accept"))
			assert.Equal(t, userAgent, req.Header.Get("User-Agent"))
			return httpmock.NewStringResponse(http.StatusOK, `{"content":"Stay hungry","author":"Someone"}`), nil
		})

	var out struct {
		Content string `json:"content"`
		Author  string `json:"author"`
	}
	require.NoError(t, c.FetchJSON(context.Background(), "quotable", "https://api.test/random", &out))
	assert.Equal(t, "Stay hungry", out.Content)
	assert.Equal(t, "Someone", out.Author)
}

func TestFetchJSON_ErrorMapping(t *testing.T) {
	tests := []struct {
		name      string
		responder httpmock.Responder
		wantCalls int
		check     func(t *testing.T, err error)
	}{
		{
			name:      "server error is retried then unavailable",
			responder: httpmock.NewStringResponder(http.StatusServiceUnavailable, "down"),
			wantCalls: 2,
			check: func(t *testing.T, err error) {
				var target *UnavailableError
				require.ErrorAs(t, err, &target)
				assert.Equal(t, "quotable", target.API)
			},
		},
		{
			name:      "too many requests is unavailable",
			responder: httpmock.NewStringResponder(http.StatusTooManyRequests, ""),
			wantCalls: 2,
			check: func(t *testing.T, err error) {
				var target *UnavailableError
				assert.ErrorAs(t, err, &target)
			},
		},
		{
			name:      "not found is a response error",
			responder: httpmock.NewStringResponder(http.StatusNotFound, "nope"),
			wantCalls: 1,
			check: func(t *testing.T, err error) {
				var target *ResponseError
				require.ErrorAs(t, err, &target)
				assert.Equal(t, "HTTP 404: Not Found", err.Error())
			},
		},
		{
			name:      "bad body is a decode error",
			responder: httpmock.NewStringResponder(http.StatusOK, "<html>"),
			wantCalls: 1,
			check: func(t *testing.T, err error) {
				var target *DecodeError
				assert.ErrorAs(t, err, &target)
			},
		},
		{
			name:      "transport failure is unavailable",
			responder: httpmock.NewErrorResponder(errors.New("dial tcp: lookup api.test: no such host")),
			wantCalls: 1,
			check: func(t *testing.T, err error) {
				var target *UnavailableError
				assert.ErrorAs(t, err, &target)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newMockedClient(t)
			httpmock.RegisterResponder(http.MethodGet, "https://api.test/random", tt.responder)

			var out map[string]any
			err := c.FetchJSON(context.Background(), "quotable", "https://api.test/random", &out)

			require.Error(t, err)
			tt.check(t, err)
			assert.Equal(t, tt.wantCalls, httpmock.GetCallCountInfo()["GET https://api.test/random"])
		})
	}
}

func TestFetchJSON_Classification(t *testing.T) {
	c := newMockedClient(t)
	httpmock.RegisterResponder(http.MethodGet, "https://api.test/down", httpmock.NewStringResponder(http.StatusBadGateway, ""))
	httpmock.RegisterResponder(http.MethodGet, "https://api.test/gone", httpmock.NewStringResponder(http.StatusGone, ""))

	var out map[string]any
	down := c.FetchJSON(context.Background(), "a", "https://api.test/down", &out)
	gone := c.FetchJSON(context.Background(), "b", "https://api.test/gone", &out)

	assert.Equal(t, fallback.Fallbackable, fallback.Classify(down))
	assert.Equal(t, fallback.Fatal, fallback.Classify(gone))
}

func TestCall_OpenCircuitIsUnavailable(t *testing.T) {
	c := newMockedClient(t,
		WithRetryConfig(fastRetry(1)),
		WithBreakerConfig(func(api string) circuitbreaker.Config {
			return circuitbreaker.StoreConfig(api, 1, time.Minute)
		}),
	)
	httpmock.RegisterResponder(http.MethodGet, "https://api.test/random", httpmock.NewStringResponder(http.StatusInternalServerError, ""))

	var out map[string]any
	_ = c.FetchJSON(context.Background(), "jokeapi", "https://api.test/random", &out)
	require.True(t, c.BreakerOpen("jokeapi"))

	err := c.FetchJSON(context.Background(), "jokeapi", "https://api.test/random", &out)
	var target *UnavailableError
	require.ErrorAs(t, err, &target)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, 1, httpmock.GetTotalCallCount(), "open circuit must not reach the API")

	assert.False(t, c.BreakerOpen("quotable"), "breakers are per API")
}

func TestCall_ClientErrorsDoNotTripBreaker(t *testing.T) {
	c := newMockedClient(t,
		WithRetryConfig(fastRetry(1)),
		WithBreakerConfig(func(api string) circuitbreaker.Config {
			cfg := circuitbreaker.StoreConfig(api, 1, time.Minute)
			cfg.IsSuccessful = countsAsSuccess
			return cfg
		}),
	)
	httpmock.RegisterResponder(http.MethodGet, "https://api.test/random", httpmock.NewStringResponder(http.StatusNotFound, ""))

	var out map[string]any
	for i := 0; i < 3; i++ {
		_ = c.FetchJSON(context.Background(), "quotable", "https://api.test/random", &out)
	}
	assert.False(t, c.BreakerOpen("quotable"))
}

func TestCall_CanceledContext(t *testing.T) {
	c := newMockedClient(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.Call(ctx, "quotable", func(context.Context) error {
		t.Error("fn must not run with a canceled context")
		return nil
	})

	assert.ErrorIs(t, err, context.Canceled)
	var target *UnavailableError
	assert.False(t, errors.As(err, &target))
}

func TestProbe(t *testing.T) {
	c := newMockedClient(t)
	httpmock.RegisterResponder(http.MethodHead, "https://up.test", httpmock.NewStringResponder(http.StatusOK, ""))
	httpmock.RegisterResponder(http.MethodHead, "https://moved.test", httpmock.NewStringResponder(http.StatusNotModified, ""))
	httpmock.RegisterResponder(http.MethodHead, "https://broken.test", httpmock.NewStringResponder(http.StatusInternalServerError, ""))
	httpmock.RegisterResponder(http.MethodHead, "https://gone.test", httpmock.NewErrorResponder(errors.New("connection refused")))

	tests := []struct {
		url  string
		want bool
	}{
		{url: "https://up.test", want: true},
		{url: "https://moved.test", want: true},
		{url: "https://broken.test", want: false},
		{url: "https://gone.test", want: false},
		{url: "://bad", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			healthy, _ := c.Probe(context.Background(), tt.url)
			assert.Equal(t, tt.want, healthy)
		})
	}
}
