// Package upstream talks to the third-party content APIs (JokeAPI, Quotable,
// TheCocktailDB, Calendarific, the Reddit shower thought feed) and the LLM
// excuse generators. Every call goes through a per-API circuit breaker, a
// bounded retry and a shared outbound token bucket, and failures come back as
// typed errors the fallback resolver can classify.
package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"quirkit/internal/observability/metrics"
	"quirkit/internal/observability/tracing"
	"quirkit/internal/resilience/circuitbreaker"
	"quirkit/internal/resilience/retry"
)

const (
	userAgent = "Quirkit/1.0"

	// maxBodyBytes caps how much of an upstream body is read.
	maxBodyBytes = 1 << 20

	probeTimeout = 3 * time.Second
)

// Call results used as metric labels.
const (
	resultSuccess     = "success"
	resultUnavailable = "unavailable"
	resultError       = "error"
)

// Client is the shared outbound HTTP client.
type Client struct {
	http        *http.Client
	limiter     *rate.Limiter
	retryConfig retry.Config
	logger      *slog.Logger

	mu       sync.Mutex
	breakers map[string]*circuitbreaker.CircuitBreaker
	breakerF func(api string) circuitbreaker.Config
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithRateLimit sets the outbound token bucket: requestsPerSecond sustained,
// up to burst at once.
func WithRateLimit(requestsPerSecond float64, burst int) Option {
	return func(c *Client) { c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), burst) }
}

// WithRetryConfig replaces retry.UpstreamConfig.
func WithRetryConfig(cfg retry.Config) Option {
	return func(c *Client) { c.retryConfig = cfg }
}

// WithBreakerConfig sets how per-API breakers are configured.
func WithBreakerConfig(f func(api string) circuitbreaker.Config) Option {
	return func(c *Client) { c.breakerF = f }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// NewClient creates a Client allowing 10 outbound requests per second with a
// burst of 20.
func NewClient(opts ...Option) *Client {
	c := &Client{
		http:        &http.Client{Timeout: 10 * time.Second},
		limiter:     rate.NewLimiter(10, 20),
		retryConfig: retry.UpstreamConfig(),
		logger:      slog.Default(),
		breakers:    make(map[string]*circuitbreaker.CircuitBreaker),
		breakerF:    upstreamBreakerConfig,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// HTTPClient returns the underlying HTTP client.
func (c *Client) HTTPClient() *http.Client {
	return c.http
}

func upstreamBreakerConfig(api string) circuitbreaker.Config {
	var cfg circuitbreaker.Config
	switch api {
	case APIClaude, APIOpenAI:
		cfg = circuitbreaker.LLMConfig(api)
	default:
		cfg = circuitbreaker.UpstreamAPIConfig(api)
	}
	cfg.IsSuccessful = countsAsSuccess
	return cfg
}

// countsAsSuccess keeps client errors (404, 401, bad bodies) from tripping
// the breaker.
func countsAsSuccess(err error) bool {
	if err == nil {
		return true
	}
	var httpErr *retry.HTTPError
	if errors.As(err, &httpErr) {
		return !retry.IsRetryable(httpErr)
	}
	var decodeErr *DecodeError
	return errors.As(err, &decodeErr)
}

func (c *Client) breaker(api string) *circuitbreaker.CircuitBreaker {
	c.mu.Lock()
	defer c.mu.Unlock()
	cb, ok := c.breakers[api]
	if !ok {
		cb = circuitbreaker.New(c.breakerF(api))
		c.breakers[api] = cb
	}
	return cb
}

// BreakerOpen reports whether the circuit for api is open.
func (c *Client) BreakerOpen(api string) bool {
	return c.breaker(api).IsOpen()
}

// Call runs fn for api through the token bucket, the retry loop and the API's
// circuit breaker, then maps the outcome to UnavailableError, ResponseError or
// the error fn returned.
func (c *Client) Call(ctx context.Context, api string, fn func(ctx context.Context) error) error {
	ctx, span := tracing.GetTracer().Start(ctx, "upstream."+api,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("quirkit.upstream", api)))
	defer span.End()

	start := time.Now()
	err := c.call(ctx, api, fn)
	elapsed := time.Since(start)

	result := resultSuccess
	if err != nil {
		result = resultError
		var unavailable *UnavailableError
		if errors.As(err, &unavailable) {
			result = resultUnavailable
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, result)
		c.logger.WarnContext(ctx, "upstream call failed",
			slog.String("api", api),
			slog.String("result", result),
			slog.Duration("duration", elapsed),
			slog.Any("error", err))
	}
	metrics.RecordUpstreamCall(api, result, elapsed)
	return err
}

func (c *Client) call(ctx context.Context, api string, fn func(ctx context.Context) error) error {
	if err := c.limiter.Wait(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return &UnavailableError{API: api, Err: fmt.Errorf("outbound rate limit: %w", err)}
	}

	cb := c.breaker(api)
	err := retry.WithBackoff(ctx, c.retryConfig, func() error {
		_, err := circuitbreaker.Do(cb, func() (struct{}, error) {
			return struct{}{}, fn(ctx)
		})
		if circuitbreaker.IsRejection(err) {
			c.logger.WarnContext(ctx, "upstream circuit breaker open, request rejected",
				slog.String("service", api),
				slog.String("state", cb.State().String()))
		}
		return err
	})
	return mapError(api, err)
}

func mapError(api string, err error) error {
	if err == nil {
		return nil
	}
	if circuitbreaker.IsRejection(err) {
		return &UnavailableError{API: api, Err: err}
	}

	var decodeErr *DecodeError
	if errors.As(err, &decodeErr) {
		return decodeErr
	}
	var respErr *ResponseError
	if errors.As(err, &respErr) {
		return respErr
	}
	var unavailable *UnavailableError
	if errors.As(err, &unavailable) {
		return unavailable
	}

	var httpErr *retry.HTTPError
	if errors.As(err, &httpErr) {
		if retry.IsRetryable(httpErr) {
			return &UnavailableError{API: api, Err: err}
		}
		return &ResponseError{API: api, StatusCode: httpErr.StatusCode, Status: httpErr.Message}
	}

	if errors.Is(err, context.Canceled) {
		return err
	}
	return &UnavailableError{API: api, Err: err}
}

// FetchJSON GETs url and decodes the JSON body into out.
func (c *Client) FetchJSON(ctx context.Context, api, url string, out any) error {
	return c.Call(ctx, api, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return fmt.Errorf("create http request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", userAgent)

		resp, err := c.http.Do(req)
		if err != nil {
			return fmt.Errorf("execute http request: %w", err)
		}
		defer func() { _ = resp.Body.Close() }()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
			return &retry.HTTPError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		}

		body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		if err != nil {
			return fmt.Errorf("read response body: %w", err)
		}
		if err := json.Unmarshal(body, out); err != nil {
			return &DecodeError{API: api, Err: err}
		}
		return nil
	})
}

// Probe sends a HEAD request to url with a 3 second timeout. The API is
// healthy when it answers 2xx or 3xx.
func (c *Client) Probe(ctx context.Context, url string) (bool, time.Duration) {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return false, 0
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		return false, elapsed
	}
	_ = resp.Body.Close()
	return resp.StatusCode >= 200 && resp.StatusCode < 400, elapsed
}
