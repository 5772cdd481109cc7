// Package retry re-runs a failing call with capped exponential backoff.
//
// Three schedules are in use: UpstreamConfig for the joke, quote, drink,
// holiday and shower-thought APIs, LLMConfig for excuse generation, and
// StoreConfig for compliment store reads. Upstream schedules are short
// because the whole exchange has to finish inside the resolver timeout.
package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"net"
	"net/http"
	"syscall"
	"time"
)

// Config describes one retry schedule.
type Config struct {
	// MaxAttempts counts the first call.
	MaxAttempts int

	// InitialDelay is the pause after the first failure.
	InitialDelay time.Duration

	// MaxDelay caps every pause before jitter.
	MaxDelay time.Duration

	// Multiplier grows the pause after each failure.
	Multiplier float64

	// JitterFraction adds up to this share of the pause at random (0 to 1).
	JitterFraction float64

	// Retryable decides whether an error earns another attempt. Nil means IsRetryable.
	Retryable func(err error) bool

	// Rand returns a value in [0, 1) for jitter. Nil means math/rand/v2.Float64.
	Rand func() float64
}

// DefaultConfig is a general-purpose schedule: 3 attempts, 1s doubling to 30s.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:    3,
		InitialDelay:   time.Second,
		MaxDelay:       30 * time.Second,
		Multiplier:     2,
		JitterFraction: 0.1,
	}
}

// UpstreamConfig retries a content API once after 200ms.
func UpstreamConfig() Config {
	return Config{
		MaxAttempts:    2,
		InitialDelay:   200 * time.Millisecond,
		MaxDelay:       time.Second,
		Multiplier:     2,
		JitterFraction: 0.1,
	}
}

// LLMConfig retries an excuse generator once after 500ms.
func LLMConfig() Config {
	return Config{
		MaxAttempts:    2,
		InitialDelay:   500 * time.Millisecond,
		MaxDelay:       2 * time.Second,
		Multiplier:     2,
		JitterFraction: 0.1,
	}
}

// StoreConfig retries compliment store reads on any error but cancellation.
func StoreConfig() Config {
	return Config{
		MaxAttempts:    3,
		InitialDelay:   50 * time.Millisecond,
		MaxDelay:       500 * time.Millisecond,
		Multiplier:     2,
		JitterFraction: 0.1,
		Retryable:      func(err error) bool { return !errors.Is(err, context.Canceled) },
	}
}

// Delay returns the pause after the given failed attempt (1-based), before
// jitter: InitialDelay * Multiplier^(attempt-1), capped at MaxDelay.
func (c Config) Delay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	d := float64(c.InitialDelay) * math.Pow(c.Multiplier, float64(attempt-1))
	if c.MaxDelay > 0 && d > float64(c.MaxDelay) {
		return c.MaxDelay
	}
	return time.Duration(d)
}

func (c Config) jittered(d time.Duration) time.Duration {
	frac := min(c.JitterFraction, 1)
	if frac <= 0 {
		return d
	}
	random := c.Rand
	if random == nil {
		random = rand.Float64 // #nosec G404 -- jitter does not need a CSPRNG.
	}
	return d + time.Duration(random()*frac*float64(d))
}

// WithBackoff calls fn until it succeeds, returns a non-retryable error, the
// attempts run out, or ctx is done. The last error is wrapped in the result.
func WithBackoff(ctx context.Context, cfg Config, fn func() error) error {
	retryable := cfg.Retryable
	if retryable == nil {
		retryable = IsRetryable
	}

	var err error
	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		if err = fn(); err == nil {
			if attempt > 1 {
				slog.DebugContext(ctx, "retry succeeded", slog.Int("attempt", attempt))
			}
			return nil
		}
		if !retryable(err) {
			return err
		}
		if attempt == cfg.MaxAttempts {
			break
		}

		pause := cfg.jittered(cfg.Delay(attempt))
		slog.WarnContext(ctx, "attempt failed, retrying",
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", cfg.MaxAttempts),
			slog.Duration("delay", pause),
			slog.Any("error", err))

		timer := time.NewTimer(pause)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("retry aborted: %w", ctx.Err())
		}
	}
	return fmt.Errorf("max retry attempts (%d) exceeded: %w", cfg.MaxAttempts, err)
}

// retryableStatus lists upstream statuses worth another attempt besides 5xx.
var retryableStatus = map[int]bool{
	http.StatusRequestTimeout:  true,
	http.StatusTooManyRequests: true,
}

// IsRetryable reports whether err is a transient network failure or an
// HTTPError with a 5xx, 408 or 429 status. Cancellation and deadlines are final.
func IsRetryable(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return false
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode >= 500 && httpErr.StatusCode < 600 || retryableStatus[httpErr.StatusCode]
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	for _, errno := range []syscall.Errno{syscall.ECONNREFUSED, syscall.ECONNRESET, syscall.ETIMEDOUT, syscall.ENETUNREACH} {
		if errors.Is(err, errno) {
			return true
		}
	}
	return false
}

// HTTPError is a non-2xx answer from an upstream API.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}
