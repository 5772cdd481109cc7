// Package ratelimit provides a fixed-window rate limiter backed by a shared
// counter store (Redis in production, an in-memory map in tests and local runs).
//
// The limiter is intentionally soft: the count is read before it is incremented,
// so concurrent requests for the same key may overshoot the limit by a few.
package ratelimit

import (
	"context"
	"time"
)

// KeyPrefix is prepended to every rate limit key written to the counter store.
const KeyPrefix = "rate:"

// CounterStore is the subset of key-value operations the limiter needs.
//
// Get reports ok=false when the key does not exist. TTL returns a negative
// duration when the key has no expiry or does not exist.
type CounterStore interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Incr(ctx context.Context, key string) (int64, error)
	Expire(ctx context.Context, key string, ttl time.Duration) error
	TTL(ctx context.Context, key string) (time.Duration, error)
}

// RateLimitMetrics records limiter outcomes.
type RateLimitMetrics interface {
	// RecordAllowed records a check that let the request through.
	RecordAllowed(limiterType string)

	// RecordDenied records a check that rejected the request.
	RecordDenied(limiterType string)

	// RecordCheckDuration records how long a check took, store round-trips included.
	RecordCheckDuration(limiterType string, duration time.Duration)

	// RecordStoreError records a counter store failure (the request is let through).
	RecordStoreError(limiterType string)
}

// Clock abstracts time for tests.
type Clock interface {
	Now() time.Time
}

// SystemClock uses time.Now.
type SystemClock struct{}

// Now returns the current time.
func (c *SystemClock) Now() time.Time {
	return time.Now()
}
