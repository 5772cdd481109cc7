package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"
)

// FixedWindowLimiter counts requests per key in fixed windows that start at
// the first request and last for the window duration.
type FixedWindowLimiter struct {
	name    string
	store   CounterStore
	clock   Clock
	metrics RateLimitMetrics
}

// Option configures a FixedWindowLimiter.
type Option func(*FixedWindowLimiter)

// WithClock overrides the clock used to compute reset times.
func WithClock(clock Clock) Option {
	return func(l *FixedWindowLimiter) { l.clock = clock }
}

// WithMetrics sets the metrics recorder.
func WithMetrics(metrics RateLimitMetrics) Option {
	return func(l *FixedWindowLimiter) { l.metrics = metrics }
}

// NewFixedWindowLimiter creates a limiter. name labels metrics ("ip", "compliment").
func NewFixedWindowLimiter(name string, store CounterStore, opts ...Option) *FixedWindowLimiter {
	l := &FixedWindowLimiter{
		name:    name,
		store:   store,
		clock:   &SystemClock{},
		metrics: NewNoOpMetrics(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Name returns the limiter name.
func (l *FixedWindowLimiter) Name() string {
	return l.name
}

// Check records one request for key and reports whether it is within limit.
//
// A key at or above the limit is denied without touching the counter. Otherwise
// the counter is incremented and, when this is the first request of the window,
// given an expiry of window. A counter found without an expiry on a later check
// is given one then, so a failed Expire cannot pin a key forever.
func (l *FixedWindowLimiter) Check(ctx context.Context, key string, limit int, window time.Duration) (*RateLimitDecision, error) {
	start := l.clock.Now()
	defer func() {
		l.metrics.RecordCheckDuration(l.name, l.clock.Now().Sub(start))
	}()

	storeKey := KeyPrefix + key

	raw, ok, err := l.store.Get(ctx, storeKey)
	if err != nil {
		l.metrics.RecordStoreError(l.name)
		return nil, fmt.Errorf("read counter %s: %w", storeKey, err)
	}

	count := 0
	if ok {
		if n, convErr := strconv.Atoi(raw); convErr == nil {
			count = n
		}
	}

	if count >= limit {
		l.metrics.RecordDenied(l.name)
		return newDecision(key, false, limit, 0, start, l.resetAt(ctx, storeKey, start, window)), nil
	}

	current, err := l.store.Incr(ctx, storeKey)
	if err != nil {
		l.metrics.RecordStoreError(l.name)
		return nil, fmt.Errorf("increment counter %s: %w", storeKey, err)
	}

	if current == 1 {
		if err := l.store.Expire(ctx, storeKey, window); err != nil {
			l.metrics.RecordStoreError(l.name)
			return nil, fmt.Errorf("expire counter %s: %w", storeKey, err)
		}
		l.metrics.RecordAllowed(l.name)
		return newDecision(key, true, limit, limit-1, start, start.Add(window)), nil
	}

	l.metrics.RecordAllowed(l.name)
	remaining := max(limit-int(current), 0)
	return newDecision(key, true, limit, remaining, start, l.resetAt(ctx, storeKey, start, window)), nil
}

// resetAt returns when the window of storeKey ends, re-arming the expiry of a
// counter that has none.
func (l *FixedWindowLimiter) resetAt(ctx context.Context, storeKey string, now time.Time, window time.Duration) time.Time {
	ttl, err := l.store.TTL(ctx, storeKey)
	if err != nil {
		return now.Add(window)
	}
	if ttl < 0 {
		if err := l.store.Expire(ctx, storeKey, window); err != nil {
			l.metrics.RecordStoreError(l.name)
		}
		return now.Add(window)
	}
	return now.Add(ttl)
}
