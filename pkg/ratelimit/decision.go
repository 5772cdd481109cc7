package ratelimit

import (
	"fmt"
	"time"
)

// RateLimitDecision is the result of a rate limit check.
type RateLimitDecision struct {
	// Key is the caller-supplied key, without KeyPrefix.
	Key string

	// Allowed reports whether the request may proceed.
	Allowed bool

	// Limit is the maximum number of requests in the window.
	Limit int

	// Remaining is limit minus the count after this request, never below 0.
	Remaining int

	// ResetAt is when the current window expires.
	ResetAt time.Time

	// RetryAfter is ResetAt minus the decision time, never negative.
	RetryAfter time.Duration
}

// String returns a human-readable representation of the decision.
func (d *RateLimitDecision) String() string {
	if d.Allowed {
		return fmt.Sprintf("RateLimitDecision{Allowed: true, Key: %s, Remaining: %d/%d, ResetAt: %s}",
			d.Key, d.Remaining, d.Limit, d.ResetAt.Format(time.RFC3339))
	}
	return fmt.Sprintf("RateLimitDecision{Allowed: false, Key: %s, Limit: %d, RetryAfter: %s}",
		d.Key, d.Limit, d.RetryAfter)
}

// ResetAtUnix returns the reset time as a Unix timestamp, for X-RateLimit-Reset.
func (d *RateLimitDecision) ResetAtUnix() int64 {
	return d.ResetAt.Unix()
}

// RetryAfterSeconds returns the retry delay in whole seconds, rounded up, for Retry-After.
func (d *RateLimitDecision) RetryAfterSeconds() int64 {
	if d.RetryAfter <= 0 {
		return 0
	}
	seconds := int64(d.RetryAfter / time.Second)
	if d.RetryAfter%time.Second != 0 {
		seconds++
	}
	return seconds
}

func newDecision(key string, allowed bool, limit, remaining int, now, resetAt time.Time) *RateLimitDecision {
	retryAfter := resetAt.Sub(now)
	if retryAfter < 0 {
		retryAfter = 0
	}
	if remaining < 0 {
		remaining = 0
	}
	return &RateLimitDecision{
		Key:        key,
		Allowed:    allowed,
		Limit:      limit,
		Remaining:  remaining,
		ResetAt:    resetAt,
		RetryAfter: retryAfter,
	}
}
