// Package kv abstracts the key-value store shared by the cache, the rate
// limiter, the compliment store and the upstream health records.
package kv

import (
	"context"
	"errors"
	"time"
)

// ErrNotInteger is returned by Incr when the stored value is not an integer.
var ErrNotInteger = errors.New("kv: value is not an integer")

// Store is a small Redis-shaped key-value API.
//
// Each call is atomic on its own; there are no multi-key transactions.
// A ttl of zero means the key never expires.
type Store interface {
	// Get returns ok=false, with no error, when the key does not exist.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error

	Incr(ctx context.Context, key string) (int64, error)
	Expire(ctx context.Context, key string, ttl time.Duration) error
	// TTL returns a negative duration when the key is missing or has no expiry.
	TTL(ctx context.Context, key string) (time.Duration, error)

	LPush(ctx context.Context, key string, values ...string) error
	LRange(ctx context.Context, key string, start, stop int64) ([]string, error)

	HSet(ctx context.Context, key string, fields map[string]string) error
	// HGetAll returns an empty map when the key does not exist.
	HGetAll(ctx context.Context, key string) (map[string]string, error)

	// Keys returns the keys matching a glob pattern ("health:*").
	Keys(ctx context.Context, pattern string) ([]string, error)

	Ping(ctx context.Context) error
	Close() error
}

var (
	_ Store = (*Redis)(nil)
	_ Store = (*Memory)(nil)
)
