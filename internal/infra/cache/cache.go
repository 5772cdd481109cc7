// Package cache stores JSON values in the key-value store wrapped in a
// timestamped envelope, so staleness is checked on read regardless of whether
// the backing store honoured the expiry.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"quirkit/internal/infra/kv"
)

// DefaultTTL is used when SetWithTTL is called with a non-positive ttl.
const DefaultTTL = 300 * time.Second

// Entry is the stored envelope. Data is kept as raw JSON so a read returns
// exactly the bytes that were written.
type Entry struct {
	Data      json.RawMessage `json:"data"`
	Timestamp int64           `json:"timestamp"` // epoch milliseconds
	TTL       int64           `json:"ttl"`       // seconds
}

// Valid reports whether the entry is still fresh at now.
func (e Entry) Valid(now time.Time) bool {
	age := float64(now.UnixMilli()-e.Timestamp) / 1000
	return age <= float64(e.TTL)
}

// Cache reads and writes envelopes in a kv.Store.
type Cache struct {
	store  kv.Store
	now    func() time.Time
	logger *slog.Logger
}

// Option configures a Cache.
type Option func(*Cache)

// WithNow overrides the clock.
func WithNow(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// WithLogger sets the logger used for eviction messages.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Cache) { c.logger = logger }
}

// New creates a Cache over store.
func New(store kv.Store, opts ...Option) *Cache {
	c := &Cache{
		store:  store,
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetWithTTL marshals value into an envelope and stores it under key. The
// store-level expiry is set to the same ttl.
func (c *Cache) SetWithTTL(ctx context.Context, key string, value any, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal cache value %s: %w", key, err)
	}

	raw, err := json.Marshal(Entry{
		Data:      data,
		Timestamp: c.now().UnixMilli(),
		TTL:       int64(ttl / time.Second),
	})
	if err != nil {
		return fmt.Errorf("marshal cache entry %s: %w", key, err)
	}

	if err := c.store.Set(ctx, key, string(raw), ttl); err != nil {
		return fmt.Errorf("store cache entry %s: %w", key, err)
	}
	return nil
}

// GetRaw returns the stored data bytes for key. A missing, expired or
// undecodable entry reports ok=false; the latter two are deleted.
func (c *Cache) GetRaw(ctx context.Context, key string) (json.RawMessage, bool, error) {
	raw, ok, err := c.store.Get(ctx, key)
	if err != nil {
		return nil, false, fmt.Errorf("read cache entry %s: %w", key, err)
	}
	if !ok {
		return nil, false, nil
	}

	var entry Entry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil || entry.Data == nil {
		c.logger.Warn("dropping corrupt cache entry", slog.String("key", key))
		c.evict(ctx, key)
		return nil, false, nil
	}

	if !entry.Valid(c.now()) {
		c.evict(ctx, key)
		return nil, false, nil
	}

	return entry.Data, true, nil
}

// GetWithTTL decodes the cached data for key into dst. It reports ok=false on
// a miss; dst is left untouched in that case.
func (c *Cache) GetWithTTL(ctx context.Context, key string, dst any) (bool, error) {
	data, ok, err := c.GetRaw(ctx, key)
	if err != nil || !ok {
		return false, err
	}

	if err := json.Unmarshal(data, dst); err != nil {
		c.logger.Warn("dropping cache entry with unexpected shape",
			slog.String("key", key),
			slog.Any("error", err))
		c.evict(ctx, key)
		return false, nil
	}
	return true, nil
}

// Delete removes key.
func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.store.Del(ctx, key)
}

func (c *Cache) evict(ctx context.Context, key string) {
	if err := c.store.Del(ctx, key); err != nil && !errors.Is(err, context.Canceled) {
		c.logger.Warn("failed to evict cache entry",
			slog.String("key", key),
			slog.Any("error", err))
	}
}
