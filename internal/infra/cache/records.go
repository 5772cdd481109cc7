package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	// DailyTTL keeps a date-keyed value for a full day.
	DailyTTL = 24 * time.Hour

	// HealthTTL is how long a probe result stays visible.
	HealthTTL = 300 * time.Second

	healthPrefix = "health:"
)

// DailyQuoteKey is the key holding the quote pinned to date (YYYY-MM-DD).
func DailyQuoteKey(date string) string {
	return "cache:quote:daily:" + date
}

// HealthKey is the key holding the last probe result for api.
func HealthKey(api string) string {
	return healthPrefix + api
}

// GetDailyQuote decodes the quote pinned to date into dst.
func (c *Cache) GetDailyQuote(ctx context.Context, date string, dst any) (bool, error) {
	return c.GetWithTTL(ctx, DailyQuoteKey(date), dst)
}

// SetDailyQuote pins quote to date for DailyTTL.
func (c *Cache) SetDailyQuote(ctx context.Context, date string, quote any) error {
	return c.SetWithTTL(ctx, DailyQuoteKey(date), quote, DailyTTL)
}

// APIHealth is the last probe result for one upstream API.
type APIHealth struct {
	Healthy        bool  `json:"healthy"`
	LastCheck      int64 `json:"lastCheck"` // epoch milliseconds
	ResponseTimeMs int64 `json:"responseTimeMs"`
}

// SetAPIHealth records a probe result for api.
func (c *Cache) SetAPIHealth(ctx context.Context, api string, healthy bool, responseTime time.Duration) error {
	raw, err := json.Marshal(APIHealth{
		Healthy:        healthy,
		LastCheck:      c.now().UnixMilli(),
		ResponseTimeMs: responseTime.Milliseconds(),
	})
	if err != nil {
		return fmt.Errorf("marshal health for %s: %w", api, err)
	}
	if err := c.store.Set(ctx, HealthKey(api), string(raw), HealthTTL); err != nil {
		return fmt.Errorf("store health for %s: %w", api, err)
	}
	return nil
}

// GetAPIHealth returns the last probe result for api.
func (c *Cache) GetAPIHealth(ctx context.Context, api string) (APIHealth, bool, error) {
	raw, ok, err := c.store.Get(ctx, HealthKey(api))
	if err != nil || !ok {
		return APIHealth{}, false, err
	}
	var h APIHealth
	if err := json.Unmarshal([]byte(raw), &h); err != nil {
		return APIHealth{}, false, fmt.Errorf("decode health for %s: %w", api, err)
	}
	return h, true, nil
}

// AllAPIHealth returns every probe result currently stored, keyed by API name.
func (c *Cache) AllAPIHealth(ctx context.Context) (map[string]APIHealth, error) {
	keys, err := c.store.Keys(ctx, healthPrefix+"*")
	if err != nil {
		return nil, fmt.Errorf("list health keys: %w", err)
	}

	out := make(map[string]APIHealth, len(keys))
	for _, key := range keys {
		api := strings.TrimPrefix(key, healthPrefix)
		h, ok, err := c.GetAPIHealth(ctx, api)
		if err != nil {
			return nil, err
		}
		if ok {
			out[api] = h
		}
	}
	return out, nil
}
