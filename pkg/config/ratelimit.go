package config

import (
	"log/slog"
	"time"

	"quirkit/pkg/ratelimit"
)

// LoadRateLimitConfig reads rate limiting settings from the environment.
// Invalid values are logged and replaced with defaults, so the result always validates.
//
// Environment variables:
//   - RATELIMIT_ENABLED (default: true)
//   - RATELIMIT_LIMIT, RATELIMIT_WINDOW (default: 100 per 1m)
//   - COMPLIMENT_RATELIMIT_LIMIT, COMPLIMENT_RATELIMIT_WINDOW (default: 5 per 1m)
//   - RATELIMIT_CB_FAILURE_THRESHOLD (default: 10)
//   - RATELIMIT_CB_RECOVERY_TIMEOUT (default: 30s)
func LoadRateLimitConfig() *ratelimit.RateLimitConfig {
	def := ratelimit.DefaultConfig()

	return &ratelimit.RateLimitConfig{
		Enabled:                 GetEnvBool("RATELIMIT_ENABLED", def.Enabled),
		Limit:                   positiveInt("RATELIMIT_LIMIT", def.Limit),
		Window:                  windowDuration("RATELIMIT_WINDOW", def.Window),
		ComplimentLimit:         positiveInt("COMPLIMENT_RATELIMIT_LIMIT", def.ComplimentLimit),
		ComplimentWindow:        windowDuration("COMPLIMENT_RATELIMIT_WINDOW", def.ComplimentWindow),
		BreakerFailureThreshold: positiveInt("RATELIMIT_CB_FAILURE_THRESHOLD", def.BreakerFailureThreshold),
		BreakerRecoveryTimeout:  windowDuration("RATELIMIT_CB_RECOVERY_TIMEOUT", def.BreakerRecoveryTimeout),
	}
}

func positiveInt(key string, def int) int {
	v := GetEnvInt(key, def)
	if v <= 0 {
		slog.Warn("non-positive value for environment variable, using default",
			slog.String("key", key),
			slog.Int("value", v),
			slog.Int("default", def))
		return def
	}
	return v
}

// windowDuration rejects sub-second windows: the counter store expires keys
// with second granularity.
func windowDuration(key string, def time.Duration) time.Duration {
	v := GetEnvDuration(key, def)
	if err := ValidateDurationRange(v, time.Second, 24*time.Hour); err != nil {
		slog.Warn("invalid duration for environment variable, using default",
			slog.String("key", key),
			slog.String("value", v.String()),
			slog.String("default", def.String()),
			slog.String("error", err.Error()))
		return def
	}
	return v
}
