// Package worker holds the runtime pieces of the background prober: its
// configuration, the health endpoints it exposes and its job metrics.
package worker

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"quirkit/pkg/config"
)

// Config controls the prober's schedules and limits.
//
// Environment variables:
//   - PROBE_SCHEDULE: cron expression for upstream probes (default "*/5 * * * *")
//   - QUOTE_WARM_SCHEDULE: cron expression for warming today's quote (default "1 0 * * *")
//   - PROBER_TIMEZONE: IANA timezone the schedules run in (default "UTC")
//   - PROBE_TIMEOUT: deadline for one probe run (default 30s)
//   - PROBE_MAX_CONCURRENT: probes in flight, 1-50 (default 10)
//   - WARM_TIMEOUT: deadline for one warm run (default 15s)
//   - PROBER_HEALTH_PORT: port for /health and /metrics, 1024-65535 (default 9091)
type Config struct {
	ProbeSchedule      string
	QuoteWarmSchedule  string
	Timezone           string
	ProbeTimeout       time.Duration
	ProbeMaxConcurrent int
	WarmTimeout        time.Duration
	HealthPort         int
}

// DefaultConfig returns the prober defaults.
func DefaultConfig() Config {
	return Config{
		ProbeSchedule:      "*/5 * * * *",
		QuoteWarmSchedule:  "1 0 * * *",
		Timezone:           "UTC",
		ProbeTimeout:       30 * time.Second,
		ProbeMaxConcurrent: 10,
		WarmTimeout:        15 * time.Second,
		HealthPort:         9091,
	}
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs []error

	if err := config.ValidateCronSchedule(c.ProbeSchedule); err != nil {
		errs = append(errs, fmt.Errorf("probe schedule: %w", err))
	}
	if err := config.ValidateCronSchedule(c.QuoteWarmSchedule); err != nil {
		errs = append(errs, fmt.Errorf("quote warm schedule: %w", err))
	}
	if err := config.ValidateTimezone(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("timezone: %w", err))
	}
	if err := config.ValidateDurationRange(c.ProbeTimeout, time.Second, 5*time.Minute); err != nil {
		errs = append(errs, fmt.Errorf("probe timeout: %w", err))
	}
	if err := config.ValidateIntRange(c.ProbeMaxConcurrent, 1, 50); err != nil {
		errs = append(errs, fmt.Errorf("probe max concurrent: %w", err))
	}
	if err := config.ValidateDurationRange(c.WarmTimeout, time.Second, 5*time.Minute); err != nil {
		errs = append(errs, fmt.Errorf("warm timeout: %w", err))
	}
	if err := config.ValidateIntRange(c.HealthPort, 1024, 65535); err != nil {
		errs = append(errs, fmt.Errorf("health port: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed: %w", errors.Join(errs...))
	}
	return nil
}

// LoadConfigFromEnv reads the prober configuration. It never fails: an
// invalid value is logged, counted in metrics and replaced by its default.
func LoadConfigFromEnv(logger *slog.Logger, metrics *Metrics) Config {
	cfg := DefaultConfig()
	fallbackActive := false

	record := func(field string, warning string) {
		fallbackActive = true
		metrics.RecordConfigFallback(field)
		logger.Warn("configuration fallback applied",
			slog.String("field", field),
			slog.String("warning", warning))
	}

	cronField := func(key, field string, dst *string) {
		res := config.LoadEnv(key, *dst, config.ParseString, config.ValidateCronSchedule)
		*dst = res.Value
		if res.FallbackApplied {
			record(field, res.Warning)
		}
	}
	durationField := func(key, field string, dst *time.Duration) {
		res := config.LoadEnv(key, *dst, config.ParseDuration, func(d time.Duration) error {
			return config.ValidateDurationRange(d, time.Second, 5*time.Minute)
		})
		*dst = res.Value
		if res.FallbackApplied {
			record(field, res.Warning)
		}
	}
	intField := func(key, field string, dst *int, min, max int) {
		res := config.LoadEnv(key, *dst, config.ParseInt, func(v int) error {
			return config.ValidateIntRange(v, min, max)
		})
		*dst = res.Value
		if res.FallbackApplied {
			record(field, res.Warning)
		}
	}

	cronField("PROBE_SCHEDULE", "probe_schedule", &cfg.ProbeSchedule)
	cronField("QUOTE_WARM_SCHEDULE", "quote_warm_schedule", &cfg.QuoteWarmSchedule)

	tz := config.LoadEnv("PROBER_TIMEZONE", cfg.Timezone, config.ParseString, config.ValidateTimezone)
	cfg.Timezone = tz.Value
	if tz.FallbackApplied {
		record("timezone", tz.Warning)
	}

	durationField("PROBE_TIMEOUT", "probe_timeout", &cfg.ProbeTimeout)
	intField("PROBE_MAX_CONCURRENT", "probe_max_concurrent", &cfg.ProbeMaxConcurrent, 1, 50)
	durationField("WARM_TIMEOUT", "warm_timeout", &cfg.WarmTimeout)
	intField("PROBER_HEALTH_PORT", "health_port", &cfg.HealthPort, 1024, 65535)

	metrics.SetConfigFallbackActive(fallbackActive)
	return cfg
}
