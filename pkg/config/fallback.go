package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// LoadResult is the outcome of a fail-open load.
type LoadResult[T any] struct {
	Value           T
	Warning         string
	FallbackApplied bool
}

// LoadEnv reads key, parses it and validates it. An unset variable yields
// defaultValue without a warning; a value that fails to parse or validate
// yields defaultValue with FallbackApplied set and a warning describing why.
//
//	res := LoadEnv("PROBE_SCHEDULE", "*/5 * * * *", ParseString, ValidateCronSchedule)
//	if res.FallbackApplied {
//	    logger.Warn("configuration fallback applied", slog.String("warning", res.Warning))
//	}
func LoadEnv[T any](key string, defaultValue T, parse func(string) (T, error), validate func(T) error) LoadResult[T] {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return LoadResult[T]{Value: defaultValue}
	}

	v, err := parse(raw)
	if err == nil && validate != nil {
		err = validate(v)
	}
	if err != nil {
		return LoadResult[T]{
			Value:           defaultValue,
			Warning:         fmt.Sprintf("invalid %s=%q: %v, falling back to default %v", key, raw, err, defaultValue),
			FallbackApplied: true,
		}
	}
	return LoadResult[T]{Value: v}
}

// ParseString is the identity parser for LoadEnv.
func ParseString(s string) (string, error) { return s, nil }

// ParseInt parses a base-10 integer for LoadEnv.
func ParseInt(s string) (int, error) { return strconv.Atoi(s) }

// ParseDuration parses a Go duration string ("30s", "5m") for LoadEnv.
func ParseDuration(s string) (time.Duration, error) { return time.ParseDuration(s) }

// ValidateIntRange returns an error unless min <= v <= max.
func ValidateIntRange(v, min, max int) error {
	if v < min || v > max {
		return fmt.Errorf("value %d out of range [%d, %d]", v, min, max)
	}
	return nil
}
