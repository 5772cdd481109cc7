package ratelimit

import (
	"errors"
	"fmt"
	"time"
)

// RateLimitConfig holds the limits applied by the HTTP layer.
type RateLimitConfig struct {
	// Enabled turns rate limiting on or off globally.
	Enabled bool

	// Limit is the number of API requests allowed per client IP per Window.
	Limit int

	// Window is the fixed window length.
	Window time.Duration

	// ComplimentLimit is the number of compliment submissions allowed per
	// client IP per ComplimentWindow.
	ComplimentLimit int

	// ComplimentWindow is the window for compliment submissions.
	ComplimentWindow time.Duration

	// BreakerFailureThreshold is the consecutive store failure count that
	// suspends rate limiting.
	BreakerFailureThreshold int

	// BreakerRecoveryTimeout is how long rate limiting stays suspended.
	BreakerRecoveryTimeout time.Duration
}

// DefaultConfig returns the production defaults: 100 requests a minute per IP
// and 5 compliment submissions a minute per IP.
func DefaultConfig() *RateLimitConfig {
	return &RateLimitConfig{
		Enabled:                 true,
		Limit:                   100,
		Window:                  time.Minute,
		ComplimentLimit:         5,
		ComplimentWindow:        time.Minute,
		BreakerFailureThreshold: 10,
		BreakerRecoveryTimeout:  30 * time.Second,
	}
}

// Validate checks that every limit and window is usable.
func (c *RateLimitConfig) Validate() error {
	var errs []error

	if c.Limit <= 0 {
		errs = append(errs, fmt.Errorf("limit must be positive, got %d", c.Limit))
	}
	if c.Window < time.Second {
		errs = append(errs, fmt.Errorf("window must be at least 1s, got %v", c.Window))
	}
	if c.ComplimentLimit <= 0 {
		errs = append(errs, fmt.Errorf("compliment limit must be positive, got %d", c.ComplimentLimit))
	}
	if c.ComplimentWindow < time.Second {
		errs = append(errs, fmt.Errorf("compliment window must be at least 1s, got %v", c.ComplimentWindow))
	}
	if c.BreakerFailureThreshold <= 0 {
		errs = append(errs, fmt.Errorf("breaker failure threshold must be positive, got %d", c.BreakerFailureThreshold))
	}
	if c.BreakerRecoveryTimeout <= 0 {
		errs = append(errs, fmt.Errorf("breaker recovery timeout must be positive, got %v", c.BreakerRecoveryTimeout))
	}

	return errors.Join(errs...)
}
