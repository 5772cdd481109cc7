package ratelimit

import "time"

// NoOpMetrics discards every measurement.
type NoOpMetrics struct{}

// NewNoOpMetrics creates a NoOpMetrics.
func NewNoOpMetrics() *NoOpMetrics {
	return &NoOpMetrics{}
}

func (m *NoOpMetrics) RecordAllowed(string)                      {}
func (m *NoOpMetrics) RecordDenied(string)                       {}
func (m *NoOpMetrics) RecordCheckDuration(string, time.Duration) {}
func (m *NoOpMetrics) RecordStoreError(string)                   {}
