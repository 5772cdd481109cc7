package worker

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_RecordJobRun(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.RecordJobRun("probe", StatusSuccess, 0.4)
	m.RecordJobRun("probe", StatusFailure, 2)
	m.RecordJobRun("quote_warm", StatusSuccess, 0.1)

	if got := testutil.ToFloat64(m.JobRunsTotal.WithLabelValues("probe", StatusSuccess)); got != 1 {
		t.Errorf("probe success runs = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.JobRunsTotal.WithLabelValues("probe", StatusFailure)); got != 1 {
		t.Errorf("probe failure runs = %v, want 1", got)
	}
	if got := testutil.CollectAndCount(m.JobDurationSeconds); got != 2 {
		t.Errorf("duration series = %d, want 2", got)
	}
	if got := testutil.ToFloat64(m.JobLastSuccessTimestamp.WithLabelValues("quote_warm")); got <= 0 {
		t.Errorf("last success timestamp not set: %v", got)
	}
}

func TestMetrics_FailureDoesNotSetLastSuccess(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	m.RecordJobRun("probe", StatusFailure, 1)

	if got := testutil.CollectAndCount(m.JobLastSuccessTimestamp); got != 0 {
		t.Errorf("expected no last-success series, got %d", got)
	}
}

func TestMetrics_ConfigFallback(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.RecordConfigFallback("timezone")
	m.SetConfigFallbackActive(true)
	if got := testutil.ToFloat64(m.ConfigFallbackActive); got != 1 {
		t.Errorf("fallback active = %v, want 1", got)
	}

	m.SetConfigFallbackActive(false)
	if got := testutil.ToFloat64(m.ConfigFallbackActive); got != 0 {
		t.Errorf("fallback active = %v, want 0", got)
	}
	if got := testutil.ToFloat64(m.ConfigFallbacksTotal.WithLabelValues("timezone")); got != 1 {
		t.Errorf("timezone fallbacks = %v, want 1", got)
	}
}

func TestNewMetrics_SeparateRegistries(t *testing.T) {
	NewMetrics(prometheus.NewRegistry())
	NewMetrics(prometheus.NewRegistry())
}
