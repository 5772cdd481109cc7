package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Job outcomes.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// Metrics are the prober's Prometheus collectors.
//
//   - prober_job_runs_total{job,status}
//   - prober_job_duration_seconds{job}
//   - prober_job_last_success_timestamp{job}
//   - prober_config_fallbacks_total{field}
//   - prober_config_fallback_active
type Metrics struct {
	JobRunsTotal            *prometheus.CounterVec
	JobDurationSeconds      *prometheus.HistogramVec
	JobLastSuccessTimestamp *prometheus.GaugeVec
	ConfigFallbacksTotal    *prometheus.CounterVec
	ConfigFallbackActive    prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		JobRunsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "prober_job_runs_total",
			Help: "Total number of prober job runs by job and status",
		}, []string{"job", "status"}),

		JobDurationSeconds: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "prober_job_duration_seconds",
			Help:    "Duration of prober job runs in seconds",
			Buckets: []float64{0.1, 0.5, 1, 3, 5, 10, 30, 60},
		}, []string{"job"}),

		JobLastSuccessTimestamp: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "prober_job_last_success_timestamp",
			Help: "Unix timestamp of the last successful run of each job",
		}, []string{"job"}),

		ConfigFallbacksTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "prober_config_fallbacks_total",
			Help: "Configuration values replaced by their default because they were invalid",
		}, []string{"field"}),

		ConfigFallbackActive: factory.NewGauge(prometheus.GaugeOpts{
			Name: "prober_config_fallback_active",
			Help: "1 when any configuration value fell back to its default",
		}),
	}
}

// RecordJobRun records one run of job.
func (m *Metrics) RecordJobRun(job, status string, seconds float64) {
	m.JobRunsTotal.WithLabelValues(job, status).Inc()
	m.JobDurationSeconds.WithLabelValues(job).Observe(seconds)
	if status == StatusSuccess {
		m.JobLastSuccessTimestamp.WithLabelValues(job).SetToCurrentTime()
	}
}

// RecordConfigFallback counts a defaulted configuration field.
func (m *Metrics) RecordConfigFallback(field string) {
	m.ConfigFallbacksTotal.WithLabelValues(field).Inc()
}

// SetConfigFallbackActive flags whether any configuration default was applied.
func (m *Metrics) SetConfigFallbackActive(active bool) {
	if active {
		m.ConfigFallbackActive.Set(1)
		return
	}
	m.ConfigFallbackActive.Set(0)
}
