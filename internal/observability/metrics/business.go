package metrics

import "time"

// Resolution outcomes.
const (
	OutcomeCacheHit = "cache_hit"
	OutcomeUpstream = "upstream"
	OutcomeFallback = "fallback"
	OutcomeError    = "error"
)

// ResolutionRecorder adapts the package collectors to the fallback resolver.
type ResolutionRecorder struct{}

// RecordResolution counts one resolver outcome.
func (ResolutionRecorder) RecordResolution(feature, outcome string) {
	ResolutionsTotal.WithLabelValues(feature, outcome).Inc()
}

// RecordCacheWriteFailure counts a failed best-effort cache write.
func (ResolutionRecorder) RecordCacheWriteFailure(feature string) {
	CacheWriteFailuresTotal.WithLabelValues(feature).Inc()
}

// RecordUpstreamCall records the duration of an outbound call.
func RecordUpstreamCall(api, result string, duration time.Duration) {
	UpstreamRequestDuration.WithLabelValues(api, result).Observe(duration.Seconds())
}

// SetUpstreamHealth records the latest probe result for api.
func SetUpstreamHealth(api string, healthy bool) {
	v := 0.0
	if healthy {
		v = 1
	}
	UpstreamHealthy.WithLabelValues(api).Set(v)
}

// RecordComplimentSubmitted counts a compliment submission.
func RecordComplimentSubmitted(approved bool) {
	status := "approved"
	if !approved {
		status = "moderation"
	}
	ComplimentsSubmittedTotal.WithLabelValues(status).Inc()
}

// RecordComplimentFailover counts an operation served by the in-memory store.
func RecordComplimentFailover(operation string) {
	ComplimentStoreFailoversTotal.WithLabelValues(operation).Inc()
}
