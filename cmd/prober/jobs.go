package main

import (
	"context"
	"log/slog"
	"time"

	"quirkit/internal/domain/entity"
	"quirkit/internal/handler/http/respond"
	workerPkg "quirkit/internal/infra/worker"
	"quirkit/internal/usecase/probe"
)

// Job names used in metrics and logs.
const (
	jobProbe     = "probe"
	jobQuoteWarm = "quote_warm"
)

type probeRunner interface {
	Run(ctx context.Context) ([]probe.Result, probe.Stats, error)
}

type quoteWarmer interface {
	Today() string
	Quote(ctx context.Context, date string) (entity.Quote, error)
}

type probeRecorder interface {
	MarkProbeRun(at time.Time)
}

type jobs struct {
	logger       *slog.Logger
	metrics      *workerPkg.Metrics
	health       probeRecorder
	prober       probeRunner
	quotes       quoteWarmer
	probeTimeout time.Duration
	warmTimeout  time.Duration
}

// runProbe checks every upstream API once.
func (j *jobs) runProbe(parent context.Context) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(parent, j.probeTimeout)
	defer cancel()

	_, stats, err := j.prober.Run(ctx)
	if err != nil {
		j.logger.Error("probe failed", slog.Any("error", respond.SanitizeError(err)))
		j.metrics.RecordJobRun(jobProbe, workerPkg.StatusFailure, time.Since(start).Seconds())
		return
	}

	j.metrics.RecordJobRun(jobProbe, workerPkg.StatusSuccess, time.Since(start).Seconds())
	j.health.MarkProbeRun(time.Now())
	j.logger.Info("probe completed",
		slog.Int64("targets", stats.Targets),
		slog.Int64("healthy", stats.Healthy),
		slog.Int64("unhealthy", stats.Unhealthy),
		slog.Duration("duration", stats.Duration))
}

// runQuoteWarm resolves today's quote so the first request of the day is a
// cache hit. A fallback quote is pinned like any other.
func (j *jobs) runQuoteWarm(parent context.Context) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(parent, j.warmTimeout)
	defer cancel()

	date := j.quotes.Today()
	quote, err := j.quotes.Quote(ctx, date)
	if err != nil {
		j.logger.Error("quote warm failed",
			slog.String("date", date),
			slog.Any("error", respond.SanitizeError(err)))
		j.metrics.RecordJobRun(jobQuoteWarm, workerPkg.StatusFailure, time.Since(start).Seconds())
		return
	}

	j.metrics.RecordJobRun(jobQuoteWarm, workerPkg.StatusSuccess, time.Since(start).Seconds())
	j.logger.Info("quote warmed",
		slog.String("date", date),
		slog.String("source", string(quote.Source)))
}
