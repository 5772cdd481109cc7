// Package probe checks the reachability of the upstream content APIs and
// publishes the results to the health records the API server reports.
package probe

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"quirkit/internal/observability/metrics"
)

// Prober reports whether url answers and how long it took.
type Prober interface {
	Probe(ctx context.Context, url string) (bool, time.Duration)
}

// HealthStore persists one probe result per API.
type HealthStore interface {
	SetAPIHealth(ctx context.Context, api string, healthy bool, responseTime time.Duration) error
}

// Target is an upstream API and the URL used to probe it.
type Target struct {
	API string
	URL string
}

// Result is the outcome of probing one target.
type Result struct {
	API          string
	Healthy      bool
	ResponseTime time.Duration
}

// Stats summarises a probe run.
type Stats struct {
	Targets   int64
	Healthy   int64
	Unhealthy int64
	Duration  time.Duration
}

// Service probes a fixed set of targets.
type Service struct {
	prober  Prober
	health  HealthStore
	targets []Target
	logger  *slog.Logger

	// maxConcurrent bounds in-flight probes; 0 means one goroutine per target.
	maxConcurrent int
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithMaxConcurrent bounds the number of probes in flight.
func WithMaxConcurrent(n int) Option {
	return func(s *Service) { s.maxConcurrent = n }
}

// NewService creates a Service. Targets with an empty URL are skipped.
func NewService(prober Prober, health HealthStore, targets []Target, opts ...Option) *Service {
	s := &Service{
		prober: prober,
		health: health,
		logger: slog.Default(),
	}
	for _, t := range targets {
		if t.URL != "" {
			s.targets = append(s.targets, t)
		}
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Targets returns the targets the service probes.
func (s *Service) Targets() []Target {
	return append([]Target(nil), s.targets...)
}

// Run probes every target concurrently and stores each result. An unhealthy
// API is a result, not an error; Run fails only when a result cannot be
// stored or ctx ends. Results are in target order.
func (s *Service) Run(ctx context.Context) ([]Result, Stats, error) {
	start := time.Now()
	results := make([]Result, len(s.targets))
	var healthy, unhealthy int64

	eg, egCtx := errgroup.WithContext(ctx)
	if s.maxConcurrent > 0 {
		eg.SetLimit(s.maxConcurrent)
	}

	for i, target := range s.targets {
		eg.Go(func() error {
			ok, elapsed := s.prober.Probe(egCtx, target.URL)
			if err := ctx.Err(); err != nil {
				return err
			}

			results[i] = Result{API: target.API, Healthy: ok, ResponseTime: elapsed}
			metrics.SetUpstreamHealth(target.API, ok)
			if ok {
				atomic.AddInt64(&healthy, 1)
			} else {
				atomic.AddInt64(&unhealthy, 1)
				s.logger.WarnContext(egCtx, "upstream probe failed",
					slog.String("api", target.API),
					slog.String("url", target.URL),
					slog.Duration("response_time", elapsed))
			}

			if err := s.health.SetAPIHealth(egCtx, target.API, ok, elapsed); err != nil {
				return fmt.Errorf("store health for %s: %w", target.API, err)
			}
			return nil
		})
	}

	err := eg.Wait()
	stats := Stats{
		Targets:   int64(len(s.targets)),
		Healthy:   healthy,
		Unhealthy: unhealthy,
		Duration:  time.Since(start),
	}
	if err != nil {
		return nil, stats, err
	}

	s.logger.InfoContext(ctx, "upstream probe completed",
		slog.Int64("targets", stats.Targets),
		slog.Int64("healthy", stats.Healthy),
		slog.Int64("unhealthy", stats.Unhealthy),
		slog.Duration("duration", stats.Duration))
	return results, stats, nil
}
