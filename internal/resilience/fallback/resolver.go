package fallback

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"quirkit/internal/observability/metrics"
	"quirkit/internal/observability/tracing"
)

// ErrTimeout is returned when a producer does not finish within the resolver timeout.
var ErrTimeout = errors.New("request timeout")

// Cache is the envelope cache the resolver reads and writes.
type Cache interface {
	GetWithTTL(ctx context.Context, key string, dst any) (bool, error)
	SetWithTTL(ctx context.Context, key string, value any, ttl time.Duration) error
}

// Recorder receives resolution outcomes.
type Recorder interface {
	RecordResolution(feature, outcome string)
	RecordCacheWriteFailure(feature string)
}

// Config holds resolver defaults.
type Config struct {
	// TTL is how long successful results stay cached.
	TTL time.Duration

	// Timeout bounds each producer call.
	Timeout time.Duration
}

// DefaultConfig caches for 5 minutes and gives producers 5 seconds.
func DefaultConfig() Config {
	return Config{
		TTL:     300 * time.Second,
		Timeout: 5 * time.Second,
	}
}

// Resolver holds the shared dependencies of every resolution.
type Resolver struct {
	cache    Cache
	cfg      Config
	logger   *slog.Logger
	recorder Recorder
	intn     func(int) int
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) { r.logger = logger }
}

// WithRecorder sets the outcome recorder.
func WithRecorder(recorder Recorder) Option {
	return func(r *Resolver) { r.recorder = recorder }
}

// WithRand sets the index source used to pick fallback values.
func WithRand(intn func(int) int) Option {
	return func(r *Resolver) { r.intn = intn }
}

// NewResolver creates a Resolver. Zero fields in cfg take their DefaultConfig values.
func NewResolver(cache Cache, cfg Config, opts ...Option) *Resolver {
	def := DefaultConfig()
	if cfg.TTL <= 0 {
		cfg.TTL = def.TTL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}

	r := &Resolver{
		cache:    cache,
		cfg:      cfg,
		logger:   slog.Default(),
		recorder: metrics.ResolutionRecorder{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Request describes one resolution.
type Request[T any] struct {
	// Feature names the caller in logs and metrics ("joke").
	Feature string

	// Key is the cache key ("api:joke:random").
	Key string

	// Produce fetches a fresh value. It must honour ctx cancellation.
	Produce func(ctx context.Context) (T, error)

	// Pool supplies the value served when Produce fails with a Fallbackable error.
	Pool Pool[T]

	// TTL overrides the resolver TTL when positive.
	TTL time.Duration
}

// Resolve returns the cached value for req.Key, else a fresh value from
// req.Produce (cached best-effort), else a random pool value when the producer
// error classifies as Fallbackable. Fatal producer errors are returned as is.
func Resolve[T any](ctx context.Context, r *Resolver, req Request[T]) (T, error) {
	var zero T

	if req.Pool.Len() == 0 {
		r.recorder.RecordResolution(req.Feature, metrics.OutcomeError)
		return zero, fmt.Errorf("resolve %s: %w", req.Feature, ErrEmptyPool)
	}

	ctx, span := tracing.GetTracer().Start(ctx, "fallback.Resolve", trace.WithAttributes(
		attribute.String("quirkit.feature", req.Feature),
		attribute.String("quirkit.cache_key", req.Key),
	))
	defer span.End()

	logger := r.logger.With(slog.String("feature", req.Feature), slog.String("key", req.Key))

	if r.cache != nil {
		var cached T
		hit, err := r.cache.GetWithTTL(ctx, req.Key, &cached)
		switch {
		case err != nil:
			logger.Warn("cache read failed, treating as miss", slog.Any("error", err))
		case hit:
			r.finish(span, req.Feature, metrics.OutcomeCacheHit)
			return cached, nil
		}
	}

	value, err := produce(ctx, r.cfg.Timeout, req.Produce)
	if err == nil {
		store(ctx, r, logger, req, value)
		r.finish(span, req.Feature, metrics.OutcomeUpstream)
		return value, nil
	}

	if Classify(err) == Fallbackable {
		item, pickErr := req.Pool.Random(r.intn)
		if pickErr != nil {
			return zero, pickErr
		}
		logger.Info("serving fallback", slog.Any("error", err))
		r.finish(span, req.Feature, metrics.OutcomeFallback)
		return item, nil
	}

	logger.Error("producer failed", slog.Any("error", err))
	span.RecordError(err)
	span.SetStatus(codes.Error, "producer failed")
	r.finish(span, req.Feature, metrics.OutcomeError)
	return zero, err
}

func (r *Resolver) finish(span trace.Span, feature, outcome string) {
	span.SetAttributes(attribute.String("quirkit.outcome", outcome))
	r.recorder.RecordResolution(feature, outcome)
}

func store[T any](ctx context.Context, r *Resolver, logger *slog.Logger, req Request[T], value T) {
	if r.cache == nil {
		return
	}
	ttl := req.TTL
	if ttl <= 0 {
		ttl = r.cfg.TTL
	}
	if err := r.cache.SetWithTTL(ctx, req.Key, value, ttl); err != nil {
		logger.Warn("cache write failed", slog.Any("error", err))
		r.recorder.RecordCacheWriteFailure(req.Feature)
	}
}

type result[T any] struct {
	value T
	err   error
}

// produce runs fn under a deadline of timeout. When the deadline passes first,
// the producer's context is cancelled and ErrTimeout is returned without
// waiting for it.
func produce[T any](ctx context.Context, timeout time.Duration, fn func(context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ch := make(chan result[T], 1)
	go func() {
		defer func() {
			if p := recover(); p != nil {
				ch <- result[T]{err: fmt.Errorf("producer panic: %v", p)}
			}
		}()
		v, err := fn(ctx)
		ch <- result[T]{value: v, err: err}
	}()

	select {
	case res := <-ch:
		return res.value, res.err
	case <-ctx.Done():
		var zero T
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return zero, ErrTimeout
		}
		return zero, ctx.Err()
	}
}
