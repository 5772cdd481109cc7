package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"quirkit/internal/handler/http/respond"
	"quirkit/internal/observability/logging"
	"quirkit/internal/resilience/circuitbreaker"
	"quirkit/pkg/ratelimit"
)

// Limiter checks one request against a counter. *ratelimit.FixedWindowLimiter
// implements it.
type Limiter interface {
	Check(ctx context.Context, key string, limit int, window time.Duration) (*ratelimit.RateLimitDecision, error)
}

// Rule applies a limit to the requests it matches. The counter key is
// KeyPrefix followed by the client IP.
type Rule struct {
	Name      string
	KeyPrefix string
	Match     func(r *http.Request) bool
	Limiter   Limiter
	Limit     int
	Window    time.Duration
}

// RateLimiter enforces per-IP fixed-window limits on the API routes.
//
// Counter store failures never reject a request. They are logged and counted
// by a circuit breaker; while the breaker is open the rules are skipped.
type RateLimiter struct {
	rules     []Rule
	extractor IPExtractor
	breaker   *circuitbreaker.CircuitBreaker
	enabled   bool
}

// RateLimiterOption configures a RateLimiter.
type RateLimiterOption func(*RateLimiter)

// WithIPExtractor replaces the RemoteAddr extractor.
func WithIPExtractor(e IPExtractor) RateLimiterOption {
	return func(rl *RateLimiter) { rl.extractor = e }
}

// WithRules replaces the rules derived from the config.
func WithRules(rules ...Rule) RateLimiterOption {
	return func(rl *RateLimiter) { rl.rules = rules }
}

// NewRateLimiter builds the two API rules over store: every /api/ request is
// keyed "ip:<addr>" and POST /api/compliment is additionally keyed
// "compliment:<addr>" with its stricter limit.
func NewRateLimiter(store ratelimit.CounterStore, cfg *ratelimit.RateLimitConfig, metrics ratelimit.RateLimitMetrics, opts ...RateLimiterOption) *RateLimiter {
	if cfg == nil {
		cfg = ratelimit.DefaultConfig()
	}
	if metrics == nil {
		metrics = ratelimit.NewNoOpMetrics()
	}

	rl := &RateLimiter{
		rules: []Rule{
			{
				Name:      "ip",
				KeyPrefix: "ip:",
				Match:     IsAPIRequest,
				Limiter:   ratelimit.NewFixedWindowLimiter("ip", store, ratelimit.WithMetrics(metrics)),
				Limit:     cfg.Limit,
				Window:    cfg.Window,
			},
			{
				Name:      "compliment",
				KeyPrefix: "compliment:",
				Match:     IsComplimentSubmission,
				Limiter:   ratelimit.NewFixedWindowLimiter("compliment", store, ratelimit.WithMetrics(metrics)),
				Limit:     cfg.ComplimentLimit,
				Window:    cfg.ComplimentWindow,
			},
		},
		extractor: &RemoteAddrExtractor{},
		breaker: circuitbreaker.New(circuitbreaker.StoreConfig("ratelimit-store",
			uint32(cfg.BreakerFailureThreshold), cfg.BreakerRecoveryTimeout)),
		enabled: cfg.Enabled,
	}
	for _, opt := range opts {
		opt(rl)
	}
	return rl
}

// IsAPIRequest matches every route under /api/.
func IsAPIRequest(r *http.Request) bool {
	return strings.HasPrefix(r.URL.Path, "/api/")
}

// IsComplimentSubmission matches POST /api/compliment.
func IsComplimentSubmission(r *http.Request) bool {
	return r.Method == http.MethodPost && strings.TrimSuffix(r.URL.Path, "/") == "/api/compliment"
}

// BreakerOpen reports whether rate limiting is suspended.
func (rl *RateLimiter) BreakerOpen() bool {
	return rl.breaker.IsOpen()
}

// Middleware returns the rate limiting middleware.
//
// Every matching rule is checked in order and the headers of the last checked
// rule are sent. The first denial answers 429 with Retry-After.
func (rl *RateLimiter) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !rl.enabled || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			logger := logging.FromContext(r.Context())

			ip, err := rl.extractor.ExtractIP(r)
			if err != nil {
				logger.Error("rate limiter: failed to extract client IP, allowing request",
					slog.String("remote_addr", r.RemoteAddr),
					slog.Any("error", err))
				next.ServeHTTP(w, r)
				return
			}

			for _, rule := range rl.rules {
				if !rule.Match(r) {
					continue
				}

				decision, ok := rl.check(r.Context(), logger, rule, ip)
				if !ok {
					break
				}

				setRateLimitHeaders(w, decision)
				if !decision.Allowed {
					w.Header().Set("Retry-After", strconv.FormatInt(decision.RetryAfterSeconds(), 10))
					logger.Warn("rate limit exceeded",
						slog.String("limiter_type", rule.Name),
						slog.String("key", decision.Key),
						slog.Int("limit", decision.Limit),
						slog.Int64("retry_after", decision.RetryAfterSeconds()),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method))
					respond.Fail(w, r, respond.KindRateLimited, respond.MsgRateLimited)
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

// check runs one rule through the breaker. ok is false when the store failed
// or the breaker is open, in which case the request is let through.
func (rl *RateLimiter) check(ctx context.Context, logger *slog.Logger, rule Rule, ip string) (*ratelimit.RateLimitDecision, bool) {
	decision, err := circuitbreaker.Do(rl.breaker, func() (*ratelimit.RateLimitDecision, error) {
		return rule.Limiter.Check(ctx, rule.KeyPrefix+ip, rule.Limit, rule.Window)
	})
	if err == nil {
		return decision, true
	}

	if circuitbreaker.IsRejection(err) {
		logger.Debug("rate limiter suspended, allowing request",
			slog.String("limiter_type", rule.Name))
		return nil, false
	}
	logger.Error("rate limiter: check failed, allowing request",
		slog.String("limiter_type", rule.Name),
		slog.String("ip", ip),
		slog.Any("error", err))
	return nil, false
}

func setRateLimitHeaders(w http.ResponseWriter, d *ratelimit.RateLimitDecision) {
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(d.Limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(d.ResetAtUnix(), 10))
}
