// Package fun implements the read-only novelty features: excuses, jokes, the
// quote of the day, shower thoughts, holidays, drinks, break suggestions and
// the decision spinner.
//
// Every upstream-backed feature goes through the fallback resolver. Errors the
// resolver does not absorb (an upstream 404, a bad API key, an undecodable
// body) are logged and answered from the bundled pool here, so only invalid
// input reaches the caller as an error.
package fun

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"quirkit/internal/data"
	"quirkit/internal/domain/entity"
	"quirkit/internal/resilience/fallback"
)

// Cache keys.
const (
	keyExcuse        = "api:excuse:random"
	keyJoke          = "api:joke:random"
	keyShowerThought = "api:showerthought:random"
	keyDrink         = "api:drink:random"
)

func quoteKey(date string) string   { return "api:quote:daily:" + date }
func holidayKey(date string) string { return "api:holiday:" + date }

func timerKey(t entity.BreakType) string {
	if t == "" {
		return "api:timer:break:any"
	}
	return "api:timer:break:" + string(t)
}

// Spinner animation ranges.
const (
	minSpinDurationMs = 1200
	spinDurationSpan  = 800
	minRotations      = 3
	rotationSpan      = 2
)

type ExcuseSource interface {
	GenerateExcuse(ctx context.Context) (entity.Excuse, error)
}

type JokeSource interface {
	RandomJoke(ctx context.Context) (entity.Joke, error)
}

type QuoteSource interface {
	RandomQuote(ctx context.Context, date string) (entity.Quote, error)
}

type ShowerThoughtSource interface {
	RandomThought(ctx context.Context) (entity.ShowerThought, error)
}

type HolidaySource interface {
	HolidayOn(ctx context.Context, date string) (entity.Holiday, error)
}

type DrinkSource interface {
	RandomDrink(ctx context.Context) (entity.Drink, error)
}

// Sources bundles the upstream producers.
type Sources struct {
	Excuses        ExcuseSource
	Jokes          JokeSource
	Quotes         QuoteSource
	ShowerThoughts ShowerThoughtSource
	Holidays       HolidaySource
	Drinks         DrinkSource
}

// DailyQuoteCache pins one quote per date on top of the resolver cache.
type DailyQuoteCache interface {
	GetDailyQuote(ctx context.Context, date string, dst any) (bool, error)
	SetDailyQuote(ctx context.Context, date string, quote any) error
}

// Service serves the novelty features.
type Service struct {
	resolver *fallback.Resolver
	daily    DailyQuoteCache
	catalog  *data.Catalog
	sources  Sources
	dailyTTL time.Duration
	logger   *slog.Logger
	now      func() time.Time
	intn     func(int) int

	excuses  fallback.Pool[entity.Excuse]
	jokes    fallback.Pool[entity.Joke]
	thoughts fallback.Pool[entity.ShowerThought]
	drinks   fallback.Pool[entity.Drink]
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithClock sets the time source used for "today".
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithRand sets the index picker used by the spinner and break suggestions.
func WithRand(intn func(int) int) Option {
	return func(s *Service) { s.intn = intn }
}

// WithDailyTTL sets how long date-keyed results (quote, holiday) stay cached.
// It defaults to 24 hours.
func WithDailyTTL(ttl time.Duration) Option {
	return func(s *Service) { s.dailyTTL = ttl }
}

// NewService creates a Service. daily may be nil, which disables quote pinning.
// Every source must be set.
func NewService(resolver *fallback.Resolver, daily DailyQuoteCache, catalog *data.Catalog, sources Sources, opts ...Option) (*Service, error) {
	if resolver == nil || catalog == nil {
		return nil, fmt.Errorf("fun: resolver and catalog are required")
	}
	if sources.Excuses == nil || sources.Jokes == nil || sources.Quotes == nil ||
		sources.ShowerThoughts == nil || sources.Holidays == nil || sources.Drinks == nil {
		return nil, fmt.Errorf("fun: every upstream source is required")
	}

	s := &Service{
		resolver: resolver,
		daily:    daily,
		catalog:  catalog,
		sources:  sources,
		dailyTTL: 24 * time.Hour,
		logger:   slog.Default(),
		now:      time.Now,
		intn:     rand.IntN,
	}
	for _, opt := range opts {
		opt(s)
	}

	var err error
	if s.excuses, err = fallback.NewPool(catalog.Excuses); err != nil {
		return nil, fmt.Errorf("fun: excuses: %w", err)
	}
	if s.jokes, err = fallback.NewPool(catalog.Jokes); err != nil {
		return nil, fmt.Errorf("fun: jokes: %w", err)
	}
	if s.thoughts, err = fallback.NewPool(catalog.ShowerThoughts); err != nil {
		return nil, fmt.Errorf("fun: shower thoughts: %w", err)
	}
	if s.drinks, err = fallback.NewPool(catalog.Drinks); err != nil {
		return nil, fmt.Errorf("fun: drinks: %w", err)
	}
	return s, nil
}

// Today returns the current UTC date as YYYY-MM-DD.
func (s *Service) Today() string {
	return s.now().UTC().Format(entity.DateLayout)
}

// resolveDate validates date and substitutes today for the empty string.
func (s *Service) resolveDate(date string) (string, error) {
	if err := entity.ValidateDate(date, s.now().UTC()); err != nil {
		return "", err
	}
	if date == "" {
		return s.Today(), nil
	}
	return date, nil
}

func (s *Service) Excuse(ctx context.Context) (entity.Excuse, error) {
	return resolve(ctx, s, fallback.Request[entity.Excuse]{
		Feature: "excuse",
		Key:     keyExcuse,
		Produce: s.sources.Excuses.GenerateExcuse,
		Pool:    s.excuses,
	})
}

func (s *Service) Joke(ctx context.Context) (entity.Joke, error) {
	return resolve(ctx, s, fallback.Request[entity.Joke]{
		Feature: "joke",
		Key:     keyJoke,
		Produce: s.sources.Jokes.RandomJoke,
		Pool:    s.jokes,
	})
}

// Quote returns the quote of the day for date (today when empty). The first
// quote resolved for a date is pinned for the rest of that day.
func (s *Service) Quote(ctx context.Context, date string) (entity.Quote, error) {
	date, err := s.resolveDate(date)
	if err != nil {
		return entity.Quote{}, err
	}

	if s.daily != nil {
		var pinned entity.Quote
		ok, err := s.daily.GetDailyQuote(ctx, date, &pinned)
		if err != nil {
			s.logger.WarnContext(ctx, "daily quote read failed",
				slog.String("date", date),
				slog.Any("error", err))
		}
		if ok {
			return pinned, nil
		}
	}

	pool, err := fallback.NewPool(s.catalog.QuotesFor(date))
	if err != nil {
		return entity.Quote{}, err
	}
	quote, err := resolve(ctx, s, fallback.Request[entity.Quote]{
		Feature: "quote",
		Key:     quoteKey(date),
		Produce: func(ctx context.Context) (entity.Quote, error) {
			return s.sources.Quotes.RandomQuote(ctx, date)
		},
		Pool: pool,
		TTL:  s.dailyTTL,
	})
	if err != nil {
		return entity.Quote{}, err
	}

	if s.daily != nil {
		if err := s.daily.SetDailyQuote(ctx, date, quote); err != nil {
			s.logger.WarnContext(ctx, "daily quote write failed",
				slog.String("date", date),
				slog.Any("error", err))
		}
	}
	return quote, nil
}

func (s *Service) ShowerThought(ctx context.Context) (entity.ShowerThought, error) {
	return resolve(ctx, s, fallback.Request[entity.ShowerThought]{
		Feature: "showerthought",
		Key:     keyShowerThought,
		Produce: s.sources.ShowerThoughts.RandomThought,
		Pool:    s.thoughts,
	})
}

// Holiday returns an observance on date (today when empty). The fallback is
// the bundled holiday for the date's month and day.
func (s *Service) Holiday(ctx context.Context, date string) (entity.Holiday, error) {
	date, err := s.resolveDate(date)
	if err != nil {
		return entity.Holiday{}, err
	}

	pool, err := fallback.NewPool([]entity.Holiday{s.catalog.HolidayFor(date)})
	if err != nil {
		return entity.Holiday{}, err
	}
	return resolve(ctx, s, fallback.Request[entity.Holiday]{
		Feature: "holiday",
		Key:     holidayKey(date),
		Produce: func(ctx context.Context) (entity.Holiday, error) {
			return s.sources.Holidays.HolidayOn(ctx, date)
		},
		Pool: pool,
		TTL:  s.dailyTTL,
	})
}

func (s *Service) Drink(ctx context.Context) (entity.Drink, error) {
	return resolve(ctx, s, fallback.Request[entity.Drink]{
		Feature: "drink",
		Key:     keyDrink,
		Produce: s.sources.Drinks.RandomDrink,
		Pool:    s.drinks,
	})
}

// TimerBreak suggests a break of the given type ("", "short" or "long").
// Suggestions come from bundled data; the cache keeps one per type for the
// resolver TTL.
func (s *Service) TimerBreak(ctx context.Context, rawType string) (entity.BreakSuggestion, error) {
	t, err := entity.ParseBreakType(rawType)
	if err != nil {
		return entity.BreakSuggestion{}, err
	}

	pool, err := fallback.NewPool(s.catalog.BreaksFor(t))
	if err != nil {
		return entity.BreakSuggestion{}, fmt.Errorf("no %q break suggestions: %w", t, err)
	}
	return resolve(ctx, s, fallback.Request[entity.BreakSuggestion]{
		Feature: "timer",
		Key:     timerKey(t),
		Produce: func(context.Context) (entity.BreakSuggestion, error) {
			return pool.Random(s.intn)
		},
		Pool: pool,
	})
}

// resolve runs req through the resolver and serves a pool value for any error
// the resolver returned, except validation failures and a cancelled caller.
func resolve[T any](ctx context.Context, s *Service, req fallback.Request[T]) (T, error) {
	value, err := fallback.Resolve(ctx, s.resolver, req)
	if err == nil {
		return value, nil
	}

	var validationErr *entity.ValidationError
	if errors.As(err, &validationErr) || ctx.Err() != nil {
		return value, err
	}

	item, pickErr := req.Pool.Random(s.intn)
	if pickErr != nil {
		return value, err
	}
	s.logger.WarnContext(ctx, "upstream failed, serving fallback",
		slog.String("feature", req.Feature),
		slog.Any("error", err))
	return item, nil
}

// Spin normalizes choices and picks one uniformly. SelectedIndex indexes the
// normalized choices returned in the result.
func (s *Service) Spin(choices []string) (entity.SpinResult, error) {
	normalized, err := entity.NormalizeChoices(choices)
	if err != nil {
		return entity.SpinResult{}, err
	}

	i := s.intn(len(normalized))
	return entity.SpinResult{
		SelectedChoice: normalized[i],
		SelectedIndex:  i,
		SpinDuration:   minSpinDurationMs + s.intn(spinDurationSpan),
		Rotations:      minRotations + s.intn(rotationSpan),
		Choices:        normalized,
	}, nil
}
