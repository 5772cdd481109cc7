// Package app builds the components shared by the API server and the prober
// from the loaded configuration.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"quirkit/internal/config"
	"quirkit/internal/data"
	"quirkit/internal/infra/cache"
	"quirkit/internal/infra/kv"
	"quirkit/internal/infra/upstream"
	"quirkit/internal/resilience/fallback"
	"quirkit/internal/usecase/fun"
	"quirkit/internal/usecase/probe"
)

// OpenStore connects the configured key-value backend.
func OpenStore(ctx context.Context, cfg config.KVConfig) (kv.Store, error) {
	switch cfg.Backend {
	case config.KVBackendMemory:
		return kv.NewMemory(), nil
	case config.KVBackendRedis:
		store, err := kv.NewRedis(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown kv backend %q", cfg.Backend)
	}
}

// Upstreams holds the content API sources behind one shared client.
type Upstreams struct {
	Client         *upstream.Client
	Excuses        upstream.ExcuseGenerator
	Jokes          *upstream.JokeAPI
	Quotes         *upstream.Quotable
	ShowerThoughts *upstream.ShowerThoughts
	Holidays       *upstream.Calendarific
	Drinks         *upstream.CocktailDB

	holidaysKeyed bool
}

// NewUpstreams creates the outbound client and every source.
func NewUpstreams(cfg *config.Config, logger *slog.Logger) *Upstreams {
	client := upstream.NewClient(
		upstream.WithRateLimit(cfg.Upstream.RequestsPerSecond, cfg.Upstream.Burst),
		upstream.WithLogger(logger),
	)
	return &Upstreams{
		Client:         client,
		Excuses:        upstream.NewExcuseGenerator(client, cfg.ExcuseGeneratorConfig()),
		Jokes:          upstream.NewJokeAPI(client, cfg.Upstream.JokeAPIURL),
		Quotes:         upstream.NewQuotable(client, cfg.Upstream.QuotableURL),
		ShowerThoughts: upstream.NewShowerThoughts(client, cfg.Upstream.ShowerThoughtFeedURL),
		Holidays:       upstream.NewCalendarific(client, cfg.Upstream.CalendarificURL, cfg.Upstream.CalendarificAPIKey),
		Drinks:         upstream.NewCocktailDB(client, cfg.Upstream.CocktailDBURL),
		holidaysKeyed:  cfg.Upstream.CalendarificAPIKey != "",
	}
}

// Sources returns the sources in the shape the fun service takes.
func (u *Upstreams) Sources() fun.Sources {
	return fun.Sources{
		Excuses:        u.Excuses,
		Jokes:          u.Jokes,
		Quotes:         u.Quotes,
		ShowerThoughts: u.ShowerThoughts,
		Holidays:       u.Holidays,
		Drinks:         u.Drinks,
	}
}

// ProbeTargets lists the APIs the prober checks. The holiday API is left out
// without a key, and the excuse generators are never probed.
func (u *Upstreams) ProbeTargets() []probe.Target {
	targets := []probe.Target{
		{API: upstream.APIJokeAPI, URL: u.Jokes.BaseURL()},
		{API: upstream.APIQuotable, URL: u.Quotes.BaseURL()},
		{API: upstream.APIShowerThoughts, URL: u.ShowerThoughts.BaseURL()},
		{API: upstream.APICocktailDB, URL: u.Drinks.BaseURL()},
	}
	if u.holidaysKeyed {
		targets = append(targets, probe.Target{API: upstream.APICalendarific, URL: u.Holidays.BaseURL()})
	}
	return targets
}

// NewFunService wires the fun service to the cache, the bundled catalog and
// the upstream sources.
func NewFunService(cfg *config.Config, c *cache.Cache, catalog *data.Catalog, u *Upstreams, logger *slog.Logger) (*fun.Service, error) {
	resolver := fallback.NewResolver(c, fallback.Config{
		TTL:     cfg.Cache.TTL,
		Timeout: cfg.Upstream.Timeout,
	}, fallback.WithLogger(logger))

	return fun.NewService(resolver, c, catalog, u.Sources(),
		fun.WithLogger(logger),
		fun.WithDailyTTL(cfg.Cache.DailyTTL),
	)
}
