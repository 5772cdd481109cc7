// Package config assembles the API server configuration from defaults, an
// optional YAML file and environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"quirkit/internal/infra/upstream"
	pkgconfig "quirkit/pkg/config"
	"quirkit/pkg/ratelimit"
)

// FileEnv names the variable holding the optional YAML config path.
const FileEnv = "QUIRKIT_CONFIG"

// Key-value backends.
const (
	KVBackendRedis  = "redis"
	KVBackendMemory = "memory"
)

// Compliment stores.
const (
	ComplimentStoreKV       = "kv"
	ComplimentStorePostgres = "postgres"
	ComplimentStoreMemory   = "memory"
)

// Config is the API server configuration.
type Config struct {
	Server      ServerConfig     `yaml:"server"`
	KV          KVConfig         `yaml:"kv"`
	Cache       CacheConfig      `yaml:"cache"`
	Upstream    UpstreamConfig   `yaml:"upstream"`
	Excuse      ExcuseConfig     `yaml:"excuse"`
	Compliments ComplimentConfig `yaml:"compliments"`
	Tracing     TracingConfig    `yaml:"tracing"`

	// RateLimit is read from the environment only.
	RateLimit *ratelimit.RateLimitConfig `yaml:"-"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr               string        `yaml:"addr"`
	CORSAllowedOrigins []string      `yaml:"cors_allowed_origins"`
	ReadHeaderTimeout  time.Duration `yaml:"read_header_timeout"`
	ReadTimeout        time.Duration `yaml:"read_timeout"`
	WriteTimeout       time.Duration `yaml:"write_timeout"`
	IdleTimeout        time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout    time.Duration `yaml:"shutdown_timeout"`
	MaxBodyBytes       int64         `yaml:"max_body_bytes"`
}

// KVConfig selects the key-value store.
type KVConfig struct {
	Backend  string `yaml:"backend"`
	RedisURL string `yaml:"redis_url"`
}

// CacheConfig holds the resolver cache settings.
type CacheConfig struct {
	TTL      time.Duration `yaml:"ttl"`
	DailyTTL time.Duration `yaml:"daily_ttl"`
}

// UpstreamConfig configures the third-party content APIs.
type UpstreamConfig struct {
	// Timeout bounds each resolution's producer call.
	Timeout           time.Duration `yaml:"timeout"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`
	Burst             int           `yaml:"burst"`

	JokeAPIURL           string `yaml:"joke_api_url"`
	QuotableURL          string `yaml:"quotable_url"`
	CocktailDBURL        string `yaml:"cocktaildb_url"`
	CalendarificURL      string `yaml:"calendarific_url"`
	CalendarificAPIKey   string `yaml:"-"`
	ShowerThoughtFeedURL string `yaml:"showerthought_feed_url"`
}

// ExcuseConfig selects the excuse generator. API keys come from the
// environment only.
type ExcuseConfig struct {
	Provider        string `yaml:"provider"`
	BaseURL         string `yaml:"base_url"`
	AnthropicAPIKey string `yaml:"-"`
	OpenAIAPIKey    string `yaml:"-"`
}

// ComplimentConfig selects the compliment store.
type ComplimentConfig struct {
	Store       string `yaml:"store"`
	DatabaseURL string `yaml:"-"`
}

// TracingConfig configures the tracer provider.
type TracingConfig struct {
	SampleRatio float64 `yaml:"sample_ratio"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:               ":8080",
			CORSAllowedOrigins: []string{"*"},
			ReadHeaderTimeout:  5 * time.Second,
			ReadTimeout:        10 * time.Second,
			WriteTimeout:       15 * time.Second,
			IdleTimeout:        60 * time.Second,
			ShutdownTimeout:    10 * time.Second,
			MaxBodyBytes:       64 << 10,
		},
		KV: KVConfig{
			Backend:  KVBackendRedis,
			RedisURL: "redis://localhost:6379/0",
		},
		Cache: CacheConfig{
			TTL:      300 * time.Second,
			DailyTTL: 24 * time.Hour,
		},
		Upstream: UpstreamConfig{
			Timeout:              5 * time.Second,
			RequestsPerSecond:    10,
			Burst:                20,
			JokeAPIURL:           upstream.DefaultJokeAPIURL,
			QuotableURL:          upstream.DefaultQuotableURL,
			CocktailDBURL:        upstream.DefaultCocktailDBURL,
			CalendarificURL:      upstream.DefaultCalendarificURL,
			ShowerThoughtFeedURL: upstream.DefaultShowerThoughtFeedURL,
		},
		Excuse: ExcuseConfig{
			Provider: upstream.ExcuseProviderNone,
		},
		Compliments: ComplimentConfig{
			Store: ComplimentStoreKV,
		},
		Tracing: TracingConfig{
			SampleRatio: 1.0,
		},
		RateLimit: ratelimit.DefaultConfig(),
	}
}

// Load builds the configuration: defaults, then the YAML file named by
// QUIRKIT_CONFIG when set, then environment overrides. The result is
// validated.
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv(FileEnv); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// loadFile overlays the YAML file at path. Keys absent from the file keep
// their current values.
func (c *Config) loadFile(path string) error {
	// #nosec G304 -- path comes from the operator's environment
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Server.Addr = pkgconfig.GetEnvString("ADDR", c.Server.Addr)
	c.Server.CORSAllowedOrigins = pkgconfig.GetEnvStringList("CORS_ALLOWED_ORIGINS", c.Server.CORSAllowedOrigins)

	c.KV.Backend = strings.ToLower(pkgconfig.GetEnvString("KV_BACKEND", c.KV.Backend))
	c.KV.RedisURL = pkgconfig.GetEnvString("REDIS_URL", c.KV.RedisURL)

	c.Cache.TTL = pkgconfig.GetEnvDuration("CACHE_TTL", c.Cache.TTL)
	c.Cache.DailyTTL = pkgconfig.GetEnvDuration("DAILY_CACHE_TTL", c.Cache.DailyTTL)

	c.Upstream.Timeout = pkgconfig.GetEnvDuration("UPSTREAM_TIMEOUT", c.Upstream.Timeout)
	c.Upstream.JokeAPIURL = pkgconfig.GetEnvString("JOKE_API_URL", c.Upstream.JokeAPIURL)
	c.Upstream.QuotableURL = pkgconfig.GetEnvString("QUOTABLE_URL", c.Upstream.QuotableURL)
	c.Upstream.CocktailDBURL = pkgconfig.GetEnvString("COCKTAILDB_URL", c.Upstream.CocktailDBURL)
	c.Upstream.CalendarificURL = pkgconfig.GetEnvString("CALENDARIFIC_URL", c.Upstream.CalendarificURL)
	c.Upstream.CalendarificAPIKey = pkgconfig.GetEnvString("CALENDARIFIC_API_KEY", c.Upstream.CalendarificAPIKey)
	c.Upstream.ShowerThoughtFeedURL = pkgconfig.GetEnvString("SHOWERTHOUGHT_FEED_URL", c.Upstream.ShowerThoughtFeedURL)

	c.Excuse.Provider = strings.ToLower(pkgconfig.GetEnvString("EXCUSE_PROVIDER", c.Excuse.Provider))
	c.Excuse.BaseURL = pkgconfig.GetEnvString("EXCUSE_BASE_URL", c.Excuse.BaseURL)
	c.Excuse.AnthropicAPIKey = pkgconfig.GetEnvString("ANTHROPIC_API_KEY", c.Excuse.AnthropicAPIKey)
	c.Excuse.OpenAIAPIKey = pkgconfig.GetEnvString("OPENAI_API_KEY", c.Excuse.OpenAIAPIKey)

	c.Compliments.Store = strings.ToLower(pkgconfig.GetEnvString("COMPLIMENT_STORE", c.Compliments.Store))
	c.Compliments.DatabaseURL = pkgconfig.GetEnvString("DATABASE_URL", c.Compliments.DatabaseURL)

	c.RateLimit = pkgconfig.LoadRateLimitConfig()
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server addr is required"))
	}
	if len(c.Server.CORSAllowedOrigins) == 0 {
		errs = append(errs, errors.New("at least one CORS origin is required"))
	}
	if c.Server.MaxBodyBytes <= 0 {
		errs = append(errs, fmt.Errorf("max body bytes must be positive, got %d", c.Server.MaxBodyBytes))
	}
	for name, d := range map[string]time.Duration{
		"read header timeout": c.Server.ReadHeaderTimeout,
		"read timeout":        c.Server.ReadTimeout,
		"write timeout":       c.Server.WriteTimeout,
		"idle timeout":        c.Server.IdleTimeout,
		"shutdown timeout":    c.Server.ShutdownTimeout,
	} {
		if err := pkgconfig.ValidatePositiveDuration(d); err != nil {
			errs = append(errs, fmt.Errorf("server %s: %w", name, err))
		}
	}

	switch c.KV.Backend {
	case KVBackendRedis:
		if c.KV.RedisURL == "" {
			errs = append(errs, errors.New("REDIS_URL is required when KV_BACKEND=redis"))
		}
	case KVBackendMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown kv backend %q", c.KV.Backend))
	}

	if err := pkgconfig.ValidateDurationRange(c.Cache.TTL, time.Second, 24*time.Hour); err != nil {
		errs = append(errs, fmt.Errorf("cache ttl: %w", err))
	}
	if err := pkgconfig.ValidateDurationRange(c.Cache.DailyTTL, time.Minute, 7*24*time.Hour); err != nil {
		errs = append(errs, fmt.Errorf("daily cache ttl: %w", err))
	}

	if err := pkgconfig.ValidateDurationRange(c.Upstream.Timeout, 100*time.Millisecond, 30*time.Second); err != nil {
		errs = append(errs, fmt.Errorf("upstream timeout: %w", err))
	}
	if c.Upstream.RequestsPerSecond <= 0 || c.Upstream.Burst <= 0 {
		errs = append(errs, errors.New("upstream requests per second and burst must be positive"))
	}
	for name, raw := range map[string]string{
		"joke api url":           c.Upstream.JokeAPIURL,
		"quotable url":           c.Upstream.QuotableURL,
		"cocktaildb url":         c.Upstream.CocktailDBURL,
		"calendarific url":       c.Upstream.CalendarificURL,
		"showerthought feed url": c.Upstream.ShowerThoughtFeedURL,
		"excuse base url":        c.Excuse.BaseURL,
	} {
		if err := validateURL(raw); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}

	if !slices.Contains([]string{upstream.ExcuseProviderNone, upstream.ExcuseProviderClaude, upstream.ExcuseProviderOpenAI}, c.Excuse.Provider) {
		errs = append(errs, fmt.Errorf("unknown excuse provider %q", c.Excuse.Provider))
	}

	switch c.Compliments.Store {
	case ComplimentStorePostgres:
		if c.Compliments.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required when COMPLIMENT_STORE=postgres"))
		}
	case ComplimentStoreKV, ComplimentStoreMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown compliment store %q", c.Compliments.Store))
	}

	if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
		errs = append(errs, fmt.Errorf("tracing sample ratio must be within [0, 1], got %v", c.Tracing.SampleRatio))
	}

	if c.RateLimit == nil {
		errs = append(errs, errors.New("rate limit config is required"))
	} else if err := c.RateLimit.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("rate limit: %w", err))
	}

	return errors.Join(errs...)
}

// validateURL accepts an empty value or an absolute http(s) URL.
func validateURL(raw string) error {
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("host is required")
	}
	return nil
}

// ExcuseGeneratorConfig converts the excuse settings for the upstream package.
func (c *Config) ExcuseGeneratorConfig() upstream.ExcuseConfig {
	return upstream.ExcuseConfig{
		Provider:        c.Excuse.Provider,
		AnthropicAPIKey: c.Excuse.AnthropicAPIKey,
		OpenAIAPIKey:    c.Excuse.OpenAIAPIKey,
		BaseURL:         c.Excuse.BaseURL,
	}
}
