package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "quirkit/docs" // swagger docs

	"quirkit/internal/app"
	"quirkit/internal/config"
	"quirkit/internal/data"
	"quirkit/internal/infra/adapter/persistence/kvstore"
	"quirkit/internal/infra/adapter/persistence/memory"
	pgRepo "quirkit/internal/infra/adapter/persistence/postgres"
	"quirkit/internal/infra/cache"
	"quirkit/internal/infra/db"
	"quirkit/internal/infra/kv"
	"quirkit/internal/observability/logging"
	"quirkit/internal/observability/tracing"
	"quirkit/internal/repository"
	"quirkit/internal/resilience/circuitbreaker"
	"quirkit/internal/usecase/compliment"
	pkgconfig "quirkit/pkg/config"
	"quirkit/pkg/ratelimit"
	"quirkit/pkg/security/csp"

	hhttp "quirkit/internal/handler/http"
	hcompliment "quirkit/internal/handler/http/compliment"
	hfun "quirkit/internal/handler/http/fun"
	"quirkit/internal/handler/http/middleware"
	"quirkit/internal/handler/http/requestid"
)

// @title           Quirkit API
// @version         1.0
// @description     Novelty fun tools: excuses, jokes, the quote of the day, shower thoughts,
// @description     holidays, drinks, break suggestions, a decision spinner and compliments.
// @description     Every response is wrapped in {"success": ..., "data"|"error": ...}.

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

// requestTimeout bounds a whole request. It sits below the server write
// timeout so the client gets the TIMEOUT_ERROR envelope.
const requestTimeout = 10 * time.Second

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	logger := logging.NewLogger()
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing := tracing.Init(cfg.Tracing.SampleRatio)
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Error("failed to shut down tracer provider", slog.Any("error", err))
		}
	}()

	store, err := app.OpenStore(ctx, cfg.KV)
	if err != nil {
		logger.Error("failed to open key-value store",
			slog.String("backend", cfg.KV.Backend),
			slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close key-value store", slog.Any("error", err))
		}
	}()
	logger.Info("key-value store ready", slog.String("backend", cfg.KV.Backend))

	database := initDatabase(ctx, logger, cfg)
	if database != nil {
		defer func() {
			if err := database.Close(); err != nil {
				logger.Error("failed to close database", slog.Any("error", err))
			}
		}()
	}

	version := getVersion()
	handler := setupServer(logger, cfg, store, database, version)
	runServer(ctx, logger, cfg.Server, handler, version)
}

// initDatabase opens the compliment database when COMPLIMENT_STORE=postgres.
func initDatabase(ctx context.Context, logger *slog.Logger, cfg *config.Config) *sql.DB {
	if cfg.Compliments.Store != config.ComplimentStorePostgres {
		return nil
	}
	database, err := db.Open(ctx, cfg.Compliments.DatabaseURL)
	if err != nil {
		logger.Error("failed to open database", slog.Any("error", err))
		os.Exit(1)
	}
	if err := db.MigrateUp(database); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}
	return database
}

// getVersion returns the application version from environment or default.
func getVersion() string {
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	return version
}

// complimentStore returns the primary compliment repository, or nil when
// compliments live in process memory only.
func complimentStore(cfg *config.Config, store kv.Store, database *sql.DB) repository.ComplimentRepository {
	switch cfg.Compliments.Store {
	case config.ComplimentStorePostgres:
		return pgRepo.NewComplimentRepoWithBreaker(circuitbreaker.NewDBCircuitBreaker(database))
	case config.ComplimentStoreKV:
		return kvstore.NewComplimentRepo(store)
	default:
		return nil
	}
}

// setupServer builds the services, the routes and the middleware chain.
func setupServer(logger *slog.Logger, cfg *config.Config, store kv.Store, database *sql.DB, version string) http.Handler {
	c := cache.New(store, cache.WithLogger(logger))
	upstreams := app.NewUpstreams(cfg, logger)

	catalog, err := data.Load()
	if err != nil {
		logger.Error("failed to load fallback data", slog.Any("error", err))
		os.Exit(1)
	}

	funSvc, err := app.NewFunService(cfg, c, catalog, upstreams, logger)
	if err != nil {
		logger.Error("failed to create fun service", slog.Any("error", err))
		os.Exit(1)
	}

	complimentSvc, err := compliment.NewService(
		complimentStore(cfg, store, database),
		memory.NewComplimentRepo(),
		catalog.Compliments,
		compliment.WithLogger(logger),
	)
	if err != nil {
		logger.Error("failed to create compliment service", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("compliment store configured", slog.String("store", cfg.Compliments.Store))

	proxyConfig, err := middleware.LoadTrustedProxyConfig()
	if err != nil {
		logger.Error("failed to load trusted proxy configuration", slog.Any("error", err))
		os.Exit(1)
	}
	if proxyConfig.Enabled {
		logger.Info("rate limiting: trusted proxy mode enabled",
			slog.Int("trusted_proxies_count", len(proxyConfig.AllowedCIDRs)))
	}

	rateLimitMetrics := ratelimit.NewPrometheusMetrics()
	rateLimiter := middleware.NewRateLimiter(store, cfg.RateLimit, rateLimitMetrics,
		middleware.WithIPExtractor(middleware.NewIPExtractor(proxyConfig)))
	if cfg.RateLimit.Enabled {
		logger.Info("rate limiting initialized",
			slog.Int("limit", cfg.RateLimit.Limit),
			slog.Duration("window", cfg.RateLimit.Window),
			slog.Int("compliment_limit", cfg.RateLimit.ComplimentLimit),
			slog.Duration("compliment_window", cfg.RateLimit.ComplimentWindow))
	} else {
		logger.Warn("rate limiting is DISABLED - not recommended for production")
	}

	mux := http.NewServeMux()
	hfun.Register(mux, funSvc)
	hcompliment.Register(mux, complimentSvc)
	mux.Handle("/health", &hhttp.HealthHandler{
		Store:       store,
		DB:          database,
		Upstreams:   c,
		RateLimiter: rateLimiter,
		Version:     version,
		Logger:      logger,
	})
	mux.Handle("/ready", &hhttp.ReadyHandler{Store: store})
	mux.Handle("/live", &hhttp.LiveHandler{})
	mux.Handle("/metrics", hhttp.MetricsHandler(rateLimitMetrics.Registry()))
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	corsConfig := middleware.NewCORSConfig(cfg.Server.CORSAllowedOrigins, logger)
	logger.Info("CORS enabled",
		slog.Bool("allow_all", corsConfig.AllowAll),
		slog.Any("allowed_origins", cfg.Server.CORSAllowedOrigins))

	securityConfig := middleware.SecurityConfig{
		DefaultPolicy: csp.APIPolicy(),
		PathPolicies: map[string]*csp.CSPBuilder{
			"/swagger/": csp.SwaggerUIPolicy(),
		},
		ReportOnly: pkgconfig.GetEnvBool("CSP_REPORT_ONLY", false),
	}

	// Order, outermost first: request ID, tracing and logging see every
	// request; CORS answers preflights before validation and rate limiting;
	// the timeout wraps only the handler.
	return hhttp.Chain(mux,
		requestid.Middleware,
		tracing.Middleware,
		hhttp.Logging(logger),
		hhttp.Recover(logger),
		hhttp.MetricsMiddleware,
		middleware.CORS(corsConfig),
		middleware.SecurityHeaders(securityConfig),
		hhttp.InputValidation(),
		rateLimiter.Middleware(),
		hhttp.LimitRequestBody(cfg.Server.MaxBodyBytes),
		hhttp.Timeout(requestTimeout),
	)
}

// runServer serves until ctx is cancelled, then shuts down gracefully.
func runServer(ctx context.Context, logger *slog.Logger, cfg config.ServerConfig, handler http.Handler, version string) {
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		BaseContext: func(_ net.Listener) context.Context {
			return context.WithoutCancel(ctx)
		},
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			slog.String("addr", cfg.Addr),
			slog.String("version", version))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
		return
	case <-ctx.Done():
	}
	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}
