package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"

	"quirkit/internal/app"
	"quirkit/internal/config"
	"quirkit/internal/data"
	"quirkit/internal/infra/cache"
	workerPkg "quirkit/internal/infra/worker"
	"quirkit/internal/observability/logging"
	"quirkit/internal/usecase/probe"
)

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

	// Prober configuration never fails: invalid values fall back to defaults.
	workerMetrics := workerPkg.NewMetrics(prometheus.DefaultRegisterer)
	workerConfig := workerPkg.LoadConfigFromEnv(logger, workerMetrics)
	logger.Info("prober configuration loaded",
		slog.String("probe_schedule", workerConfig.ProbeSchedule),
		slog.String("quote_warm_schedule", workerConfig.QuoteWarmSchedule),
		slog.String("timezone", workerConfig.Timezone),
		slog.Int("probe_max_concurrent", workerConfig.ProbeMaxConcurrent),
		slog.Duration("probe_timeout", workerConfig.ProbeTimeout),
		slog.Int("health_port", workerConfig.HealthPort))

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
	if cfg.KV.Backend == config.KVBackendMemory {
		logger.Warn("prober is using the in-memory store; the API server will not see its results")
	}

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

	probeSvc := probe.NewService(upstreams.Client, c, upstreams.ProbeTargets(),
		probe.WithLogger(logger),
		probe.WithMaxConcurrent(workerConfig.ProbeMaxConcurrent))

	healthAddr := fmt.Sprintf(":%d", workerConfig.HealthPort)
	healthServer := workerPkg.NewHealthServer(healthAddr, logger, prometheus.DefaultGatherer)
	go func() {
		if err := healthServer.Start(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("health server failed", slog.Any("error", err))
		}
	}()

	j := &jobs{
		logger:       logger,
		metrics:      workerMetrics,
		health:       healthServer,
		prober:       probeSvc,
		quotes:       funSvc,
		probeTimeout: workerConfig.ProbeTimeout,
		warmTimeout:  workerConfig.WarmTimeout,
	}
	startCron(ctx, logger, workerConfig, j, healthServer)
}

// startCron schedules both jobs, runs a first probe immediately and blocks
// until ctx is cancelled.
func startCron(ctx context.Context, logger *slog.Logger, cfg workerPkg.Config, j *jobs, healthServer *workerPkg.HealthServer) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Error("invalid timezone, using UTC", slog.String("timezone", cfg.Timezone), slog.Any("error", err))
		loc = time.UTC
	}
	c := cron.New(cron.WithLocation(loc))

	if _, err := c.AddFunc(cfg.ProbeSchedule, func() { j.runProbe(ctx) }); err != nil {
		logger.Error("failed to add probe job", slog.Any("error", err))
		os.Exit(1)
	}
	if _, err := c.AddFunc(cfg.QuoteWarmSchedule, func() { j.runQuoteWarm(ctx) }); err != nil {
		logger.Error("failed to add quote warm job", slog.Any("error", err))
		os.Exit(1)
	}
	c.Start()

	healthServer.SetReady(true)
	logger.Info("prober started",
		slog.String("probe_schedule", cfg.ProbeSchedule),
		slog.String("quote_warm_schedule", cfg.QuoteWarmSchedule),
		slog.String("timezone", cfg.Timezone))

	go j.runProbe(ctx)

	<-ctx.Done()
	logger.Info("shutting down prober...")
	healthServer.SetReady(false)

	// Wait for running jobs.
	<-c.Stop().Done()
	logger.Info("prober stopped")
}
