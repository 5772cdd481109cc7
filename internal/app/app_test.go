package app

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quirkit/internal/config"
	"quirkit/internal/data"
	"quirkit/internal/infra/cache"
	"quirkit/internal/infra/kv"
	"quirkit/internal/infra/upstream"
	"quirkit/internal/usecase/probe"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOpenStore(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		store, err := OpenStore(ctx, config.KVConfig{Backend: config.KVBackendMemory})
		require.NoError(t, err)
		assert.IsType(t, &kv.Memory{}, store)
	})

	t.Run("redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		store, err := OpenStore(ctx, config.KVConfig{Backend: config.KVBackendRedis, RedisURL: "redis://" + mr.Addr()})
		require.NoError(t, err)
		t.Cleanup(func() { _ = store.Close() })
		assert.NoError(t, store.Ping(ctx))
	})

	t.Run("unreachable redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()
		_, err := OpenStore(ctx, config.KVConfig{Backend: config.KVBackendRedis, RedisURL: "redis://" + addr})
		assert.Error(t, err)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := OpenStore(ctx, config.KVConfig{Backend: "etcd"})
		assert.ErrorContains(t, err, "etcd")
	})
}

func TestUpstreams_ProbeTargets(t *testing.T) {
	cfg := config.Default()

	targets := NewUpstreams(cfg, discardLogger()).ProbeTargets()
	assert.Equal(t, []probe.Target{
		{API: upstream.APIJokeAPI, URL: upstream.DefaultJokeAPIURL},
		{API: upstream.APIQuotable, URL: upstream.DefaultQuotableURL},
		{API: upstream.APIShowerThoughts, URL: upstream.DefaultShowerThoughtFeedURL},
		{API: upstream.APICocktailDB, URL: upstream.DefaultCocktailDBURL},
	}, targets)

	cfg.Upstream.CalendarificAPIKey = "key"
	targets = NewUpstreams(cfg, discardLogger()).ProbeTargets()
	require.Len(t, targets, 5)
	assert.Equal(t, probe.Target{API: upstream.APICalendarific, URL: upstream.DefaultCalendarificURL}, targets[4])
}

func TestNewFunService(t *testing.T) {
	cfg := config.Default()
	u := NewUpstreams(cfg, discardLogger())

	svc, err := NewFunService(cfg, cache.New(kv.NewMemory()), data.MustLoad(), u, discardLogger())
	require.NoError(t, err)

	res, err := svc.Spin([]string{"pizza", "tacos"})
	require.NoError(t, err)
	assert.Contains(t, []string{"pizza", "tacos"}, res.SelectedChoice)
}
