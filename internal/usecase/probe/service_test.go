package probe_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quirkit/internal/infra/cache"
	"quirkit/internal/infra/kv"
	"quirkit/internal/observability/metrics"
	"quirkit/internal/usecase/probe"
)

type fakeProber struct {
	healthy  map[string]bool
	inFlight atomic.Int32
	peak     atomic.Int32
}

func (f *fakeProber) Probe(_ context.Context, url string) (bool, time.Duration) {
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		p := f.peak.Load()
		if n <= p || f.peak.CompareAndSwap(p, n) {
			break
		}
	}
	time.Sleep(5 * time.Millisecond)
	return f.healthy[url], 42 * time.Millisecond
}

type failingHealth struct {
	mu    sync.Mutex
	calls int
}

func (f *failingHealth) SetAPIHealth(context.Context, string, bool, time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return errors.New("connection refused")
}

var targets = []probe.Target{
	{API: "jokeapi", URL: "https://joke.test"},
	{API: "quotable", URL: "https://quote.test"},
	{API: "calendarific", URL: ""},
	{API: "cocktaildb", URL: "https://drink.test"},
}

func TestRun_StoresEveryResult(t *testing.T) {
	prober := &fakeProber{healthy: map[string]bool{
		"https://joke.test":  true,
		"https://drink.test": true,
	}}
	c := cache.New(kv.NewMemory())
	svc := probe.NewService(prober, c, targets)

	results, stats, err := svc.Run(context.Background())
	require.NoError(t, err)

	want := []probe.Result{
		{API: "jokeapi", Healthy: true, ResponseTime: 42 * time.Millisecond},
		{API: "quotable", Healthy: false, ResponseTime: 42 * time.Millisecond},
		{API: "cocktaildb", Healthy: true, ResponseTime: 42 * time.Millisecond},
	}
	if diff := cmp.Diff(want, results); diff != "" {
		t.Errorf("results mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, int64(3), stats.Targets)
	assert.Equal(t, int64(2), stats.Healthy)
	assert.Equal(t, int64(1), stats.Unhealthy)

	all, err := c.AllAPIHealth(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.True(t, all["jokeapi"].Healthy)
	assert.False(t, all["quotable"].Healthy)
	assert.Equal(t, int64(42), all["cocktaildb"].ResponseTimeMs)
	_, probed := all["calendarific"]
	assert.False(t, probed, "targets without a URL are skipped")

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.UpstreamHealthy.WithLabelValues("jokeapi")))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.UpstreamHealthy.WithLabelValues("quotable")))
}

func TestRun_StoreFailure(t *testing.T) {
	health := &failingHealth{}
	svc := probe.NewService(&fakeProber{}, health, targets)

	_, _, err := svc.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store health for")
}

func TestRun_MaxConcurrent(t *testing.T) {
	prober := &fakeProber{}
	svc := probe.NewService(prober, cache.New(kv.NewMemory()), targets, probe.WithMaxConcurrent(1))

	_, stats, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Unhealthy)
	assert.Equal(t, int32(1), prober.peak.Load())
}

func TestRun_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := probe.NewService(&fakeProber{}, cache.New(kv.NewMemory()), targets)
	_, _, err := svc.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTargets(t *testing.T) {
	svc := probe.NewService(&fakeProber{}, cache.New(kv.NewMemory()), targets)
	got := svc.Targets()
	require.Len(t, got, 3)

	got[0].API = "mutated"
	assert.Equal(t, "jokeapi", svc.Targets()[0].API)
}
