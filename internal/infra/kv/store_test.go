package kv

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// harness pairs a Store with a way to move its notion of time forward.
type harness struct {
	store   Store
	advance func(time.Duration)
}

func newMemoryHarness(t *testing.T) harness {
	t.Helper()
	var mu sync.Mutex
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMemory(WithNow(func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}))
	return harness{
		store: m,
		advance: func(d time.Duration) {
			mu.Lock()
			defer mu.Unlock()
			now = now.Add(d)
		},
	}
}

func newRedisHarness(t *testing.T) harness {
	t.Helper()
	mr := miniredis.RunT(t)
	store, err := NewRedis(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return harness{store: store, advance: mr.FastForward}
}

func forEachStore(t *testing.T, fn func(t *testing.T, h harness)) {
	t.Run("memory", func(t *testing.T) { fn(t, newMemoryHarness(t)) })
	t.Run("redis", func(t *testing.T) { fn(t, newRedisHarness(t)) })
}

func TestStore_GetSetDel(t *testing.T) {
	forEachStore(t, func(t *testing.T, h harness) {
		ctx := context.Background()

		_, ok, err := h.store.Get(ctx, "missing")
		require.NoError(t, err)
		assert.False(t, ok)

		require.NoError(t, h.store.Set(ctx, "k", "v", 0))
		v, ok, err := h.store.Get(ctx, "k")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "v", v)

		require.NoError(t, h.store.Del(ctx, "k"))
		_, ok, err = h.store.Get(ctx, "k")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestStore_SetWithTTLExpires(t *testing.T) {
	forEachStore(t, func(t *testing.T, h harness) {
		ctx := context.Background()

		require.NoError(t, h.store.Set(ctx, "k", "v", 10*time.Second))

		ttl, err := h.store.TTL(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, 10*time.Second, ttl)

		h.advance(11 * time.Second)

		_, ok, err := h.store.Get(ctx, "k")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestStore_IncrAndExpire(t *testing.T) {
	forEachStore(t, func(t *testing.T, h harness) {
		ctx := context.Background()

		n, err := h.store.Incr(ctx, "rate:x")
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		ttl, err := h.store.TTL(ctx, "rate:x")
		require.NoError(t, err)
		assert.Less(t, ttl, time.Duration(0), "a fresh counter has no expiry")

		require.NoError(t, h.store.Expire(ctx, "rate:x", time.Minute))
		n, err = h.store.Incr(ctx, "rate:x")
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)

		h.advance(time.Minute + time.Second)

		n, err = h.store.Incr(ctx, "rate:x")
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})
}

func TestStore_IncrNonInteger(t *testing.T) {
	forEachStore(t, func(t *testing.T, h harness) {
		ctx := context.Background()
		require.NoError(t, h.store.Set(ctx, "k", "abc", 0))
		_, err := h.store.Incr(ctx, "k")
		assert.Error(t, err)
	})
}

func TestStore_Lists(t *testing.T) {
	forEachStore(t, func(t *testing.T, h harness) {
		ctx := context.Background()

		require.NoError(t, h.store.LPush(ctx, "l", "a"))
		require.NoError(t, h.store.LPush(ctx, "l", "b", "c"))

		all, err := h.store.LRange(ctx, "l", 0, -1)
		require.NoError(t, err)
		assert.Equal(t, []string{"c", "b", "a"}, all)

		head, err := h.store.LRange(ctx, "l", 0, 0)
		require.NoError(t, err)
		assert.Equal(t, []string{"c"}, head)

		empty, err := h.store.LRange(ctx, "nothing", 0, -1)
		require.NoError(t, err)
		assert.Empty(t, empty)
	})
}

func TestStore_Hashes(t *testing.T) {
	forEachStore(t, func(t *testing.T, h harness) {
		ctx := context.Background()

		require.NoError(t, h.store.HSet(ctx, "h", map[string]string{"a": "1", "b": "2"}))
		require.NoError(t, h.store.HSet(ctx, "h", map[string]string{"b": "3"}))

		got, err := h.store.HGetAll(ctx, "h")
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"a": "1", "b": "3"}, got)

		missing, err := h.store.HGetAll(ctx, "none")
		require.NoError(t, err)
		assert.Empty(t, missing)
	})
}

func TestStore_Keys(t *testing.T) {
	forEachStore(t, func(t *testing.T, h harness) {
		ctx := context.Background()

		require.NoError(t, h.store.Set(ctx, "health:jokeapi", "{}", 0))
		require.NoError(t, h.store.Set(ctx, "health:quotable", "{}", 0))
		require.NoError(t, h.store.Set(ctx, "api:joke:random", "{}", 0))

		keys, err := h.store.Keys(ctx, "health:*")
		require.NoError(t, err)
		sort.Strings(keys)
		assert.Equal(t, []string{"health:jokeapi", "health:quotable"}, keys)
	})
}

func TestNewRedis_BadURL(t *testing.T) {
	_, err := NewRedis(context.Background(), "://nope")
	assert.Error(t, err)
}

func TestNewRedis_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewRedis(context.Background(), "redis://"+addr)
	assert.Error(t, err)
}

func TestNewRedisFromClient(t *testing.T) {
	mr := miniredis.RunT(t)
	store := NewRedisFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Ping(context.Background()))
}
