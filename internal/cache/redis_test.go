// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuGH/connect4/internal/resilience"
)

// setupMiniRedis creates a test Redis server using miniredis.
func setupMiniRedis(t *testing.T) (*miniredis.Miniredis, *RedisCache) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { _ = client.Close() })

	return mr, newRedisCache(client, "", zerolog.Nop())
}

func TestRedisCache_SetGet(t *testing.T) {
	ctx := context.Background()
	mr, cache := setupMiniRedis(t)

	cache.Set(ctx, "test-key", []byte(`{"column":3}`), 5*time.Minute)

	val, found := cache.Get(ctx, "test-key")
	require.True(t, found)
	assert.JSONEq(t, `{"column":3}`, string(val))

	// stored under the namespace
	assert.True(t, mr.Exists("connect4:test-key"))

	stats := cache.Stats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Sets)
	assert.Equal(t, 1, stats.CurrentSize)
}

func TestRedisCache_GetMissing(t *testing.T) {
	_, cache := setupMiniRedis(t)

	_, found := cache.Get(context.Background(), "missing")
	assert.False(t, found)
	assert.Equal(t, int64(1), cache.Stats().Misses)
}

func TestRedisCache_TTL(t *testing.T) {
	ctx := context.Background()
	mr, cache := setupMiniRedis(t)

	cache.Set(ctx, "ttl-key", []byte("v"), time.Second)
	_, found := cache.Get(ctx, "ttl-key")
	require.True(t, found)

	mr.FastForward(2 * time.Second)

	_, found = cache.Get(ctx, "ttl-key")
	assert.False(t, found, "expected key to expire")
}

func TestRedisCache_Delete(t *testing.T) {
	ctx := context.Background()
	_, cache := setupMiniRedis(t)

	cache.Set(ctx, "del", []byte("v"), time.Minute)
	cache.Delete(ctx, "del")

	_, found := cache.Get(ctx, "del")
	assert.False(t, found)
}

func TestRedisCache_StatsIgnoresForeignKeys(t *testing.T) {
	ctx := context.Background()
	mr, cache := setupMiniRedis(t)

	require.NoError(t, mr.Set("other:key", "x"))
	cache.Set(ctx, "mine", []byte("v"), time.Minute)

	assert.Equal(t, 1, cache.Stats().CurrentSize)
}

func TestRedisCache_HealthCheck(t *testing.T) {
	mr, cache := setupMiniRedis(t)

	require.NoError(t, cache.HealthCheck(context.Background()))

	mr.Close()
	assert.Error(t, cache.HealthCheck(context.Background()))
}

func TestRedisCache_ServerDownIsAMiss(t *testing.T) {
	mr, cache := setupMiniRedis(t)
	mr.Close()

	cache.Set(context.Background(), "k", []byte("v"), time.Minute)
	_, found := cache.Get(context.Background(), "k")
	assert.False(t, found)
}

func TestNewRedisCache(t *testing.T) {
	mr := miniredis.RunT(t)

	c, err := New(Config{Backend: "redis", Redis: RedisConfig{Addr: mr.Addr(), Prefix: "t:"}}, zerolog.Nop())
	require.NoError(t, err)
	defer c.Close()
	assert.Equal(t, "redis", c.Backend())

	c.Set(context.Background(), "a", []byte("1"), 0)
	assert.True(t, mr.Exists("t:a"))
}

func TestNewRedisCache_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	c, err := New(Config{Backend: "redis", Redis: RedisConfig{Addr: addr}}, zerolog.Nop())
	assert.Error(t, err)
	assert.Nil(t, c)
}

func TestRedisCache_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	_, cache := setupMiniRedis(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				cache.Set(ctx, "shared", []byte("v"), time.Minute)
				cache.Get(ctx, "shared")
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(200), cache.Stats().Sets)
}

func TestRedisCache_BreakerOpensWhenServerDown(t *testing.T) {
	mr, cache := setupMiniRedis(t)
	mr.Close()

	for i := 0; i < 5; i++ {
		_, found := cache.Get(context.Background(), "k")
		require.False(t, found)
	}
	assert.Equal(t, resilience.StateOpen, cache.breaker.State())

	// open breaker short-circuits without touching the client
	_, found := cache.Get(context.Background(), "k")
	assert.False(t, found)
	assert.Equal(t, int64(6), cache.Stats().Misses)
}
