// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// SPDX-License-Identifier: MIT

package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_GetSet(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache(0, 0) // No cleanup for this test

	cache.Set(ctx, "key1", []byte("value1"), 5*time.Minute)

	val, ok := cache.Get(ctx, "key1")
	require.True(t, ok, "expected to find key1")
	assert.Equal(t, []byte("value1"), val)

	_, ok = cache.Get(ctx, "nonexistent")
	assert.False(t, ok, "expected not to find nonexistent key")

	stats := cache.Stats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, int64(1), stats.Sets)
}

func TestMemoryCache_ValuesAreCopied(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache(0, 0)

	buf := []byte("abc")
	cache.Set(ctx, "k", buf, 0)
	buf[0] = 'x'

	got, ok := cache.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, "abc", string(got))

	got[1] = 'y'
	again, _ := cache.Get(ctx, "k")
	assert.Equal(t, "abc", string(again))
}

func TestMemoryCache_Expiration(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache(0, 0)

	cache.Set(ctx, "shortlived", []byte("value"), 50*time.Millisecond)

	_, ok := cache.Get(ctx, "shortlived")
	require.True(t, ok)

	time.Sleep(100 * time.Millisecond)

	_, ok = cache.Get(ctx, "shortlived")
	assert.False(t, ok, "expected key to be expired")
}

func TestMemoryCache_ZeroTTLNeverExpires(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache(0, 0)
	cache.Set(ctx, "forever", []byte("v"), 0)
	time.Sleep(10 * time.Millisecond)
	_, ok := cache.Get(ctx, "forever")
	assert.True(t, ok)
}

func TestMemoryCache_Delete(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache(0, 0)

	cache.Set(ctx, "key1", []byte("value1"), 5*time.Minute)
	cache.Delete(ctx, "key1")

	_, ok := cache.Get(ctx, "key1")
	assert.False(t, ok)
}

func TestMemoryCache_MaxEntries(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache(0, 2)

	cache.Set(ctx, "a", []byte("1"), 0)
	cache.Set(ctx, "b", []byte("2"), 0)
	cache.Set(ctx, "c", []byte("3"), 0)

	stats := cache.Stats()
	assert.Equal(t, 2, stats.CurrentSize)
	assert.Equal(t, int64(1), stats.Evictions)
	_, ok := cache.Get(ctx, "c")
	assert.True(t, ok, "newest entry must survive")

	// overwriting an existing key does not evict
	cache.Set(ctx, "c", []byte("33"), 0)
	assert.Equal(t, int64(1), cache.Stats().Evictions)
}

func TestMemoryCache_Janitor(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache(10*time.Millisecond, 0)
	defer cache.Close()

	cache.Set(ctx, "k", []byte("v"), 5*time.Millisecond)

	require.Eventually(t, func() bool {
		return cache.Stats().CurrentSize == 0
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, int64(1), cache.Stats().Evictions)

	// Close is idempotent
	require.NoError(t, cache.Close())
}

func TestMemoryCache_Concurrent(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache(0, 0)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				cache.Set(ctx, "shared", []byte{byte(i)}, time.Minute)
				cache.Get(ctx, "shared")
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, int64(1600), cache.Stats().Sets)
}

func TestNoOpCache(t *testing.T) {
	ctx := context.Background()
	cache := NewNoOpCache()
	cache.Set(ctx, "k", []byte("v"), time.Minute)
	_, ok := cache.Get(ctx, "k")
	assert.False(t, ok)
	assert.Equal(t, "none", cache.Backend())
}

func TestNew_Backends(t *testing.T) {
	c, err := New(Config{}, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, "memory", c.Backend())

	c, err = New(Config{Backend: "none"}, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, "none", c.Backend())

	_, err = New(Config{Backend: "memcached"}, zerolog.Nop())
	assert.Error(t, err)
}
