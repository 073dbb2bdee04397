package force_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trestletech/goforce/pkg/force"
)

func TestMemoryCache(t *testing.T) {
	t.Parallel()

	cache := force.NewMemoryCache(16)
	ctx := context.Background()

	entry := &force.CacheEntry{Data: []byte("describe result")}
	require.NoError(t, cache.Set(ctx, "describe:na1:60.0", entry))

	got, err := cache.Get(ctx, "describe:na1:60.0")
	require.NoError(t, err)
	assert.Equal(t, []byte("describe result"), got.Data)

	_, err = cache.Get(ctx, "missing")
	require.ErrorIs(t, err, force.ErrCacheKeyNotFound)

	require.NoError(t, cache.Delete(ctx, "describe:na1:60.0"))

	_, err = cache.Get(ctx, "describe:na1:60.0")
	require.ErrorIs(t, err, force.ErrCacheKeyNotFound)
}

func TestMemoryCache_Expiry(t *testing.T) {
	t.Parallel()

	cache := force.NewMemoryCache(16)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "stale", &force.CacheEntry{
		Data:      []byte("old"),
		ExpiresAt: time.Now().Add(-time.Second),
	}))

	_, err := cache.Get(ctx, "stale")
	require.ErrorIs(t, err, force.ErrCacheKeyNotFound)

	// A zero expiry never expires.
	require.NoError(t, cache.Set(ctx, "pinned", &force.CacheEntry{Data: []byte("keep")}))

	got, err := cache.Get(ctx, "pinned")
	require.NoError(t, err)
	assert.Equal(t, []byte("keep"), got.Data)
}

func TestMemoryCache_Eviction(t *testing.T) {
	t.Parallel()

	cache := force.NewMemoryCache(2)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		key := fmt.Sprintf("key-%d", i)
		require.NoError(t, cache.Set(ctx, key, &force.CacheEntry{Data: []byte(key)}))
	}

	hits := 0

	for i := 0; i < 3; i++ {
		if _, err := cache.Get(ctx, fmt.Sprintf("key-%d", i)); err == nil {
			hits++
		}
	}

	assert.Equal(t, 2, hits)
}

func TestMemoryCache_Clear(t *testing.T) {
	t.Parallel()

	cache := force.NewMemoryCache(16)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "a", &force.CacheEntry{Data: []byte("a")}))
	require.NoError(t, cache.Clear(ctx))

	_, err := cache.Get(ctx, "a")
	require.ErrorIs(t, err, force.ErrCacheKeyNotFound)
}

func TestNoOpCache(t *testing.T) {
	t.Parallel()

	cache := force.NewNoOpCache()
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "a", &force.CacheEntry{Data: []byte("a")}))

	_, err := cache.Get(ctx, "a")
	require.ErrorIs(t, err, force.ErrCacheDisabled)

	require.NoError(t, cache.Delete(ctx, "a"))
	require.NoError(t, cache.Clear(ctx))
	require.NoError(t, cache.Close())
}
