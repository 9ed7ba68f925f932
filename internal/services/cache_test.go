package services

import (
	"context"
	"testing"
	"time"

	"github.com/nexconsult/brdocs-api/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	cache := NewCacheService(nil, time.Minute, "doc:", logger.Discard())

	_, err := cache.Get(ctx, "doc:cpf:52998224725")
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, cache.Set(ctx, "doc:cpf:52998224725", "value"))

	got, err := cache.Get(ctx, "doc:cpf:52998224725")
	require.NoError(t, err)
	assert.Equal(t, "value", got)

	ok, err := cache.Exists(ctx, "doc:cpf:52998224725")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, cache.Delete(ctx, "doc:cpf:52998224725"))
	ok, err = cache.Exists(ctx, "doc:cpf:52998224725")
	require.NoError(t, err)
	assert.False(t, ok)

	stats, err := cache.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats["hits"])
	assert.Equal(t, int64(1), stats["misses"])
	assert.Equal(t, 50.0, stats["hit_rate"])
}

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	cache := NewCacheService(nil, time.Millisecond, "doc:", logger.Discard())

	require.NoError(t, cache.Set(ctx, "doc:k", "v"))
	time.Sleep(5 * time.Millisecond)

	_, err := cache.Get(ctx, "doc:k")
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.Equal(t, 0, cache.Size())
}

func TestCacheClearKeepsForeignKeys(t *testing.T) {
	ctx := context.Background()
	cache := NewCacheService(nil, time.Minute, "doc:", logger.Discard())

	require.NoError(t, cache.Set(ctx, "doc:cpf:1", "a"))
	require.NoError(t, cache.Set(ctx, "doc:cnpj:2", "b"))
	require.NoError(t, cache.Set(ctx, "session:3", "c"))

	removed, err := cache.Clear(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	_, err = cache.Get(ctx, "doc:cpf:1")
	assert.ErrorIs(t, err, ErrCacheMiss)

	got, err := cache.Get(ctx, "session:3")
	require.NoError(t, err)
	assert.Equal(t, "c", got)
}

func TestCacheHealthWithoutRedis(t *testing.T) {
	cache := NewCacheService(nil, time.Minute, "doc:", logger.Discard())
	health := cache.Health()

	assert.Equal(t, "disabled", health["redis"].(map[string]interface{})["status"])
	assert.Equal(t, "healthy", health["memory"].(map[string]interface{})["status"])
	assert.Equal(t, "healthy", health["status"])
}
