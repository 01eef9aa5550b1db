package cache

import (
	"context"
	"testing"
	"time"

	"fridge-chef/internal/infrastructure/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cacheConfig(maxSize int, ttl time.Duration) *config.Config {
	return &config.Config{
		Cache: config.CacheConfig{
			Enabled:         true,
			MaxSize:         maxSize,
			TTL:             ttl,
			CleanupInterval: time.Minute,
		},
	}
}

func TestManagerSetGet(t *testing.T) {
	m := NewManager(cacheConfig(10, time.Minute))
	require.NotNil(t, m)
	defer m.Close()

	ctx := context.Background()
	require.NoError(t, m.Set(ctx, "prompt", "image", "response"))

	got, err := m.Get(ctx, "prompt", "image")
	require.NoError(t, err)
	assert.Equal(t, "response", got)
}

func TestManagerMiss(t *testing.T) {
	m := NewManager(cacheConfig(10, time.Minute))
	require.NotNil(t, m)
	defer m.Close()

	_, err := m.Get(context.Background(), "unknown", "")
	assert.Error(t, err)
}

func TestManagerKeySeparatesTextAndMultimodal(t *testing.T) {
	m := NewManager(cacheConfig(10, time.Minute))
	require.NotNil(t, m)
	defer m.Close()

	ctx := context.Background()
	require.NoError(t, m.Set(ctx, "prompt", "", "text only"))
	require.NoError(t, m.Set(ctx, "prompt", "img", "with image"))

	got, err := m.Get(ctx, "prompt", "")
	require.NoError(t, err)
	assert.Equal(t, "text only", got)

	got, err = m.Get(ctx, "prompt", "img")
	require.NoError(t, err)
	assert.Equal(t, "with image", got)
}

func TestManagerExpiry(t *testing.T) {
	m := NewManager(cacheConfig(10, 10*time.Millisecond))
	require.NotNil(t, m)
	defer m.Close()

	ctx := context.Background()
	require.NoError(t, m.Set(ctx, "prompt", "", "response"))
	time.Sleep(20 * time.Millisecond)

	_, err := m.Get(ctx, "prompt", "")
	assert.Error(t, err)
}

func TestManagerLRUEviction(t *testing.T) {
	m := NewManager(cacheConfig(2, time.Minute))
	require.NotNil(t, m)
	defer m.Close()

	ctx := context.Background()
	require.NoError(t, m.Set(ctx, "a", "", "1"))
	time.Sleep(time.Millisecond)
	require.NoError(t, m.Set(ctx, "b", "", "2"))
	time.Sleep(time.Millisecond)

	// 第三筆觸發 LRU，最舊的 a 被淘汰
	require.NoError(t, m.Set(ctx, "c", "", "3"))

	_, err := m.Get(ctx, "a", "")
	assert.Error(t, err)

	got, err := m.Get(ctx, "c", "")
	require.NoError(t, err)
	assert.Equal(t, "3", got)
}

func TestManagerDisabledReturnsNil(t *testing.T) {
	cfg := cacheConfig(10, time.Minute)
	cfg.Cache.Enabled = false

	m := NewManager(cfg)
	assert.Nil(t, m)

	// nil 管理器的統計與關閉都是安全的
	assert.Nil(t, m.GetStats())
	assert.NoError(t, m.Close())
}

func TestManagerStats(t *testing.T) {
	m := NewManager(cacheConfig(10, time.Minute))
	require.NotNil(t, m)
	defer m.Close()

	ctx := context.Background()
	require.NoError(t, m.Set(ctx, "prompt", "", "response"))
	_, _ = m.Get(ctx, "prompt", "")
	_, _ = m.Get(ctx, "missing", "")

	stats := m.GetStats()
	require.NotNil(t, stats)
	assert.Equal(t, int64(1), stats["hits"])
	assert.Equal(t, int64(1), stats["misses"])
	assert.Equal(t, 1, stats["size"])
}
