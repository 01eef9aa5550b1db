package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, ParseModeStrict, cfg.Analysis.ParseMode)
	assert.Equal(t, 3, cfg.Analysis.RecipeCount)
	assert.True(t, cfg.Analysis.StretchEnabled)
	assert.Equal(t, 2, cfg.Analysis.StretchCount)
	assert.Equal(t, 2, cfg.OpenRouter.MaxRetries)
	assert.Equal(t, 500*time.Millisecond, cfg.OpenRouter.RetryBackoff)
	assert.Equal(t, time.Second, cfg.DedupWindow)
	assert.Equal(t, int64(10*1024*1024), cfg.Image.MaxSizeBytes)
}

func TestValidateConfigParseMode(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	cfg.Analysis.ParseMode = "fuzzy"
	assert.Error(t, validateConfig(cfg))

	cfg.Analysis.ParseMode = ParseModeLenient
	assert.NoError(t, validateConfig(cfg))
}

func TestValidateConfigCounts(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	cfg.Analysis.RecipeCount = 0
	assert.Error(t, validateConfig(cfg))
	cfg.Analysis.RecipeCount = 3

	cfg.Analysis.StretchCount = 0
	assert.Error(t, validateConfig(cfg))

	// 關閉升級食譜後數量不再檢查
	cfg.Analysis.StretchEnabled = false
	assert.NoError(t, validateConfig(cfg))
}

func TestValidateConfigCache(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	cfg.Cache.MaxSize = 0
	assert.Error(t, validateConfig(cfg))

	// 停用快取後容量不再檢查
	cfg.Cache.Enabled = false
	assert.NoError(t, validateConfig(cfg))
}
