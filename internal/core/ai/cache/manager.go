package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"fridge-chef/internal/infrastructure/config"
	"fridge-chef/internal/pkg/common"

	"go.uber.org/zap"
)

// CacheManager AI 回應緩存管理器。
// 預設使用進程內緩存；設定 redis_addr 時改用 Redis 後端。
// 緩存只是回應快取，不是持久層：任何條目遺失都只是多一次 AI 呼叫。
type CacheManager struct {
	config *config.Config
	redis  *RedisStore
	mu     sync.Mutex
	store  map[string]cacheEntry
	stats  cacheStats
}

// cacheEntry 緩存條目
type cacheEntry struct {
	value      string
	expiresAt  time.Time
	lastAccess time.Time
}

// cacheStats 緩存統計
type cacheStats struct {
	hits      int64
	misses    int64
	evictions int64
}

// NewManager 創建新的緩存管理器
func NewManager(cfg *config.Config) *CacheManager {
	if !cfg.Cache.Enabled {
		common.LogInfo("Cache disabled")
		return nil
	}

	m := &CacheManager{
		config: cfg,
		store:  make(map[string]cacheEntry),
	}

	if cfg.Cache.RedisAddr != "" {
		redisStore, err := NewRedisStore(cfg)
		if err != nil {
			common.LogWarn("Redis 連線失敗，改用進程內緩存",
				zap.String("addr", cfg.Cache.RedisAddr),
				zap.Error(err),
			)
		} else {
			m.redis = redisStore
		}
	}

	// 啟動清理過期緩存的協程（僅進程內後端需要）
	if m.redis == nil {
		go m.startCleanup()
	}

	common.LogInfo("快取管理員已初始化",
		zap.Int("最大容量", cfg.Cache.MaxSize),
		zap.Duration("存活時間", cfg.Cache.TTL),
		zap.Bool("redis", m.redis != nil),
	)

	return m
}

// Get 獲取緩存值
func (m *CacheManager) Get(ctx context.Context, prompt, imageData string) (string, error) {
	key := generateKey(prompt, imageData)

	if m.redis != nil {
		return m.redis.Get(ctx, key)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.store[key]
	if !exists {
		m.stats.misses++
		return "", fmt.Errorf("cache miss")
	}

	// 檢查是否過期
	if time.Now().After(entry.expiresAt) {
		delete(m.store, key)
		m.stats.evictions++
		m.stats.misses++
		return "", fmt.Errorf("cache miss")
	}

	entry.lastAccess = time.Now()
	m.store[key] = entry
	m.stats.hits++

	common.LogDebug("快取命中", zap.String("鍵", key))
	return entry.value, nil
}

// Set 設置緩存值
func (m *CacheManager) Set(ctx context.Context, prompt, imageData, value string) error {
	key := generateKey(prompt, imageData)

	if m.redis != nil {
		return m.redis.Set(ctx, key, value)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// 檢查緩存大小，先清過期再退 LRU
	if len(m.store) >= m.config.Cache.MaxSize {
		m.cleanupLocked()
		if len(m.store) >= m.config.Cache.MaxSize {
			m.evictLRULocked()
		}
		if len(m.store) >= m.config.Cache.MaxSize {
			common.LogWarn("快取已滿", zap.Int("目前容量", len(m.store)))
			return common.ErrCacheFull
		}
	}

	m.store[key] = cacheEntry{
		value:      value,
		expiresAt:  time.Now().Add(m.config.Cache.TTL),
		lastAccess: time.Now(),
	}
	return nil
}

// generateKey 生成緩存鍵：prompt 與圖片各自雜湊，避免鍵內出現原始資料
func generateKey(prompt, imageData string) string {
	if imageData == "" {
		return fmt.Sprintf("text:%s", hashString(prompt))
	}
	return fmt.Sprintf("multimodal:%s:%s", hashString(prompt), hashString(imageData))
}

// hashString 計算字符串的 SHA-256 哈希值
func hashString(s string) string {
	hash := sha256.Sum256([]byte(s))
	return hex.EncodeToString(hash[:])
}

// startCleanup 啟動清理過期緩存的協程
func (m *CacheManager) startCleanup() {
	ticker := time.NewTicker(m.config.Cache.CleanupInterval)
	defer ticker.Stop()

	for range ticker.C {
		m.mu.Lock()
		count := m.cleanupLocked()
		m.mu.Unlock()
		if count > 0 {
			common.LogInfo("已清理過期緩存",
				zap.Int("count", count),
			)
		}
	}
}

// cleanupLocked 清理過期的緩存，呼叫方須持有鎖
func (m *CacheManager) cleanupLocked() int {
	now := time.Now()
	count := 0
	for key, entry := range m.store {
		if now.After(entry.expiresAt) {
			delete(m.store, key)
			count++
			m.stats.evictions++
		}
	}
	return count
}

// evictLRULocked 淘汰最久未訪問的條目，呼叫方須持有鎖
func (m *CacheManager) evictLRULocked() {
	var oldestKey string
	var oldestAccess time.Time
	for key, entry := range m.store {
		if oldestKey == "" || entry.lastAccess.Before(oldestAccess) {
			oldestKey = key
			oldestAccess = entry.lastAccess
		}
	}
	if oldestKey != "" {
		delete(m.store, oldestKey)
		m.stats.evictions++
		common.LogDebug("快取已淘汰(LRU)", zap.String("鍵", oldestKey))
	}
}

// GetStats 獲取緩存統計信息
func (m *CacheManager) GetStats() map[string]interface{} {
	if m == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	total := m.stats.hits + m.stats.misses
	hitRatio := 0.0
	if total > 0 {
		hitRatio = float64(m.stats.hits) / float64(total)
	}
	return map[string]interface{}{
		"size":      len(m.store),
		"max_size":  m.config.Cache.MaxSize,
		"hits":      m.stats.hits,
		"misses":    m.stats.misses,
		"evictions": m.stats.evictions,
		"hit_ratio": hitRatio,
	}
}

// Close 關閉緩存管理器
func (m *CacheManager) Close() error {
	if m == nil {
		return nil
	}
	if m.redis != nil {
		return m.redis.Close()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store = make(map[string]cacheEntry)
	common.LogInfo("快取管理員已關閉",
		zap.Int64("命中次數", m.stats.hits),
		zap.Int64("未命中次數", m.stats.misses),
	)
	return nil
}
