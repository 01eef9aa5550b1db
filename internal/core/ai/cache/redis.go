package cache

import (
	"context"
	"fmt"

	"fridge-chef/internal/infrastructure/config"

	"github.com/go-redis/redis/v8"
)

// RedisStore Redis 緩存後端
type RedisStore struct {
	client *redis.Client
	config *config.Config
}

// NewRedisStore 創建 Redis 緩存後端
func NewRedisStore(cfg *config.Config) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.Cache.RedisAddr,
	})

	// 測試連接
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStore{
		client: client,
		config: cfg,
	}, nil
}

// Get 獲取緩存
func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", fmt.Errorf("cache miss")
		}
		return "", fmt.Errorf("failed to get cache: %w", err)
	}
	return value, nil
}

// Set 設置緩存
func (s *RedisStore) Set(ctx context.Context, key string, value string) error {
	if err := s.client.Set(ctx, key, value, s.config.Cache.TTL).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

// Close 關閉連接
func (s *RedisStore) Close() error {
	return s.client.Close()
}
