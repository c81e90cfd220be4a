package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"meal-recommender/internal/core/ai"
	"meal-recommender/internal/infrastructure/config"
	"meal-recommender/internal/pkg/common"
	"meal-recommender/internal/pkg/metrics"

	"github.com/go-redis/redis/v8"
)

const backendRedis = "redis"

// Service Redis 快取，多個實例可共用
type Service struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

var _ ai.Cache = (*Service)(nil)

// NewService 連線 Redis 並創建緩存服務
func NewService(ctx context.Context, cacheCfg config.CacheConfig, redisCfg config.RedisConfig) (*Service, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     redisCfg.Addr,
		Password: redisCfg.Password,
		DB:       redisCfg.DB,
	})

	// 測試連接
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewServiceWithClient(client, redisCfg.KeyPrefix, cacheCfg.TTL), nil
}

// NewServiceWithClient 以既有的 client 創建緩存服務
func NewServiceWithClient(client *redis.Client, prefix string, ttl time.Duration) *Service {
	return &Service{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

// Get 獲取緩存
func (s *Service) Get(ctx context.Context, prompt string) (string, error) {
	value, err := s.client.Get(ctx, s.generateKey(prompt)).Result()
	if errors.Is(err, redis.Nil) {
		metrics.CacheLookupsTotal.WithLabelValues(backendRedis, "miss").Inc()
		common.LogCacheMiss(backendRedis)
		return "", common.ErrCacheMiss
	}
	if err != nil {
		metrics.CacheLookupsTotal.WithLabelValues(backendRedis, "error").Inc()
		return "", fmt.Errorf("failed to get cache: %w", err)
	}

	metrics.CacheLookupsTotal.WithLabelValues(backendRedis, "hit").Inc()
	common.LogCacheHit(backendRedis)
	return value, nil
}

// Set 設置緩存
func (s *Service) Set(ctx context.Context, prompt, value string) error {
	if err := s.client.Set(ctx, s.generateKey(prompt), value, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

// Close 關閉 Redis 連線
func (s *Service) Close() error {
	return s.client.Close()
}

// generateKey 生成緩存鍵
func (s *Service) generateKey(prompt string) string {
	return s.prefix + Key(prompt)
}
