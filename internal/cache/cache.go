// Package cache 提供别名解析结果的缓存, 优先使用 Redis, 未配置时使用进程内缓存
package cache

import (
	"context"
	"errors"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

// KeyPrefix 短链缓存键前缀
const KeyPrefix = "shortlink:"

// Cache 字符串缓存
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// RedisCache 基于 Redis 的缓存
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := c.client.Get(ctx, KeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key, value string) error {
	return c.client.Set(ctx, KeyPrefix+key, value, c.ttl).Err()
}

// MemoryCache 进程内缓存
type MemoryCache struct {
	items *gocache.Cache
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{items: gocache.New(ttl, 2*ttl)}
}

func (c *MemoryCache) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := c.items.Get(KeyPrefix + key)
	if !ok {
		return "", false, nil
	}
	return v.(string), true, nil
}

func (c *MemoryCache) Set(_ context.Context, key, value string) error {
	c.items.SetDefault(KeyPrefix+key, value)
	return nil
}

// New 根据是否有 Redis 客户端选择实现
func New(client *redis.Client, ttl time.Duration) Cache {
	if client != nil {
		return NewRedisCache(client, ttl)
	}
	return NewMemoryCache(ttl)
}
