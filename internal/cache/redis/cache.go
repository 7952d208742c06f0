// Package redis provides a Redis-backed cache for multi-node deployments.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/prn-tf/hijri-users/internal/config"
	"github.com/prn-tf/hijri-users/internal/repository"
)

// NewClient creates a go-redis client from configuration and verifies the
// connection with PING.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:        cfg.Addr(),
		Password:    cfg.Password,
		DB:          cfg.DB,
		PoolSize:    cfg.PoolSize,
		DialTimeout: cfg.DialTimeout,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: failed to connect to redis: %v", repository.ErrCacheUnavailable, err)
	}

	return client, nil
}

// Cache implements repository.Cache on top of a go-redis client.
type Cache struct {
	client *goredis.Client
	logger zerolog.Logger
}

// NewCache wraps an existing client.
func NewCache(client *goredis.Client, logger zerolog.Logger) *Cache {
	return &Cache{
		client: client,
		logger: logger.With().Str("component", "redis_cache").Logger(),
	}
}

// Get retrieves a value by key. A missing key yields repository.ErrCacheMiss.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, repository.ErrCacheMiss
		}
		c.logger.Warn().Err(err).Str("key", key).Msg("cache get failed")
		return nil, fmt.Errorf("failed to get value from redis: %w", err)
	}
	return value, nil
}

// Set stores a value. A zero ttl means the value never expires.
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("cache set failed")
		return fmt.Errorf("failed to set value in redis: %w", err)
	}
	return nil
}

// Delete removes a value by key.
func (c *Cache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete value from redis: %w", err)
	}
	return nil
}

// Exists checks if a key exists.
func (c *Cache) Exists(ctx context.Context, key string) (bool, error) {
	n, err := c.client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check key in redis: %w", err)
	}
	return n > 0, nil
}

// Close closes the underlying client.
func (c *Cache) Close() error {
	return c.client.Close()
}

var _ repository.Cache = (*Cache)(nil)
