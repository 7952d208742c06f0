package repository

import (
	"context"
	"strconv"
	"time"
)

// Cache defines the interface for caching operations.
// Implemented in memory for single-node deployments and with Redis otherwise.
type Cache interface {
	// Get retrieves a value by key.
	// Returns ErrCacheMiss if the key doesn't exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with an optional TTL.
	// If ttl is 0, the value doesn't expire.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value by key.
	Delete(ctx context.Context, key string) error

	// Exists checks if a key exists.
	Exists(ctx context.Context, key string) (bool, error)
}

// CacheKey generates cache keys for common scenarios.
type CacheKey struct{}

// UserByID returns a cache key for a user record.
func (CacheKey) UserByID(id int64) string {
	return "cache:user:id:" + strconv.FormatInt(id, 10)
}
