// Package memory provides an in-memory cache implementation.
// This is suitable for single-node deployments where Redis is not available.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/prn-tf/hijri-users/internal/repository"
)

// DefaultCleanupInterval is how often expired entries are purged.
const DefaultCleanupInterval = time.Minute

// Cache implements repository.Cache using in-memory storage.
// This is NOT suitable for distributed deployments.
type Cache struct {
	mu      sync.RWMutex
	items   map[string]*cacheItem
	stopCh  chan struct{}
	stopped bool
}

type cacheItem struct {
	value     []byte
	expiresAt time.Time
	noExpiry  bool
}

func (i *cacheItem) isExpired(now time.Time) bool {
	if i.noExpiry {
		return false
	}
	return now.After(i.expiresAt)
}

// NewCache creates a new in-memory cache that purges expired entries every
// cleanupInterval. A non-positive interval uses DefaultCleanupInterval.
func NewCache(cleanupInterval time.Duration) *Cache {
	if cleanupInterval <= 0 {
		cleanupInterval = DefaultCleanupInterval
	}

	c := &Cache{
		items:  make(map[string]*cacheItem),
		stopCh: make(chan struct{}),
	}

	go c.cleanupLoop(cleanupInterval)

	return c
}

func (c *Cache) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.cleanup()
		}
	}
}

func (c *Cache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for key, item := range c.items {
		if item.isExpired(now) {
			delete(c.items, key)
		}
	}
}

// Stop stops the cleanup goroutine. It is safe to call more than once.
func (c *Cache) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.stopped {
		close(c.stopCh)
		c.stopped = true
	}
}

// Close implements io.Closer.
func (c *Cache) Close() error {
	c.Stop()
	return nil
}

// Len returns the number of stored entries, expired ones included.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Get retrieves a value by key.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, exists := c.items[key]
	if !exists || item.isExpired(time.Now()) {
		return nil, repository.ErrCacheMiss
	}

	// Return a copy to prevent mutation.
	result := make([]byte, len(item.value))
	copy(result, item.value)
	return result, nil
}

// Set stores a value. A zero ttl means the value never expires.
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)

	item := &cacheItem{value: valueCopy}
	if ttl > 0 {
		item.expiresAt = time.Now().Add(ttl)
	} else {
		item.noExpiry = true
	}

	c.mu.Lock()
	c.items[key] = item
	c.mu.Unlock()
	return nil
}

// Delete removes a value by key.
func (c *Cache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.items, key)
	return nil
}

// Exists checks if a key exists.
func (c *Cache) Exists(ctx context.Context, key string) (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, exists := c.items[key]
	if !exists {
		return false, nil
	}

	return !item.isExpired(time.Now()), nil
}

var _ repository.Cache = (*Cache)(nil)
