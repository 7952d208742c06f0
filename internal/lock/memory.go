package lock

import (
	"context"
	"sync"
	"time"
)

// MemoryLocker implements Locker using in-memory locks.
// The locks are NOT shared across process restarts or multiple instances.
type MemoryLocker struct {
	mu    sync.Mutex
	locks map[string]time.Time
}

// NewMemoryLocker creates a new in-memory locker. Expired entries are
// replaced lazily on the next Acquire.
func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{
		locks: make(map[string]time.Time),
	}
}

// Acquire attempts to acquire a lock.
func (m *MemoryLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	if expiresAt, exists := m.locks[key]; exists && now.Before(expiresAt) {
		return false, nil
	}

	m.locks[key] = now.Add(ttl)
	return true, nil
}

// AcquireWithRetry attempts to acquire a lock with retries.
func (m *MemoryLocker) AcquireWithRetry(ctx context.Context, key string, ttl time.Duration, maxRetries int, retryDelay time.Duration) (bool, error) {
	return retry(ctx, maxRetries, retryDelay, func() (bool, error) {
		return m.Acquire(ctx, key, ttl)
	})
}

// Release releases a lock.
func (m *MemoryLocker) Release(ctx context.Context, key string) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.locks[key]; exists {
		delete(m.locks, key)
		return true, nil
	}

	return false, nil
}

// IsHeld checks if a lock is currently held.
func (m *MemoryLocker) IsHeld(ctx context.Context, key string) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	expiresAt, exists := m.locks[key]
	if !exists {
		return false, nil
	}
	if time.Now().After(expiresAt) {
		delete(m.locks, key)
		return false, nil
	}

	return true, nil
}

var _ Locker = (*MemoryLocker)(nil)
