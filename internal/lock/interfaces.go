// Package lock provides distributed and local locking abstractions.
// For single-node deployments, memory-based locks are used.
// For distributed deployments, Redis-based locks can be used.
package lock

import (
	"context"
	"time"
)

// Locker defines the interface for distributed/local locking.
type Locker interface {
	// Acquire attempts to acquire a lock.
	// Returns true if the lock was acquired, false if it's held by another process.
	// The lock will automatically expire after the specified TTL.
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// AcquireWithRetry attempts to acquire a lock with retries.
	// Will retry up to maxRetries times with retryDelay between attempts.
	AcquireWithRetry(ctx context.Context, key string, ttl time.Duration, maxRetries int, retryDelay time.Duration) (bool, error)

	// Release releases a lock held by this locker.
	// Returns true if the lock was released, false if it wasn't held.
	Release(ctx context.Context, key string) (bool, error)

	// IsHeld checks if the lock is currently held by anyone.
	IsHeld(ctx context.Context, key string) (bool, error)
}

// Lock is a convenience wrapper for a specific lock instance.
type Lock struct {
	locker Locker
	key    string
	held   bool
}

// NewLock creates a new Lock instance.
func NewLock(locker Locker, key string) *Lock {
	return &Lock{
		locker: locker,
		key:    key,
	}
}

// Acquire attempts to acquire the lock, retrying up to maxRetries times.
func (l *Lock) Acquire(ctx context.Context, ttl time.Duration, maxRetries int, retryDelay time.Duration) (bool, error) {
	acquired, err := l.locker.AcquireWithRetry(ctx, l.key, ttl, maxRetries, retryDelay)
	if err != nil {
		return false, err
	}
	l.held = acquired
	return acquired, nil
}

// Release releases the lock.
func (l *Lock) Release(ctx context.Context) error {
	if !l.held {
		return nil
	}
	_, err := l.locker.Release(ctx, l.key)
	l.held = false
	return err
}

// IsHeld returns whether the lock is held.
func (l *Lock) IsHeld() bool {
	return l.held
}

// Keys provides lock key generation for common scenarios.
var Keys = lockKeys{}

type lockKeys struct{}

// Seed returns the lock key guarding the initial user seed so that only one
// instance loads the demo users.
func (lockKeys) Seed() string {
	return "lock:seed:users"
}

// retry runs acquire until it succeeds, fails, or maxRetries is exhausted.
func retry(ctx context.Context, maxRetries int, retryDelay time.Duration, acquire func() (bool, error)) (bool, error) {
	for i := 0; i <= maxRetries; i++ {
		acquired, err := acquire()
		if err != nil {
			return false, err
		}
		if acquired {
			return true, nil
		}

		if i < maxRetries {
			select {
			case <-ctx.Done():
				return false, ctx.Err()
			case <-time.After(retryDelay):
			}
		}
	}
	return false, nil
}
