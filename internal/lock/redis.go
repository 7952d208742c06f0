package lock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

// releaseScript deletes the key only when it still holds our token.
var releaseScript = goredis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker implements Locker with SET NX PX on a shared Redis.
// Each acquired key stores a random token so that one instance cannot
// release a lock taken over by another after expiry.
type RedisLocker struct {
	client *goredis.Client

	mu     sync.Mutex
	tokens map[string]string
}

// NewRedisLocker creates a RedisLocker on an existing client.
func NewRedisLocker(client *goredis.Client) *RedisLocker {
	return &RedisLocker{
		client: client,
		tokens: make(map[string]string),
	}
}

// Acquire attempts to acquire a lock.
func (l *RedisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire lock %q: %w", key, err)
	}
	if !ok {
		return false, nil
	}

	l.mu.Lock()
	l.tokens[key] = token
	l.mu.Unlock()
	return true, nil
}

// AcquireWithRetry attempts to acquire a lock with retries.
func (l *RedisLocker) AcquireWithRetry(ctx context.Context, key string, ttl time.Duration, maxRetries int, retryDelay time.Duration) (bool, error) {
	return retry(ctx, maxRetries, retryDelay, func() (bool, error) {
		return l.Acquire(ctx, key, ttl)
	})
}

// Release releases a lock previously acquired by this locker.
func (l *RedisLocker) Release(ctx context.Context, key string) (bool, error) {
	l.mu.Lock()
	token, ok := l.tokens[key]
	delete(l.tokens, key)
	l.mu.Unlock()

	if !ok {
		return false, nil
	}

	n, err := releaseScript.Run(ctx, l.client, []string{key}, token).Int()
	if err != nil {
		return false, fmt.Errorf("failed to release lock %q: %w", key, err)
	}
	return n == 1, nil
}

// IsHeld checks if the lock is currently held.
func (l *RedisLocker) IsHeld(ctx context.Context, key string) (bool, error) {
	n, err := l.client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check lock %q: %w", key, err)
	}
	return n > 0, nil
}

var _ Locker = (*RedisLocker)(nil)
