// Package idempotency remembers submission keys for a while so that a
// client retry of the same submission does not store it twice.
package idempotency

import (
	"context"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Guard claims keys. Claim returns false when the key was already claimed
// and has not expired. Release forgets a key so the submission can be
// retried after a failed write.
type Guard interface {
	Claim(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}

// RedisGuard stores claims as SET NX keys with a TTL.
type RedisGuard struct {
	client *goredis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisGuard(client *goredis.Client, prefix string, ttl time.Duration) *RedisGuard {
	return &RedisGuard{client: client, prefix: prefix, ttl: ttl}
}

func (g *RedisGuard) Claim(ctx context.Context, key string) (bool, error) {
	return g.client.SetNX(ctx, g.prefix+key, time.Now().Unix(), g.ttl).Result()
}

func (g *RedisGuard) Release(ctx context.Context, key string) error {
	return g.client.Del(ctx, g.prefix+key).Err()
}

// MemoryGuard is the single-process fallback used when Redis is absent.
type MemoryGuard struct {
	ttl time.Duration
	now func() time.Time

	mu   sync.Mutex
	keys map[string]time.Time // key -> expiry
}

func NewMemoryGuard(ttl time.Duration) *MemoryGuard {
	return &MemoryGuard{ttl: ttl, now: time.Now, keys: make(map[string]time.Time)}
}

func (g *MemoryGuard) Claim(_ context.Context, key string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	if exp, ok := g.keys[key]; ok && now.Before(exp) {
		return false, nil
	}
	g.keys[key] = now.Add(g.ttl)

	// Sweep expired entries while holding the lock; the map stays small.
	for k, exp := range g.keys {
		if !now.Before(exp) {
			delete(g.keys, k)
		}
	}
	return true, nil
}

func (g *MemoryGuard) Release(_ context.Context, key string) error {
	g.mu.Lock()
	delete(g.keys, key)
	g.mu.Unlock()
	return nil
}
