package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"go-portfolio-forms/internal/delivery/http/response"
	"go-portfolio-forms/pkg/logger"
	"go-portfolio-forms/pkg/redis"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
)

// RateLimitConfig is a fixed-window limit keyed by client IP.
type RateLimitConfig struct {
	Limit  int
	Window time.Duration
	Prefix string // counter key prefix, e.g. "rl:form:"
}

// PerIPRateLimitConfig allows limit requests per client IP in each window.
func PerIPRateLimitConfig(prefix string, limit int, window time.Duration) RateLimitConfig {
	if window <= 0 {
		window = time.Minute
	}
	return RateLimitConfig{Limit: limit, Window: window, Prefix: prefix}
}

// KEYS[1] = counter key, ARGV[1] = window in milliseconds.
// Returns {count, pttl}.
var incrWindowScript = goredis.NewScript(`
local n = redis.call('INCR', KEYS[1])
if n == 1 then
    redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
return {n, redis.call('PTTL', KEYS[1])}
`)

func incrRedis(ctx context.Context, client *goredis.Client, key string, window time.Duration) (int, time.Time, error) {
	res, err := incrWindowScript.Run(ctx, client, []string{key}, window.Milliseconds()).Int64Slice()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("rate limit script: %w", err)
	}
	if len(res) != 2 {
		return 0, time.Time{}, fmt.Errorf("rate limit script: unexpected reply %v", res)
	}
	ttl := time.Duration(res[1]) * time.Millisecond
	if ttl < 0 {
		ttl = window
	}
	return int(res[0]), time.Now().Add(ttl), nil
}

type windowCount struct {
	n       int
	resetAt time.Time
}

// memoryCounter is the per-process fallback used while Redis is absent or
// failing. Expired keys are swept on write, at most once per window.
type memoryCounter struct {
	mu        sync.Mutex
	counts    map[string]*windowCount
	nextSweep time.Time
}

func newMemoryCounter() *memoryCounter {
	return &memoryCounter{counts: make(map[string]*windowCount)}
}

func (m *memoryCounter) incr(key string, window time.Duration, now time.Time) (int, time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if now.After(m.nextSweep) {
		for k, wc := range m.counts {
			if now.After(wc.resetAt) {
				delete(m.counts, k)
			}
		}
		m.nextSweep = now.Add(window)
	}

	wc, ok := m.counts[key]
	if !ok || now.After(wc.resetAt) {
		wc = &windowCount{resetAt: now.Add(window)}
		m.counts[key] = wc
	}
	wc.n++
	return wc.n, wc.resetAt
}

func (m *memoryCounter) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.counts)
}

// RateLimitMiddleware rejects requests over cfg.Limit with 429. Counts live
// in Redis when the shared client is up, otherwise in memory. A Redis error
// falls back to memory rather than blocking visitors.
func RateLimitMiddleware(cfg RateLimitConfig) gin.HandlerFunc {
	fallback := newMemoryCounter()

	return func(c *gin.Context) {
		key := cfg.Prefix + c.ClientIP()

		var (
			count   int
			resetAt time.Time
			err     error
		)
		if client := redis.Client(); client != nil {
			count, resetAt, err = incrRedis(c.Request.Context(), client, key, cfg.Window)
			if err != nil {
				logger.Log.Errorw("rate limit backend failed, using memory",
					"request_id", c.GetString(RequestIDKey),
					"ip", c.ClientIP(),
					"error", err,
				)
			}
		}
		if count == 0 {
			count, resetAt = fallback.incr(key, cfg.Window, time.Now())
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(cfg.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(max(cfg.Limit-count, 0)))
		c.Header("X-RateLimit-Reset", resetAt.Format(time.RFC3339))

		if count > cfg.Limit {
			retryAfter := max(int(time.Until(resetAt).Seconds()), 1)
			c.Header("Retry-After", strconv.Itoa(retryAfter))

			logger.Log.Warnw("rate limit triggered",
				"request_id", c.GetString(RequestIDKey),
				"ip", c.ClientIP(),
				"route", c.FullPath(),
				"count", count,
			)
			response.Error(c, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}
