package middleware

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/szolzol/humbug-quiz-sub000/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Limiter is the coarse per-client request ceiling at the boundary.
type Limiter interface {
	Allow(ctx context.Context, key string) bool
}

type MemoryLimiter struct {
	visitors map[string]*visitor
	mu       sync.Mutex
	rate     int // tokens refilled per interval
	burst    int
	interval time.Duration
}

type visitor struct {
	tokens      int
	lastUpdated time.Time
}

func NewMemoryLimiter(rate, burst int) *MemoryLimiter {
	return &MemoryLimiter{
		visitors: make(map[string]*visitor),
		rate:     rate,
		burst:    burst,
		interval: time.Minute,
	}
}

func (rl *MemoryLimiter) Allow(_ context.Context, key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[key]
	if !exists {
		v = &visitor{tokens: rl.burst, lastUpdated: time.Now()}
		rl.visitors[key] = v
	}

	now := time.Now()
	elapsed := now.Sub(v.lastUpdated)
	refill := int(elapsed / rl.interval)
	if refill > 0 {
		v.tokens += refill * rl.rate
		if v.tokens > rl.burst {
			v.tokens = rl.burst
		}
		v.lastUpdated = now
	}

	if v.tokens > 0 {
		v.tokens--
		return true
	}
	return false
}

// RedisLimiter is a fixed-window counter shared across server instances.
// The in-memory bucket does not survive horizontal scaling; point REDIS_ADDR
// at a shared instance when running more than one replica.
type RedisLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
}

func NewRedisLimiter(client *redis.Client, limit int) *RedisLimiter {
	return &RedisLimiter{client: client, limit: limit, window: time.Minute}
}

func (rl *RedisLimiter) Allow(ctx context.Context, key string) bool {
	bucket := fmt.Sprintf("ratelimit:%s:%d", key, time.Now().Unix()/int64(rl.window.Seconds()))
	count, err := rl.client.Incr(ctx, bucket).Result()
	if err != nil {
		// Fail open: a rate limiter outage must not take the game down.
		return true
	}
	if count == 1 {
		rl.client.Expire(ctx, bucket, rl.window)
	}
	return count <= int64(rl.limit)
}

func RateLimit(l Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !l.Allow(c.Request.Context(), ip) {
			metrics.RateLimiterRejections.WithLabelValues(ip).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"error":   "rate limit exceeded, try again later",
			})
			return
		}
		c.Next()
	}
}
