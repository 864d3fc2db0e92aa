package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RateLimitConfig controls the fixed-window request limiter.
type RateLimitConfig struct {
	Enabled bool
	Limit   int
	Window  time.Duration
}

// RateLimitMiddleware enforces a per-client fixed-window limit backed by Redis.
// Over-limit requests get 429 with a Retry-After header. Redis errors fail
// open: the limiter must never take the API down with it.
func RateLimitMiddleware(cfg RateLimitConfig, rdb *redis.Client, log *zap.Logger) gin.HandlerFunc {
	if !cfg.Enabled || rdb == nil {
		return func(c *gin.Context) { c.Next() }
	}

	window := redis.NewScript(`
		local count = redis.call('INCR', KEYS[1])
		if count == 1 then
			redis.call('PEXPIRE', KEYS[1], ARGV[1])
		end
		local ttl = redis.call('PTTL', KEYS[1])
		return { count, ttl }
	`)

	return func(c *gin.Context) {
		key := "ratelimit:" + c.ClientIP() + ":" + c.FullPath()

		vals, err := window.Run(c.Request.Context(), rdb, []string{key}, cfg.Window.Milliseconds()).Slice()
		if err != nil || len(vals) != 2 {
			if err != nil {
				log.Warn("rate limiter redis error", zap.Error(err))
			}
			c.Next()
			return
		}

		count, _ := vals[0].(int64)
		ttlMs, _ := vals[1].(int64)

		remaining := int64(cfg.Limit) - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(cfg.Limit))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if count > int64(cfg.Limit) {
			retryAfter := (ttlMs + 999) / 1000
			c.Header("Retry-After", strconv.FormatInt(retryAfter, 10))
			c.AbortWithStatusJSON(429, gin.H{
				"success": false,
				"error":   "too many requests",
			})
			return
		}

		c.Next()
	}
}
