package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimitConfig defines configuration for rate limiting
type RateLimitConfig struct {
	// Window is the time window for rate limiting
	Window time.Duration
	// Limit is the maximum number of requests allowed in the window
	Limit int
	// KeyPrefix for Redis keys
	KeyPrefix string
}

// RateLimiter throttles requests per client IP using Redis. Applied to the
// login endpoint to slow credential guessing.
type RateLimiter struct {
	redis  *redis.Client
	config RateLimitConfig
}

// NewRateLimiter creates a new rate limiter instance
func NewRateLimiter(redisClient *redis.Client, config RateLimitConfig) *RateLimiter {
	if config.Window <= 0 {
		config.Window = time.Minute
	}
	if config.Limit <= 0 {
		config.Limit = 10
	}
	if config.KeyPrefix == "" {
		config.KeyPrefix = "ratelimit"
	}
	return &RateLimiter{redis: redisClient, config: config}
}

// RateLimitMiddleware returns a Gin middleware that enforces rate limiting
// by client IP.
func (rl *RateLimiter) RateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, remaining, resetTime, err := rl.IsAllowed(c.Request.Context(), c.ClientIP())
		if err != nil {
			// Redis being down must not take logins with it.
			c.Header("X-RateLimit-Error", "rate limit check failed")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.config.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

		if !allowed {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// IsAllowed counts a request against the caller's window and reports
// whether it fits.
func (rl *RateLimiter) IsAllowed(ctx context.Context, key string) (bool, int, time.Time, error) {
	redisKey := fmt.Sprintf("%s:%s", rl.config.KeyPrefix, key)

	count, err := rl.redis.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, 0, time.Time{}, err
	}
	if count == 1 {
		if err := rl.redis.Expire(ctx, redisKey, rl.config.Window).Err(); err != nil {
			return false, 0, time.Time{}, err
		}
	}

	ttl, err := rl.redis.TTL(ctx, redisKey).Result()
	if err != nil {
		return false, 0, time.Time{}, err
	}

	remaining := rl.config.Limit - int(count)
	if remaining < 0 {
		remaining = 0
	}
	return count <= int64(rl.config.Limit), remaining, time.Now().Add(ttl), nil
}
