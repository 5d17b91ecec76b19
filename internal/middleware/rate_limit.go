package middleware

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// LoginLimiter counts login attempts per client IP in fixed redis windows.
// A nil client disables limiting.
type LoginLimiter struct {
	client redis.Cmdable
	limit  int
	window time.Duration
}

// NewLoginLimiter creates a limiter allowing limit attempts per window
func NewLoginLimiter(client redis.Cmdable, limit int, window time.Duration) *LoginLimiter {
	return &LoginLimiter{
		client: client,
		limit:  limit,
		window: window,
	}
}

// Allow records an attempt for key and reports whether it is within the limit.
func (l *LoginLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if l == nil || l.client == nil {
		return true, nil
	}

	redisKey := fmt.Sprintf("login_attempts:%s", key)
	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return true, fmt.Errorf("failed to count login attempt: %w", err)
	}
	if count == 1 {
		if err := l.client.Expire(ctx, redisKey, l.window).Err(); err != nil {
			return true, fmt.Errorf("failed to set login window: %w", err)
		}
	}
	return count <= int64(l.limit), nil
}

// Middleware rejects POSTs over the limit with onLimited. Redis failures
// let the request through.
func (l *LoginLimiter) Middleware(onLimited gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := l.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			log.Printf("[%s] Login rate limit unavailable: %v", GetRequestID(c), err)
		}
		if !allowed {
			onLimited(c)
			c.Abort()
			return
		}
		c.Next()
	}
}
