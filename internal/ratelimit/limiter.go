package ratelimit

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const keyPrefix = "login_attempts:"

// LoginLimiter throttles repeated login attempts per account using a
// fixed window counter in Redis. It fails open: a Redis outage must not
// lock users out of authentication.
type LoginLimiter struct {
	client      *redis.Client
	maxAttempts int
	window      time.Duration
	log         *zap.Logger
}

// NewLoginLimiter builds the limiter.
func NewLoginLimiter(client *redis.Client, maxAttempts int, window time.Duration, logger *zap.Logger) *LoginLimiter {
	if maxAttempts <= 0 {
		maxAttempts = 10
	}
	if window <= 0 {
		window = time.Minute
	}
	return &LoginLimiter{client: client, maxAttempts: maxAttempts, window: window, log: logger}
}

// Allow records one attempt for the key and reports whether it is within
// the window budget.
func (l *LoginLimiter) Allow(ctx context.Context, key string) bool {
	redisKey := keyPrefix + strings.ToLower(strings.TrimSpace(key))

	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		l.log.Warn("rate limiter unavailable, allowing request", zap.Error(err))
		return true
	}
	if count == 1 {
		if err := l.client.Expire(ctx, redisKey, l.window).Err(); err != nil {
			l.log.Warn("rate limiter expire failed", zap.Error(err))
		}
	}

	return count <= int64(l.maxAttempts)
}
