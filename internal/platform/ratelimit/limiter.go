package ratelimit

import (
	"context"
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter answers whether a keyed action is still within its window budget.
type Limiter interface {
	Allow(ctx context.Context, key string) bool
}

// RedisLimiter is a fixed-window counter. It fails open: a store error never
// blocks a request.
type RedisLimiter struct {
	client   *redis.Client
	requests int
	window   time.Duration
}

func NewRedisLimiter(client *redis.Client, requests int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		client:   client,
		requests: requests,
		window:   window,
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) bool {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	// Hash the key for privacy
	hashed := fmt.Sprintf("ratelimit:%x", sha256.Sum256([]byte(key)))

	count, err := l.client.Incr(ctx, hashed).Result()
	if err != nil {
		return true
	}
	if count == 1 {
		l.client.Expire(ctx, hashed, l.window)
	}
	return count <= int64(l.requests)
}

// Unlimited never rejects. Used when no Redis client is configured.
type Unlimited struct{}

func (Unlimited) Allow(context.Context, string) bool { return true }
