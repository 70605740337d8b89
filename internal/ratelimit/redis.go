package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/ttgrab/tiktok-dl-go/internal/port"
)

// Limiter counts hits per key in Redis with a fixed one-second window.
// The first hit of a window creates the key with a TTL; the window
// resets when the key expires.
type Limiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
}

// compile-time check: *Limiter must satisfy port.RateLimiter
var _ port.RateLimiter = (*Limiter)(nil)

func NewLimiter(addr, password string, perSecond int64) *Limiter {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	return &Limiter{client: rdb, limit: perSecond, window: time.Second}
}

func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	n, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("redis incr failed: %w", err)
	}
	if n == 1 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			return false, fmt.Errorf("redis expire failed: %w", err)
		}
	}
	return n <= l.limit, nil
}

func (l *Limiter) Close() error {
	return l.client.Close()
}
