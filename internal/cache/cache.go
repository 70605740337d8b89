package cache

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/ttgrab/tiktok-dl-go/internal/port"
)

type Cache struct {
	client *redis.Client
}

// compile-time check: *Cache must satisfy port.Cache
var _ port.Cache = (*Cache)(nil)

func NewCache(addr, password string) *Cache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	return &Cache{client: rdb}
}

func (c *Cache) GetBulkResults(ctx context.Context, batchID string) ([]byte, error) {
	log.Printf("getting cached results for batch #%s...", batchID)

	val, err := c.client.Get(ctx, getCacheKey(batchID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil // cache miss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}
	return val, nil
}

func (c *Cache) SetBulkResults(ctx context.Context, batchID string, data []byte, ttl time.Duration) error {
	log.Printf("caching results for batch #%s for %s...", batchID, ttl)

	if err := c.client.Set(ctx, getCacheKey(batchID), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *Cache) Close() error {
	return c.client.Close()
}

func getCacheKey(batchID string) string {
	return "bulk_results:" + batchID
}
