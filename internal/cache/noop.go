package cache

import (
	"context"
	"time"

	"github.com/ttgrab/tiktok-dl-go/internal/port"
)

type NoopCache struct{}

// compile-time check: *NoopCache must satisfy port.Cache
var _ port.Cache = (*NoopCache)(nil)

func NewNoop() *NoopCache {
	return &NoopCache{}
}

func (n *NoopCache) GetBulkResults(ctx context.Context, batchID string) ([]byte, error) {
	return nil, nil // always cache miss
}

func (n *NoopCache) SetBulkResults(ctx context.Context, batchID string, data []byte, ttl time.Duration) error {
	return nil
}
