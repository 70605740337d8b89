package port

import (
	"context"
	"time"
)

// Cache stores the JSON results payload of terminal bulk sessions.
type Cache interface {
	// GetBulkResults returns (nil, nil) on a cache miss.
	GetBulkResults(ctx context.Context, batchID string) ([]byte, error)
	SetBulkResults(ctx context.Context, batchID string, data []byte, ttl time.Duration) error
}
