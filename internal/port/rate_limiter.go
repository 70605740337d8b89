package port

import "context"

// RateLimiter is a counter store with TTL semantics. Allow records one hit
// against the key's current window and reports whether the quota still
// holds.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}
