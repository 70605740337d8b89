package download

import "time"

// MaxBatchSize is the hard cap on URLs accepted in one bulk request.
const MaxBatchSize = 100

// DefaultBulkDelay throttles outbound provider calls between bulk items.
// It is a politeness measure for the provider's rate limit, not a
// correctness requirement.
const DefaultBulkDelay = 500 * time.Millisecond

// SingleDupWindow is the trailing window within which a repeated single
// download of the same video by the same user is treated as already
// recorded.
const SingleDupWindow = time.Minute

// ResultsCacheTTL bounds how long the results payload of a terminal
// session stays cached.
const ResultsCacheTTL = 10 * time.Minute

// StatsRecentWindow is the lookback used for the "recent downloads"
// figure in user stats.
const StatsRecentWindow = 24 * time.Hour
