package download

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ttgrab/tiktok-dl-go/internal/logger"
	"github.com/ttgrab/tiktok-dl-go/internal/port"
)

type bulkResultsGetterSrv struct {
	sessions  port.SessionRepository
	downloads port.DownloadRepository
	cache     port.Cache
}

// compile-time check: *bulkResultsGetterSrv must satisfy port.BulkResultsGetter
var _ port.BulkResultsGetter = (*bulkResultsGetterSrv)(nil)

func NewBulkResultsGetter(sessions port.SessionRepository, downloads port.DownloadRepository, cache port.Cache) port.BulkResultsGetter {
	return &bulkResultsGetterSrv{sessions: sessions, downloads: downloads, cache: cache}
}

// GetBulkResults returns the completed downloads of a batch in input
// order. Terminal sessions are immutable, so their payload is cached.
func (s *bulkResultsGetterSrv) GetBulkResults(ctx context.Context, batchID string) (port.BulkResultsOutput, error) {
	if raw, err := s.cache.GetBulkResults(ctx, batchID); err != nil {
		logger.Warnf(ctx, "results cache read failed for batch %q: %v", batchID, err)
	} else if raw != nil {
		var out port.BulkResultsOutput
		if err := json.Unmarshal(raw, &out); err == nil {
			return out, nil
		}
		logger.Warnf(ctx, "discarding corrupt results cache entry for batch %q", batchID)
	}

	sess, err := s.sessions.GetByBatchID(ctx, batchID)
	if err != nil {
		return port.BulkResultsOutput{}, fmt.Errorf("fetching bulk session %q: %w", batchID, err)
	}
	if sess == nil {
		return port.BulkResultsOutput{}, fmt.Errorf("%w: %q", ErrSessionNotFound, batchID)
	}

	entries, err := s.downloads.ListBatchResults(ctx, batchID)
	if err != nil {
		return port.BulkResultsOutput{}, fmt.Errorf("fetching results of batch %q: %w", batchID, err)
	}

	out := port.BulkResultsOutput{
		BatchID: batchID,
		Status:  sess.Status,
		Results: entries,
	}

	if sess.Status.Terminal() {
		if raw, err := json.Marshal(out); err == nil {
			if err := s.cache.SetBulkResults(ctx, batchID, raw, ResultsCacheTTL); err != nil {
				logger.Warnf(ctx, "results cache write failed for batch %q: %v", batchID, err)
			}
		}
	}

	return out, nil
}
