package port

import (
	"context"
	"time"

	"github.com/ttgrab/tiktok-dl-go/internal/model"
)

// DownloadRepository defines persistence operations for download history.
type DownloadRepository interface {
	// Create inserts a new record and fills in its generated ID.
	Create(ctx context.Context, rec *model.DownloadRecord) error
	// FindBulkRecord looks up an existing record for the exact
	// (user, video, batch) triple. Returns (nil, nil) when absent.
	FindBulkRecord(ctx context.Context, userID, videoID int64, batchID string) (*model.DownloadRecord, error)
	// FindRecentSingle looks up a single-type record for (user, video)
	// downloaded after the given instant. Returns (nil, nil) when absent.
	FindRecentSingle(ctx context.Context, userID, videoID int64, after time.Time) (*model.DownloadRecord, error)
	// ListBatchResults returns completed bulk records of a batch joined
	// with their videos, oldest first.
	ListBatchResults(ctx context.Context, batchID string) ([]model.HistoryEntry, error)
	ListUserHistory(ctx context.Context, userID int64, limit, offset int) ([]model.HistoryEntry, error)
	// UserStats aggregates a user's history; SuccessRate is left for the
	// caller to derive.
	UserStats(ctx context.Context, userID int64, recentSince time.Time) (model.DownloadStats, error)
}
