package download

import (
	"context"
	"fmt"
	"time"

	"github.com/ttgrab/tiktok-dl-go/internal/model"
	"github.com/ttgrab/tiktok-dl-go/internal/port"
)

// recorder appends attribution records with duplicate suppression. Bulk
// duplicates are suppressed exactly and permanently within a batch;
// single duplicates only within a short trailing window, since a user may
// legitimately re-download the same video later.
type recorder struct {
	downloads port.DownloadRepository
	now       func() time.Time
}

func newRecorder(downloads port.DownloadRepository, now func() time.Time) *recorder {
	if now == nil {
		now = time.Now
	}
	return &recorder{downloads: downloads, now: now}
}

// record returns the id of the matching existing record when one is
// found, otherwise inserts a completed record and returns its id. It
// never fails on a duplicate.
func (r *recorder) record(ctx context.Context, userID, videoID int64, dlType model.DownloadType, batchID *string) (int64, error) {
	switch dlType {
	case model.DownloadTypeBulk:
		if batchID == nil {
			return 0, fmt.Errorf("bulk download record requires a batch id")
		}
		existing, err := r.downloads.FindBulkRecord(ctx, userID, videoID, *batchID)
		if err != nil {
			return 0, fmt.Errorf("checking for existing bulk record: %w", err)
		}
		if existing != nil {
			return existing.ID, nil
		}
	case model.DownloadTypeSingle:
		existing, err := r.downloads.FindRecentSingle(ctx, userID, videoID, r.now().Add(-SingleDupWindow))
		if err != nil {
			return 0, fmt.Errorf("checking for recent single record: %w", err)
		}
		if existing != nil {
			return existing.ID, nil
		}
	}

	rec := &model.DownloadRecord{
		UserID:       userID,
		VideoID:      videoID,
		DownloadType: dlType,
		BatchID:      batchID,
		Status:       model.DownloadStatusCompleted,
	}
	if err := r.downloads.Create(ctx, rec); err != nil {
		return 0, fmt.Errorf("creating download record: %w", err)
	}

	return rec.ID, nil
}
