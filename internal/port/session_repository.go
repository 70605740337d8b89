package port

import (
	"context"
	"time"

	"github.com/ttgrab/tiktok-dl-go/internal/model"
)

// SessionUpdate is a partial update of a bulk session. Nil fields are left
// unchanged; last write wins per field.
type SessionUpdate struct {
	Status              *model.SessionStatus
	TotalVideos         *int
	ProcessedVideos     *int
	SuccessfulDownloads *int
	FailedDownloads     *int
	CompletedAt         *time.Time
}

// SessionRepository defines persistence operations for bulk sessions.
type SessionRepository interface {
	Create(ctx context.Context, sess *model.BulkSession) error
	// GetByBatchID returns (nil, nil) when no session matches.
	GetByBatchID(ctx context.Context, batchID string) (*model.BulkSession, error)
	Update(ctx context.Context, batchID string, upd SessionUpdate) error
	// ListStaleProcessing returns batch ids of sessions still in
	// processing whose last update predates the given instant.
	ListStaleProcessing(ctx context.Context, before time.Time) ([]string, error)
}
