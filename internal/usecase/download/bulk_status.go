package download

import (
	"context"
	"fmt"
	"time"

	"github.com/ttgrab/tiktok-dl-go/internal/logger"
	"github.com/ttgrab/tiktok-dl-go/internal/model"
	"github.com/ttgrab/tiktok-dl-go/internal/port"
)

type bulkStatusGetterSrv struct {
	sessions port.SessionRepository
	now      func() time.Time
}

// compile-time check: *bulkStatusGetterSrv must satisfy port.BulkStatusGetter
var _ port.BulkStatusGetter = (*bulkStatusGetterSrv)(nil)

func NewBulkStatusGetter(sessions port.SessionRepository, now func() time.Time) port.BulkStatusGetter {
	if now == nil {
		now = time.Now
	}
	return &bulkStatusGetterSrv{sessions: sessions, now: now}
}

func (s *bulkStatusGetterSrv) GetBulkStatus(ctx context.Context, batchID string) (port.BulkStatusOutput, error) {
	sess, err := s.sessions.GetByBatchID(ctx, batchID)
	if err != nil {
		return port.BulkStatusOutput{}, fmt.Errorf("fetching bulk session %q: %w", batchID, err)
	}
	if sess == nil {
		return port.BulkStatusOutput{}, fmt.Errorf("%w: %q", ErrSessionNotFound, batchID)
	}

	s.heal(ctx, sess)

	return port.BulkStatusOutput{
		BatchID:             sess.BatchID,
		Status:              sess.Status,
		TotalVideos:         sess.TotalVideos,
		ProcessedVideos:     sess.ProcessedVideos,
		SuccessfulDownloads: sess.SuccessfulDownloads,
		FailedDownloads:     sess.FailedDownloads,
		Progress:            sess.Progress(),
		CreatedAt:           sess.CreatedAt,
		CompletedAt:         sess.CompletedAt,
	}, nil
}

// heal applies the self-healing rule: a session whose counters show full
// completion but whose stored status lags behind in processing is
// reported, and persisted, as completed. Harmless to run on every read.
func (s *bulkStatusGetterSrv) heal(ctx context.Context, sess *model.BulkSession) {
	if sess.Status != model.SessionStatusProcessing || sess.TotalVideos == 0 || sess.ProcessedVideos < sess.TotalVideos {
		return
	}

	completed := model.SessionStatusCompleted
	completedAt := s.now()
	if err := s.sessions.Update(ctx, sess.BatchID, port.SessionUpdate{
		Status:      &completed,
		CompletedAt: &completedAt,
	}); err != nil {
		// Still report completed; the next poll will retry the write.
		logger.Warnf(ctx, "could not heal bulk session %q: %v", sess.BatchID, err)
	}

	sess.Status = completed
	sess.CompletedAt = &completedAt
}
