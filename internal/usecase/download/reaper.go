package download

import (
	"context"
	"fmt"
	"time"

	"github.com/ttgrab/tiktok-dl-go/internal/logger"
	"github.com/ttgrab/tiktok-dl-go/internal/model"
	"github.com/ttgrab/tiktok-dl-go/internal/port"
)

type sessionReaperSrv struct {
	sessions   port.SessionRepository
	staleAfter time.Duration
	now        func() time.Time
}

// compile-time check: *sessionReaperSrv must satisfy port.SessionReaper
var _ port.SessionReaper = (*sessionReaperSrv)(nil)

// NewSessionReaper constructs a SessionReaper implementation. Sessions
// still in processing with no update for staleAfter are considered
// stranded by a crashed run.
func NewSessionReaper(sessions port.SessionRepository, staleAfter time.Duration, now func() time.Time) port.SessionReaper {
	if now == nil {
		now = time.Now
	}
	return &sessionReaperSrv{sessions: sessions, staleAfter: staleAfter, now: now}
}

// ReapStaleSessions marks stranded sessions as failed and returns how
// many were reaped. Progress counters are left as-is for diagnostics.
func (s *sessionReaperSrv) ReapStaleSessions(ctx context.Context) (int, error) {
	cutoff := s.now().Add(-s.staleAfter)
	ids, err := s.sessions.ListStaleProcessing(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("listing stale sessions: %w", err)
	}

	if len(ids) == 0 {
		logger.Info(ctx, "no stale bulk sessions found")
		return 0, nil
	}

	failed := model.SessionStatusFailed
	reaped := 0
	for _, id := range ids {
		completedAt := s.now()
		if err := s.sessions.Update(ctx, id, port.SessionUpdate{
			Status:      &failed,
			CompletedAt: &completedAt,
		}); err != nil {
			logger.Warnf(ctx, "could not reap bulk session %q: %v", id, err)
			continue
		}
		logger.Infof(ctx, "reaped stale bulk session %q", id)
		reaped++
	}

	return reaped, nil
}
