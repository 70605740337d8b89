package download

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ttgrab/tiktok-dl-go/internal/logger"
	"github.com/ttgrab/tiktok-dl-go/internal/model"
	"github.com/ttgrab/tiktok-dl-go/internal/port"
)

// bulkProcessorSrv drives the sequential loop over a batch:
// pending → processing → {completed, failed}. One instance owns a batch id
// for the lifetime of its run; there is no concurrent writer to guard
// against.
type bulkProcessorSrv struct {
	resolver port.MetadataResolver
	videos   port.VideoRepository
	sessions port.SessionRepository
	rec      *recorder
	delay    time.Duration
	sleep    func(ctx context.Context, d time.Duration) error
	now      func() time.Time
}

// compile-time check: *bulkProcessorSrv must satisfy port.BulkProcessor
var _ port.BulkProcessor = (*bulkProcessorSrv)(nil)

// NewBulkProcessor constructs a BulkProcessor implementation. A
// non-positive delay falls back to DefaultBulkDelay; a nil now to
// time.Now.
func NewBulkProcessor(resolver port.MetadataResolver, videos port.VideoRepository, downloads port.DownloadRepository, sessions port.SessionRepository, delay time.Duration, now func() time.Time) port.BulkProcessor {
	if delay <= 0 {
		delay = DefaultBulkDelay
	}
	if now == nil {
		now = time.Now
	}
	return &bulkProcessorSrv{
		resolver: resolver,
		videos:   videos,
		sessions: sessions,
		rec:      newRecorder(downloads, now),
		delay:    delay,
		sleep:    ctxSleep,
		now:      now,
	}
}

// ProcessBulk runs the whole batch. Per-item failures are absorbed into
// the failed counter and never abort the loop; the only error returned to
// the caller is a session bootstrap failure, which means the batch never
// started.
func (s *bulkProcessorSrv) ProcessBulk(ctx context.Context, in port.ProcessBulkInput) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("bulk batch %q panicked during bootstrap: %v", in.BatchID, p)
			s.abandon(in.BatchID)
		}
	}()

	if err := validateBatchSize(in.URLs); err != nil {
		return err
	}

	processing := model.SessionStatusProcessing
	total := len(in.URLs)
	if err := s.sessions.Update(ctx, in.BatchID, port.SessionUpdate{
		Status:      &processing,
		TotalVideos: &total,
	}); err != nil {
		return fmt.Errorf("bulk session %q could not start: %w", in.BatchID, err)
	}

	var processed, successful, failed int
	runErr := func() (err error) {
		defer func() {
			if p := recover(); p != nil {
				err = fmt.Errorf("bulk run panicked: %v", p)
			}
		}()
		return s.run(ctx, in, &processed, &successful, &failed)
	}()

	s.finalise(in.BatchID, processed, successful, failed, runErr)
	return nil
}

// run is the per-item loop. Its counters are passed by reference so the
// terminal guard sees the true totals even when an error escapes.
func (s *bulkProcessorSrv) run(ctx context.Context, in port.ProcessBulkInput, processed, successful, failed *int) error {
	for i, raw := range in.URLs {
		if i > 0 {
			if err := s.sleep(ctx, s.delay); err != nil {
				return fmt.Errorf("bulk loop interrupted: %w", err)
			}
		}

		url := strings.TrimSpace(raw)
		if url == "" {
			continue
		}

		if err := s.processItem(ctx, in.UserID, in.BatchID, url); err != nil {
			*failed++
			logger.Warnf(ctx, "bulk item %d of batch %q failed (%s): %v", i, in.BatchID, url, err)
		} else {
			*successful++
		}
		*processed++

		// Persist after every item so progress is observable mid-run. A
		// failure here is the rare fatal case that marks the batch failed.
		if err := s.sessions.Update(ctx, in.BatchID, port.SessionUpdate{
			ProcessedVideos:     processed,
			SuccessfulDownloads: successful,
			FailedDownloads:     failed,
		}); err != nil {
			return fmt.Errorf("persisting progress of batch %q: %w", in.BatchID, err)
		}
	}

	return nil
}

func (s *bulkProcessorSrv) processItem(ctx context.Context, userID int64, batchID, url string) error {
	md, err := s.resolver.Resolve(ctx, url)
	if err != nil {
		return err
	}

	video, err := upsertVideo(ctx, s.videos, md)
	if err != nil {
		return err
	}

	if _, err := s.rec.record(ctx, userID, video.ID, model.DownloadTypeBulk, &batchID); err != nil {
		return err
	}

	return nil
}

// finalise persists the terminal state whether the loop finished normally
// or not, re-asserting the true totals to guard against lost partial
// updates. It deliberately uses a fresh context: the run's context may
// already be dead.
func (s *bulkProcessorSrv) finalise(batchID string, processed, successful, failed int, runErr error) {
	ctx := context.Background()

	status := model.SessionStatusCompleted
	if runErr != nil {
		status = model.SessionStatusFailed
		logger.Errorf(ctx, "bulk batch %q failed: %v", batchID, runErr)
	}

	completedAt := s.now()
	if err := s.sessions.Update(ctx, batchID, port.SessionUpdate{
		Status:              &status,
		ProcessedVideos:     &processed,
		SuccessfulDownloads: &successful,
		FailedDownloads:     &failed,
		CompletedAt:         &completedAt,
	}); err != nil {
		logger.Errorf(ctx, "could not persist terminal state of batch %q: %v", batchID, err)
		return
	}

	logger.Infof(ctx, "bulk batch %q finished as %q: %d processed, %d successful, %d failed",
		batchID, status, processed, successful, failed)
}

// abandon best-effort marks the session failed. The session store may be
// the component that just panicked, so a second panic is swallowed.
func (s *bulkProcessorSrv) abandon(batchID string) {
	defer func() { _ = recover() }()

	status := model.SessionStatusFailed
	completedAt := s.now()
	_ = s.sessions.Update(context.Background(), batchID, port.SessionUpdate{
		Status:      &status,
		CompletedAt: &completedAt,
	})
}

// ctxSleep waits for d or until the context is done, whichever comes
// first.
func ctxSleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
