package download

import (
	"context"
	"fmt"

	"github.com/ttgrab/tiktok-dl-go/internal/logger"
	"github.com/ttgrab/tiktok-dl-go/internal/model"
	"github.com/ttgrab/tiktok-dl-go/internal/port"
)

type bulkStarterSrv struct {
	sessions port.SessionRepository
	tasks    port.TaskDispatcher
	genID    port.BatchIDGen
}

// compile-time check: *bulkStarterSrv must satisfy port.BulkStarter
var _ port.BulkStarter = (*bulkStarterSrv)(nil)

func NewBulkStarter(sessions port.SessionRepository, tasks port.TaskDispatcher, genID port.BatchIDGen) port.BulkStarter {
	return &bulkStarterSrv{sessions: sessions, tasks: tasks, genID: genID}
}

// StartBulk validates the batch size, creates a pending session and hands
// the batch off to the task runner. It returns as soon as the session
// exists; processing happens in the background.
func (s *bulkStarterSrv) StartBulk(ctx context.Context, in port.StartBulkInput) (port.StartBulkOutput, error) {
	if err := validateBatchSize(in.URLs); err != nil {
		return port.StartBulkOutput{}, err
	}

	sess := &model.BulkSession{
		BatchID:     s.genID(),
		UserID:      in.UserID,
		Status:      model.SessionStatusPending,
		TotalVideos: len(in.URLs),
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return port.StartBulkOutput{}, fmt.Errorf("creating bulk session: %w", err)
	}

	if err := s.tasks.EnqueueProcessBulk(ctx, port.ProcessBulkInput{
		BatchID: sess.BatchID,
		UserID:  in.UserID,
		URLs:    in.URLs,
	}); err != nil {
		return port.StartBulkOutput{}, fmt.Errorf("enqueueing bulk batch %q: %w", sess.BatchID, err)
	}

	logger.Infof(ctx, "bulk session %q accepted with %d urls", sess.BatchID, len(in.URLs))

	return port.StartBulkOutput{BatchID: sess.BatchID, TotalVideos: len(in.URLs)}, nil
}

func validateBatchSize(urls []string) error {
	if len(urls) == 0 {
		return ErrEmptyBatch
	}
	if len(urls) > MaxBatchSize {
		return fmt.Errorf("%w: got %d, max %d", ErrBatchTooLarge, len(urls), MaxBatchSize)
	}
	return nil
}
