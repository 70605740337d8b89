package task

import (
	"context"

	"github.com/ttgrab/tiktok-dl-go/internal/logger"
	"github.com/ttgrab/tiktok-dl-go/internal/port"
)

// InlineDispatcher runs batches in a goroutine of the API process
// instead of handing them to a worker. Used when no Redis address is
// configured; single-instance deployments lose nothing but crash
// recovery.
type InlineDispatcher struct {
	processor port.BulkProcessor
}

// compile-time check: *InlineDispatcher must satisfy port.TaskDispatcher
var _ port.TaskDispatcher = (*InlineDispatcher)(nil)

func NewInlineDispatcher(processor port.BulkProcessor) *InlineDispatcher {
	return &InlineDispatcher{processor: processor}
}

func (d *InlineDispatcher) EnqueueProcessBulk(ctx context.Context, in port.ProcessBulkInput) error {
	// Detached from the request context on purpose: the batch must keep
	// running after the 202 response is written.
	go func() {
		bg := context.Background()
		defer func() {
			if p := recover(); p != nil {
				logger.Errorf(bg, "inline bulk run %q panicked: %v", in.BatchID, p)
			}
		}()
		if err := d.processor.ProcessBulk(bg, in); err != nil {
			logger.Errorf(bg, "inline bulk run %q failed: %v", in.BatchID, err)
		}
	}()
	return nil
}
