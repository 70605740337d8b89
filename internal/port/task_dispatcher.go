package port

import "context"

// TaskDispatcher hands a bulk batch off for background processing.
type TaskDispatcher interface {
	EnqueueProcessBulk(ctx context.Context, in ProcessBulkInput) error
}
