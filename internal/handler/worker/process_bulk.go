package worker

import (
	"context"
	"log"

	"github.com/google/uuid"
	"github.com/ttgrab/tiktok-dl-go/internal/port"
	"github.com/ttgrab/tiktok-dl-go/internal/task"
)

// ProcessBulkHandler handles a process-bulk task. It converts the
// incoming task payload to the input expected by the BulkProcessor
// service and delegates the call.
func ProcessBulkHandler(ctx context.Context, p task.ProcessBulkPayload, svc port.BulkProcessor) error {
	if _, err := uuid.Parse(p.BatchID); err != nil {
		log.Printf("❌  Invalid batch ID %q: %v", p.BatchID, err)
		return err
	}

	in := port.ProcessBulkInput{BatchID: p.BatchID, UserID: p.UserID, URLs: p.URLs}
	if err := svc.ProcessBulk(ctx, in); err != nil {
		log.Printf("❌  Failed to process bulk batch %q: %v", p.BatchID, err)
		return err
	}

	log.Printf("✅  Finished bulk batch %q", p.BatchID)
	return nil
}
