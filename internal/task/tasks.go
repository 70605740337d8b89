package task

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/ttgrab/tiktok-dl-go/internal/port"
)

const TypeProcessBulk = "bulk:process"

type ProcessBulkPayload struct {
	BatchID string   `json:"batch_id"`
	UserID  int64    `json:"user_id"`
	URLs    []string `json:"urls"`
}

// NewProcessBulkTask creates an Asynq task carrying one bulk batch. The
// task must never be retried: the session's status is forward-only, so a
// second run against a terminal session would be a no-op at best.
func NewProcessBulkTask(in port.ProcessBulkInput) (*asynq.Task, error) {
	p := ProcessBulkPayload{BatchID: in.BatchID, UserID: in.UserID, URLs: in.URLs}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("could not marshal process-bulk payload: %w", err)
	}
	return asynq.NewTask(TypeProcessBulk, data, asynq.MaxRetry(0)), nil
}

// ParseProcessBulkPayload parses the task payload to ProcessBulkPayload.
func ParseProcessBulkPayload(t *asynq.Task) (ProcessBulkPayload, error) {
	var p ProcessBulkPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return ProcessBulkPayload{}, fmt.Errorf("could not unmarshal payload: %w", err)
	}
	return p, nil
}
