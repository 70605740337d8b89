package model

import (
	"math"
	"time"
)

type SessionStatus string

const (
	SessionStatusPending    SessionStatus = "pending"
	SessionStatusProcessing SessionStatus = "processing"
	SessionStatusCompleted  SessionStatus = "completed"
	SessionStatusFailed     SessionStatus = "failed"
)

// Terminal reports whether no further status transitions can occur.
func (s SessionStatus) Terminal() bool {
	return s == SessionStatusCompleted || s == SessionStatusFailed
}

// BulkSession tracks one batch request's progress end-to-end.
//
// Invariants maintained by the processing loop: ProcessedVideos never
// exceeds TotalVideos, SuccessfulDownloads+FailedDownloads always equals
// ProcessedVideos, and Status only moves forward
// (pending → processing → completed|failed).
type BulkSession struct {
	BatchID             string        `json:"batch_id"`
	UserID              int64         `json:"user_id"`
	Status              SessionStatus `json:"status"`
	TotalVideos         int           `json:"total_videos"`
	ProcessedVideos     int           `json:"processed_videos"`
	SuccessfulDownloads int           `json:"successful_downloads"`
	FailedDownloads     int           `json:"failed_downloads"`
	CreatedAt           time.Time     `json:"created_at"`
	UpdatedAt           time.Time     `json:"updated_at"`
	CompletedAt         *time.Time    `json:"completed_at,omitempty"`
}

// Progress returns the completion percentage as an integer between 0 and
// 100. A session with no videos reports 0.
func (s *BulkSession) Progress() int {
	if s.TotalVideos <= 0 {
		return 0
	}
	return int(math.Round(float64(s.ProcessedVideos) / float64(s.TotalVideos) * 100))
}
