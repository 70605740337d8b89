package port

import (
	"context"
	"time"

	"github.com/ttgrab/tiktok-dl-go/internal/model"
)

// BatchIDGen produces a fresh unique batch id.
type BatchIDGen func() string

// SingleDownloader runs the resolve/upsert/record pipeline once,
// synchronously.
type SingleDownloader interface {
	DownloadSingle(ctx context.Context, in DownloadSingleInput) (DownloadSingleOutput, error)
}
type DownloadSingleInput struct {
	UserID int64
	URL    string
}
type DownloadURLs struct {
	HD        string `json:"hd"`
	Watermark string `json:"watermark"`
}
type DownloadSingleOutput struct {
	Video        model.VideoSummary `json:"video"`
	DownloadURLs DownloadURLs       `json:"download_urls"`
}

// BulkStarter validates a batch, creates its session and hands it off to
// the task runner without waiting for completion.
type BulkStarter interface {
	StartBulk(ctx context.Context, in StartBulkInput) (StartBulkOutput, error)
}
type StartBulkInput struct {
	UserID int64
	URLs   []string
}
type StartBulkOutput struct {
	BatchID     string `json:"batch_id"`
	TotalVideos int    `json:"total_videos"`
}

// BulkProcessor drives the sequential processing loop of one batch. It is
// the sole writer of the session's progress fields during a run.
type BulkProcessor interface {
	ProcessBulk(ctx context.Context, in ProcessBulkInput) error
}
type ProcessBulkInput struct {
	BatchID string
	UserID  int64
	URLs    []string
}

// BulkStatusGetter reads a session and derives its pollable view.
type BulkStatusGetter interface {
	GetBulkStatus(ctx context.Context, batchID string) (BulkStatusOutput, error)
}
type BulkStatusOutput struct {
	BatchID             string              `json:"batch_id"`
	Status              model.SessionStatus `json:"status"`
	TotalVideos         int                 `json:"total_videos"`
	ProcessedVideos     int                 `json:"processed_videos"`
	SuccessfulDownloads int                 `json:"successful_downloads"`
	FailedDownloads     int                 `json:"failed_downloads"`
	Progress            int                 `json:"progress"`
	CreatedAt           time.Time           `json:"created_at"`
	CompletedAt         *time.Time          `json:"completed_at,omitempty"`
}

// BulkResultsGetter returns the completed downloads of a batch.
type BulkResultsGetter interface {
	GetBulkResults(ctx context.Context, batchID string) (BulkResultsOutput, error)
}
type BulkResultsOutput struct {
	BatchID string               `json:"batch_id"`
	Status  model.SessionStatus  `json:"status"`
	Results []model.HistoryEntry `json:"results"`
}

// HistoryGetter lists a user's download history, most recent first.
type HistoryGetter interface {
	GetHistory(ctx context.Context, in HistoryInput) ([]model.HistoryEntry, error)
}
type HistoryInput struct {
	UserID int64
	Limit  int
	Offset int
}

// StatsGetter aggregates a user's download history.
type StatsGetter interface {
	GetStats(ctx context.Context, userID int64) (model.DownloadStats, error)
}

// SessionReaper marks stale processing sessions as failed. Run as a
// one-shot command, not by the polling path.
type SessionReaper interface {
	ReapStaleSessions(ctx context.Context) (int, error)
}
