package model

import "time"

type DownloadType string

const (
	DownloadTypeSingle DownloadType = "single"
	DownloadTypeBulk   DownloadType = "bulk"
)

type DownloadStatus string

const (
	DownloadStatusPending   DownloadStatus = "pending"
	DownloadStatusCompleted DownloadStatus = "completed"
	DownloadStatusFailed    DownloadStatus = "failed"
)

// DownloadRecord attributes one download event to a user. BatchID is set
// only for bulk downloads.
type DownloadRecord struct {
	ID           int64          `json:"id"`
	UserID       int64          `json:"user_id"`
	VideoID      int64          `json:"video_id"`
	DownloadType DownloadType   `json:"download_type"`
	BatchID      *string        `json:"batch_id,omitempty"`
	Status       DownloadStatus `json:"status"`
	ErrorMessage *string        `json:"error_message,omitempty"`
	DownloadedAt time.Time      `json:"downloaded_at"`
}

// HistoryEntry is a download record joined with its video summary, as
// returned by the history and bulk-results queries.
type HistoryEntry struct {
	RecordID     int64        `json:"record_id"`
	DownloadType DownloadType `json:"download_type"`
	BatchID      *string      `json:"batch_id,omitempty"`
	DownloadedAt time.Time    `json:"downloaded_at"`
	Video        VideoSummary `json:"video"`
}

// DownloadStats aggregates a user's download history.
type DownloadStats struct {
	TotalDownloads      int64 `json:"total_downloads"`
	SuccessfulDownloads int64 `json:"successful_downloads"`
	FailedDownloads     int64 `json:"failed_downloads"`
	BulkDownloads       int64 `json:"bulk_downloads"`
	SingleDownloads     int64 `json:"single_downloads"`
	RecentDownloads     int64 `json:"recent_downloads"`
	SuccessRate         int   `json:"success_rate"`
}
