package mariadb

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"time"

	"github.com/ttgrab/tiktok-dl-go/internal/model"
	"github.com/ttgrab/tiktok-dl-go/internal/port"
)

type DownloadRepository struct {
	db *sql.DB
}

// compile-time check: *DownloadRepository must satisfy port.DownloadRepository
var _ port.DownloadRepository = (*DownloadRepository)(nil)

func NewDownloadRepository(db *sql.DB) *DownloadRepository {
	return &DownloadRepository{db: db}
}

const historyEntryColumns = `
        dh.id, dh.download_type, dh.batch_id, dh.downloaded_at,
        v.id, v.aweme_id, v.title, v.cover_url, v.video_url, v.watermark_video_url,
        v.duration, v.author_name, v.author_avatar, v.play_count, v.digg_count,
        v.comment_count, v.share_count, v.download_count`

func (r *DownloadRepository) Create(ctx context.Context, rec *model.DownloadRecord) error {
	log.Printf("recording %s download of video #%d for user #%d...", rec.DownloadType, rec.VideoID, rec.UserID)

	const query = `
      INSERT INTO download_history (user_id, video_id, download_type, batch_id, status, error_message)
      VALUES (?, ?, ?, ?, ?, ?)
    `
	res, err := r.db.ExecContext(ctx, query,
		rec.UserID, rec.VideoID, rec.DownloadType,
		rec.BatchID, rec.Status, rec.ErrorMessage,
	)
	if err != nil {
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rec.ID = id

	return nil
}

func (r *DownloadRepository) FindBulkRecord(ctx context.Context, userID, videoID int64, batchID string) (*model.DownloadRecord, error) {
	const query = `
      SELECT id, user_id, video_id, download_type, batch_id, status, error_message, downloaded_at
      FROM download_history
      WHERE user_id = ? AND video_id = ? AND batch_id = ?
      LIMIT 1
    `
	return r.scanRecord(r.db.QueryRowContext(ctx, query, userID, videoID, batchID))
}

func (r *DownloadRepository) FindRecentSingle(ctx context.Context, userID, videoID int64, after time.Time) (*model.DownloadRecord, error) {
	const query = `
      SELECT id, user_id, video_id, download_type, batch_id, status, error_message, downloaded_at
      FROM download_history
      WHERE user_id = ? AND video_id = ? AND download_type = 'single' AND downloaded_at > ?
      ORDER BY downloaded_at DESC
      LIMIT 1
    `
	return r.scanRecord(r.db.QueryRowContext(ctx, query, userID, videoID, after))
}

func (r *DownloadRepository) scanRecord(row *sql.Row) (*model.DownloadRecord, error) {
	var rec model.DownloadRecord
	if err := row.Scan(
		&rec.ID, &rec.UserID, &rec.VideoID, &rec.DownloadType,
		&rec.BatchID, &rec.Status, &rec.ErrorMessage, &rec.DownloadedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// ListBatchResults returns the batch's completed records in insertion
// order. The id tiebreaker keeps items processed within the same second
// in their original order.
func (r *DownloadRepository) ListBatchResults(ctx context.Context, batchID string) ([]model.HistoryEntry, error) {
	log.Printf("fetching results for batch %q from the database...", batchID)

	const query = `
      SELECT` + historyEntryColumns + `
      FROM download_history dh
      JOIN videos v ON dh.video_id = v.id
      WHERE dh.batch_id = ? AND dh.download_type = 'bulk' AND dh.status = 'completed'
      ORDER BY dh.downloaded_at ASC, dh.id ASC
    `
	rows, err := r.db.QueryContext(ctx, query, batchID)
	if err != nil {
		return nil, err
	}
	return r.collectEntries(rows)
}

func (r *DownloadRepository) ListUserHistory(ctx context.Context, userID int64, limit, offset int) ([]model.HistoryEntry, error) {
	log.Printf("fetching download history for user #%d from the database...", userID)

	const query = `
      SELECT` + historyEntryColumns + `
      FROM download_history dh
      JOIN videos v ON dh.video_id = v.id
      WHERE dh.user_id = ?
      ORDER BY dh.downloaded_at DESC, dh.id DESC
      LIMIT ? OFFSET ?
    `
	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	return r.collectEntries(rows)
}

func (r *DownloadRepository) collectEntries(rows *sql.Rows) ([]model.HistoryEntry, error) {
	defer func() {
		if err := rows.Close(); err != nil {
			log.Printf("failed to close result rows: %v", err)
		}
	}()

	var entries []model.HistoryEntry
	for rows.Next() {
		var e model.HistoryEntry
		if err := rows.Scan(
			&e.RecordID, &e.DownloadType, &e.BatchID, &e.DownloadedAt,
			&e.Video.ID, &e.Video.AwemeID, &e.Video.Title, &e.Video.CoverURL,
			&e.Video.VideoURL, &e.Video.WatermarkVideoURL, &e.Video.Duration,
			&e.Video.AuthorName, &e.Video.AuthorAvatar, &e.Video.PlayCount,
			&e.Video.DiggCount, &e.Video.CommentCount, &e.Video.ShareCount,
			&e.Video.DownloadCount,
		); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *DownloadRepository) UserStats(ctx context.Context, userID int64, recentSince time.Time) (model.DownloadStats, error) {
	log.Printf("computing download stats for user #%d...", userID)

	const query = `
      SELECT
        COUNT(*),
        COUNT(CASE WHEN status = 'completed' THEN 1 END),
        COUNT(CASE WHEN status = 'failed' THEN 1 END),
        COUNT(CASE WHEN download_type = 'bulk' THEN 1 END),
        COUNT(CASE WHEN download_type = 'single' THEN 1 END),
        COUNT(CASE WHEN downloaded_at > ? THEN 1 END)
      FROM download_history
      WHERE user_id = ?
    `
	var stats model.DownloadStats
	row := r.db.QueryRowContext(ctx, query, recentSince, userID)
	if err := row.Scan(
		&stats.TotalDownloads, &stats.SuccessfulDownloads, &stats.FailedDownloads,
		&stats.BulkDownloads, &stats.SingleDownloads, &stats.RecentDownloads,
	); err != nil {
		return model.DownloadStats{}, err
	}

	return stats, nil
}
