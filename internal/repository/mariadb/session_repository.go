package mariadb

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/ttgrab/tiktok-dl-go/internal/model"
	"github.com/ttgrab/tiktok-dl-go/internal/port"
)

type SessionRepository struct {
	db *sql.DB
}

// compile-time check: *SessionRepository must satisfy port.SessionRepository
var _ port.SessionRepository = (*SessionRepository)(nil)

func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(ctx context.Context, sess *model.BulkSession) error {
	log.Printf("creating bulk session %q for user #%d (%d videos)...", sess.BatchID, sess.UserID, sess.TotalVideos)

	const query = `
      INSERT INTO bulk_sessions (batch_id, user_id, status, total_videos)
      VALUES (?, ?, ?, ?)
    `
	_, err := r.db.ExecContext(ctx, query,
		sess.BatchID, sess.UserID, sess.Status, sess.TotalVideos,
	)
	if err != nil {
		return err
	}

	return nil
}

func (r *SessionRepository) GetByBatchID(ctx context.Context, batchID string) (*model.BulkSession, error) {
	const query = `
      SELECT batch_id, user_id, status, total_videos, processed_videos,
             successful_downloads, failed_downloads, created_at, updated_at, completed_at
      FROM bulk_sessions
      WHERE batch_id = ?
    `
	row := r.db.QueryRowContext(ctx, query, batchID)

	var sess model.BulkSession
	var completedAt sql.NullTime
	if err := row.Scan(
		&sess.BatchID, &sess.UserID, &sess.Status, &sess.TotalVideos,
		&sess.ProcessedVideos, &sess.SuccessfulDownloads, &sess.FailedDownloads,
		&sess.CreatedAt, &sess.UpdatedAt, &completedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if completedAt.Valid {
		sess.CompletedAt = &completedAt.Time
	}

	return &sess, nil
}

// Update applies only the fields set on upd, so repeated out-of-order
// calls stay last-write-wins per field.
func (r *SessionRepository) Update(ctx context.Context, batchID string, upd port.SessionUpdate) error {
	var sets []string
	var args []any

	if upd.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, *upd.Status)
	}
	if upd.TotalVideos != nil {
		sets = append(sets, "total_videos = ?")
		args = append(args, *upd.TotalVideos)
	}
	if upd.ProcessedVideos != nil {
		sets = append(sets, "processed_videos = ?")
		args = append(args, *upd.ProcessedVideos)
	}
	if upd.SuccessfulDownloads != nil {
		sets = append(sets, "successful_downloads = ?")
		args = append(args, *upd.SuccessfulDownloads)
	}
	if upd.FailedDownloads != nil {
		sets = append(sets, "failed_downloads = ?")
		args = append(args, *upd.FailedDownloads)
	}
	if upd.CompletedAt != nil {
		sets = append(sets, "completed_at = ?")
		args = append(args, *upd.CompletedAt)
	}
	if len(sets) == 0 {
		return nil
	}

	query := "UPDATE bulk_sessions SET " + strings.Join(sets, ", ") + " WHERE batch_id = ?"
	args = append(args, batchID)

	_, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	return nil
}

func (r *SessionRepository) ListStaleProcessing(ctx context.Context, before time.Time) ([]string, error) {
	const query = `
      SELECT batch_id
      FROM bulk_sessions
      WHERE status = 'processing' AND updated_at < ?
    `
	rows, err := r.db.QueryContext(ctx, query, before)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cErr := rows.Close(); cErr != nil {
			log.Printf("failed to close result rows: %v", cErr)
		}
	}()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ids, nil
}
