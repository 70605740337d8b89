package mariadb

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ttgrab/tiktok-dl-go/internal/model"
	"github.com/ttgrab/tiktok-dl-go/internal/port"
)

const testBatchID = "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"

func TestSessionRepository_Create_Success(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("unexpected error when opening stub database: %s", err)
	}
	defer func() { _ = sqlDB.Close() }()

	repo := NewSessionRepository(sqlDB)

	sess := &model.BulkSession{
		BatchID:     testBatchID,
		UserID:      42,
		Status:      model.SessionStatusPending,
		TotalVideos: 3,
	}

	mock.ExpectExec("INSERT INTO bulk_sessions").
		WithArgs(sess.BatchID, sess.UserID, sess.Status, sess.TotalVideos).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), sess); err != nil {
		t.Errorf("Create() returned unexpected error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestSessionRepository_Create_ExecError(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("unexpected error when opening stub database: %s", err)
	}
	defer func() { _ = sqlDB.Close() }()

	repo := NewSessionRepository(sqlDB)

	mock.ExpectExec("INSERT INTO bulk_sessions").
		WillReturnError(errors.New("db.Exec failed"))

	sess := &model.BulkSession{BatchID: testBatchID, UserID: 42, Status: model.SessionStatusPending}
	if err := repo.Create(context.Background(), sess); err == nil {
		t.Fatal("expected error, got nil")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestSessionRepository_GetByBatchID_Found(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("unexpected error when opening stub database: %s", err)
	}
	defer func() { _ = sqlDB.Close() }()

	repo := NewSessionRepository(sqlDB)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{
		"batch_id", "user_id", "status", "total_videos", "processed_videos",
		"successful_downloads", "failed_downloads", "created_at", "updated_at", "completed_at",
	}).AddRow(testBatchID, 42, "processing", 3, 1, 1, 0, now, now, nil)

	mock.ExpectQuery(regexp.QuoteMeta("FROM bulk_sessions")).
		WithArgs(testBatchID).
		WillReturnRows(rows)

	sess, err := repo.GetByBatchID(context.Background(), testBatchID)
	if err != nil {
		t.Fatalf("GetByBatchID() returned unexpected error: %v", err)
	}
	if sess == nil {
		t.Fatal("expected a session, got nil")
	}
	if sess.Status != model.SessionStatusProcessing || sess.TotalVideos != 3 || sess.ProcessedVideos != 1 {
		t.Errorf("wrong session scanned: %+v", sess)
	}
	if sess.CompletedAt != nil {
		t.Errorf("NULL completed_at should scan to nil, got %v", sess.CompletedAt)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestSessionRepository_GetByBatchID_CompletedAt(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("unexpected error when opening stub database: %s", err)
	}
	defer func() { _ = sqlDB.Close() }()

	repo := NewSessionRepository(sqlDB)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	done := now.Add(5 * time.Minute)

	rows := sqlmock.NewRows([]string{
		"batch_id", "user_id", "status", "total_videos", "processed_videos",
		"successful_downloads", "failed_downloads", "created_at", "updated_at", "completed_at",
	}).AddRow(testBatchID, 42, "completed", 3, 3, 2, 1, now, done, done)

	mock.ExpectQuery(regexp.QuoteMeta("FROM bulk_sessions")).
		WithArgs(testBatchID).
		WillReturnRows(rows)

	sess, err := repo.GetByBatchID(context.Background(), testBatchID)
	if err != nil {
		t.Fatalf("GetByBatchID() returned unexpected error: %v", err)
	}
	if sess.CompletedAt == nil || !sess.CompletedAt.Equal(done) {
		t.Errorf("expected completed_at %v, got %v", done, sess.CompletedAt)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestSessionRepository_GetByBatchID_NotFound(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("unexpected error when opening stub database: %s", err)
	}
	defer func() { _ = sqlDB.Close() }()

	repo := NewSessionRepository(sqlDB)

	mock.ExpectQuery(regexp.QuoteMeta("FROM bulk_sessions")).
		WithArgs(testBatchID).
		WillReturnRows(sqlmock.NewRows([]string{"batch_id"}))

	sess, err := repo.GetByBatchID(context.Background(), testBatchID)
	if err != nil {
		t.Fatalf("a missing session should not be an error, got %v", err)
	}
	if sess != nil {
		t.Errorf("expected nil session, got %+v", sess)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestSessionRepository_Update_SubsetOfFields(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("unexpected error when opening stub database: %s", err)
	}
	defer func() { _ = sqlDB.Close() }()

	repo := NewSessionRepository(sqlDB)

	status := model.SessionStatusCompleted
	done := time.Date(2025, 6, 1, 12, 5, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE bulk_sessions SET status = ?, completed_at = ? WHERE batch_id = ?")).
		WithArgs(status, done, testBatchID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	upd := port.SessionUpdate{Status: &status, CompletedAt: &done}
	if err := repo.Update(context.Background(), testBatchID, upd); err != nil {
		t.Errorf("Update() returned unexpected error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestSessionRepository_Update_AllCounters(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("unexpected error when opening stub database: %s", err)
	}
	defer func() { _ = sqlDB.Close() }()

	repo := NewSessionRepository(sqlDB)

	processed, successful, failed := 2, 1, 1

	mock.ExpectExec(regexp.QuoteMeta("UPDATE bulk_sessions SET processed_videos = ?, successful_downloads = ?, failed_downloads = ? WHERE batch_id = ?")).
		WithArgs(processed, successful, failed, testBatchID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	upd := port.SessionUpdate{
		ProcessedVideos:     &processed,
		SuccessfulDownloads: &successful,
		FailedDownloads:     &failed,
	}
	if err := repo.Update(context.Background(), testBatchID, upd); err != nil {
		t.Errorf("Update() returned unexpected error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestSessionRepository_Update_NoFieldsIsNoOp(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("unexpected error when opening stub database: %s", err)
	}
	defer func() { _ = sqlDB.Close() }()

	repo := NewSessionRepository(sqlDB)

	// No expectations registered: any query would fail the test.
	if err := repo.Update(context.Background(), testBatchID, port.SessionUpdate{}); err != nil {
		t.Errorf("empty update should be a no-op, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestSessionRepository_Update_ExecError(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("unexpected error when opening stub database: %s", err)
	}
	defer func() { _ = sqlDB.Close() }()

	repo := NewSessionRepository(sqlDB)

	status := model.SessionStatusFailed
	mock.ExpectExec("UPDATE bulk_sessions").
		WillReturnError(errors.New("db.Exec failed"))

	if err := repo.Update(context.Background(), testBatchID, port.SessionUpdate{Status: &status}); err == nil {
		t.Fatal("expected error, got nil")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestSessionRepository_ListStaleProcessing_Success(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("unexpected error when opening stub database: %s", err)
	}
	defer func() { _ = sqlDB.Close() }()

	repo := NewSessionRepository(sqlDB)
	cutoff := time.Date(2025, 6, 1, 11, 30, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"batch_id"}).
		AddRow("batch-1").
		AddRow("batch-2")

	mock.ExpectQuery(regexp.QuoteMeta("WHERE status = 'processing' AND updated_at < ?")).
		WithArgs(cutoff).
		WillReturnRows(rows)

	ids, err := repo.ListStaleProcessing(context.Background(), cutoff)
	if err != nil {
		t.Fatalf("ListStaleProcessing() returned unexpected error: %v", err)
	}
	if len(ids) != 2 || ids[0] != "batch-1" || ids[1] != "batch-2" {
		t.Errorf("wrong ids: %v", ids)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestSessionRepository_ListStaleProcessing_Empty(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("unexpected error when opening stub database: %s", err)
	}
	defer func() { _ = sqlDB.Close() }()

	repo := NewSessionRepository(sqlDB)
	cutoff := time.Date(2025, 6, 1, 11, 30, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE status = 'processing' AND updated_at < ?")).
		WithArgs(cutoff).
		WillReturnRows(sqlmock.NewRows([]string{"batch_id"}))

	ids, err := repo.ListStaleProcessing(context.Background(), cutoff)
	if err != nil {
		t.Fatalf("ListStaleProcessing() returned unexpected error: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("expected no ids, got %v", ids)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestSessionRepository_ListStaleProcessing_QueryError(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("unexpected error when opening stub database: %s", err)
	}
	defer func() { _ = sqlDB.Close() }()

	repo := NewSessionRepository(sqlDB)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE status = 'processing' AND updated_at < ?")).
		WillReturnError(errors.New("db.Query failed"))

	if _, err := repo.ListStaleProcessing(context.Background(), time.Now()); err == nil {
		t.Fatal("expected error, got nil")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}
