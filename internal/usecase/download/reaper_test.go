package download

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ttgrab/tiktok-dl-go/internal/model"
)

func TestReapStaleSessions_NoneStale(t *testing.T) {
	sessions := &mockSessionRepo{}
	svc := NewSessionReaper(sessions, 30*time.Minute, fixedNow)

	n, err := svc.ReapStaleSessions(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 0 {
		t.Errorf("expected 0 reaped, got %d", n)
	}
	if sessions.updateCalls != 0 {
		t.Error("no update should happen when nothing is stale")
	}
}

func TestReapStaleSessions_MarksFailed(t *testing.T) {
	sessions := &mockSessionRepo{staleIDs: []string{"batch-1", "batch-2"}}
	svc := NewSessionReaper(sessions, 30*time.Minute, fixedNow)

	n, err := svc.ReapStaleSessions(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 reaped, got %d", n)
	}

	if len(sessions.updates) != 2 {
		t.Fatalf("expected 2 updates, got %d", len(sessions.updates))
	}
	for i, upd := range sessions.updates {
		if upd.Status == nil || *upd.Status != model.SessionStatusFailed {
			t.Errorf("update %d: expected status failed, got %v", i, upd.Status)
		}
		if upd.CompletedAt == nil {
			t.Errorf("update %d: expected completed_at to be set", i)
		}
		if upd.ProcessedVideos != nil || upd.SuccessfulDownloads != nil || upd.FailedDownloads != nil {
			t.Errorf("update %d: counters must be left untouched", i)
		}
	}
	if sessions.updatedIDs[0] != "batch-1" || sessions.updatedIDs[1] != "batch-2" {
		t.Errorf("wrong sessions reaped: %v", sessions.updatedIDs)
	}
}

func TestReapStaleSessions_ListError(t *testing.T) {
	svc := NewSessionReaper(&mockSessionRepo{listErr: errors.New("db fail")}, 30*time.Minute, fixedNow)

	if _, err := svc.ReapStaleSessions(context.Background()); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestReapStaleSessions_UpdateErrorSkipsSession(t *testing.T) {
	sessions := &mockSessionRepo{staleIDs: []string{"batch-1", "batch-2"}, failUpdateAt: 1}
	svc := NewSessionReaper(sessions, 30*time.Minute, fixedNow)

	n, err := svc.ReapStaleSessions(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 1 {
		t.Errorf("one failed update should leave 1 reaped, got %d", n)
	}
}
