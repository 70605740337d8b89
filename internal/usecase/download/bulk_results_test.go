package download

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/ttgrab/tiktok-dl-go/internal/model"
	"github.com/ttgrab/tiktok-dl-go/internal/port"
)

func TestGetBulkResults_CacheHit(t *testing.T) {
	cached, _ := json.Marshal(port.BulkResultsOutput{
		BatchID: "batch-1",
		Status:  model.SessionStatusCompleted,
	})
	cache := &mockCache{data: cached}
	sessions := &mockSessionRepo{getErr: errors.New("repo must not be hit")}
	svc := NewBulkResultsGetter(sessions, &mockDownloadRepo{}, cache)

	out, err := svc.GetBulkResults(context.Background(), "batch-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.BatchID != "batch-1" || out.Status != model.SessionStatusCompleted {
		t.Errorf("wrong cached payload: %+v", out)
	}
}

func TestGetBulkResults_NotFound(t *testing.T) {
	svc := NewBulkResultsGetter(&mockSessionRepo{}, &mockDownloadRepo{}, &mockCache{})

	_, err := svc.GetBulkResults(context.Background(), "unknown")
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestGetBulkResults_RunningSessionNotCached(t *testing.T) {
	sessions := &mockSessionRepo{session: &model.BulkSession{
		BatchID: "batch-1",
		Status:  model.SessionStatusProcessing,
	}}
	cache := &mockCache{}
	svc := NewBulkResultsGetter(sessions, &mockDownloadRepo{}, cache)

	out, err := svc.GetBulkResults(context.Background(), "batch-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Status != model.SessionStatusProcessing {
		t.Errorf("expected processing, got %q", out.Status)
	}
	if cache.setCalled {
		t.Error("a running session's results must not be cached")
	}
}

func TestGetBulkResults_TerminalSessionCached(t *testing.T) {
	sessions := &mockSessionRepo{session: &model.BulkSession{
		BatchID: "batch-1",
		Status:  model.SessionStatusCompleted,
	}}
	downloads := &mockDownloadRepo{entries: []model.HistoryEntry{
		{RecordID: 1, DownloadType: model.DownloadTypeBulk, Video: model.VideoSummary{ID: 10, Title: "first"}},
		{RecordID: 2, DownloadType: model.DownloadTypeBulk, Video: model.VideoSummary{ID: 11, Title: "second"}},
	}}
	cache := &mockCache{}
	svc := NewBulkResultsGetter(sessions, downloads, cache)

	out, err := svc.GetBulkResults(context.Background(), "batch-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(out.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(out.Results))
	}
	if out.Results[0].Video.Title != "first" {
		t.Errorf("results must keep repo order, got %q first", out.Results[0].Video.Title)
	}

	if !cache.setCalled {
		t.Fatal("terminal session results should be cached")
	}
	if cache.setTTL != ResultsCacheTTL {
		t.Errorf("expected ttl %v, got %v", ResultsCacheTTL, cache.setTTL)
	}

	var roundTrip port.BulkResultsOutput
	if err := json.Unmarshal(cache.setData, &roundTrip); err != nil {
		t.Fatalf("cached payload is not valid JSON: %v", err)
	}
	if len(roundTrip.Results) != 2 {
		t.Errorf("cached payload lost results: %+v", roundTrip)
	}
}

func TestGetBulkResults_CacheErrorsFallThrough(t *testing.T) {
	sessions := &mockSessionRepo{session: &model.BulkSession{
		BatchID: "batch-1",
		Status:  model.SessionStatusCompleted,
	}}
	cache := &mockCache{getErr: errors.New("redis down"), setErr: errors.New("redis down")}
	svc := NewBulkResultsGetter(sessions, &mockDownloadRepo{}, cache)

	out, err := svc.GetBulkResults(context.Background(), "batch-1")
	if err != nil {
		t.Fatalf("cache failures must not surface: %v", err)
	}
	if out.BatchID != "batch-1" {
		t.Errorf("wrong payload: %+v", out)
	}
}

func TestGetBulkResults_CorruptCacheEntryIgnored(t *testing.T) {
	sessions := &mockSessionRepo{session: &model.BulkSession{
		BatchID: "batch-1",
		Status:  model.SessionStatusCompleted,
	}}
	cache := &mockCache{data: []byte("{not json")}
	svc := NewBulkResultsGetter(sessions, &mockDownloadRepo{}, cache)

	out, err := svc.GetBulkResults(context.Background(), "batch-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.BatchID != "batch-1" {
		t.Errorf("wrong payload: %+v", out)
	}
}

func TestGetBulkResults_ListError(t *testing.T) {
	sessions := &mockSessionRepo{session: &model.BulkSession{BatchID: "batch-1", Status: model.SessionStatusCompleted}}
	svc := NewBulkResultsGetter(sessions, &mockDownloadRepo{listErr: errors.New("db fail")}, &mockCache{})

	if _, err := svc.GetBulkResults(context.Background(), "batch-1"); err == nil {
		t.Fatal("expected error, got nil")
	}
}
