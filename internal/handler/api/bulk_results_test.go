package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ttgrab/tiktok-dl-go/internal/model"
	"github.com/ttgrab/tiktok-dl-go/internal/port"
	"github.com/ttgrab/tiktok-dl-go/internal/usecase/download"
)

type bulkResultsGetterStub struct {
	out port.BulkResultsOutput
	err error
}

func (s *bulkResultsGetterStub) GetBulkResults(ctx context.Context, batchID string) (port.BulkResultsOutput, error) {
	return s.out, s.err
}

func TestBulkResultsHandler_NotFound(t *testing.T) {
	svc := &bulkResultsGetterStub{err: download.ErrSessionNotFound}
	rec := httptest.NewRecorder()

	BulkResultsHandler(svc).ServeHTTP(rec, requestWithBatchID("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d; want 404", rec.Code)
	}
}

func TestBulkResultsHandler_Success(t *testing.T) {
	batchID := "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"
	svc := &bulkResultsGetterStub{out: port.BulkResultsOutput{
		BatchID: batchID,
		Status:  model.SessionStatusCompleted,
		Results: []model.HistoryEntry{
			{RecordID: 1, DownloadType: model.DownloadTypeBulk, Video: model.VideoSummary{Title: "first"}},
		},
	}}
	rec := httptest.NewRecorder()

	BulkResultsHandler(svc).ServeHTTP(rec, requestWithBatchID(batchID))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200", rec.Code)
	}

	var out port.BulkResultsOutput
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.BatchID != batchID || len(out.Results) != 1 || out.Results[0].Video.Title != "first" {
		t.Errorf("wrong response payload: %+v", out)
	}
}
