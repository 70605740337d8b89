package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ttgrab/tiktok-dl-go/internal/model"
	"github.com/ttgrab/tiktok-dl-go/internal/port"
	"github.com/ttgrab/tiktok-dl-go/internal/usecase/download"
)

type bulkStatusGetterStub struct {
	out port.BulkStatusOutput
	err error

	batchID string
}

func (s *bulkStatusGetterStub) GetBulkStatus(ctx context.Context, batchID string) (port.BulkStatusOutput, error) {
	s.batchID = batchID
	return s.out, s.err
}

func requestWithBatchID(batchID string) *http.Request {
	req := httptest.NewRequest("GET", "/downloads/bulk/"+batchID+"/status", nil)
	return req.WithContext(context.WithValue(req.Context(), BatchIDKey, batchID))
}

func TestBulkStatusHandler_MissingBatchID(t *testing.T) {
	svc := &bulkStatusGetterStub{}
	req := httptest.NewRequest("GET", "/downloads/bulk//status", nil)
	rec := httptest.NewRecorder()

	BulkStatusHandler(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d; want 400", rec.Code)
	}
}

func TestBulkStatusHandler_NotFound(t *testing.T) {
	svc := &bulkStatusGetterStub{err: download.ErrSessionNotFound}
	rec := httptest.NewRecorder()

	BulkStatusHandler(svc).ServeHTTP(rec, requestWithBatchID("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d; want 404", rec.Code)
	}
}

func TestBulkStatusHandler_InternalError(t *testing.T) {
	svc := &bulkStatusGetterStub{err: errors.New("db fail")}
	rec := httptest.NewRecorder()

	BulkStatusHandler(svc).ServeHTTP(rec, requestWithBatchID("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d; want 500", rec.Code)
	}
}

func TestBulkStatusHandler_Success(t *testing.T) {
	svc := &bulkStatusGetterStub{out: port.BulkStatusOutput{
		BatchID:             "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee",
		Status:              model.SessionStatusProcessing,
		TotalVideos:         3,
		ProcessedVideos:     2,
		SuccessfulDownloads: 2,
		Progress:            67,
	}}
	rec := httptest.NewRecorder()

	BulkStatusHandler(svc).ServeHTTP(rec, requestWithBatchID("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200", rec.Code)
	}
	if svc.batchID != "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee" {
		t.Errorf("service got batch id %q", svc.batchID)
	}

	var out port.BulkStatusOutput
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.Progress != 67 || out.Status != model.SessionStatusProcessing {
		t.Errorf("wrong response payload: %+v", out)
	}
}
