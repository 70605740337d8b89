package api

import (
	"errors"
	"net/http"

	"github.com/ttgrab/tiktok-dl-go/internal/logger"
	"github.com/ttgrab/tiktok-dl-go/internal/port"
	"github.com/ttgrab/tiktok-dl-go/internal/usecase/download"
)

func BulkStatusHandler(svc port.BulkStatusGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		batchID, ok := BatchIDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "Batch ID is required", nil)
			return
		}

		out, err := svc.GetBulkStatus(r.Context(), batchID)
		if err != nil {
			if errors.Is(err, download.ErrSessionNotFound) {
				WriteError(w, http.StatusNotFound, "Bulk session not found", nil)
				return
			}
			WriteError(w, http.StatusInternalServerError, "Could not get bulk status", err)
			return
		}

		RespondJSON(w, http.StatusOK, out)
		logger.Infof(r.Context(), "✅  Returned status of batch %q", batchID)
	}
}
