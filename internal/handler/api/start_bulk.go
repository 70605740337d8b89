package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/ttgrab/tiktok-dl-go/internal/api_context"
	"github.com/ttgrab/tiktok-dl-go/internal/logger"
	"github.com/ttgrab/tiktok-dl-go/internal/port"
	"github.com/ttgrab/tiktok-dl-go/internal/usecase/download"
	"github.com/ttgrab/tiktok-dl-go/internal/validation"
)

type BulkDownloadRequest struct {
	URLs []string `json:"urls" validate:"required,min=1,max=100"`
}

func StartBulkHandler(svc port.BulkStarter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := api_context.AuthUserIDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusUnauthorized, "Authentication required", nil)
			return
		}

		var req BulkDownloadRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "Invalid request", fmt.Errorf("invalid JSON: %w", err))
			return
		}

		if errs := validation.ValidateStruct(req); errs != nil {
			errsJSON, err := validation.ErrorsToJson(errs)
			if err != nil {
				WriteError(w, http.StatusInternalServerError, "Validation error (could not encode details)", fmt.Errorf("encoding validation errors: %w", err))
				return
			}

			RespondRawJSON(w, http.StatusBadRequest, []byte(errsJSON))
			logger.Warnf(r.Context(), "❌  Validation failed: %s", errsJSON)
			return
		}

		out, err := svc.StartBulk(r.Context(), port.StartBulkInput{UserID: userID, URLs: req.URLs})
		if err != nil {
			if errors.Is(err, download.ErrEmptyBatch) || errors.Is(err, download.ErrBatchTooLarge) {
				WriteError(w, http.StatusBadRequest, "Invalid batch", err)
				return
			}
			WriteError(w, http.StatusInternalServerError, "Could not start bulk download", err)
			return
		}

		RespondJSON(w, http.StatusAccepted, out)
		logger.Infof(r.Context(), "✅  Accepted bulk batch %q with %d urls", out.BatchID, out.TotalVideos)
	}
}
