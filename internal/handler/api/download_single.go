package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/ttgrab/tiktok-dl-go/internal/api_context"
	"github.com/ttgrab/tiktok-dl-go/internal/logger"
	"github.com/ttgrab/tiktok-dl-go/internal/port"
	"github.com/ttgrab/tiktok-dl-go/internal/resolver"
	"github.com/ttgrab/tiktok-dl-go/internal/validation"
)

type DownloadRequest struct {
	URL string `json:"url" validate:"required,max=2048,tiktok_url"`
}

func DownloadSingleHandler(svc port.SingleDownloader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := api_context.AuthUserIDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusUnauthorized, "Authentication required", nil)
			return
		}

		var req DownloadRequest
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

		out, err := svc.DownloadSingle(r.Context(), port.DownloadSingleInput{UserID: userID, URL: req.URL})
		if err != nil {
			writeResolveError(w, err)
			return
		}

		RespondJSON(w, http.StatusOK, out)
		logger.Infof(r.Context(), "✅  Successfully processed download of video %q", out.Video.AwemeID)
	}
}

// writeResolveError maps resolver failures onto HTTP statuses. Anything
// not recognised is a plain 500.
func writeResolveError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, resolver.ErrInvalidURL):
		WriteError(w, http.StatusBadRequest, "Invalid TikTok URL", err)
	case errors.Is(err, resolver.ErrBadRequest):
		WriteError(w, http.StatusBadRequest, "Provider rejected the URL", err)
	case errors.Is(err, resolver.ErrForbidden):
		WriteError(w, http.StatusForbidden, "Provider refused the request", err)
	case errors.Is(err, resolver.ErrNotFound):
		WriteError(w, http.StatusNotFound, "Video not found", err)
	case errors.Is(err, resolver.ErrRateLimited):
		WriteError(w, http.StatusTooManyRequests, "Provider rate limit reached, try again later", err)
	case errors.Is(err, resolver.ErrTimeout):
		WriteError(w, http.StatusGatewayTimeout, "Provider timed out", err)
	default:
		WriteError(w, http.StatusInternalServerError, "Could not process download", err)
	}
}
