package api

import (
	"net/http"

	"github.com/ttgrab/tiktok-dl-go/internal/api_context"
	"github.com/ttgrab/tiktok-dl-go/internal/logger"
	"github.com/ttgrab/tiktok-dl-go/internal/port"
)

func StatsHandler(svc port.StatsGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := api_context.AuthUserIDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusUnauthorized, "Authentication required", nil)
			return
		}

		stats, err := svc.GetStats(r.Context(), userID)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "Could not compute download stats", err)
			return
		}

		RespondJSON(w, http.StatusOK, stats)
		logger.Infof(r.Context(), "✅  Returned download stats for user #%d", userID)
	}
}
