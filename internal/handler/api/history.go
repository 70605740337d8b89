package api

import (
	"net/http"
	"strconv"

	"github.com/ttgrab/tiktok-dl-go/internal/api_context"
	"github.com/ttgrab/tiktok-dl-go/internal/logger"
	"github.com/ttgrab/tiktok-dl-go/internal/model"
	"github.com/ttgrab/tiktok-dl-go/internal/port"
)

type HistoryResponse struct {
	History []model.HistoryEntry `json:"history"`
	Limit   int                  `json:"limit"`
	Offset  int                  `json:"offset"`
}

func HistoryHandler(svc port.HistoryGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := api_context.AuthUserIDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusUnauthorized, "Authentication required", nil)
			return
		}

		in := port.HistoryInput{
			UserID: userID,
			Limit:  queryInt(r, "limit"),
			Offset: queryInt(r, "offset"),
		}

		entries, err := svc.GetHistory(r.Context(), in)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "Could not get download history", err)
			return
		}
		if entries == nil {
			entries = []model.HistoryEntry{}
		}

		RespondJSON(w, http.StatusOK, HistoryResponse{History: entries, Limit: in.Limit, Offset: in.Offset})
		logger.Infof(r.Context(), "✅  Returned %d history entries for user #%d", len(entries), userID)
	}
}

// queryInt reads an integer query parameter, treating absence or garbage
// as zero.
func queryInt(r *http.Request, name string) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return 0
	}
	return v
}
