package middleware

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/ttgrab/tiktok-dl-go/internal/handler/api"
)

func WithBatchID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := chi.URLParam(r, "batchId")
			if id == "" {
				api.WriteError(w, http.StatusBadRequest, "Batch ID is required", nil)
				return
			}
			if _, err := uuid.Parse(id); err != nil {
				api.WriteError(w, http.StatusBadRequest, fmt.Sprintf("Batch ID %q is not a valid UUID", id), nil)
				return
			}

			// stash it in context and call the real handler
			ctx := context.WithValue(r.Context(), api.BatchIDKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
