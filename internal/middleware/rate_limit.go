package middleware

import (
	"fmt"
	"net/http"

	"github.com/ttgrab/tiktok-dl-go/internal/api_context"
	"github.com/ttgrab/tiktok-dl-go/internal/handler/api"
	"github.com/ttgrab/tiktok-dl-go/internal/logger"
	"github.com/ttgrab/tiktok-dl-go/internal/port"
)

// WithRateLimit throttles requests per user and path. A failing counter
// store fails open: throttling is protection for the provider quota, not
// an availability dependency.
func WithRateLimit(limiter port.RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, found := api_context.AuthUserIDFromContext(r.Context())
			if !found {
				api.WriteError(w, http.StatusUnauthorized, "Authentication required", nil)
				return
			}

			key := fmt.Sprintf("ratelimit:%d:%s", userID, r.URL.Path)
			ok, err := limiter.Allow(r.Context(), key)
			if err != nil {
				logger.Warnf(r.Context(), "⚠️  rate limit check failed, letting request through: %v", err)
				next.ServeHTTP(w, r)
				return
			}
			if !ok {
				api.WriteError(w, http.StatusTooManyRequests, "Too many requests, slow down", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
