package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ttgrab/tiktok-dl-go/internal/api_context"
)

type stubLimiter struct {
	allow bool
	err   error

	key string
}

func (s *stubLimiter) Allow(ctx context.Context, key string) (bool, error) {
	s.key = key
	return s.allow, s.err
}

func TestWithRateLimit(t *testing.T) {
	tests := []struct {
		name           string
		limiter        *stubLimiter
		authenticated  bool
		wantStatus     int
		expectNextCall bool
	}{
		{"unauthenticated", &stubLimiter{allow: true}, false, http.StatusUnauthorized, false},
		{"allowed", &stubLimiter{allow: true}, true, http.StatusNoContent, true},
		{"denied", &stubLimiter{allow: false}, true, http.StatusTooManyRequests, false},
		{"store error fails open", &stubLimiter{err: errors.New("redis down")}, true, http.StatusNoContent, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				w.WriteHeader(http.StatusNoContent)
			})

			req := httptest.NewRequest("POST", "/downloads", nil)
			if tc.authenticated {
				req = req.WithContext(api_context.WithAuthUserID(req.Context(), 7))
			}
			rec := httptest.NewRecorder()

			WithRateLimit(tc.limiter)(next).ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Errorf("status = %d; want %d", rec.Code, tc.wantStatus)
			}
			if nextCalled != tc.expectNextCall {
				t.Errorf("nextCalled = %v; want %v", nextCalled, tc.expectNextCall)
			}
		})
	}
}

func TestWithRateLimit_KeyShape(t *testing.T) {
	limiter := &stubLimiter{allow: true}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest("POST", "/downloads/bulk", nil)
	req = req.WithContext(api_context.WithAuthUserID(req.Context(), 42))

	WithRateLimit(limiter)(next).ServeHTTP(httptest.NewRecorder(), req)

	want := "ratelimit:42:/downloads/bulk"
	if limiter.key != want {
		t.Errorf("key = %q; want %q", limiter.key, want)
	}
}
