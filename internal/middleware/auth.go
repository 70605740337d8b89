package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/ttgrab/tiktok-dl-go/internal/api_context"
	"github.com/ttgrab/tiktok-dl-go/internal/handler/api"
)

// WithUserAuth validates a Bearer HS256 JWT and stashes the user id from
// its subject into the context. With no secret configured it falls back
// to trusting the X-User-ID header, for local development only.
func WithUserAuth(jwtSecret string) func(http.Handler) http.Handler {
	if jwtSecret == "" {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				userID, err := strconv.ParseInt(r.Header.Get("X-User-ID"), 10, 64)
				if err != nil || userID <= 0 {
					api.WriteError(w, http.StatusUnauthorized, "missing user identity", nil)
					return
				}
				next.ServeHTTP(w, r.WithContext(api_context.WithAuthUserID(r.Context(), userID)))
			})
		}
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
	)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				api.WriteError(w, http.StatusUnauthorized, "missing bearer token", nil)
				return
			}

			raw := strings.TrimPrefix(auth, "Bearer ")
			claims := jwt.MapClaims{}
			tok, err := parser.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
				if t.Method != jwt.SigningMethodHS256 {
					return nil, fmt.Errorf("unexpected signing method")
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tok.Valid {
				api.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
				return
			}

			if !claims.VerifyExpiresAt(time.Now().Unix(), true) {
				api.WriteError(w, http.StatusUnauthorized, "token expired", nil)
				return
			}

			userID, ok := subjectUserID(claims)
			if !ok {
				api.WriteError(w, http.StatusUnauthorized, "missing sub", nil)
				return
			}

			next.ServeHTTP(w, r.WithContext(api_context.WithAuthUserID(r.Context(), userID)))
		})
	}
}

// subjectUserID accepts the user id either as a numeric sub claim or its
// string form.
func subjectUserID(claims jwt.MapClaims) (int64, bool) {
	switch sub := claims["sub"].(type) {
	case string:
		id, err := strconv.ParseInt(sub, 10, 64)
		if err != nil || id <= 0 {
			return 0, false
		}
		return id, true
	case float64:
		if sub <= 0 {
			return 0, false
		}
		return int64(sub), true
	default:
		return 0, false
	}
}
