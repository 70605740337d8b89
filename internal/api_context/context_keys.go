package api_context

import "context"

type ctxKey string

const authUserIDKey ctxKey = "auth_user_id"

// WithAuthUserID stashes the authenticated user's id into the context.
func WithAuthUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, authUserIDKey, userID)
}

// AuthUserIDFromContext retrieves the authenticated user's id, if any.
func AuthUserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(authUserIDKey).(int64)
	return id, ok
}
