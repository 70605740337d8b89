package api

import "context"

type ctxKey string

const BatchIDKey ctxKey = "batch_id"

func BatchIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(BatchIDKey).(string)
	return id, ok
}
