package actorctx

import "context"

type ctxKey string

const keyUserID ctxKey = "user_id"

// WithUserID attaches the authenticated user's identity to a plain
// context, so code below the gin layer can read it without importing gin.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, keyUserID, userID)
}

func UserIDFrom(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(keyUserID).(string)

	return v, ok && v != ""
}
