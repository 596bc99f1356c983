// internal/auth/context.go
package auth

import "context"

type contextKey string

// userIDKey carries the authenticated user's ID through the request context.
const userIDKey contextKey = "user_id"

// ContextWithUserID returns a context carrying the given user ID.
func ContextWithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext returns the authenticated user ID placed by the
// authentication middleware.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}
