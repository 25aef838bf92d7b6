package handlers

import (
	"context"
	"net/http"
)

type contextKey string

const (
	userIDKey   = contextKey("user_id")
	usernameKey = contextKey("username")
)

// ContextWithUser attaches the authenticated identity to the request context.
// Called by the auth middleware.
func ContextWithUser(ctx context.Context, userID int, username string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, usernameKey, username)
}

func GetUserID(r *http.Request) int {
	if val, ok := r.Context().Value(userIDKey).(int); ok {
		return val
	}
	return 0
}

func GetUsername(r *http.Request) string {
	if val, ok := r.Context().Value(usernameKey).(string); ok {
		return val
	}
	return ""
}
