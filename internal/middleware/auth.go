package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"lingolens/internal/service"

	"go.uber.org/zap"
)

type contextKey string

const userIDKey contextKey = "user_id"

// Auth resolves the Authorization bearer token and injects the user id into
// the request context. A missing or invalid token is a soft "not logged in"
// response, not a server error.
func Auth(authService *service.AuthService, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")

			userID, err := authService.Authenticate(token)
			if err != nil {
				if errors.Is(err, service.ErrNotAuthenticated) {
					writeJSONError(w, http.StatusUnauthorized, "not logged in")
					return
				}
				logger.Error("authentication failed", zap.Error(err))
				writeJSONError(w, http.StatusInternalServerError, "internal error")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID extracts the authenticated user id from the request context.
func UserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}

// WithUserID returns a context carrying the given user id, for tests.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
