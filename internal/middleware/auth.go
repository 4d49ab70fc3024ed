package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/brewboard/api/internal/model"
	"golang.org/x/crypto/bcrypt"
)

// OperatorAuth returns a middleware that guards moderation routes with a
// single bearer token, checked against its bcrypt hash. An empty hash locks
// the routes rather than opening them.
func OperatorAuth(tokenHash string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if tokenHash == "" {
				model.NewUnauthorizedError("operator access is not configured").WriteJSON(w)
				return
			}

			// Extract token from Authorization header
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				model.NewUnauthorizedError("missing authorization header").WriteJSON(w)
				return
			}

			// Check Bearer prefix
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				model.NewUnauthorizedError("invalid authorization header format").WriteJSON(w)
				return
			}

			if err := bcrypt.CompareHashAndPassword([]byte(tokenHash), []byte(parts[1])); err != nil {
				model.NewUnauthorizedError("invalid operator token").WriteJSON(w)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, "operator")
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserID extracts the acting identity from context
func GetUserID(ctx context.Context) string {
	if id, ok := ctx.Value(UserIDKey).(string); ok {
		return id
	}
	return ""
}
