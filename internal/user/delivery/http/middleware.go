package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/tair/ai-goat-store/pkg/auth"
	"github.com/tair/ai-goat-store/pkg/logger"
)

type contextKey string

const UsernameKey contextKey = "username"

// AuthMiddleware validates the bearer token and stores the username in the context
func AuthMiddleware(tokens *auth.TokenManager) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			// "Bearer <token>"; the scheme word itself is not checked
			parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
			if len(parts) != 2 || strings.TrimSpace(parts[1]) == "" {
				respondMessage(w, http.StatusForbidden, "Token is missing!")
				return
			}

			claims, err := tokens.ValidateToken(strings.TrimSpace(parts[1]))
			if err != nil {
				logger.Warn(r.Context()).Err(err).Msg("Invalid token")
				respondMessage(w, http.StatusForbidden, "Token is invalid!")
				return
			}

			ctx := context.WithValue(r.Context(), UsernameKey, claims.Username)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
	}
}

// UsernameFromContext returns the authenticated username
func UsernameFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(UsernameKey).(string)
	return username, ok
}
