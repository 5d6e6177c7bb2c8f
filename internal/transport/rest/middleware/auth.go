package middleware

import (
	"adventcal/internal/service"
	"context"
	"net/http"
	"strings"
)

type contextKey string

const PlayerIDKey contextKey = "playerId"

// AuthMiddleware provides JWT authentication middleware
type AuthMiddleware struct {
	authSvc *service.AuthService
	current func() string
}

// NewAuthMiddleware creates a new auth middleware. current returns the id
// of the session player, or "" when nobody is signed in.
func NewAuthMiddleware(authSvc *service.AuthService, current func() string) *AuthMiddleware {
	return &AuthMiddleware{authSvc: authSvc, current: current}
}

// RequirePlayer validates the player JWT from the Authorization header or
// query param and checks that it belongs to the session player
func (m *AuthMiddleware) RequirePlayer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r)
		if token == "" {
			// Try query param for WebSocket
			token = r.URL.Query().Get("token")
		}
		if token == "" {
			http.Error(w, `{"error":"missing authorization"}`, http.StatusUnauthorized)
			return
		}

		claims, err := m.authSvc.ValidatePlayerToken(token)
		if err != nil {
			http.Error(w, `{"error":"invalid or expired token"}`, http.StatusUnauthorized)
			return
		}
		if m.current() != claims.PlayerID {
			http.Error(w, `{"error":"token does not belong to the current session"}`, http.StatusForbidden)
			return
		}

		ctx := context.WithValue(r.Context(), PlayerIDKey, claims.PlayerID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetPlayerID extracts player ID from context
func GetPlayerID(ctx context.Context) string {
	if v := ctx.Value(PlayerIDKey); v != nil {
		return v.(string)
	}
	return ""
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
