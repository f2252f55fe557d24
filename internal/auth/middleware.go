// internal/auth/middleware.go

package auth

import (
	"context"
	"net/http"
	"strings"

	"destiny-backend/internal/common/utils"
)

type contextKey string

// ContextKeyUID is the request-context key holding the authenticated user's uid
const ContextKeyUID contextKey = "userUID"

// Middleware provides authentication middleware
type Middleware struct {
	service Service
}

// NewMiddleware creates a new auth middleware
func NewMiddleware(service Service) *Middleware {
	return &Middleware{service: service}
}

// Authenticate verifies the JWT token and adds the user's uid to the request context
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := m.extractToken(r)
		if token == "" {
			utils.RespondWithError(w, http.StatusUnauthorized, "Missing or invalid authorization header")
			return
		}

		claims, err := m.service.ValidateToken(token)
		if err != nil {
			utils.RespondWithError(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		if claims.Type != "access" {
			utils.RespondWithError(w, http.StatusUnauthorized, "Invalid token type")
			return
		}

		ctx := context.WithValue(r.Context(), ContextKeyUID, claims.UID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// extractToken pulls the bearer token out of the Authorization header
func (m *Middleware) extractToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return parts[1]
}

// UIDFromContext returns the authenticated uid stored by Authenticate
func UIDFromContext(ctx context.Context) (string, bool) {
	uid, ok := ctx.Value(ContextKeyUID).(string)
	return uid, ok
}
