package middleware

import (
	"context"
	"net/http"
	"strings"

	"deslimste/internal/service"
)

type contextKey string

const (
	AdminIDKey contextKey = "adminId"
	TeamIDKey  contextKey = "teamId"
)

// AuthMiddleware provides JWT authentication middleware
type AuthMiddleware struct {
	authSvc *service.AuthService
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(authSvc *service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{authSvc: authSvc}
}

// RequireAdmin validates an admin JWT from the Authorization header
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r)
		if token == "" {
			http.Error(w, `{"error":"missing authorization header"}`, http.StatusUnauthorized)
			return
		}

		claims, err := m.authSvc.ValidateAdminToken(token)
		if err != nil {
			http.Error(w, `{"error":"invalid or expired token"}`, http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), AdminIDKey, claims.AdminID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireTeam validates a team JWT from the Authorization header
func (m *AuthMiddleware) RequireTeam(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r)
		if token == "" {
			http.Error(w, `{"error":"missing authorization"}`, http.StatusUnauthorized)
			return
		}

		claims, err := m.authSvc.ValidateTeamToken(token)
		if err != nil {
			http.Error(w, `{"error":"invalid or expired token"}`, http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), TeamIDKey, claims.TeamID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetAdminID extracts the admin ID from context
func GetAdminID(ctx context.Context) string {
	if v := ctx.Value(AdminIDKey); v != nil {
		return v.(string)
	}
	return ""
}

// GetTeamID extracts the team ID from context
func GetTeamID(ctx context.Context) string {
	if v := ctx.Value(TeamIDKey); v != nil {
		return v.(string)
	}
	return ""
}

func extractBearerToken(r *http.Request) string {
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
