package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"hireflow-backend/internal/apperr"
	"hireflow-backend/internal/config"
	"hireflow-backend/internal/domain"
	"hireflow-backend/internal/logger"
	"hireflow-backend/internal/security"
)

type contextKey int

const claimsKey contextKey = iota

// ClaimsFromContext returns the staff claims injected by the auth middleware.
func ClaimsFromContext(ctx context.Context) (*security.StaffClaims, bool) {
	claims, ok := ctx.Value(claimsKey).(*security.StaffClaims)
	return claims, ok
}

// AuthMiddleware enforces config.RouteSecurityConfig on named routes.
type AuthMiddleware struct {
	tokenManager security.TokenManager
}

func NewAuthMiddleware(tm security.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokenManager: tm}
}

func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := ""
		if route := mux.CurrentRoute(r); route != nil {
			name = route.GetName()
		}
		level := config.GetSecurityLevel(name)

		// Public endpoint - skip auth
		if level == config.SecurityPublic {
			next.ServeHTTP(w, r)
			return
		}

		token := extractToken(r)
		if token == "" {
			writeError(w, r, apperr.Unauthorized("authorization token is not provided"))
			return
		}
		claims, err := m.tokenManager.ValidateToken(token)
		if err != nil {
			writeError(w, r, apperr.Unauthorized("invalid token: %v", err))
			return
		}
		if claims.Type != security.TokenTypeAccess {
			writeError(w, r, apperr.Forbidden("access token required"))
			return
		}
		if level == config.SecurityAdmin && claims.Role != domain.UserRoleAdmin {
			writeError(w, r, apperr.Forbidden("route %s requires the %s role", name, domain.UserRoleAdmin))
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func extractToken(r *http.Request) string {
	token := r.Header.Get("Authorization")
	// Remove Bearer prefix if present
	if len(token) > 7 && strings.ToUpper(token[0:7]) == "BEARER " {
		token = token[7:]
	}
	return strings.TrimSpace(token)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// AccessLog logs one line per request. Capability tokens are never logged:
// the route template is used instead of the raw path when available.
func AccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		path := r.URL.Path
		route := ""
		if cur := mux.CurrentRoute(r); cur != nil {
			if tpl, err := cur.GetPathTemplate(); err == nil {
				path = tpl
			}
			route = cur.GetName()
		}
		logger.Request(r.Method, path, rec.status, time.Since(start), "route", route)
	})
}
