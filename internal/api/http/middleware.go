package http

import (
	"context"
	"net/http"
	"strings"

	"frontdesk-backend/internal/logger"
	"frontdesk-backend/internal/security"
)

type contextKey string

const claimsKey contextKey = "operator-claims"

// AuthMiddleware validates the bearer token and injects the operator claims
// into the request context.
type AuthMiddleware struct {
	tokenManager security.TokenManager
}

func NewAuthMiddleware(tm security.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokenManager: tm}
}

func (m *AuthMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := extractBearer(r)
		if !ok {
			respondJSON(w, http.StatusUnauthorized,
				errorBody{Code: "UNAUTHORIZED", Message: "authorization token is not provided"})
			return
		}

		claims, err := m.tokenManager.ValidateToken(token)
		if err != nil {
			respondJSON(w, http.StatusUnauthorized,
				errorBody{Code: "UNAUTHORIZED", Message: err.Error()})
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func extractBearer(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return header[7:], true
	}
	return header, true
}

// claimsFrom returns the operator claims the auth middleware stored, or nil
// on an unauthenticated path.
func claimsFrom(ctx context.Context) *security.OperatorClaims {
	claims, _ := ctx.Value(claimsKey).(*security.OperatorClaims)
	return claims
}

// requireRole guards staff-only handlers. The auth middleware has already
// run; this only checks the role.
func requireRole(role string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := claimsFrom(r.Context())
		if claims == nil || !claims.HasRole(role) {
			logger.Warn("Role check failed", "path", r.URL.Path, "required", role)
			respondJSON(w, http.StatusForbidden,
				errorBody{Code: "UNAUTHORIZED", Message: "insufficient role"})
			return
		}
		next(w, r)
	}
}
