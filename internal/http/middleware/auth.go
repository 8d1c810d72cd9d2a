package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/abfall50/freelance-dashboard/internal/http/response"
	"github.com/abfall50/freelance-dashboard/internal/security"
)

type contextKey string

const (
	claimsKey       contextKey = "auth_claims"
	refreshTokenKey contextKey = "raw_refresh_token"
)

// ContextWithClaims installs parsed token claims the way the auth
// middleware does. Handlers under test get wired up through this.
func ContextWithClaims(ctx context.Context, claims *security.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

func ContextWithRefreshToken(ctx context.Context, raw string) context.Context {
	return context.WithValue(ctx, refreshTokenKey, raw)
}

func ClaimsFromContext(ctx context.Context) (*security.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*security.Claims)
	return claims, ok
}

// RefreshTokenFromContext returns the raw refresh token string as
// presented, needed to locate the session row it is mirrored into.
func RefreshTokenFromContext(ctx context.Context) (string, bool) {
	raw, ok := ctx.Value(refreshTokenKey).(string)
	return raw, ok
}

// RequireAccessToken rejects requests without a valid bearer access
// token and exposes its claims to downstream handlers.
func RequireAccessToken(jwtMgr *security.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			if raw == "" {
				response.Error(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "missing bearer token", nil)
				return
			}
			claims, err := jwtMgr.ParseAccessToken(raw)
			if err != nil {
				response.Error(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "invalid or expired token", nil)
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithClaims(r.Context(), claims)))
		})
	}
}

// RequireRefreshToken verifies the bearer token as a refresh token and
// exposes both its claims and the raw string.
func RequireRefreshToken(jwtMgr *security.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			if raw == "" {
				response.Error(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "missing bearer token", nil)
				return
			}
			claims, err := jwtMgr.ParseRefreshToken(raw)
			if err != nil {
				response.Error(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "invalid or expired token", nil)
				return
			}
			ctx := ContextWithClaims(r.Context(), claims)
			ctx = ContextWithRefreshToken(ctx, raw)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	auth := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(auth) > len("bearer ") && strings.EqualFold(auth[:len("bearer ")], "bearer ") {
		return strings.TrimSpace(auth[len("bearer "):])
	}
	return ""
}
