package middleware

import (
	"context"
	"net/http"
	"strings"

	"cat-health-api/internal/httpx"
	"cat-health-api/internal/ports/auth"
)

type ctxKey string

const claimsKey ctxKey = "claims"

// RequireAuth protects a route group:
//   - missing Authorization header or empty bearer token => 401
//   - token that fails verification (bad signature, expired) => 403
//   - otherwise the verified claims are attached to the request context.
//
// The 401/403 split is part of the API contract: absent credentials and
// invalid credentials are distinct outcomes.
func RequireAuth(verifier auth.TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				httpx.Error(w, http.StatusUnauthorized, "authentication required")
				return
			}

			claims, err := verifier.Verify(r.Context(), token)
			if err != nil {
				httpx.ErrorWith(w, http.StatusForbidden, "invalid or expired token", err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// WithClaims attaches verified caller claims to the context. RequireAuth does
// this on every authenticated request; handler tests use it directly.
func WithClaims(ctx context.Context, claims auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// GetClaims returns the verified caller claims stored by RequireAuth.
func GetClaims(ctx context.Context) (auth.Claims, bool) {
	v := ctx.Value(claimsKey)
	if v == nil {
		return auth.Claims{}, false
	}
	c, ok := v.(auth.Claims)
	return c, ok
}

func bearerToken(authHeader string) string {
	if strings.TrimSpace(authHeader) == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
