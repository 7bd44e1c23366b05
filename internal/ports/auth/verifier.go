package auth

import "context"

// TokenVerifier verifies a bearer token and returns its claims or an error.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// TokenIssuer signs a token for the given claims.
type TokenIssuer interface {
	Issue(claims Claims) (string, error)
}
