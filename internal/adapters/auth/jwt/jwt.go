// Package jwt implements the auth ports with locally signed HS256 tokens.
package jwt

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"cat-health-api/internal/ports/auth"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
)

type tokenClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// Manager issues and verifies tokens with a shared HMAC secret.
// Tokens are stateless: validity is purely signature plus expiry.
type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewManager(secret []byte, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Manager{
		secret: secret,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue signs a token carrying the user id and email, expiring after the
// configured TTL.
func (m *Manager) Issue(claims auth.Claims) (string, error) {
	if strings.TrimSpace(claims.UserID) == "" {
		return "", errors.New("claims missing user id")
	}

	now := m.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
		UserID: claims.UserID,
		Email:  claims.Email,
	})

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the embedded claims.
// Expiry is validated against the manager's clock rather than the library's
// package-level time source, so it stays injectable per instance.
func (m *Manager) Verify(_ context.Context, tokenString string) (auth.Claims, error) {
	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return m.secret, nil
		},
		jwt.WithoutClaimsValidation(),
	)
	if err != nil || !token.Valid {
		return auth.Claims{}, ErrInvalidToken
	}

	if claims.ExpiresAt == nil || !m.now().Before(claims.ExpiresAt.Time) {
		return auth.Claims{}, ErrInvalidToken
	}

	if strings.TrimSpace(claims.UserID) == "" {
		return auth.Claims{}, ErrInvalidToken
	}

	return auth.Claims{UserID: claims.UserID, Email: claims.Email}, nil
}
