package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"learnnote/internal/domain"
	"learnnote/internal/domain/models"
)

// TokenIssuer signs and verifies the HS256 bearer tokens handed out on login
// and refresh. The registered subject claim is the user's email.
type TokenIssuer struct {
	secret []byte
	expiry time.Duration
}

// NewTokenIssuer creates a token issuer with the given signing secret and TTL
func NewTokenIssuer(secret string, expiry time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(secret),
		expiry: expiry,
	}
}

// Issue builds and signs a token for a verified identity
func (i *TokenIssuer) Issue(user models.Identity) (string, error) {
	now := time.Now().UTC()
	claims := models.AuthClaims{
		User: user,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}

// Verify validates a token and extracts the embedded identity.
// Any parse, signature, or expiry failure maps to ErrUnauthorized.
func (i *TokenIssuer) Verify(tokenString string) (models.Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.AuthClaims{}, func(t *jwt.Token) (interface{}, error) {
		// Reject anything but HS256 to prevent algorithm confusion
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return i.secret, nil
	})
	if err != nil || !token.Valid {
		return models.Identity{}, domain.ErrUnauthorized
	}

	claims, ok := token.Claims.(*models.AuthClaims)
	if !ok || claims.User.ID == 0 {
		return models.Identity{}, domain.ErrUnauthorized
	}

	return claims.User, nil
}
