package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims is the JWT payload issued on login and refresh. The registered
// subject claim carries the user's email; the user claim carries the full
// identity injected into authenticated requests.
type AuthClaims struct {
	User Identity `json:"user"`
	jwt.RegisteredClaims
}
