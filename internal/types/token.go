package types

import (
	"github.com/golang-jwt/jwt/v5"
)

// TokenScope separates session tokens from password-reset tokens. It is
// carried in the audience claim so a token minted for one scope never
// verifies for the other.
type TokenScope string

const (
	ScopeSession       TokenScope = "session"
	ScopePasswordReset TokenScope = "password-reset"
)

// TokenClaims represents the claims in a JWT token
type TokenClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}
