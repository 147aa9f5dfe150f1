package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pageza/pikasmart/backend/internal/types"
)

// Token lifetimes per scope.
const (
	SessionTokenTTL       = 24 * time.Hour
	PasswordResetTokenTTL = 10 * time.Minute
)

// TokenService issues and verifies stateless HS256 capability tokens. The
// scope is carried in the audience claim so a reset token can never be used
// as a session and vice versa. Tokens cannot be revoked before they expire.
type TokenService struct {
	secret []byte
	now    func() time.Time
}

func NewTokenService(secret string) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		now:    time.Now,
	}
}

// WithClock replaces the time source. Tests use it to mint already-expired tokens.
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	return &TokenService{secret: s.secret, now: now}
}

func ttlFor(scope types.TokenScope) time.Duration {
	if scope == types.ScopePasswordReset {
		return PasswordResetTokenTTL
	}
	return SessionTokenTTL
}

// Issue signs a token bound to email for the given scope.
func (s *TokenService) Issue(scope types.TokenScope, email string) (string, error) {
	issuedAt := s.now()
	claims := types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Audience:  jwt.ClaimStrings{string(scope)},
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttlFor(scope))),
		},
		Email: email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, expiry and scope and returns the bound email.
func (s *TokenService) Verify(scope types.TokenScope, tokenString string) (string, error) {
	if tokenString == "" {
		return "", ErrTokenMissing
	}

	claims := &types.TokenClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(string(scope)),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	if claims.Email == "" {
		return "", ErrTokenInvalid
	}
	return claims.Email, nil
}
