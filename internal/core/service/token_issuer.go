package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenIssuer mints and verifies HS256 session tokens carrying the user
// identifier as their only claim. Tokens stay valid until natural expiry;
// there is no server-side revocation.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenIssuer builds an issuer with the process-wide signing secret.
// A non-positive ttl defaults to 24 hours.
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl}
}

// Mint signs a token bound to userID, expiring ttl from now.
func (t *TokenIssuer) Mint(userID string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(t.ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// Verify parses and validates a token, returning the embedded user
// identifier. Expired, malformed, badly signed, or non-HS256 tokens fail.
func (t *TokenIssuer) Verify(token string) (string, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(tok *jwt.Token) (interface{}, error) {
		if tok.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return t.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("parse token: %w", err)
	}
	if !tkn.Valid {
		return "", jwt.ErrTokenSignatureInvalid
	}

	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return "", errors.New("token missing user identity")
	}
	return userID, nil
}
