package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestTokenIssuer_MintVerifyRoundtrip(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)

	token, err := issuer.Mint("user-42")
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	userID, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if userID != "user-42" {
		t.Fatalf("expected user-42, got %s", userID)
	}
}

func TestTokenIssuer_DefaultTTL(t *testing.T) {
	issuer := NewTokenIssuer("secret", 0)

	token, err := issuer.Mint("user-1")
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	claims := jwt.MapClaims{}
	if _, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	}); err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	exp, _ := claims["exp"].(float64)
	want := time.Now().Add(24 * time.Hour).Unix()
	if int64(exp) < want-60 || int64(exp) > want+60 {
		t.Fatalf("expected ~24h expiry, got %v", int64(exp)-time.Now().Unix())
	}
}

func TestTokenIssuer_Expired(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)

	claims := jwt.MapClaims{
		"user_id": "user-1",
		"exp":     time.Now().Add(-time.Minute).Unix(),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	if _, err := issuer.Verify(expired); err == nil {
		t.Fatalf("expected expired token to fail verification")
	}
}

func TestTokenIssuer_BadSignature(t *testing.T) {
	minted, err := NewTokenIssuer("other-secret", time.Hour).Mint("user-1")
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	if _, err := NewTokenIssuer("secret", time.Hour).Verify(minted); err == nil {
		t.Fatalf("expected token signed with a different secret to fail")
	}
}

func TestTokenIssuer_Malformed(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)

	if _, err := issuer.Verify("not-a-token"); err == nil {
		t.Fatalf("expected malformed token to fail")
	}
}

func TestTokenIssuer_MissingIdentityClaim(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)

	claims := jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()}
	anonymous, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	if _, err := issuer.Verify(anonymous); err == nil {
		t.Fatalf("expected token without user_id to fail")
	}
}
