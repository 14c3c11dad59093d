package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestSignAndVerify_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")
	tok, err := signToken("user-123", secret, time.Hour)
	if err != nil {
		t.Fatalf("signToken error: %v", err)
	}

	userID, err := verifyToken(tok, secret)
	if err != nil {
		t.Fatalf("verifyToken error: %v", err)
	}
	if userID != "user-123" {
		t.Fatalf("userID mismatch: got %q want %q", userID, "user-123")
	}
}

func TestVerifyToken_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	// A negative ttl embeds an already-past expiry claim.
	tok, err := signToken("u1", secret, -1*time.Second)
	if err != nil {
		t.Fatalf("signToken error: %v", err)
	}

	_, err = verifyToken(tok, secret)
	if err == nil {
		t.Fatal("expected error for expired token, got nil")
	}
	if !errors.Is(err, jwt.ErrTokenExpired) {
		t.Fatalf("expected jwt.ErrTokenExpired, got %v", err)
	}
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := signToken("u2", []byte("right-secret"), time.Hour)
	if err != nil {
		t.Fatalf("signToken error: %v", err)
	}

	if _, err := verifyToken(tok, []byte("wrong-secret")); err == nil {
		t.Fatal("expected error for wrong secret, got nil")
	}
}

func TestSignToken_NoTTLHasNoExpiry(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	tok, err := signToken("u3", secret, 0)
	if err != nil {
		t.Fatalf("signToken error: %v", err)
	}

	userID, err := verifyToken(tok, secret)
	if err != nil {
		t.Fatalf("verifyToken error: %v", err)
	}
	if userID != "u3" {
		t.Fatalf("userID mismatch: got %q", userID)
	}
}
