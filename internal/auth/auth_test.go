package auth

import (
	"errors"
	"testing"
	"time"
)

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-password")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash == "s3cret-password" {
		t.Fatal("password stored in the clear")
	}
	if err := CheckPassword(hash, "s3cret-password"); err != nil {
		t.Errorf("correct password rejected: %v", err)
	}
	if err := CheckPassword(hash, "wrong"); err == nil {
		t.Error("wrong password accepted")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	m := NewManager("unit-test-secret-0123456789", time.Hour)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	token, err := m.IssueToken("user-42", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := m.VerifyToken(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "user-42" {
		t.Errorf("subject = %q, want user-42", got)
	}
}

func TestTokenExpiry(t *testing.T) {
	m := NewManager("unit-test-secret-0123456789", time.Hour)
	issued := time.Now().Add(-2 * time.Hour)

	token, err := m.IssueToken("user-42", issued)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := m.VerifyToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	issuer := NewManager("unit-test-secret-0123456789", time.Hour)
	verifier := NewManager("another-secret-9876543210", time.Hour)

	token, err := issuer.IssueToken("user-42", time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := verifier.VerifyToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for forged token, got %v", err)
	}
}

func TestTokenGarbage(t *testing.T) {
	m := NewManager("unit-test-secret-0123456789", time.Hour)
	if _, err := m.VerifyToken("not.a.token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
