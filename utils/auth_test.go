package utils

import (
	"testing"
	"time"
)

func TestJWTTokenRoundTrip(t *testing.T) {
	SetJWTSecret("test-secret")

	token, err := GenerateJWTToken("alice@example.com", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWTToken failed: %v", err)
	}

	ok, email, err := ValidateTokenAndFetchEmail(token)
	if err != nil || !ok {
		t.Fatalf("ValidateTokenAndFetchEmail failed: %v", err)
	}
	if email != "alice@example.com" {
		t.Errorf("Expected email to round-trip, got %q", email)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	SetJWTSecret("test-secret")

	token, err := GenerateJWTToken("bob@example.com", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateJWTToken failed: %v", err)
	}

	if _, err := ParseJWTToken(token); err != ErrTokenExpired {
		t.Errorf("Expected ErrTokenExpired, got: %v", err)
	}
}

func TestMalformedTokenRejected(t *testing.T) {
	SetJWTSecret("test-secret")

	if _, err := ParseJWTToken("not-a-token"); err != ErrInvalidToken {
		t.Errorf("Expected ErrInvalidToken, got: %v", err)
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter2!")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if !CheckPasswordHash("hunter2!", hash) {
		t.Error("Expected correct password to verify")
	}
	if CheckPasswordHash("wrong", hash) {
		t.Error("Expected wrong password to fail verification")
	}
}

func TestExtractNameFromEmail(t *testing.T) {
	if got := ExtractNameFromEmail("carol@example.com"); got != "carol" {
		t.Errorf("Expected carol, got %q", got)
	}
	if got := ExtractNameFromEmail("no-at-sign"); got != "no-at-sign" {
		t.Errorf("Expected input returned unchanged, got %q", got)
	}
}
