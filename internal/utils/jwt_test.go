package utils

import (
	"testing"
)

func TestGenerateAndParseToken(t *testing.T) {
	SetJWTSecret("unit-test-secret")

	token, err := GenerateToken(42, "alice", 1)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Username != "alice" {
		t.Errorf("Username = %q, want %q", claims.Username, "alice")
	}
	if claims.Issuer != "listloop" {
		t.Errorf("Issuer = %q, want %q", claims.Issuer, "listloop")
	}
}

func TestParseTokenInvalid(t *testing.T) {
	SetJWTSecret("unit-test-secret")

	if _, err := ParseToken("not.a.token"); err == nil {
		t.Error("expected error for malformed token, got nil")
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	SetJWTSecret("secret-one")
	token, err := GenerateToken(1, "bob", 1)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	SetJWTSecret("secret-two")
	if _, err := ParseToken(token); err == nil {
		t.Error("expected error for token signed with a different secret, got nil")
	}
}

func TestGenerateTokenDefaultExpiry(t *testing.T) {
	SetJWTSecret("unit-test-secret")

	token, err := GenerateToken(7, "carol", 0)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if claims.ExpiresAt == nil {
		t.Error("expected an expiry to be set")
	}
}
