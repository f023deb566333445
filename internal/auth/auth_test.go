package auth

import (
	"strings"
	"testing"
)

func TestGenerateAndValidateJWT(t *testing.T) {
	token, err := GenerateJWT("507f1f77bcf86cd799439011", "instructor")
	if err != nil {
		t.Fatalf("GenerateJWT failed: %v", err)
	}

	claims, err := ValidateJWT(token)
	if err != nil {
		t.Fatalf("ValidateJWT failed: %v", err)
	}
	if claims.UserID != "507f1f77bcf86cd799439011" {
		t.Fatalf("unexpected user id %q", claims.UserID)
	}
	if claims.Role != "instructor" {
		t.Fatalf("unexpected role %q", claims.Role)
	}
}

func TestValidateJWT_RejectsTamperedToken(t *testing.T) {
	token, err := GenerateJWT("507f1f77bcf86cd799439011", "student")
	if err != nil {
		t.Fatalf("GenerateJWT failed: %v", err)
	}

	parts := strings.Split(token, ".")
	parts[2] = strings.Repeat("x", len(parts[2]))
	if _, err := ValidateJWT(strings.Join(parts, ".")); err == nil {
		t.Fatalf("expected tampered token to be rejected")
	}
}

func TestValidateJWT_RejectsGarbage(t *testing.T) {
	if _, err := ValidateJWT("not-a-token"); err == nil {
		t.Fatalf("expected garbage token to be rejected")
	}
}

func TestSetSecret_InvalidatesOldTokens(t *testing.T) {
	token, err := GenerateJWT("507f1f77bcf86cd799439011", "admin")
	if err != nil {
		t.Fatalf("GenerateJWT failed: %v", err)
	}

	old := jwtSecret
	SetSecret("a-fresh-secret")
	defer func() { jwtSecret = old }()

	if _, err := ValidateJWT(token); err == nil {
		t.Fatalf("expected token signed with the old secret to be rejected")
	}
}
