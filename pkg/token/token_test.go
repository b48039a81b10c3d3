package token

import (
	"testing"
)

const testSecret = "test-secret-key"

func TestGenerateAndValidateJWT(t *testing.T) {
	signed, err := GenerateJWT(42, "john@example.com", "USER", testSecret, 60)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	claims, err := ValidateJWT(signed, testSecret)
	if err != nil {
		t.Fatalf("ValidateJWT: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Email != "john@example.com" {
		t.Errorf("Email = %q, want john@example.com", claims.Email)
	}
	if claims.Role != "USER" {
		t.Errorf("Role = %q, want USER", claims.Role)
	}
}

func TestValidateJWTRejectsWrongSecret(t *testing.T) {
	signed, err := GenerateJWT(42, "john@example.com", "USER", testSecret, 60)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	if _, err := ValidateJWT(signed, "another-secret"); err == nil {
		t.Error("ValidateJWT accepted a token signed with another secret")
	}
}

func TestValidateJWTRejectsExpiredToken(t *testing.T) {
	signed, err := GenerateJWT(42, "john@example.com", "USER", testSecret, -1)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	if _, err := ValidateJWT(signed, testSecret); err == nil {
		t.Error("ValidateJWT accepted an expired token")
	}
}

func TestValidateJWTRejectsZeroUserID(t *testing.T) {
	signed, err := GenerateJWT(0, "john@example.com", "USER", testSecret, 60)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	if _, err := ValidateJWT(signed, testSecret); err == nil {
		t.Error("ValidateJWT accepted a token without a user id")
	}
}

func TestValidateJWTRejectsGarbage(t *testing.T) {
	if _, err := ValidateJWT("", testSecret); err == nil {
		t.Error("ValidateJWT accepted an empty token")
	}
	if _, err := ValidateJWT("not.a.token", testSecret); err == nil {
		t.Error("ValidateJWT accepted a malformed token")
	}
}
