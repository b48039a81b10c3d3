package utils

import (
	"errors"
	"testing"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("Secret@123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "Secret@123" {
		t.Fatal("hash equals the plaintext password")
	}
	if !CheckPassword(hash, "Secret@123") {
		t.Error("CheckPassword rejected the correct password")
	}
	if CheckPassword(hash, "Wrong@123") {
		t.Error("CheckPassword accepted a wrong password")
	}
}

func TestValidatePasswordPolicy(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid", "User@123", false},
		{"too short", "U@1a", true},
		{"no uppercase", "user@123", true},
		{"no lowercase", "USER@123", true},
		{"no digit", "User@abc", true},
		{"no special", "User1234", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidatePasswordPolicy(tc.password)
			if tc.wantErr && !errors.Is(err, ErrWeakPassword) {
				t.Errorf("ValidatePasswordPolicy(%q) = %v, want ErrWeakPassword", tc.password, err)
			}
			if !tc.wantErr && err != nil {
				t.Errorf("ValidatePasswordPolicy(%q) = %v, want nil", tc.password, err)
			}
		})
	}
}
