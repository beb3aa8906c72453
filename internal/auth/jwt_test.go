package auth

import (
	"testing"
	"time"
)

func TestGenerateAndValidateToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-for-testing-only")

	token, err := GenerateToken("user-1", "company-1", RoleChef, SessionTTL)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	userID, companyID, role, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("failed to validate token: %v", err)
	}
	if userID != "user-1" {
		t.Errorf("expected userID user-1, got %s", userID)
	}
	if companyID != "company-1" {
		t.Errorf("expected companyID company-1, got %s", companyID)
	}
	if role != RoleChef {
		t.Errorf("expected role %s, got %s", RoleChef, role)
	}
}

func TestGenerateTokenRejectsEmptyUserID(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-for-testing-only")

	if _, err := GenerateToken("", "company-1", RoleUser, SessionTTL); err == nil {
		t.Fatalf("expected error for empty userID")
	}
}

func TestValidateTokenRejectsExpiredToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-for-testing-only")

	token, err := GenerateToken("user-1", "company-1", RoleUser, -time.Minute)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	if _, _, _, err := ValidateToken(token); err == nil {
		t.Fatalf("expected error for expired token")
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-for-testing-only")

	if _, _, _, err := ValidateToken("not-a-token"); err == nil {
		t.Fatalf("expected error for malformed token")
	}
}
