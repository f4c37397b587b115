package utils

import "testing"

func TestIssueAndValidateToken(t *testing.T) {
	if err := InitJWT("test-secret", ""); err != nil {
		t.Fatalf("InitJWT: %v", err)
	}

	token, err := IssueToken("user-1", "alice", "admin")
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != "user-1" || claims.UserName != "alice" || claims.Role != "admin" {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	if err := InitJWT("test-secret", ""); err != nil {
		t.Fatalf("InitJWT: %v", err)
	}
	token, err := IssueToken("user-1", "alice", "student")
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	if _, err := ValidateToken(token + "x"); err == nil {
		t.Fatal("tampered token accepted")
	}
	if _, err := ValidateToken("not-a-token"); err == nil {
		t.Fatal("garbage token accepted")
	}

	// Token signed with a different secret must not verify.
	InitJWT("other-secret", "")
	if _, err := ValidateToken(token); err == nil {
		t.Fatal("token with wrong signature accepted")
	}
}
