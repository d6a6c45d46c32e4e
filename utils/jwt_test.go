package utils

import "testing"

func TestIssueAndVerifyToken(t *testing.T) {
	token, err := IssueToken("uuid-1", "ravi@example.com", "Ravi", "customer", []string{"medcare.customer.full-permit"})
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}
	if token == "" {
		t.Fatal("IssueToken() returned empty token")
	}

	claims, err := VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken() error = %v", err)
	}

	if claims["uuid"] != "uuid-1" {
		t.Errorf("uuid claim = %v, want uuid-1", claims["uuid"])
	}
	if claims["sub"] != "ravi@example.com" {
		t.Errorf("sub claim = %v, want ravi@example.com", claims["sub"])
	}
	if claims["role"] != "customer" {
		t.Errorf("role claim = %v, want customer", claims["role"])
	}

	perms, ok := claims["permissions"].([]interface{})
	if !ok || len(perms) != 1 || perms[0] != "medcare.customer.full-permit" {
		t.Errorf("permissions claim = %v", claims["permissions"])
	}
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	if _, err := VerifyToken("not.a.token"); err == nil {
		t.Error("expected error for malformed token")
	}
	if _, err := VerifyToken(""); err == nil {
		t.Error("expected error for empty token")
	}
}
