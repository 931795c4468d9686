package auth

import (
	"testing"
	"time"
)

func TestNewVerifierRejectsEmptySecret(t *testing.T) {
	if _, err := NewVerifier(""); err == nil {
		t.Error("NewVerifier accepted an empty secret")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	verifier, err := NewVerifier("test-secret")
	if err != nil {
		t.Fatalf("NewVerifier failed: %v", err)
	}

	token, err := verifier.IssueToken("operator", []string{ScopeView, ScopeControl}, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}

	claims, err := verifier.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken failed: %v", err)
	}
	if claims.Subject != "operator" {
		t.Errorf("subject = %q, want operator", claims.Subject)
	}
	if !claims.HasScope(ScopeView) || !claims.HasScope(ScopeControl) {
		t.Errorf("scopes = %v, want both console scopes", claims.Scopes)
	}
	if claims.HasScope("console.admin") {
		t.Error("HasScope granted an unlisted scope")
	}
}

func TestVerifyTokenRejectsWrongSecret(t *testing.T) {
	issuer, _ := NewVerifier("secret-a")
	verifier, _ := NewVerifier("secret-b")

	token, err := issuer.IssueToken("operator", []string{ScopeView}, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}

	if _, err := verifier.VerifyToken(token); err == nil {
		t.Error("VerifyToken accepted a token signed with another secret")
	}
}

func TestVerifyTokenRejectsExpired(t *testing.T) {
	verifier, _ := NewVerifier("test-secret")

	token, err := verifier.IssueToken("operator", []string{ScopeView}, -time.Minute)
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}

	if _, err := verifier.VerifyToken(token); err == nil {
		t.Error("VerifyToken accepted an expired token")
	}
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	verifier, _ := NewVerifier("test-secret")

	for _, token := range []string{"", "   ", "not.a.jwt"} {
		if _, err := verifier.VerifyToken(token); err == nil {
			t.Errorf("VerifyToken accepted %q", token)
		}
	}
}
