package auth

import (
	"testing"

	"icc-dashboard/internal/config"
)

func testManager(secret string) *JWTManager {
	cfg := &config.Config{}
	cfg.Session.Secret = secret
	cfg.Session.Issuer = "icc-dashboard"
	cfg.Session.TTLHours = 1
	return NewJWTManager(cfg)
}

func TestSessionTokenRoundTrip(t *testing.T) {
	m := testManager("test-secret")

	token, err := m.GenerateSessionToken("sid-1")
	if err != nil {
		t.Fatalf("GenerateSessionToken failed: %v", err)
	}
	claims, err := m.ValidateSessionToken(token)
	if err != nil {
		t.Fatalf("ValidateSessionToken failed: %v", err)
	}
	if claims.SessionID != "sid-1" {
		t.Fatalf("sid mismatch: %q", claims.SessionID)
	}

	if _, err := testManager("other-secret").ValidateSessionToken(token); err == nil {
		t.Fatal("expected verification error with wrong secret")
	}
	if _, err := m.ValidateSessionToken("garbage"); err == nil {
		t.Fatal("expected error for garbage token")
	}
}
