package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/CianCode/Emetals-Web-App/domain"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", "emetals", time.Hour)

	token, err := svc.GenerateSessionToken(42, "user", "sess-1")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := svc.ValidateSessionToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("user id = %d, want 42", claims.UserID)
	}
	if claims.Role != "user" {
		t.Errorf("role = %q", claims.Role)
	}
	if claims.SessionID != "sess-1" {
		t.Errorf("session id = %q", claims.SessionID)
	}
	if claims.ExpiresAt <= claims.IssuedAt {
		t.Errorf("exp %d not after iat %d", claims.ExpiresAt, claims.IssuedAt)
	}
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	issuer := NewJWTService("secret-a", "emetals", time.Hour)
	verifier := NewJWTService("secret-b", "emetals", time.Hour)

	token, err := issuer.GenerateSessionToken(1, "user", "s1")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := verifier.ValidateSessionToken(token); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("err = %v, want ErrTokenInvalid", err)
	}
}

func TestValidateRejectsGarbage(t *testing.T) {
	svc := NewJWTService("test-secret", "emetals", time.Hour)

	for _, tok := range []string{"", "not-a-jwt", "a.b.c"} {
		if _, err := svc.ValidateSessionToken(tok); err == nil {
			t.Errorf("token %q accepted", tok)
		}
	}
}

func TestValidateRejectsExpired(t *testing.T) {
	svc := NewJWTService("test-secret", "emetals", -time.Minute)

	token, err := svc.GenerateSessionToken(1, "user", "s1")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := svc.ValidateSessionToken(token); err == nil {
		t.Error("expired token accepted")
	}
}
