package token

import (
	"testing"
	"time"
)

func TestSignAndVerify(t *testing.T) {
	v := NewVerifier("unit-test-secret", 15*time.Minute)

	signed, err := v.Sign(7, "seven@example.com", "user")
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}

	claims, err := v.Verify(signed)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if claims.UserID != 7 {
		t.Errorf("UserID = %d, want 7", claims.UserID)
	}
	if claims.Email != "seven@example.com" {
		t.Errorf("Email = %q, want seven@example.com", claims.Email)
	}
	if claims.Role != "user" {
		t.Errorf("Role = %q, want user", claims.Role)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	signer := NewVerifier("secret-a", 15*time.Minute)
	verifier := NewVerifier("secret-b", 15*time.Minute)

	signed, err := signer.Sign(1, "a@example.com", "user")
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}

	if _, err := verifier.Verify(signed); err != ErrInvalidToken {
		t.Errorf("Verify with wrong secret: err = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	v := &Verifier{secret: []byte("unit-test-secret"), ttl: -time.Minute}

	signed, err := v.Sign(1, "a@example.com", "user")
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}

	if _, err := v.Verify(signed); err != ErrInvalidToken {
		t.Errorf("Verify expired token: err = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	v := NewVerifier("unit-test-secret", 15*time.Minute)

	for _, tok := range []string{"", "not-a-jwt", "a.b.c"} {
		if _, err := v.Verify(tok); err != ErrInvalidToken {
			t.Errorf("Verify(%q): err = %v, want ErrInvalidToken", tok, err)
		}
	}
}
