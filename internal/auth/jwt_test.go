package auth_test

import (
	"testing"
	"time"

	"github.com/rahulk1255/taskhub/internal/auth"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	m := auth.NewManager("test-secret-key", time.Hour)

	token, err := m.GenerateAccessToken("user-1", "a@x.com")

	if err != nil {
		t.Fatalf("GenerateAccessToken returned error: %v", err)
	}

	claims, err := m.VerifyAccessToken(token)

	if err != nil {
		t.Fatalf("VerifyAccessToken rejected a fresh token: %v", err)
	}

	if claims.Subject != "user-1" {
		t.Fatalf("subject mismatch: got %q want %q", claims.Subject, "user-1")
	}

	if claims.Email != "a@x.com" {
		t.Fatalf("email mismatch: got %q want %q", claims.Email, "a@x.com")
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	// negative TTL produces an already-expired token
	m := auth.NewManager("test-secret-key", -time.Minute)

	token, err := m.GenerateAccessToken("user-1", "a@x.com")

	if err != nil {
		t.Fatalf("GenerateAccessToken returned error: %v", err)
	}

	_, err = m.VerifyAccessToken(token)

	if err == nil {
		t.Fatalf("expected expired token to be rejected")
	}
}

func TestVerifyTamperedToken(t *testing.T) {
	issuer := auth.NewManager("issuer-secret", time.Hour)
	verifier := auth.NewManager("other-secret", time.Hour)

	token, err := issuer.GenerateAccessToken("user-1", "a@x.com")

	if err != nil {
		t.Fatalf("GenerateAccessToken returned error: %v", err)
	}

	_, err = verifier.VerifyAccessToken(token)

	if err == nil {
		t.Fatalf("expected token signed with a different secret to be rejected")
	}
}

func TestVerifyGarbageToken(t *testing.T) {
	m := auth.NewManager("test-secret-key", time.Hour)

	for _, tok := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := m.VerifyAccessToken(tok)

		if err == nil {
			t.Fatalf("expected %q to be rejected", tok)
		}
	}
}
