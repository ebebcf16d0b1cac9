package service

import (
	"testing"
	"time"

	"github.com/mindtrack/stress-api/internal/core/domain"
)

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)

	token, err := issuer.Issue("user-123")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}

	userID, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if userID != "user-123" {
		t.Fatalf("expected user-123, got %s", userID)
	}
}

func TestTokenIssuer_DefaultTTL(t *testing.T) {
	issuer := NewTokenIssuer("secret", 0)
	if issuer.ttl != defaultTokenTTL {
		t.Fatalf("expected 7-day default TTL, got %v", issuer.ttl)
	}
}

func TestTokenIssuer_Expired(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)

	base := time.Now()
	issuer.now = func() time.Time { return base }

	token, err := issuer.Issue("user-123")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	issuer.now = func() time.Time { return base.Add(time.Hour + time.Second) }
	if _, err := issuer.Verify(token); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken after expiry, got %v", err)
	}
}

func TestTokenIssuer_WrongSecret(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	other := NewTokenIssuer("other-secret", time.Hour)

	token, err := issuer.Issue("user-123")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if _, err := other.Verify(token); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestTokenIssuer_Malformed(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		if _, err := issuer.Verify(token); err != domain.ErrInvalidToken {
			t.Fatalf("expected ErrInvalidToken for %q, got %v", token, err)
		}
	}
}
