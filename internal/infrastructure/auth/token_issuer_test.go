package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestNewTokenIssuer_RequiresSecret(t *testing.T) {
	if _, err := NewTokenIssuer("", 0); !errors.Is(err, ErrMissingSecret) {
		t.Fatalf("expected ErrMissingSecret, got %v", err)
	}
}

func TestIssueAndParse(t *testing.T) {
	i, err := NewTokenIssuer("s3cret", time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	i.now = func() time.Time { return now }

	token, err := i.Issue("m-1", "c-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	claims, err := i.Parse(token)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if claims.MontageID != "m-1" || claims.CustomerID != "c-1" || claims.Scope != customerScope {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	i.now = func() time.Time { return now.Add(2 * time.Hour) }
	if _, err := i.Parse(token); !errors.Is(err, jwt.ErrTokenExpired) {
		t.Fatalf("expected expired token, got %v", err)
	}
}

func TestParse_RejectsOtherSecret(t *testing.T) {
	a, _ := NewTokenIssuer("a", time.Hour)
	b, _ := NewTokenIssuer("b", time.Hour)

	token, err := a.Issue("m-1", "c-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := b.Parse(token); err == nil {
		t.Fatalf("expected signature error")
	}
}
