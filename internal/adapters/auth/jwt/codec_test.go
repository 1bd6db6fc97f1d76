package jwt

import (
	"context"
	"errors"
	"testing"
	"time"

	"petshop-api/internal/ports/auth"
)

func TestIssueAndVerify(t *testing.T) {
	c := NewCodec("test-secret", "petshop-api", time.Hour)

	in := auth.Claims{Name: "ana", CPF: "11111111111", Role: auth.RoleClient}
	token, exp, err := c.Issue(in)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if !exp.After(time.Now()) {
		t.Fatalf("expected future expiry, got %v", exp)
	}

	out, err := c.Verify(context.Background(), token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if out != in {
		t.Fatalf("claims roundtrip: got %+v want %+v", out, in)
	}
}

func TestVerifyExpired(t *testing.T) {
	c := NewCodec("test-secret", "petshop-api", time.Minute)

	token, _, err := c.Issue(auth.Claims{Name: "ana", CPF: "11111111111", Role: auth.RoleClient})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// adelantamos el reloj del verificador más allá del TTL
	c.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	if _, err := c.Verify(context.Background(), token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	issuer := NewCodec("secret-a", "petshop-api", time.Hour)
	verifier := NewCodec("secret-b", "petshop-api", time.Hour)

	token, _, err := issuer.Issue(auth.Claims{Name: "ana", CPF: "11111111111", Role: auth.RoleClient})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := verifier.Verify(context.Background(), token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestVerifyWrongIssuer(t *testing.T) {
	issuer := NewCodec("test-secret", "otro-servicio", time.Hour)
	verifier := NewCodec("test-secret", "petshop-api", time.Hour)

	token, _, err := issuer.Issue(auth.Claims{Name: "ana", CPF: "11111111111", Role: auth.RoleClient})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := verifier.Verify(context.Background(), token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for wrong issuer, got %v", err)
	}
}

func TestVerifyGarbage(t *testing.T) {
	c := NewCodec("test-secret", "petshop-api", time.Hour)
	if _, err := c.Verify(context.Background(), "no.es.un.jwt"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
