package auth

import (
	"context"
	"time"
)

// Verifier verifica un token y devuelve claims o error.
type Verifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// Issuer emite un token firmado con vencimiento fijo para el principal dado.
type Issuer interface {
	Issue(c Claims) (token string, expiresAt time.Time, err error)
}
