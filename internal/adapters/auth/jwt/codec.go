package jwt

import (
	"context"
	"errors"
	"strings"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"

	"petshop-api/internal/ports/auth"
)

// ErrInvalidToken cubre firma inválida, vencido, issuer ajeno y claims
// incompletas. No se distingue el motivo hacia afuera.
var ErrInvalidToken = errors.New("invalid token")

// Codec emite y verifica tokens HS256 con TTL fijo. Claims: sub (nombre),
// cpf y role, más iss/iat/exp estándar.
type Codec struct {
	secret []byte
	iss    string
	ttl    time.Duration
	now    func() time.Time
}

func NewCodec(secret, iss string, ttl time.Duration) *Codec {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Codec{
		secret: []byte(secret),
		iss:    iss,
		ttl:    ttl,
		now:    time.Now,
	}
}

func (c *Codec) Issue(cl auth.Claims) (string, time.Time, error) {
	now := c.now().UTC()
	exp := now.Add(c.ttl)

	tk := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, jwtv5.MapClaims{
		"iss":  c.iss,
		"sub":  cl.Name,
		"iat":  now.Unix(),
		"exp":  exp.Unix(),
		"cpf":  cl.CPF,
		"role": string(cl.Role),
	})

	signed, err := tk.SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

func (c *Codec) Verify(ctx context.Context, token string) (auth.Claims, error) {
	tok, err := jwtv5.Parse(token,
		func(t *jwtv5.Token) (any, error) { return c.secret, nil },
		jwtv5.WithValidMethods([]string{"HS256"}),
		jwtv5.WithIssuer(c.iss),
		jwtv5.WithExpirationRequired(),
		jwtv5.WithTimeFunc(c.now),
	)
	if err != nil || !tok.Valid {
		return auth.Claims{}, ErrInvalidToken
	}

	mc, ok := tok.Claims.(jwtv5.MapClaims)
	if !ok {
		return auth.Claims{}, ErrInvalidToken
	}

	sub, _ := mc["sub"].(string)
	cpf, _ := mc["cpf"].(string)
	roleRaw, _ := mc["role"].(string)

	role, ok := auth.ParseRole(roleRaw)
	if !ok || strings.TrimSpace(sub) == "" || strings.TrimSpace(cpf) == "" {
		return auth.Claims{}, ErrInvalidToken
	}

	return auth.Claims{Name: sub, CPF: cpf, Role: role}, nil
}
