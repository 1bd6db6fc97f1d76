package users

import (
	"context"
	"errors"

	"petshop-api/internal/ports/auth"
)

// SeedConfig describe el ADMIN inicial del sistema.
type SeedConfig struct {
	CPF      string
	Name     string
	Password string
}

// EnsureAdmin crea el ADMIN inicial si el CPF configurado no existe
// todavía. Idempotente; pensado para correr en cada arranque.
func EnsureAdmin(ctx context.Context, svc *Service, cfg SeedConfig) (created bool, err error) {
	if _, err := svc.Get(ctx, cfg.CPF); err == nil {
		return false, nil
	} else if !errors.Is(err, ErrNotFound) {
		return false, err
	}

	_, err = svc.Create(ctx, CreateInput{
		CPF:      cfg.CPF,
		Name:     cfg.Name,
		Password: cfg.Password,
		Role:     auth.RoleAdmin,
	})
	if errors.Is(err, ErrConflict) {
		// carrera con otra instancia arrancando: ya está
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
