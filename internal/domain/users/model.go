package users

import (
	"errors"

	"petshop-api/internal/ports/auth"
)

// User es la identidad persistida. El CPF es la clave primaria e
// inmutable; el hash jamás se serializa hacia afuera.
type User struct {
	CPF          string
	Name         string
	Role         auth.Role
	PasswordHash string
}

var (
	ErrNotFound     = errors.New("user not found")
	ErrInvalidInput = errors.New("invalid input")
	// ErrConflict: CPF o nombre ya registrados. El nombre es único porque
	// el login resuelve por nombre.
	ErrConflict = errors.New("user already exists")
	// ErrInvalidCredentials: nombre desconocido o password incorrecta,
	// indistinguibles a propósito.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
