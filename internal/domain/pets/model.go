package pets

import (
	"errors"
	"time"
)

// Pet cuelga de un Client; su cadena de propiedad es pet -> client -> cpf.
type Pet struct {
	ID       string
	ClientID string
	BreedID  string // referencia opcional; vacío = sin raza asignada
	Name     string
	Image    string
	// BirthDate es opcional: nil = desconocida.
	BirthDate *time.Time
}

var (
	ErrNotFound     = errors.New("pet not found")
	ErrInvalidInput = errors.New("invalid input")
)
