package clients

import (
	"errors"
	"time"
)

// Client es la raíz de la cadena de propiedad: todo recurso del sistema
// cuelga (directa o transitivamente) de un Client, y el Client referencia
// al User dueño vía CPF.
type Client struct {
	ID               string
	Name             string
	CPF              string
	Image            string // nombre de archivo registrado; vacío = sin imagen
	RegistrationDate time.Time
}

var (
	ErrNotFound     = errors.New("client not found")
	ErrInvalidInput = errors.New("invalid input")
)
