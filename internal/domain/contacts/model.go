package contacts

import "errors"

// Contact es un medio de contacto de un Client (teléfono, email, etc.).
type Contact struct {
	ID       string
	ClientID string
	Tag      string
	Type     string
	Value    string
}

var (
	ErrNotFound     = errors.New("contact not found")
	ErrInvalidInput = errors.New("invalid input")
)
