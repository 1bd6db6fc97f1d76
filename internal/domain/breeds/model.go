package breeds

import "errors"

// Breed describe la raza registrada para una mascota concreta; su
// cadena de propiedad es breed -> pet -> client -> cpf.
type Breed struct {
	ID          string
	PetID       string
	Description string
}

var (
	ErrNotFound     = errors.New("breed not found")
	ErrInvalidInput = errors.New("invalid input")
)
