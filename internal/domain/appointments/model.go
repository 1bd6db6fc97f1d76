package appointments

import (
	"errors"
	"time"
)

// Appointment registra una atención de una mascota; su cadena de
// propiedad es appointment -> pet -> client -> cpf.
type Appointment struct {
	ID          string
	PetID       string
	Description string
	Cost        float64
	Date        time.Time
}

var (
	ErrNotFound     = errors.New("appointment not found")
	ErrInvalidInput = errors.New("invalid input")
)
