package addresses

import "errors"

// Address cuelga directamente de un Client.
type Address struct {
	ID           string
	ClientID     string
	Street       string
	City         string
	Neighborhood string
	Complement   string
	Tag          string // etiqueta libre: "casa", "trabajo", etc.
}

var (
	ErrNotFound     = errors.New("address not found")
	ErrInvalidInput = errors.New("invalid input")
)
