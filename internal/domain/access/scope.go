package access

import "petshop-api/internal/ports/auth"

// Scope expresa el alcance de acceso de un principal sobre los recursos.
//
// Un scope sin restricción (ADMIN) opera sobre el conjunto completo. Un
// scope restringido limita cada lectura, update y delete a los registros
// cuya cadena de propiedad (recurso -> ... -> cliente -> cpf) termina en
// el CPF del principal. Los repositorios componen este predicado en sus
// consultas; un registro fuera de scope es indistinguible de uno
// inexistente.
type Scope struct {
	cpf        string
	restricted bool
}

// Unrestricted devuelve el scope sin filtro de propiedad.
func Unrestricted() Scope { return Scope{} }

// OwnedBy devuelve el scope limitado a la cadena de propiedad del CPF dado.
func OwnedBy(cpf string) Scope { return Scope{cpf: cpf, restricted: true} }

// ForPrincipal mapea el principal autenticado a su scope: ADMIN ve todo,
// CLIENT solo lo propio.
func ForPrincipal(c auth.Claims) Scope {
	if c.Role == auth.RoleAdmin {
		return Unrestricted()
	}
	return OwnedBy(c.CPF)
}

func (s Scope) Restricted() bool { return s.restricted }

// CPF devuelve el CPF dueño; vacío cuando el scope no está restringido.
func (s Scope) CPF() string { return s.cpf }
