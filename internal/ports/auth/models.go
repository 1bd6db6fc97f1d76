package auth

// Role es el rol persistido del usuario y el embebido en el token.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleClient Role = "CLIENT"
)

// ParseRole valida un rol en texto plano (claims, payloads).
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleClient:
		return RoleClient, true
	default:
		return "", false
	}
}

// Claims es el principal autenticado del request: identidad extraída
// del token, válida solo durante ese request.
type Claims struct {
	Name string
	CPF  string
	Role Role
}
