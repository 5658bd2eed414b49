package domain

// Role identifica el tipo de principal autenticado.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleDoctor Role = "doctor"
)

// ParseRole normaliza y valida un rol recibido por la API.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleOwner:
		return RoleOwner, true
	case RoleDoctor:
		return RoleDoctor, true
	default:
		return "", false
	}
}
