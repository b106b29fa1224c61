package model

// Role determines which routes and operations a session may use.
type Role string

const (
	// RoleNone marks a route without a role requirement, or a session without a role.
	RoleNone  Role = ""
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// ParseRole maps the stored or remote representation onto a Role.
// Unknown values yield RoleNone.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleAdmin:
		return RoleAdmin
	case RoleUser:
		return RoleUser
	default:
		return RoleNone
	}
}
