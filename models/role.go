package models

// Role is an enumerated capability checked by authorization.
// Roles are ordered: every superuser is also an ordinary user.
type Role int

const (
	// RoleUser is held by every active account.
	RoleUser Role = iota
	// RoleSuperuser is held by active accounts with the superuser flag.
	RoleSuperuser
)

// String returns the lowercase role name.
func (r Role) String() string {
	switch r {
	case RoleUser:
		return "user"
	case RoleSuperuser:
		return "superuser"
	default:
		return "unknown"
	}
}
