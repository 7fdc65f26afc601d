package model

// Role is the closed set of profile roles. Role checks must go through
// HasAccess rather than comparing raw strings at call sites.
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperadmin Role = "superadmin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleSuperadmin:
		return true
	}
	return false
}

// HasAccess reports whether role is one of the required roles.
func HasAccess(role Role, required ...Role) bool {
	for _, r := range required {
		if role == r {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the role carries tenant administration rights.
func (r Role) IsAdmin() bool {
	return HasAccess(r, RoleAdmin, RoleSuperadmin)
}
