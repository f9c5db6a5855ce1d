// Package authz implements the authorization decision engine: a totally
// ordered role hierarchy, an account lifecycle gate, a static permission
// table, and pure decision composers for projects and tasks. The package
// performs no I/O and holds no state; callers supply fresh actor and
// relationship snapshots and enforce the returned decisions.
package authz

// Role is a position in the totally ordered privilege hierarchy.
type Role int

// Role levels. RoleUnknown carries no privileges and is the fail-closed
// result for unrecognized input.
const (
	RoleUnknown    Role = 0
	RoleVolunteer  Role = 1
	RoleStaff      Role = 2
	RoleAdmin      Role = 3
	RoleSuperAdmin Role = 4
)

var roleNames = map[Role]string{
	RoleVolunteer:  "volunteer",
	RoleStaff:      "staff",
	RoleAdmin:      "admin",
	RoleSuperAdmin: "super_admin",
}

var rolesByName = map[string]Role{
	"volunteer":   RoleVolunteer,
	"staff":       RoleStaff,
	"admin":       RoleAdmin,
	"super_admin": RoleSuperAdmin,
}

// ParseRole maps a stored role name to a Role. Unrecognized values resolve
// to RoleUnknown rather than an error.
func ParseRole(name string) Role {
	if role, ok := rolesByName[name]; ok {
		return role
	}
	return RoleUnknown
}

// String returns the stored name for the role, or "unknown".
func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "unknown"
}

// Valid reports whether the role is one of the four known levels.
func (r Role) Valid() bool {
	_, ok := roleNames[r]
	return ok
}

// HasMinimumRole reports whether role is at least as privileged as required.
// Unknown roles never satisfy any requirement, including RoleUnknown itself.
func HasMinimumRole(role, required Role) bool {
	if !role.Valid() || !required.Valid() {
		return false
	}
	return role >= required
}

// IsStaffOrAbove reports whether the role is staff, admin, or super admin.
func IsStaffOrAbove(role Role) bool {
	return HasMinimumRole(role, RoleStaff)
}

// IsAdmin reports whether the role is admin or super admin.
func IsAdmin(role Role) bool {
	return HasMinimumRole(role, RoleAdmin)
}

// IsSuperAdmin reports whether the role is super admin.
func IsSuperAdmin(role Role) bool {
	return HasMinimumRole(role, RoleSuperAdmin)
}
