package authz

import "strings"

// adminPathPrefix guards the admin area: any path under it with no explicit
// table entry is denied instead of falling back to the active-only default.
const adminPathPrefix = "/admin"

// routePermissions maps route prefixes to the minimum role required to load
// the page. Paths not listed here require only an active account, except
// under the admin prefix which fails closed.
var routePermissions = map[string]Role{
	"/dashboard":      RoleVolunteer,
	"/projects":       RoleVolunteer,
	"/tasks":          RoleVolunteer,
	"/team":           RoleVolunteer,
	"/documents":      RoleVolunteer,
	"/announcements":  RoleVolunteer,
	"/reports":        RoleStaff,
	"/finance":        RoleAdmin,
	"/admin":          RoleAdmin,
	"/admin/users":    RoleAdmin,
	"/admin/roles":    RoleSuperAdmin,
	"/admin/settings": RoleSuperAdmin,
	"/admin/audit":    RoleAdmin,
}

// CanAccessRoute reports whether an account may load the given path. The
// lifecycle gate applies to every path; the role gate applies only to paths
// in the table. Unlisted admin paths are denied outright.
func CanAccessRoute(role Role, status Status, path string) bool {
	if !HasActiveStatus(status) {
		return false
	}
	if required, ok := routePermissions[normalizePath(path)]; ok {
		return HasMinimumRole(role, required)
	}
	if strings.HasPrefix(normalizePath(path), adminPathPrefix) {
		return false
	}
	return true
}

func normalizePath(path string) string {
	if path == "" {
		return "/"
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	return path
}
