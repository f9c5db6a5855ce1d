package authz

// Permission names, grouped by resource family. Each name is bound at
// definition time to a minimum role in permissionTable; adding a capability
// means adding one constant and one table entry.
const (
	// Users
	PermUsersView    = "users.view"
	PermUsersManage  = "users.manage"
	PermUsersApprove = "users.approve"
	PermUsersDelete  = "users.delete"
	PermRolesManage  = "roles.manage"

	// Projects
	PermProjectsView          = "projects.view"
	PermProjectsViewAll       = "projects.view.all"
	PermProjectsCreate        = "projects.create"
	PermProjectsEditOwn       = "projects.edit.own"
	PermProjectsEditAll       = "projects.edit.all"
	PermProjectsDeleteOwn     = "projects.delete.own"
	PermProjectsDeleteAll     = "projects.delete.all"
	PermProjectsManageMembers = "projects.members.manage"

	// Tasks
	PermTasksView      = "tasks.view"
	PermTasksViewAll   = "tasks.view.all"
	PermTasksCreate    = "tasks.create"
	PermTasksEditOwn   = "tasks.edit.own"
	PermTasksEditAll   = "tasks.edit.all"
	PermTasksDeleteOwn = "tasks.delete.own"
	PermTasksDeleteAll = "tasks.delete.all"
	PermTasksAssign    = "tasks.assign"

	// Team
	PermTeamView   = "team.view"
	PermTeamManage = "team.manage"
	PermTeamInvite = "team.invite"

	// Finance
	PermFinanceView    = "finance.view"
	PermFinanceManage  = "finance.manage"
	PermFinanceApprove = "finance.approve"
	PermFinanceExport  = "finance.export"

	// Documents
	PermDocumentsView   = "documents.view"
	PermDocumentsUpload = "documents.upload"
	PermDocumentsEdit   = "documents.edit"
	PermDocumentsDelete = "documents.delete"

	// Reports
	PermReportsView   = "reports.view"
	PermReportsCreate = "reports.create"
	PermReportsExport = "reports.export"

	// Communication
	PermAnnouncementsView   = "announcements.view"
	PermAnnouncementsCreate = "announcements.create"
	PermAnnouncementsManage = "announcements.manage"
	PermNotificationsSend   = "notifications.send"

	// System
	PermSettingsManage = "settings.manage"
	PermAuditView      = "audit.view"
	PermSystemHealth   = "system.health"
)

// permissionTable binds every permission to the minimum role that holds it.
// The table deliberately ignores account status; the lifecycle gate is
// applied by callers so the table stays a pure role-to-capability mapping.
//
// The one structural pattern decisions rely on: "own" capabilities sit lower
// in the hierarchy than "all" capabilities of the same verb. In particular
// tasks.edit.own is granted at volunteer while tasks.edit.all and
// tasks.delete.own require staff. Swapping these thresholds silently changes
// who can touch their own items; see TestOwnVersusAllAsymmetry.
var permissionTable = map[string]Role{
	PermUsersView:    RoleAdmin,
	PermUsersManage:  RoleAdmin,
	PermUsersApprove: RoleAdmin,
	PermUsersDelete:  RoleSuperAdmin,
	PermRolesManage:  RoleSuperAdmin,

	PermProjectsView:          RoleVolunteer,
	PermProjectsViewAll:       RoleStaff,
	PermProjectsCreate:        RoleStaff,
	PermProjectsEditOwn:       RoleStaff,
	PermProjectsEditAll:       RoleAdmin,
	PermProjectsDeleteOwn:     RoleStaff,
	PermProjectsDeleteAll:     RoleAdmin,
	PermProjectsManageMembers: RoleStaff,

	PermTasksView:      RoleVolunteer,
	PermTasksViewAll:   RoleStaff,
	PermTasksCreate:    RoleStaff,
	PermTasksEditOwn:   RoleVolunteer,
	PermTasksEditAll:   RoleStaff,
	PermTasksDeleteOwn: RoleStaff,
	PermTasksDeleteAll: RoleStaff,
	PermTasksAssign:    RoleStaff,

	PermTeamView:   RoleVolunteer,
	PermTeamManage: RoleAdmin,
	PermTeamInvite: RoleStaff,

	PermFinanceView:    RoleAdmin,
	PermFinanceManage:  RoleAdmin,
	PermFinanceApprove: RoleAdmin,
	PermFinanceExport:  RoleAdmin,

	PermDocumentsView:   RoleVolunteer,
	PermDocumentsUpload: RoleStaff,
	PermDocumentsEdit:   RoleStaff,
	PermDocumentsDelete: RoleAdmin,

	PermReportsView:   RoleStaff,
	PermReportsCreate: RoleStaff,
	PermReportsExport: RoleAdmin,

	PermAnnouncementsView:   RoleVolunteer,
	PermAnnouncementsCreate: RoleStaff,
	PermAnnouncementsManage: RoleAdmin,
	PermNotificationsSend:   RoleStaff,

	PermSettingsManage: RoleSuperAdmin,
	PermAuditView:      RoleAdmin,
	PermSystemHealth:   RoleAdmin,
}

// HasPermission evaluates the permission's minimum-role predicate on role.
// Unknown permission names and unknown roles resolve to false, never panic.
// Status gating is the caller's responsibility.
func HasPermission(role Role, permission string) bool {
	required, ok := permissionTable[permission]
	if !ok {
		return false
	}
	return HasMinimumRole(role, required)
}

// PermissionNames returns every known permission name. Order is unspecified.
func PermissionNames() []string {
	names := make([]string, 0, len(permissionTable))
	for name := range permissionTable {
		names = append(names, name)
	}
	return names
}

// GrantedPermissions returns the permission names the role holds.
func GrantedPermissions(role Role) []string {
	granted := make([]string, 0, len(permissionTable))
	for name, required := range permissionTable {
		if HasMinimumRole(role, required) {
			granted = append(granted, name)
		}
	}
	return granted
}
