package authz

// NavItem is one entry in the dashboard navigation. Items the account may
// not open are omitted rather than rendered disabled.
type NavItem struct {
	Title    string    `json:"title"`
	Path     string    `json:"path"`
	Children []NavItem `json:"children,omitempty"`
}

// NavigationItems builds the ordered navigation for an account. A blocked
// or pending account sees nothing. Each admin sub-item is gated on its own
// permission, so an admin without settings.manage still sees the
// Administration section but not the Settings entry.
func NavigationItems(role Role, status Status) []NavItem {
	if !HasActiveStatus(status) {
		return nil
	}

	items := make([]NavItem, 0, 8)
	items = append(items, NavItem{Title: "Dashboard", Path: "/dashboard"})

	if HasPermission(role, PermProjectsView) {
		items = append(items, NavItem{Title: "Projects", Path: "/projects"})
	}
	if HasPermission(role, PermTasksView) {
		items = append(items, NavItem{Title: "Tasks", Path: "/tasks"})
	}
	if HasPermission(role, PermTeamView) {
		items = append(items, NavItem{Title: "Team", Path: "/team"})
	}
	if HasPermission(role, PermDocumentsView) {
		items = append(items, NavItem{Title: "Documents", Path: "/documents"})
	}
	if HasPermission(role, PermReportsView) {
		items = append(items, NavItem{Title: "Reports", Path: "/reports"})
	}
	if HasPermission(role, PermFinanceView) {
		items = append(items, NavItem{Title: "Finance", Path: "/finance"})
	}

	if IsAdmin(role) {
		admin := NavItem{Title: "Administration", Path: "/admin"}
		if HasPermission(role, PermUsersView) {
			admin.Children = append(admin.Children, NavItem{Title: "Users", Path: "/admin/users"})
		}
		if HasPermission(role, PermAnnouncementsManage) {
			admin.Children = append(admin.Children, NavItem{Title: "Announcements", Path: "/announcements"})
		}
		if HasPermission(role, PermAuditView) {
			admin.Children = append(admin.Children, NavItem{Title: "Audit Log", Path: "/admin/audit"})
		}
		if HasPermission(role, PermSettingsManage) {
			admin.Children = append(admin.Children, NavItem{Title: "Settings", Path: "/admin/settings"})
		}
		items = append(items, admin)
	}

	return items
}
