package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasPermissionRepresentativeEntries(t *testing.T) {
	cases := []struct {
		role       Role
		permission string
		want       bool
	}{
		{RoleVolunteer, PermTasksView, true},
		{RoleVolunteer, PermTasksViewAll, false},
		{RoleVolunteer, PermTasksCreate, false},
		{RoleVolunteer, PermTasksEditOwn, true},
		{RoleVolunteer, PermTasksDeleteOwn, false},
		{RoleStaff, PermTasksViewAll, true},
		{RoleStaff, PermTasksCreate, true},
		{RoleStaff, PermTasksEditAll, true},
		{RoleStaff, PermTasksDeleteAll, true},
		{RoleVolunteer, PermProjectsView, true},
		{RoleVolunteer, PermProjectsCreate, false},
		{RoleStaff, PermProjectsCreate, true},
		{RoleStaff, PermProjectsEditAll, false},
		{RoleAdmin, PermProjectsEditAll, true},
		{RoleStaff, PermUsersManage, false},
		{RoleAdmin, PermUsersManage, true},
		{RoleAdmin, PermSettingsManage, false},
		{RoleSuperAdmin, PermSettingsManage, true},
		{RoleAdmin, PermUsersDelete, false},
		{RoleSuperAdmin, PermUsersDelete, true},
	}
	for _, tc := range cases {
		assert.Equalf(t, tc.want, HasPermission(tc.role, tc.permission),
			"HasPermission(%s, %s)", tc.role, tc.permission)
	}
}

// The "own below all" pattern is the one structural property of the table
// that decisions depend on: a volunteer may edit their own tasks but
// deleting even their own requires staff.
func TestOwnVersusAllAsymmetry(t *testing.T) {
	assert.True(t, HasPermission(RoleVolunteer, PermTasksEditOwn))
	assert.False(t, HasPermission(RoleVolunteer, PermTasksEditAll))
	assert.False(t, HasPermission(RoleVolunteer, PermTasksDeleteOwn))
	assert.True(t, HasPermission(RoleStaff, PermTasksEditAll))
	assert.True(t, HasPermission(RoleStaff, PermTasksDeleteOwn))

	assert.True(t, HasPermission(RoleStaff, PermProjectsEditOwn))
	assert.False(t, HasPermission(RoleStaff, PermProjectsEditAll))
}

func TestHasPermissionUnknownInputsFailClosed(t *testing.T) {
	assert.False(t, HasPermission(RoleSuperAdmin, "tasks.fly"))
	assert.False(t, HasPermission(RoleUnknown, PermTasksView))
	assert.False(t, HasPermission(Role(42), PermTasksView))
	assert.False(t, HasPermission(RoleAdmin, ""))
}

func TestSuperAdminHoldsEveryPermission(t *testing.T) {
	for _, name := range PermissionNames() {
		assert.Truef(t, HasPermission(RoleSuperAdmin, name), "super admin missing %s", name)
	}
}

func TestGrantedPermissionsMonotonic(t *testing.T) {
	counts := make(map[Role]int)
	for _, r := range []Role{RoleVolunteer, RoleStaff, RoleAdmin, RoleSuperAdmin} {
		counts[r] = len(GrantedPermissions(r))
	}
	assert.Less(t, counts[RoleVolunteer], counts[RoleStaff])
	assert.Less(t, counts[RoleStaff], counts[RoleAdmin])
	assert.Less(t, counts[RoleAdmin], counts[RoleSuperAdmin])
	assert.Equal(t, len(PermissionNames()), counts[RoleSuperAdmin])
	assert.Empty(t, GrantedPermissions(RoleUnknown))
}
