package authz

import "testing"

func TestHasMinimumRoleIsTotal(t *testing.T) {
	roles := []Role{RoleVolunteer, RoleStaff, RoleAdmin, RoleSuperAdmin}
	for _, a := range roles {
		for _, b := range roles {
			got := HasMinimumRole(a, b)
			want := a >= b
			if got != want {
				t.Fatalf("HasMinimumRole(%s, %s) = %v, want %v", a, b, got, want)
			}
		}
	}
}

func TestHasMinimumRoleReflexive(t *testing.T) {
	for _, r := range []Role{RoleVolunteer, RoleStaff, RoleAdmin, RoleSuperAdmin} {
		if !HasMinimumRole(r, r) {
			t.Fatalf("HasMinimumRole(%s, %s) should be true", r, r)
		}
	}
}

func TestHasMinimumRoleUnknownFailsClosed(t *testing.T) {
	if HasMinimumRole(RoleUnknown, RoleVolunteer) {
		t.Fatal("unknown role should never satisfy a requirement")
	}
	if HasMinimumRole(RoleUnknown, RoleUnknown) {
		t.Fatal("unknown role should not even satisfy itself")
	}
	if HasMinimumRole(Role(99), RoleVolunteer) {
		t.Fatal("out-of-range role should never satisfy a requirement")
	}
	if HasMinimumRole(RoleSuperAdmin, Role(99)) {
		t.Fatal("out-of-range requirement should never be satisfied")
	}
}

func TestParseRole(t *testing.T) {
	cases := map[string]Role{
		"volunteer":   RoleVolunteer,
		"staff":       RoleStaff,
		"admin":       RoleAdmin,
		"super_admin": RoleSuperAdmin,
		"":            RoleUnknown,
		"root":        RoleUnknown,
		"ADMIN":       RoleUnknown,
	}
	for input, want := range cases {
		if got := ParseRole(input); got != want {
			t.Fatalf("ParseRole(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestConveniencePredicates(t *testing.T) {
	if IsStaffOrAbove(RoleVolunteer) {
		t.Fatal("volunteer is not staff or above")
	}
	if !IsStaffOrAbove(RoleStaff) || !IsStaffOrAbove(RoleSuperAdmin) {
		t.Fatal("staff and super admin are staff or above")
	}
	if IsAdmin(RoleStaff) {
		t.Fatal("staff is not admin")
	}
	if !IsAdmin(RoleAdmin) || !IsAdmin(RoleSuperAdmin) {
		t.Fatal("admin and super admin are admin")
	}
	if IsSuperAdmin(RoleAdmin) {
		t.Fatal("admin is not super admin")
	}
	if !IsSuperAdmin(RoleSuperAdmin) {
		t.Fatal("super admin is super admin")
	}
}

func TestStatusGate(t *testing.T) {
	if !HasActiveStatus(StatusActive) {
		t.Fatal("active must pass the gate")
	}
	for _, s := range []Status{StatusPending, StatusSuspended, StatusInactive, StatusRejected, StatusUnknown, Status("deleted")} {
		if HasActiveStatus(s) {
			t.Fatalf("status %q must not pass the gate", s)
		}
	}
}

func TestStatusPredicates(t *testing.T) {
	if !IsPendingApproval(StatusPending) || IsPendingApproval(StatusActive) {
		t.Fatal("IsPendingApproval should match pending only")
	}
	for _, s := range []Status{StatusSuspended, StatusInactive, StatusRejected} {
		if !IsBlocked(s) {
			t.Fatalf("status %q should report blocked", s)
		}
	}
	if IsBlocked(StatusActive) || IsBlocked(StatusPending) {
		t.Fatal("active and pending accounts are not blocked")
	}
}

func TestParseStatusFailsClosed(t *testing.T) {
	if got := ParseStatus("active"); got != StatusActive {
		t.Fatalf("ParseStatus(active) = %q", got)
	}
	if got := ParseStatus("banned"); got != StatusUnknown {
		t.Fatalf("ParseStatus(banned) = %q, want unknown", got)
	}
}
