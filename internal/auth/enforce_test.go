package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/harborlight/harborlight/internal/authz"
	"github.com/harborlight/harborlight/internal/shared"
)

func enforcedRequest(t *testing.T, e Enforcer, mw func(http.Handler) http.Handler, userID string) *httptest.ResponseRecorder {
	t.Helper()
	var reached bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		actor, ok := ActorFromContext(r.Context())
		require.True(t, ok)
		require.NotZero(t, actor.ID)
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	sess := &shared.Session{}
	if userID != "" {
		sess.SetUser(userID)
	}
	ctx := shared.ContextWithSession(req.Context(), sess)

	rr := httptest.NewRecorder()
	mw(next).ServeHTTP(rr, req.WithContext(ctx))
	if rr.Code == http.StatusOK {
		require.True(t, reached)
	}
	return rr
}

func TestRequirePermissionAllowsQualifiedActor(t *testing.T) {
	repo := &fakeAccountRepo{accounts: map[int64]*Account{
		1: {ID: 1, Role: authz.RoleStaff, Status: authz.StatusActive},
	}}
	e := Enforcer{Provider: newTestProvider(t, repo)}

	rr := enforcedRequest(t, e, e.RequirePermission(authz.PermTasksCreate), "1")
	require.Equal(t, http.StatusOK, rr.Code)
}

func TestRequirePermissionRejectsInsufficientRole(t *testing.T) {
	repo := &fakeAccountRepo{accounts: map[int64]*Account{
		1: {ID: 1, Role: authz.RoleVolunteer, Status: authz.StatusActive},
	}}
	e := Enforcer{Provider: newTestProvider(t, repo)}

	rr := enforcedRequest(t, e, e.RequirePermission(authz.PermTasksCreate), "1")
	require.Equal(t, http.StatusForbidden, rr.Code)
}

func TestRequirePermissionBlocksPendingAdmin(t *testing.T) {
	repo := &fakeAccountRepo{accounts: map[int64]*Account{
		1: {ID: 1, Role: authz.RoleAdmin, Status: authz.StatusPending},
	}}
	e := Enforcer{Provider: newTestProvider(t, repo)}

	rr := enforcedRequest(t, e, e.RequirePermission(authz.PermUsersView), "1")
	require.Equal(t, http.StatusForbidden, rr.Code)
}

func TestRequirePermissionRejectsAnonymous(t *testing.T) {
	e := Enforcer{Provider: newTestProvider(t, &fakeAccountRepo{accounts: map[int64]*Account{}})}

	rr := enforcedRequest(t, e, e.RequirePermission(authz.PermTasksView), "")
	require.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRouteGateDeniesBelowMinimumRole(t *testing.T) {
	repo := &fakeAccountRepo{accounts: map[int64]*Account{
		1: {ID: 1, Role: authz.RoleVolunteer, Status: authz.StatusActive},
	}}
	e := Enforcer{Provider: newTestProvider(t, repo)}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/reports", nil)
	sess := &shared.Session{}
	sess.SetUser("1")
	req = req.WithContext(shared.ContextWithSession(context.Background(), sess))

	rr := httptest.NewRecorder()
	e.RouteGate(next).ServeHTTP(rr, req)
	require.Equal(t, http.StatusForbidden, rr.Code)
}

func TestRequireRoleSuspendedSuperAdminDenied(t *testing.T) {
	repo := &fakeAccountRepo{accounts: map[int64]*Account{
		1: {ID: 1, Role: authz.RoleSuperAdmin, Status: authz.StatusSuspended},
	}}
	e := Enforcer{Provider: newTestProvider(t, repo)}

	rr := enforcedRequest(t, e, e.RequireRole(authz.RoleVolunteer), "1")
	require.Equal(t, http.StatusForbidden, rr.Code)
}
