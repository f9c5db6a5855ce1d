package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/harborlight/harborlight/internal/authz"
	"github.com/harborlight/harborlight/internal/shared"
)

func hashOf(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestAuthenticateActiveAccount(t *testing.T) {
	repo := &fakeAccountRepo{accounts: map[int64]*Account{
		1: {ID: 1, Email: "staff@org.test", PasswordHash: hashOf(t, "hunter2hunter2"), Role: authz.RoleStaff, Status: authz.StatusActive},
	}}
	svc := NewService(repo)

	account, err := svc.Authenticate(context.Background(), "staff@org.test", "hunter2hunter2")
	require.NoError(t, err)
	require.Equal(t, int64(1), account.ID)
}

func TestAuthenticateWrongPassword(t *testing.T) {
	repo := &fakeAccountRepo{accounts: map[int64]*Account{
		1: {ID: 1, Email: "staff@org.test", PasswordHash: hashOf(t, "hunter2hunter2"), Role: authz.RoleStaff, Status: authz.StatusActive},
	}}
	svc := NewService(repo)

	_, err := svc.Authenticate(context.Background(), "staff@org.test", "wrong-password")
	require.ErrorIs(t, err, shared.ErrInvalidCredentials)
}

func TestAuthenticateLifecycleGate(t *testing.T) {
	cases := []struct {
		status authz.Status
		want   error
	}{
		{authz.StatusPending, shared.ErrAccountPending},
		{authz.StatusSuspended, shared.ErrAccountBlocked},
		{authz.StatusInactive, shared.ErrAccountBlocked},
		{authz.StatusRejected, shared.ErrAccountBlocked},
	}
	for _, tc := range cases {
		repo := &fakeAccountRepo{accounts: map[int64]*Account{
			1: {ID: 1, Email: "admin@org.test", PasswordHash: hashOf(t, "hunter2hunter2"), Role: authz.RoleAdmin, Status: tc.status},
		}}
		svc := NewService(repo)

		_, err := svc.Authenticate(context.Background(), "admin@org.test", "hunter2hunter2")
		require.ErrorIsf(t, err, tc.want, "status %s", tc.status)
	}
}

func TestAuthenticateUnknownAccount(t *testing.T) {
	svc := NewService(&fakeAccountRepo{accounts: map[int64]*Account{}})

	_, err := svc.Authenticate(context.Background(), "nobody@org.test", "hunter2hunter2")
	require.ErrorIs(t, err, shared.ErrInvalidCredentials)
}
