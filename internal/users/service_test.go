package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborlight/harborlight/internal/authz"
	"github.com/harborlight/harborlight/internal/shared"
)

type mockRepo struct {
	users map[int64]User
}

func newMockRepo(users ...User) *mockRepo {
	m := &mockRepo{users: make(map[int64]User)}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

func (m *mockRepo) ListUsers(ctx context.Context, status authz.Status) ([]User, error) {
	var out []User
	for _, u := range m.users {
		if status == authz.StatusUnknown || u.Status == status {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *mockRepo) GetUser(ctx context.Context, id int64) (User, error) {
	u, ok := m.users[id]
	if !ok {
		return User{}, shared.ErrNotFound
	}
	return u, nil
}

func (m *mockRepo) UpdateStatus(ctx context.Context, id int64, status authz.Status) (User, error) {
	u, ok := m.users[id]
	if !ok {
		return User{}, shared.ErrNotFound
	}
	u.Status = status
	m.users[id] = u
	return u, nil
}

func (m *mockRepo) UpdateRole(ctx context.Context, id int64, role authz.Role) (User, error) {
	u, ok := m.users[id]
	if !ok {
		return User{}, shared.ErrNotFound
	}
	u.Role = role
	m.users[id] = u
	return u, nil
}

func (m *mockRepo) ListActiveMembers(ctx context.Context) ([]User, error) {
	return m.ListUsers(ctx, authz.StatusActive)
}

type recordingInvalidator struct {
	invalidated []int64
}

func (r *recordingInvalidator) Invalidate(ctx context.Context, userID int64) error {
	r.invalidated = append(r.invalidated, userID)
	return nil
}

func TestApprovePendingUser(t *testing.T) {
	repo := newMockRepo(User{ID: 2, Email: "new@org.test", Role: authz.RoleVolunteer, Status: authz.StatusPending})
	inv := &recordingInvalidator{}
	svc := NewService(repo, inv, nil, nil)

	updated, err := svc.Approve(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, authz.StatusActive, updated.Status)
	assert.Equal(t, []int64{2}, inv.invalidated)
}

func TestApproveNonPendingUserFails(t *testing.T) {
	for _, status := range []authz.Status{authz.StatusActive, authz.StatusSuspended, authz.StatusRejected} {
		repo := newMockRepo(User{ID: 2, Status: status})
		svc := NewService(repo, &recordingInvalidator{}, nil, nil)

		_, err := svc.Approve(context.Background(), 1, 2)
		require.ErrorIsf(t, err, shared.ErrInvalidTransition, "status %s", status)
	}
}

func TestRejectIsTerminal(t *testing.T) {
	repo := newMockRepo(User{ID: 2, Status: authz.StatusPending})
	svc := NewService(repo, &recordingInvalidator{}, nil, nil)

	updated, err := svc.Reject(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, authz.StatusRejected, updated.Status)

	// No route back from rejected.
	_, err = svc.Reactivate(context.Background(), 1, 2)
	require.ErrorIs(t, err, shared.ErrInvalidTransition)
	_, err = svc.Approve(context.Background(), 1, 2)
	require.ErrorIs(t, err, shared.ErrInvalidTransition)
}

func TestSuspendAndReactivate(t *testing.T) {
	repo := newMockRepo(User{ID: 3, Status: authz.StatusActive})
	inv := &recordingInvalidator{}
	svc := NewService(repo, inv, nil, nil)

	updated, err := svc.Suspend(context.Background(), 1, 3)
	require.NoError(t, err)
	assert.Equal(t, authz.StatusSuspended, updated.Status)

	updated, err = svc.Reactivate(context.Background(), 1, 3)
	require.NoError(t, err)
	assert.Equal(t, authz.StatusActive, updated.Status)

	assert.Equal(t, []int64{3, 3}, inv.invalidated)
}

func TestReactivateFromInactive(t *testing.T) {
	repo := newMockRepo(User{ID: 3, Status: authz.StatusInactive})
	svc := NewService(repo, &recordingInvalidator{}, nil, nil)

	updated, err := svc.Reactivate(context.Background(), 1, 3)
	require.NoError(t, err)
	assert.Equal(t, authz.StatusActive, updated.Status)
}

func TestChangeRole(t *testing.T) {
	repo := newMockRepo(User{ID: 4, Role: authz.RoleVolunteer, Status: authz.StatusActive})
	inv := &recordingInvalidator{}
	svc := NewService(repo, inv, nil, nil)

	updated, err := svc.ChangeRole(context.Background(), 1, 4, authz.RoleStaff)
	require.NoError(t, err)
	assert.Equal(t, authz.RoleStaff, updated.Role)
	assert.Equal(t, []int64{4}, inv.invalidated)
}

func TestChangeRoleRejectsUnknownRole(t *testing.T) {
	repo := newMockRepo(User{ID: 4, Role: authz.RoleVolunteer, Status: authz.StatusActive})
	svc := NewService(repo, &recordingInvalidator{}, nil, nil)

	_, err := svc.ChangeRole(context.Background(), 1, 4, authz.RoleUnknown)
	require.Error(t, err)
}

func TestTeamDirectoryUsesDisplayName(t *testing.T) {
	repo := newMockRepo(
		User{ID: 1, Email: "jane@org.test", Name: "Jane Doe", Role: authz.RoleStaff, Status: authz.StatusActive},
		User{ID: 2, Email: "sam.smith@org.test", Name: "", Role: authz.RoleVolunteer, Status: authz.StatusActive},
		User{ID: 3, Email: "gone@org.test", Name: "Gone", Role: authz.RoleVolunteer, Status: authz.StatusSuspended},
	)
	svc := NewService(repo, nil, nil, nil)

	members, err := svc.TeamDirectory(context.Background())
	require.NoError(t, err)
	require.Len(t, members, 2)

	byID := make(map[int64]Member)
	for _, m := range members {
		byID[m.ID] = m
	}
	assert.Equal(t, "Jane Doe", byID[1].Name)
	assert.Equal(t, "Sam Smith", byID[2].Name)
}
