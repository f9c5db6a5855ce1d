package users

import (
	"context"

	"github.com/harborlight/harborlight/internal/authz"
)

// RepositoryPort defines data access methods for users.
type RepositoryPort interface {
	ListUsers(ctx context.Context, status authz.Status) ([]User, error)
	GetUser(ctx context.Context, id int64) (User, error)
	UpdateStatus(ctx context.Context, id int64, status authz.Status) (User, error)
	UpdateRole(ctx context.Context, id int64, role authz.Role) (User, error)
	ListActiveMembers(ctx context.Context) ([]User, error)
}
