package users

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/harborlight/harborlight/internal/authz"
	"github.com/harborlight/harborlight/internal/shared"
)

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const userColumns = `id, email, name, role, status, created_at, updated_at`

func scanUser(row pgx.Row) (User, error) {
	var (
		user   User
		role   string
		status string
	)
	if err := row.Scan(&user.ID, &user.Email, &user.Name, &role, &status, &user.CreatedAt, &user.UpdatedAt); err != nil {
		return User{}, err
	}
	user.Role = authz.ParseRole(role)
	user.Status = authz.ParseStatus(status)
	return user, nil
}

// ListUsers returns users, optionally filtered by status.
func (r *Repository) ListUsers(ctx context.Context, status authz.Status) ([]User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY id`
	args := []any{}
	if status != authz.StatusUnknown {
		query = `SELECT ` + userColumns + ` FROM users WHERE status = $1 ORDER BY id`
		args = append(args, string(status))
	}
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var users []User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

// GetUser fetches one user by ID.
func (r *Repository) GetUser(ctx context.Context, id int64) (User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, shared.ErrNotFound
		}
		return User{}, err
	}
	return user, nil
}

// UpdateStatus sets the lifecycle status and returns the updated row.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status authz.Status) (User, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE users SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING `+userColumns, id, string(status))
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, shared.ErrNotFound
		}
		return User{}, err
	}
	return user, nil
}

// UpdateRole sets the role and returns the updated row.
func (r *Repository) UpdateRole(ctx context.Context, id int64, role authz.Role) (User, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE users SET role = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING `+userColumns, id, role.String())
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, shared.ErrNotFound
		}
		return User{}, err
	}
	return user, nil
}

// ListActiveMembers returns active accounts for the team directory.
func (r *Repository) ListActiveMembers(ctx context.Context) ([]User, error) {
	return r.ListUsers(ctx, authz.StatusActive)
}

var _ RepositoryPort = (*Repository)(nil)
