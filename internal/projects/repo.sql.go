package projects

import (
	"context"
	"errors"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/harborlight/harborlight/internal/platform/db"
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

const projectColumns = `id, name, description, owner_id, archived, created_at, updated_at`

func scanProject(row pgx.Row) (*Project, error) {
	var p Project
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.OwnerID, &p.Archived, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repository) loadMembers(ctx context.Context, projects []Project) error {
	if len(projects) == 0 {
		return nil
	}
	ids := make([]int64, len(projects))
	index := make(map[int64]int, len(projects))
	for i := range projects {
		ids[i] = projects[i].ID
		index[projects[i].ID] = i
	}
	rows, err := r.pool.Query(ctx, `
		SELECT project_id, user_id FROM project_members
		WHERE project_id = ANY($1) ORDER BY project_id, user_id`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var projectID, userID int64
		if err := rows.Scan(&projectID, &userID); err != nil {
			return err
		}
		if i, ok := index[projectID]; ok {
			projects[i].MemberIDs = append(projects[i].MemberIDs, userID)
		}
	}
	return rows.Err()
}

// ListProjects returns every project with its members.
func (r *Repository) ListProjects(ctx context.Context) ([]Project, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadMembers(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// ListProjectsForUser returns projects the user owns or is a member of.
func (r *Repository) ListProjectsForUser(ctx context.Context, userID int64) ([]Project, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT DISTINCT `+prefixedProjectColumns+` FROM projects p
		LEFT JOIN project_members m ON m.project_id = p.id
		WHERE p.owner_id = $1 OR m.user_id = $1
		ORDER BY p.id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadMembers(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

const prefixedProjectColumns = `p.id, p.name, p.description, p.owner_id, p.archived, p.created_at, p.updated_at`

// GetProject fetches one project with its members.
func (r *Repository) GetProject(ctx context.Context, id int64) (*Project, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, id)
	p, err := scanProject(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	list := []Project{*p}
	if err := r.loadMembers(ctx, list); err != nil {
		return nil, err
	}
	return &list[0], nil
}

// CreateProject inserts a new project.
func (r *Repository) CreateProject(ctx context.Context, p *Project) (*Project, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO projects (name, description, owner_id, archived, created_at, updated_at)
		VALUES ($1, $2, $3, FALSE, NOW(), NOW())
		RETURNING `+projectColumns,
		p.Name, p.Description, p.OwnerID)
	created, err := scanProject(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, shared.ErrDuplicate
		}
		return nil, err
	}
	return created, nil
}

// UpdateProject updates name, description, and archived flag.
func (r *Repository) UpdateProject(ctx context.Context, p *Project) (*Project, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE projects SET name = $2, description = $3, archived = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING `+projectColumns,
		p.ID, p.Name, p.Description, p.Archived)
	updated, err := scanProject(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	updated.MemberIDs = p.MemberIDs
	return updated, nil
}

// DeleteProject removes a project and its memberships in one transaction.
func (r *Repository) DeleteProject(ctx context.Context, id int64) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM project_members WHERE project_id = $1`, id); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// AddMember attaches a user to the project. Adding twice is a no-op.
func (r *Repository) AddMember(ctx context.Context, projectID, userID int64) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO project_members (project_id, user_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (project_id, user_id) DO NOTHING`, projectID, userID)
	return err
}

// RemoveMember detaches a user from the project.
func (r *Repository) RemoveMember(ctx context.Context, projectID, userID int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM project_members WHERE project_id = $1 AND user_id = $2`, projectID, userID)
	return err
}

var _ RepositoryPort = (*Repository)(nil)
