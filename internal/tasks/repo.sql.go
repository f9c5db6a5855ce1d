package tasks

import (
	"context"
	"errors"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/harborlight/harborlight/internal/platform/db"
	"github.com/harborlight/harborlight/internal/shared"
)

// Repository provides PostgreSQL backed persistence. Every read joins the
// owning project so the caller gets the project-owner fact alongside the
// task itself.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const taskColumns = `t.id, t.project_id, t.title, t.description, t.status, t.creator_id, p.owner_id, t.due_at, t.created_at, t.updated_at`

func scanTask(row pgx.Row) (*Task, error) {
	var (
		t      Task
		status string
	)
	if err := row.Scan(&t.ID, &t.ProjectID, &t.Title, &t.Description, &status, &t.CreatorID, &t.ProjectOwnerID, &t.DueAt, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	t.Status = ParseTaskStatus(status)
	return &t, nil
}

func (r *Repository) loadAssignees(ctx context.Context, list []Task) error {
	if len(list) == 0 {
		return nil
	}
	ids := make([]int64, len(list))
	index := make(map[int64]int, len(list))
	for i := range list {
		ids[i] = list[i].ID
		index[list[i].ID] = i
	}
	rows, err := r.pool.Query(ctx, `
		SELECT task_id, user_id FROM task_assignees
		WHERE task_id = ANY($1) ORDER BY task_id, user_id`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var taskID, userID int64
		if err := rows.Scan(&taskID, &userID); err != nil {
			return err
		}
		if i, ok := index[taskID]; ok {
			list[i].AssigneeIDs = append(list[i].AssigneeIDs, userID)
		}
	}
	return rows.Err()
}

func (r *Repository) queryTasks(ctx context.Context, query string, args ...any) ([]Task, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadAssignees(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// ListTasks returns every task of one project, or all tasks when projectID
// is zero.
func (r *Repository) ListTasks(ctx context.Context, projectID int64) ([]Task, error) {
	if projectID == 0 {
		return r.queryTasks(ctx, `
			SELECT `+taskColumns+` FROM tasks t
			JOIN projects p ON p.id = t.project_id
			ORDER BY t.id`)
	}
	return r.queryTasks(ctx, `
		SELECT `+taskColumns+` FROM tasks t
		JOIN projects p ON p.id = t.project_id
		WHERE t.project_id = $1
		ORDER BY t.id`, projectID)
}

// ListTasksForUser returns tasks the user created, is assigned to, or owns
// through the project.
func (r *Repository) ListTasksForUser(ctx context.Context, userID int64) ([]Task, error) {
	return r.queryTasks(ctx, `
		SELECT DISTINCT `+taskColumns+` FROM tasks t
		JOIN projects p ON p.id = t.project_id
		LEFT JOIN task_assignees a ON a.task_id = t.id
		WHERE t.creator_id = $1 OR a.user_id = $1 OR p.owner_id = $1
		ORDER BY t.id`, userID)
}

// GetTask fetches one task with its assignees.
func (r *Repository) GetTask(ctx context.Context, id int64) (*Task, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+taskColumns+` FROM tasks t
		JOIN projects p ON p.id = t.project_id
		WHERE t.id = $1`, id)
	t, err := scanTask(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	list := []Task{*t}
	if err := r.loadAssignees(ctx, list); err != nil {
		return nil, err
	}
	return &list[0], nil
}

// CreateTask inserts a new task.
func (r *Repository) CreateTask(ctx context.Context, t *Task) (*Task, error) {
	row := r.pool.QueryRow(ctx, `
		WITH inserted AS (
			INSERT INTO tasks (project_id, title, description, status, creator_id, due_at, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
			RETURNING *
		)
		SELECT `+taskColumns+` FROM inserted t
		JOIN projects p ON p.id = t.project_id`,
		t.ProjectID, t.Title, t.Description, string(t.Status), t.CreatorID, t.DueAt)
	created, err := scanTask(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return nil, shared.ErrDuplicate
			case "23503":
				return nil, shared.ErrNotFound
			}
		}
		return nil, err
	}
	return created, nil
}

// UpdateTask updates title, description, status, and due date.
func (r *Repository) UpdateTask(ctx context.Context, t *Task) (*Task, error) {
	row := r.pool.QueryRow(ctx, `
		WITH updated AS (
			UPDATE tasks SET title = $2, description = $3, status = $4, due_at = $5, updated_at = NOW()
			WHERE id = $1
			RETURNING *
		)
		SELECT `+taskColumns+` FROM updated t
		JOIN projects p ON p.id = t.project_id`,
		t.ID, t.Title, t.Description, string(t.Status), t.DueAt)
	updated, err := scanTask(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	updated.AssigneeIDs = t.AssigneeIDs
	return updated, nil
}

// DeleteTask removes a task and its assignments in one transaction.
func (r *Repository) DeleteTask(ctx context.Context, id int64) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM task_assignees WHERE task_id = $1`, id); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// AddAssignee attaches a user to the task. Assigning twice is a no-op.
func (r *Repository) AddAssignee(ctx context.Context, taskID, userID int64) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO task_assignees (task_id, user_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (task_id, user_id) DO NOTHING`, taskID, userID)
	return err
}

// RemoveAssignee detaches a user from the task.
func (r *Repository) RemoveAssignee(ctx context.Context, taskID, userID int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM task_assignees WHERE task_id = $1 AND user_id = $2`, taskID, userID)
	return err
}

var _ RepositoryPort = (*Repository)(nil)
