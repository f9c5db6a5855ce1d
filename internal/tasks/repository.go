package tasks

import "context"

// RepositoryPort defines data access methods for tasks.
type RepositoryPort interface {
	ListTasks(ctx context.Context, projectID int64) ([]Task, error)
	ListTasksForUser(ctx context.Context, userID int64) ([]Task, error)
	GetTask(ctx context.Context, id int64) (*Task, error)
	CreateTask(ctx context.Context, t *Task) (*Task, error)
	UpdateTask(ctx context.Context, t *Task) (*Task, error)
	DeleteTask(ctx context.Context, id int64) error
	AddAssignee(ctx context.Context, taskID, userID int64) error
	RemoveAssignee(ctx context.Context, taskID, userID int64) error
}
