package tasks

import (
	"time"

	"github.com/harborlight/harborlight/internal/authz"
)

// TaskStatus tracks progress of a task on the board.
type TaskStatus string

const (
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "in_progress"
	StatusDone       TaskStatus = "done"
)

// ParseTaskStatus maps a raw string to a known status. Unknown values come
// back as the empty status, which never validates.
func ParseTaskStatus(raw string) TaskStatus {
	switch TaskStatus(raw) {
	case StatusTodo, StatusInProgress, StatusDone:
		return TaskStatus(raw)
	default:
		return ""
	}
}

// Valid reports whether the status is one of the known board columns.
func (s TaskStatus) Valid() bool {
	return s == StatusTodo || s == StatusInProgress || s == StatusDone
}

// Task is a unit of work inside a project, created by one user and assigned
// to any number of others.
type Task struct {
	ID             int64
	ProjectID      int64
	Title          string
	Description    string
	Status         TaskStatus
	CreatorID      int64
	ProjectOwnerID int64
	AssigneeIDs    []int64
	DueAt          *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Relationship extracts the facts the decision engine needs.
func (t *Task) Relationship() authz.TaskRelationship {
	return authz.TaskRelationship{
		CreatorID:      t.CreatorID,
		AssigneeIDs:    t.AssigneeIDs,
		ProjectOwnerID: t.ProjectOwnerID,
	}
}
