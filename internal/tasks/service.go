package tasks

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/harborlight/harborlight/internal/authz"
	"github.com/harborlight/harborlight/internal/platform/httpx"
)

// TaskView pairs a task with the caller's decision.
type TaskView struct {
	Task     Task
	Decision authz.Decision
}

// Service applies authorization decisions around task persistence.
type Service struct {
	repo RepositoryPort
}

// NewService builds Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// List returns tasks visible to the actor, optionally scoped to one
// project. Holders of tasks.view.all see the full board; others only tasks
// they created, are assigned to, or own through a project.
func (s *Service) List(ctx context.Context, actor authz.Actor, projectID int64) ([]TaskView, error) {
	if !actor.Active() || !authz.HasPermission(actor.Role, authz.PermTasksView) {
		return nil, httpx.ErrForbidden
	}

	var (
		list []Task
		err  error
	)
	if authz.HasPermission(actor.Role, authz.PermTasksViewAll) {
		list, err = s.repo.ListTasks(ctx, projectID)
	} else {
		list, err = s.repo.ListTasksForUser(ctx, actor.ID)
	}
	if err != nil {
		return nil, err
	}

	views := make([]TaskView, 0, len(list))
	for _, t := range list {
		if projectID != 0 && t.ProjectID != projectID {
			continue
		}
		decision := authz.TaskDecision(actor, t.Relationship())
		if !decision.CanView {
			continue
		}
		views = append(views, TaskView{Task: t, Decision: decision})
	}
	return views, nil
}

// Get returns one task if the actor may view it.
func (s *Service) Get(ctx context.Context, actor authz.Actor, id int64) (*TaskView, error) {
	t, err := s.repo.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	decision := authz.TaskDecision(actor, t.Relationship())
	if !decision.CanView {
		return nil, httpx.ErrForbidden
	}
	return &TaskView{Task: *t, Decision: decision}, nil
}

// CreateInput carries fields for a new task.
type CreateInput struct {
	ProjectID   int64
	Title       string
	Description string
	DueAt       *time.Time
}

// Create makes the actor creator of a new task in todo state.
func (s *Service) Create(ctx context.Context, actor authz.Actor, input CreateInput) (*TaskView, error) {
	if !actor.Active() || !authz.HasPermission(actor.Role, authz.PermTasksCreate) {
		return nil, httpx.ErrForbidden
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, errors.Join(httpx.ErrValidation, errors.New("task title required"))
	}
	if input.ProjectID <= 0 {
		return nil, errors.Join(httpx.ErrValidation, errors.New("project id required"))
	}
	created, err := s.repo.CreateTask(ctx, &Task{
		ProjectID:   input.ProjectID,
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Status:      StatusTodo,
		CreatorID:   actor.ID,
		DueAt:       input.DueAt,
	})
	if err != nil {
		return nil, err
	}
	return &TaskView{Task: *created, Decision: authz.TaskDecision(actor, created.Relationship())}, nil
}

// UpdateInput carries editable task fields.
type UpdateInput struct {
	Title       string
	Description string
	Status      TaskStatus
	DueAt       *time.Time
}

// Update edits a task the actor may edit.
func (s *Service) Update(ctx context.Context, actor authz.Actor, id int64, input UpdateInput) (*TaskView, error) {
	t, err := s.repo.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	decision := authz.TaskDecision(actor, t.Relationship())
	if !decision.CanEdit {
		return nil, httpx.ErrForbidden
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, errors.Join(httpx.ErrValidation, errors.New("task title required"))
	}
	if !input.Status.Valid() {
		return nil, errors.Join(httpx.ErrValidation, errors.New("unknown task status"))
	}
	t.Title = title
	t.Description = strings.TrimSpace(input.Description)
	t.Status = input.Status
	t.DueAt = input.DueAt
	updated, err := s.repo.UpdateTask(ctx, t)
	if err != nil {
		return nil, err
	}
	return &TaskView{Task: *updated, Decision: authz.TaskDecision(actor, updated.Relationship())}, nil
}

// UpdateStatus moves a task across the board. Assignees hold edit rights on
// their own tasks, so a volunteer can progress work assigned to them without
// touching the other fields.
func (s *Service) UpdateStatus(ctx context.Context, actor authz.Actor, id int64, status TaskStatus) (*TaskView, error) {
	t, err := s.repo.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	decision := authz.TaskDecision(actor, t.Relationship())
	if !decision.CanEdit {
		return nil, httpx.ErrForbidden
	}
	if !status.Valid() {
		return nil, errors.Join(httpx.ErrValidation, errors.New("unknown task status"))
	}
	t.Status = status
	updated, err := s.repo.UpdateTask(ctx, t)
	if err != nil {
		return nil, err
	}
	return &TaskView{Task: *updated, Decision: authz.TaskDecision(actor, updated.Relationship())}, nil
}

// Delete removes a task the actor may delete.
func (s *Service) Delete(ctx context.Context, actor authz.Actor, id int64) error {
	t, err := s.repo.GetTask(ctx, id)
	if err != nil {
		return err
	}
	if !authz.TaskDecision(actor, t.Relationship()).CanDelete {
		return httpx.ErrForbidden
	}
	return s.repo.DeleteTask(ctx, id)
}

// Assign attaches a user to a task. Assignment needs both the assignment
// permission and edit rights on the specific task.
func (s *Service) Assign(ctx context.Context, actor authz.Actor, taskID, userID int64) error {
	if !authz.HasPermission(actor.Role, authz.PermTasksAssign) {
		return httpx.ErrForbidden
	}
	t, err := s.repo.GetTask(ctx, taskID)
	if err != nil {
		return err
	}
	if !authz.TaskDecision(actor, t.Relationship()).CanEdit {
		return httpx.ErrForbidden
	}
	return s.repo.AddAssignee(ctx, taskID, userID)
}

// Unassign detaches a user from a task under the same rules as Assign.
func (s *Service) Unassign(ctx context.Context, actor authz.Actor, taskID, userID int64) error {
	if !authz.HasPermission(actor.Role, authz.PermTasksAssign) {
		return httpx.ErrForbidden
	}
	t, err := s.repo.GetTask(ctx, taskID)
	if err != nil {
		return err
	}
	if !authz.TaskDecision(actor, t.Relationship()).CanEdit {
		return httpx.ErrForbidden
	}
	return s.repo.RemoveAssignee(ctx, taskID, userID)
}
