package projects

import (
	"context"
	"errors"
	"strings"

	"github.com/harborlight/harborlight/internal/authz"
	"github.com/harborlight/harborlight/internal/platform/httpx"
)

// ErrValidation wraps input problems for the handler layer.
var ErrValidation = httpx.ErrValidation

// ProjectView pairs a project with the caller's decision so the UI renders
// exactly what the server will enforce.
type ProjectView struct {
	Project  Project
	Decision authz.Decision
}

// Service applies authorization decisions around project persistence. Every
// method takes the caller's actor snapshot and re-evaluates the decision
// against fresh relationship facts.
type Service struct {
	repo RepositoryPort
}

// NewService builds Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// List returns the projects visible to the actor. Holders of
// projects.view.all see everything; others only what they own or joined.
func (s *Service) List(ctx context.Context, actor authz.Actor) ([]ProjectView, error) {
	if !actor.Active() || !authz.HasPermission(actor.Role, authz.PermProjectsView) {
		return nil, httpx.ErrForbidden
	}

	var (
		list []Project
		err  error
	)
	if authz.HasPermission(actor.Role, authz.PermProjectsViewAll) {
		list, err = s.repo.ListProjects(ctx)
	} else {
		list, err = s.repo.ListProjectsForUser(ctx, actor.ID)
	}
	if err != nil {
		return nil, err
	}

	views := make([]ProjectView, 0, len(list))
	for _, p := range list {
		decision := authz.ProjectDecision(actor, p.Relationship())
		if !decision.CanView {
			continue
		}
		views = append(views, ProjectView{Project: p, Decision: decision})
	}
	return views, nil
}

// Get returns one project if the actor may view it.
func (s *Service) Get(ctx context.Context, actor authz.Actor, id int64) (*ProjectView, error) {
	p, err := s.repo.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}
	decision := authz.ProjectDecision(actor, p.Relationship())
	if !decision.CanView {
		return nil, httpx.ErrForbidden
	}
	return &ProjectView{Project: *p, Decision: decision}, nil
}

// CreateInput carries fields for a new project.
type CreateInput struct {
	Name        string
	Description string
}

// Create makes the actor owner of a new project.
func (s *Service) Create(ctx context.Context, actor authz.Actor, input CreateInput) (*ProjectView, error) {
	if !actor.Active() || !authz.HasPermission(actor.Role, authz.PermProjectsCreate) {
		return nil, httpx.ErrForbidden
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, errors.Join(ErrValidation, errors.New("project name required"))
	}
	created, err := s.repo.CreateProject(ctx, &Project{
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		OwnerID:     actor.ID,
	})
	if err != nil {
		return nil, err
	}
	return &ProjectView{Project: *created, Decision: authz.ProjectDecision(actor, created.Relationship())}, nil
}

// UpdateInput carries editable project fields.
type UpdateInput struct {
	Name        string
	Description string
	Archived    bool
}

// Update edits a project the actor may edit.
func (s *Service) Update(ctx context.Context, actor authz.Actor, id int64, input UpdateInput) (*ProjectView, error) {
	p, err := s.repo.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}
	decision := authz.ProjectDecision(actor, p.Relationship())
	if !decision.CanEdit {
		return nil, httpx.ErrForbidden
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, errors.Join(ErrValidation, errors.New("project name required"))
	}
	p.Name = name
	p.Description = strings.TrimSpace(input.Description)
	p.Archived = input.Archived
	updated, err := s.repo.UpdateProject(ctx, p)
	if err != nil {
		return nil, err
	}
	return &ProjectView{Project: *updated, Decision: authz.ProjectDecision(actor, updated.Relationship())}, nil
}

// Delete removes a project the actor may delete.
func (s *Service) Delete(ctx context.Context, actor authz.Actor, id int64) error {
	p, err := s.repo.GetProject(ctx, id)
	if err != nil {
		return err
	}
	if !authz.ProjectDecision(actor, p.Relationship()).CanDelete {
		return httpx.ErrForbidden
	}
	return s.repo.DeleteProject(ctx, id)
}

// AddMember attaches a user if the actor may manage members.
func (s *Service) AddMember(ctx context.Context, actor authz.Actor, projectID, userID int64) error {
	p, err := s.repo.GetProject(ctx, projectID)
	if err != nil {
		return err
	}
	if !authz.ProjectDecision(actor, p.Relationship()).CanManageMembers {
		return httpx.ErrForbidden
	}
	return s.repo.AddMember(ctx, projectID, userID)
}

// RemoveMember detaches a user if the actor may manage members.
func (s *Service) RemoveMember(ctx context.Context, actor authz.Actor, projectID, userID int64) error {
	p, err := s.repo.GetProject(ctx, projectID)
	if err != nil {
		return err
	}
	if !authz.ProjectDecision(actor, p.Relationship()).CanManageMembers {
		return httpx.ErrForbidden
	}
	return s.repo.RemoveMember(ctx, projectID, userID)
}
