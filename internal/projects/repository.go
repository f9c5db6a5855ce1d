package projects

import "context"

// RepositoryPort defines data access methods for projects.
type RepositoryPort interface {
	ListProjects(ctx context.Context) ([]Project, error)
	ListProjectsForUser(ctx context.Context, userID int64) ([]Project, error)
	GetProject(ctx context.Context, id int64) (*Project, error)
	CreateProject(ctx context.Context, p *Project) (*Project, error)
	UpdateProject(ctx context.Context, p *Project) (*Project, error)
	DeleteProject(ctx context.Context, id int64) error
	AddMember(ctx context.Context, projectID, userID int64) error
	RemoveMember(ctx context.Context, projectID, userID int64) error
}
