package reports

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Service assembles the summary report. The three aggregates are independent
// queries, so they run concurrently on the pool.
type Service struct {
	repo RepositoryPort
}

// NewService builds Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// Summary gathers all counts.
func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	var summary Summary

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		total, archived, err := s.repo.ProjectCounts(ctx)
		if err != nil {
			return err
		}
		summary.TotalProjects = total
		summary.ArchivedProjects = archived
		summary.ActiveProjects = total - archived
		return nil
	})
	g.Go(func() error {
		counts, err := s.repo.TaskCountsByStatus(ctx)
		if err != nil {
			return err
		}
		summary.TasksByStatus = counts
		for _, n := range counts {
			summary.TotalTasks += n
		}
		return nil
	})
	g.Go(func() error {
		active, pending, err := s.repo.MemberCounts(ctx)
		if err != nil {
			return err
		}
		summary.ActiveMembers = active
		summary.PendingMembers = pending
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if summary.TasksByStatus == nil {
		summary.TasksByStatus = map[string]int64{}
	}
	return &summary, nil
}
