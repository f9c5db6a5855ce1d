package announcements

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/harborlight/harborlight/internal/authz"
	"github.com/harborlight/harborlight/internal/platform/httpx"
)

// Service validates announcements and feeds the digest job.
type Service struct {
	repo RepositoryPort
}

// NewService builds Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// List returns all announcements for active members.
func (s *Service) List(ctx context.Context) ([]Announcement, error) {
	return s.repo.ListAnnouncements(ctx)
}

// Since returns announcements created at or after the given time.
func (s *Service) Since(ctx context.Context, since time.Time) ([]Announcement, error) {
	return s.repo.ListAnnouncementsSince(ctx, since)
}

// PublishInput carries fields for a new announcement.
type PublishInput struct {
	Title  string
	Body   string
	Pinned bool
}

// Publish creates an announcement authored by the actor.
func (s *Service) Publish(ctx context.Context, actor authz.Actor, input PublishInput) (*Announcement, error) {
	title := strings.TrimSpace(input.Title)
	body := strings.TrimSpace(input.Body)
	if title == "" || body == "" {
		return nil, errors.Join(httpx.ErrValidation, errors.New("title and body required"))
	}
	return s.repo.CreateAnnouncement(ctx, &Announcement{
		Title:    title,
		Body:     body,
		AuthorID: actor.ID,
		Pinned:   input.Pinned,
	})
}

// SetPinned toggles the pinned flag.
func (s *Service) SetPinned(ctx context.Context, id int64, pinned bool) error {
	return s.repo.SetPinned(ctx, id, pinned)
}

// Delete removes an announcement.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteAnnouncement(ctx, id)
}
