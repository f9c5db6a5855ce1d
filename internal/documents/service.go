package documents

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/harborlight/harborlight/internal/authz"
	"github.com/harborlight/harborlight/internal/platform/httpx"
	"github.com/harborlight/harborlight/internal/shared"
)

// Service validates document metadata. Access control lives entirely in the
// permission table, so handlers gate routes and the service only checks
// inputs.
type Service struct {
	repo RepositoryPort
}

// NewService builds Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

const maxPerPage = 100

// List returns one page of documents plus pagination metadata.
func (s *Service) List(ctx context.Context, page, perPage int) ([]Document, shared.Pagination, error) {
	if page <= 0 {
		page = 1
	}
	if perPage <= 0 || perPage > maxPerPage {
		perPage = 20
	}
	list, total, err := s.repo.ListDocuments(ctx, perPage, (page-1)*perPage)
	if err != nil {
		return nil, shared.Pagination{}, err
	}
	return list, shared.NewPagination(page, perPage, total), nil
}

// Get returns one document.
func (s *Service) Get(ctx context.Context, id int64) (*Document, error) {
	return s.repo.GetDocument(ctx, id)
}

// UploadInput carries fields for new document metadata.
type UploadInput struct {
	Title       string
	Description string
	FileName    string
	ContentType string
	SizeBytes   int64
}

// Upload records metadata for a file uploaded by the actor.
func (s *Service) Upload(ctx context.Context, actor authz.Actor, input UploadInput) (*Document, error) {
	title := strings.TrimSpace(input.Title)
	fileName := strings.TrimSpace(input.FileName)
	if title == "" || fileName == "" {
		return nil, errors.Join(httpx.ErrValidation, errors.New("title and file name required"))
	}
	if input.SizeBytes < 0 {
		return nil, errors.Join(httpx.ErrValidation, errors.New("size must not be negative"))
	}
	return s.repo.CreateDocument(ctx, &Document{
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		FileName:    fileName,
		ContentType: input.ContentType,
		SizeBytes:   input.SizeBytes,
		StorageKey:  uuid.NewString(),
		UploaderID:  actor.ID,
	})
}

// UpdateInput carries the editable metadata fields.
type UpdateInput struct {
	Title       string
	Description string
}

// Update edits title and description.
func (s *Service) Update(ctx context.Context, id int64, input UpdateInput) (*Document, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, errors.Join(httpx.ErrValidation, errors.New("title required"))
	}
	d, err := s.repo.GetDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	d.Title = title
	d.Description = strings.TrimSpace(input.Description)
	return s.repo.UpdateDocument(ctx, d)
}

// Delete removes document metadata.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteDocument(ctx, id)
}
