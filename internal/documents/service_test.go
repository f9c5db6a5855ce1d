package documents

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborlight/harborlight/internal/authz"
	"github.com/harborlight/harborlight/internal/platform/httpx"
	"github.com/harborlight/harborlight/internal/shared"
)

type fakeDocumentRepo struct {
	docs   map[int64]*Document
	nextID int64
}

func newFakeDocumentRepo(seed ...*Document) *fakeDocumentRepo {
	repo := &fakeDocumentRepo{docs: map[int64]*Document{}, nextID: 1}
	for _, d := range seed {
		if d.ID == 0 {
			d.ID = repo.nextID
		}
		if d.ID >= repo.nextID {
			repo.nextID = d.ID + 1
		}
		repo.docs[d.ID] = d
	}
	return repo
}

func (f *fakeDocumentRepo) ListDocuments(ctx context.Context, limit, offset int) ([]Document, int, error) {
	all := make([]Document, 0, len(f.docs))
	for _, d := range f.docs {
		all = append(all, *d)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	total := len(all)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func (f *fakeDocumentRepo) GetDocument(ctx context.Context, id int64) (*Document, error) {
	d, ok := f.docs[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	clone := *d
	return &clone, nil
}

func (f *fakeDocumentRepo) CreateDocument(ctx context.Context, d *Document) (*Document, error) {
	d.ID = f.nextID
	f.nextID++
	d.CreatedAt = time.Now()
	d.UpdatedAt = d.CreatedAt
	f.docs[d.ID] = d
	clone := *d
	return &clone, nil
}

func (f *fakeDocumentRepo) UpdateDocument(ctx context.Context, d *Document) (*Document, error) {
	existing, ok := f.docs[d.ID]
	if !ok {
		return nil, shared.ErrNotFound
	}
	existing.Title = d.Title
	existing.Description = d.Description
	existing.UpdatedAt = time.Now()
	clone := *existing
	return &clone, nil
}

func (f *fakeDocumentRepo) DeleteDocument(ctx context.Context, id int64) error {
	if _, ok := f.docs[id]; !ok {
		return shared.ErrNotFound
	}
	delete(f.docs, id)
	return nil
}

func uploader(id int64) authz.Actor {
	return authz.Actor{ID: id, Role: authz.RoleStaff, Status: authz.StatusActive, SyncedAt: time.Now()}
}

func TestListPaginates(t *testing.T) {
	repo := newFakeDocumentRepo()
	for i := 0; i < 45; i++ {
		_, err := repo.CreateDocument(context.Background(), &Document{Title: "Doc", FileName: "doc.pdf"})
		require.NoError(t, err)
	}
	svc := NewService(repo)

	list, pagination, err := svc.List(context.Background(), 1, 20)
	require.NoError(t, err)
	assert.Len(t, list, 20)
	assert.Equal(t, 45, pagination.Total)
	assert.Equal(t, 3, pagination.TotalPages)

	list, pagination, err = svc.List(context.Background(), 3, 20)
	require.NoError(t, err)
	assert.Len(t, list, 5)
	assert.Equal(t, 3, pagination.Page)
}

func TestListClampsPageInputs(t *testing.T) {
	repo := newFakeDocumentRepo(&Document{Title: "Doc", FileName: "doc.pdf"})
	svc := NewService(repo)

	list, pagination, err := svc.List(context.Background(), -2, 10_000)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, 1, pagination.Page)
	assert.Equal(t, 20, pagination.PerPage)
}

func TestUploadRecordsActorAndTrims(t *testing.T) {
	svc := NewService(newFakeDocumentRepo())

	d, err := svc.Upload(context.Background(), uploader(7), UploadInput{
		Title:       "  Safeguarding policy ",
		FileName:    "policy.pdf",
		ContentType: "application/pdf",
		SizeBytes:   2048,
	})
	require.NoError(t, err)
	assert.Equal(t, "Safeguarding policy", d.Title)
	assert.Equal(t, int64(7), d.UploaderID)
	assert.NotEmpty(t, d.StorageKey)
}

func TestUploadRejectsBadInput(t *testing.T) {
	svc := NewService(newFakeDocumentRepo())

	_, err := svc.Upload(context.Background(), uploader(7), UploadInput{FileName: "policy.pdf"})
	assert.ErrorIs(t, err, httpx.ErrValidation)

	_, err = svc.Upload(context.Background(), uploader(7), UploadInput{Title: "Policy", FileName: "policy.pdf", SizeBytes: -1})
	assert.ErrorIs(t, err, httpx.ErrValidation)
}

func TestUpdateMissingDocument(t *testing.T) {
	svc := NewService(newFakeDocumentRepo())

	_, err := svc.Update(context.Background(), 99, UpdateInput{Title: "Renamed"})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
