package documents

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/harborlight/harborlight/internal/shared"
)

// RepositoryPort defines data access methods for document metadata.
type RepositoryPort interface {
	ListDocuments(ctx context.Context, limit, offset int) ([]Document, int, error)
	GetDocument(ctx context.Context, id int64) (*Document, error)
	CreateDocument(ctx context.Context, d *Document) (*Document, error)
	UpdateDocument(ctx context.Context, d *Document) (*Document, error)
	DeleteDocument(ctx context.Context, id int64) error
}

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const documentColumns = `id, title, description, file_name, content_type, size_bytes, storage_key, uploader_id, created_at, updated_at`

func scanDocument(row pgx.Row) (*Document, error) {
	var d Document
	if err := row.Scan(&d.ID, &d.Title, &d.Description, &d.FileName, &d.ContentType, &d.SizeBytes, &d.StorageKey, &d.UploaderID, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, err
	}
	return &d, nil
}

// ListDocuments returns a page of document metadata, newest first, along
// with the total number of documents.
func (r *Repository) ListDocuments(ctx context.Context, limit, offset int) ([]Document, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM documents`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+documentColumns+` FROM documents ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var list []Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, *d)
	}
	return list, total, rows.Err()
}

// GetDocument fetches one document record.
func (r *Repository) GetDocument(ctx context.Context, id int64) (*Document, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+documentColumns+` FROM documents WHERE id = $1`, id)
	d, err := scanDocument(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return d, nil
}

// CreateDocument inserts new document metadata.
func (r *Repository) CreateDocument(ctx context.Context, d *Document) (*Document, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO documents (title, description, file_name, content_type, size_bytes, storage_key, uploader_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING `+documentColumns,
		d.Title, d.Description, d.FileName, d.ContentType, d.SizeBytes, d.StorageKey, d.UploaderID)
	return scanDocument(row)
}

// UpdateDocument updates title and description.
func (r *Repository) UpdateDocument(ctx context.Context, d *Document) (*Document, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE documents SET title = $2, description = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING `+documentColumns,
		d.ID, d.Title, d.Description)
	updated, err := scanDocument(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return updated, nil
}

// DeleteDocument removes a document record.
func (r *Repository) DeleteDocument(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ RepositoryPort = (*Repository)(nil)
