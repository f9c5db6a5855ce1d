package announcements

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/harborlight/harborlight/internal/shared"
)

// RepositoryPort defines data access methods for announcements.
type RepositoryPort interface {
	ListAnnouncements(ctx context.Context) ([]Announcement, error)
	ListAnnouncementsSince(ctx context.Context, since time.Time) ([]Announcement, error)
	CreateAnnouncement(ctx context.Context, a *Announcement) (*Announcement, error)
	SetPinned(ctx context.Context, id int64, pinned bool) error
	DeleteAnnouncement(ctx context.Context, id int64) error
}

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const announcementColumns = `id, title, body, author_id, pinned, created_at`

func scanAnnouncement(row pgx.Row) (*Announcement, error) {
	var a Announcement
	if err := row.Scan(&a.ID, &a.Title, &a.Body, &a.AuthorID, &a.Pinned, &a.CreatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *Repository) query(ctx context.Context, sql string, args ...any) ([]Announcement, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []Announcement
	for rows.Next() {
		a, err := scanAnnouncement(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *a)
	}
	return list, rows.Err()
}

// ListAnnouncements returns all announcements, pinned first, then newest.
func (r *Repository) ListAnnouncements(ctx context.Context) ([]Announcement, error) {
	return r.query(ctx, `SELECT `+announcementColumns+` FROM announcements ORDER BY pinned DESC, created_at DESC, id DESC`)
}

// ListAnnouncementsSince returns announcements created at or after the given
// time, used by the weekly digest job.
func (r *Repository) ListAnnouncementsSince(ctx context.Context, since time.Time) ([]Announcement, error) {
	return r.query(ctx, `
		SELECT `+announcementColumns+` FROM announcements
		WHERE created_at >= $1 ORDER BY created_at DESC, id DESC`, since)
}

// CreateAnnouncement inserts a new announcement.
func (r *Repository) CreateAnnouncement(ctx context.Context, a *Announcement) (*Announcement, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO announcements (title, body, author_id, pinned, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING `+announcementColumns,
		a.Title, a.Body, a.AuthorID, a.Pinned)
	return scanAnnouncement(row)
}

// SetPinned toggles the pinned flag.
func (r *Repository) SetPinned(ctx context.Context, id int64, pinned bool) error {
	tag, err := r.pool.Exec(ctx, `UPDATE announcements SET pinned = $2 WHERE id = $1`, id, pinned)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteAnnouncement removes an announcement.
func (r *Repository) DeleteAnnouncement(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM announcements WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ RepositoryPort = (*Repository)(nil)
