package reports

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryPort defines the aggregate queries behind the summary report.
type RepositoryPort interface {
	ProjectCounts(ctx context.Context) (total, archived int64, err error)
	TaskCountsByStatus(ctx context.Context) (map[string]int64, error)
	MemberCounts(ctx context.Context) (active, pending int64, err error)
}

// Repository provides PostgreSQL backed aggregates.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ProjectCounts returns total and archived project counts.
func (r *Repository) ProjectCounts(ctx context.Context) (int64, int64, error) {
	var total, archived int64
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE archived)
		FROM projects`).Scan(&total, &archived)
	return total, archived, err
}

// TaskCountsByStatus returns a count per board column.
func (r *Repository) TaskCountsByStatus(ctx context.Context) (map[string]int64, error) {
	rows, err := r.pool.Query(ctx, `SELECT status, COUNT(*) FROM tasks GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	counts := make(map[string]int64)
	for rows.Next() {
		var (
			status string
			n      int64
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

// MemberCounts returns active and pending user counts.
func (r *Repository) MemberCounts(ctx context.Context) (int64, int64, error) {
	var active, pending int64
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FILTER (WHERE status = 'active'), COUNT(*) FILTER (WHERE status = 'pending')
		FROM users`).Scan(&active, &pending)
	return active, pending, err
}

var _ RepositoryPort = (*Repository)(nil)
