package finance

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/harborlight/harborlight/internal/shared"
)

// RepositoryPort defines data access methods for expenses.
type RepositoryPort interface {
	ListExpenses(ctx context.Context, status ExpenseStatus) ([]Expense, error)
	GetExpense(ctx context.Context, id int64) (*Expense, error)
	CreateExpense(ctx context.Context, e *Expense) (*Expense, error)
	DecideExpense(ctx context.Context, id, approverID int64, status ExpenseStatus, note string) (*Expense, error)
}

// Repository provides PostgreSQL backed persistence. Amounts are stored as
// numeric and surfaced as float64.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const expenseColumns = `id, description, category, amount, currency, status, submitter_id, approver_id, decided_at, note, created_at, updated_at`

func scanExpense(row pgx.Row) (*Expense, error) {
	var (
		e         Expense
		amount    pgtype.Numeric
		status    string
		approver  pgtype.Int8
		decidedAt pgtype.Timestamptz
		note      pgtype.Text
	)
	if err := row.Scan(&e.ID, &e.Description, &e.Category, &amount, &e.Currency, &status, &e.SubmitterID, &approver, &decidedAt, &note, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	e.Status = ExpenseStatus(status)
	if amount.Valid {
		f, err := amount.Float64Value()
		if err != nil {
			return nil, err
		}
		e.Amount = f.Float64
	}
	if approver.Valid {
		e.ApproverID = &approver.Int64
	}
	if decidedAt.Valid {
		e.DecidedAt = &decidedAt.Time
	}
	if note.Valid {
		e.Note = &note.String
	}
	return &e, nil
}

// ListExpenses returns expenses newest first, optionally filtered by status.
func (r *Repository) ListExpenses(ctx context.Context, status ExpenseStatus) ([]Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, string(status))
	}
	query += ` ORDER BY created_at DESC, id DESC`
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *e)
	}
	return list, rows.Err()
}

// GetExpense fetches one expense record.
func (r *Repository) GetExpense(ctx context.Context, id int64) (*Expense, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+expenseColumns+` FROM expenses WHERE id = $1`, id)
	e, err := scanExpense(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

// CreateExpense inserts a new pending expense.
func (r *Repository) CreateExpense(ctx context.Context, e *Expense) (*Expense, error) {
	var amount pgtype.Numeric
	if err := amount.Scan(fmt.Sprintf("%f", e.Amount)); err != nil {
		return nil, err
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO expenses (description, category, amount, currency, status, submitter_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING `+expenseColumns,
		e.Description, e.Category, amount, e.Currency, string(ExpensePending), e.SubmitterID)
	return scanExpense(row)
}

// DecideExpense records an approval or rejection. Only pending expenses can
// be decided; deciding twice returns ErrInvalidTransition.
func (r *Repository) DecideExpense(ctx context.Context, id, approverID int64, status ExpenseStatus, note string) (*Expense, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE expenses
		SET status = $3, approver_id = $2, decided_at = NOW(), note = NULLIF($4, ''), updated_at = NOW()
		WHERE id = $1 AND status = $5
		RETURNING `+expenseColumns,
		id, approverID, string(status), note, string(ExpensePending))
	decided, err := scanExpense(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			if _, getErr := r.GetExpense(ctx, id); getErr != nil {
				return nil, getErr
			}
			return nil, shared.ErrInvalidTransition
		}
		return nil, err
	}
	return decided, nil
}

var _ RepositoryPort = (*Repository)(nil)
