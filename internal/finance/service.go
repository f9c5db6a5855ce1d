package finance

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/harborlight/harborlight/internal/authz"
	"github.com/harborlight/harborlight/internal/platform/httpx"
	"github.com/harborlight/harborlight/internal/shared"
)

// Service validates expense records and runs the approval flow.
type Service struct {
	repo   RepositoryPort
	audit  *shared.AuditLogger
	logger *slog.Logger
}

// NewService builds Service instance.
func NewService(repo RepositoryPort, audit *shared.AuditLogger, logger *slog.Logger) *Service {
	return &Service{repo: repo, audit: audit, logger: logger}
}

func (s *Service) recordAudit(ctx context.Context, actorID int64, action string, expenseID int64) {
	if s.audit == nil {
		return
	}
	err := s.audit.Record(ctx, shared.AuditLog{
		ActorID:  actorID,
		Action:   action,
		Entity:   "expense",
		EntityID: strconv.FormatInt(expenseID, 10),
	})
	if err != nil && s.logger != nil {
		s.logger.Warn("audit record", slog.String("action", action), slog.Any("error", err))
	}
}

// List returns expenses, optionally filtered by approval status.
func (s *Service) List(ctx context.Context, status ExpenseStatus) ([]Expense, error) {
	switch status {
	case "", ExpensePending, ExpenseApproved, ExpenseRejected:
	default:
		return nil, errors.Join(httpx.ErrValidation, errors.New("unknown expense status"))
	}
	return s.repo.ListExpenses(ctx, status)
}

// SubmitInput carries fields for a new expense.
type SubmitInput struct {
	Description string
	Category    string
	Amount      float64
	Currency    string
}

// Submit records a pending expense from the actor.
func (s *Service) Submit(ctx context.Context, actor authz.Actor, input SubmitInput) (*Expense, error) {
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, errors.Join(httpx.ErrValidation, errors.New("description required"))
	}
	if input.Amount <= 0 {
		return nil, errors.Join(httpx.ErrValidation, errors.New("amount must be positive"))
	}
	currency := strings.ToUpper(strings.TrimSpace(input.Currency))
	if len(currency) != 3 {
		return nil, errors.Join(httpx.ErrValidation, errors.New("currency must be a 3-letter code"))
	}
	created, err := s.repo.CreateExpense(ctx, &Expense{
		Description: description,
		Category:    strings.TrimSpace(input.Category),
		Amount:      input.Amount,
		Currency:    currency,
		SubmitterID: actor.ID,
	})
	if err != nil {
		return nil, err
	}
	s.recordAudit(ctx, actor.ID, "finance.expense.submitted", created.ID)
	return created, nil
}

// Approve marks a pending expense approved.
func (s *Service) Approve(ctx context.Context, actor authz.Actor, id int64, note string) (*Expense, error) {
	decided, err := s.repo.DecideExpense(ctx, id, actor.ID, ExpenseApproved, strings.TrimSpace(note))
	if err != nil {
		return nil, err
	}
	s.recordAudit(ctx, actor.ID, "finance.expense.approved", id)
	return decided, nil
}

// Reject marks a pending expense rejected.
func (s *Service) Reject(ctx context.Context, actor authz.Actor, id int64, note string) (*Expense, error) {
	decided, err := s.repo.DecideExpense(ctx, id, actor.ID, ExpenseRejected, strings.TrimSpace(note))
	if err != nil {
		return nil, err
	}
	s.recordAudit(ctx, actor.ID, "finance.expense.rejected", id)
	return decided, nil
}

// ExportCSV streams all expenses as CSV.
func (s *Service) ExportCSV(ctx context.Context, w io.Writer) error {
	list, err := s.repo.ListExpenses(ctx, "")
	if err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "description", "category", "amount", "currency", "status", "submitter_id", "decided_at"}); err != nil {
		return err
	}
	for _, e := range list {
		decided := ""
		if e.DecidedAt != nil {
			decided = e.DecidedAt.Format(time.RFC3339)
		}
		record := []string{
			strconv.FormatInt(e.ID, 10),
			e.Description,
			e.Category,
			strconv.FormatFloat(e.Amount, 'f', 2, 64),
			e.Currency,
			string(e.Status),
			strconv.FormatInt(e.SubmitterID, 10),
			decided,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
