package finance

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborlight/harborlight/internal/authz"
	"github.com/harborlight/harborlight/internal/platform/httpx"
	"github.com/harborlight/harborlight/internal/shared"
)

type fakeExpenseRepo struct {
	expenses map[int64]*Expense
	nextID   int64
}

func newFakeExpenseRepo(seed ...*Expense) *fakeExpenseRepo {
	repo := &fakeExpenseRepo{expenses: map[int64]*Expense{}, nextID: 1}
	for _, e := range seed {
		if e.ID == 0 {
			e.ID = repo.nextID
		}
		if e.ID >= repo.nextID {
			repo.nextID = e.ID + 1
		}
		if e.Status == "" {
			e.Status = ExpensePending
		}
		repo.expenses[e.ID] = e
	}
	return repo
}

func (f *fakeExpenseRepo) ListExpenses(ctx context.Context, status ExpenseStatus) ([]Expense, error) {
	out := make([]Expense, 0, len(f.expenses))
	for _, e := range f.expenses {
		if status != "" && e.Status != status {
			continue
		}
		out = append(out, *e)
	}
	return out, nil
}

func (f *fakeExpenseRepo) GetExpense(ctx context.Context, id int64) (*Expense, error) {
	e, ok := f.expenses[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	clone := *e
	return &clone, nil
}

func (f *fakeExpenseRepo) CreateExpense(ctx context.Context, e *Expense) (*Expense, error) {
	e.ID = f.nextID
	f.nextID++
	e.Status = ExpensePending
	f.expenses[e.ID] = e
	clone := *e
	return &clone, nil
}

func (f *fakeExpenseRepo) DecideExpense(ctx context.Context, id, approverID int64, status ExpenseStatus, note string) (*Expense, error) {
	e, ok := f.expenses[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	if e.Status != ExpensePending {
		return nil, shared.ErrInvalidTransition
	}
	now := time.Now()
	e.Status = status
	e.ApproverID = &approverID
	e.DecidedAt = &now
	if note != "" {
		e.Note = &note
	}
	clone := *e
	return &clone, nil
}

func admin(id int64) authz.Actor {
	return authz.Actor{ID: id, Role: authz.RoleAdmin, Status: authz.StatusActive, SyncedAt: time.Now()}
}

func TestSubmitNormalizesAndStartsPending(t *testing.T) {
	svc := NewService(newFakeExpenseRepo(), nil, nil)

	e, err := svc.Submit(context.Background(), admin(3), SubmitInput{
		Description: "  Van hire ",
		Category:    "transport",
		Amount:      120.50,
		Currency:    "gbp",
	})
	require.NoError(t, err)
	assert.Equal(t, ExpensePending, e.Status)
	assert.Equal(t, "Van hire", e.Description)
	assert.Equal(t, "GBP", e.Currency)
	assert.Equal(t, int64(3), e.SubmitterID)
}

func TestSubmitRejectsBadInput(t *testing.T) {
	svc := NewService(newFakeExpenseRepo(), nil, nil)

	_, err := svc.Submit(context.Background(), admin(3), SubmitInput{Description: "Van hire", Amount: -5, Currency: "GBP"})
	assert.ErrorIs(t, err, httpx.ErrValidation)

	_, err = svc.Submit(context.Background(), admin(3), SubmitInput{Description: "Van hire", Amount: 5, Currency: "POUNDS"})
	assert.ErrorIs(t, err, httpx.ErrValidation)
}

func TestApproveOnlyOnce(t *testing.T) {
	repo := newFakeExpenseRepo(&Expense{ID: 1, Description: "Van hire", Amount: 120, Currency: "GBP"})
	svc := NewService(repo, nil, nil)

	e, err := svc.Approve(context.Background(), admin(3), 1, "ok")
	require.NoError(t, err)
	assert.Equal(t, ExpenseApproved, e.Status)
	require.NotNil(t, e.ApproverID)
	assert.Equal(t, int64(3), *e.ApproverID)

	_, err = svc.Reject(context.Background(), admin(4), 1, "")
	assert.ErrorIs(t, err, shared.ErrInvalidTransition)
}

func TestListRejectsUnknownStatusFilter(t *testing.T) {
	svc := NewService(newFakeExpenseRepo(), nil, nil)

	_, err := svc.List(context.Background(), ExpenseStatus("archived"))
	assert.ErrorIs(t, err, httpx.ErrValidation)
}

func TestExportCSV(t *testing.T) {
	repo := newFakeExpenseRepo(&Expense{ID: 1, Description: "Van hire", Category: "transport", Amount: 120.5, Currency: "GBP", SubmitterID: 3})
	svc := NewService(repo, nil, nil)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportCSV(context.Background(), &buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "id,description,category,amount,currency,status,submitter_id,decided_at", lines[0])
	assert.Contains(t, lines[1], "Van hire")
	assert.Contains(t, lines[1], "120.50")
}
