package finance

import "time"

// ExpenseStatus tracks the approval flow of an expense record.
type ExpenseStatus string

const (
	ExpensePending  ExpenseStatus = "pending"
	ExpenseApproved ExpenseStatus = "approved"
	ExpenseRejected ExpenseStatus = "rejected"
)

// Expense is a spending record submitted for approval.
type Expense struct {
	ID          int64
	Description string
	Category    string
	Amount      float64
	Currency    string
	Status      ExpenseStatus
	SubmitterID int64
	ApproverID  *int64
	DecidedAt   *time.Time
	Note        *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
