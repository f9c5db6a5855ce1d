package shared

import "errors"

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAccountPending indicates a login attempt on an account awaiting approval.
	ErrAccountPending = errors.New("account pending approval")
	// ErrAccountBlocked indicates a login attempt on a suspended, deactivated, or rejected account.
	ErrAccountBlocked = errors.New("account blocked")
	// ErrDuplicate indicates a uniqueness violation.
	ErrDuplicate = errors.New("duplicate entry")
	// ErrInvalidTransition indicates a lifecycle transition the current state does not allow.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrCSRFTokenMissing occurs when CSRF token missing.
	ErrCSRFTokenMissing = errors.New("csrf token missing")
	// ErrCSRFTokenMismatch occurs when CSRF tokens do not match.
	ErrCSRFTokenMismatch = errors.New("csrf token mismatch")
)

// UserSafeMessage maps internal errors to a message that can be shown to the
// client without leaking internals.
func UserSafeMessage(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "The requested record was not found."
	case errors.Is(err, ErrDuplicate):
		return "A record with the same identifier already exists."
	case errors.Is(err, ErrInvalidTransition):
		return "The account is not in a state that allows this change."
	case errors.Is(err, ErrInvalidCredentials):
		return "Email or password is incorrect."
	default:
		return "Something went wrong. Please try again."
	}
}
