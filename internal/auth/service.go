package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/harborlight/harborlight/internal/authz"
	"github.com/harborlight/harborlight/internal/shared"
)

// Service wraps authentication business rules.
type Service struct {
	repo Repository
}

// NewService constructs a new Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Authenticate validates email/password credentials. Accounts that fail the
// lifecycle gate are rejected with a distinct error so the handler can tell
// an applicant awaiting approval apart from a blocked account, without ever
// issuing a session for either.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*Account, error) {
	account, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	switch {
	case authz.HasActiveStatus(account.Status):
		return account, nil
	case authz.IsPendingApproval(account.Status):
		return nil, shared.ErrAccountPending
	default:
		return nil, shared.ErrAccountBlocked
	}
}

// Register creates a new account in the pending state. The account cannot
// log in until an administrator approves it.
func (s *Service) Register(ctx context.Context, email, name, password string) (*Account, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("auth: hash password: %w", err)
	}
	email = strings.ToLower(strings.TrimSpace(email))
	return s.repo.CreateAccount(ctx, email, strings.TrimSpace(name), string(hash))
}

// RegisterSession persists the session metadata in postgres.
func (s *Service) RegisterSession(ctx context.Context, id string, userID int64, expiresAt time.Time, ip, ua string) error {
	return s.repo.CreateSession(ctx, id, userID, expiresAt, ip, ua)
}

// RemoveSession deletes a session record from postgres.
func (s *Service) RemoveSession(ctx context.Context, id string) error {
	return s.repo.DeleteSession(ctx, id)
}
