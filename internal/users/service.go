package users

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/harborlight/harborlight/internal/authz"
	"github.com/harborlight/harborlight/internal/shared"
)

// Invalidator drops a cached actor snapshot after a lifecycle or role
// mutation, so the change takes effect on the next request instead of after
// the staleness window.
type Invalidator interface {
	Invalidate(ctx context.Context, userID int64) error
}

// Service handles account lifecycle and role administration.
type Service struct {
	repo        RepositoryPort
	invalidator Invalidator
	audit       *shared.AuditLogger
	logger      *slog.Logger
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort, invalidator Invalidator, audit *shared.AuditLogger, logger *slog.Logger) *Service {
	return &Service{repo: repo, invalidator: invalidator, audit: audit, logger: logger}
}

// List returns accounts, optionally filtered by lifecycle status.
func (s *Service) List(ctx context.Context, status authz.Status) ([]User, error) {
	return s.repo.ListUsers(ctx, status)
}

// Lifecycle transitions. Each validates against the current state, so a
// replayed or raced request fails with ErrInvalidTransition instead of
// silently re-applying.

// Approve moves a pending account to active.
func (s *Service) Approve(ctx context.Context, actorID, userID int64) (User, error) {
	return s.transition(ctx, actorID, userID, "approve", authz.StatusActive, authz.StatusPending)
}

// Reject moves a pending account to rejected. Terminal.
func (s *Service) Reject(ctx context.Context, actorID, userID int64) (User, error) {
	return s.transition(ctx, actorID, userID, "reject", authz.StatusRejected, authz.StatusPending)
}

// Suspend moves an active account to suspended.
func (s *Service) Suspend(ctx context.Context, actorID, userID int64) (User, error) {
	return s.transition(ctx, actorID, userID, "suspend", authz.StatusSuspended, authz.StatusActive)
}

// Deactivate moves an active account to inactive.
func (s *Service) Deactivate(ctx context.Context, actorID, userID int64) (User, error) {
	return s.transition(ctx, actorID, userID, "deactivate", authz.StatusInactive, authz.StatusActive)
}

// Reactivate moves a suspended or inactive account back to active.
func (s *Service) Reactivate(ctx context.Context, actorID, userID int64) (User, error) {
	return s.transition(ctx, actorID, userID, "reactivate", authz.StatusActive, authz.StatusSuspended, authz.StatusInactive)
}

func (s *Service) transition(ctx context.Context, actorID, userID int64, action string, target authz.Status, allowedFrom ...authz.Status) (User, error) {
	current, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return User{}, err
	}
	permitted := false
	for _, from := range allowedFrom {
		if current.Status == from {
			permitted = true
			break
		}
	}
	if !permitted {
		return User{}, fmt.Errorf("users: %s from %q: %w", action, current.Status, shared.ErrInvalidTransition)
	}

	updated, err := s.repo.UpdateStatus(ctx, userID, target)
	if err != nil {
		return User{}, err
	}
	s.afterMutation(ctx, actorID, userID, "user."+action, map[string]any{
		"from": string(current.Status),
		"to":   string(target),
	})
	return updated, nil
}

// ChangeRole assigns a new role to the account.
func (s *Service) ChangeRole(ctx context.Context, actorID, userID int64, role authz.Role) (User, error) {
	if !role.Valid() {
		return User{}, fmt.Errorf("users: unknown role: %w", shared.ErrInvalidTransition)
	}
	current, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return User{}, err
	}
	updated, err := s.repo.UpdateRole(ctx, userID, role)
	if err != nil {
		return User{}, err
	}
	s.afterMutation(ctx, actorID, userID, "user.role_change", map[string]any{
		"from": current.Role.String(),
		"to":   role.String(),
	})
	return updated, nil
}

func (s *Service) afterMutation(ctx context.Context, actorID, userID int64, action string, meta map[string]any) {
	if s.invalidator != nil {
		if err := s.invalidator.Invalidate(ctx, userID); err != nil && s.logger != nil {
			s.logger.Warn("invalidate actor snapshot", slog.Int64("user_id", userID), slog.Any("error", err))
		}
	}
	if s.audit != nil {
		err := s.audit.Record(ctx, shared.AuditLog{
			ActorID:  actorID,
			Action:   action,
			Entity:   "user",
			EntityID: strconv.FormatInt(userID, 10),
			Meta:     meta,
		})
		if err != nil && s.logger != nil {
			s.logger.Warn("audit record", slog.String("action", action), slog.Any("error", err))
		}
	}
}

var titleCaser = cases.Title(language.English)

// TeamDirectory returns the member view of all active accounts.
func (s *Service) TeamDirectory(ctx context.Context) ([]Member, error) {
	active, err := s.repo.ListActiveMembers(ctx)
	if err != nil {
		return nil, err
	}
	members := make([]Member, 0, len(active))
	for _, user := range active {
		members = append(members, Member{
			ID:   user.ID,
			Name: displayName(user),
			Role: user.Role.String(),
		})
	}
	return members, nil
}

// displayName falls back to the email local part when an account never set
// a name.
func displayName(user User) string {
	name := strings.TrimSpace(user.Name)
	if name != "" {
		return name
	}
	local, _, _ := strings.Cut(user.Email, "@")
	return titleCaser.String(strings.ReplaceAll(local, ".", " "))
}
