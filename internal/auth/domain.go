package auth

import (
	"time"

	"github.com/harborlight/harborlight/internal/authz"
)

// Account represents a user account as stored.
type Account struct {
	ID           int64
	Email        string
	Name         string
	PasswordHash string
	Role         authz.Role
	Status       authz.Status
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Actor converts the account into an engine snapshot stamped at now.
func (a *Account) Actor(now time.Time) authz.Actor {
	return authz.Actor{
		ID:       a.ID,
		Role:     a.Role,
		Status:   a.Status,
		SyncedAt: now,
	}
}
