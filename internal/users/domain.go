package users

import (
	"time"

	"github.com/harborlight/harborlight/internal/authz"
)

// User represents a user account for management.
type User struct {
	ID        int64
	Email     string
	Name      string
	Role      authz.Role
	Status    authz.Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Member is the reduced view exposed in the team directory.
type Member struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}
