package projects

import (
	"time"

	"github.com/harborlight/harborlight/internal/authz"
)

// Project is a unit of organized volunteer work with one owner and any
// number of members.
type Project struct {
	ID          int64
	Name        string
	Description string
	OwnerID     int64
	Archived    bool
	MemberIDs   []int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Relationship extracts the facts the decision engine needs.
func (p *Project) Relationship() authz.ProjectRelationship {
	return authz.ProjectRelationship{
		OwnerID:   p.OwnerID,
		MemberIDs: p.MemberIDs,
	}
}
