package authz

import "time"

// Actor is the snapshot of an authenticated account the engine decides for.
// It is produced by the session layer and may be incomplete; a zero Role or
// Status simply fails every check. SyncedAt records when the snapshot was
// last read from the source of truth so staleness is visible at call sites.
type Actor struct {
	ID       int64     `json:"id"`
	Role     Role      `json:"role"`
	Status   Status    `json:"status"`
	SyncedAt time.Time `json:"synced_at"`
}

// Active reports whether the actor passes the lifecycle gate.
func (a Actor) Active() bool {
	return HasActiveStatus(a.Status)
}

// StaleAfter reports whether the snapshot is older than maxAge at the given
// instant. Callers bounding the staleness window refresh when this is true.
func (a Actor) StaleAfter(now time.Time, maxAge time.Duration) bool {
	if a.SyncedAt.IsZero() {
		return true
	}
	return now.Sub(a.SyncedAt) > maxAge
}

// ProjectRelationship carries the facts connecting an actor to a project.
// A zero OwnerID means ownership is unknown and matches no actor.
type ProjectRelationship struct {
	OwnerID   int64
	MemberIDs []int64
}

// TaskRelationship carries the facts connecting an actor to a task.
// ProjectOwnerID is the owner of the task's project, if any; it lets a
// project owner inherit view and edit rights over tasks in their project.
type TaskRelationship struct {
	CreatorID      int64
	AssigneeIDs    []int64
	ProjectOwnerID int64
}

func containsID(ids []int64, id int64) bool {
	if id == 0 {
		return false
	}
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
