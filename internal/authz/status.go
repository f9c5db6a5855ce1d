package authz

// Status is an account lifecycle state. Unlike Role it carries no ordering;
// the engine reads it purely as a gate value. Transitions happen in the user
// management flow, never here.
type Status string

// Account lifecycle states.
const (
	StatusUnknown   Status = ""
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
	StatusInactive  Status = "inactive"
	StatusRejected  Status = "rejected"
)

var knownStatuses = map[Status]struct{}{
	StatusPending:   {},
	StatusActive:    {},
	StatusSuspended: {},
	StatusInactive:  {},
	StatusRejected:  {},
}

// ParseStatus maps a stored status value to a Status. Unrecognized values
// resolve to StatusUnknown rather than an error.
func ParseStatus(value string) Status {
	s := Status(value)
	if _, ok := knownStatuses[s]; ok {
		return s
	}
	return StatusUnknown
}

// Valid reports whether the status is a known lifecycle state.
func (s Status) Valid() bool {
	_, ok := knownStatuses[s]
	return ok
}

// HasActiveStatus reports whether the account passes the lifecycle gate.
// Only active accounts do; every other value, known or not, blocks all
// permission checks regardless of role.
func HasActiveStatus(status Status) bool {
	return status == StatusActive
}

// IsPendingApproval reports whether the account awaits admin approval.
// Informational only; it does not participate in decision composition.
func IsPendingApproval(status Status) bool {
	return status == StatusPending
}

// IsBlocked reports whether the account has been suspended, deactivated, or
// rejected. Informational only, used by upstream flows to pick a redirect.
func IsBlocked(status Status) bool {
	return status == StatusSuspended || status == StatusInactive || status == StatusRejected
}
