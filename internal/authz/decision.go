package authz

// Decision is the computed outcome for one actor/resource pair. It is a
// plain value recomputed on every call; never cache it across requests
// because role, status, and relationship can all change between calls.
//
// IsOwner is a pure relationship fact and is reported even when the
// lifecycle gate fails. CanManageMembers is composed only for projects;
// for tasks it is true only through the super-admin override.
type Decision struct {
	IsOwner          bool `json:"is_owner"`
	CanView          bool `json:"can_view"`
	CanEdit          bool `json:"can_edit"`
	CanDelete        bool `json:"can_delete"`
	CanManageMembers bool `json:"can_manage_members"`
}

// allowAll is the super-admin override. It is an explicit short-circuit
// evaluated before the composite rules so that changes to ordinary
// permission thresholds cannot narrow or widen it by accident.
func allowAll(isOwner bool) Decision {
	return Decision{
		IsOwner:          isOwner,
		CanView:          true,
		CanEdit:          true,
		CanDelete:        true,
		CanManageMembers: true,
	}
}

// ProjectDecision composes the decision for an actor against a project.
// Absent relationship facts count as "unrelated", never as "allow".
func ProjectDecision(actor Actor, rel ProjectRelationship) Decision {
	isOwner := rel.OwnerID != 0 && actor.ID == rel.OwnerID

	if !HasActiveStatus(actor.Status) {
		return Decision{IsOwner: isOwner}
	}
	if IsSuperAdmin(actor.Role) {
		return allowAll(isOwner)
	}

	isMember := containsID(rel.MemberIDs, actor.ID)
	role := actor.Role

	return Decision{
		IsOwner: isOwner,
		CanView: HasPermission(role, PermProjectsView) &&
			(isOwner || isMember || HasPermission(role, PermProjectsViewAll)),
		CanEdit: (isOwner && HasPermission(role, PermProjectsEditOwn)) ||
			HasPermission(role, PermProjectsEditAll),
		CanDelete: (isOwner && HasPermission(role, PermProjectsDeleteOwn)) ||
			HasPermission(role, PermProjectsDeleteAll),
		CanManageMembers: (isOwner && HasPermission(role, PermProjectsManageMembers)) ||
			HasPermission(role, PermProjectsEditAll),
	}
}

// TaskDecision composes the decision for an actor against a task. The
// project-owner fact lets an owner manage tasks inside their project even
// without being creator or assignee.
func TaskDecision(actor Actor, rel TaskRelationship) Decision {
	isCreator := rel.CreatorID != 0 && actor.ID == rel.CreatorID

	if !HasActiveStatus(actor.Status) {
		return Decision{IsOwner: isCreator}
	}
	if IsSuperAdmin(actor.Role) {
		return allowAll(isCreator)
	}

	isAssignee := containsID(rel.AssigneeIDs, actor.ID)
	isProjectOwner := rel.ProjectOwnerID != 0 && actor.ID == rel.ProjectOwnerID
	related := isCreator || isAssignee || isProjectOwner
	role := actor.Role

	return Decision{
		IsOwner: isCreator,
		CanView: HasPermission(role, PermTasksView) &&
			(related || HasPermission(role, PermTasksViewAll)),
		CanEdit: ((isCreator || isAssignee || isProjectOwner) && HasPermission(role, PermTasksEditOwn)) ||
			HasPermission(role, PermTasksEditAll),
		CanDelete: ((isCreator || isProjectOwner) && HasPermission(role, PermTasksDeleteOwn)) ||
			HasPermission(role, PermTasksDeleteAll),
	}
}
