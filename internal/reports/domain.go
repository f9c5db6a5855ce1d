package reports

// Summary aggregates activity counts for the dashboard reports page.
type Summary struct {
	TotalProjects    int64            `json:"total_projects"`
	ActiveProjects   int64            `json:"active_projects"`
	ArchivedProjects int64            `json:"archived_projects"`
	TotalTasks       int64            `json:"total_tasks"`
	TasksByStatus    map[string]int64 `json:"tasks_by_status"`
	ActiveMembers    int64            `json:"active_members"`
	PendingMembers   int64            `json:"pending_members"`
}
