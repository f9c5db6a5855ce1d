package jobs

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeSendEmail sends one transactional email.
	TaskTypeSendEmail = "mail:send"
	// TaskTypeTaskReminder emails assignees of a task approaching its due date.
	TaskTypeTaskReminder = "tasks:reminder"
	// TaskTypeSnapshotSweep drops actor snapshots older than the staleness bound.
	TaskTypeSnapshotSweep = "actors:sweep"
	// TaskTypeWeeklyDigest mails recent announcements to active members.
	TaskTypeWeeklyDigest = "digest:weekly"
)

// SendEmailPayload describes the information required to send an email.
type SendEmailPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// NewSendEmailTask constructs an Asynq task.
func NewSendEmailTask(payload SendEmailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeSendEmail, data), nil
}

// TaskReminderPayload identifies the task to remind about.
type TaskReminderPayload struct {
	TaskID int64 `json:"task_id"`
}

// NewTaskReminderTask constructs an Asynq task.
func NewTaskReminderTask(taskID int64) (*asynq.Task, error) {
	data, err := json.Marshal(TaskReminderPayload{TaskID: taskID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeTaskReminder, data), nil
}

// SnapshotSweepPayload bounds the sweep. Snapshots synced before now-MaxAge
// are dropped so the next request reloads from the database.
type SnapshotSweepPayload struct {
	MaxAge time.Duration `json:"max_age"`
}

// NewSnapshotSweepTask constructs an Asynq task.
func NewSnapshotSweepTask(maxAge time.Duration) (*asynq.Task, error) {
	data, err := json.Marshal(SnapshotSweepPayload{MaxAge: maxAge})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeSnapshotSweep, data), nil
}

// WeeklyDigestPayload bounds the announcement window.
type WeeklyDigestPayload struct {
	Window time.Duration `json:"window"`
}

// NewWeeklyDigestTask constructs an Asynq task.
func NewWeeklyDigestTask(window time.Duration) (*asynq.Task, error) {
	data, err := json.Marshal(WeeklyDigestPayload{Window: window})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeWeeklyDigest, data), nil
}
