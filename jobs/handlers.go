package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/harborlight/harborlight/internal/announcements"
	"github.com/harborlight/harborlight/internal/authz"
	"github.com/harborlight/harborlight/internal/observability"
	"github.com/harborlight/harborlight/internal/tasks"
	"github.com/harborlight/harborlight/internal/users"
)

// Mailer sends a single email. The worker wires the SMTP implementation;
// tests inject a recorder.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Deps bundles everything the job handlers touch.
type Deps struct {
	Logger        *slog.Logger
	Metrics       *observability.Metrics
	Mailer        Mailer
	Redis         *redis.Client
	Tasks         tasks.RepositoryPort
	Users         users.RepositoryPort
	Announcements *announcements.Service
	Now           func() time.Time
}

func (d Deps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

func (d Deps) record(jobType, outcome string) {
	if d.Metrics != nil {
		d.Metrics.RecordJob(jobType, outcome)
	}
}

// HandleSendEmail processes mail:send tasks.
func (d Deps) HandleSendEmail(ctx context.Context, t *asynq.Task) error {
	var payload SendEmailPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		d.record(TaskTypeSendEmail, "skipped")
		return asynq.SkipRetry
	}
	if err := d.Mailer.Send(ctx, payload.To, payload.Subject, payload.Body); err != nil {
		d.record(TaskTypeSendEmail, "error")
		return err
	}
	d.record(TaskTypeSendEmail, "ok")
	return nil
}

// HandleTaskReminder emails every assignee of the task named in the payload.
// A task that disappeared before the reminder fired is not an error.
func (d Deps) HandleTaskReminder(ctx context.Context, t *asynq.Task) error {
	var payload TaskReminderPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		d.record(TaskTypeTaskReminder, "skipped")
		return asynq.SkipRetry
	}
	task, err := d.Tasks.GetTask(ctx, payload.TaskID)
	if err != nil {
		d.record(TaskTypeTaskReminder, "skipped")
		d.Logger.Info("reminder target gone", slog.Int64("task_id", payload.TaskID))
		return nil
	}
	due := "soon"
	if task.DueAt != nil {
		due = task.DueAt.Format("Mon 2 Jan 2006")
	}
	subject := fmt.Sprintf("Reminder: %s is due %s", task.Title, due)
	for _, assigneeID := range task.AssigneeIDs {
		user, err := d.Users.GetUser(ctx, assigneeID)
		if err != nil {
			continue
		}
		if err := d.Mailer.Send(ctx, user.Email, subject, task.Description); err != nil {
			d.record(TaskTypeTaskReminder, "error")
			return err
		}
	}
	d.record(TaskTypeTaskReminder, "ok")
	return nil
}

// HandleSnapshotSweep walks the cached actor snapshots and deletes any whose
// SyncedAt is past the staleness bound. Redis TTLs already expire these, so
// the sweep is a second line of defence after clock drift or TTL changes.
func (d Deps) HandleSnapshotSweep(ctx context.Context, t *asynq.Task) error {
	var payload SnapshotSweepPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		d.record(TaskTypeSnapshotSweep, "skipped")
		return asynq.SkipRetry
	}
	if payload.MaxAge <= 0 {
		payload.MaxAge = 5 * time.Minute
	}
	now := d.now()
	var swept int
	iter := d.Redis.Scan(ctx, 0, "actor:*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		data, err := d.Redis.Get(ctx, key).Bytes()
		if err != nil {
			continue
		}
		var actor authz.Actor
		if err := json.Unmarshal(data, &actor); err != nil || actor.StaleAfter(now, payload.MaxAge) {
			if err := d.Redis.Del(ctx, key).Err(); err == nil {
				swept++
			}
		}
	}
	if err := iter.Err(); err != nil {
		d.record(TaskTypeSnapshotSweep, "error")
		return err
	}
	d.Logger.Info("snapshot sweep", slog.Int("swept", swept))
	d.record(TaskTypeSnapshotSweep, "ok")
	return nil
}

// HandleWeeklyDigest mails announcements from the window to every active
// member. No announcements means no mail.
func (d Deps) HandleWeeklyDigest(ctx context.Context, t *asynq.Task) error {
	var payload WeeklyDigestPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		d.record(TaskTypeWeeklyDigest, "skipped")
		return asynq.SkipRetry
	}
	if payload.Window <= 0 {
		payload.Window = 7 * 24 * time.Hour
	}
	since := d.now().Add(-payload.Window)
	list, err := d.Announcements.Since(ctx, since)
	if err != nil {
		d.record(TaskTypeWeeklyDigest, "error")
		return err
	}
	if len(list) == 0 {
		d.record(TaskTypeWeeklyDigest, "ok")
		return nil
	}

	var b strings.Builder
	for _, a := range list {
		fmt.Fprintf(&b, "%s\n%s\n\n", a.Title, a.Body)
	}
	body := b.String()

	members, err := d.Users.ListActiveMembers(ctx)
	if err != nil {
		d.record(TaskTypeWeeklyDigest, "error")
		return err
	}
	for _, member := range members {
		if err := d.Mailer.Send(ctx, member.Email, "This week at Harborlight", body); err != nil {
			d.record(TaskTypeWeeklyDigest, "error")
			return err
		}
	}
	d.record(TaskTypeWeeklyDigest, "ok")
	return nil
}
