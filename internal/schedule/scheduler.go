package schedule

import (
	"context"
	"runtime"

	"github.com/jmhodges/clock"

	"github.com/learntime/learntime/internal/model"
	"github.com/learntime/learntime/internal/notifier"
)

// LearningReminderChannel is the notification channel all learning
// reminders are registered on.
var LearningReminderChannel = notifier.Channel{
	ID:   "learning-reminders",
	Name: "Learning reminders",
}

// NotificationNameLearningReminder tags reminder notifications so lifecycle
// events can be attributed to the feature.
const NotificationNameLearningReminder = "learning_reminder"

const notificationBody = "Continue learning on LearnTime now"

// notificationTitle returns the reminder title for the given OS. Darwin
// notification banners do not show the app name, so the brand is baked into
// the title there and omitted elsewhere.
func notificationTitle(goos string) string {
	if goos == "darwin" {
		return "LearnTime - Learning time"
	}
	return "Learning time"
}

// Scheduler keeps the notifier's pending reminder set consistent with the
// user's preferences.
type Scheduler struct {
	notifier notifier.TriggerScheduler
	clk      clock.Clock
}

// NewScheduler creates a scheduler over the given notification capability.
func NewScheduler(n notifier.TriggerScheduler, clk clock.Clock) *Scheduler {
	return &Scheduler{notifier: n, clk: clk}
}

// ScheduleNotifications registers one weekly trigger notification per
// selected day. It is a no-op when reminders are switched off or no time
// is set. Days are processed in canonical Sunday-first order; the first
// registration failure aborts and propagates.
func (s *Scheduler) ScheduleNotifications(ctx context.Context, data model.RemindersData) error {
	if data.Time == 0 || !data.UseReminders {
		return nil
	}

	for _, day := range model.DaysOfWeek {
		if !data.Day(day) {
			continue
		}

		dayToSendOn := FindNextDateForDayOfWeek(s.clk, day)
		timestamp := CalculateTriggerTimestamp(s.clk, dayToSendOn, data.Time)

		if err := s.ScheduleNotification(ctx, timestamp); err != nil {
			return err
		}
	}
	return nil
}

// ScheduleNotification registers a single weekly-recurring reminder that
// first fires at the given millisecond-epoch timestamp.
func (s *Scheduler) ScheduleNotification(ctx context.Context, timestamp int64) error {
	channelID, err := s.notifier.CreateChannel(ctx, LearningReminderChannel)
	if err != nil {
		return err
	}

	return s.notifier.CreateTriggerNotification(ctx,
		notifier.Notification{
			Title:     notificationTitle(runtime.GOOS),
			Body:      notificationBody,
			ChannelID: channelID,
			Data: map[string]string{
				"name": NotificationNameLearningReminder,
			},
		},
		notifier.Trigger{
			Type:            notifier.TriggerTypeTimestamp,
			Timestamp:       timestamp,
			RepeatFrequency: notifier.RepeatWeekly,
			AllowWhileIdle:  true,
		},
	)
}

// CancelPendingNotifications cancels every pending trigger notification in
// one batch. It clears the whole pending set, not just reminders; callers
// re-run ScheduleNotifications immediately afterwards when reminders
// should stay active.
func (s *Scheduler) CancelPendingNotifications(ctx context.Context) error {
	ids, err := s.notifier.TriggerNotificationIDs(ctx)
	if err != nil {
		return err
	}
	return s.notifier.CancelTriggerNotifications(ctx, ids)
}
