package schedule

import (
	"context"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learntime/learntime/internal/model"
	"github.com/learntime/learntime/internal/notifier"
)

// createdTrigger captures one CreateTriggerNotification call.
type createdTrigger struct {
	notification notifier.Notification
	trigger      notifier.Trigger
}

// fakeNotifier is a capturing TriggerScheduler for tests.
type fakeNotifier struct {
	settings    notifier.NotificationSettings
	settingsErr error
	requested   notifier.NotificationSettings
	requestErr  error
	createErr   error

	calls     []string
	channels  []notifier.Channel
	created   []createdTrigger
	pending   []string
	cancelled [][]string

	foreground []notifier.Handler
	background []notifier.Handler
}

var _ notifier.TriggerScheduler = (*fakeNotifier)(nil)

func (f *fakeNotifier) GetNotificationSettings(ctx context.Context) (notifier.NotificationSettings, error) {
	f.calls = append(f.calls, "settings")
	return f.settings, f.settingsErr
}

func (f *fakeNotifier) RequestPermission(ctx context.Context) (notifier.NotificationSettings, error) {
	f.calls = append(f.calls, "request")
	return f.requested, f.requestErr
}

func (f *fakeNotifier) CreateChannel(ctx context.Context, ch notifier.Channel) (string, error) {
	f.calls = append(f.calls, "channel")
	f.channels = append(f.channels, ch)
	return ch.ID, nil
}

func (f *fakeNotifier) CreateTriggerNotification(ctx context.Context, n notifier.Notification, t notifier.Trigger) error {
	f.calls = append(f.calls, "create")
	f.created = append(f.created, createdTrigger{notification: n, trigger: t})
	return f.createErr
}

func (f *fakeNotifier) TriggerNotificationIDs(ctx context.Context) ([]string, error) {
	f.calls = append(f.calls, "ids")
	return f.pending, nil
}

func (f *fakeNotifier) CancelTriggerNotifications(ctx context.Context, ids []string) error {
	f.calls = append(f.calls, "cancel")
	f.cancelled = append(f.cancelled, ids)
	return nil
}

func (f *fakeNotifier) OnForegroundEvent(h notifier.Handler) {
	f.foreground = append(f.foreground, h)
}

func (f *fakeNotifier) OnBackgroundEvent(h notifier.Handler) {
	f.background = append(f.background, h)
}

func TestScheduleNotificationsRegistersSelectedDays(t *testing.T) {
	// Friday morning; reminders on Monday and Tuesday at 14:30.
	clk := fakeClockAt(time.Date(2022, time.February, 18, 10, 0, 0, 0, time.Local))
	fake := &fakeNotifier{}
	sched := NewScheduler(fake, clk)

	data := model.RemindersData{
		UseReminders: true,
		Time:         timeOfDay(14, 30, 0),
		Monday:       true,
		Tuesday:      true,
	}

	require.NoError(t, sched.ScheduleNotifications(context.Background(), data))
	require.Len(t, fake.created, 2)

	monday := fake.created[0]
	tuesday := fake.created[1]

	assert.Equal(t,
		time.Date(2022, time.February, 21, 14, 30, 0, 0, time.Local).UnixMilli(),
		monday.trigger.Timestamp)
	assert.Equal(t,
		time.Date(2022, time.February, 22, 14, 30, 0, 0, time.Local).UnixMilli(),
		tuesday.trigger.Timestamp)

	for _, c := range fake.created {
		assert.Equal(t, notifier.TriggerTypeTimestamp, c.trigger.Type)
		assert.Equal(t, notifier.RepeatWeekly, c.trigger.RepeatFrequency)
		assert.True(t, c.trigger.AllowWhileIdle)

		assert.Equal(t, notificationTitle(runtime.GOOS), c.notification.Title)
		assert.Equal(t, "Continue learning on LearnTime now", c.notification.Body)
		assert.Equal(t, LearningReminderChannel.ID, c.notification.ChannelID)
		assert.Equal(t, NotificationNameLearningReminder, c.notification.Name())
	}

	// The channel is (re-)registered before every trigger.
	require.Len(t, fake.channels, 2)
	assert.Equal(t, LearningReminderChannel, fake.channels[0])
}

func TestScheduleNotificationsNoOp(t *testing.T) {
	clk := fakeClockAt(time.Date(2022, time.February, 18, 10, 0, 0, 0, time.Local))

	t.Run("reminders off", func(t *testing.T) {
		fake := &fakeNotifier{}
		data := model.RemindersData{Time: timeOfDay(14, 30, 0), Monday: true}

		require.NoError(t, NewScheduler(fake, clk).ScheduleNotifications(context.Background(), data))
		assert.Empty(t, fake.created)
	})

	t.Run("no time set", func(t *testing.T) {
		fake := &fakeNotifier{}
		data := model.RemindersData{UseReminders: true, Monday: true}

		require.NoError(t, NewScheduler(fake, clk).ScheduleNotifications(context.Background(), data))
		assert.Empty(t, fake.created)
	})

	t.Run("no days selected", func(t *testing.T) {
		fake := &fakeNotifier{}
		data := model.RemindersData{UseReminders: true, Time: timeOfDay(14, 30, 0)}

		require.NoError(t, NewScheduler(fake, clk).ScheduleNotifications(context.Background(), data))
		assert.Empty(t, fake.created)
	})
}

func TestScheduleNotificationsFirstErrorAborts(t *testing.T) {
	clk := fakeClockAt(time.Date(2022, time.February, 18, 10, 0, 0, 0, time.Local))
	fake := &fakeNotifier{createErr: assert.AnError}
	sched := NewScheduler(fake, clk)

	data := model.RemindersData{
		UseReminders: true,
		Time:         timeOfDay(14, 30, 0),
		Monday:       true,
		Tuesday:      true,
	}

	err := sched.ScheduleNotifications(context.Background(), data)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Len(t, fake.created, 1, "the failure stops the remaining days")
}

func TestCancelPendingNotifications(t *testing.T) {
	clk := fakeClockAt(time.Date(2022, time.February, 18, 10, 0, 0, 0, time.Local))
	fake := &fakeNotifier{pending: []string{"a", "b", "c"}}
	sched := NewScheduler(fake, clk)

	require.NoError(t, sched.CancelPendingNotifications(context.Background()))

	// Everything pending goes in one batch.
	require.Len(t, fake.cancelled, 1)
	assert.Equal(t, []string{"a", "b", "c"}, fake.cancelled[0])
}

func TestNotificationTitle(t *testing.T) {
	// Darwin banners do not show the app name, so the brand is in the title.
	assert.Equal(t, "LearnTime - Learning time", notificationTitle("darwin"))
	assert.Equal(t, "Learning time", notificationTitle("linux"))
	assert.Equal(t, "Learning time", notificationTitle("windows"))
}
