package notifier

import (
	"context"
	"testing"
	"time"

	"github.com/jmhodges/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learntime/learntime/internal/config"
	"github.com/learntime/learntime/internal/notify"
	"github.com/learntime/learntime/internal/storage"
)

func setupDeliverer(t *testing.T, clk clock.Clock) (*Deliverer, *Local) {
	t.Helper()

	db, err := storage.Open(storage.Options{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})

	local := NewLocal(db)
	cfg := config.Default()
	dispatcher := notify.NewDispatcher(storage.NewWebhookRepo(db), notify.NewHTTPClient(cfg.HTTP))

	d := NewDeliverer(local, dispatcher, cfg.Daemon, clk)
	d.lastSweep = clk.Now()
	return d, local
}

func TestSweepDeliversDueTrigger(t *testing.T) {
	now := time.Date(2022, time.February, 21, 14, 30, 30, 0, time.Local)
	clk := clock.NewFake()
	clk.Set(now)

	d, local := setupDeliverer(t, clk)
	ctx := context.Background()

	recorder := &eventRecorder{}
	local.OnBackgroundEvent(recorder.handle)

	due := time.Date(2022, time.February, 21, 14, 30, 0, 0, time.Local)
	n := Notification{Title: "Learning time", Data: map[string]string{"name": "learning_reminder"}}
	require.NoError(t, local.CreateTriggerNotification(ctx, n, Trigger{
		Type:            TriggerTypeTimestamp,
		Timestamp:       due.UnixMilli(),
		RepeatFrequency: RepeatWeekly,
	}))

	d.sweep(ctx)

	delivered := recorder.ofType(EventDelivered)
	require.Len(t, delivered, 1)
	assert.Equal(t, "learning_reminder", delivered[0].Notification.Name())

	// The weekly trigger stays pending, advanced one week at the same
	// wall-clock time.
	triggers, err := local.pendingTriggers()
	require.NoError(t, err)
	require.Len(t, triggers, 1)
	assert.Equal(t, due.AddDate(0, 0, 7).UnixMilli(), triggers[0].Trigger.Timestamp)
}

func TestSweepRetiresOneShotTrigger(t *testing.T) {
	now := time.Date(2022, time.February, 21, 14, 31, 0, 0, time.Local)
	clk := clock.NewFake()
	clk.Set(now)

	d, local := setupDeliverer(t, clk)
	ctx := context.Background()

	require.NoError(t, local.CreateTriggerNotification(ctx,
		Notification{Title: "once"},
		Trigger{Timestamp: now.Add(-time.Minute).UnixMilli(), RepeatFrequency: RepeatNone},
	))

	d.sweep(ctx)

	triggers, err := local.pendingTriggers()
	require.NoError(t, err)
	assert.Empty(t, triggers)
}

func TestSweepIgnoresFutureTrigger(t *testing.T) {
	now := time.Date(2022, time.February, 21, 14, 0, 0, 0, time.Local)
	clk := clock.NewFake()
	clk.Set(now)

	d, local := setupDeliverer(t, clk)
	ctx := context.Background()

	recorder := &eventRecorder{}
	local.OnBackgroundEvent(recorder.handle)

	future := now.Add(30 * time.Minute)
	require.NoError(t, local.CreateTriggerNotification(ctx,
		Notification{Title: "later"},
		Trigger{Timestamp: future.UnixMilli(), RepeatFrequency: RepeatWeekly},
	))

	d.sweep(ctx)

	assert.Empty(t, recorder.ofType(EventDelivered))

	triggers, err := local.pendingTriggers()
	require.NoError(t, err)
	require.Len(t, triggers, 1)
	assert.Equal(t, future.UnixMilli(), triggers[0].Trigger.Timestamp)
}

func TestSweepSkipsAfterSleep(t *testing.T) {
	now := time.Date(2022, time.February, 21, 14, 30, 0, 0, time.Local)
	clk := clock.NewFake()
	clk.Set(now)

	d, local := setupDeliverer(t, clk)
	ctx := context.Background()

	recorder := &eventRecorder{}
	local.OnBackgroundEvent(recorder.handle)

	require.NoError(t, local.CreateTriggerNotification(ctx,
		Notification{Title: "stale"},
		Trigger{Timestamp: now.Add(-time.Minute).UnixMilli(), RepeatFrequency: RepeatWeekly},
	))

	// The host was suspended: last sweep far beyond the sleep threshold.
	d.lastSweep = now.Add(-2 * time.Hour)
	d.sweep(ctx)
	assert.Empty(t, recorder.ofType(EventDelivered), "stale sweep must not fire a backlog")

	// The next sweep is back to normal cadence and delivers.
	clk.Add(time.Minute)
	d.sweep(ctx)
	assert.Len(t, recorder.ofType(EventDelivered), 1)
}

func TestNextFireTime(t *testing.T) {
	scheduled := time.Date(2022, time.February, 21, 14, 30, 0, 0, time.Local)

	t.Run("one-shot does not recur", func(t *testing.T) {
		_, recurs := nextFireTime(Trigger{Timestamp: scheduled.UnixMilli(), RepeatFrequency: RepeatNone}, scheduled)
		assert.False(t, recurs)
	})

	t.Run("weekly advances from the scheduled time", func(t *testing.T) {
		now := scheduled.Add(45 * time.Second)
		next, recurs := nextFireTime(Trigger{Timestamp: scheduled.UnixMilli(), RepeatFrequency: RepeatWeekly}, now)
		require.True(t, recurs)
		assert.Equal(t, scheduled.AddDate(0, 0, 7), next)
	})

	t.Run("weekly catches up past missed weeks", func(t *testing.T) {
		now := scheduled.AddDate(0, 0, 16)
		next, recurs := nextFireTime(Trigger{Timestamp: scheduled.UnixMilli(), RepeatFrequency: RepeatWeekly}, now)
		require.True(t, recurs)
		assert.True(t, next.After(now))
		assert.Equal(t, 14, next.Hour())
		assert.Equal(t, 30, next.Minute())
		assert.Equal(t, scheduled.Weekday(), next.Weekday())
	})

	t.Run("hourly", func(t *testing.T) {
		next, recurs := nextFireTime(Trigger{Timestamp: scheduled.UnixMilli(), RepeatFrequency: RepeatHourly}, scheduled)
		require.True(t, recurs)
		assert.Equal(t, scheduled.Add(time.Hour), next)
	})

	t.Run("daily", func(t *testing.T) {
		next, recurs := nextFireTime(Trigger{Timestamp: scheduled.UnixMilli(), RepeatFrequency: RepeatDaily}, scheduled)
		require.True(t, recurs)
		assert.Equal(t, scheduled.AddDate(0, 0, 1), next)
	})
}
