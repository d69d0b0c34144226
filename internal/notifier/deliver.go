package notifier

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jmhodges/clock"
	"github.com/robfig/cron/v3"

	"github.com/learntime/learntime/internal/config"
	"github.com/learntime/learntime/internal/logging"
	"github.com/learntime/learntime/internal/notify"
)

// Deliverer sweeps the local notifier for due triggers and delivers them
// through the webhook dispatcher. It is the daemon-side half of the local
// notification capability.
type Deliverer struct {
	local      *Local
	dispatcher *notify.Dispatcher
	cron       *cron.Cron
	clk        clock.Clock

	checkSpec      string
	sleepThreshold time.Duration

	mu        sync.Mutex
	lastSweep time.Time
}

// NewDeliverer creates a deliverer for the given local notifier.
func NewDeliverer(local *Local, dispatcher *notify.Dispatcher, cfg config.DaemonConfig, clk clock.Clock) *Deliverer {
	return &Deliverer{
		local:          local,
		dispatcher:     dispatcher,
		cron:           cron.New(cron.WithSeconds()),
		clk:            clk,
		checkSpec:      cfg.CheckSpec,
		sleepThreshold: cfg.SleepThreshold,
	}
}

// Start begins the periodic due-trigger sweep.
func (d *Deliverer) Start(ctx context.Context) error {
	d.mu.Lock()
	d.lastSweep = d.clk.Now()
	d.mu.Unlock()

	_, err := d.cron.AddFunc(d.checkSpec, func() {
		d.sweep(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to add delivery sweep: %w", err)
	}

	d.cron.Start()
	logging.Info("delivery daemon started", "spec", d.checkSpec)
	return nil
}

// Stop stops the sweep and waits for any in-flight run to finish.
func (d *Deliverer) Stop() {
	stopCtx := d.cron.Stop()
	<-stopCtx.Done()
	logging.Info("delivery daemon stopped")
}

// sweep delivers every due trigger. A sweep after a long gap (host was
// suspended) is skipped: firing a backlog of stale reminders on wake-up
// helps nobody.
func (d *Deliverer) sweep(ctx context.Context) {
	now := d.clk.Now()

	d.mu.Lock()
	elapsed := now.Sub(d.lastSweep)
	d.lastSweep = now
	d.mu.Unlock()

	if elapsed > d.sleepThreshold {
		logging.Debug("skipping stale sweep after sleep", "elapsed", elapsed.Round(time.Second))
		return
	}

	triggers, err := d.local.pendingTriggers()
	if err != nil {
		logging.Error("failed to list pending triggers", "err", err)
		return
	}

	for _, record := range triggers {
		if record.Trigger.Timestamp > now.UnixMilli() {
			continue
		}
		d.deliver(ctx, record, now)
	}
}

// deliver fires one due trigger: dispatches it to webhooks, emits a
// Delivered event, and advances or retires the trigger.
func (d *Deliverer) deliver(ctx context.Context, record *triggerRecord, now time.Time) {
	results := d.dispatcher.Send(ctx, notify.Payload{
		Title:     record.Notification.Title,
		Body:      record.Notification.Body,
		Name:      record.Notification.Name(),
		Timestamp: now,
	})
	for _, result := range results {
		if result.Error != nil {
			logging.Warn("webhook delivery failed",
				"webhook", result.WebhookName, "err", result.Error)
		}
	}

	d.local.emit(ctx, Event{Type: EventDelivered, Notification: record.Notification})

	next, recurs := nextFireTime(record.Trigger, now)
	if !recurs {
		if err := d.local.deleteTrigger(record); err != nil {
			logging.Error("failed to retire trigger", "id", record.ID, "err", err)
		}
		return
	}

	record.Trigger.Timestamp = next.UnixMilli()
	if err := d.local.saveTrigger(record); err != nil {
		logging.Error("failed to advance trigger", "id", record.ID, "err", err)
	}
}

// nextFireTime computes the fire instant after a delivery. Calendar-based
// cadences advance by calendar units so the wall-clock time survives DST
// changes. Repeats are anchored to the scheduled timestamp, not the sweep
// time, but never land in the past.
func nextFireTime(t Trigger, now time.Time) (time.Time, bool) {
	if t.RepeatFrequency == RepeatNone {
		return time.Time{}, false
	}

	next := time.UnixMilli(t.Timestamp).In(time.Local)
	for !next.After(now) {
		switch t.RepeatFrequency {
		case RepeatHourly:
			next = next.Add(time.Hour)
		case RepeatDaily:
			next = next.AddDate(0, 0, 1)
		case RepeatWeekly:
			next = next.AddDate(0, 0, 7)
		}
	}
	return next, true
}
