package schedule

import (
	"context"
	"errors"

	"github.com/jmhodges/clock"

	"github.com/learntime/learntime/internal/analytics"
	"github.com/learntime/learntime/internal/model"
	"github.com/learntime/learntime/internal/notifier"
	"github.com/learntime/learntime/internal/storage"
)

// ErrNoDaysSelected is returned when a save enables reminders without
// selecting any day; such settings would schedule nothing.
var ErrNoDaysSelected = errors.New("reminders enabled but no days selected")

// SaveOutcome describes how a settings save concluded, so the caller can
// pick the right confirmation for the user.
type SaveOutcome int

// Save outcomes.
const (
	// OutcomePermissionRequired means the user has not granted notification
	// permission; nothing was saved or scheduled.
	OutcomePermissionRequired SaveOutcome = iota
	// OutcomeEnabled means reminders were switched on for the first time.
	OutcomeEnabled
	// OutcomeUpdated means reminders were already on and were rescheduled.
	OutcomeUpdated
	// OutcomeCancelled means reminders were switched off.
	OutcomeCancelled
	// OutcomeUnchanged means reminders were off and stay off.
	OutcomeUnchanged
)

// Service ties the reminder core together: preferences, permission,
// scheduling and analytics.
type Service struct {
	settings *storage.SettingsRepo
	prompts  *storage.PromptRepo
	sched    *Scheduler
	notifier notifier.TriggerScheduler
	track    analytics.TrackFunc
	clk      clock.Clock
}

// NewService creates the reminder service.
func NewService(
	settings *storage.SettingsRepo,
	prompts *storage.PromptRepo,
	n notifier.TriggerScheduler,
	track analytics.TrackFunc,
	clk clock.Clock,
) *Service {
	return &Service{
		settings: settings,
		prompts:  prompts,
		sched:    NewScheduler(n, clk),
		notifier: n,
		track:    track,
		clk:      clk,
	}
}

// Scheduler exposes the underlying notification scheduler.
func (s *Service) Scheduler() *Scheduler {
	return s.sched
}

// Settings returns the stored reminder settings (defaults when nothing was
// saved yet).
func (s *Service) Settings() (model.RemindersData, error) {
	return s.settings.Get()
}

// SaveSettings runs the full save flow in strict order: request permission,
// persist the preferences, cancel every pending notification, then register
// the new schedule when reminders are on. The sequence is not atomic; a
// crash part-way is recovered by the next save re-running the whole flow.
func (s *Service) SaveSettings(ctx context.Context, data model.RemindersData) (SaveOutcome, error) {
	if !data.Valid() {
		return OutcomeUnchanged, ErrNoDaysSelected
	}

	current, err := s.settings.Get()
	if err != nil {
		return OutcomeUnchanged, err
	}
	alreadyEnabled := current.UseReminders

	state, err := RequestNotificationPermission(ctx, s.notifier)
	if err != nil {
		return OutcomeUnchanged, err
	}
	if !state.Granted() {
		if err := s.track(ctx, "Deny notification permission", analytics.AreaReminders, nil); err != nil {
			return OutcomePermissionRequired, err
		}
		return OutcomePermissionRequired, nil
	}

	if err := s.settings.Save(data); err != nil {
		return OutcomeUnchanged, err
	}
	if err := s.sched.CancelPendingNotifications(ctx); err != nil {
		return OutcomeUnchanged, err
	}

	days := make([]string, 0, 7)
	for _, d := range data.SelectedDays() {
		days = append(days, d.String())
	}
	err = s.track(ctx, "Save reminders settings", analytics.AreaReminders, analytics.Properties{
		"enabled":       data.UseReminders,
		"days":          days,
		"reminder_time": Format24HourTime(data.ReminderTime()),
	})
	if err != nil {
		return OutcomeUnchanged, err
	}

	if data.UseReminders {
		if err := s.sched.ScheduleNotifications(ctx, data); err != nil {
			return OutcomeUnchanged, err
		}
		if alreadyEnabled {
			return OutcomeUpdated, nil
		}
		return OutcomeEnabled, nil
	}

	if alreadyEnabled {
		return OutcomeCancelled, nil
	}
	return OutcomeUnchanged, nil
}
