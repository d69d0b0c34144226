package model

import "time"

// KeyRemindersSettings is the database key the reminder preferences are
// stored under.
const KeyRemindersSettings = "remindersSettings"

// RemindersData holds a user's learning-reminder preferences: the master
// switch, the time of day reminders fire, and one flag per weekday.
//
// Time is a millisecond epoch timestamp whose date component is irrelevant;
// only the hour and minute carry meaning. A zero Time means "not set", and
// scheduling treats it the same as UseReminders being off.
type RemindersData struct {
	UseReminders bool  `json:"useReminders"`
	Time         int64 `json:"time"`

	Sunday    bool `json:"sunday"`
	Monday    bool `json:"monday"`
	Tuesday   bool `json:"tuesday"`
	Wednesday bool `json:"wednesday"`
	Thursday  bool `json:"thursday"`
	Friday    bool `json:"friday"`
	Saturday  bool `json:"saturday"`
}

// DefaultRemindersData returns the settings used when nothing has been
// saved yet: reminders off, no days selected, time preset to noon.
func DefaultRemindersData() RemindersData {
	return RemindersData{
		Time: time.Date(2000, time.January, 1, 12, 0, 0, 0, time.Local).UnixMilli(),
	}
}

// Day reports whether reminders are enabled on the given day.
func (r RemindersData) Day(d DayOfWeek) bool {
	switch d {
	case Sunday:
		return r.Sunday
	case Monday:
		return r.Monday
	case Tuesday:
		return r.Tuesday
	case Wednesday:
		return r.Wednesday
	case Thursday:
		return r.Thursday
	case Friday:
		return r.Friday
	case Saturday:
		return r.Saturday
	}
	return false
}

// SetDay enables or disables reminders on the given day.
func (r *RemindersData) SetDay(d DayOfWeek, enabled bool) {
	switch d {
	case Sunday:
		r.Sunday = enabled
	case Monday:
		r.Monday = enabled
	case Tuesday:
		r.Tuesday = enabled
	case Wednesday:
		r.Wednesday = enabled
	case Thursday:
		r.Thursday = enabled
	case Friday:
		r.Friday = enabled
	case Saturday:
		r.Saturday = enabled
	}
}

// SelectedDays returns the enabled days in Monday-first order, matching how
// the settings form lists them.
func (r RemindersData) SelectedDays() []DayOfWeek {
	var days []DayOfWeek
	for _, d := range DaysOfWeekStartingMonday() {
		if r.Day(d) {
			days = append(days, d)
		}
	}
	return days
}

// ReminderTime returns the time-of-day component as a local time.Time.
func (r RemindersData) ReminderTime() time.Time {
	return time.UnixMilli(r.Time).In(time.Local)
}

// Valid reports whether the settings can be saved. Enabling reminders with
// no days selected would schedule nothing, so the form rejects it.
func (r RemindersData) Valid() bool {
	return !r.UseReminders || len(r.SelectedDays()) > 0
}
