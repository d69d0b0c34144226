// Package schedule implements the learning-reminder core: computing trigger
// timestamps from day-of-week preferences, keeping the pending notification
// set in line with the latest settings, and classifying notification
// permission.
package schedule

import (
	"time"

	"github.com/jmhodges/clock"

	"github.com/learntime/learntime/internal/model"
)

// FindNextDateForDayOfWeek returns midnight (local time) of the next
// occurrence of the given weekday. If today is that weekday, today is
// returned: a same-day reminder may still fire later today.
func FindNextDateForDayOfWeek(clk clock.Clock, day model.DayOfWeek) time.Time {
	now := clk.Now().In(time.Local)
	offset := (7 + int(day) - int(now.Weekday())) % 7
	next := now.AddDate(0, 0, offset)
	return time.Date(next.Year(), next.Month(), next.Day(), 0, 0, 0, 0, next.Location())
}

// CalculateTriggerTimestamp combines a date with the hour and minute of
// timeOfDay (a millisecond epoch timestamp whose date part is ignored) into
// the absolute instant the reminder next fires, in milliseconds since the
// epoch.
//
// A candidate at or before the current moment is pushed exactly one week
// out; the boundary is inclusive, so a reminder for "right now" lands next
// week rather than firing the instant it is created. The week is added as
// seven calendar days so the wall-clock time survives DST transitions.
func CalculateTriggerTimestamp(clk clock.Clock, day time.Time, timeOfDay int64) int64 {
	at := time.UnixMilli(timeOfDay).In(day.Location())
	candidate := time.Date(day.Year(), day.Month(), day.Day(), at.Hour(), at.Minute(), 0, 0, day.Location())

	if !candidate.After(clk.Now()) {
		candidate = candidate.AddDate(0, 0, 7)
	}

	return candidate.UnixMilli()
}
