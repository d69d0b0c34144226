package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRemindersData(t *testing.T) {
	data := DefaultRemindersData()

	assert.False(t, data.UseReminders)
	assert.Empty(t, data.SelectedDays())

	at := data.ReminderTime()
	assert.Equal(t, 12, at.Hour())
	assert.Equal(t, 0, at.Minute())
}

func TestRemindersDataDayRoundTrip(t *testing.T) {
	var data RemindersData

	for _, day := range DaysOfWeek {
		assert.False(t, data.Day(day))
	}

	data.SetDay(Wednesday, true)
	data.SetDay(Sunday, true)

	assert.True(t, data.Day(Wednesday))
	assert.True(t, data.Day(Sunday))
	assert.False(t, data.Day(Monday))

	data.SetDay(Wednesday, false)
	assert.False(t, data.Day(Wednesday))
	assert.True(t, data.Day(Sunday))
}

func TestRemindersDataSelectedDaysOrder(t *testing.T) {
	var data RemindersData
	data.Sunday = true
	data.Monday = true
	data.Friday = true

	// Monday-first presentation order, with Sunday last.
	assert.Equal(t, []DayOfWeek{Monday, Friday, Sunday}, data.SelectedDays())
}

func TestRemindersDataValid(t *testing.T) {
	var data RemindersData
	assert.True(t, data.Valid(), "reminders off is always valid")

	data.UseReminders = true
	assert.False(t, data.Valid(), "enabled with no days selected")

	data.Tuesday = true
	assert.True(t, data.Valid())
}

func TestRemindersDataReminderTime(t *testing.T) {
	data := RemindersData{
		Time: time.Date(2000, time.January, 1, 19, 45, 0, 0, time.Local).UnixMilli(),
	}

	at := data.ReminderTime()
	assert.Equal(t, 19, at.Hour())
	assert.Equal(t, 45, at.Minute())
}

func TestRemindersDataJSONKeys(t *testing.T) {
	data := DefaultRemindersData()
	data.UseReminders = true
	data.Monday = true

	raw, err := json.Marshal(data)
	require.NoError(t, err)

	// The stored field names are part of the persistence format.
	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	for _, key := range []string{
		"useReminders", "time",
		"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday",
	} {
		assert.Contains(t, fields, key)
	}
	assert.Equal(t, true, fields["useReminders"])
	assert.Equal(t, true, fields["monday"])
	assert.Equal(t, false, fields["sunday"])
}
