package model

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDaysOfWeekStartingFrom(t *testing.T) {
	for start := 0; start < 7; start++ {
		t.Run(fmt.Sprintf("start_%d", start), func(t *testing.T) {
			days := DaysOfWeekStartingFrom(start)
			require.Len(t, days, 7)

			// First element is the start day, the rest wrap in canonical order.
			assert.Equal(t, DaysOfWeek[start], days[0])
			for i, day := range days {
				assert.Equal(t, DaysOfWeek[(start+i)%7], day)
			}

			// Each day appears exactly once.
			seen := make(map[DayOfWeek]int)
			for _, day := range days {
				seen[day]++
			}
			for _, day := range DaysOfWeek {
				assert.Equal(t, 1, seen[day], "day %s", day)
			}
		})
	}
}

func TestDaysOfWeekStartingFromWraps(t *testing.T) {
	assert.Equal(t, DaysOfWeekStartingFrom(0), DaysOfWeekStartingFrom(7))
	assert.Equal(t, DaysOfWeekStartingFrom(3), DaysOfWeekStartingFrom(10))
	assert.Equal(t, []DayOfWeek{Wednesday, Thursday, Friday, Saturday, Sunday, Monday, Tuesday},
		DaysOfWeekStartingFrom(3))
}

func TestDaysOfWeekStartingMonday(t *testing.T) {
	days := DaysOfWeekStartingMonday()
	require.Len(t, days, 7)
	assert.Equal(t, Monday, days[0])
	assert.Equal(t, Sunday, days[6])
}

func TestDayOfWeekString(t *testing.T) {
	assert.Equal(t, "sunday", Sunday.String())
	assert.Equal(t, "wednesday", Wednesday.String())
	assert.Equal(t, "saturday", Saturday.String())
	assert.Equal(t, "unknown", DayOfWeek(7).String())
	assert.Equal(t, "unknown", DayOfWeek(-1).String())
}

func TestParseDayOfWeek(t *testing.T) {
	tests := []struct {
		input string
		want  DayOfWeek
		ok    bool
	}{
		{"monday", Monday, true},
		{"mon", Monday, true},
		{"tue", Tuesday, true},
		{"tues", Tuesday, true},
		{"sunday", Sunday, true},
		{"sun", Sunday, true},
		{"sat", Saturday, true},
		{"thu", Thursday, true},
		{"thurs", Thursday, true},
		{"mo", 0, false},
		{"", 0, false},
		{"someday", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseDayOfWeek(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
