package schedule

import "time"

// Format24HourTime renders a time of day as HH:MM:SS, the format the
// save-flow analytics event reports reminder times in.
func Format24HourTime(t time.Time) string {
	return t.Format("15:04:05")
}
