package model

// DayOfWeek identifies a day of the week. The zero value is Sunday, matching
// time.Weekday, so a DayOfWeek can be compared directly against the clock.
type DayOfWeek int

// Days of the week in canonical order.
const (
	Sunday DayOfWeek = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

// DaysOfWeek is the canonical ordering of the seven days, Sunday first.
var DaysOfWeek = [7]DayOfWeek{
	Sunday,
	Monday,
	Tuesday,
	Wednesday,
	Thursday,
	Friday,
	Saturday,
}

var dayNames = [7]string{
	"sunday",
	"monday",
	"tuesday",
	"wednesday",
	"thursday",
	"friday",
	"saturday",
}

// String returns the lowercase English name of the day.
func (d DayOfWeek) String() string {
	if d < Sunday || d > Saturday {
		return "unknown"
	}
	return dayNames[d]
}

// ParseDayOfWeek resolves a day name (or a prefix of at least three
// characters, e.g. "mon") to a DayOfWeek.
func ParseDayOfWeek(name string) (DayOfWeek, bool) {
	if len(name) < 3 {
		return 0, false
	}
	for _, d := range DaysOfWeek {
		full := dayNames[d]
		if name == full || (len(name) <= len(full) && full[:len(name)] == name) {
			return d, true
		}
	}
	return 0, false
}

// DaysOfWeekStartingFrom returns the seven days as a rotation of the
// canonical order beginning at startIndex and wrapping around.
func DaysOfWeekStartingFrom(startIndex int) []DayOfWeek {
	startIndex = ((startIndex % 7) + 7) % 7
	days := make([]DayOfWeek, 0, 7)
	days = append(days, DaysOfWeek[startIndex:]...)
	days = append(days, DaysOfWeek[:startIndex]...)
	return days
}

// DaysOfWeekStartingMonday returns the seven days in Monday-first order,
// the order the settings form presents them in.
func DaysOfWeekStartingMonday() []DayOfWeek {
	return DaysOfWeekStartingFrom(1)
}
