package schedule

import "strings"

// Day is a weekday name. Unknown names are kept verbatim.
type Day string

const (
	Sunday    Day = "Sunday"
	Monday    Day = "Monday"
	Tuesday   Day = "Tuesday"
	Wednesday Day = "Wednesday"
	Thursday  Day = "Thursday"
	Friday    Day = "Friday"
	Saturday  Day = "Saturday"
)

// WeekOrder is the primary sort key for schedule entries.
var WeekOrder = []Day{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

// ParseDay matches s case-insensitively against WeekOrder. Anything else is
// returned trimmed but otherwise unchanged.
func ParseDay(s string) Day {
	s = strings.TrimSpace(s)
	for _, d := range WeekOrder {
		if strings.EqualFold(s, string(d)) {
			return d
		}
	}
	return Day(s)
}

// Position returns the index of d in WeekOrder, or -1 for an unknown day.
// Unknown days therefore sort before Sunday.
func (d Day) Position() int {
	for i, w := range WeekOrder {
		if w == d {
			return i
		}
	}
	return -1
}

// Known reports whether d is one of the seven weekdays.
func (d Day) Known() bool {
	return d.Position() >= 0
}
