package employee

import "time"

// ISOWeekday returns the ISO-8601 weekday number for a date: 1=Monday..7=Sunday.
func ISOWeekday(date time.Time) int {
	wd := int(date.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// IsAvailable reports whether the employee works on the given calendar date.
// It is a pure weekday-membership test against the recurring days-off set.
func (e *Employee) IsAvailable(date time.Time) bool {
	wd := ISOWeekday(date)
	for _, off := range e.DaysOff {
		if off == wd {
			return false
		}
	}
	return true
}
