package utils

import (
	"time"

	"github.com/the-moog/trac-ticketreminder/internal/constants"
)

// ToUTimestamp converts a time to the microsecond epoch timestamp used by the
// persisted schema.
func ToUTimestamp(t time.Time) int64 {
	return t.UnixMicro()
}

// FromUTimestamp converts a stored microsecond epoch timestamp back into a
// local time.
func FromUTimestamp(ts int64) time.Time {
	return time.UnixMicro(ts).Local()
}

// StartOfDay truncates a time to midnight of the same calendar day, keeping
// the location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ParseDate parses a date string (YYYY-MM-DD) at midnight in the given
// location. A nil location means the system's local timezone.
func ParseDate(dateStr string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.Parse(constants.DateFormat, dateStr)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}

// FormatDate renders a time in the canonical date form (YYYY-MM-DD).
func FormatDate(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// FormatDateTime renders a time with its time-of-day component.
func FormatDateTime(t time.Time) string {
	return t.Format(constants.DateTimeFormat)
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	// Day 0 of the next month normalizes to the last day of this one
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
