// Package duetime turns a user-supplied reminder specification into a
// concrete due instant. Two mutually exclusive modes exist: a relative
// calendar interval ("in 3 weeks") and an absolute date. Interval arithmetic
// is calendar arithmetic, not a fixed number of seconds: adding a month to
// Jan 31 lands on the last valid day of February.
package duetime

import (
	"strconv"
	"strings"
	"time"

	"github.com/the-moog/trac-ticketreminder/internal/utils"
)

// Type discriminates the two input modes.
type Type string

const (
	TypeInterval Type = "interval"
	TypeDate     Type = "date"
)

// Unit is a calendar interval unit.
type Unit string

const (
	UnitDay   Unit = "day"
	UnitWeek  Unit = "week"
	UnitMonth Unit = "month"
	UnitYear  Unit = "year"
)

// Spec carries the raw user input for a due-time computation. Interval and
// Date are kept as entered so a failed validation can re-present them; on a
// successful date-mode validation Date is rewritten to the canonical form.
type Spec struct {
	Type     Type
	Interval string
	Unit     Unit
	Date     string
}

// ValidationError is a user-correctable input failure. Reason is the single
// warning shown to the user; Field names the offending input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func invalid(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// Resolve validates the spec against the given current moment and returns the
// due instant to store. Validation short-circuits at the first violated rule:
// type presence, then field format, then field range. The spec may be
// mutated: a valid date input is normalized to its canonical form.
func (s *Spec) Resolve(now time.Time) (time.Time, error) {
	switch s.Type {
	case TypeInterval:
		n, err := strconv.Atoi(strings.TrimSpace(s.Interval))
		if err != nil {
			return time.Time{}, invalid("interval", "Invalid or missing interval value.")
		}
		if n <= 0 {
			return time.Time{}, invalid("interval", "Nonpositive interval value.")
		}

		switch s.Unit {
		case UnitDay, UnitWeek, UnitMonth, UnitYear:
		default:
			return time.Time{}, invalid("unit", "Please select interval unit.")
		}

		return AddInterval(utils.StartOfDay(now), n, s.Unit), nil

	case TypeDate:
		date, err := utils.ParseDate(strings.TrimSpace(s.Date), now.Location())
		if err != nil {
			return time.Time{}, invalid("date", "Invalid or missing date value.")
		}
		// Canonical redisplay form, kept even when the range check fails so
		// the user corrects a normalized value
		s.Date = utils.FormatDate(date)
		if !date.After(now) {
			return time.Time{}, invalid("date", "Date value not in the future.")
		}
		return date, nil

	default:
		return time.Time{}, invalid("type", "Please select type.")
	}
}

// AddInterval advances t by n calendar units. Month and year addition clamp
// the day of month to the last valid day of the target month, so Jan 31 plus
// one month is Feb 28 (or Feb 29 in a leap year), never Mar 2.
func AddInterval(t time.Time, n int, unit Unit) time.Time {
	switch unit {
	case UnitDay:
		return t.AddDate(0, 0, n)
	case UnitWeek:
		return t.AddDate(0, 0, 7*n)
	case UnitMonth:
		return addMonths(t, n)
	case UnitYear:
		return addMonths(t, 12*n)
	default:
		return t
	}
}

func addMonths(t time.Time, n int) time.Time {
	year, month, day := t.Date()
	// Normalize the target month with the day pinned to 1, then clamp
	anchor := time.Date(year, month, 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	anchor = anchor.AddDate(0, n, 0)
	if max := utils.DaysIn(anchor.Year(), anchor.Month()); day > max {
		day = max
	}
	return time.Date(anchor.Year(), anchor.Month(), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}
