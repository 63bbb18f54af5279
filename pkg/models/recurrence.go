package models

import (
	"strings"
	"time"
)

// Recurrence is the cadence of a recurring expense template. The zero value
// means "not recurring".
type Recurrence string

const (
	RecurrenceNone Recurrence = ""
	Daily          Recurrence = "Daily"
	Weekly         Recurrence = "Weekly"
	Monthly        Recurrence = "Monthly"
	Yearly         Recurrence = "Yearly"
)

var recurrences = []Recurrence{Daily, Weekly, Monthly, Yearly}

// Recurrences lists the valid cadences in form order.
func Recurrences() []Recurrence {
	out := make([]Recurrence, len(recurrences))
	copy(out, recurrences)
	return out
}

// ParseRecurrence matches a cadence name case-insensitively. The empty
// string parses to RecurrenceNone; anything else unmatched fails.
func ParseRecurrence(s string) (Recurrence, error) {
	if s == "" {
		return RecurrenceNone, nil
	}
	for _, r := range recurrences {
		if strings.EqualFold(string(r), s) {
			return r, nil
		}
	}
	return RecurrenceNone, ErrInvalidRecurrence
}

// Next computes the occurrence following the given date. Monthly keeps the
// day of month, clamped to the shorter target month (Jan 31 -> Feb 28/29).
// Yearly keeps month and day, with Feb 29 clamped to Feb 28 off leap years.
func (r Recurrence) Next(d Date) Date {
	switch r {
	case Daily:
		return d.AddDays(1)
	case Weekly:
		return d.AddDays(7)
	case Monthly:
		year, month, day := d.Date()
		year, month = nextMonth(year, month)
		return NewDate(year, month, clampDay(year, month, day))
	case Yearly:
		year, month, day := d.Date()
		year++
		return NewDate(year, month, clampDay(year, month, day))
	default:
		return d
	}
}

func nextMonth(year int, month time.Month) (int, time.Month) {
	if month == time.December {
		return year + 1, time.January
	}
	return year, month + 1
}

// clampDay caps a day of month to the last day that exists in the target
// month. Day zero of the following month is that last day.
func clampDay(year int, month time.Month, day int) int {
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if day > last {
		return last
	}
	return day
}
