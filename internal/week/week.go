// Package week implements ISO-8601 calendar week arithmetic for the
// weekly board: week identifiers ("2026-W10"), Monday-based day
// numbering, and week spans. Everything here is pure; callers pass the
// reference time in.
package week

import (
	"fmt"
	"time"
)

// DayOfWeek numbers weekdays 1..7 with Monday = 1 and Sunday = 7,
// following the ISO convention rather than Go's Sunday = 0.
type DayOfWeek int

const (
	Monday DayOfWeek = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// Valid reports whether d is inside the 1..7 range.
func (d DayOfWeek) Valid() bool {
	return d >= Monday && d <= Sunday
}

// IdentifierOf returns the ISO-8601 week identifier for t, formatted
// as "YYYY-Wnn" with a zero-padded week number so that identifiers
// sort chronologically as plain strings. The ISO week-year may differ
// from the calendar year around January 1st (e.g. 2025-12-29 falls in
// "2026-W01" and 2021-01-01 falls in "2020-W53").
func IdentifierOf(t time.Time) string {
	year, wk := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, wk)
}

// DayOf maps t to its ISO day number, remapping Go's Sunday = 0 to 7.
func DayOf(t time.Time) DayOfWeek {
	if wd := t.Weekday(); wd != time.Sunday {
		return DayOfWeek(wd)
	}
	return Sunday
}

// MondayOf returns midnight (in t's location) of the Monday starting
// the ISO week that contains t.
func MondayOf(t time.Time) time.Time {
	m := t.AddDate(0, 0, -int(DayOf(t)-Monday))
	return time.Date(m.Year(), m.Month(), m.Day(), 0, 0, 0, 0, m.Location())
}

// PreviousIdentifier returns the identifier of the week immediately
// before the one containing t. It steps back through real dates (seven
// days before that week's Monday) so year and week-53 boundaries
// resolve through the calendar instead of arithmetic on the string.
func PreviousIdentifier(t time.Time) string {
	return IdentifierOf(MondayOf(t).AddDate(0, 0, -7))
}

// RangeLabel renders the Monday..Sunday span of t's week for display,
// e.g. "Dec 29, 2025 - Jan 4, 2026" or "Mar 2 - Mar 8, 2026".
func RangeLabel(t time.Time) string {
	mon := MondayOf(t)
	sun := mon.AddDate(0, 0, 6)
	if mon.Year() == sun.Year() {
		return fmt.Sprintf("%s - %s", mon.Format("Jan 2"), sun.Format("Jan 2, 2006"))
	}
	return fmt.Sprintf("%s - %s", mon.Format("Jan 2, 2006"), sun.Format("Jan 2, 2006"))
}
