/*
Package calendar provides the date primitives for the leave engine.

PURPOSE:
  Everything in this system is keyed by calendar dates: hire dates, usage
  dates, holidays, leave spans. This package owns the single Date value
  type and the arithmetic on it so the rest of the engine never touches
  time.Time directly.

KEY CONCEPTS:
  - Date: a date-only value pinned to UTC midnight. Comparisons and
    arithmetic are insensitive to the host timezone.
  - ServicePeriod: tenure between two dates in completed years/months.
  - HolidaySet: a read-only snapshot of holiday dates.
  - Working days: calendar spans reduced by weekends and holidays.

DESIGN PRINCIPLES:
  1. Strict wire format: dates cross the API boundary as "YYYY-MM-DD"
     and nothing else. IsValidDateString is the gatekeeper.
  2. Calendar arithmetic, not duration math: days are added with
     AddDate so month/DST boundaries behave.
  3. Pure values: no Date is ever mutated; every operation returns a
     new value.

SEE ALSO:
  - tenure.go: service period calculation
  - workdays.go: working-day expansion
  - holiday.go: holiday set snapshot
*/
package calendar

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the only accepted wire format for dates.
const DateLayout = "2006-01-02"

var dateStringRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// =============================================================================
// DATE - date-only value at UTC midnight
// =============================================================================

// Date is a calendar date with no time-of-day and no timezone offset.
// The zero value is not a valid date; use ParseDate or NewDate.
type Date struct {
	t time.Time
}

// NewDate builds a Date from components. Out-of-range components are
// normalized by time.Date (e.g. Feb 30 becomes Mar 1 or 2); use ParseDate
// when the input must denote a real calendar day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a strict YYYY-MM-DD string. The value is interpreted at
// UTC midnight. An error is returned for malformed strings and for
// syntactically valid strings that do not denote a real calendar day
// (e.g. "2024-02-30").
func ParseDate(s string) (Date, error) {
	if !IsValidDateString(s) {
		return Date{}, &ParseError{Input: s}
	}
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return Date{}, &ParseError{Input: s}
	}
	return Date{t: t}, nil
}

// MustParseDate is ParseDate for literals in tests and wiring code.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// ParseError reports a string that is not a valid calendar date.
type ParseError struct {
	Input string
}

func (e *ParseError) Error() string {
	return "invalid date: " + strconv.Quote(e.Input) + " (want YYYY-MM-DD)"
}

// IsValidDateString reports whether s is a strict YYYY-MM-DD string that
// denotes a real calendar day. The check is a regex match plus a
// parse/format round-trip, so "2024-02-30" fails even though it matches
// the pattern (time.Parse rejects out-of-range days).
func IsValidDateString(s string) bool {
	if !dateStringRe.MatchString(s) {
		return false
	}
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return false
	}
	return t.Format(DateLayout) == s
}

// String formats the date as zero-padded YYYY-MM-DD.
func (d Date) String() string { return d.t.Format(DateLayout) }

// Comparison
func (d Date) Before(other Date) bool { return d.t.Before(other.t) }
func (d Date) After(other Date) bool  { return d.t.After(other.t) }
func (d Date) Equal(other Date) bool  { return d.t.Equal(other.t) }
func (d Date) IsZero() bool           { return d.t.IsZero() }

// Arithmetic
func (d Date) AddDays(n int) Date   { return Date{t: d.t.AddDate(0, 0, n)} }
func (d Date) AddMonths(n int) Date { return Date{t: d.t.AddDate(0, n, 0)} }
func (d Date) AddYears(n int) Date  { return Date{t: d.t.AddDate(n, 0, 0)} }

// Properties
func (d Date) Year() int             { return d.t.Year() }
func (d Date) Month() time.Month     { return d.t.Month() }
func (d Date) Day() int              { return d.t.Day() }
func (d Date) Weekday() time.Weekday { return d.t.Weekday() }

func (d Date) IsWeekend() bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// EndOfYear returns December 31 of the given year.
func EndOfYear(year int) Date { return NewDate(year, time.December, 31) }

// =============================================================================
// LOOSE INPUT NORMALIZATION
// =============================================================================

var inputSeparatorRe = regexp.MustCompile(`[-/.]|\s+`)

// NormalizeInput converts loosely formatted user input into a strict
// YYYY-MM-DD string. Accepted separators are "-", "/", "." and runs of
// spaces. The input must split into exactly three parts: a 4-digit year,
// a month 1-12 and a day 1-31, and the zero-padded result must still be a
// real calendar day (so "2024-02-30" is rejected).
//
// Returns ok=false on any failure; it never panics.
func NormalizeInput(raw string) (string, bool) {
	parts := inputSeparatorRe.Split(strings.TrimSpace(raw), -1)
	if len(parts) != 3 {
		return "", false
	}

	if len(parts[0]) != 4 {
		return "", false
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return "", false
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return "", false
	}
	day, err := strconv.Atoi(parts[2])
	if err != nil || day < 1 || day > 31 {
		return "", false
	}

	s := fmtDate(year, month, day)
	if !IsValidDateString(s) {
		return "", false
	}
	return s, true
}

func fmtDate(year, month, day int) string {
	var b strings.Builder
	pad := func(v, width int) {
		s := strconv.Itoa(v)
		for i := len(s); i < width; i++ {
			b.WriteByte('0')
		}
		b.WriteString(s)
	}
	pad(year, 4)
	b.WriteByte('-')
	pad(month, 2)
	b.WriteByte('-')
	pad(day, 2)
	return b.String()
}
