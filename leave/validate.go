package leave

import (
	"fmt"
	"strings"

	"github.com/warp/leave-engine/calendar"
)

// =============================================================================
// VALIDATION RESULT - full list of problems, not the first one
// =============================================================================

// Validation collects every problem found in an input. Errors block
// computation; warnings do not (the computation proceeds and reports them).
type Validation struct {
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

func (v *Validation) errorf(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}

func (v *Validation) warnf(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}

// OK reports whether computation may proceed.
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// Err returns nil when OK, otherwise a ValidationError carrying every
// message so the caller can display all of them at once.
func (v Validation) Err() error {
	if v.OK() {
		return nil
	}
	return &ValidationError{Messages: v.Errors}
}

// ValidationError is the structured failure returned by the compute entry
// points. Callers decide how to render the message list.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, "; ")
}

// =============================================================================
// LIFETIME MODE VALIDATION
// =============================================================================

// ValidateInput checks a lifetime-mode snapshot. All rules are evaluated;
// nothing short-circuits.
//
// A usage record dated after the as-of date is a WARNING, not an error:
// Calculate proceeds and excludes it from the total.
func ValidateInput(in Input) Validation {
	var v Validation

	hireOK := calendar.IsValidDateString(in.HireDate)
	if !hireOK {
		v.errorf("hire_date %q is not a valid YYYY-MM-DD date", in.HireDate)
	}
	asOfOK := calendar.IsValidDateString(in.AsOfDate)
	if !asOfOK {
		v.errorf("as_of_date %q is not a valid YYYY-MM-DD date", in.AsOfDate)
	}

	var hire, asOf calendar.Date
	if hireOK {
		hire, _ = calendar.ParseDate(in.HireDate)
	}
	if asOfOK {
		asOf, _ = calendar.ParseDate(in.AsOfDate)
	}
	if hireOK && asOfOK && asOf.Before(hire) {
		v.errorf("as_of_date %s precedes hire_date %s", in.AsOfDate, in.HireDate)
	}

	if in.WorkHoursPerDay <= 0 || in.WorkHoursPerDay > 24 {
		v.errorf("work_hours_per_day must be in (0, 24], got %d", in.WorkHoursPerDay)
	}

	if len(in.Records) == 0 && in.UsedHoursTotal < 0 {
		v.errorf("used_hours_total must be non-negative, got %d", in.UsedHoursTotal)
	}

	for i, rec := range in.Records {
		recOK := calendar.IsValidDateString(rec.Date)
		if !recOK {
			v.errorf("record[%d]: date %q is not a valid YYYY-MM-DD date", i, rec.Date)
		}
		if rec.AmountHours <= 0 {
			v.errorf("record[%d]: amount_hours must be a positive integer, got %d", i, rec.AmountHours)
		}
		if recOK && asOfOK {
			if d, _ := calendar.ParseDate(rec.Date); d.After(asOf) {
				v.warnf("record[%d]: dated %s, after as_of_date %s - excluded from total", i, rec.Date, in.AsOfDate)
			}
		}
	}

	return v
}

// =============================================================================
// PER-YEAR MODE VALIDATION
// =============================================================================

// Per-year mode only accepts plausible reference years.
const (
	MinYear = 1900
	MaxYear = 2100
)

// ValidateYearInput checks a per-year snapshot. Unlike lifetime mode, a
// record dated outside the target year is an ERROR: per-year usage is
// defined only within the year's boundaries.
func ValidateYearInput(in YearInput) Validation {
	var v Validation

	if in.Year < MinYear || in.Year > MaxYear {
		v.errorf("year must be in [%d, %d], got %d", MinYear, MaxYear, in.Year)
	}

	hireOK := calendar.IsValidDateString(in.HireDate)
	if !hireOK {
		v.errorf("hire_date %q is not a valid YYYY-MM-DD date", in.HireDate)
	} else if hire, _ := calendar.ParseDate(in.HireDate); hire.Year() > in.Year {
		v.errorf("hire year %d is after target year %d", hire.Year(), in.Year)
	}

	if in.CarryDays < 0 {
		v.errorf("carry_days must be non-negative, got %d", in.CarryDays)
	}

	if in.WorkHoursPerDay <= 0 || in.WorkHoursPerDay > 24 {
		v.errorf("work_hours_per_day must be in (0, 24], got %d", in.WorkHoursPerDay)
	}

	for i, rec := range in.Records {
		if !calendar.IsValidDateString(rec.Date) {
			v.errorf("record[%d]: date %q is not a valid YYYY-MM-DD date", i, rec.Date)
		} else if d, _ := calendar.ParseDate(rec.Date); d.Year() != in.Year {
			v.errorf("record[%d]: date %s is outside target year %d", i, rec.Date, in.Year)
		}
		if rec.AmountHours <= 0 {
			v.errorf("record[%d]: amount_hours must be a positive integer, got %d", i, rec.AmountHours)
		}
	}

	return v
}
