/*
Package leave computes annual-leave balances from caller-supplied state.

PURPOSE:
  The balance calculator of the engine. Two independently invoked modes:

  Lifetime mode:
    Everything accrued since hire versus everything used to date.
    "You have earned 26 days and used 5 - 21 remain."

  Per-year mode:
    This calendar year's grant plus carried-over days minus this year's
    usage. "2024 grants 15 days, 5 carried over, 5 used - 15 remain."

KEY CONCEPTS:
  - Hours are the internal unit: every duration is an integer hour count.
    Days are a derived display quantity (hours / work-hours-per-day) and
    may be fractional, so they are decimal.Decimal, never float.
  - Usage records take precedence over the scalar used-hours total when
    both are supplied.
  - Validation is eager and complete: every problem is collected before
    computation is refused, so a caller can show all of them at once.
  - Over-use is data, not an error: remaining hours may go negative.

STATELESSNESS:
  Nothing here owns or caches state. Each call receives a complete
  snapshot (hire date, records, carry-over) and returns a complete result.

SEE ALSO:
  - validate.go: input validation for both modes
  - calculate.go: lifetime mode
  - year.go: per-year mode
  - format.go: pretty printing and hour presets
*/
package leave

import (
	"github.com/shopspring/decimal"

	"github.com/warp/leave-engine/accrual"
	"github.com/warp/leave-engine/calendar"
)

// DefaultWorkHoursPerDay is the fixed length of one workday.
const DefaultWorkHoursPerDay = 8

// =============================================================================
// USAGE RECORD - one instance of annual leave taken
// =============================================================================

// UsageRecord is a single hour-denominated leave entry. Records are owned
// by the caller's list; the engine only reads them.
type UsageRecord struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	AmountHours int    `json:"amount_hours"`
	Memo        string `json:"memo,omitempty"`
	Tag         string `json:"tag,omitempty"`
}

// =============================================================================
// LIFETIME MODE - accrued since hire vs. used to date
// =============================================================================

// Input is the complete snapshot for a lifetime balance calculation.
type Input struct {
	HireDate        string         `json:"hire_date"`
	AsOfDate        string         `json:"as_of_date"`
	WorkHoursPerDay int            `json:"work_hours_per_day"`
	Policy          accrual.Config `json:"policy"`

	// UsedHoursTotal is the scalar fallback; Records take precedence
	// whenever the list is non-empty.
	UsedHoursTotal int           `json:"used_hours_total"`
	Records        []UsageRecord `json:"records,omitempty"`
}

// Result is the lifetime balance. RemainingHours may be negative.
type Result struct {
	ServicePeriod calendar.ServicePeriod `json:"service_period"`
	AccruedDays   int                    `json:"accrued_days"`

	AccruedHoursTotal int `json:"accrued_hours_total"`
	UsedHoursTotal    int `json:"used_hours_total"`
	RemainingHours    int `json:"remaining_hours"`

	UsedDays      decimal.Decimal `json:"used_days"`
	RemainingDays decimal.Decimal `json:"remaining_days"`

	ServicePeriodPretty string `json:"service_period_pretty"`
	AccruedPretty       string `json:"accrued_pretty"`
	UsedPretty          string `json:"used_pretty"`
	RemainingPretty     string `json:"remaining_pretty"`

	Warnings []string `json:"warnings,omitempty"`
}

// =============================================================================
// PER-YEAR MODE - this year's grant + carry-over - this year's usage
// =============================================================================

// YearInput is the complete snapshot for one calendar year.
type YearInput struct {
	Year            int           `json:"year"`
	HireDate        string        `json:"hire_date"`
	CarryDays       int           `json:"carry_days"`
	WorkHoursPerDay int           `json:"work_hours_per_day"`
	Records         []UsageRecord `json:"records,omitempty"`
}

// YearResult is the per-year remainder. RemainingHours may be negative.
type YearResult struct {
	Year        int `json:"year"`
	TenureYears int `json:"tenure_years"`

	YearlyGrantDays  int `json:"yearly_grant_days"`
	YearlyGrantHours int `json:"yearly_grant_hours"`
	CarryDays        int `json:"carry_days"`
	CarryHours       int `json:"carry_hours"`
	AvailableHours   int `json:"available_hours"`
	UsedHours        int `json:"used_hours"`
	RemainingHours   int `json:"remaining_hours"`

	UsedDays      decimal.Decimal `json:"used_days"`
	RemainingDays decimal.Decimal `json:"remaining_days"`

	AvailablePretty string `json:"available_pretty"`
	UsedPretty      string `json:"used_pretty"`
	RemainingPretty string `json:"remaining_pretty"`
}

// DaysFromHours converts an hour count to a day value. The result may be
// fractional; it is for display, never fed back into hour arithmetic.
func DaysFromHours(hours, workHoursPerDay int) decimal.Decimal {
	if workHoursPerDay <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(hours)).Div(decimal.NewFromInt(int64(workHoursPerDay)))
}
