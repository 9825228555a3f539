/*
Package accrual maps employment tenure to annual-leave entitlements.

PURPOSE:
  Answers one question: given a hire date and an as-of date, how many leave
  days has this employee accrued in total? The answer depends on which
  accrual policy applies, so the package pairs a tier-based default policy
  with a registry of named policies.

THE DEFAULT POLICY (statutory tiers):
  Before the first anniversary, one day accrues per completed month of
  service, capped at 11. From the first anniversary on, each completed
  service year y grants YearlyDays(y) = 15 days, +1 for every further two
  completed years, capped at 25:

    y:     1   2   3   4   5   6   ...
    days: 15  15  16  16  17  17  ... -> 25

  The lifetime total is the flat 11-day first-year accrual plus the sum of
  the yearly grants - the monthly accrual is baked permanently into the
  cumulative total once year one completes.

EXTENSION:
  Additional policies are registered by name on the Registry at startup
  (directly or via the factory package from JSON configs). Unknown policy
  types fall back to the default with a logged warning, never an error.

SEE ALSO:
  - registry.go: named policy dispatch
  - factory/policy.go: JSON-defined tier tables
*/
package accrual

import "github.com/warp/leave-engine/calendar"

// DefaultPolicy is the built-in statutory policy type.
const DefaultPolicy = "DEFAULT"

const (
	// maxMonthlyDays caps the pre-anniversary monthly accrual.
	maxMonthlyDays = 11
	// baseYearlyDays is the grant for the first completed service year.
	baseYearlyDays = 15
	// maxYearlyDays caps the per-year grant regardless of tenure.
	maxYearlyDays = 25
)

// Config identifies which accrual policy applies.
type Config struct {
	Type string `json:"type"`
}

// Calculator computes total accrued days for a hire/as-of date pair.
// Implementations must be pure.
type Calculator func(hire, asOf calendar.Date) int

// YearlyDays returns the annual grant for completed service year y:
// 15 days for years 1-2, one more day for every two completed years
// thereafter, capped at 25. Zero for y < 1.
func YearlyDays(y int) int {
	if y < 1 {
		return 0
	}
	days := baseYearlyDays + (y-1)/2
	if days > maxYearlyDays {
		return maxYearlyDays
	}
	return days
}

// DefaultAccruedDays is the Calculator for the DEFAULT policy.
//
//   - asOf before hire: 0 (no negative accrual)
//   - under one year of tenure: one day per completed month, capped at 11
//   - one year or more: 11 + the sum of YearlyDays over completed years
func DefaultAccruedDays(hire, asOf calendar.Date) int {
	if asOf.Before(hire) {
		return 0
	}

	period := calendar.ServicePeriodBetween(hire, asOf)
	if period.Years < 1 {
		if period.TotalMonths > maxMonthlyDays {
			return maxMonthlyDays
		}
		return period.TotalMonths
	}

	total := maxMonthlyDays
	for y := 1; y <= period.Years; y++ {
		total += YearlyDays(y)
	}
	return total
}
