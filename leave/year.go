package leave

import (
	"github.com/warp/leave-engine/accrual"
	"github.com/warp/leave-engine/calendar"
)

// =============================================================================
// PER-YEAR REMAINDER
// =============================================================================

// CalculateYearRemain computes one calendar year's remainder:
// this year's grant + carried-over days - this year's usage.
//
// Tenure is measured as of December 31 of the target year. Note the grant
// asymmetry with lifetime mode: once past the first anniversary the grant
// is ONLY the current year's tier (YearlyDays), without the cumulative
// 11-day first-year baseline - per-year mode answers "what does this year
// grant", not "what has ever accrued".
func (c *Calculator) CalculateYearRemain(in YearInput) (YearResult, error) {
	v := ValidateYearInput(in)
	if err := v.Err(); err != nil {
		return YearResult{}, err
	}

	hire, _ := calendar.ParseDate(in.HireDate)
	yearEnd := calendar.EndOfYear(in.Year)
	period := calendar.ServicePeriodBetween(hire, yearEnd)

	grantDays := yearGrantDays(hire, in.Year, period)
	grantHours := grantDays * in.WorkHoursPerDay
	carryHours := in.CarryDays * in.WorkHoursPerDay
	availableHours := grantHours + carryHours
	usedHours := yearUsedHours(in.Records)
	remaining := availableHours - usedHours

	return YearResult{
		Year:        in.Year,
		TenureYears: period.Years,

		YearlyGrantDays:  grantDays,
		YearlyGrantHours: grantHours,
		CarryDays:        in.CarryDays,
		CarryHours:       carryHours,
		AvailableHours:   availableHours,
		UsedHours:        usedHours,
		RemainingHours:   remaining,

		UsedDays:      DaysFromHours(usedHours, in.WorkHoursPerDay),
		RemainingDays: DaysFromHours(remaining, in.WorkHoursPerDay),

		AvailablePretty: FormatHoursAsDaysHours(availableHours, in.WorkHoursPerDay),
		UsedPretty:      FormatHoursAsDaysHours(usedHours, in.WorkHoursPerDay),
		RemainingPretty: FormatHoursAsDaysHours(remaining, in.WorkHoursPerDay),
	}, nil
}

// yearGrantDays resolves the target year's grant.
//
// Under one year of tenure the grant is monthly: for a hire in the target
// year itself, one day per month remaining in the year (hire month
// inclusive, 13-hireMonth), otherwise one day per completed month -
// both capped at 11. From the first anniversary on, the grant is the
// tier for the completed service years.
func yearGrantDays(hire calendar.Date, year int, period calendar.ServicePeriod) int {
	if period.Years >= 1 {
		return accrual.YearlyDays(period.Years)
	}

	months := period.TotalMonths
	if hire.Year() == year {
		months = 13 - int(hire.Month())
	}
	if months > 11 {
		months = 11
	}
	return months
}

// yearUsedHours sums every record unconditionally - validation already
// pinned all dates inside the target year.
func yearUsedHours(records []UsageRecord) int {
	total := 0
	for _, rec := range records {
		total += rec.AmountHours
	}
	return total
}
