package leave

import (
	"github.com/warp/leave-engine/accrual"
	"github.com/warp/leave-engine/calendar"
)

// =============================================================================
// CALCULATOR - lifetime balance
// =============================================================================

// Calculator computes balances against an injected policy registry.
// It holds no other state and is safe for concurrent use once policy
// registration has completed.
type Calculator struct {
	Registry *accrual.Registry
}

// NewCalculator wires a calculator to a registry.
func NewCalculator(reg *accrual.Registry) *Calculator {
	return &Calculator{Registry: reg}
}

// Calculate computes the lifetime balance: everything accrued since hire
// versus everything used up to the as-of date.
//
// Validation runs first and the full error list is returned as a
// *ValidationError when anything blocks. Warnings (future-dated records)
// ride along on the result.
func (c *Calculator) Calculate(in Input) (Result, error) {
	v := ValidateInput(in)
	if err := v.Err(); err != nil {
		return Result{}, err
	}

	hire, _ := calendar.ParseDate(in.HireDate)
	asOf, _ := calendar.ParseDate(in.AsOfDate)

	period := calendar.ServicePeriodBetween(hire, asOf)
	accruedDays := c.Registry.AccruedDays(hire, asOf, in.Policy)
	accruedHours := accruedDays * in.WorkHoursPerDay
	usedHours := usedHoursToDate(in, asOf)
	remaining := accruedHours - usedHours

	return Result{
		ServicePeriod:     period,
		AccruedDays:       accruedDays,
		AccruedHoursTotal: accruedHours,
		UsedHoursTotal:    usedHours,
		RemainingHours:    remaining,

		UsedDays:      DaysFromHours(usedHours, in.WorkHoursPerDay),
		RemainingDays: DaysFromHours(remaining, in.WorkHoursPerDay),

		ServicePeriodPretty: FormatServicePeriod(period),
		AccruedPretty:       FormatHoursAsDaysHours(accruedHours, in.WorkHoursPerDay),
		UsedPretty:          FormatHoursAsDaysHours(usedHours, in.WorkHoursPerDay),
		RemainingPretty:     FormatHoursAsDaysHours(remaining, in.WorkHoursPerDay),

		Warnings: v.Warnings,
	}, nil
}

// usedHoursToDate sums the usage list when present, strictly excluding
// records dated after asOf. An empty list falls back to the scalar total;
// the list always takes precedence over the scalar.
func usedHoursToDate(in Input, asOf calendar.Date) int {
	if len(in.Records) == 0 {
		return in.UsedHoursTotal
	}
	total := 0
	for _, rec := range in.Records {
		d, err := calendar.ParseDate(rec.Date)
		if err != nil || d.After(asOf) {
			continue
		}
		total += rec.AmountHours
	}
	return total
}
