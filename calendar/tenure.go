package calendar

// =============================================================================
// SERVICE PERIOD - tenure between two dates
// =============================================================================

// ServicePeriod is the elapsed employment duration between a hire date and
// an as-of date, expressed in completed years and months.
//
// Invariant: TotalMonths == Years*12 + Months, and for ordered inputs
// Months is in [0, 11].
type ServicePeriod struct {
	Years       int `json:"years"`
	Months      int `json:"months"`
	TotalMonths int `json:"total_months"`
}

// ServicePeriodBetween computes the year/month difference from hire to asOf
// with standard day-of-month rounding: if the as-of day-of-month is earlier
// than the hire day-of-month, the partial month is not counted.
//
// The result is NOT clamped when asOf precedes hire: the caller gets a
// deterministic negative/rollover value. Validators reject reversed inputs
// before computation; callers that skip validation must check ordering
// themselves.
func ServicePeriodBetween(hire, asOf Date) ServicePeriod {
	total := (asOf.Year()-hire.Year())*12 + int(asOf.Month()) - int(hire.Month())
	if asOf.Day() < hire.Day() {
		total--
	}
	return ServicePeriod{
		Years:       total / 12,
		Months:      total % 12,
		TotalMonths: total,
	}
}
