package calendar

// =============================================================================
// WORKING-DAY CALCULATOR
// =============================================================================

// DateRange returns n consecutive calendar dates starting at start,
// inclusive. Days are added with calendar arithmetic, not a duration
// constant, so month boundaries and DST transitions behave. n <= 0 yields
// an empty slice.
func DateRange(start Date, n int) []Date {
	if n <= 0 {
		return nil
	}
	dates := make([]Date, n)
	for i := range dates {
		dates[i] = start.AddDays(i)
	}
	return dates
}

// EndDate returns the last date of an n-day span starting at start,
// i.e. start + (n-1) days.
func EndDate(start Date, n int) Date {
	if n <= 0 {
		return start
	}
	return start.AddDays(n - 1)
}

// WorkingDays counts the dates in an n-day span that are neither weekend
// days nor members of the holiday set. A date that is both a weekend day
// and a holiday is excluded exactly once.
func WorkingDays(start Date, n int, holidays HolidaySet) int {
	count := 0
	for _, d := range DateRange(start, n) {
		if d.IsWeekend() || holidays.Contains(d) {
			continue
		}
		count++
	}
	return count
}

// WorkdayBreakdown classifies every date of a span into exactly one bucket.
// WorkingDays + WeekendDays + HolidayDays == CalendarDays.
type WorkdayBreakdown struct {
	CalendarDays int      `json:"calendar_days"`
	WorkingDays  int      `json:"working_days"`
	WeekendDays  int      `json:"weekend_days"`
	HolidayDays  int      `json:"holiday_days"`
	Dates        []string `json:"dates"`
}

// WorkingDaysDetailed is WorkingDays with per-bucket counts. Classification
// order is weekend first, then holiday, then working: HolidayDays only
// counts holidays that fall on non-weekend days, keeping the buckets
// mutually exclusive.
func WorkingDaysDetailed(start Date, n int, holidays HolidaySet) WorkdayBreakdown {
	bd := WorkdayBreakdown{CalendarDays: 0}
	for _, d := range DateRange(start, n) {
		bd.CalendarDays++
		bd.Dates = append(bd.Dates, d.String())
		switch {
		case d.IsWeekend():
			bd.WeekendDays++
		case holidays.Contains(d):
			bd.HolidayDays++
		default:
			bd.WorkingDays++
		}
	}
	return bd
}
