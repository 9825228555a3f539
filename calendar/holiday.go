package calendar

// =============================================================================
// HOLIDAY SET - read-only snapshot of designated holidays
// =============================================================================

// HolidaySet is an unordered collection of holiday dates. The engine never
// owns or mutates one; callers hand in a snapshot per calculation and the
// set is only consulted for membership.
type HolidaySet map[string]struct{}

// NewHolidaySet builds a set from wire-format date strings. Strings that are
// not valid dates are silently skipped - the set is a lookup structure, not
// a validator.
func NewHolidaySet(dates ...string) HolidaySet {
	set := make(HolidaySet, len(dates))
	for _, s := range dates {
		if IsValidDateString(s) {
			set[s] = struct{}{}
		}
	}
	return set
}

// Contains reports whether the date is a designated holiday.
func (h HolidaySet) Contains(d Date) bool {
	if h == nil {
		return false
	}
	_, ok := h[d.String()]
	return ok
}

// Dates returns the members in wire format, in no particular order.
func (h HolidaySet) Dates() []string {
	out := make([]string, 0, len(h))
	for s := range h {
		out = append(out, s)
	}
	return out
}
