/*
Package eventleave resolves fixed-entitlement ceremonial leave.

PURPOSE:
  Marriage and bereavement leave is granted as a fixed number of CALENDAR
  days per event type, independent of tenure. What actually matters to an
  employee is the working-day impact of that span, which depends on where
  weekends and holidays fall. This package owns the static entitlement
  table and the calendar-to-working-day translation.

KEY CONCEPTS:
  - Policy: immutable reference data - event type, category, title,
    calendar-day entitlement.
  - Preview: the resolved span (working days, end date) shown before the
    caller commits a Record.
  - Record: a committed grant. CalendarDays is fixed forever; WorkingDays
    is derived and must be recomputed whenever the holiday set changes.

THE RECOMPUTATION CONTRACT:
  The holiday set is mutable caller state. This package does not watch it;
  the caller invokes RecomputeAll after every holiday change, and the
  recomputation is idempotent for a fixed set.

SEE ALSO:
  - resolver.go: preview and recomputation
  - calendar/workdays.go: the working-day counter underneath
*/
package eventleave

// Category groups event types.
type Category string

const (
	CategoryMarriage Category = "MARRIAGE"
	CategoryDeath    Category = "DEATH"
)

// Policy is one row of the static entitlement table. CalendarDays is
// inclusive of weekends and holidays.
type Policy struct {
	Type         string   `json:"type"`
	Category     Category `json:"category"`
	Title        string   `json:"title"`
	CalendarDays int      `json:"calendar_days"`
	Note         string   `json:"note,omitempty"`
}

// The built-in entitlement table. Order here is the display order.
var policies = []Policy{
	{Type: "MARRIAGE_SELF", Category: CategoryMarriage, Title: "본인 결혼", CalendarDays: 5},
	{Type: "MARRIAGE_CHILD", Category: CategoryMarriage, Title: "자녀 결혼", CalendarDays: 1},
	{Type: "DEATH_SPOUSE", Category: CategoryDeath, Title: "배우자 사망", CalendarDays: 5},
	{Type: "DEATH_PARENT", Category: CategoryDeath, Title: "본인/배우자 부모 사망", CalendarDays: 5},
	{Type: "DEATH_GRANDPARENT", Category: CategoryDeath, Title: "조부모/외조부모 사망", CalendarDays: 3, Note: "본인 기준"},
	{Type: "DEATH_SIBLING", Category: CategoryDeath, Title: "형제자매 사망", CalendarDays: 3},
	{Type: "DEATH_CHILD", Category: CategoryDeath, Title: "자녀 사망", CalendarDays: 5},
}

// Policies returns the entitlement table in display order. The returned
// slice is a copy; the table itself is immutable.
func Policies() []Policy {
	out := make([]Policy, len(policies))
	copy(out, policies)
	return out
}

// LookupPolicy finds the entitlement for an event type.
func LookupPolicy(eventType string) (Policy, bool) {
	for _, p := range policies {
		if p.Type == eventType {
			return p, true
		}
	}
	return Policy{}, false
}
