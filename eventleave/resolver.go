package eventleave

import (
	"fmt"

	"github.com/warp/leave-engine/calendar"
)

// =============================================================================
// RESOLVER - entitlement to working-day translation
// =============================================================================

// Preview is the resolved span for an event before a Record is committed.
type Preview struct {
	EventType    string `json:"event_type"`
	Title        string `json:"title"`
	CalendarDays int    `json:"calendar_days"`
	WorkingDays  int    `json:"working_days"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
}

// Resolve looks up the entitlement for an event type and translates it to
// actual working days for a concrete start date and holiday snapshot.
func Resolve(eventType string, start calendar.Date, holidays calendar.HolidaySet) (Preview, error) {
	policy, ok := LookupPolicy(eventType)
	if !ok {
		return Preview{}, fmt.Errorf("unknown event leave type %q", eventType)
	}
	return Preview{
		EventType:    policy.Type,
		Title:        policy.Title,
		CalendarDays: policy.CalendarDays,
		WorkingDays:  calendar.WorkingDays(start, policy.CalendarDays, holidays),
		StartDate:    start.String(),
		EndDate:      calendar.EndDate(start, policy.CalendarDays).String(),
	}, nil
}

// =============================================================================
// RECORD - a committed ceremonial-leave grant
// =============================================================================

// Record is one day-denominated ceremonial-leave grant. CalendarDays is the
// fixed policy entitlement; WorkingDays is derived from the holiday set and
// recomputed whenever that set changes.
type Record struct {
	ID           string `json:"id"`
	Date         string `json:"date"`
	EventType    string `json:"event_type"`
	Title        string `json:"title"`
	CalendarDays int    `json:"calendar_days"`
	WorkingDays  int    `json:"working_days"`
	Memo         string `json:"memo,omitempty"`
}

// Recompute re-derives WorkingDays from the record's stored date and
// calendar-day entitlement. Idempotent for a fixed holiday set. A record
// whose stored date no longer parses is left untouched.
func Recompute(rec *Record, holidays calendar.HolidaySet) error {
	start, err := calendar.ParseDate(rec.Date)
	if err != nil {
		return fmt.Errorf("event record %s: %w", rec.ID, err)
	}
	rec.WorkingDays = calendar.WorkingDays(start, rec.CalendarDays, holidays)
	return nil
}

// RecomputeAll recomputes every record in place. The first failure is
// returned but the remaining records are still processed.
func RecomputeAll(records []Record, holidays calendar.HolidaySet) error {
	var firstErr error
	for i := range records {
		if err := Recompute(&records[i], holidays); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
