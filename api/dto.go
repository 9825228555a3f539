/*
dto.go - request and response types for the REST API

PURPOSE:
  Defines the JSON structures crossing the HTTP boundary. Result types
  from the engine (leave.Result, leave.YearResult, calendar.WorkdayBreakdown,
  eventleave.Preview/Record) are JSON-safe and returned directly; the types
  here cover everything else.

NAMING CONVENTION:
  *Request: request body types from clients
  *DTO:     response shapes that do not map 1:1 onto an engine type

VALIDATION:
  DTOs are pure data carriers; validation happens in the handlers and the
  engine's validators.
*/
package api

import "github.com/warp/leave-engine/accrual"

// =============================================================================
// PROFILE
// =============================================================================

// ProfileDTO is the stored employee profile.
type ProfileDTO struct {
	HireDate        string         `json:"hire_date"`
	WorkHoursPerDay int            `json:"work_hours_per_day"`
	Policy          accrual.Config `json:"policy"`
}

// SaveProfileRequest replaces the profile. Dates may be loosely formatted
// ("2024/01/15", "2024.01.15"); they are normalized before storage.
type SaveProfileRequest struct {
	HireDate        string         `json:"hire_date"`
	WorkHoursPerDay int            `json:"work_hours_per_day,omitempty"`
	Policy          accrual.Config `json:"policy,omitempty"`
}

// =============================================================================
// USAGE RECORDS
// =============================================================================

// CreateRecordRequest adds one usage record. Either amount_hours or a
// preset ("1h", "2h", "3h", "half_am", "half_pm", "full") must be given;
// an explicit amount wins over the preset.
type CreateRecordRequest struct {
	Date        string `json:"date"`
	AmountHours int    `json:"amount_hours,omitempty"`
	Preset      string `json:"preset,omitempty"`
	Memo        string `json:"memo,omitempty"`
	Tag         string `json:"tag,omitempty"`
}

// UpdateRecordRequest edits the date and memo of a record. Amounts are
// immutable; delete and re-create to change one.
type UpdateRecordRequest struct {
	Date string `json:"date"`
	Memo string `json:"memo"`
}

// =============================================================================
// YEAR STATE
// =============================================================================

// SetCarryRequest sets a year's carried-over days.
type SetCarryRequest struct {
	CarryDays int `json:"carry_days"`
}

// =============================================================================
// HOLIDAYS
// =============================================================================

// CreateHolidayRequest adds a designated holiday.
type CreateHolidayRequest struct {
	Date string `json:"date"`
	Name string `json:"name,omitempty"`
}

// =============================================================================
// EVENT LEAVE
// =============================================================================

// EventPreviewRequest asks for the working-day translation of an event
// type starting at a date, without committing anything.
type EventPreviewRequest struct {
	EventType string `json:"event_type"`
	StartDate string `json:"start_date"`
}

// CreateEventRequest commits a ceremonial-leave record.
type CreateEventRequest struct {
	EventType string `json:"event_type"`
	Date      string `json:"date"`
	Memo      string `json:"memo,omitempty"`
}

// =============================================================================
// ERRORS
// =============================================================================

// ErrorDTO is the uniform error response. Messages carries the full
// validation list when the failure was a validation error.
type ErrorDTO struct {
	Error    string   `json:"error"`
	Messages []string `json:"messages,omitempty"`
}
