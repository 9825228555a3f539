package leave

import (
	"fmt"

	"github.com/warp/leave-engine/calendar"
)

// =============================================================================
// PRETTY PRINTING - Korean day/hour labels
// =============================================================================

// FormatHoursAsDaysHours renders an hour count as "N일 M시간" (N days
// M hours). Sign-aware; zero renders as "0일 0시간"; whole days omit the
// hour part; amounts under one day omit the day part. Integer division
// truncates toward zero, which is exact here because hour amounts are
// integers by invariant.
func FormatHoursAsDaysHours(hours, workHoursPerDay int) string {
	if workHoursPerDay <= 0 {
		return fmt.Sprintf("%d시간", hours)
	}

	sign := ""
	if hours < 0 {
		sign = "-"
		hours = -hours
	}

	days := hours / workHoursPerDay
	rem := hours % workHoursPerDay

	switch {
	case days == 0 && rem == 0:
		return "0일 0시간"
	case rem == 0:
		return fmt.Sprintf("%s%d일", sign, days)
	case days == 0:
		return fmt.Sprintf("%s%d시간", sign, rem)
	default:
		return fmt.Sprintf("%s%d일 %d시간", sign, days, rem)
	}
}

// FormatServicePeriod renders tenure as "N년 M개월" (N years M months).
func FormatServicePeriod(p calendar.ServicePeriod) string {
	switch {
	case p.Years == 0:
		return fmt.Sprintf("%d개월", p.Months)
	case p.Months == 0:
		return fmt.Sprintf("%d년", p.Years)
	default:
		return fmt.Sprintf("%d년 %d개월", p.Years, p.Months)
	}
}

// =============================================================================
// HOUR PRESETS - named shorthands for common leave amounts
// =============================================================================

// Preset names a common leave amount.
type Preset string

const (
	PresetOneHour    Preset = "1h"
	PresetTwoHours   Preset = "2h"
	PresetThreeHours Preset = "3h"
	PresetHalfDayAM  Preset = "half_am"
	PresetHalfDayPM  Preset = "half_pm"
	PresetFullDay    Preset = "full"
	PresetCustom     Preset = "custom"
)

// PresetHours maps a preset to its hour count. Half days are
// workHoursPerDay/2 rounded down. PresetCustom (and unknown presets)
// return 0: the caller supplies the amount.
func PresetHours(p Preset, workHoursPerDay int) int {
	switch p {
	case PresetOneHour:
		return 1
	case PresetTwoHours:
		return 2
	case PresetThreeHours:
		return 3
	case PresetHalfDayAM, PresetHalfDayPM:
		return workHoursPerDay / 2
	case PresetFullDay:
		return workHoursPerDay
	default:
		return 0
	}
}

// LeaveTypeLabel classifies an hour amount into a human label purely by
// numeric comparison: a full workday is annual leave ("연차"), half a
// workday is a half day ("반차"), 1-3 hours are hourly leave, anything
// else is other ("기타").
func LeaveTypeLabel(amountHours, workHoursPerDay int) string {
	switch {
	case amountHours == workHoursPerDay:
		return "연차"
	case workHoursPerDay >= 2 && amountHours == workHoursPerDay/2:
		return "반차"
	case amountHours >= 1 && amountHours <= 3:
		return fmt.Sprintf("%d시간", amountHours)
	default:
		return "기타"
	}
}
