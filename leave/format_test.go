package leave_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/warp/leave-engine/calendar"
	"github.com/warp/leave-engine/leave"
)

func TestFormatHoursAsDaysHours(t *testing.T) {
	tests := []struct {
		hours int
		whpd  int
		want  string
	}{
		{0, 8, "0일 0시간"},
		{3, 8, "3시간"},
		{8, 8, "1일"},
		{12, 8, "1일 4시간"},
		{168, 8, "21일"},
		{-24, 8, "-3일"},
		{-5, 8, "-5시간"},
		{-12, 8, "-1일 4시간"},
		{9, 0, "9시간"}, // degenerate workday length: raw hours
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, leave.FormatHoursAsDaysHours(tt.hours, tt.whpd),
			"%d hours / %d per day", tt.hours, tt.whpd)
	}
}

func TestFormatServicePeriod(t *testing.T) {
	tests := []struct {
		years, months int
		want          string
	}{
		{0, 0, "0개월"},
		{0, 7, "7개월"},
		{1, 0, "1년"},
		{1, 5, "1년 5개월"},
		{10, 11, "10년 11개월"},
	}
	for _, tt := range tests {
		p := calendar.ServicePeriod{
			Years:       tt.years,
			Months:      tt.months,
			TotalMonths: tt.years*12 + tt.months,
		}
		assert.Equal(t, tt.want, leave.FormatServicePeriod(p))
	}
}

func TestPresetHours(t *testing.T) {
	assert.Equal(t, 1, leave.PresetHours(leave.PresetOneHour, 8))
	assert.Equal(t, 2, leave.PresetHours(leave.PresetTwoHours, 8))
	assert.Equal(t, 3, leave.PresetHours(leave.PresetThreeHours, 8))
	assert.Equal(t, 4, leave.PresetHours(leave.PresetHalfDayAM, 8))
	assert.Equal(t, 4, leave.PresetHours(leave.PresetHalfDayPM, 8))
	assert.Equal(t, 8, leave.PresetHours(leave.PresetFullDay, 8))
	// Half days round down for odd workday lengths.
	assert.Equal(t, 3, leave.PresetHours(leave.PresetHalfDayAM, 7))
	// Custom and unknown presets defer to the caller.
	assert.Equal(t, 0, leave.PresetHours(leave.PresetCustom, 8))
	assert.Equal(t, 0, leave.PresetHours(leave.Preset("bogus"), 8))
}

func TestLeaveTypeLabel(t *testing.T) {
	tests := []struct {
		hours int
		whpd  int
		want  string
	}{
		{8, 8, "연차"},
		{4, 8, "반차"},
		{1, 8, "1시간"},
		{2, 8, "2시간"},
		{3, 8, "3시간"},
		{5, 8, "기타"},
		{16, 8, "기타"},
		{0, 8, "기타"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, leave.LeaveTypeLabel(tt.hours, tt.whpd),
			"%d of %d", tt.hours, tt.whpd)
	}
}

func TestDaysFromHours(t *testing.T) {
	assert.Equal(t, "21", leave.DaysFromHours(168, 8).String())
	assert.Equal(t, "0.5", leave.DaysFromHours(4, 8).String())
	assert.Equal(t, "-1.5", leave.DaysFromHours(-12, 8).String())
	assert.True(t, leave.DaysFromHours(10, 0).IsZero())
}
