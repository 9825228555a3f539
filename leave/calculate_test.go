package leave_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/leave-engine/accrual"
	"github.com/warp/leave-engine/leave"
)

func newCalc() *leave.Calculator {
	return leave.NewCalculator(accrual.NewRegistry(zerolog.Nop()))
}

func TestCalculate_LifetimeBalance(t *testing.T) {
	// GIVEN: hired 2023-01-01, exactly one year later, 40 hours used
	in := leave.Input{
		HireDate:        "2023-01-01",
		AsOfDate:        "2024-01-01",
		WorkHoursPerDay: 8,
		Policy:          accrual.Config{Type: accrual.DefaultPolicy},
		UsedHoursTotal:  40,
	}

	// WHEN
	result, err := newCalc().Calculate(in)
	require.NoError(t, err)

	// THEN: 26 accrued days = 208 hours, 40 used, 168 remain = 21 days
	assert.Equal(t, 1, result.ServicePeriod.Years)
	assert.Equal(t, 0, result.ServicePeriod.Months)
	assert.Equal(t, 26, result.AccruedDays)
	assert.Equal(t, 208, result.AccruedHoursTotal)
	assert.Equal(t, 40, result.UsedHoursTotal)
	assert.Equal(t, 168, result.RemainingHours)
	assert.Equal(t, "21", result.RemainingDays.String())
	assert.Equal(t, "1년", result.ServicePeriodPretty)
	assert.Equal(t, "26일", result.AccruedPretty)
	assert.Equal(t, "5일", result.UsedPretty)
	assert.Equal(t, "21일", result.RemainingPretty)
	assert.Empty(t, result.Warnings)
}

func TestCalculate_RecordsTakePrecedenceOverScalar(t *testing.T) {
	in := leave.Input{
		HireDate:        "2023-01-01",
		AsOfDate:        "2024-06-01",
		WorkHoursPerDay: 8,
		UsedHoursTotal:  999, // must be ignored
		Records: []leave.UsageRecord{
			{ID: "a", Date: "2024-02-01", AmountHours: 8},
			{ID: "b", Date: "2024-03-01", AmountHours: 4},
		},
	}

	result, err := newCalc().Calculate(in)
	require.NoError(t, err)
	assert.Equal(t, 12, result.UsedHoursTotal)
}

func TestCalculate_FutureRecordWarnsAndIsExcluded(t *testing.T) {
	in := leave.Input{
		HireDate:        "2023-01-01",
		AsOfDate:        "2024-06-01",
		WorkHoursPerDay: 8,
		Records: []leave.UsageRecord{
			{ID: "a", Date: "2024-02-01", AmountHours: 8},
			{ID: "b", Date: "2024-07-15", AmountHours: 8}, // after as-of
		},
	}

	result, err := newCalc().Calculate(in)
	require.NoError(t, err)
	assert.Equal(t, 8, result.UsedHoursTotal)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "2024-07-15")
}

func TestCalculate_BalanceIdentity(t *testing.T) {
	// accrued == used + remaining, for positive and negative remainders.
	for _, used := range []int{0, 8, 208, 300} {
		result, err := newCalc().Calculate(leave.Input{
			HireDate:        "2023-01-01",
			AsOfDate:        "2024-06-01",
			WorkHoursPerDay: 8,
			UsedHoursTotal:  used,
		})
		require.NoError(t, err)
		assert.Equal(t, result.AccruedHoursTotal, result.UsedHoursTotal+result.RemainingHours)
	}
}

func TestCalculate_OveruseIsDataNotError(t *testing.T) {
	result, err := newCalc().Calculate(leave.Input{
		HireDate:        "2024-01-01",
		AsOfDate:        "2024-03-15",
		WorkHoursPerDay: 8,
		UsedHoursTotal:  40,
	})
	require.NoError(t, err)
	// 2 accrued days = 16 hours, 40 used.
	assert.Equal(t, -24, result.RemainingHours)
	assert.Equal(t, "-3", result.RemainingDays.String())
	assert.Equal(t, "-3일", result.RemainingPretty)
}

func TestCalculate_ValidationCollectsEveryError(t *testing.T) {
	// Three independent problems must all be reported at once.
	_, err := newCalc().Calculate(leave.Input{
		HireDate:        "not-a-date",
		AsOfDate:        "2024-02-30",
		WorkHoursPerDay: 0,
	})

	var verr *leave.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Messages, 3)
	assert.Contains(t, verr.Error(), "validation failed")
}

func TestCalculate_AsOfBeforeHireIsAnError(t *testing.T) {
	_, err := newCalc().Calculate(leave.Input{
		HireDate:        "2024-06-01",
		AsOfDate:        "2024-01-01",
		WorkHoursPerDay: 8,
	})

	var verr *leave.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Messages, 1)
	assert.Contains(t, verr.Messages[0], "precedes hire_date")
}

func TestCalculate_UnknownPolicyFallsBackToDefault(t *testing.T) {
	in := leave.Input{
		HireDate:        "2023-01-01",
		AsOfDate:        "2024-06-01",
		WorkHoursPerDay: 8,
		Policy:          accrual.Config{Type: "NOPE"},
	}

	result, err := newCalc().Calculate(in)
	require.NoError(t, err)
	assert.Equal(t, 26, result.AccruedDays)
}
