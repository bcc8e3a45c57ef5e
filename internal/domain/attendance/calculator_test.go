package attendance

import (
	"testing"
	"time"

	"github.com/sayed-elhawary/app-2/internal/domain/shift"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func strPtr(s string) *string {
	return &s
}

// 2025-01-03 is a Friday, 2025-01-06 a Monday.
var (
	testFriday = time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC)
	testMonday = time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
)

func TestParseClock(t *testing.T) {
	mins, err := ParseClock("08:30")
	require.NoError(t, err)
	assert.Equal(t, 8*60+30, mins)

	mins, err = ParseClock("00:00")
	require.NoError(t, err)
	assert.Equal(t, 0, mins)

	mins, err = ParseClock("23:59")
	require.NoError(t, err)
	assert.Equal(t, 23*60+59, mins)

	for _, bad := range []string{"24:00", "12:60", "8", "ab:cd", "12:30:00", ""} {
		_, err := ParseClock(bad)
		assert.Error(t, err, "expected %q to be rejected", bad)
	}
}

func TestComputeDay_AdministrativeOvertime(t *testing.T) {
	f := &Fact{
		EmployeeCode: "1001",
		Date:         testMonday,
		Status:       StatusPresent,
		ShiftType:    shift.Administrative,
		WorkingDays:  shift.FiveDays,
		CheckIn:      strPtr("08:00"),
		CheckOut:     strPtr("18:00"),
	}

	d, err := ComputeDay(f, dec("3000"))
	require.NoError(t, err)

	assert.True(t, d.WorkHours.Equal(dec("10")), "workHours = %s", d.WorkHours)
	assert.True(t, d.ExtraHours.Equal(dec("0.5")), "extraHours = %s", d.ExtraHours)
	assert.True(t, d.HoursDeduction.IsZero())
	assert.Equal(t, 1, d.CalculatedWorkDays)
	assert.True(t, d.FridayBonus.IsZero())

	hourlyRate := dec("3000").Div(dec("30")).Div(dec("9"))
	assert.True(t, d.ExtraHoursCompensation.Equal(dec("0.5").Mul(hourlyRate)))
}

func TestComputeDay_AdministrativeEarlyCheckoutNoDeduction(t *testing.T) {
	f := &Fact{
		Date:        testMonday,
		Status:      StatusPresent,
		ShiftType:   shift.Administrative,
		WorkingDays: shift.FiveDays,
		CheckIn:     strPtr("09:00"),
		CheckOut:    strPtr("15:00"),
	}

	d, err := ComputeDay(f, dec("3000"))
	require.NoError(t, err)

	// The administrative shift has no minimum-hours rule on this path.
	assert.True(t, d.ExtraHours.IsZero())
	assert.True(t, d.HoursDeduction.IsZero())
	assert.Equal(t, 1, d.CalculatedWorkDays)
}

func TestComputeDay_RoundTheClockDayRoll(t *testing.T) {
	f := &Fact{
		Date:      testMonday,
		Status:    StatusPresent,
		ShiftType: shift.RoundTheClock,
		CheckIn:   strPtr("08:00"),
		CheckOut:  strPtr("08:00"),
	}

	d, err := ComputeDay(f, dec("3000"))
	require.NoError(t, err)

	assert.True(t, d.WorkHours.Equal(dec("24")), "workHours = %s", d.WorkHours)
	assert.True(t, d.ExtraHours.Equal(dec("15")), "extraHours = %s", d.ExtraHours)
	assert.True(t, d.HoursDeduction.IsZero())
	assert.Equal(t, 1, d.CalculatedWorkDays)
}

func TestComputeDay_RoundTheClockShortfall(t *testing.T) {
	f := &Fact{
		Date:      testMonday,
		Status:    StatusPresent,
		ShiftType: shift.RoundTheClock,
		CheckIn:   strPtr("08:00"),
		CheckOut:  strPtr("14:30"),
	}

	d, err := ComputeDay(f, dec("3000"))
	require.NoError(t, err)

	assert.True(t, d.WorkHours.Equal(dec("6.5")))
	assert.True(t, d.ExtraHours.IsZero())
	assert.True(t, d.HoursDeduction.Equal(dec("2.5")), "hoursDeduction = %s", d.HoursDeduction)
	assert.Equal(t, 1, d.CalculatedWorkDays)
}

func TestComputeDay_StationWorkedFriday(t *testing.T) {
	f := &Fact{
		Date:         testFriday,
		Status:       StatusPresent,
		ShiftType:    shift.DayStation,
		WorkedFriday: true,
		CheckIn:      strPtr("07:00"),
		CheckOut:     strPtr("17:00"),
	}

	d, err := ComputeDay(f, dec("3000"))
	require.NoError(t, err)

	dailySalary := dec("100")
	hourlyRate := dailySalary.Div(dec("9"))

	assert.True(t, d.WorkHours.Equal(dec("10")))
	assert.True(t, d.ExtraHours.Equal(dec("1")))
	assert.True(t, d.ExtraHoursCompensation.Equal(dec("1").Mul(hourlyRate.Mul(dec("2")))),
		"worked Friday overtime pays double the hourly rate")
	assert.True(t, d.FridayBonus.Equal(dailySalary))
	assert.Equal(t, 1, d.CalculatedWorkDays)
}

func TestComputeDay_StationWorkedFridayShortfall(t *testing.T) {
	f := &Fact{
		Date:         testFriday,
		Status:       StatusPresent,
		ShiftType:    shift.NightStation,
		WorkedFriday: true,
		CheckIn:      strPtr("07:00"),
		CheckOut:     strPtr("13:00"),
	}

	d, err := ComputeDay(f, dec("3000"))
	require.NoError(t, err)

	assert.True(t, d.HoursDeduction.Equal(dec("3")))
	assert.True(t, d.FridayBonus.IsZero(), "no bonus below the nominal shift length")
	assert.Equal(t, 1, d.CalculatedWorkDays)
}

func TestComputeDay_StationOrdinaryDay(t *testing.T) {
	f := &Fact{
		Date:      testMonday,
		Status:    StatusPresent,
		ShiftType: shift.DayStation,
		CheckIn:   strPtr("08:00"),
		CheckOut:  strPtr("19:00"),
	}

	d, err := ComputeDay(f, dec("2700"))
	require.NoError(t, err)

	hourlyRate := dec("2700").Div(dec("30")).Div(dec("9"))
	assert.True(t, d.ExtraHours.Equal(dec("2")))
	assert.True(t, d.ExtraHoursCompensation.Equal(dec("2").Mul(hourlyRate)))
	assert.True(t, d.FridayBonus.IsZero())
}

func TestComputeDay_SingleTimestamp(t *testing.T) {
	f := &Fact{
		Date:      testMonday,
		Status:    StatusPresent,
		ShiftType: shift.RoundTheClock,
		CheckIn:   strPtr("08:00"),
	}

	d, err := ComputeDay(f, dec("3000"))
	require.NoError(t, err)

	assert.True(t, d.WorkHours.Equal(dec("9")), "a single timestamp counts as a nominal day")
	assert.True(t, d.ExtraHours.IsZero())
	assert.True(t, d.HoursDeduction.IsZero())
	assert.Equal(t, 1, d.CalculatedWorkDays)
}

func TestComputeDay_SingleTimestampWorkedFridayBonus(t *testing.T) {
	f := &Fact{
		Date:         testFriday,
		Status:       StatusPresent,
		ShiftType:    shift.DayStation,
		WorkedFriday: true,
		CheckOut:     strPtr("17:00"),
	}

	d, err := ComputeDay(f, dec("3000"))
	require.NoError(t, err)

	assert.True(t, d.FridayBonus.Equal(dec("100")))
	assert.Equal(t, 1, d.CalculatedWorkDays)
}

func TestComputeDay_NonPresentZeroes(t *testing.T) {
	for _, status := range []Status{StatusAbsent, StatusWeeklyOff, StatusLeave, StatusOfficialLeave, StatusMedicalLeave} {
		f := &Fact{
			Date:      testMonday,
			Status:    status,
			ShiftType: shift.DayStation,
			CheckIn:   strPtr("08:00"),
			CheckOut:  strPtr("18:00"),
		}

		d, err := ComputeDay(f, dec("3000"))
		require.NoError(t, err)

		assert.True(t, d.WorkHours.IsZero(), "status %s", status)
		assert.True(t, d.ExtraHours.IsZero(), "status %s", status)
		assert.True(t, d.HoursDeduction.IsZero(), "status %s", status)
		assert.Equal(t, 0, d.CalculatedWorkDays, "status %s", status)
	}
}

func TestComputeDay_Idempotent(t *testing.T) {
	f := &Fact{
		Date:      testMonday,
		Status:    StatusPresent,
		ShiftType: shift.RoundTheClock,
		CheckIn:   strPtr("08:00"),
		CheckOut:  strPtr("20:15"),
	}

	first, err := ComputeDay(f, dec("3000"))
	require.NoError(t, err)
	f.Apply(first)

	second, err := ComputeDay(f, dec("3000"))
	require.NoError(t, err)

	assert.True(t, first.WorkHours.Equal(second.WorkHours))
	assert.True(t, first.ExtraHours.Equal(second.ExtraHours))
	assert.True(t, first.ExtraHoursCompensation.Equal(second.ExtraHoursCompensation))
	assert.True(t, first.HoursDeduction.Equal(second.HoursDeduction))
	assert.Equal(t, first.CalculatedWorkDays, second.CalculatedWorkDays)
	assert.True(t, first.FridayBonus.Equal(second.FridayBonus))
}

func TestComputeDay_InvalidClockRejected(t *testing.T) {
	f := &Fact{
		EmployeeCode: "1001",
		Date:         testMonday,
		Status:       StatusPresent,
		ShiftType:    shift.DayStation,
		CheckIn:      strPtr("25:00"),
		CheckOut:     strPtr("17:00"),
	}

	_, err := ComputeDay(f, dec("3000"))
	assert.Error(t, err)
}
