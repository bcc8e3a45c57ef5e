package attendance

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sayed-elhawary/app-2/internal/domain/shift"
	"github.com/shopspring/decimal"
)

// NormalWorkHours is the nominal shift length for station and 24/24 shifts.
const NormalWorkHours = 9

// adminCheckOutThresholdMinutes is 17:30 as minutes since midnight. Any
// administrative check-out past it counts as extra time.
const adminCheckOutThresholdMinutes = 17*60 + 30

var (
	sixty = decimal.NewFromInt(60)
	nine  = decimal.NewFromInt(NormalWorkHours)
	two   = decimal.NewFromInt(2)
)

// DailySalary is baseSalary / 30.
func DailySalary(baseSalary decimal.Decimal) decimal.Decimal {
	return baseSalary.Div(decimal.NewFromInt(30))
}

// HourlyRate is the daily salary / 9.
func HourlyRate(baseSalary decimal.Decimal) decimal.Decimal {
	return DailySalary(baseSalary).Div(nine)
}

// ParseClock parses an "HH:MM" 24-hour wall-clock string into minutes since
// midnight. Malformed values are rejected, never coerced.
func ParseClock(v string) (int, error) {
	parts := strings.Split(v, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock value %q: want HH:MM", v)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid clock value %q: bad hour", v)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid clock value %q: bad minute", v)
	}
	return h*60 + m, nil
}

// Derived is the output of the work-time calculation for one fact.
type Derived struct {
	WorkHours              decimal.Decimal
	ExtraHours             decimal.Decimal
	ExtraHoursCompensation decimal.Decimal
	HoursDeduction         decimal.Decimal
	CalculatedWorkDays     int
	FridayBonus            decimal.Decimal
}

// ComputeDay derives the work-time figures for one fact from its recorded
// inputs and the employee's base salary. This is the single-record mutation
// path; the reporting aggregator applies its own rate rules on top of the
// same elapsed-time arithmetic.
//
// Hours are rounded to two decimal places at each step, not only at the end,
// so that recomputation reproduces stored values exactly.
func ComputeDay(f *Fact, baseSalary decimal.Decimal) (Derived, error) {
	var d Derived
	dailySalary := DailySalary(baseSalary)
	hourlyRate := HourlyRate(baseSalary)
	isFriday := f.Date.Weekday() == time.Friday

	switch {
	case f.Status == StatusPresent && f.HasCheckIn() && f.HasCheckOut():
		in, err := ParseClock(*f.CheckIn)
		if err != nil {
			return Derived{}, fmt.Errorf("check-in for %s on %s: %w", f.EmployeeCode, f.Date.Format("2006-01-02"), err)
		}
		out, err := ParseClock(*f.CheckOut)
		if err != nil {
			return Derived{}, fmt.Errorf("check-out for %s on %s: %w", f.EmployeeCode, f.Date.Format("2006-01-02"), err)
		}

		// A check-out at or before the check-in rolls to the next calendar
		// day. This applies to every shift type, not just 24/24.
		elapsed := out - in
		if elapsed <= 0 {
			elapsed += 24 * 60
		}
		d.WorkHours = decimal.NewFromInt(int64(elapsed)).Div(sixty).Round(2)

		switch {
		case f.ShiftType == shift.Administrative:
			// No minimum-hours logic; only the 17:30 threshold matters.
			if out > adminCheckOutThresholdMinutes {
				d.ExtraHours = decimal.NewFromInt(int64(out - adminCheckOutThresholdMinutes)).Div(sixty).Round(2)
				d.ExtraHoursCompensation = d.ExtraHours.Mul(hourlyRate)
			}
			d.CalculatedWorkDays = 1

		case f.ShiftType == shift.RoundTheClock:
			if d.WorkHours.GreaterThanOrEqual(nine) {
				d.ExtraHours = d.WorkHours.Sub(nine).Round(2)
				d.ExtraHoursCompensation = d.ExtraHours.Mul(hourlyRate)
			} else {
				d.HoursDeduction = nine.Sub(d.WorkHours).Round(2)
			}
			d.CalculatedWorkDays = 1

		case f.ShiftType.IsStation():
			if isFriday && f.WorkedFriday {
				if d.WorkHours.GreaterThanOrEqual(nine) {
					d.ExtraHours = d.WorkHours.Sub(nine).Round(2)
					d.ExtraHoursCompensation = d.ExtraHours.Mul(hourlyRate.Mul(two))
					d.FridayBonus = dailySalary
				} else {
					d.HoursDeduction = nine.Sub(d.WorkHours).Round(2)
				}
			} else if d.WorkHours.GreaterThanOrEqual(nine) {
				d.ExtraHours = d.WorkHours.Sub(nine).Round(2)
				d.ExtraHoursCompensation = d.ExtraHours.Mul(hourlyRate)
			} else {
				d.HoursDeduction = nine.Sub(d.WorkHours).Round(2)
			}
			d.CalculatedWorkDays = 1
		}

	case f.Status == StatusPresent && (f.HasCheckIn() || f.HasCheckOut()):
		// A single recorded timestamp counts as a full nominal day.
		d.WorkHours = nine
		d.CalculatedWorkDays = 1
		if isFriday && f.WorkedFriday && f.ShiftType.IsStation() {
			d.FridayBonus = dailySalary
		}

	default:
		// Non-present days carry zero derived figures.
	}

	return d, nil
}

// Apply copies the derived figures onto the fact.
func (f *Fact) Apply(d Derived) {
	f.WorkHours = d.WorkHours
	f.ExtraHours = d.ExtraHours
	f.ExtraHoursCompensation = d.ExtraHoursCompensation
	f.HoursDeduction = d.HoursDeduction
	f.CalculatedWorkDays = d.CalculatedWorkDays
	f.FridayBonus = d.FridayBonus
}
