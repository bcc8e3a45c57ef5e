package attendance

import (
	"time"

	"github.com/sayed-elhawary/app-2/internal/domain/shift"
	"github.com/shopspring/decimal"
)

// Status is the derived classification of one employee-day.
type Status string

const (
	StatusPresent       Status = "present"
	StatusAbsent        Status = "absent"
	StatusWeeklyOff     Status = "weekly_off"
	StatusLeave         Status = "leave"
	StatusOfficialLeave Status = "official_leave"
	StatusMedicalLeave  Status = "medical_leave"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusWeeklyOff, StatusLeave, StatusOfficialLeave, StatusMedicalLeave:
		return true
	}
	return false
}

// IsLeave reports whether the status belongs to the leave family, which
// always wins over presence signals during classification.
func (s Status) IsLeave() bool {
	return s == StatusLeave || s == StatusOfficialLeave || s == StatusMedicalLeave
}

// Fact is one employee's attendance/pay record for one calendar day.
// Shift type and working days are copied from the policy at computation time
// and never re-derived afterwards. Derived fields are a pure function of
// (status, check-in/out, policy, prior facts in the same month).
type Fact struct {
	ID           string
	EmployeeCode string
	EmployeeName string
	Date         time.Time
	CheckIn      *string // "HH:MM", local to Date
	CheckOut     *string // "HH:MM", local to Date
	Status       Status
	ShiftType    shift.Type
	WorkingDays  shift.WorkingDays
	WorkedFriday bool

	LateMinutes  int
	DeductedDays decimal.Decimal

	// Derived
	WorkHours              decimal.Decimal
	ExtraHours             decimal.Decimal
	ExtraHoursCompensation decimal.Decimal
	HoursDeduction         decimal.Decimal
	CalculatedWorkDays     int
	FridayBonus            decimal.Decimal
	TotalExtraHours        decimal.Decimal // month-to-date, re-summed on every write
	LeaveCompensation      decimal.Decimal
	MedicalLeaveDeduction  decimal.Decimal

	// Snapshot of policy balances at computation time
	AnnualLeaveBalance   decimal.Decimal
	MonthlyLateAllowance int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasCheckIn reports whether a check-in clock value is recorded.
func (f *Fact) HasCheckIn() bool {
	return f.CheckIn != nil && *f.CheckIn != ""
}

// HasCheckOut reports whether a check-out clock value is recorded.
func (f *Fact) HasCheckOut() bool {
	return f.CheckOut != nil && *f.CheckOut != ""
}

// QualifiesForCumulativeOvertime reports whether the fact's extra hours count
// toward the month-to-date overtime total. Administrative days never qualify.
func (f *Fact) QualifiesForCumulativeOvertime() bool {
	if f.Status != StatusPresent {
		return false
	}
	if f.ShiftType == shift.RoundTheClock {
		return true
	}
	return f.ShiftType.IsStation() && f.WorkedFriday
}
