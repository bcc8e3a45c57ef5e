package attendance

import (
	"github.com/sayed-elhawary/app-2/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// RecordDayRequest carries the raw inputs of one employee-day. Derived
// fields are never accepted from callers.
type RecordDayRequest struct {
	EmployeeCode          string           `json:"employee_code"`
	Date                  string           `json:"date"` // YYYY-MM-DD
	CheckIn               *string          `json:"check_in,omitempty"`
	CheckOut              *string          `json:"check_out,omitempty"`
	Status                *string          `json:"status,omitempty"`
	WorkedFriday          *bool            `json:"worked_friday,omitempty"`
	LateMinutes           *int             `json:"late_minutes,omitempty"`
	DeductedDays          *decimal.Decimal `json:"deducted_days,omitempty"`
	LeaveCompensation     *decimal.Decimal `json:"leave_compensation,omitempty"`
	MedicalLeaveDeduction *decimal.Decimal `json:"medical_leave_deduction,omitempty"`
}

func (r *RecordDayRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_code",
			Message: "employee_code is required",
		})
	}

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be YYYY-MM-DD",
		})
	}

	if r.Status != nil && !Status(*r.Status).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "invalid status",
		})
	}

	if r.CheckIn != nil && *r.CheckIn != "" {
		if _, err := ParseClock(*r.CheckIn); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "check_in",
				Message: "check_in must be HH:MM",
			})
		}
	}
	if r.CheckOut != nil && *r.CheckOut != "" {
		if _, err := ParseClock(*r.CheckOut); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "check_out",
				Message: "check_out must be HH:MM",
			})
		}
	}

	if r.LateMinutes != nil && *r.LateMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "late_minutes",
			Message: "late_minutes must not be negative",
		})
	}
	if r.DeductedDays != nil && r.DeductedDays.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "deducted_days",
			Message: "deducted_days must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// FactFilter selects an employee's facts over an inclusive date range.
type FactFilter struct {
	EmployeeCode string `json:"employee_code"`
	StartDate    string `json:"start_date"` // YYYY-MM-DD
	EndDate      string `json:"end_date"`   // YYYY-MM-DD
}

func (f *FactFilter) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(f.EmployeeCode) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_code",
			Message: "employee_code is required",
		})
	}

	if _, ok := validator.IsValidDate(f.StartDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be YYYY-MM-DD",
		})
	}
	if _, ok := validator.IsValidDate(f.EndDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be YYYY-MM-DD",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// FactResponse is the wire shape of one fact. All monetary and hour figures
// are rounded to two decimals at this boundary.
type FactResponse struct {
	ID                     string          `json:"id"`
	EmployeeCode           string          `json:"employee_code"`
	EmployeeName           string          `json:"employee_name"`
	Date                   string          `json:"date"`
	CheckIn                *string         `json:"check_in,omitempty"`
	CheckOut               *string         `json:"check_out,omitempty"`
	Status                 Status          `json:"status"`
	ShiftType              string          `json:"shift_type"`
	WorkingDays            string          `json:"working_days"`
	WorkedFriday           bool            `json:"worked_friday"`
	LateMinutes            int             `json:"late_minutes"`
	DeductedDays           decimal.Decimal `json:"deducted_days"`
	WorkHours              decimal.Decimal `json:"work_hours"`
	ExtraHours             decimal.Decimal `json:"extra_hours"`
	ExtraHoursCompensation decimal.Decimal `json:"extra_hours_compensation"`
	HoursDeduction         decimal.Decimal `json:"hours_deduction"`
	CalculatedWorkDays     int             `json:"calculated_work_days"`
	FridayBonus            decimal.Decimal `json:"friday_bonus"`
	TotalExtraHours        decimal.Decimal `json:"total_extra_hours"`
	LeaveCompensation      decimal.Decimal `json:"leave_compensation"`
	MedicalLeaveDeduction  decimal.Decimal `json:"medical_leave_deduction"`
	AnnualLeaveBalance     decimal.Decimal `json:"annual_leave_balance"`
	MonthlyLateAllowance   int             `json:"monthly_late_allowance"`
}
