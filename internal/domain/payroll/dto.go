package payroll

import (
	"github.com/sayed-elhawary/app-2/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// SummaryRequest selects the employees and date range for a salary report.
// An empty Code means every employee; ShiftType "" or "all" means every shift.
type SummaryRequest struct {
	Code      string `json:"code"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	ShiftType string `json:"shift_type"`
}

func (r *SummaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.StartDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be YYYY-MM-DD",
		})
	}
	if _, ok := validator.IsValidDate(r.EndDate); !ok {
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

// Summary is one per-employee salary report row. Field names are part of
// the wire contract consumed by the export layer; do not rename.
type Summary struct {
	EmployeeCode string `json:"employee_code"`
	EmployeeName string `json:"employee_name"`
	ShiftType    string `json:"shift_type"`
	WorkingDays  string `json:"working_days"`

	BaseSalary decimal.Decimal `json:"base_salary"`
	BaseBonus  decimal.Decimal `json:"base_bonus"`

	MealAllowance          decimal.Decimal `json:"meal_allowance"`
	MealAllowanceDeduction decimal.Decimal `json:"meal_allowance_deduction"`
	MedicalInsurance       decimal.Decimal `json:"medical_insurance"`
	SocialInsurance        decimal.Decimal `json:"social_insurance"`

	PresentDays       decimal.Decimal `json:"present_days"`
	AbsentDays        int             `json:"absent_days"`
	WeeklyOffDays     int             `json:"weekly_off_days"`
	LeaveDays         int             `json:"leave_days"`
	OfficialLeaveDays int             `json:"official_leave_days"`
	MedicalLeaveDays  int             `json:"medical_leave_days"`
	TotalWorkDays     decimal.Decimal `json:"total_work_days"`

	TotalLateMinutes int `json:"total_late_minutes"`

	TotalWorkHours              decimal.Decimal `json:"total_work_hours"`
	TotalExtraHours             decimal.Decimal `json:"total_extra_hours"`
	TotalExtraHoursCompensation decimal.Decimal `json:"total_extra_hours_compensation"`
	TotalHoursDeduction         decimal.Decimal `json:"total_hours_deduction"`
	TotalFridayBonus            decimal.Decimal `json:"total_friday_bonus"`

	TotalLeaveCompensation     decimal.Decimal `json:"total_leave_compensation"`
	TotalMedicalLeaveDeduction decimal.Decimal `json:"total_medical_leave_deduction"`
	DeductedDays               decimal.Decimal `json:"deducted_days"`

	ViolationsTotal     decimal.Decimal `json:"violations_total"`
	ViolationsDeduction decimal.Decimal `json:"violations_deduction"`
	AdvancesTotal       decimal.Decimal `json:"advances_total"`
	AdvancesDeduction   decimal.Decimal `json:"advances_deduction"`

	AnnualLeaveBalance   decimal.Decimal `json:"annual_leave_balance"`
	MonthlyLateAllowance int             `json:"monthly_late_allowance"`

	// TotalDeductions counts deducted days; TotalDeductionsAmount is money.
	TotalDeductions       decimal.Decimal `json:"total_deductions"`
	TotalDeductionsAmount decimal.Decimal `json:"total_deductions_amount"`
	NetSalary             decimal.Decimal `json:"net_salary"`
}

// SummaryResponse maps employee IDs to their summary rows.
type SummaryResponse struct {
	Summaries map[string]*Summary `json:"summaries"`
}
