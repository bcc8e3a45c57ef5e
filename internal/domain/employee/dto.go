package employee

import (
	"regexp"

	"github.com/sayed-elhawary/app-2/internal/domain/shift"
	"github.com/sayed-elhawary/app-2/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

var passwordRegex = regexp.MustCompile(`^[a-zA-Z0-9@#$%^&*()]+$`)

func validatePassword(password string, errs validator.ValidationErrors) validator.ValidationErrors {
	if len(password) < 6 {
		return append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must be at least 6 characters",
		})
	}
	if !passwordRegex.MatchString(password) {
		return append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password contains invalid characters",
		})
	}
	return errs
}

type CreatePolicyRequest struct {
	Code                 string           `json:"code"`
	Password             string           `json:"password"`
	Name                 string           `json:"name"`
	Department           string           `json:"department"`
	ShiftType            string           `json:"shift_type"`
	WorkingDays          string           `json:"working_days"`
	BaseSalary           decimal.Decimal  `json:"base_salary"`
	BaseBonus            decimal.Decimal  `json:"base_bonus"`
	MedicalInsurance     decimal.Decimal  `json:"medical_insurance"`
	SocialInsurance      decimal.Decimal  `json:"social_insurance"`
	MealAllowance        *decimal.Decimal `json:"meal_allowance,omitempty"`
	AnnualLeaveBalance   *decimal.Decimal `json:"annual_leave_balance,omitempty"`
	MonthlyLateAllowance *int             `json:"monthly_late_allowance,omitempty"`
}

func (r *CreatePolicyRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Code) {
		errs = append(errs, validator.ValidationError{
			Field:   "code",
			Message: "employee code is required",
		})
	}
	errs = validatePassword(r.Password, errs)

	if r.ShiftType != "" && !shift.Type(r.ShiftType).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_type",
			Message: "invalid shift type",
		})
	}
	if r.WorkingDays != "" && !shift.WorkingDays(r.WorkingDays).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "working_days",
			Message: "working_days must be 5 or 6",
		})
	}
	if r.BaseSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "base_salary",
			Message: "base_salary must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdatePolicyRequest patches a policy; nil fields are left unchanged.
type UpdatePolicyRequest struct {
	ID                   string           `json:"-"`
	Code                 *string          `json:"code,omitempty"`
	Password             *string          `json:"password,omitempty"`
	Name                 *string          `json:"name,omitempty"`
	Department           *string          `json:"department,omitempty"`
	ShiftType            *string          `json:"shift_type,omitempty"`
	WorkingDays          *string          `json:"working_days,omitempty"`
	BaseSalary           *decimal.Decimal `json:"base_salary,omitempty"`
	BaseBonus            *decimal.Decimal `json:"base_bonus,omitempty"`
	MedicalInsurance     *decimal.Decimal `json:"medical_insurance,omitempty"`
	SocialInsurance      *decimal.Decimal `json:"social_insurance,omitempty"`
	MealAllowance        *decimal.Decimal `json:"meal_allowance,omitempty"`
	AnnualLeaveBalance   *decimal.Decimal `json:"annual_leave_balance,omitempty"`
	MonthlyLateAllowance *int             `json:"monthly_late_allowance,omitempty"`
}

func (r *UpdatePolicyRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "employee id is required",
		})
	}
	if r.Password != nil && *r.Password != "" {
		errs = validatePassword(*r.Password, errs)
	}
	if r.ShiftType != nil && !shift.Type(*r.ShiftType).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_type",
			Message: "invalid shift type",
		})
	}
	if r.WorkingDays != nil && !shift.WorkingDays(*r.WorkingDays).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "working_days",
			Message: "working_days must be 5 or 6",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// BulkUpdateRequest applies one field change across many employees.
// Type selects the field; the matching value field must be set.
type BulkUpdateRequest struct {
	Type                 string           `json:"type"` // base_salary, monthly_late_allowance, annual_leave_balance, base_bonus, medical_insurance, social_insurance
	Percentage           *decimal.Decimal `json:"percentage,omitempty"`
	MonthlyLateAllowance *int             `json:"monthly_late_allowance,omitempty"`
	AnnualLeaveBalance   *decimal.Decimal `json:"annual_leave_balance,omitempty"`
	BaseBonus            *decimal.Decimal `json:"base_bonus,omitempty"`
	MedicalInsurance     *decimal.Decimal `json:"medical_insurance,omitempty"`
	SocialInsurance      *decimal.Decimal `json:"social_insurance,omitempty"`
	ShiftType            *string          `json:"shift_type,omitempty"`
	ExcludedIDs          []string         `json:"excluded_ids,omitempty"`
}

func (r *BulkUpdateRequest) Validate() error {
	var errs validator.ValidationErrors

	switch r.Type {
	case "base_salary":
		if r.Percentage == nil {
			errs = append(errs, validator.ValidationError{
				Field:   "percentage",
				Message: "percentage is required for a base_salary update",
			})
		}
	case "monthly_late_allowance":
		if r.MonthlyLateAllowance == nil {
			errs = append(errs, validator.ValidationError{
				Field:   "monthly_late_allowance",
				Message: "monthly_late_allowance is required",
			})
		}
	case "annual_leave_balance":
		if r.AnnualLeaveBalance == nil {
			errs = append(errs, validator.ValidationError{
				Field:   "annual_leave_balance",
				Message: "annual_leave_balance is required",
			})
		}
	case "base_bonus":
		if r.BaseBonus == nil {
			errs = append(errs, validator.ValidationError{
				Field:   "base_bonus",
				Message: "base_bonus is required",
			})
		}
	case "medical_insurance":
		if r.MedicalInsurance == nil {
			errs = append(errs, validator.ValidationError{
				Field:   "medical_insurance",
				Message: "medical_insurance is required",
			})
		}
	case "social_insurance":
		if r.SocialInsurance == nil {
			errs = append(errs, validator.ValidationError{
				Field:   "social_insurance",
				Message: "social_insurance is required",
			})
		}
	default:
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "unknown bulk update type",
		})
	}

	if r.ShiftType != nil && !shift.Type(*r.ShiftType).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_type",
			Message: "invalid shift type",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateFinanceRequest sets violation/advance figures. Nil fields keep the
// stored value. A deduction greater than its total is rejected outright.
type UpdateFinanceRequest struct {
	ID                  string           `json:"-"`
	ViolationsTotal     *decimal.Decimal `json:"violations_total,omitempty"`
	ViolationsDeduction *decimal.Decimal `json:"violations_deduction,omitempty"`
	AdvancesTotal       *decimal.Decimal `json:"advances_total,omitempty"`
	AdvancesDeduction   *decimal.Decimal `json:"advances_deduction,omitempty"`
}

func (r *UpdateFinanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "employee id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// PolicyResponse is the wire shape of a policy. The password hash never
// leaves the service layer.
type PolicyResponse struct {
	ID                   string          `json:"id"`
	Code                 string          `json:"code"`
	Name                 string          `json:"name"`
	Department           string          `json:"department"`
	Role                 Role            `json:"role"`
	ShiftType            string          `json:"shift_type"`
	WorkingDays          string          `json:"working_days"`
	BaseSalary           decimal.Decimal `json:"base_salary"`
	BaseBonus            decimal.Decimal `json:"base_bonus"`
	MedicalInsurance     decimal.Decimal `json:"medical_insurance"`
	SocialInsurance      decimal.Decimal `json:"social_insurance"`
	MealAllowance        decimal.Decimal `json:"meal_allowance"`
	AnnualLeaveBalance   decimal.Decimal `json:"annual_leave_balance"`
	MonthlyLateAllowance int             `json:"monthly_late_allowance"`
	ViolationsTotal      decimal.Decimal `json:"violations_total"`
	ViolationsDeduction  decimal.Decimal `json:"violations_deduction"`
	AdvancesTotal        decimal.Decimal `json:"advances_total"`
	AdvancesDeduction    decimal.Decimal `json:"advances_deduction"`
	NetSalary            decimal.Decimal `json:"net_salary"`
	CreatedAt            string          `json:"created_at"`
	UpdatedAt            string          `json:"updated_at"`
}
