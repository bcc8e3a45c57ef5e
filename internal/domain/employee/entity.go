package employee

import (
	"time"

	"github.com/sayed-elhawary/app-2/internal/domain/shift"
	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Policy defaults applied on create and by the periodic resets.
var (
	DefaultMealAllowance        = decimal.NewFromInt(500)
	DefaultAnnualLeaveBalance   = decimal.NewFromInt(21)
	DefaultMonthlyLateAllowance = 120
)

// Policy is the per-employee configuration driving pay and scheduling rules.
// The employee code is the external identity; ID is the storage key.
type Policy struct {
	ID           string
	Code         string
	PasswordHash string
	Name         string
	Department   string
	Role         Role

	ShiftType   shift.Type
	WorkingDays shift.WorkingDays

	BaseSalary       decimal.Decimal
	BaseBonus        decimal.Decimal
	MedicalInsurance decimal.Decimal
	SocialInsurance  decimal.Decimal
	MealAllowance    decimal.Decimal

	AnnualLeaveBalance   decimal.Decimal
	MonthlyLateAllowance int

	ViolationsTotal     decimal.Decimal
	ViolationsDeduction decimal.Decimal
	AdvancesTotal       decimal.Decimal
	AdvancesDeduction   decimal.Decimal

	NetSalary decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ClampNonNegative forces every monetary and count field to zero when it
// went negative. Applied on every write; deduction-exceeds-total is a
// rejection, not a clamp, and is checked separately.
func (p *Policy) ClampNonNegative() {
	clamp := func(d *decimal.Decimal) {
		if d.IsNegative() {
			*d = decimal.Zero
		}
	}
	clamp(&p.BaseSalary)
	clamp(&p.BaseBonus)
	clamp(&p.MedicalInsurance)
	clamp(&p.SocialInsurance)
	clamp(&p.MealAllowance)
	clamp(&p.AnnualLeaveBalance)
	clamp(&p.ViolationsTotal)
	clamp(&p.ViolationsDeduction)
	clamp(&p.AdvancesTotal)
	clamp(&p.AdvancesDeduction)
	clamp(&p.NetSalary)
	if p.MonthlyLateAllowance < 0 {
		p.MonthlyLateAllowance = 0
	}
}
