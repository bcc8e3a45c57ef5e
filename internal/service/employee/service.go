package employee

import (
	"context"
	"log/slog"

	"github.com/sayed-elhawary/app-2/internal/domain/employee"
	"github.com/sayed-elhawary/app-2/internal/domain/shift"
	"github.com/sayed-elhawary/app-2/internal/pkg/database"
	"github.com/sayed-elhawary/app-2/internal/repository/postgresql"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

type policyService struct {
	db         *database.DB
	policyRepo employee.PolicyRepository
}

func NewPolicyService(db *database.DB, policyRepo employee.PolicyRepository) employee.PolicyService {
	return &policyService{
		db:         db,
		policyRepo: policyRepo,
	}
}

// inTransaction runs fn inside a database transaction. A nil db runs it
// without one.
func (s *policyService) inTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.db == nil {
		return fn(ctx)
	}
	return postgresql.WithTransaction(ctx, s.db, fn)
}

// Create implements employee.PolicyService.
func (s *policyService) Create(ctx context.Context, req *employee.CreatePolicyRequest) (*employee.PolicyResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.policyRepo.ExistsByCode(ctx, req.Code, "")
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, employee.ErrCodeExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	policy := employee.Policy{
		Code:                 req.Code,
		PasswordHash:         string(hash),
		Name:                 req.Name,
		Department:           req.Department,
		Role:                 employee.RoleUser,
		ShiftType:            shift.Type(req.ShiftType),
		WorkingDays:          shift.WorkingDays(req.WorkingDays),
		BaseSalary:           req.BaseSalary,
		BaseBonus:            req.BaseBonus,
		MedicalInsurance:     req.MedicalInsurance,
		SocialInsurance:      req.SocialInsurance,
		MealAllowance:        employee.DefaultMealAllowance,
		AnnualLeaveBalance:   employee.DefaultAnnualLeaveBalance,
		MonthlyLateAllowance: employee.DefaultMonthlyLateAllowance,
	}
	if req.MealAllowance != nil {
		policy.MealAllowance = *req.MealAllowance
	}
	if req.AnnualLeaveBalance != nil {
		policy.AnnualLeaveBalance = *req.AnnualLeaveBalance
	}
	if req.MonthlyLateAllowance != nil {
		policy.MonthlyLateAllowance = *req.MonthlyLateAllowance
	}
	policy.ClampNonNegative()

	created, err := s.policyRepo.Create(ctx, policy)
	if err != nil {
		return nil, err
	}

	slog.Info("employee created", "code", created.Code, "shift_type", created.ShiftType)
	return toPolicyResponse(created), nil
}

// GetByID implements employee.PolicyService.
func (s *policyService) GetByID(ctx context.Context, id string) (*employee.PolicyResponse, error) {
	policy, err := s.policyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toPolicyResponse(policy), nil
}

// GetByCode implements employee.PolicyService.
func (s *policyService) GetByCode(ctx context.Context, code string) (*employee.PolicyResponse, error) {
	policy, err := s.policyRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return toPolicyResponse(policy), nil
}

// List implements employee.PolicyService.
func (s *policyService) List(ctx context.Context, filter *employee.PolicyFilter) ([]*employee.PolicyResponse, error) {
	policies, err := s.policyRepo.List(ctx, *filter)
	if err != nil {
		return nil, err
	}

	responses := make([]*employee.PolicyResponse, 0, len(policies))
	for i := range policies {
		responses = append(responses, toPolicyResponse(policies[i]))
	}
	return responses, nil
}

// Update implements employee.PolicyService.
func (s *policyService) Update(ctx context.Context, req *employee.UpdatePolicyRequest) (*employee.PolicyResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	policy, err := s.policyRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Code != nil && *req.Code != policy.Code {
		exists, err := s.policyRepo.ExistsByCode(ctx, *req.Code, policy.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, employee.ErrCodeExists
		}
		policy.Code = *req.Code
	}
	if req.Password != nil && *req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		policy.PasswordHash = string(hash)
	}
	if req.Name != nil {
		policy.Name = *req.Name
	}
	if req.Department != nil {
		policy.Department = *req.Department
	}
	if req.ShiftType != nil {
		policy.ShiftType = shift.Type(*req.ShiftType)
	}
	if req.WorkingDays != nil {
		policy.WorkingDays = shift.WorkingDays(*req.WorkingDays)
	}
	if req.BaseSalary != nil {
		policy.BaseSalary = *req.BaseSalary
	}
	if req.BaseBonus != nil {
		policy.BaseBonus = *req.BaseBonus
	}
	if req.MedicalInsurance != nil {
		policy.MedicalInsurance = *req.MedicalInsurance
	}
	if req.SocialInsurance != nil {
		policy.SocialInsurance = *req.SocialInsurance
	}
	if req.MealAllowance != nil {
		policy.MealAllowance = *req.MealAllowance
	}
	if req.AnnualLeaveBalance != nil {
		policy.AnnualLeaveBalance = *req.AnnualLeaveBalance
	}
	if req.MonthlyLateAllowance != nil {
		policy.MonthlyLateAllowance = *req.MonthlyLateAllowance
	}
	policy.ClampNonNegative()

	updated, err := s.policyRepo.Update(ctx, policy)
	if err != nil {
		return nil, err
	}
	return toPolicyResponse(updated), nil
}

// BulkUpdate implements employee.PolicyService. It applies one field change
// across every employee matching the optional shift filter, skipping any
// explicitly excluded IDs, all inside one transaction. Returns the number
// of employees updated.
func (s *policyService) BulkUpdate(ctx context.Context, req *employee.BulkUpdateRequest) (int, error) {
	if err := req.Validate(); err != nil {
		return 0, err
	}

	excluded := make(map[string]bool, len(req.ExcludedIDs))
	for _, id := range req.ExcludedIDs {
		excluded[id] = true
	}

	updated := 0
	err := s.inTransaction(ctx, func(txCtx context.Context) error {
		filter := employee.PolicyFilter{}
		if req.ShiftType != nil {
			filter.ShiftType = *req.ShiftType
		}
		policies, err := s.policyRepo.List(txCtx, filter)
		if err != nil {
			return err
		}

		for i := range policies {
			policy := policies[i]
			if excluded[policy.ID] {
				continue
			}

			switch req.Type {
			case "base_salary":
				// Percentage raise: 10 means +10%.
				factor := decimal.NewFromInt(1).Add(req.Percentage.Div(decimal.NewFromInt(100)))
				policy.BaseSalary = policy.BaseSalary.Mul(factor).Round(2)
			case "monthly_late_allowance":
				policy.MonthlyLateAllowance = *req.MonthlyLateAllowance
			case "annual_leave_balance":
				policy.AnnualLeaveBalance = *req.AnnualLeaveBalance
			case "base_bonus":
				policy.BaseBonus = *req.BaseBonus
			case "medical_insurance":
				policy.MedicalInsurance = *req.MedicalInsurance
			case "social_insurance":
				policy.SocialInsurance = *req.SocialInsurance
			}
			policy.ClampNonNegative()

			if _, err := s.policyRepo.Update(txCtx, policy); err != nil {
				return err
			}
			updated++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	slog.Info("bulk employee update applied", "type", req.Type, "updated", updated)
	return updated, nil
}

// UpdateFinance implements employee.PolicyService. A deduction exceeding its
// total is rejected before anything is written.
func (s *policyService) UpdateFinance(ctx context.Context, req *employee.UpdateFinanceRequest) (*employee.PolicyResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	policy, err := s.policyRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.ViolationsTotal != nil {
		policy.ViolationsTotal = *req.ViolationsTotal
	}
	if req.ViolationsDeduction != nil {
		policy.ViolationsDeduction = *req.ViolationsDeduction
	}
	if req.AdvancesTotal != nil {
		policy.AdvancesTotal = *req.AdvancesTotal
	}
	if req.AdvancesDeduction != nil {
		policy.AdvancesDeduction = *req.AdvancesDeduction
	}
	policy.ClampNonNegative()

	if policy.ViolationsDeduction.GreaterThan(policy.ViolationsTotal) {
		return nil, employee.ErrViolationsDeductionExceedsTotal
	}
	if policy.AdvancesDeduction.GreaterThan(policy.AdvancesTotal) {
		return nil, employee.ErrAdvancesDeductionExceedsTotal
	}

	updated, err := s.policyRepo.Update(ctx, policy)
	if err != nil {
		return nil, err
	}
	return toPolicyResponse(updated), nil
}

// Delete implements employee.PolicyService.
func (s *policyService) Delete(ctx context.Context, id string) error {
	return s.policyRepo.Delete(ctx, id)
}

// ResetMonthlyLateAllowance implements employee.PolicyService.
func (s *policyService) ResetMonthlyLateAllowance(ctx context.Context, code string) error {
	if err := s.policyRepo.ResetMonthlyLateAllowance(ctx, code, employee.DefaultMonthlyLateAllowance); err != nil {
		return err
	}
	slog.Info("monthly late allowance reset", "code", codeOrAll(code))
	return nil
}

// ResetAnnualLeaveBalance implements employee.PolicyService.
func (s *policyService) ResetAnnualLeaveBalance(ctx context.Context, code string) error {
	if err := s.policyRepo.ResetAnnualLeaveBalance(ctx, code, employee.DefaultAnnualLeaveBalance.IntPart()); err != nil {
		return err
	}
	slog.Info("annual leave balance reset", "code", codeOrAll(code))
	return nil
}

func codeOrAll(code string) string {
	if code == "" {
		return "all"
	}
	return code
}

func toPolicyResponse(p employee.Policy) *employee.PolicyResponse {
	return &employee.PolicyResponse{
		ID:                   p.ID,
		Code:                 p.Code,
		Name:                 p.Name,
		Department:           p.Department,
		Role:                 p.Role,
		ShiftType:            string(p.ShiftType),
		WorkingDays:          string(p.WorkingDays),
		BaseSalary:           p.BaseSalary.Round(2),
		BaseBonus:            p.BaseBonus.Round(2),
		MedicalInsurance:     p.MedicalInsurance.Round(2),
		SocialInsurance:      p.SocialInsurance.Round(2),
		MealAllowance:        p.MealAllowance.Round(2),
		AnnualLeaveBalance:   p.AnnualLeaveBalance.Round(2),
		MonthlyLateAllowance: p.MonthlyLateAllowance,
		ViolationsTotal:      p.ViolationsTotal.Round(2),
		ViolationsDeduction:  p.ViolationsDeduction.Round(2),
		AdvancesTotal:        p.AdvancesTotal.Round(2),
		AdvancesDeduction:    p.AdvancesDeduction.Round(2),
		NetSalary:            p.NetSalary.Round(2),
		CreatedAt:            p.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:            p.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
