package employee

import (
	"context"
	"fmt"
	"testing"

	"github.com/sayed-elhawary/app-2/internal/domain/employee"
	"github.com/sayed-elhawary/app-2/internal/domain/shift"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakePolicyRepo struct {
	policies []employee.Policy
	nextID   int
}

func (r *fakePolicyRepo) Create(_ context.Context, p employee.Policy) (employee.Policy, error) {
	if p.ID == "" {
		r.nextID++
		p.ID = fmt.Sprintf("id-%d", r.nextID)
	}
	r.policies = append(r.policies, p)
	return p, nil
}

func (r *fakePolicyRepo) GetByID(_ context.Context, id string) (employee.Policy, error) {
	for _, p := range r.policies {
		if p.ID == id {
			return p, nil
		}
	}
	return employee.Policy{}, employee.ErrPolicyNotFound
}

func (r *fakePolicyRepo) GetByCode(_ context.Context, code string) (employee.Policy, error) {
	for _, p := range r.policies {
		if p.Code == code {
			return p, nil
		}
	}
	return employee.Policy{}, employee.ErrPolicyNotFound
}

func (r *fakePolicyRepo) List(_ context.Context, filter employee.PolicyFilter) ([]employee.Policy, error) {
	var out []employee.Policy
	for _, p := range r.policies {
		if filter.Code != "" && p.Code != filter.Code {
			continue
		}
		if filter.ShiftType != "" && filter.ShiftType != "all" && string(p.ShiftType) != filter.ShiftType {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *fakePolicyRepo) Update(_ context.Context, p employee.Policy) (employee.Policy, error) {
	for i := range r.policies {
		if r.policies[i].ID == p.ID {
			r.policies[i] = p
			return p, nil
		}
	}
	return employee.Policy{}, employee.ErrPolicyNotFound
}

func (r *fakePolicyRepo) Delete(_ context.Context, id string) error {
	for i := range r.policies {
		if r.policies[i].ID == id {
			r.policies = append(r.policies[:i], r.policies[i+1:]...)
			return nil
		}
	}
	return employee.ErrPolicyNotFound
}

func (r *fakePolicyRepo) ExistsByCode(_ context.Context, code string, excludeID string) (bool, error) {
	for _, p := range r.policies {
		if p.Code == code && p.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakePolicyRepo) ResetMonthlyLateAllowance(_ context.Context, code string, value int) error {
	for i := range r.policies {
		if code == "" || r.policies[i].Code == code {
			r.policies[i].MonthlyLateAllowance = value
		}
	}
	return nil
}

func (r *fakePolicyRepo) ResetAnnualLeaveBalance(_ context.Context, code string, value int64) error {
	for i := range r.policies {
		if code == "" || r.policies[i].Code == code {
			r.policies[i].AnnualLeaveBalance = decimal.NewFromInt(value)
		}
	}
	return nil
}

func createRequest(code string) *employee.CreatePolicyRequest {
	return &employee.CreatePolicyRequest{
		Code:        code,
		Password:    "secret1",
		Name:        "Employee " + code,
		ShiftType:   string(shift.Administrative),
		WorkingDays: string(shift.SixDays),
		BaseSalary:  decimal.NewFromInt(3000),
	}
}

func TestCreate_AppliesDefaults(t *testing.T) {
	repo := &fakePolicyRepo{}
	svc := NewPolicyService(nil, repo)

	resp, err := svc.Create(context.Background(), createRequest("1001"))
	require.NoError(t, err)

	assert.Equal(t, employee.RoleUser, resp.Role)
	assert.True(t, resp.MealAllowance.Equal(employee.DefaultMealAllowance))
	assert.True(t, resp.AnnualLeaveBalance.Equal(employee.DefaultAnnualLeaveBalance))
	assert.Equal(t, employee.DefaultMonthlyLateAllowance, resp.MonthlyLateAllowance)

	stored, err := repo.GetByCode(context.Background(), "1001")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret1")))
	assert.NotEqual(t, "secret1", stored.PasswordHash)
}

func TestCreate_DuplicateCode(t *testing.T) {
	repo := &fakePolicyRepo{}
	svc := NewPolicyService(nil, repo)

	_, err := svc.Create(context.Background(), createRequest("1001"))
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), createRequest("1001"))
	assert.ErrorIs(t, err, employee.ErrCodeExists)
}

func TestCreate_RejectsShortPassword(t *testing.T) {
	svc := NewPolicyService(nil, &fakePolicyRepo{})

	req := createRequest("1001")
	req.Password = "abc"
	_, err := svc.Create(context.Background(), req)
	assert.Error(t, err)
}

func TestUpdate_ClampsNegativeMoney(t *testing.T) {
	repo := &fakePolicyRepo{}
	svc := NewPolicyService(nil, repo)

	created, err := svc.Create(context.Background(), createRequest("1001"))
	require.NoError(t, err)

	negative := decimal.NewFromInt(-100)
	resp, err := svc.Update(context.Background(), &employee.UpdatePolicyRequest{
		ID:            created.ID,
		BaseSalary:    &negative,
		MealAllowance: &negative,
	})
	require.NoError(t, err)

	assert.True(t, resp.BaseSalary.IsZero())
	assert.True(t, resp.MealAllowance.IsZero())
}

func TestUpdate_CodeCollision(t *testing.T) {
	repo := &fakePolicyRepo{}
	svc := NewPolicyService(nil, repo)

	_, err := svc.Create(context.Background(), createRequest("1001"))
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), createRequest("1002"))
	require.NoError(t, err)

	taken := "1001"
	_, err = svc.Update(context.Background(), &employee.UpdatePolicyRequest{
		ID:   second.ID,
		Code: &taken,
	})
	assert.ErrorIs(t, err, employee.ErrCodeExists)
}

func TestBulkUpdate_SalaryRaiseWithExclusions(t *testing.T) {
	repo := &fakePolicyRepo{}
	svc := NewPolicyService(nil, repo)
	ctx := context.Background()

	first, err := svc.Create(ctx, createRequest("1001"))
	require.NoError(t, err)
	second, err := svc.Create(ctx, createRequest("1002"))
	require.NoError(t, err)

	pct := decimal.NewFromInt(10)
	updated, err := svc.BulkUpdate(ctx, &employee.BulkUpdateRequest{
		Type:        "base_salary",
		Percentage:  &pct,
		ExcludedIDs: []string{first.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, updated)

	raised, err := svc.GetByID(ctx, second.ID)
	require.NoError(t, err)
	assert.True(t, raised.BaseSalary.Equal(decimal.NewFromInt(3300)), "salary = %s", raised.BaseSalary)

	untouched, err := svc.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, untouched.BaseSalary.Equal(decimal.NewFromInt(3000)))
}

func TestBulkUpdate_ShiftTypeFilter(t *testing.T) {
	repo := &fakePolicyRepo{}
	svc := NewPolicyService(nil, repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, createRequest("1001"))
	require.NoError(t, err)
	stationReq := createRequest("2001")
	stationReq.ShiftType = string(shift.DayStation)
	_, err = svc.Create(ctx, stationReq)
	require.NoError(t, err)

	allowance := 60
	station := string(shift.DayStation)
	updated, err := svc.BulkUpdate(ctx, &employee.BulkUpdateRequest{
		Type:                 "monthly_late_allowance",
		MonthlyLateAllowance: &allowance,
		ShiftType:            &station,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, updated)

	adminSide, err := svc.GetByCode(ctx, "1001")
	require.NoError(t, err)
	assert.Equal(t, employee.DefaultMonthlyLateAllowance, adminSide.MonthlyLateAllowance)
}

func TestUpdateFinance_DeductionBounds(t *testing.T) {
	repo := &fakePolicyRepo{}
	svc := NewPolicyService(nil, repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, createRequest("1001"))
	require.NoError(t, err)

	total := decimal.NewFromInt(100)
	tooMuch := decimal.NewFromInt(200)
	_, err = svc.UpdateFinance(ctx, &employee.UpdateFinanceRequest{
		ID:                  created.ID,
		ViolationsTotal:     &total,
		ViolationsDeduction: &tooMuch,
	})
	assert.ErrorIs(t, err, employee.ErrViolationsDeductionExceedsTotal)

	_, err = svc.UpdateFinance(ctx, &employee.UpdateFinanceRequest{
		ID:                created.ID,
		AdvancesTotal:     &total,
		AdvancesDeduction: &tooMuch,
	})
	assert.ErrorIs(t, err, employee.ErrAdvancesDeductionExceedsTotal)

	ok := decimal.NewFromInt(50)
	resp, err := svc.UpdateFinance(ctx, &employee.UpdateFinanceRequest{
		ID:                created.ID,
		AdvancesTotal:     &total,
		AdvancesDeduction: &ok,
	})
	require.NoError(t, err)
	assert.True(t, resp.AdvancesDeduction.Equal(ok))
}

func TestResets_RestoreDefaults(t *testing.T) {
	repo := &fakePolicyRepo{}
	svc := NewPolicyService(nil, repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, createRequest("1001"))
	require.NoError(t, err)

	zeroAllowance := 0
	zeroBalance := decimal.Zero
	_, err = svc.Update(ctx, &employee.UpdatePolicyRequest{
		ID:                   created.ID,
		MonthlyLateAllowance: &zeroAllowance,
		AnnualLeaveBalance:   &zeroBalance,
	})
	require.NoError(t, err)

	require.NoError(t, svc.ResetMonthlyLateAllowance(ctx, ""))
	require.NoError(t, svc.ResetAnnualLeaveBalance(ctx, ""))

	resp, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, employee.DefaultMonthlyLateAllowance, resp.MonthlyLateAllowance)
	assert.True(t, resp.AnnualLeaveBalance.Equal(employee.DefaultAnnualLeaveBalance))
}
