package attendance

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/sayed-elhawary/app-2/internal/domain/attendance"
	"github.com/sayed-elhawary/app-2/internal/domain/employee"
	"github.com/sayed-elhawary/app-2/internal/domain/shift"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFactRepo struct {
	facts map[string]attendance.Fact
}

func newFakeFactRepo() *fakeFactRepo {
	return &fakeFactRepo{facts: make(map[string]attendance.Fact)}
}

func factKey(code string, date time.Time) string {
	return code + "|" + date.Format("2006-01-02")
}

func (r *fakeFactRepo) GetByEmployeeAndDate(_ context.Context, code string, date time.Time) (*attendance.Fact, error) {
	f, ok := r.facts[factKey(code, date)]
	if !ok {
		return nil, nil
	}
	return &f, nil
}

func (r *fakeFactRepo) ListByEmployee(_ context.Context, code string, from, to time.Time) ([]attendance.Fact, error) {
	var out []attendance.Fact
	for _, f := range r.facts {
		if f.EmployeeCode != code || f.Date.Before(from) || f.Date.After(to) {
			continue
		}
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *fakeFactRepo) Upsert(_ context.Context, fact attendance.Fact) (attendance.Fact, error) {
	key := factKey(fact.EmployeeCode, fact.Date)
	if existing, ok := r.facts[key]; ok {
		fact.ID = existing.ID
		fact.CreatedAt = existing.CreatedAt
	} else if fact.ID == "" {
		fact.ID = key
		fact.CreatedAt = time.Now()
	}
	fact.UpdatedAt = time.Now()
	r.facts[key] = fact
	return fact, nil
}

func (r *fakeFactRepo) Delete(_ context.Context, code string, date time.Time) error {
	key := factKey(code, date)
	if _, ok := r.facts[key]; !ok {
		return attendance.ErrFactNotFound
	}
	delete(r.facts, key)
	return nil
}

type fakePolicyRepo struct {
	policies map[string]employee.Policy
}

func newFakePolicyRepo(policies ...employee.Policy) *fakePolicyRepo {
	r := &fakePolicyRepo{policies: make(map[string]employee.Policy)}
	for _, p := range policies {
		r.policies[p.Code] = p
	}
	return r
}

func (r *fakePolicyRepo) Create(_ context.Context, p employee.Policy) (employee.Policy, error) {
	r.policies[p.Code] = p
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
	p, ok := r.policies[code]
	if !ok {
		return employee.Policy{}, employee.ErrPolicyNotFound
	}
	return p, nil
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
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (r *fakePolicyRepo) Update(_ context.Context, p employee.Policy) (employee.Policy, error) {
	for code, existing := range r.policies {
		if existing.ID == p.ID {
			delete(r.policies, code)
			r.policies[p.Code] = p
			return p, nil
		}
	}
	return employee.Policy{}, employee.ErrPolicyNotFound
}

func (r *fakePolicyRepo) Delete(_ context.Context, id string) error {
	for code, p := range r.policies {
		if p.ID == id {
			delete(r.policies, code)
			return nil
		}
	}
	return employee.ErrPolicyNotFound
}

func (r *fakePolicyRepo) ExistsByCode(_ context.Context, code string, excludeID string) (bool, error) {
	p, ok := r.policies[code]
	if !ok {
		return false, nil
	}
	return p.ID != excludeID, nil
}

func (r *fakePolicyRepo) ResetMonthlyLateAllowance(_ context.Context, code string, value int) error {
	for c, p := range r.policies {
		if code != "" && c != code {
			continue
		}
		p.MonthlyLateAllowance = value
		r.policies[c] = p
	}
	return nil
}

func (r *fakePolicyRepo) ResetAnnualLeaveBalance(_ context.Context, code string, value int64) error {
	for c, p := range r.policies {
		if code != "" && c != code {
			continue
		}
		p.AnnualLeaveBalance = decimal.NewFromInt(value)
		r.policies[c] = p
	}
	return nil
}

func testPolicy(code string, shiftType shift.Type) employee.Policy {
	return employee.Policy{
		ID:                   "id-" + code,
		Code:                 code,
		Name:                 "Employee " + code,
		ShiftType:            shiftType,
		WorkingDays:          shift.SixDays,
		BaseSalary:           decimal.NewFromInt(3000),
		MealAllowance:        decimal.NewFromInt(500),
		AnnualLeaveBalance:   decimal.NewFromInt(21),
		MonthlyLateAllowance: 120,
	}
}

func strPtr(s string) *string { return &s }

func TestRecordDay_DerivesAndPersists(t *testing.T) {
	factRepo := newFakeFactRepo()
	policyRepo := newFakePolicyRepo(testPolicy("1001", shift.RoundTheClock))
	svc := NewFactService(factRepo, policyRepo)

	resp, err := svc.RecordDay(context.Background(), attendance.RecordDayRequest{
		EmployeeCode: "1001",
		Date:         "2025-01-06",
		CheckIn:      strPtr("08:00"),
		CheckOut:     strPtr("20:00"),
	})
	require.NoError(t, err)

	assert.Equal(t, attendance.StatusPresent, resp.Status)
	assert.True(t, resp.WorkHours.Equal(decimal.NewFromInt(12)))
	assert.True(t, resp.ExtraHours.Equal(decimal.NewFromInt(3)))
	assert.True(t, resp.TotalExtraHours.Equal(decimal.NewFromInt(3)))
	assert.Equal(t, 1, resp.CalculatedWorkDays)

	stored, err := factRepo.GetByEmployeeAndDate(context.Background(), "1001", time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "Employee 1001", stored.EmployeeName)
}

func TestRecordDay_MissingPolicyIsFatal(t *testing.T) {
	svc := NewFactService(newFakeFactRepo(), newFakePolicyRepo())

	_, err := svc.RecordDay(context.Background(), attendance.RecordDayRequest{
		EmployeeCode: "9999",
		Date:         "2025-01-06",
		CheckIn:      strPtr("08:00"),
	})
	assert.ErrorIs(t, err, employee.ErrPolicyNotFound)
}

func TestRecordDay_ClassifierOverridesStatus(t *testing.T) {
	factRepo := newFakeFactRepo()
	policyRepo := newFakePolicyRepo(testPolicy("1001", shift.Administrative))
	svc := NewFactService(factRepo, policyRepo)

	// A check-in turns an explicit absent into present.
	resp, err := svc.RecordDay(context.Background(), attendance.RecordDayRequest{
		EmployeeCode: "1001",
		Date:         "2025-01-06",
		Status:       strPtr(string(attendance.StatusAbsent)),
		CheckIn:      strPtr("08:00"),
	})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPresent, resp.Status)

	// An explicit leave survives the presence signal.
	resp, err = svc.RecordDay(context.Background(), attendance.RecordDayRequest{
		EmployeeCode: "1001",
		Date:         "2025-01-07",
		Status:       strPtr(string(attendance.StatusLeave)),
		CheckIn:      strPtr("08:00"),
	})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusLeave, resp.Status)
}

func TestCumulativeOvertime_OutOfOrderWrites(t *testing.T) {
	factRepo := newFakeFactRepo()
	policyRepo := newFakePolicyRepo(testPolicy("1001", shift.RoundTheClock))
	svc := NewFactService(factRepo, policyRepo)
	ctx := context.Background()

	// Jan 7 first: 12h worked, 3 extra.
	resp, err := svc.RecordDay(ctx, attendance.RecordDayRequest{
		EmployeeCode: "1001",
		Date:         "2025-01-07",
		CheckIn:      strPtr("08:00"),
		CheckOut:     strPtr("20:00"),
	})
	require.NoError(t, err)
	assert.True(t, resp.TotalExtraHours.Equal(decimal.NewFromInt(3)))

	// Jan 6 arrives late: 14h worked, 5 extra. Its own total sees no
	// prior days.
	resp, err = svc.RecordDay(ctx, attendance.RecordDayRequest{
		EmployeeCode: "1001",
		Date:         "2025-01-06",
		CheckIn:      strPtr("08:00"),
		CheckOut:     strPtr("22:00"),
	})
	require.NoError(t, err)
	assert.True(t, resp.TotalExtraHours.Equal(decimal.NewFromInt(5)))

	// Recomputing Jan 7 folds the out-of-order write into its total.
	resp, err = svc.Recompute(ctx, "1001", time.Date(2025, 1, 7, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, resp.TotalExtraHours.Equal(decimal.NewFromInt(8)), "totalExtraHours = %s", resp.TotalExtraHours)
}

func TestCumulativeOvertime_AdministrativeNeverContributes(t *testing.T) {
	factRepo := newFakeFactRepo()
	policyRepo := newFakePolicyRepo(testPolicy("2001", shift.Administrative))
	svc := NewFactService(factRepo, policyRepo)
	ctx := context.Background()

	resp, err := svc.RecordDay(ctx, attendance.RecordDayRequest{
		EmployeeCode: "2001",
		Date:         "2025-01-06",
		CheckIn:      strPtr("08:00"),
		CheckOut:     strPtr("19:00"),
	})
	require.NoError(t, err)

	assert.True(t, resp.ExtraHours.GreaterThan(decimal.Zero))
	assert.True(t, resp.TotalExtraHours.IsZero(), "administrative extra hours never accumulate")
}

func TestCumulativeOvertime_MonthBoundary(t *testing.T) {
	factRepo := newFakeFactRepo()
	policyRepo := newFakePolicyRepo(testPolicy("1001", shift.RoundTheClock))
	svc := NewFactService(factRepo, policyRepo)
	ctx := context.Background()

	_, err := svc.RecordDay(ctx, attendance.RecordDayRequest{
		EmployeeCode: "1001",
		Date:         "2025-01-31",
		CheckIn:      strPtr("08:00"),
		CheckOut:     strPtr("20:00"),
	})
	require.NoError(t, err)

	// February starts from zero.
	resp, err := svc.RecordDay(ctx, attendance.RecordDayRequest{
		EmployeeCode: "1001",
		Date:         "2025-02-01",
		CheckIn:      strPtr("08:00"),
		CheckOut:     strPtr("21:00"),
	})
	require.NoError(t, err)
	assert.True(t, resp.TotalExtraHours.Equal(decimal.NewFromInt(4)), "totalExtraHours = %s", resp.TotalExtraHours)
}

func TestRecompute_Idempotent(t *testing.T) {
	factRepo := newFakeFactRepo()
	policyRepo := newFakePolicyRepo(testPolicy("1001", shift.DayStation))
	svc := NewFactService(factRepo, policyRepo)
	ctx := context.Background()

	first, err := svc.RecordDay(ctx, attendance.RecordDayRequest{
		EmployeeCode: "1001",
		Date:         "2025-01-03",
		CheckIn:      strPtr("07:00"),
		CheckOut:     strPtr("17:00"),
		WorkedFriday: func() *bool { b := true; return &b }(),
	})
	require.NoError(t, err)

	second, err := svc.Recompute(ctx, "1001", time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, first.Status, second.Status)
	assert.True(t, first.WorkHours.Equal(second.WorkHours))
	assert.True(t, first.ExtraHours.Equal(second.ExtraHours))
	assert.True(t, first.ExtraHoursCompensation.Equal(second.ExtraHoursCompensation))
	assert.True(t, first.FridayBonus.Equal(second.FridayBonus))
	assert.True(t, first.TotalExtraHours.Equal(second.TotalExtraHours))
}

func TestListDays_RejectsReversedRange(t *testing.T) {
	svc := NewFactService(newFakeFactRepo(), newFakePolicyRepo())

	_, err := svc.ListDays(context.Background(), attendance.FactFilter{
		EmployeeCode: "1001",
		StartDate:    "2025-02-01",
		EndDate:      "2025-01-01",
	})
	assert.ErrorIs(t, err, attendance.ErrInvalidDateRange)
}
