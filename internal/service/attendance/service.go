package attendance

import (
	"context"
	"log/slog"
	"time"

	"github.com/sayed-elhawary/app-2/internal/domain/attendance"
	"github.com/sayed-elhawary/app-2/internal/domain/employee"
	"github.com/shopspring/decimal"
)

type factService struct {
	factRepo   attendance.FactRepository
	policyRepo employee.PolicyRepository
}

func NewFactService(factRepo attendance.FactRepository, policyRepo employee.PolicyRepository) attendance.FactService {
	return &factService{
		factRepo:   factRepo,
		policyRepo: policyRepo,
	}
}

// RecordDay implements attendance.FactService.
func (s *factService) RecordDay(ctx context.Context, req attendance.RecordDayRequest) (attendance.FactResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.FactResponse{}, err
	}

	// A missing policy is fatal: daily salary and hourly rate cannot be
	// derived without it.
	policy, err := s.policyRepo.GetByCode(ctx, req.EmployeeCode)
	if err != nil {
		return attendance.FactResponse{}, err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return attendance.FactResponse{}, err
	}
	date = normalizeDate(date)

	fact, err := s.factRepo.GetByEmployeeAndDate(ctx, req.EmployeeCode, date)
	if err != nil {
		return attendance.FactResponse{}, err
	}
	if fact == nil {
		fact = &attendance.Fact{
			EmployeeCode:         policy.Code,
			EmployeeName:         policy.Name,
			Date:                 date,
			ShiftType:            policy.ShiftType,
			WorkingDays:          policy.WorkingDays,
			AnnualLeaveBalance:   policy.AnnualLeaveBalance,
			MonthlyLateAllowance: policy.MonthlyLateAllowance,
		}
	}

	// Raw inputs only; every derived field is recomputed below.
	if req.CheckIn != nil {
		fact.CheckIn = nilIfEmpty(req.CheckIn)
	}
	if req.CheckOut != nil {
		fact.CheckOut = nilIfEmpty(req.CheckOut)
	}
	if req.Status != nil {
		fact.Status = attendance.Status(*req.Status)
	}
	if req.WorkedFriday != nil {
		fact.WorkedFriday = *req.WorkedFriday
	}
	if req.LateMinutes != nil {
		fact.LateMinutes = *req.LateMinutes
	}
	if req.DeductedDays != nil {
		fact.DeductedDays = *req.DeductedDays
	}
	if req.LeaveCompensation != nil {
		fact.LeaveCompensation = *req.LeaveCompensation
	}
	if req.MedicalLeaveDeduction != nil {
		fact.MedicalLeaveDeduction = *req.MedicalLeaveDeduction
	}

	stored, err := s.derive(ctx, fact, policy)
	if err != nil {
		return attendance.FactResponse{}, err
	}
	return toFactResponse(stored), nil
}

// Recompute implements attendance.FactService. It re-derives a stored fact
// from its own recorded inputs; unchanged inputs yield identical output.
func (s *factService) Recompute(ctx context.Context, employeeCode string, date time.Time) (attendance.FactResponse, error) {
	policy, err := s.policyRepo.GetByCode(ctx, employeeCode)
	if err != nil {
		return attendance.FactResponse{}, err
	}

	fact, err := s.factRepo.GetByEmployeeAndDate(ctx, employeeCode, normalizeDate(date))
	if err != nil {
		return attendance.FactResponse{}, err
	}
	if fact == nil {
		return attendance.FactResponse{}, attendance.ErrFactNotFound
	}

	stored, err := s.derive(ctx, fact, policy)
	if err != nil {
		return attendance.FactResponse{}, err
	}
	return toFactResponse(stored), nil
}

// derive runs the classifier, the work-time calculator, and the cumulative
// overtime re-scan, then persists the fact.
func (s *factService) derive(ctx context.Context, fact *attendance.Fact, policy employee.Policy) (attendance.Fact, error) {
	fact.Status = attendance.Classify(fact.Date, fact.WorkingDays, fact.ShiftType, fact)

	derived, err := attendance.ComputeDay(fact, policy.BaseSalary)
	if err != nil {
		return attendance.Fact{}, err
	}
	fact.Apply(derived)

	total, err := s.cumulativeExtraHours(ctx, fact)
	if err != nil {
		return attendance.Fact{}, err
	}
	fact.TotalExtraHours = total

	stored, err := s.factRepo.Upsert(ctx, *fact)
	if err != nil {
		return attendance.Fact{}, err
	}

	slog.Debug("attendance fact derived",
		"employee_code", stored.EmployeeCode,
		"date", stored.Date.Format("2006-01-02"),
		"status", stored.Status,
		"work_hours", stored.WorkHours,
		"extra_hours", stored.ExtraHours,
		"total_extra_hours", stored.TotalExtraHours,
	)
	return stored, nil
}

// cumulativeExtraHours re-sums qualifying extra hours from the start of the
// fact's month up to (but not including) its date, plus the fact's own extra
// hours when it qualifies itself. A full re-scan on every write keeps the
// figure correct under out-of-order writes.
func (s *factService) cumulativeExtraHours(ctx context.Context, fact *attendance.Fact) (decimal.Decimal, error) {
	monthStart := time.Date(fact.Date.Year(), fact.Date.Month(), 1, 0, 0, 0, 0, fact.Date.Location())
	dayBefore := fact.Date.AddDate(0, 0, -1)

	total := decimal.Zero
	if !dayBefore.Before(monthStart) {
		prior, err := s.factRepo.ListByEmployee(ctx, fact.EmployeeCode, monthStart, dayBefore)
		if err != nil {
			return decimal.Zero, err
		}
		for i := range prior {
			if prior[i].QualifiesForCumulativeOvertime() {
				total = total.Add(prior[i].ExtraHours)
			}
		}
	}
	if fact.QualifiesForCumulativeOvertime() {
		total = total.Add(fact.ExtraHours)
	}
	return total.Round(2), nil
}

// GetDay implements attendance.FactService.
func (s *factService) GetDay(ctx context.Context, employeeCode string, date time.Time) (attendance.FactResponse, error) {
	fact, err := s.factRepo.GetByEmployeeAndDate(ctx, employeeCode, normalizeDate(date))
	if err != nil {
		return attendance.FactResponse{}, err
	}
	if fact == nil {
		return attendance.FactResponse{}, attendance.ErrFactNotFound
	}
	return toFactResponse(*fact), nil
}

// ListDays implements attendance.FactService.
func (s *factService) ListDays(ctx context.Context, filter attendance.FactFilter) ([]attendance.FactResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	from, _ := time.Parse("2006-01-02", filter.StartDate)
	to, _ := time.Parse("2006-01-02", filter.EndDate)
	if from.After(to) {
		return nil, attendance.ErrInvalidDateRange
	}

	facts, err := s.factRepo.ListByEmployee(ctx, filter.EmployeeCode, normalizeDate(from), normalizeDate(to))
	if err != nil {
		return nil, err
	}

	responses := make([]attendance.FactResponse, 0, len(facts))
	for i := range facts {
		responses = append(responses, toFactResponse(facts[i]))
	}
	return responses, nil
}

// DeleteDay implements attendance.FactService.
func (s *factService) DeleteDay(ctx context.Context, employeeCode string, date time.Time) error {
	return s.factRepo.Delete(ctx, employeeCode, normalizeDate(date))
}

// normalizeDate strips the time-of-day so day identity never depends on it.
func normalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func nilIfEmpty(v *string) *string {
	if v == nil || *v == "" {
		return nil
	}
	return v
}

func toFactResponse(f attendance.Fact) attendance.FactResponse {
	return attendance.FactResponse{
		ID:                     f.ID,
		EmployeeCode:           f.EmployeeCode,
		EmployeeName:           f.EmployeeName,
		Date:                   f.Date.Format("2006-01-02"),
		CheckIn:                f.CheckIn,
		CheckOut:               f.CheckOut,
		Status:                 f.Status,
		ShiftType:              string(f.ShiftType),
		WorkingDays:            string(f.WorkingDays),
		WorkedFriday:           f.WorkedFriday,
		LateMinutes:            f.LateMinutes,
		DeductedDays:           f.DeductedDays.Round(2),
		WorkHours:              f.WorkHours.Round(2),
		ExtraHours:             f.ExtraHours.Round(2),
		ExtraHoursCompensation: f.ExtraHoursCompensation.Round(2),
		HoursDeduction:         f.HoursDeduction.Round(2),
		CalculatedWorkDays:     f.CalculatedWorkDays,
		FridayBonus:            f.FridayBonus.Round(2),
		TotalExtraHours:        f.TotalExtraHours.Round(2),
		LeaveCompensation:      f.LeaveCompensation.Round(2),
		MedicalLeaveDeduction:  f.MedicalLeaveDeduction.Round(2),
		AnnualLeaveBalance:     f.AnnualLeaveBalance.Round(2),
		MonthlyLateAllowance:   f.MonthlyLateAllowance,
	}
}
