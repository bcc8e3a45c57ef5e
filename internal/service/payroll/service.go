package payroll

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/sayed-elhawary/app-2/internal/domain/attendance"
	"github.com/sayed-elhawary/app-2/internal/domain/employee"
	"github.com/sayed-elhawary/app-2/internal/domain/payroll"
	"github.com/sayed-elhawary/app-2/internal/domain/shift"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// reportHourRate is the fixed overtime rate used by the reporting path.
// It deliberately differs from the hourly-rate-based compensation applied
// when a single fact is recorded; both figures are part of the contract.
var reportHourRate = decimal.NewFromFloat(25.93)

var (
	thirty     = decimal.NewFromInt(30)
	nine       = decimal.NewFromInt(attendance.NormalWorkHours)
	two        = decimal.NewFromInt(2)
	sixty      = decimal.NewFromInt(60)
	fifty      = decimal.NewFromInt(50)
	quarter    = decimal.NewFromFloat(0.25)
	maxWorkers = 8
)

type summaryService struct {
	factRepo   attendance.FactRepository
	policyRepo employee.PolicyRepository
}

func NewSummaryService(factRepo attendance.FactRepository, policyRepo employee.PolicyRepository) payroll.SummaryService {
	return &summaryService{
		factRepo:   factRepo,
		policyRepo: policyRepo,
	}
}

// BuildSummary implements payroll.SummaryService. Employees are processed in
// parallel; each employee's days are processed in ascending date order so
// the month-to-date overtime figure stays consistent.
func (s *summaryService) BuildSummary(ctx context.Context, req *payroll.SummaryRequest) (*payroll.SummaryResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)
	start = normalizeDate(start)
	end = normalizeDate(end)
	if start.After(end) {
		return nil, payroll.ErrInvalidDateRange
	}

	filter := employee.PolicyFilter{Code: req.Code}
	if req.ShiftType != "" && req.ShiftType != "all" {
		filter.ShiftType = req.ShiftType
	}
	policies, err := s.policyRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(policies) == 0 {
		if req.Code != "" {
			return nil, employee.ErrPolicyNotFound
		}
		return nil, payroll.ErrNoEmployees
	}

	summaries := make(map[string]*payroll.Summary, len(policies))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxWorkers)
	for i := range policies {
		policy := policies[i]
		g.Go(func() error {
			summary, err := s.buildEmployeeSummary(gctx, policy, start, end)
			if err != nil {
				return err
			}
			mu.Lock()
			summaries[policy.ID] = summary
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slog.Info("salary report generated",
		"employees", len(summaries),
		"start_date", req.StartDate,
		"end_date", req.EndDate,
	)
	return &payroll.SummaryResponse{Summaries: summaries}, nil
}

func (s *summaryService) buildEmployeeSummary(ctx context.Context, policy employee.Policy, start, end time.Time) (*payroll.Summary, error) {
	dailySalary := policy.BaseSalary.Div(thirty)
	hourlyRate := dailySalary.Div(nine)

	// Fetch back to the start of the range's month so the month-to-date
	// overtime of synthesized days includes days before the range.
	fetchFrom := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
	facts, err := s.factRepo.ListByEmployee(ctx, policy.Code, fetchFrom, end)
	if err != nil {
		return nil, err
	}

	byDate := make(map[string]*attendance.Fact, len(facts))
	ordered := make([]*attendance.Fact, 0, len(facts))
	for i := range facts {
		f := &facts[i]
		byDate[f.Date.Format("2006-01-02")] = f
		ordered = append(ordered, f)
	}

	// Synthesize and persist a fact for every day of the range that has
	// none, so later queries see a consistent record set. The repository
	// upsert makes a racing synthesis attempt collapse into a single row.
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		if _, ok := byDate[key]; ok {
			continue
		}
		f := &attendance.Fact{
			EmployeeCode:         policy.Code,
			EmployeeName:         policy.Name,
			Date:                 d,
			Status:               attendance.Classify(d, policy.WorkingDays, policy.ShiftType, nil),
			ShiftType:            policy.ShiftType,
			WorkingDays:          policy.WorkingDays,
			AnnualLeaveBalance:   policy.AnnualLeaveBalance,
			MonthlyLateAllowance: policy.MonthlyLateAllowance,
			TotalExtraHours:      priorQualifyingSum(ordered, d).Round(2),
		}
		stored, err := s.factRepo.Upsert(ctx, *f)
		if err != nil {
			return nil, err
		}
		*f = stored
		byDate[key] = f
		ordered = append(ordered, f)
	}

	// Ascending date order, then re-classify each day so the status
	// reflects the latest check-in/out and leave markers rather than a
	// possibly stale stored value.
	sortFactsByDate(ordered)

	var (
		presentDays       = decimal.Zero
		absentDays        int
		weeklyOffDays     int
		leaveDays         int
		officialLeaveDays int
		medicalLeaveDays  int
		totalLateMinutes  int

		totalWorkHours    = decimal.Zero
		totalExtraHours   = decimal.Zero
		totalExtraComp    = decimal.Zero
		totalHoursDed     = decimal.Zero
		totalFridayBonus  = decimal.Zero
		totalLeaveComp    = decimal.Zero
		totalMedicalDed   = decimal.Zero
		totalDeductedDays = decimal.Zero
	)

	for _, f := range ordered {
		if f.Date.Before(start) || f.Date.After(end) {
			continue
		}

		f.Status = attendance.Classify(f.Date, policy.WorkingDays, policy.ShiftType, f)
		calc, err := reportComputeDay(f, policy.ShiftType)
		if err != nil {
			return nil, err
		}

		switch f.Status {
		case attendance.StatusPresent:
			presentDays = presentDays.Add(decimal.NewFromInt(int64(calc.CalculatedWorkDays)))
			totalWorkHours = totalWorkHours.Add(calc.WorkHours)
			totalExtraHours = totalExtraHours.Add(calc.ExtraHours)
			totalExtraComp = totalExtraComp.Add(calc.ExtraHoursCompensation)
			totalHoursDed = totalHoursDed.Add(calc.HoursDeduction)
			totalFridayBonus = totalFridayBonus.Add(calc.FridayBonus)
			totalLateMinutes += f.LateMinutes
		case attendance.StatusAbsent:
			absentDays++
		case attendance.StatusWeeklyOff:
			weeklyOffDays++
		case attendance.StatusLeave:
			leaveDays++
			totalLeaveComp = totalLeaveComp.Add(f.LeaveCompensation)
		case attendance.StatusOfficialLeave:
			officialLeaveDays++
		case attendance.StatusMedicalLeave:
			medicalLeaveDays++
			if f.MedicalLeaveDeduction.IsZero() {
				// Unset medical-leave deduction defaults to a quarter of
				// the daily salary.
				totalMedicalDed = totalMedicalDed.Add(dailySalary.Mul(quarter))
			} else {
				totalMedicalDed = totalMedicalDed.Add(f.MedicalLeaveDeduction)
			}
		}

		totalDeductedDays = totalDeductedDays.Add(f.DeductedDays)
	}

	absent := decimal.NewFromInt(int64(absentDays))

	// Meal allowance deduction is capped by the allowance itself.
	mealAllowance := policy.MealAllowance
	mealDeduction := decimal.Min(absent.Mul(fifty), mealAllowance)
	remainingMeal := mealAllowance.Sub(mealDeduction)
	if remainingMeal.IsNegative() {
		remainingMeal = decimal.Zero
	}

	var deductedDayCount decimal.Decimal
	var totalDeductionsAmount decimal.Decimal
	if policy.ShiftType == shift.Administrative {
		deductedDayCount = absent.Add(totalDeductedDays)
		totalDeductionsAmount = absent.Mul(dailySalary).
			Add(totalDeductedDays.Mul(dailySalary)).
			Add(totalHoursDed.Mul(hourlyRate)).
			Add(policy.MedicalInsurance).
			Add(policy.SocialInsurance).
			Add(mealDeduction).
			Add(totalMedicalDed).
			Add(policy.ViolationsDeduction).
			Add(policy.AdvancesDeduction)
	} else {
		// Medical-leave deduction is reported but not re-added here.
		deductedDayCount = absent
		totalDeductionsAmount = absent.Mul(dailySalary).
			Add(totalHoursDed.Mul(hourlyRate)).
			Add(policy.MedicalInsurance).
			Add(policy.SocialInsurance).
			Add(mealDeduction).
			Add(policy.ViolationsDeduction).
			Add(policy.AdvancesDeduction)
	}

	netSalary := policy.BaseSalary.
		Add(policy.BaseBonus).
		Add(remainingMeal).
		Add(totalLeaveComp).
		Add(totalExtraComp).
		Add(totalFridayBonus).
		Sub(totalDeductionsAmount).
		Round(2)
	if netSalary.IsNegative() {
		netSalary = decimal.Zero
	}

	// Balances come from the newest fact in range; the policy is the
	// fallback when the range is empty.
	annualLeaveBalance := policy.AnnualLeaveBalance
	monthlyLateAllowance := policy.MonthlyLateAllowance
	if len(ordered) > 0 {
		last := ordered[len(ordered)-1]
		annualLeaveBalance = last.AnnualLeaveBalance
		monthlyLateAllowance = last.MonthlyLateAllowance
	}

	return &payroll.Summary{
		EmployeeCode: policy.Code,
		EmployeeName: policy.Name,
		ShiftType:    string(policy.ShiftType),
		WorkingDays:  string(policy.WorkingDays),

		BaseSalary: policy.BaseSalary.Round(2),
		BaseBonus:  policy.BaseBonus.Round(2),

		MealAllowance:          remainingMeal.Round(2),
		MealAllowanceDeduction: mealDeduction.Round(2),
		MedicalInsurance:       policy.MedicalInsurance.Round(2),
		SocialInsurance:        policy.SocialInsurance.Round(2),

		PresentDays:       presentDays,
		AbsentDays:        absentDays,
		WeeklyOffDays:     weeklyOffDays,
		LeaveDays:         leaveDays,
		OfficialLeaveDays: officialLeaveDays,
		MedicalLeaveDays:  medicalLeaveDays,
		TotalWorkDays:     presentDays,

		TotalLateMinutes: totalLateMinutes,

		TotalWorkHours:              totalWorkHours.Round(2),
		TotalExtraHours:             totalExtraHours.Round(2),
		TotalExtraHoursCompensation: totalExtraComp.Round(2),
		TotalHoursDeduction:         totalHoursDed.Round(2),
		TotalFridayBonus:            totalFridayBonus.Round(2),

		TotalLeaveCompensation:     totalLeaveComp.Round(2),
		TotalMedicalLeaveDeduction: totalMedicalDed.Round(2),
		DeductedDays:               totalDeductedDays.Round(2),

		ViolationsTotal:     policy.ViolationsTotal.Round(2),
		ViolationsDeduction: policy.ViolationsDeduction.Round(2),
		AdvancesTotal:       policy.AdvancesTotal.Round(2),
		AdvancesDeduction:   policy.AdvancesDeduction.Round(2),

		AnnualLeaveBalance:   annualLeaveBalance.Round(2),
		MonthlyLateAllowance: monthlyLateAllowance,

		TotalDeductions:       deductedDayCount.Round(2),
		TotalDeductionsAmount: totalDeductionsAmount.Round(2),
		NetSalary:             netSalary,
	}, nil
}

// reportComputeDay is the reporting path's work-time calculation. It shares
// the elapsed-time arithmetic with the record path but compensates every
// overtime hour at the fixed report rate, and on station-shift Fridays it
// doubles the worked hours as overtime instead of paying a Friday bonus.
func reportComputeDay(f *attendance.Fact, shiftType shift.Type) (attendance.Derived, error) {
	var d attendance.Derived
	isFriday := f.Date.Weekday() == time.Friday
	isWeeklyOff := f.Status == attendance.StatusWeeklyOff

	switch {
	case f.Status == attendance.StatusPresent && f.HasCheckIn() && f.HasCheckOut():
		in, err := attendance.ParseClock(*f.CheckIn)
		if err != nil {
			return attendance.Derived{}, fmt.Errorf("check-in for %s on %s: %w", f.EmployeeCode, f.Date.Format("2006-01-02"), err)
		}
		out, err := attendance.ParseClock(*f.CheckOut)
		if err != nil {
			return attendance.Derived{}, fmt.Errorf("check-out for %s on %s: %w", f.EmployeeCode, f.Date.Format("2006-01-02"), err)
		}

		elapsed := out - in
		if elapsed <= 0 {
			elapsed += 24 * 60
		}
		d.WorkHours = decimal.NewFromInt(int64(elapsed)).Div(sixty).Round(2)

		switch {
		case shiftType == shift.Administrative:
			if out > 17*60+30 {
				d.ExtraHours = decimal.NewFromInt(int64(out - (17*60 + 30))).Div(sixty).Round(2)
				d.ExtraHoursCompensation = d.ExtraHours.Mul(reportHourRate)
			} else if d.WorkHours.LessThan(nine) {
				d.HoursDeduction = nine.Sub(d.WorkHours).Round(2)
			}
			d.CalculatedWorkDays = 1

		case shiftType == shift.RoundTheClock:
			if d.WorkHours.GreaterThanOrEqual(nine) {
				d.ExtraHours = d.WorkHours.Sub(nine).Round(2)
				d.ExtraHoursCompensation = d.ExtraHours.Mul(reportHourRate)
			} else {
				d.HoursDeduction = nine.Sub(d.WorkHours).Round(2)
			}
			d.CalculatedWorkDays = 1

		case shiftType.IsStation():
			if isFriday {
				// Every worked Friday hour doubles as overtime; the day
				// itself does not count as a work day and carries no bonus.
				d.ExtraHours = d.WorkHours.Mul(two).Round(2)
				d.ExtraHoursCompensation = d.ExtraHours.Mul(reportHourRate)
			} else if d.WorkHours.GreaterThanOrEqual(nine) {
				d.ExtraHours = d.WorkHours.Sub(nine).Round(2)
				d.ExtraHoursCompensation = d.ExtraHours.Mul(reportHourRate)
				d.CalculatedWorkDays = 1
			} else {
				d.HoursDeduction = nine.Sub(d.WorkHours).Round(2)
				d.CalculatedWorkDays = 1
			}
		}

	case f.Status == attendance.StatusPresent:
		// Present with one or zero timestamps counts as a nominal day.
		d.WorkHours = nine
		d.CalculatedWorkDays = 1
	}

	if isWeeklyOff || (isFriday && shiftType.IsStation()) {
		d.HoursDeduction = decimal.Zero
	}

	return d, nil
}

// priorQualifyingSum is the month-to-date overtime for date d: qualifying
// extra hours over the same month's earlier days.
func priorQualifyingSum(facts []*attendance.Fact, d time.Time) decimal.Decimal {
	monthStart := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
	total := decimal.Zero
	for _, f := range facts {
		if f.Date.Before(monthStart) || !f.Date.Before(d) {
			continue
		}
		if f.QualifiesForCumulativeOvertime() {
			total = total.Add(f.ExtraHours)
		}
	}
	return total
}

func sortFactsByDate(facts []*attendance.Fact) {
	sort.Slice(facts, func(i, j int) bool {
		return facts[i].Date.Before(facts[j].Date)
	})
}

func normalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
