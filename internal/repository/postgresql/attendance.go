package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/sayed-elhawary/app-2/internal/domain/attendance"
	"github.com/sayed-elhawary/app-2/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.FactRepository {
	return &attendanceRepository{db: db}
}

const factColumns = `id, employee_code, employee_name, date, check_in, check_out, status,
	   shift_type, working_days, worked_friday, late_minutes, deducted_days,
	   work_hours, extra_hours, extra_hours_compensation, hours_deduction,
	   calculated_work_days, friday_bonus, total_extra_hours,
	   leave_compensation, medical_leave_deduction,
	   annual_leave_balance, monthly_late_allowance,
	   created_at, updated_at`

func scanFact(row pgx.Row) (attendance.Fact, error) {
	var f attendance.Fact
	err := row.Scan(
		&f.ID, &f.EmployeeCode, &f.EmployeeName, &f.Date, &f.CheckIn, &f.CheckOut, &f.Status,
		&f.ShiftType, &f.WorkingDays, &f.WorkedFriday, &f.LateMinutes, &f.DeductedDays,
		&f.WorkHours, &f.ExtraHours, &f.ExtraHoursCompensation, &f.HoursDeduction,
		&f.CalculatedWorkDays, &f.FridayBonus, &f.TotalExtraHours,
		&f.LeaveCompensation, &f.MedicalLeaveDeduction,
		&f.AnnualLeaveBalance, &f.MonthlyLateAllowance,
		&f.CreatedAt, &f.UpdatedAt,
	)
	return f, err
}

// GetByEmployeeAndDate implements attendance.FactRepository.
func (r *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeCode string, date time.Time) (*attendance.Fact, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + factColumns + `
		FROM attendance_facts
		WHERE employee_code = $1 AND date = $2
		LIMIT 1
	`

	f, err := scanFact(q.QueryRow(ctx, query, employeeCode, date))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance fact: %w", err)
	}
	return &f, nil
}

// ListByEmployee implements attendance.FactRepository.
func (r *attendanceRepository) ListByEmployee(ctx context.Context, employeeCode string, from, to time.Time) ([]attendance.Fact, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + factColumns + `
		FROM attendance_facts
		WHERE employee_code = $1 AND date >= $2 AND date <= $3
		ORDER BY date ASC
	`

	rows, err := q.Query(ctx, query, employeeCode, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance facts: %w", err)
	}
	defer rows.Close()

	var facts []attendance.Fact
	for rows.Next() {
		f, err := scanFact(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance fact: %w", err)
		}
		facts = append(facts, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance facts: %w", err)
	}

	return facts, nil
}

// Upsert implements attendance.FactRepository. The unique index on
// (employee_code, date) makes racing create attempts collapse into one row.
func (r *attendanceRepository) Upsert(ctx context.Context, fact attendance.Fact) (attendance.Fact, error) {
	q := GetQuerier(ctx, r.db)

	if fact.ID == "" {
		fact.ID = uuid.NewString()
	}

	query := `
		INSERT INTO attendance_facts (
			id, employee_code, employee_name, date, check_in, check_out, status,
			shift_type, working_days, worked_friday, late_minutes, deducted_days,
			work_hours, extra_hours, extra_hours_compensation, hours_deduction,
			calculated_work_days, friday_bonus, total_extra_hours,
			leave_compensation, medical_leave_deduction,
			annual_leave_balance, monthly_late_allowance
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19, $20,
			$21, $22, $23
		)
		ON CONFLICT (employee_code, date) DO UPDATE SET
			employee_name = EXCLUDED.employee_name,
			check_in = EXCLUDED.check_in,
			check_out = EXCLUDED.check_out,
			status = EXCLUDED.status,
			shift_type = EXCLUDED.shift_type,
			working_days = EXCLUDED.working_days,
			worked_friday = EXCLUDED.worked_friday,
			late_minutes = EXCLUDED.late_minutes,
			deducted_days = EXCLUDED.deducted_days,
			work_hours = EXCLUDED.work_hours,
			extra_hours = EXCLUDED.extra_hours,
			extra_hours_compensation = EXCLUDED.extra_hours_compensation,
			hours_deduction = EXCLUDED.hours_deduction,
			calculated_work_days = EXCLUDED.calculated_work_days,
			friday_bonus = EXCLUDED.friday_bonus,
			total_extra_hours = EXCLUDED.total_extra_hours,
			leave_compensation = EXCLUDED.leave_compensation,
			medical_leave_deduction = EXCLUDED.medical_leave_deduction,
			annual_leave_balance = EXCLUDED.annual_leave_balance,
			monthly_late_allowance = EXCLUDED.monthly_late_allowance,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		fact.ID, fact.EmployeeCode, fact.EmployeeName, fact.Date, fact.CheckIn, fact.CheckOut, fact.Status,
		fact.ShiftType, fact.WorkingDays, fact.WorkedFriday, fact.LateMinutes, fact.DeductedDays,
		fact.WorkHours, fact.ExtraHours, fact.ExtraHoursCompensation, fact.HoursDeduction,
		fact.CalculatedWorkDays, fact.FridayBonus, fact.TotalExtraHours,
		fact.LeaveCompensation, fact.MedicalLeaveDeduction,
		fact.AnnualLeaveBalance, fact.MonthlyLateAllowance,
	).Scan(&fact.ID, &fact.CreatedAt, &fact.UpdatedAt)

	if err != nil {
		return attendance.Fact{}, fmt.Errorf("failed to upsert attendance fact: %w", err)
	}

	return fact, nil
}

// Delete implements attendance.FactRepository.
func (r *attendanceRepository) Delete(ctx context.Context, employeeCode string, date time.Time) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`DELETE FROM attendance_facts WHERE employee_code = $1 AND date = $2`,
		employeeCode, date,
	)
	if err != nil {
		return fmt.Errorf("failed to delete attendance fact: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrFactNotFound
	}
	return nil
}
