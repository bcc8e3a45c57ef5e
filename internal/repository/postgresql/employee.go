package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/sayed-elhawary/app-2/internal/domain/employee"
	"github.com/sayed-elhawary/app-2/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.PolicyRepository {
	return &employeeRepository{db: db}
}

const employeeColumns = `id, code, password_hash, name, department, role,
	   shift_type, working_days,
	   base_salary, base_bonus, medical_insurance, social_insurance, meal_allowance,
	   annual_leave_balance, monthly_late_allowance,
	   violations_total, violations_deduction, advances_total, advances_deduction,
	   net_salary, created_at, updated_at`

func scanEmployee(row pgx.Row) (employee.Policy, error) {
	var p employee.Policy
	err := row.Scan(
		&p.ID, &p.Code, &p.PasswordHash, &p.Name, &p.Department, &p.Role,
		&p.ShiftType, &p.WorkingDays,
		&p.BaseSalary, &p.BaseBonus, &p.MedicalInsurance, &p.SocialInsurance, &p.MealAllowance,
		&p.AnnualLeaveBalance, &p.MonthlyLateAllowance,
		&p.ViolationsTotal, &p.ViolationsDeduction, &p.AdvancesTotal, &p.AdvancesDeduction,
		&p.NetSalary, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

// Create implements employee.PolicyRepository.
func (r *employeeRepository) Create(ctx context.Context, policy employee.Policy) (employee.Policy, error) {
	q := GetQuerier(ctx, r.db)

	if policy.ID == "" {
		policy.ID = uuid.NewString()
	}

	query := `
		INSERT INTO employees (
			id, code, password_hash, name, department, role,
			shift_type, working_days,
			base_salary, base_bonus, medical_insurance, social_insurance, meal_allowance,
			annual_leave_balance, monthly_late_allowance,
			violations_total, violations_deduction, advances_total, advances_deduction,
			net_salary
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19, $20
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		policy.ID, policy.Code, policy.PasswordHash, policy.Name, policy.Department, policy.Role,
		policy.ShiftType, policy.WorkingDays,
		policy.BaseSalary, policy.BaseBonus, policy.MedicalInsurance, policy.SocialInsurance, policy.MealAllowance,
		policy.AnnualLeaveBalance, policy.MonthlyLateAllowance,
		policy.ViolationsTotal, policy.ViolationsDeduction, policy.AdvancesTotal, policy.AdvancesDeduction,
		policy.NetSalary,
	).Scan(&policy.CreatedAt, &policy.UpdatedAt)

	if err != nil {
		if strings.Contains(err.Error(), "employees_code_key") {
			return employee.Policy{}, employee.ErrCodeExists
		}
		return employee.Policy{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return policy, nil
}

// GetByID implements employee.PolicyRepository.
func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Policy, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`

	p, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Policy{}, employee.ErrPolicyNotFound
		}
		return employee.Policy{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return p, nil
}

// GetByCode implements employee.PolicyRepository.
func (r *employeeRepository) GetByCode(ctx context.Context, code string) (employee.Policy, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE code = $1`

	p, err := scanEmployee(q.QueryRow(ctx, query, code))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Policy{}, employee.ErrPolicyNotFound
		}
		return employee.Policy{}, fmt.Errorf("failed to get employee by code: %w", err)
	}
	return p, nil
}

// List implements employee.PolicyRepository.
func (r *employeeRepository) List(ctx context.Context, filter employee.PolicyFilter) ([]employee.Policy, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE 1=1`
	args := []interface{}{}
	argPos := 1

	if filter.Code != "" {
		query += fmt.Sprintf(" AND code = $%d", argPos)
		args = append(args, filter.Code)
		argPos++
	}
	if filter.ShiftType != "" && filter.ShiftType != "all" {
		query += fmt.Sprintf(" AND shift_type = $%d", argPos)
		args = append(args, filter.ShiftType)
		argPos++
	}
	query += " ORDER BY code ASC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var policies []employee.Policy
	for rows.Next() {
		p, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		policies = append(policies, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", err)
	}

	return policies, nil
}

// Update implements employee.PolicyRepository.
func (r *employeeRepository) Update(ctx context.Context, policy employee.Policy) (employee.Policy, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees SET
			code = $2, password_hash = $3, name = $4, department = $5, role = $6,
			shift_type = $7, working_days = $8,
			base_salary = $9, base_bonus = $10, medical_insurance = $11,
			social_insurance = $12, meal_allowance = $13,
			annual_leave_balance = $14, monthly_late_allowance = $15,
			violations_total = $16, violations_deduction = $17,
			advances_total = $18, advances_deduction = $19,
			net_salary = $20, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		policy.ID, policy.Code, policy.PasswordHash, policy.Name, policy.Department, policy.Role,
		policy.ShiftType, policy.WorkingDays,
		policy.BaseSalary, policy.BaseBonus, policy.MedicalInsurance, policy.SocialInsurance, policy.MealAllowance,
		policy.AnnualLeaveBalance, policy.MonthlyLateAllowance,
		policy.ViolationsTotal, policy.ViolationsDeduction, policy.AdvancesTotal, policy.AdvancesDeduction,
		policy.NetSalary,
	).Scan(&policy.UpdatedAt)

	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Policy{}, employee.ErrPolicyNotFound
		}
		if strings.Contains(err.Error(), "employees_code_key") {
			return employee.Policy{}, employee.ErrCodeExists
		}
		return employee.Policy{}, fmt.Errorf("failed to update employee: %w", err)
	}

	return policy, nil
}

// Delete implements employee.PolicyRepository.
func (r *employeeRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrPolicyNotFound
	}
	return nil
}

// ExistsByCode implements employee.PolicyRepository.
func (r *employeeRepository) ExistsByCode(ctx context.Context, code string, excludeID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM employees WHERE code = $1 AND id != $2)`,
		code, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check employee code: %w", err)
	}
	return exists, nil
}

// ResetMonthlyLateAllowance implements employee.PolicyRepository.
func (r *employeeRepository) ResetMonthlyLateAllowance(ctx context.Context, code string, value int) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE employees SET monthly_late_allowance = $1, updated_at = NOW()`
	args := []interface{}{value}
	if code != "" {
		query += ` WHERE code = $2`
		args = append(args, code)
	}

	if _, err := q.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to reset monthly late allowance: %w", err)
	}
	return nil
}

// ResetAnnualLeaveBalance implements employee.PolicyRepository.
func (r *employeeRepository) ResetAnnualLeaveBalance(ctx context.Context, code string, value int64) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE employees SET annual_leave_balance = $1, updated_at = NOW()`
	args := []interface{}{value}
	if code != "" {
		query += ` WHERE code = $2`
		args = append(args, code)
	}

	if _, err := q.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to reset annual leave balance: %w", err)
	}
	return nil
}
