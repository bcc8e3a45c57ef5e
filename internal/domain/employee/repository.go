package employee

import "context"

// PolicyFilter narrows List results. Zero values mean no filtering.
type PolicyFilter struct {
	Code      string
	ShiftType string
}

// PolicyRepository defines data access for employee policies.
type PolicyRepository interface {
	Create(ctx context.Context, policy Policy) (Policy, error)
	GetByID(ctx context.Context, id string) (Policy, error)
	GetByCode(ctx context.Context, code string) (Policy, error)
	List(ctx context.Context, filter PolicyFilter) ([]Policy, error)
	Update(ctx context.Context, policy Policy) (Policy, error)
	Delete(ctx context.Context, id string) error
	ExistsByCode(ctx context.Context, code string, excludeID string) (bool, error)

	// ResetMonthlyLateAllowance sets the late allowance back to its default
	// for one employee code, or for every employee when code is empty.
	// Idempotent.
	ResetMonthlyLateAllowance(ctx context.Context, code string, value int) error

	// ResetAnnualLeaveBalance sets the leave balance back to its default for
	// one employee code, or for every employee when code is empty. Idempotent.
	ResetAnnualLeaveBalance(ctx context.Context, code string, value int64) error
}
