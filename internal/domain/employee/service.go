package employee

import "context"

type PolicyService interface {
	Create(ctx context.Context, req *CreatePolicyRequest) (*PolicyResponse, error)
	GetByID(ctx context.Context, id string) (*PolicyResponse, error)
	GetByCode(ctx context.Context, code string) (*PolicyResponse, error)
	List(ctx context.Context, filter *PolicyFilter) ([]*PolicyResponse, error)
	Update(ctx context.Context, req *UpdatePolicyRequest) (*PolicyResponse, error)
	BulkUpdate(ctx context.Context, req *BulkUpdateRequest) (int, error)
	UpdateFinance(ctx context.Context, req *UpdateFinanceRequest) (*PolicyResponse, error)
	Delete(ctx context.Context, id string) error

	// ResetMonthlyLateAllowance and ResetAnnualLeaveBalance restore the
	// per-period allowances to their defaults. An empty code resets every
	// employee; both are safe to repeat.
	ResetMonthlyLateAllowance(ctx context.Context, code string) error
	ResetAnnualLeaveBalance(ctx context.Context, code string) error
}
