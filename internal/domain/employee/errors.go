package employee

import "errors"

// Employee domain errors
var (
	ErrPolicyNotFound = errors.New("employee not found")
	ErrCodeExists     = errors.New("employee code already exists")

	ErrViolationsDeductionExceedsTotal = errors.New("violations deduction cannot exceed total violations")
	ErrAdvancesDeductionExceedsTotal   = errors.New("advances deduction cannot exceed total advances")
)
