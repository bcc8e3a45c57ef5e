package response

import (
	"errors"
	"net/http"

	"github.com/sayed-elhawary/app-2/internal/domain/attendance"
	"github.com/sayed-elhawary/app-2/internal/domain/auth"
	"github.com/sayed-elhawary/app-2/internal/domain/employee"
	"github.com/sayed-elhawary/app-2/internal/domain/payroll"
	"github.com/sayed-elhawary/app-2/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")

	// Employee domain errors
	case errors.Is(err, employee.ErrPolicyNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrCodeExists):
		Conflict(w, "Employee code already exists")
	case errors.Is(err, employee.ErrViolationsDeductionExceedsTotal),
		errors.Is(err, employee.ErrAdvancesDeductionExceedsTotal):
		BadRequest(w, err.Error(), nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrFactNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrInvalidDateRange):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrUnauthorized):
		Forbidden(w, err.Error())

	// Payroll domain errors
	case errors.Is(err, payroll.ErrNoEmployees):
		NotFound(w, err.Error())
	case errors.Is(err, payroll.ErrInvalidDateRange):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
