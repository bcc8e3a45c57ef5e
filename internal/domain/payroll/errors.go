package payroll

import "errors"

var (
	ErrNoEmployees      = errors.New("no employees match the report filter")
	ErrInvalidDateRange = errors.New("start date must not be after end date")
)
