package attendance

import "errors"

// Attendance domain errors
var (
	ErrFactNotFound     = errors.New("attendance record not found")
	ErrInvalidDateRange = errors.New("start date must not be after end date")
	ErrUnauthorized     = errors.New("unauthorized to access this attendance record")
)
