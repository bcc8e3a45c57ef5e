package attendance

import (
	"context"
	"time"
)

// FactService defines business logic for attendance facts. Every write goes
// through full re-derivation; there is no path that stores derived fields
// without recomputing them.
type FactService interface {
	// RecordDay creates or updates the fact for one employee-day from raw
	// inputs and re-derives every computed field.
	RecordDay(ctx context.Context, req RecordDayRequest) (FactResponse, error)

	// Recompute re-derives the stored fact for one employee-day from its own
	// recorded inputs. Recomputing from unchanged inputs yields identical
	// output.
	Recompute(ctx context.Context, employeeCode string, date time.Time) (FactResponse, error)

	// GetDay returns the stored fact for one employee-day.
	GetDay(ctx context.Context, employeeCode string, date time.Time) (FactResponse, error)

	// ListDays returns an employee's facts for an inclusive date range,
	// date ascending.
	ListDays(ctx context.Context, filter FactFilter) ([]FactResponse, error)

	// DeleteDay removes the fact for one employee-day.
	DeleteDay(ctx context.Context, employeeCode string, date time.Time) error
}
