package attendance

import (
	"context"
	"time"
)

// FactRepository defines data access for attendance facts. A fact is
// logically unique per (employee code, date); Upsert must keep it that way
// even under racing create attempts.
type FactRepository interface {
	// GetByEmployeeAndDate returns nil (no error) when no fact is stored.
	GetByEmployeeAndDate(ctx context.Context, employeeCode string, date time.Time) (*Fact, error)

	// ListByEmployee returns the employee's facts with date in [from, to],
	// ordered by date ascending.
	ListByEmployee(ctx context.Context, employeeCode string, from, to time.Time) ([]Fact, error)

	// Upsert inserts or replaces the fact keyed by (employee code, date).
	// A duplicate create attempt is a no-op overwrite, never a second row.
	Upsert(ctx context.Context, fact Fact) (Fact, error)

	// Delete removes the fact for one employee-day.
	Delete(ctx context.Context, employeeCode string, date time.Time) error
}
