package payroll

import "context"

type SummaryService interface {
	// BuildSummary produces one summary row per matching employee over the
	// inclusive date range, synthesizing and persisting facts for days that
	// have none.
	BuildSummary(ctx context.Context, req *SummaryRequest) (*SummaryResponse, error)
}
