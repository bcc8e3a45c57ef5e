package http

import (
	"net/http"
	"time"

	"github.com/sayed-elhawary/app-2/internal/domain/employee"
	"github.com/sayed-elhawary/app-2/internal/domain/payroll"
	"github.com/sayed-elhawary/app-2/internal/handler/http/middleware"
	"github.com/sayed-elhawary/app-2/internal/handler/http/response"
)

type PayrollHandler struct {
	summaryService payroll.SummaryService
}

func NewPayrollHandler(summaryService payroll.SummaryService) PayrollHandler {
	return PayrollHandler{summaryService: summaryService}
}

// SalaryReport builds per-employee salary summaries over a date range.
// Non-admin callers are pinned to their own employee code; the date range
// defaults to the current month when omitted.
func (h *PayrollHandler) SalaryReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := payroll.SummaryRequest{
		Code:      q.Get("code"),
		StartDate: q.Get("start_date"),
		EndDate:   q.Get("end_date"),
		ShiftType: q.Get("shift_type"),
	}

	if employee.Role(middleware.ClaimRole(r)) != employee.RoleAdmin {
		req.Code = middleware.ClaimEmployeeCode(r)
		req.ShiftType = ""
	}

	if req.StartDate == "" && req.EndDate == "" {
		start, end := currentMonthRange()
		req.StartDate = start
		req.EndDate = end
	}

	resp, err := h.summaryService.BuildSummary(r.Context(), &req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

func currentMonthRange() (string, string) {
	now := time.Now().UTC()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return start.Format("2006-01-02"), end.Format("2006-01-02")
}
