package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sayed-elhawary/app-2/internal/domain/attendance"
	"github.com/sayed-elhawary/app-2/internal/domain/employee"
	"github.com/sayed-elhawary/app-2/internal/handler/http/middleware"
	"github.com/sayed-elhawary/app-2/internal/handler/http/response"
)

type AttendanceHandler struct {
	factService attendance.FactService
}

func NewAttendanceHandler(factService attendance.FactService) AttendanceHandler {
	return AttendanceHandler{factService: factService}
}

// RecordDay creates or updates one employee-day from raw inputs and
// re-derives every computed field.
func (h *AttendanceHandler) RecordDay(w http.ResponseWriter, r *http.Request) {
	var req attendance.RecordDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.factService.RecordDay(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance recorded", resp)
}

// Recompute re-derives a stored employee-day from its own recorded inputs.
func (h *AttendanceHandler) Recompute(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	date, err := time.Parse("2006-01-02", chi.URLParam(r, "date"))
	if err != nil {
		response.BadRequest(w, "Invalid date, want YYYY-MM-DD", nil)
		return
	}

	resp, err := h.factService.Recompute(r.Context(), code, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance recomputed", resp)
}

func (h *AttendanceHandler) GetDay(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	date, err := time.Parse("2006-01-02", chi.URLParam(r, "date"))
	if err != nil {
		response.BadRequest(w, "Invalid date, want YYYY-MM-DD", nil)
		return
	}

	if !h.canAccess(r, code) {
		response.HandleError(w, attendance.ErrUnauthorized)
		return
	}

	resp, err := h.factService.GetDay(r.Context(), code, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

func (h *AttendanceHandler) ListDays(w http.ResponseWriter, r *http.Request) {
	filter := attendance.FactFilter{
		EmployeeCode: chi.URLParam(r, "code"),
		StartDate:    r.URL.Query().Get("start_date"),
		EndDate:      r.URL.Query().Get("end_date"),
	}

	if !h.canAccess(r, filter.EmployeeCode) {
		response.HandleError(w, attendance.ErrUnauthorized)
		return
	}

	resp, err := h.factService.ListDays(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

func (h *AttendanceHandler) DeleteDay(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	date, err := time.Parse("2006-01-02", chi.URLParam(r, "date"))
	if err != nil {
		response.BadRequest(w, "Invalid date, want YYYY-MM-DD", nil)
		return
	}

	if err := h.factService.DeleteDay(r.Context(), code, date); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance deleted", nil)
}

// canAccess allows admins everywhere and other callers only on their own
// records.
func (h *AttendanceHandler) canAccess(r *http.Request, code string) bool {
	if employee.Role(middleware.ClaimRole(r)) == employee.RoleAdmin {
		return true
	}
	return middleware.ClaimEmployeeCode(r) == code
}
