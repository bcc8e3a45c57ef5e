package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sayed-elhawary/app-2/internal/domain/employee"
	"github.com/sayed-elhawary/app-2/internal/handler/http/response"
)

type EmployeeHandler struct {
	policyService employee.PolicyService
}

func NewEmployeeHandler(policyService employee.PolicyService) EmployeeHandler {
	return EmployeeHandler{policyService: policyService}
}

func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req employee.CreatePolicyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.policyService.Create(r.Context(), &req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee created", resp)
}

func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := employee.PolicyFilter{
		Code:      r.URL.Query().Get("code"),
		ShiftType: r.URL.Query().Get("shift_type"),
	}

	resp, err := h.policyService.List(r.Context(), &filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

func (h *EmployeeHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	resp, err := h.policyService.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req employee.UpdatePolicyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	resp, err := h.policyService.Update(r.Context(), &req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee updated", resp)
}

func (h *EmployeeHandler) BulkUpdate(w http.ResponseWriter, r *http.Request) {
	var req employee.BulkUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	updated, err := h.policyService.BulkUpdate(r.Context(), &req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Bulk update applied", map[string]int{"updated": updated})
}

func (h *EmployeeHandler) UpdateFinance(w http.ResponseWriter, r *http.Request) {
	var req employee.UpdateFinanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	resp, err := h.policyService.UpdateFinance(r.Context(), &req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Financial data updated", resp)
}

func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.policyService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee deleted", nil)
}

// ResetMonthlyLateAllowance resets the late allowance for one employee code
// or for everyone when no code is given.
func (h *EmployeeHandler) ResetMonthlyLateAllowance(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if err := h.policyService.ResetMonthlyLateAllowance(r.Context(), code); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Monthly late allowance reset", nil)
}

// ResetAnnualLeaveBalance resets the leave balance for one employee code or
// for everyone when no code is given.
func (h *EmployeeHandler) ResetAnnualLeaveBalance(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if err := h.policyService.ResetAnnualLeaveBalance(r.Context(), code); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Annual leave balance reset", nil)
}
