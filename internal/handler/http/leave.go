package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/staffhub/staffhub-backend-go/internal/domain/leave"
	"github.com/staffhub/staffhub-backend-go/internal/handler/http/response"
)

type LeaveHandler interface {
	Apply(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
	Balance(w http.ResponseWriter, r *http.Request)
	ListMyRequests(w http.ResponseWriter, r *http.Request)
}

type leaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &leaveHandlerImpl{
		leaveService: leaveService,
	}
}

// yearOrDefault parses the optional ?year= query, falling back to 0 so
// the service resolves it to the current year.
func yearOrDefault(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("year")
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

// Apply implements LeaveHandler.
func (h *leaveHandlerImpl) Apply(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}
	if !authorizeEmployee(w, r, employeeID) {
		return
	}

	var req leave.ApplyLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode leave apply request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = employeeID

	result, err := h.leaveService.Apply(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted", result)
}

// Cancel implements LeaveHandler.
func (h *leaveHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	leaveID := chi.URLParam(r, "leaveID")
	if employeeID == "" || leaveID == "" {
		response.BadRequest(w, "Employee ID and leave ID are required", nil)
		return
	}
	if !authorizeEmployee(w, r, employeeID) {
		return
	}

	result, err := h.leaveService.Cancel(r.Context(), employeeID, leaveID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request cancelled", result)
}

// Balance implements LeaveHandler.
func (h *leaveHandlerImpl) Balance(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}
	if !authorizeEmployee(w, r, employeeID) {
		return
	}

	year, err := yearOrDefault(r)
	if err != nil {
		response.BadRequest(w, "Query parameter 'year' must be a number", nil)
		return
	}

	result, svcErr := h.leaveService.Balance(r.Context(), employeeID, year)
	if svcErr != nil {
		response.HandleError(w, svcErr)
		return
	}

	response.Success(w, result)
}

// ListMyRequests implements LeaveHandler.
func (h *leaveHandlerImpl) ListMyRequests(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}
	if !authorizeEmployee(w, r, employeeID) {
		return
	}

	year, err := yearOrDefault(r)
	if err != nil {
		response.BadRequest(w, "Query parameter 'year' must be a number", nil)
		return
	}

	result, svcErr := h.leaveService.ListMyRequests(r.Context(), employeeID, year)
	if svcErr != nil {
		response.HandleError(w, svcErr)
		return
	}

	response.Success(w, result)
}
