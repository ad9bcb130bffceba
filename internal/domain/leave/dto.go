package leave

import (
	"github.com/staffhub/staffhub-backend-go/internal/pkg/validator"
)

// ApplyLeaveRequest is the payload of a new leave application.
type ApplyLeaveRequest struct {
	EmployeeID string `json:"-"`
	LeaveType  string `json:"leave_type"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Reason     string `json:"reason"`
}

func (r ApplyLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if !validator.IsInSlice(r.LeaveType, ValidTypes()) {
		errs = append(errs, validator.ValidationError{Field: "leave_type", Message: "leave_type must be one of annual, sick, personal"})
	}
	if _, ok := validator.IsValidDate(r.StartDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must be YYYY-MM-DD"})
	}
	if _, ok := validator.IsValidDate(r.EndDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must be YYYY-MM-DD"})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "reason is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// LeaveRequestResponse mirrors one request on the wire.
type LeaveRequestResponse struct {
	ID         string  `json:"id"`
	EmployeeID string  `json:"employee_id"`
	LeaveType  string  `json:"leave_type"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	TotalDays  int     `json:"total_days"`
	Reason     string  `json:"reason"`
	Status     string  `json:"status"`
	ApproverID *string `json:"approver_id,omitempty"`
	DecidedAt  *string `json:"decided_at,omitempty"`
	CreatedAt  string  `json:"created_at"`
}

// TypeBalance is the balance of a single leave type.
type TypeBalance struct {
	LeaveType string `json:"leave_type"`
	Allotment int    `json:"allotment"`
	UsedDays  int    `json:"used_days"`
	Remaining int    `json:"remaining"`
}

// BalanceResponse is the annual leave balance of one employee.
type BalanceResponse struct {
	EmployeeID         string        `json:"employee_id"`
	Year               int           `json:"year"`
	TotalAllotment     int           `json:"total_allotment"`
	UsedDays           int           `json:"used_days"`
	RemainingBalance   int           `json:"remaining_balance"`
	LeaveBalanceByType []TypeBalance `json:"leave_balance_by_type"`
}

// ListRequestsResponse wraps an employee's requests for a year.
type ListRequestsResponse struct {
	EmployeeID string                 `json:"employee_id"`
	Year       int                    `json:"year"`
	Requests   []LeaveRequestResponse `json:"requests"`
}
