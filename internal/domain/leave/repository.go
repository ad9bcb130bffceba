package leave

import (
	"context"
	"time"
)

// LeaveRequestRepository defines data access for leave requests.
type LeaveRequestRepository interface {
	// Create persists a new request. Implementations re-validate the
	// overlap constraint at write time so two concurrently submitted
	// overlapping requests cannot both be admitted.
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)

	// GetByID retrieves a request. Returns ErrLeaveRequestNotFound.
	GetByID(ctx context.Context, id string) (LeaveRequest, error)

	// ListActiveByEmployee returns the employee's pending and approved
	// requests, the set a new interval is validated against.
	ListActiveByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error)

	// ListByEmployeeAndYear returns the employee's requests whose start
	// date falls in the given year, newest first.
	ListByEmployeeAndYear(ctx context.Context, employeeID string, year int) ([]LeaveRequest, error)

	// UpdateStatus transitions a request from one status to another,
	// applying only while the request is still in the from status.
	UpdateStatus(ctx context.Context, id string, from, to RequestStatus, approverID *string, decidedAt *time.Time) error
}
