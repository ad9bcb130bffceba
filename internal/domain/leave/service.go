package leave

import (
	"context"
)

// LeaveService validates and records leave applications and derives
// annual balances from them.
type LeaveService interface {
	// Apply validates the date range and overlap constraints and persists
	// a new pending request.
	Apply(ctx context.Context, req ApplyLeaveRequest) (LeaveRequestResponse, error)

	// Cancel transitions the employee's own pending, not-yet-started
	// request to cancelled.
	Cancel(ctx context.Context, employeeID, leaveID string) (LeaveRequestResponse, error)

	// Balance sums approved days for the year against the fixed annual
	// allotments. Pure aggregation, no side effects.
	Balance(ctx context.Context, employeeID string, year int) (BalanceResponse, error)

	// ListMyRequests returns the employee's requests for a year,
	// newest first.
	ListMyRequests(ctx context.Context, employeeID string, year int) (ListRequestsResponse, error)
}
