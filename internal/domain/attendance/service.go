package attendance

import (
	"context"
)

// AttendanceService governs the daily attendance state machine and the
// monthly calendar aggregation built from its persisted output.
type AttendanceService interface {
	// CheckIn opens today's record for the employee.
	CheckIn(ctx context.Context, employeeID string) (CheckInResponse, error)

	// CheckOut closes today's record and finalizes working minutes.
	CheckOut(ctx context.Context, employeeID string) (CheckOutResponse, error)

	// StartBreak opens a break on today's open record.
	StartBreak(ctx context.Context, employeeID string) (StartBreakResponse, error)

	// EndBreak closes the open break and accumulates its minutes.
	EndBreak(ctx context.Context, employeeID string) (EndBreakResponse, error)

	// TodayStatus returns a read-only snapshot of today's record.
	TodayStatus(ctx context.Context, employeeID string) (TodayStatusResponse, error)

	// MonthlySummary builds the calendar view and counts for one month.
	MonthlySummary(ctx context.Context, req MonthlySummaryRequest) (MonthlySummaryResponse, error)
}
