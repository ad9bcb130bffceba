package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access for daily attendance records.
// The mutating methods are conditional writes: each one applies only while
// its precondition still holds in the store, so concurrent writers for the
// same employee cannot both succeed.
type AttendanceRepository interface {
	// Create inserts the first record for (employeeID, date). Returns
	// ErrAlreadyCheckedIn when a record for that day already exists.
	Create(ctx context.Context, record Record) (Record, error)

	// GetByEmployeeAndDate retrieves the record for a specific day.
	// Returns (nil, nil) when no record exists.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Record, error)

	// SetCheckIn stamps the check-in on an existing record whose check-in
	// is still unset. Returns ErrAlreadyCheckedIn otherwise.
	SetCheckIn(ctx context.Context, id string, at time.Time, status Status) error

	// SetCheckOut closes the day: applies only while check_out is unset.
	// Returns ErrAlreadyCheckedOut when the day is already closed.
	SetCheckOut(ctx context.Context, id string, at time.Time, workingMinutes int, totalBreakMinutes int, status Status) error

	// SetBreakStart opens a break: applies only while the day is open and
	// no break is in progress. Returns ErrBreakAlreadyActive otherwise.
	SetBreakStart(ctx context.Context, id string, at time.Time) error

	// SetBreakEnd closes the open break and stores the accumulated break
	// minutes. Returns ErrNoActiveBreak when no break is open.
	SetBreakEnd(ctx context.Context, id string, at time.Time, totalBreakMinutes int) error

	// ListByEmployeeAndRange returns all records with from <= date <= to,
	// ordered by date ascending.
	ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]Record, error)
}
