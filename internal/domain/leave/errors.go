package leave

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidDateRange     = errors.New("start date must not be after end date")
	ErrPastStartDate        = errors.New("start date must not be in the past")
	ErrInvalidLeaveType     = errors.New("unknown leave type")
	ErrLeaveRequestNotFound = errors.New("leave request not found")
	ErrNotCancellable       = errors.New("leave request can no longer be cancelled")
)

// OverlapError is returned when a new request's interval collides with an
// existing pending or approved request. It carries the conflicting range
// so the caller can correct the submission.
type OverlapError struct {
	ConflictID    string
	ConflictStart time.Time
	ConflictEnd   time.Time
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("leave request overlaps an existing request (%s to %s)",
		e.ConflictStart.Format("2006-01-02"), e.ConflictEnd.Format("2006-01-02"))
}
