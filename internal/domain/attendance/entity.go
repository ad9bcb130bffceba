package attendance

import (
	"time"
)

// Status of a daily attendance record.
type Status string

const (
	StatusPresent   Status = "present"
	StatusCompleted Status = "completed"
	StatusAbsent    Status = "absent"
	StatusLeave     Status = "leave"
	StatusHalfDay   Status = "half_day"
)

// BreakStatus describes the break portion of a day, derived from the
// presence of the break timestamps.
type BreakStatus string

const (
	BreakStatusNone      BreakStatus = "No Break"
	BreakStatusOnBreak   BreakStatus = "On Break"
	BreakStatusCompleted BreakStatus = "Break Completed"
)

// Record is one employee's attendance for one calendar day. Date is
// normalized to midnight in the application timezone; at most one record
// exists per (EmployeeID, Date).
type Record struct {
	ID         string
	EmployeeID string
	Date       time.Time
	CheckIn    *time.Time
	CheckOut   *time.Time

	// BreakStart/BreakEnd track the most recent break; earlier breaks of
	// the same day are already folded into TotalBreakMinutes.
	BreakStart        *time.Time
	BreakEnd          *time.Time
	TotalBreakMinutes int

	WorkingMinutes int
	Status         Status

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasOpenCheckIn reports whether the day has a check-in without a check-out.
func (r *Record) HasOpenCheckIn() bool {
	return r.CheckIn != nil && r.CheckOut == nil
}

// HasOpenBreak reports whether a break was started and not yet ended.
func (r *Record) HasOpenBreak() bool {
	return r.BreakStart != nil && r.BreakEnd == nil
}

// BreakState derives the break status from the break timestamps.
func (r *Record) BreakState() BreakStatus {
	switch {
	case r.BreakStart == nil:
		return BreakStatusNone
	case r.BreakEnd == nil:
		return BreakStatusOnBreak
	default:
		return BreakStatusCompleted
	}
}

// MinutesBetween returns the whole-minute span between two instants,
// flooring the millisecond delta.
func MinutesBetween(from, to time.Time) int {
	return int(to.Sub(from).Milliseconds() / 60000)
}
