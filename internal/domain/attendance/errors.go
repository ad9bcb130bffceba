package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in/check-out errors
	ErrAlreadyCheckedIn  = errors.New("you have already checked in today")
	ErrNoActiveCheckIn   = errors.New("you have not checked in yet")
	ErrAlreadyCheckedOut = errors.New("you have already checked out")

	// Break errors
	ErrBreakAlreadyActive = errors.New("a break is already in progress")
	ErrNoActiveBreak      = errors.New("no break is in progress")

	// General errors
	ErrRecordNotFound = errors.New("attendance record not found")
)
