package leave

import (
	"time"
)

// Type is a fixed leave category.
type Type string

const (
	TypeAnnual   Type = "annual"
	TypeSick     Type = "sick"
	TypePersonal Type = "personal"
)

// Annual allotments per leave type, in days. The overall allotment is the
// sum of the per-type allotments.
var Allotments = map[Type]int{
	TypeAnnual:   12,
	TypeSick:     5,
	TypePersonal: 3,
}

// TotalAllotment returns the combined annual allotment across all types.
func TotalAllotment() int {
	total := 0
	for _, days := range Allotments {
		total += days
	}
	return total
}

// ValidTypes lists the accepted leave type values.
func ValidTypes() []string {
	return []string{string(TypeAnnual), string(TypeSick), string(TypePersonal)}
}

// RequestStatus of a leave request.
type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "pending"
	RequestStatusApproved  RequestStatus = "approved"
	RequestStatusRejected  RequestStatus = "rejected"
	RequestStatusCancelled RequestStatus = "cancelled"
)

// LeaveRequest is one leave application. StartDate and EndDate are
// inclusive day-granularity bounds; TotalDays is the inclusive span.
type LeaveRequest struct {
	ID         string
	EmployeeID string
	LeaveType  Type

	StartDate time.Time
	EndDate   time.Time
	TotalDays int

	Reason string

	Status     RequestStatus
	ApproverID *string
	DecidedAt  *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Overlaps reports whether the request's interval shares at least one
// calendar day with [start, end] (inclusive comparison on both sides).
func (r *LeaveRequest) Overlaps(start, end time.Time) bool {
	return !r.StartDate.After(end) && !r.EndDate.Before(start)
}

// InclusiveDays returns the day count of [start, end], both ends counted.
func InclusiveDays(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}
