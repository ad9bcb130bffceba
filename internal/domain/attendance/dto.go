package attendance

import (
	"github.com/staffhub/staffhub-backend-go/internal/pkg/validator"
)

// CheckInResponse is returned after a successful check-in.
type CheckInResponse struct {
	ID          string `json:"id"`
	EmployeeID  string `json:"employee_id"`
	Date        string `json:"date"`
	CheckInTime string `json:"check_in_time"`
	Status      string `json:"status"`
}

// CheckOutResponse is returned after a successful check-out.
type CheckOutResponse struct {
	ID                string `json:"id"`
	EmployeeID        string `json:"employee_id"`
	Date              string `json:"date"`
	CheckOutTime      string `json:"check_out_time"`
	WorkingMinutes    int    `json:"working_minutes"`
	TotalBreakMinutes int    `json:"total_break_minutes"`
	Status            string `json:"status"`
}

// StartBreakResponse is returned after a break is opened.
type StartBreakResponse struct {
	ID             string `json:"id"`
	BreakStartTime string `json:"break_start_time"`
}

// EndBreakResponse is returned after a break is closed.
type EndBreakResponse struct {
	ID                string `json:"id"`
	BreakEndTime      string `json:"break_end_time"`
	TotalBreakMinutes int    `json:"total_break_minutes"`
}

// TodayStatusResponse is the live snapshot of the current employee-day.
// WorkingMinutes is an estimate against "now" while the day is still open.
type TodayStatusResponse struct {
	EmployeeID        string  `json:"employee_id"`
	Date              string  `json:"date"`
	IsCheckedIn       bool    `json:"is_checked_in"`
	IsCheckedOut      bool    `json:"is_checked_out"`
	CheckInTime       *string `json:"check_in_time"`
	CheckOutTime      *string `json:"check_out_time"`
	WorkingMinutes    int     `json:"working_minutes"`
	BreakStatus       string  `json:"break_status"`
	TotalBreakMinutes int     `json:"total_break_minutes"`
	Status            *string `json:"status"`
}

// MonthlySummaryRequest carries the query parameters of the monthly view.
type MonthlySummaryRequest struct {
	EmployeeID string
	Year       int
	Month      int
}

func (r MonthlySummaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if r.Year < 1970 || r.Year > 9999 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "year is out of range"})
	}
	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "month must be between 1 and 12"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// MonthlySummaryResponse is the calendar view of one employee-month.
// CalendarData has one entry per day of the month; days without a record
// are reported as "none".
type MonthlySummaryResponse struct {
	EmployeeID   string         `json:"employee_id"`
	Year         int            `json:"year"`
	Month        int            `json:"month"`
	CalendarData map[int]string `json:"calendar_data"`
	Summary      MonthlyCounts  `json:"summary"`
}

// MonthlyCounts are the aggregate counts of one employee-month.
type MonthlyCounts struct {
	TotalDaysWithRecords int `json:"total_days_with_records"`
	PresentDays          int `json:"present_days"`
	AbsentDays           int `json:"absent_days"`
	LeaveDays            int `json:"leave_days"`
}
