package dashboard

import (
	"github.com/staffhub/staffhub-backend-go/internal/domain/leave"
)

// AttendanceStats summarizes the current month's attendance.
type AttendanceStats struct {
	Month                string  `json:"month"` // YYYY-MM
	AttendanceRate       float64 `json:"attendance_rate"`
	PresentDays          int     `json:"present_days"`
	TotalDaysWithRecords int     `json:"total_days_with_records"`
}

// TaskStats summarizes task completion over the trailing seven days.
type TaskStats struct {
	CompletionRate float64 `json:"completion_rate"`
	CompletedTasks int     `json:"completed_tasks"`
	TotalTasks     int     `json:"total_tasks"`
}

// TodayStats is the live check-in snapshot shown on the dashboard.
type TodayStats struct {
	IsCheckedIn    bool   `json:"is_checked_in"`
	WorkingMinutes int    `json:"working_minutes"`
	BreakStatus    string `json:"break_status"`
}

// SummaryResponse is the combined read-only dashboard composite. The three
// aggregates are independent snapshots; no transactional consistency is
// promised between them.
type SummaryResponse struct {
	EmployeeID string                `json:"employee_id"`
	Attendance AttendanceStats       `json:"attendance"`
	Tasks      TaskStats             `json:"tasks"`
	Leave      leave.BalanceResponse `json:"leave"`
	Today      TodayStats            `json:"today"`
}
