package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/staffhub/staffhub-backend-go/internal/domain/attendance"
	"github.com/staffhub/staffhub-backend-go/internal/domain/dashboard"
	"github.com/staffhub/staffhub-backend-go/internal/domain/leave"
	"github.com/staffhub/staffhub-backend-go/internal/pkg/clock"
)

// DashboardServiceImpl joins the three independent aggregates at
// response-build time. Each source is its own consistent snapshot; the
// composite makes no transactional promise across them.
type DashboardServiceImpl struct {
	attendanceService attendance.AttendanceService
	leaveService      leave.LeaveService
	dashboard.TaskRepository
	clk clock.Clock
	loc *time.Location
}

func NewDashboardService(
	attendanceService attendance.AttendanceService,
	leaveService leave.LeaveService,
	taskRepo dashboard.TaskRepository,
	clk clock.Clock,
	loc *time.Location,
) dashboard.DashboardService {
	if loc == nil {
		loc = time.Local
	}
	return &DashboardServiceImpl{
		attendanceService: attendanceService,
		leaveService:      leaveService,
		TaskRepository:    taskRepo,
		clk:               clk,
		loc:               loc,
	}
}

// GetSummary implements dashboard.DashboardService.
func (d *DashboardServiceImpl) GetSummary(ctx context.Context, employeeID string) (dashboard.SummaryResponse, error) {
	now := d.clk.Now().In(d.loc)

	monthly, err := d.attendanceService.MonthlySummary(ctx, attendance.MonthlySummaryRequest{
		EmployeeID: employeeID,
		Year:       now.Year(),
		Month:      int(now.Month()),
	})
	if err != nil {
		return dashboard.SummaryResponse{}, fmt.Errorf("failed to get monthly summary: %w", err)
	}

	attendanceRate := 0.0
	if monthly.Summary.TotalDaysWithRecords > 0 {
		attendanceRate = float64(monthly.Summary.PresentDays) / float64(monthly.Summary.TotalDaysWithRecords)
	}

	completed, total, err := d.TaskRepository.CountByEmployeeDueBetween(ctx, employeeID, now.AddDate(0, 0, -7), now)
	if err != nil {
		return dashboard.SummaryResponse{}, fmt.Errorf("failed to count tasks: %w", err)
	}
	completionRate := 0.0
	if total > 0 {
		completionRate = float64(completed) / float64(total)
	}

	balance, err := d.leaveService.Balance(ctx, employeeID, now.Year())
	if err != nil {
		return dashboard.SummaryResponse{}, fmt.Errorf("failed to get leave balance: %w", err)
	}

	today, err := d.attendanceService.TodayStatus(ctx, employeeID)
	if err != nil {
		return dashboard.SummaryResponse{}, fmt.Errorf("failed to get today's status: %w", err)
	}

	return dashboard.SummaryResponse{
		EmployeeID: employeeID,
		Attendance: dashboard.AttendanceStats{
			Month:                now.Format("2006-01"),
			AttendanceRate:       attendanceRate,
			PresentDays:          monthly.Summary.PresentDays,
			TotalDaysWithRecords: monthly.Summary.TotalDaysWithRecords,
		},
		Tasks: dashboard.TaskStats{
			CompletionRate: completionRate,
			CompletedTasks: completed,
			TotalTasks:     total,
		},
		Leave: balance,
		Today: dashboard.TodayStats{
			IsCheckedIn:    today.IsCheckedIn && !today.IsCheckedOut,
			WorkingMinutes: today.WorkingMinutes,
			BreakStatus:    today.BreakStatus,
		},
	}, nil
}
