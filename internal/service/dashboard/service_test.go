package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffhub/staffhub-backend-go/internal/domain/attendance"
	"github.com/staffhub/staffhub-backend-go/internal/domain/dashboard"
	"github.com/staffhub/staffhub-backend-go/internal/domain/leave"
	"github.com/staffhub/staffhub-backend-go/internal/pkg/clock"
	"github.com/staffhub/staffhub-backend-go/internal/repository/memory"
	attendanceService "github.com/staffhub/staffhub-backend-go/internal/service/attendance"
	leaveService "github.com/staffhub/staffhub-backend-go/internal/service/leave"
)

const testEmployeeID = "emp-001"

// Fixed reference instant: 2024-03-15 14:00 UTC.
var testNow = time.Date(2024, 3, 15, 14, 0, 0, 0, time.UTC)

type fixture struct {
	svc            dashboard.DashboardService
	attendanceRepo *memory.AttendanceRepository
	leaveRepo      *memory.LeaveRequestRepository
	taskRepo       *memory.TaskRepository
	clk            *clock.Fixed
}

func newFixture() fixture {
	attendanceRepo := memory.NewAttendanceRepository()
	leaveRepo := memory.NewLeaveRequestRepository()
	taskRepo := memory.NewTaskRepository()
	clk := clock.NewFixed(testNow)

	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, clk, time.UTC)
	leaveSvc := leaveService.NewLeaveService(leaveRepo, clk, time.UTC)
	svc := NewDashboardService(attendanceSvc, leaveSvc, taskRepo, clk, time.UTC)

	return fixture{
		svc:            svc,
		attendanceRepo: attendanceRepo,
		leaveRepo:      leaveRepo,
		taskRepo:       taskRepo,
		clk:            clk,
	}
}

func seedDay(f fixture, d int, status attendance.Status) {
	f.attendanceRepo.Seed(attendance.Record{
		ID:         "rec-" + string(rune('a'+d)),
		EmployeeID: testEmployeeID,
		Date:       time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC),
		Status:     status,
	})
}

func TestGetSummary(t *testing.T) {
	ctx := context.Background()

	t.Run("empty month keeps rates at zero", func(t *testing.T) {
		f := newFixture()

		resp, err := f.svc.GetSummary(ctx, testEmployeeID)
		require.NoError(t, err)

		assert.Equal(t, testEmployeeID, resp.EmployeeID)
		assert.Equal(t, "2024-03", resp.Attendance.Month)
		assert.Equal(t, 0.0, resp.Attendance.AttendanceRate)
		assert.Equal(t, 0.0, resp.Tasks.CompletionRate)
		assert.Equal(t, 20, resp.Leave.TotalAllotment)
		assert.False(t, resp.Today.IsCheckedIn)
	})

	t.Run("composes attendance, tasks and leave", func(t *testing.T) {
		f := newFixture()

		seedDay(f, 11, attendance.StatusCompleted)
		seedDay(f, 12, attendance.StatusCompleted)
		seedDay(f, 13, attendance.StatusAbsent)
		seedDay(f, 14, attendance.StatusLeave)

		f.taskRepo.Seed(memory.Task{ID: "t1", AssigneeID: testEmployeeID, DueDate: testNow.AddDate(0, 0, -1), Completed: true})
		f.taskRepo.Seed(memory.Task{ID: "t2", AssigneeID: testEmployeeID, DueDate: testNow.AddDate(0, 0, -2), Completed: true})
		f.taskRepo.Seed(memory.Task{ID: "t3", AssigneeID: testEmployeeID, DueDate: testNow.AddDate(0, 0, -3), Completed: false})
		f.taskRepo.Seed(memory.Task{ID: "t4", AssigneeID: testEmployeeID, DueDate: testNow.AddDate(0, 0, -4), Completed: false})
		// Outside the trailing week.
		f.taskRepo.Seed(memory.Task{ID: "t5", AssigneeID: testEmployeeID, DueDate: testNow.AddDate(0, 0, -10), Completed: true})

		f.leaveRepo.Seed(leave.LeaveRequest{
			ID:         "req-1",
			EmployeeID: testEmployeeID,
			LeaveType:  leave.TypeAnnual,
			StartDate:  time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC),
			EndDate:    time.Date(2024, 2, 7, 0, 0, 0, 0, time.UTC),
			TotalDays:  3,
			Status:     leave.RequestStatusApproved,
		})

		resp, err := f.svc.GetSummary(ctx, testEmployeeID)
		require.NoError(t, err)

		assert.Equal(t, 4, resp.Attendance.TotalDaysWithRecords)
		assert.Equal(t, 2, resp.Attendance.PresentDays)
		assert.InDelta(t, 0.5, resp.Attendance.AttendanceRate, 1e-9)

		assert.Equal(t, 4, resp.Tasks.TotalTasks)
		assert.Equal(t, 2, resp.Tasks.CompletedTasks)
		assert.InDelta(t, 0.5, resp.Tasks.CompletionRate, 1e-9)

		assert.Equal(t, 3, resp.Leave.UsedDays)
		assert.Equal(t, 17, resp.Leave.RemainingBalance)
	})

	t.Run("today snapshot reflects an open check-in", func(t *testing.T) {
		f := newFixture()

		checkIn := testNow.Add(-2 * time.Hour)
		f.attendanceRepo.Seed(attendance.Record{
			ID:         "rec-today",
			EmployeeID: testEmployeeID,
			Date:       time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
			CheckIn:    &checkIn,
			Status:     attendance.StatusPresent,
		})

		resp, err := f.svc.GetSummary(ctx, testEmployeeID)
		require.NoError(t, err)

		assert.True(t, resp.Today.IsCheckedIn)
		assert.Equal(t, 120, resp.Today.WorkingMinutes)
		assert.Equal(t, "No Break", resp.Today.BreakStatus)
	})

	t.Run("checked-out day is not live", func(t *testing.T) {
		f := newFixture()

		checkIn := testNow.Add(-6 * time.Hour)
		checkOut := testNow.Add(-time.Hour)
		f.attendanceRepo.Seed(attendance.Record{
			ID:             "rec-today",
			EmployeeID:     testEmployeeID,
			Date:           time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
			CheckIn:        &checkIn,
			CheckOut:       &checkOut,
			WorkingMinutes: 300,
			Status:         attendance.StatusCompleted,
		})

		resp, err := f.svc.GetSummary(ctx, testEmployeeID)
		require.NoError(t, err)

		assert.False(t, resp.Today.IsCheckedIn)
		assert.Equal(t, 300, resp.Today.WorkingMinutes)
	})
}
