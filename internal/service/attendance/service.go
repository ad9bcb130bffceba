package attendance

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/staffhub/staffhub-backend-go/internal/domain/attendance"
	"github.com/staffhub/staffhub-backend-go/internal/pkg/clock"
)

// AttendanceServiceImpl drives the per-day state machine
// NotStarted -> CheckedIn -> OnBreak -> CheckedIn -> CheckedOut.
// Writes for one employee are serialized through a keyed mutex; the
// repository's conditional updates back that up at the store boundary.
type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	clk   clock.Clock
	loc   *time.Location
	locks sync.Map // employeeID -> *sync.Mutex
}

func NewAttendanceService(repo attendance.AttendanceRepository, clk clock.Clock, loc *time.Location) attendance.AttendanceService {
	if loc == nil {
		loc = time.Local
	}
	return &AttendanceServiceImpl{
		AttendanceRepository: repo,
		clk:                  clk,
		loc:                  loc,
	}
}

func (a *AttendanceServiceImpl) lockEmployee(employeeID string) func() {
	v, _ := a.locks.LoadOrStore(employeeID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// now returns the reference instant and the calendar day it falls on,
// both in the application timezone.
func (a *AttendanceServiceImpl) now() (time.Time, time.Time) {
	now := a.clk.Now().In(a.loc)
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, a.loc)
	return now, day
}

func formatTime(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := formatTime(*t)
	return &format
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, employeeID string) (attendance.CheckInResponse, error) {
	unlock := a.lockEmployee(employeeID)
	defer unlock()

	now, today := a.now()

	record, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		return attendance.CheckInResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}

	if record != nil {
		if record.CheckIn != nil {
			return attendance.CheckInResponse{}, attendance.ErrAlreadyCheckedIn
		}
		// A record without a check-in can pre-exist (e.g. a leave day);
		// stamping it is conditional on check_in still being unset.
		if err := a.AttendanceRepository.SetCheckIn(ctx, record.ID, now, attendance.StatusPresent); err != nil {
			return attendance.CheckInResponse{}, err
		}
		return attendance.CheckInResponse{
			ID:          record.ID,
			EmployeeID:  employeeID,
			Date:        today.Format("2006-01-02"),
			CheckInTime: formatTime(now),
			Status:      string(attendance.StatusPresent),
		}, nil
	}

	created, err := a.AttendanceRepository.Create(ctx, attendance.Record{
		ID:         uuid.NewString(),
		EmployeeID: employeeID,
		Date:       today,
		CheckIn:    &now,
		Status:     attendance.StatusPresent,
	})
	if err != nil {
		return attendance.CheckInResponse{}, err
	}

	return attendance.CheckInResponse{
		ID:          created.ID,
		EmployeeID:  created.EmployeeID,
		Date:        created.Date.Format("2006-01-02"),
		CheckInTime: formatTime(now),
		Status:      string(created.Status),
	}, nil
}

// CheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, employeeID string) (attendance.CheckOutResponse, error) {
	unlock := a.lockEmployee(employeeID)
	defer unlock()

	now, today := a.now()

	record, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		return attendance.CheckOutResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if record == nil || record.CheckIn == nil {
		return attendance.CheckOutResponse{}, attendance.ErrNoActiveCheckIn
	}
	if record.CheckOut != nil {
		return attendance.CheckOutResponse{}, attendance.ErrAlreadyCheckedOut
	}

	// A break left open at check-out closes with the day.
	totalBreak := record.TotalBreakMinutes
	if record.HasOpenBreak() {
		totalBreak += attendance.MinutesBetween(*record.BreakStart, now)
	}

	workingMinutes := attendance.MinutesBetween(*record.CheckIn, now) - totalBreak
	if workingMinutes < 0 {
		workingMinutes = 0
	}

	if err := a.AttendanceRepository.SetCheckOut(ctx, record.ID, now, workingMinutes, totalBreak, attendance.StatusCompleted); err != nil {
		return attendance.CheckOutResponse{}, err
	}

	return attendance.CheckOutResponse{
		ID:                record.ID,
		EmployeeID:        employeeID,
		Date:              today.Format("2006-01-02"),
		CheckOutTime:      formatTime(now),
		WorkingMinutes:    workingMinutes,
		TotalBreakMinutes: totalBreak,
		Status:            string(attendance.StatusCompleted),
	}, nil
}

// StartBreak implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) StartBreak(ctx context.Context, employeeID string) (attendance.StartBreakResponse, error) {
	unlock := a.lockEmployee(employeeID)
	defer unlock()

	now, today := a.now()

	record, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		return attendance.StartBreakResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if record == nil || !record.HasOpenCheckIn() {
		return attendance.StartBreakResponse{}, attendance.ErrNoActiveCheckIn
	}
	if record.HasOpenBreak() {
		return attendance.StartBreakResponse{}, attendance.ErrBreakAlreadyActive
	}

	if err := a.AttendanceRepository.SetBreakStart(ctx, record.ID, now); err != nil {
		return attendance.StartBreakResponse{}, err
	}

	return attendance.StartBreakResponse{
		ID:             record.ID,
		BreakStartTime: formatTime(now),
	}, nil
}

// EndBreak implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) EndBreak(ctx context.Context, employeeID string) (attendance.EndBreakResponse, error) {
	unlock := a.lockEmployee(employeeID)
	defer unlock()

	now, today := a.now()

	record, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		return attendance.EndBreakResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if record == nil || !record.HasOpenBreak() {
		return attendance.EndBreakResponse{}, attendance.ErrNoActiveBreak
	}

	// Breaks accumulate additively across the day.
	totalBreak := record.TotalBreakMinutes + attendance.MinutesBetween(*record.BreakStart, now)

	if err := a.AttendanceRepository.SetBreakEnd(ctx, record.ID, now, totalBreak); err != nil {
		return attendance.EndBreakResponse{}, err
	}

	return attendance.EndBreakResponse{
		ID:                record.ID,
		BreakEndTime:      formatTime(now),
		TotalBreakMinutes: totalBreak,
	}, nil
}

// TodayStatus implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) TodayStatus(ctx context.Context, employeeID string) (attendance.TodayStatusResponse, error) {
	now, today := a.now()

	resp := attendance.TodayStatusResponse{
		EmployeeID:  employeeID,
		Date:        today.Format("2006-01-02"),
		BreakStatus: string(attendance.BreakStatusNone),
	}

	record, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		return attendance.TodayStatusResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if record == nil {
		return resp, nil
	}

	status := string(record.Status)
	resp.Status = &status
	resp.CheckInTime = timePtrToString(record.CheckIn)
	resp.CheckOutTime = timePtrToString(record.CheckOut)
	resp.IsCheckedIn = record.CheckIn != nil
	resp.IsCheckedOut = record.CheckOut != nil
	resp.BreakStatus = string(record.BreakState())
	resp.TotalBreakMinutes = record.TotalBreakMinutes

	switch {
	case record.CheckOut != nil:
		resp.WorkingMinutes = record.WorkingMinutes
	case record.CheckIn != nil:
		// Live estimate against "now" while the day is still open.
		resp.WorkingMinutes = attendance.MinutesBetween(*record.CheckIn, now)
	}

	return resp, nil
}

// statusCode maps a stored record status to its calendar code.
func statusCode(s attendance.Status) string {
	switch s {
	case attendance.StatusPresent, attendance.StatusCompleted:
		return "present"
	case attendance.StatusLeave:
		return "leave"
	case attendance.StatusAbsent:
		return "absent"
	case attendance.StatusHalfDay:
		return "half_day"
	default:
		return "none"
	}
}

// MonthlySummary implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) MonthlySummary(ctx context.Context, req attendance.MonthlySummaryRequest) (attendance.MonthlySummaryResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.MonthlySummaryResponse{}, err
	}

	firstDay := time.Date(req.Year, time.Month(req.Month), 1, 0, 0, 0, 0, a.loc)
	lastDay := firstDay.AddDate(0, 1, -1)

	records, err := a.AttendanceRepository.ListByEmployeeAndRange(ctx, req.EmployeeID, firstDay, lastDay)
	if err != nil {
		return attendance.MonthlySummaryResponse{}, fmt.Errorf("failed to list attendance records: %w", err)
	}

	// Every day of the month gets an entry; days without a record stay
	// "none" and are not counted as absent.
	calendar := make(map[int]string, lastDay.Day())
	for day := 1; day <= lastDay.Day(); day++ {
		calendar[day] = "none"
	}

	counts := attendance.MonthlyCounts{}
	for _, record := range records {
		code := statusCode(record.Status)
		calendar[record.Date.Day()] = code
		counts.TotalDaysWithRecords++
		switch code {
		case "present", "half_day":
			counts.PresentDays++
		case "absent":
			counts.AbsentDays++
		case "leave":
			counts.LeaveDays++
		}
	}

	return attendance.MonthlySummaryResponse{
		EmployeeID:   req.EmployeeID,
		Year:         req.Year,
		Month:        req.Month,
		CalendarData: calendar,
		Summary:      counts,
	}, nil
}
