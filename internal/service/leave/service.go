package leave

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/staffhub/staffhub-backend-go/internal/domain/leave"
	"github.com/staffhub/staffhub-backend-go/internal/pkg/clock"
)

// LeaveServiceImpl validates leave applications against the employee's
// existing pending/approved requests and derives annual balances.
type LeaveServiceImpl struct {
	leave.LeaveRequestRepository
	clk   clock.Clock
	loc   *time.Location
	locks sync.Map // employeeID -> *sync.Mutex
}

func NewLeaveService(repo leave.LeaveRequestRepository, clk clock.Clock, loc *time.Location) leave.LeaveService {
	if loc == nil {
		loc = time.Local
	}
	return &LeaveServiceImpl{
		LeaveRequestRepository: repo,
		clk:                    clk,
		loc:                    loc,
	}
}

func (s *LeaveServiceImpl) lockEmployee(employeeID string) func() {
	v, _ := s.locks.LoadOrStore(employeeID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// today returns the current calendar day as a UTC midnight, comparable to
// parsed request dates.
func (s *LeaveServiceImpl) today() time.Time {
	now := s.clk.Now().In(s.loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func mapRequestToResponse(r leave.LeaveRequest) leave.LeaveRequestResponse {
	var decidedAt *string
	if r.DecidedAt != nil {
		formatted := r.DecidedAt.Format("2006-01-02 15:04:05")
		decidedAt = &formatted
	}

	return leave.LeaveRequestResponse{
		ID:         r.ID,
		EmployeeID: r.EmployeeID,
		LeaveType:  string(r.LeaveType),
		StartDate:  r.StartDate.Format("2006-01-02"),
		EndDate:    r.EndDate.Format("2006-01-02"),
		TotalDays:  r.TotalDays,
		Reason:     r.Reason,
		Status:     string(r.Status),
		ApproverID: r.ApproverID,
		DecidedAt:  decidedAt,
		CreatedAt:  r.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// Apply implements leave.LeaveService.
func (s *LeaveServiceImpl) Apply(ctx context.Context, req leave.ApplyLeaveRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to parse start date: %w", err)
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to parse end date: %w", err)
	}

	if startDate.After(endDate) {
		return leave.LeaveRequestResponse{}, leave.ErrInvalidDateRange
	}
	if startDate.Before(s.today()) {
		return leave.LeaveRequestResponse{}, leave.ErrPastStartDate
	}

	unlock := s.lockEmployee(req.EmployeeID)
	defer unlock()

	existing, err := s.LeaveRequestRepository.ListActiveByEmployee(ctx, req.EmployeeID)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to list active leave requests: %w", err)
	}
	for i := range existing {
		if existing[i].Overlaps(startDate, endDate) {
			return leave.LeaveRequestResponse{}, &leave.OverlapError{
				ConflictID:    existing[i].ID,
				ConflictStart: existing[i].StartDate,
				ConflictEnd:   existing[i].EndDate,
			}
		}
	}

	created, err := s.LeaveRequestRepository.Create(ctx, leave.LeaveRequest{
		ID:         uuid.NewString(),
		EmployeeID: req.EmployeeID,
		LeaveType:  leave.Type(req.LeaveType),
		StartDate:  startDate,
		EndDate:    endDate,
		TotalDays:  leave.InclusiveDays(startDate, endDate),
		Reason:     req.Reason,
		Status:     leave.RequestStatusPending,
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	return mapRequestToResponse(created), nil
}

// Cancel implements leave.LeaveService.
func (s *LeaveServiceImpl) Cancel(ctx context.Context, employeeID, leaveID string) (leave.LeaveRequestResponse, error) {
	unlock := s.lockEmployee(employeeID)
	defer unlock()

	request, err := s.LeaveRequestRepository.GetByID(ctx, leaveID)
	if err != nil {
		if errors.Is(err, leave.ErrLeaveRequestNotFound) {
			return leave.LeaveRequestResponse{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to get leave request: %w", err)
	}

	// A request belonging to someone else is reported as not found.
	if request.EmployeeID != employeeID {
		return leave.LeaveRequestResponse{}, leave.ErrLeaveRequestNotFound
	}

	if request.Status != leave.RequestStatusPending || !request.StartDate.After(s.today()) {
		return leave.LeaveRequestResponse{}, leave.ErrNotCancellable
	}

	if err := s.LeaveRequestRepository.UpdateStatus(ctx, leaveID, leave.RequestStatusPending, leave.RequestStatusCancelled, nil, nil); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	request.Status = leave.RequestStatusCancelled
	return mapRequestToResponse(request), nil
}

// Balance implements leave.LeaveService. A zero year means the current
// calendar year.
func (s *LeaveServiceImpl) Balance(ctx context.Context, employeeID string, year int) (leave.BalanceResponse, error) {
	if year == 0 {
		year = s.clk.Now().In(s.loc).Year()
	}
	requests, err := s.LeaveRequestRepository.ListByEmployeeAndYear(ctx, employeeID, year)
	if err != nil {
		return leave.BalanceResponse{}, fmt.Errorf("failed to list leave requests: %w", err)
	}

	usedByType := make(map[leave.Type]int)
	for i := range requests {
		if requests[i].Status == leave.RequestStatusApproved {
			usedByType[requests[i].LeaveType] += requests[i].TotalDays
		}
	}

	resp := leave.BalanceResponse{
		EmployeeID:     employeeID,
		Year:           year,
		TotalAllotment: leave.TotalAllotment(),
	}

	for _, leaveType := range []leave.Type{leave.TypeAnnual, leave.TypeSick, leave.TypePersonal} {
		allotment := leave.Allotments[leaveType]
		used := usedByType[leaveType]
		remaining := allotment - used
		if remaining < 0 {
			remaining = 0
		}
		resp.UsedDays += used
		resp.LeaveBalanceByType = append(resp.LeaveBalanceByType, leave.TypeBalance{
			LeaveType: string(leaveType),
			Allotment: allotment,
			UsedDays:  used,
			Remaining: remaining,
		})
	}

	resp.RemainingBalance = resp.TotalAllotment - resp.UsedDays
	if resp.RemainingBalance < 0 {
		resp.RemainingBalance = 0
	}

	return resp, nil
}

// ListMyRequests implements leave.LeaveService. A zero year means the
// current calendar year.
func (s *LeaveServiceImpl) ListMyRequests(ctx context.Context, employeeID string, year int) (leave.ListRequestsResponse, error) {
	if year == 0 {
		year = s.clk.Now().In(s.loc).Year()
	}
	requests, err := s.LeaveRequestRepository.ListByEmployeeAndYear(ctx, employeeID, year)
	if err != nil {
		return leave.ListRequestsResponse{}, fmt.Errorf("failed to list leave requests: %w", err)
	}

	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for i := range requests {
		responses = append(responses, mapRequestToResponse(requests[i]))
	}

	return leave.ListRequestsResponse{
		EmployeeID: employeeID,
		Year:       year,
		Requests:   responses,
	}, nil
}
