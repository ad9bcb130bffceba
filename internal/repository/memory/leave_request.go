package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/staffhub/staffhub-backend-go/internal/domain/leave"
)

type LeaveRequestRepository struct {
	mu       sync.RWMutex
	requests map[string]leave.LeaveRequest
}

func NewLeaveRequestRepository() *LeaveRequestRepository {
	return &LeaveRequestRepository{
		requests: make(map[string]leave.LeaveRequest),
	}
}

// Create implements leave.LeaveRequestRepository. The overlap constraint
// is re-checked under the repository lock, mirroring the transactional
// re-check the PostgreSQL implementation performs.
func (r *LeaveRequestRepository) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, existing := range r.requests {
		if existing.EmployeeID != request.EmployeeID {
			continue
		}
		if existing.Status != leave.RequestStatusPending && existing.Status != leave.RequestStatusApproved {
			continue
		}
		if existing.Overlaps(request.StartDate, request.EndDate) {
			return leave.LeaveRequest{}, &leave.OverlapError{
				ConflictID:    id,
				ConflictStart: existing.StartDate,
				ConflictEnd:   existing.EndDate,
			}
		}
	}

	now := time.Now()
	request.CreatedAt = now
	request.UpdatedAt = now
	r.requests[request.ID] = request

	return request, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (r *LeaveRequestRepository) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	request, ok := r.requests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return request, nil
}

// ListActiveByEmployee implements leave.LeaveRequestRepository.
func (r *LeaveRequestRepository) ListActiveByEmployee(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var requests []leave.LeaveRequest
	for _, request := range r.requests {
		if request.EmployeeID != employeeID {
			continue
		}
		if request.Status != leave.RequestStatusPending && request.Status != leave.RequestStatusApproved {
			continue
		}
		requests = append(requests, request)
	}

	sort.Slice(requests, func(i, j int) bool {
		return requests[i].StartDate.Before(requests[j].StartDate)
	})

	return requests, nil
}

// ListByEmployeeAndYear implements leave.LeaveRequestRepository.
func (r *LeaveRequestRepository) ListByEmployeeAndYear(ctx context.Context, employeeID string, year int) ([]leave.LeaveRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var requests []leave.LeaveRequest
	for _, request := range r.requests {
		if request.EmployeeID != employeeID || request.StartDate.Year() != year {
			continue
		}
		requests = append(requests, request)
	}

	sort.Slice(requests, func(i, j int) bool {
		return requests[i].CreatedAt.After(requests[j].CreatedAt)
	})

	return requests, nil
}

// UpdateStatus implements leave.LeaveRequestRepository.
func (r *LeaveRequestRepository) UpdateStatus(ctx context.Context, id string, from, to leave.RequestStatus, approverID *string, decidedAt *time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	request, ok := r.requests[id]
	if !ok || request.Status != from {
		return leave.ErrNotCancellable
	}

	request.Status = to
	request.ApproverID = approverID
	request.DecidedAt = decidedAt
	request.UpdatedAt = time.Now()
	r.requests[id] = request
	return nil
}

// Seed inserts a request directly, bypassing validation. Test helper.
func (r *LeaveRequestRepository) Seed(request leave.LeaveRequest) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests[request.ID] = request
}
