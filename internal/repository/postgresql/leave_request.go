package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/staffhub/staffhub-backend-go/internal/domain/leave"
	"github.com/staffhub/staffhub-backend-go/internal/pkg/database"
)

type leaveRequestRepository struct {
	db *database.DB
}

const leaveRequestColumns = `
	id, employee_id, leave_type, start_date, end_date, total_days,
	reason, status, approver_id, decided_at, created_at, updated_at
`

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var req leave.LeaveRequest
	err := row.Scan(
		&req.ID, &req.EmployeeID, &req.LeaveType, &req.StartDate, &req.EndDate, &req.TotalDays,
		&req.Reason, &req.Status, &req.ApproverID, &req.DecidedAt, &req.CreatedAt, &req.UpdatedAt,
	)
	return req, err
}

// Create implements leave.LeaveRequestRepository.
// The insert runs in a transaction holding a per-employee advisory lock
// and re-checks the overlap constraint, so two concurrently submitted
// overlapping requests cannot both commit.
func (l *leaveRequestRepository) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	err := WithTransaction(ctx, l.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, request.EmployeeID); err != nil {
			return fmt.Errorf("failed to take employee lock: %w", err)
		}

		conflictQuery := `
			SELECT id, start_date, end_date
			FROM leave_requests
			WHERE employee_id = $1
			  AND status IN ('pending', 'approved')
			  AND start_date <= $3
			  AND end_date >= $2
			LIMIT 1
		`
		var conflict leave.OverlapError
		err := tx.QueryRow(ctx, conflictQuery, request.EmployeeID, request.StartDate, request.EndDate).
			Scan(&conflict.ConflictID, &conflict.ConflictStart, &conflict.ConflictEnd)
		if err == nil {
			return &conflict
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("failed to re-check leave overlap: %w", err)
		}

		insertQuery := `
			INSERT INTO leave_requests (
				id, employee_id, leave_type, start_date, end_date, total_days, reason, status
			) VALUES (
				$1, $2, $3, $4, $5, $6, $7, $8
			) RETURNING created_at, updated_at
		`
		return tx.QueryRow(ctx, insertQuery,
			request.ID,
			request.EmployeeID,
			request.LeaveType,
			request.StartDate,
			request.EndDate,
			request.TotalDays,
			request.Reason,
			request.Status,
		).Scan(&request.CreatedAt, &request.UpdatedAt)
	})
	if err != nil {
		var overlapErr *leave.OverlapError
		if errors.As(err, &overlapErr) {
			return leave.LeaveRequest{}, overlapErr
		}
		return leave.LeaveRequest{}, err
	}

	return request, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (l *leaveRequestRepository) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests
		WHERE id = $1
	`

	req, err := scanLeaveRequest(l.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request by ID: %w", err)
	}

	return req, nil
}

// ListActiveByEmployee implements leave.LeaveRequestRepository.
func (l *leaveRequestRepository) ListActiveByEmployee(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests
		WHERE employee_id = $1
		  AND status IN ('pending', 'approved')
		ORDER BY start_date ASC
	`

	return l.queryRequests(ctx, l.db, query, employeeID)
}

// ListByEmployeeAndYear implements leave.LeaveRequestRepository.
func (l *leaveRequestRepository) ListByEmployeeAndYear(ctx context.Context, employeeID string, year int) ([]leave.LeaveRequest, error) {
	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests
		WHERE employee_id = $1
		  AND EXTRACT(YEAR FROM start_date) = $2
		ORDER BY created_at DESC
	`

	return l.queryRequests(ctx, l.db, query, employeeID, year)
}

func (l *leaveRequestRepository) queryRequests(ctx context.Context, q database.Querier, query string, args ...interface{}) ([]leave.LeaveRequest, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query leave requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		req, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, req)
	}

	return requests, rows.Err()
}

// UpdateStatus implements leave.LeaveRequestRepository.
func (l *leaveRequestRepository) UpdateStatus(ctx context.Context, id string, from, to leave.RequestStatus, approverID *string, decidedAt *time.Time) error {
	query := `
		UPDATE leave_requests
		SET status = $3, approver_id = $4, decided_at = $5, updated_at = NOW()
		WHERE id = $1
		  AND status = $2
		RETURNING id
	`

	var updatedID string
	if err := l.db.QueryRow(ctx, query, id, from, to, approverID, decidedAt).Scan(&updatedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.ErrNotCancellable
		}
		return fmt.Errorf("failed to update leave request status: %w", err)
	}

	return nil
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepository{db: db}
}
