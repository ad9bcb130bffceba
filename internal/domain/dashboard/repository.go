package dashboard

import (
	"context"
	"time"
)

// TaskRepository is the read-only view of the external task collaborator.
type TaskRepository interface {
	// CountByEmployeeDueBetween returns how many of the employee's tasks
	// with a due date in [from, to] are completed, and how many exist.
	CountByEmployeeDueBetween(ctx context.Context, employeeID string, from, to time.Time) (completed int, total int, err error)
}
