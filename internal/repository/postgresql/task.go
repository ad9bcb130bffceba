package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/staffhub/staffhub-backend-go/internal/domain/dashboard"
	"github.com/staffhub/staffhub-backend-go/internal/pkg/database"
)

type taskRepository struct {
	db *database.DB
}

// CountByEmployeeDueBetween implements dashboard.TaskRepository.
func (t *taskRepository) CountByEmployeeDueBetween(ctx context.Context, employeeID string, from, to time.Time) (int, int, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE status = 'completed'),
			COUNT(*)
		FROM tasks
		WHERE assignee_id = $1
		  AND due_date >= $2
		  AND due_date <= $3
	`

	var completed, total int
	if err := t.db.QueryRow(ctx, query, employeeID, from, to).Scan(&completed, &total); err != nil {
		return 0, 0, fmt.Errorf("failed to count tasks: %w", err)
	}

	return completed, total, nil
}

func NewTaskRepository(db *database.DB) dashboard.TaskRepository {
	return &taskRepository{db: db}
}
