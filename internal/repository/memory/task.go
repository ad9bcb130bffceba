package memory

import (
	"context"
	"sync"
	"time"
)

// Task is a minimal view of the external task collaborator's records.
type Task struct {
	ID         string
	AssigneeID string
	DueDate    time.Time
	Completed  bool
}

type TaskRepository struct {
	mu    sync.RWMutex
	tasks []Task
}

func NewTaskRepository() *TaskRepository {
	return &TaskRepository{}
}

// CountByEmployeeDueBetween implements dashboard.TaskRepository.
func (r *TaskRepository) CountByEmployeeDueBetween(ctx context.Context, employeeID string, from, to time.Time) (int, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var completed, total int
	for _, task := range r.tasks {
		if task.AssigneeID != employeeID {
			continue
		}
		if task.DueDate.Before(from) || task.DueDate.After(to) {
			continue
		}
		total++
		if task.Completed {
			completed++
		}
	}

	return completed, total, nil
}

// Seed adds a task. Test helper.
func (r *TaskRepository) Seed(task Task) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks = append(r.tasks, task)
}
