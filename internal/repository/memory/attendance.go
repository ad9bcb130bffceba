// Package memory provides in-process repository implementations with the
// same conditional-write semantics as the PostgreSQL ones. They back the
// service tests and are usable as a storage backend for local tooling.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/staffhub/staffhub-backend-go/internal/domain/attendance"
)

type AttendanceRepository struct {
	mu      sync.RWMutex
	records map[string]attendance.Record // id -> record
	byDay   map[string]string            // employeeID|date -> id
}

func NewAttendanceRepository() *AttendanceRepository {
	return &AttendanceRepository{
		records: make(map[string]attendance.Record),
		byDay:   make(map[string]string),
	}
}

func dayKey(employeeID string, date time.Time) string {
	return employeeID + "|" + date.Format("2006-01-02")
}

// Create implements attendance.AttendanceRepository.
func (r *AttendanceRepository) Create(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := dayKey(record.EmployeeID, record.Date)
	if _, exists := r.byDay[key]; exists {
		return attendance.Record{}, attendance.ErrAlreadyCheckedIn
	}

	now := time.Now()
	record.CreatedAt = now
	record.UpdatedAt = now
	r.records[record.ID] = record
	r.byDay[key] = record.ID

	return record, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (r *AttendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byDay[dayKey(employeeID, date)]
	if !ok {
		return nil, nil
	}
	record := r.records[id]
	return &record, nil
}

// SetCheckIn implements attendance.AttendanceRepository.
func (r *AttendanceRepository) SetCheckIn(ctx context.Context, id string, at time.Time, status attendance.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.records[id]
	if !ok || record.CheckIn != nil {
		return attendance.ErrAlreadyCheckedIn
	}

	record.CheckIn = &at
	record.Status = status
	record.UpdatedAt = time.Now()
	r.records[id] = record
	return nil
}

// SetCheckOut implements attendance.AttendanceRepository.
func (r *AttendanceRepository) SetCheckOut(ctx context.Context, id string, at time.Time, workingMinutes int, totalBreakMinutes int, status attendance.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.records[id]
	if !ok || record.CheckIn == nil || record.CheckOut != nil {
		return attendance.ErrAlreadyCheckedOut
	}

	record.CheckOut = &at
	record.WorkingMinutes = workingMinutes
	record.TotalBreakMinutes = totalBreakMinutes
	if record.BreakStart != nil && record.BreakEnd == nil {
		record.BreakEnd = &at
	}
	record.Status = status
	record.UpdatedAt = time.Now()
	r.records[id] = record
	return nil
}

// SetBreakStart implements attendance.AttendanceRepository.
func (r *AttendanceRepository) SetBreakStart(ctx context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.records[id]
	if !ok || record.CheckIn == nil || record.CheckOut != nil {
		return attendance.ErrBreakAlreadyActive
	}
	if record.BreakStart != nil && record.BreakEnd == nil {
		return attendance.ErrBreakAlreadyActive
	}

	record.BreakStart = &at
	record.BreakEnd = nil
	record.UpdatedAt = time.Now()
	r.records[id] = record
	return nil
}

// SetBreakEnd implements attendance.AttendanceRepository.
func (r *AttendanceRepository) SetBreakEnd(ctx context.Context, id string, at time.Time, totalBreakMinutes int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.records[id]
	if !ok || record.BreakStart == nil || record.BreakEnd != nil {
		return attendance.ErrNoActiveBreak
	}

	record.BreakEnd = &at
	record.TotalBreakMinutes = totalBreakMinutes
	record.UpdatedAt = time.Now()
	r.records[id] = record
	return nil
}

// ListByEmployeeAndRange implements attendance.AttendanceRepository.
func (r *AttendanceRepository) ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var records []attendance.Record
	for _, record := range r.records {
		if record.EmployeeID != employeeID {
			continue
		}
		if record.Date.Before(from) || record.Date.After(to) {
			continue
		}
		records = append(records, record)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})

	return records, nil
}

// Seed inserts a record directly, bypassing state-machine guards.
// Test helper for pre-populating months.
func (r *AttendanceRepository) Seed(record attendance.Record) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[record.ID] = record
	r.byDay[dayKey(record.EmployeeID, record.Date)] = record.ID
}
