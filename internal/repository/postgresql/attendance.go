package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/staffhub/staffhub-backend-go/internal/domain/attendance"
	"github.com/staffhub/staffhub-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

const attendanceColumns = `
	id, employee_id, date, check_in, check_out,
	break_start, break_end, total_break_minutes, working_minutes,
	status, created_at, updated_at
`

func scanRecord(row pgx.Row) (attendance.Record, error) {
	var rec attendance.Record
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.Date, &rec.CheckIn, &rec.CheckOut,
		&rec.BreakStart, &rec.BreakEnd, &rec.TotalBreakMinutes, &rec.WorkingMinutes,
		&rec.Status, &rec.CreatedAt, &rec.UpdatedAt,
	)
	return rec, err
}

// Create implements attendance.AttendanceRepository.
// The unique index on (employee_id, date) is the write-time guard against
// two concurrent first check-ins for the same day.
func (a *attendanceRepository) Create(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	query := `
		INSERT INTO attendance_records (
			id, employee_id, date, check_in, check_out,
			break_start, break_end, total_break_minutes, working_minutes, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		) RETURNING created_at, updated_at
	`

	err := a.db.QueryRow(ctx, query,
		record.ID,
		record.EmployeeID,
		record.Date,
		record.CheckIn,
		record.CheckOut,
		record.BreakStart,
		record.BreakEnd,
		record.TotalBreakMinutes,
		record.WorkingMinutes,
		record.Status,
	).Scan(&record.CreatedAt, &record.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return attendance.Record{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Record{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return record, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Record, error) {
	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE employee_id = $1
		  AND date = $2
		LIMIT 1
	`

	rec, err := scanRecord(a.db.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // No record for that day
		}
		return nil, fmt.Errorf("failed to get attendance record by employee and date: %w", err)
	}

	return &rec, nil
}

// SetCheckIn implements attendance.AttendanceRepository.
func (a *attendanceRepository) SetCheckIn(ctx context.Context, id string, at time.Time, status attendance.Status) error {
	query := `
		UPDATE attendance_records
		SET check_in = $2, status = $3, updated_at = NOW()
		WHERE id = $1
		  AND check_in IS NULL
		RETURNING id
	`

	var updatedID string
	if err := a.db.QueryRow(ctx, query, id, at, status).Scan(&updatedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.ErrAlreadyCheckedIn
		}
		return fmt.Errorf("failed to set check-in: %w", err)
	}

	return nil
}

// SetCheckOut implements attendance.AttendanceRepository.
// An open break is closed with the day so both break timestamps stay
// inside [check_in, check_out).
func (a *attendanceRepository) SetCheckOut(ctx context.Context, id string, at time.Time, workingMinutes int, totalBreakMinutes int, status attendance.Status) error {
	query := `
		UPDATE attendance_records
		SET check_out = $2,
		    working_minutes = $3,
		    total_break_minutes = $4,
		    break_end = CASE WHEN break_start IS NOT NULL AND break_end IS NULL THEN $2 ELSE break_end END,
		    status = $5,
		    updated_at = NOW()
		WHERE id = $1
		  AND check_in IS NOT NULL
		  AND check_out IS NULL
		RETURNING id
	`

	var updatedID string
	if err := a.db.QueryRow(ctx, query, id, at, workingMinutes, totalBreakMinutes, status).Scan(&updatedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.ErrAlreadyCheckedOut
		}
		return fmt.Errorf("failed to set check-out: %w", err)
	}

	return nil
}

// SetBreakStart implements attendance.AttendanceRepository.
func (a *attendanceRepository) SetBreakStart(ctx context.Context, id string, at time.Time) error {
	query := `
		UPDATE attendance_records
		SET break_start = $2, break_end = NULL, updated_at = NOW()
		WHERE id = $1
		  AND check_in IS NOT NULL
		  AND check_out IS NULL
		  AND (break_start IS NULL OR break_end IS NOT NULL)
		RETURNING id
	`

	var updatedID string
	if err := a.db.QueryRow(ctx, query, id, at).Scan(&updatedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.ErrBreakAlreadyActive
		}
		return fmt.Errorf("failed to set break start: %w", err)
	}

	return nil
}

// SetBreakEnd implements attendance.AttendanceRepository.
func (a *attendanceRepository) SetBreakEnd(ctx context.Context, id string, at time.Time, totalBreakMinutes int) error {
	query := `
		UPDATE attendance_records
		SET break_end = $2, total_break_minutes = $3, updated_at = NOW()
		WHERE id = $1
		  AND break_start IS NOT NULL
		  AND break_end IS NULL
		RETURNING id
	`

	var updatedID string
	if err := a.db.QueryRow(ctx, query, id, at, totalBreakMinutes).Scan(&updatedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.ErrNoActiveBreak
		}
		return fmt.Errorf("failed to set break end: %w", err)
	}

	return nil
}

// ListByEmployeeAndRange implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Record, error) {
	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE employee_id = $1
		  AND date >= $2
		  AND date <= $3
		ORDER BY date ASC
	`

	rows, err := a.db.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}
