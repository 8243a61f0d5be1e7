package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/database"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolation = "23505"
	defaultMarkedBy = "Admin"
)

type attendanceRepository struct {
	db *database.DB
}

// ListRecords implements attendance.AttendanceRepository.
// Rows for one day come back oldest mark first, so the newest wins when indexed.
func (a *attendanceRepository) ListRecords(ctx context.Context, query attendance.RecordQuery) ([]attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	sql := `
		SELECT id::text, date, status
		FROM attendances
		WHERE UPPER(employee_id) = $1
		  AND date >= $2::date AND date <= $3::date
		ORDER BY date ASC, marked_at ASC NULLS FIRST
	`

	rows, err := q.Query(ctx, sql, query.EmployeeID, query.StartDate.String(), query.EndDate.String())
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		var (
			id     string
			date   time.Time
			status string
		)
		if err := rows.Scan(&id, &date, &status); err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, attendance.Record{
			ID:     id,
			Date:   date.Format(attendance.DateLayout),
			Status: attendance.ParseStatus(status),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance records: %w", err)
	}

	return records, nil
}

// GetStats implements attendance.AttendanceRepository. The rate is left unset
// so it is derived from the counters.
func (a *attendanceRepository) GetStats(ctx context.Context, query attendance.RecordQuery) (*attendance.ServerStats, error) {
	q := GetQuerier(ctx, a.db)

	sql := `
		SELECT
			COUNT(DISTINCT date) as total_days,
			COALESCE(SUM(CASE WHEN LOWER(TRIM(status)) = 'present' THEN 1 ELSE 0 END), 0) as present_days,
			COALESCE(SUM(CASE WHEN LOWER(TRIM(status)) = 'absent' THEN 1 ELSE 0 END), 0) as absent_days,
			COALESCE(SUM(CASE WHEN LOWER(TRIM(status)) IN ('half-day', 'half_day', 'halfday') THEN 1 ELSE 0 END), 0) as half_days,
			COALESCE(SUM(CASE WHEN LOWER(TRIM(status)) = 'leave' THEN 1 ELSE 0 END), 0) as leave_days
		FROM attendances
		WHERE UPPER(employee_id) = $1
		  AND date >= $2::date AND date <= $3::date
	`

	var total, present, absent, half, leave int64
	err := q.QueryRow(ctx, sql, query.EmployeeID, query.StartDate.String(), query.EndDate.String()).Scan(
		&total, &present, &absent, &half, &leave,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance stats: %w", err)
	}

	return &attendance.ServerStats{
		TotalDays:   floatPtr(total),
		PresentDays: floatPtr(present),
		AbsentDays:  floatPtr(absent),
		HalfDays:    floatPtr(half),
		LeaveDays:   floatPtr(leave),
	}, nil
}

// MarkAttendance implements attendance.AttendanceRepository.
func (a *attendanceRepository) MarkAttendance(ctx context.Context, req attendance.MarkAttendanceRequest) (attendance.Record, error) {
	markedBy := req.MarkedBy
	if markedBy == "" {
		markedBy = defaultMarkedBy
	}

	var record attendance.Record
	err := WithTransaction(ctx, a.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, a.db)

		var employeeExists bool
		if err := q.QueryRow(ctx, `
			SELECT EXISTS(SELECT 1 FROM employees WHERE UPPER(employee_id) = $1 AND deleted_at IS NULL)
		`, req.EmployeeID).Scan(&employeeExists); err != nil {
			return fmt.Errorf("failed to check employee: %w", err)
		}
		if !employeeExists {
			return employee.ErrEmployeeNotFound
		}

		var alreadyMarked bool
		if err := q.QueryRow(ctx, `
			SELECT EXISTS(SELECT 1 FROM attendances WHERE UPPER(employee_id) = $1 AND date = $2::date)
		`, req.EmployeeID, req.Date).Scan(&alreadyMarked); err != nil {
			return fmt.Errorf("failed to check existing attendance: %w", err)
		}
		if alreadyMarked {
			return attendance.ErrAttendanceAlreadyMarked
		}

		var (
			date   time.Time
			status string
		)
		err := q.QueryRow(ctx, `
			INSERT INTO attendances (employee_id, date, status, notes, marked_by, marked_at)
			VALUES ($1, $2::date, $3, $4, $5, NOW())
			RETURNING id::text, date, status
		`, req.EmployeeID, req.Date, req.Status, req.Notes, markedBy).Scan(&record.ID, &date, &status)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
				return attendance.ErrAttendanceAlreadyMarked
			}
			return fmt.Errorf("failed to insert attendance: %w", err)
		}

		record.Date = date.Format(attendance.DateLayout)
		record.Status = attendance.ParseStatus(status)
		return nil
	})
	if err != nil {
		return attendance.Record{}, err
	}

	return record, nil
}

func floatPtr(v int64) *float64 {
	f := float64(v)
	return &f
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{
		db: db,
	}
}
