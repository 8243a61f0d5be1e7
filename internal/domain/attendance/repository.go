package attendance

import (
	"context"
)

// RecordQuery selects one employee's records over an inclusive date range.
type RecordQuery struct {
	EmployeeID string
	StartDate  CalendarDay
	EndDate    CalendarDay
}

// AttendanceRepository is the source of attendance records and stats.
// Implementations normalise raw statuses with ParseStatus before returning.
type AttendanceRepository interface {
	// ListRecords returns every record in the range, in source order.
	ListRecords(ctx context.Context, query RecordQuery) ([]Record, error)

	// GetStats returns the source's summary for the range.
	GetStats(ctx context.Context, query RecordQuery) (*ServerStats, error)

	// MarkAttendance records one day and returns the stored record.
	MarkAttendance(ctx context.Context, req MarkAttendanceRequest) (Record, error)
}
