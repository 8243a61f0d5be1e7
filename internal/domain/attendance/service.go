package attendance

import "context"

type AttendanceService interface {
	GetMonthView(ctx context.Context, req MonthViewRequest) (MonthViewResponse, error)
	MarkAttendance(ctx context.Context, req MarkAttendanceRequest) (RecordResponse, error)
	YearOptions(ctx context.Context) []YearOption
}
