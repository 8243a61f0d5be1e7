package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/employee"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	employee.EmployeeRepository
	monthViews *MonthViewStore
	location   *time.Location
	now        func() time.Time

	group singleflight.Group
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	monthViews *MonthViewStore,
	location *time.Location,
) attendance.AttendanceService {
	return newAttendanceService(attendanceRepo, employeeRepo, monthViews, location)
}

func newAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	monthViews *MonthViewStore,
	location *time.Location,
) *AttendanceServiceImpl {
	if monthViews == nil {
		monthViews = NewMonthViewStore(0)
	}
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		EmployeeRepository:   employeeRepo,
		monthViews:           monthViews,
		location:             locationOrLocal(location),
		now:                  time.Now,
	}
}

// GetMonthView implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetMonthView(ctx context.Context, req attendance.MonthViewRequest) (attendance.MonthViewResponse, error) {
	now := s.now().In(s.location)
	if req.Year == 0 {
		req.Year = now.Year()
	}
	if req.Month == 0 {
		req.Month = int(now.Month())
	}
	if err := req.Validate(); err != nil {
		return attendance.MonthViewResponse{}, err
	}

	monthRange := ResolveMonth(req.Year, req.Month)
	key := MonthViewKey{
		EmployeeID: req.EmployeeID,
		StartDate:  monthRange.StartDate,
		EndDate:    monthRange.EndDate,
	}

	if view, ok := s.monthViews.Get(key); ok {
		return view, nil
	}

	epoch := s.monthViews.begin(key.EmployeeID)
	defer s.monthViews.end(key.EmployeeID)
	flightKey := key.String() + "#" + strconv.FormatUint(epoch, 10)

	result, err, _ := s.group.Do(flightKey, func() (interface{}, error) {
		// Shared by every waiter, so one caller going away must not cancel it.
		view, err := s.loadMonthView(context.WithoutCancel(ctx), key, monthRange)
		if err != nil {
			return nil, err
		}
		s.monthViews.store(key, epoch, view)
		return view, nil
	})
	if err != nil {
		return attendance.MonthViewResponse{}, err
	}

	return result.(attendance.MonthViewResponse), nil
}

func (s *AttendanceServiceImpl) loadMonthView(ctx context.Context, key MonthViewKey, monthRange attendance.MonthRange) (attendance.MonthViewResponse, error) {
	query := attendance.RecordQuery{
		EmployeeID: key.EmployeeID,
		StartDate:  monthRange.StartDate,
		EndDate:    monthRange.EndDate,
	}

	var (
		emp     employee.Employee
		records []attendance.Record
		server  *attendance.ServerStats
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		emp, err = s.EmployeeRepository.GetByEmployeeID(gctx, key.EmployeeID)
		if err != nil {
			if errors.Is(err, employee.ErrEmployeeNotFound) {
				return employee.ErrEmployeeNotFound
			}
			return fmt.Errorf("failed to get employee: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		records, err = s.AttendanceRepository.ListRecords(gctx, query)
		if err != nil {
			return fmt.Errorf("%w: %w", attendance.ErrRecordsUnavailable, err)
		}
		return nil
	})

	g.Go(func() error {
		stats, err := s.AttendanceRepository.GetStats(gctx, query)
		if err != nil {
			if gctx.Err() == nil {
				slog.Warn("Attendance stats unavailable, counting rows instead",
					"employee_id", key.EmployeeID,
					"start_date", query.StartDate,
					"end_date", query.EndDate,
					"error", err,
				)
			}
			return nil
		}
		server = stats
		return nil
	})

	if err := g.Wait(); err != nil {
		return attendance.MonthViewResponse{}, err
	}

	days := DaysInMonth(monthRange.Year, monthRange.Month)
	rows := BuildGrid(days, IndexRecords(records, s.location))

	var fallback attendance.StatsInput
	if server == nil {
		fallback = CountRows(rows)
	}

	return attendance.MonthViewResponse{
		Employee:    mapEmployeeToSummary(emp),
		Range:       monthRange,
		Rows:        rows,
		Stats:       NormalizeStats(server, fallback),
		RecordCount: len(records),
	}, nil
}

// MarkAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) MarkAttendance(ctx context.Context, req attendance.MarkAttendanceRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	today := attendance.NewCalendarDay(s.now().In(s.location))
	if attendance.CalendarDay(req.Date) > today {
		return attendance.RecordResponse{}, attendance.ErrFutureDate
	}

	record, err := s.AttendanceRepository.MarkAttendance(ctx, req)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to mark attendance: %w", err)
	}

	invalidated := s.monthViews.Invalidate(req.EmployeeID)
	slog.Info("Attendance marked",
		"employee_id", req.EmployeeID,
		"date", req.Date,
		"status", req.Status,
		"invalidated_views", invalidated,
	)

	date := DateKey(record.Date, s.location)
	if date == "" {
		date = attendance.CalendarDay(req.Date)
	}
	status := record.Status
	if status == "" || status == attendance.StatusUnknown {
		status = attendance.ParseStatus(req.Status)
	}

	return attendance.RecordResponse{
		ID:         record.ID,
		EmployeeID: req.EmployeeID,
		Date:       date,
		Status:     status,
	}, nil
}

// YearOptions implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) YearOptions(ctx context.Context) []attendance.YearOption {
	return YearOptions(s.now().In(s.location))
}

func mapEmployeeToSummary(emp employee.Employee) attendance.EmployeeSummary {
	summary := attendance.EmployeeSummary{
		EmployeeID: emp.EmployeeID,
		FullName:   emp.FullName,
		Position:   emp.Position,
	}
	if emp.Department != "" {
		department := emp.Department
		summary.Department = &department
	}
	return summary
}
