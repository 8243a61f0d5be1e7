package attendance

import (
	"time"

	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/attendance"
)

// ResolveMonth returns the inclusive first and last day of month.
// month must be 1-12; callers validate it.
func ResolveMonth(year, month int) attendance.MonthRange {
	first := civilDay(year, month, 1)
	// Day 0 of the next month is the last day of this one.
	last := civilDay(year, month+1, 0)

	return attendance.MonthRange{
		Year:      year,
		Month:     month,
		StartDate: attendance.NewCalendarDay(first),
		EndDate:   attendance.NewCalendarDay(last),
	}
}

// DaysInMonth returns every day of month in ascending order.
func DaysInMonth(year, month int) []attendance.CalendarDay {
	lastDay := civilDay(year, month+1, 0).Day()

	days := make([]attendance.CalendarDay, 0, lastDay)
	for day := 1; day <= lastDay; day++ {
		days = append(days, attendance.NewCalendarDay(civilDay(year, month, day)))
	}
	return days
}

// civilDay does date arithmetic in UTC. Local midnight does not exist in
// zones whose DST starts at 00:00, and Go resolves it into the previous day.
func civilDay(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// YearOptions returns the year of now and the four before it, newest first.
func YearOptions(now time.Time) []attendance.YearOption {
	options := make([]attendance.YearOption, 0, 5)
	for i := 0; i < 5; i++ {
		year := now.Year() - i
		options = append(options, attendance.YearOption{
			Value: year,
			Label: time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC).Format("2006"),
		})
	}
	return options
}

func locationOrLocal(loc *time.Location) *time.Location {
	if loc == nil {
		return time.Local
	}
	return loc
}
