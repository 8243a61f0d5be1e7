package attendance

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLoadLocation(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	require.NoError(t, err)
	return loc
}

func TestResolveMonth(t *testing.T) {
	tests := []struct {
		name  string
		year  int
		month int
		start attendance.CalendarDay
		end   attendance.CalendarDay
	}{
		{"leap february", 2024, 2, "2024-02-01", "2024-02-29"},
		{"common february", 2023, 2, "2023-02-01", "2023-02-28"},
		{"century non-leap", 1900, 2, "1900-02-01", "1900-02-28"},
		{"quad century leap", 2000, 2, "2000-02-01", "2000-02-29"},
		{"thirty day month", 2024, 4, "2024-04-01", "2024-04-30"},
		{"december rolls year", 2024, 12, "2024-12-01", "2024-12-31"},
		{"january", 2025, 1, "2025-01-01", "2025-01-31"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveMonth(tt.year, tt.month)
			assert.Equal(t, tt.start, got.StartDate)
			assert.Equal(t, tt.end, got.EndDate)
			assert.Equal(t, tt.year, got.Year)
			assert.Equal(t, tt.month, got.Month)
		})
	}
}

func TestDaysInMonth_Scenarios(t *testing.T) {
	// Leap February
	days := DaysInMonth(2024, 2)
	require.Len(t, days, 29)
	assert.Equal(t, attendance.CalendarDay("2024-02-01"), days[0])
	assert.Equal(t, attendance.CalendarDay("2024-02-29"), days[28])

	// Common February
	days = DaysInMonth(2023, 2)
	require.Len(t, days, 28)
	assert.Equal(t, attendance.CalendarDay("2023-02-28"), days[27])
}

func TestDaysInMonth_EveryMonth(t *testing.T) {
	for _, year := range []int{1999, 2000, 2023, 2024, 2100} {
		for month := 1; month <= 12; month++ {
			days := DaysInMonth(year, month)
			r := ResolveMonth(year, month)

			require.NotEmpty(t, days)
			assert.GreaterOrEqual(t, len(days), 28)
			assert.LessOrEqual(t, len(days), 31)
			assert.Equal(t, r.StartDate, days[0])
			assert.Equal(t, r.EndDate, days[len(days)-1])

			for i := 1; i < len(days); i++ {
				assert.Less(t, days[i-1], days[i], "days must ascend in %d-%02d", year, month)
			}
		}
	}
}

func TestDaysInMonth_AcrossDSTTransitions(t *testing.T) {
	// Both zones moved clocks forward at local midnight in these months.
	tests := []struct {
		zone  string
		year  int
		month int
		days  int
	}{
		{"America/Sao_Paulo", 2018, 11, 30},
		{"America/Santiago", 2018, 8, 31},
	}

	for _, tt := range tests {
		t.Run(tt.zone, func(t *testing.T) {
			loc := mustLoadLocation(t, tt.zone)
			days := DaysInMonth(tt.year, tt.month)
			require.Len(t, days, tt.days)

			seen := make(map[attendance.CalendarDay]bool, len(days))
			for i, day := range days {
				want := time.Date(tt.year, time.Month(tt.month), i+1, 12, 0, 0, 0, loc).Format(attendance.DateLayout)
				assert.Equal(t, attendance.CalendarDay(want), day)
				assert.False(t, seen[day], "duplicate day %s", day)
				seen[day] = true
			}
		})
	}
}

func TestDaysInMonth_Idempotent(t *testing.T) {
	first := DaysInMonth(2024, 7)
	second := DaysInMonth(2024, 7)
	assert.Equal(t, first, second)
}

func TestYearOptions(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	options := YearOptions(now)

	require.Len(t, options, 5)
	assert.Equal(t, attendance.YearOption{Value: 2025, Label: "2025"}, options[0])
	assert.Equal(t, attendance.YearOption{Value: 2021, Label: "2021"}, options[4])
}
