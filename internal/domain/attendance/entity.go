package attendance

import (
	"strings"
	"time"
)

// DateLayout is the wire and key format of a calendar day.
const DateLayout = "2006-01-02"

type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusHalfDay Status = "half-day"
	StatusLeave   Status = "leave"
	StatusNA      Status = "NA"
	StatusUnknown Status = "unknown"
)

// MarkableStatuses are the statuses a caller may record for a day.
var MarkableStatuses = []string{
	string(StatusPresent),
	string(StatusAbsent),
	string(StatusHalfDay),
	string(StatusLeave),
}

// ParseStatus maps a raw source status onto the closed Status set.
// Unrecognised values become StatusUnknown rather than being passed through.
func ParseStatus(raw string) Status {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "present":
		return StatusPresent
	case "absent":
		return StatusAbsent
	case "half-day", "half_day", "halfday":
		return StatusHalfDay
	case "leave":
		return StatusLeave
	case "na", "n/a":
		return StatusNA
	default:
		return StatusUnknown
	}
}

// CalendarDay is a local calendar date rendered as YYYY-MM-DD.
type CalendarDay string

// NewCalendarDay renders t's date fields in t's own location.
func NewCalendarDay(t time.Time) CalendarDay {
	return CalendarDay(t.Format(DateLayout))
}

func (d CalendarDay) String() string {
	return string(d)
}

// Weekday returns the short English day name, or "" when d is not a valid date.
func (d CalendarDay) Weekday() string {
	t, err := time.Parse(DateLayout, string(d))
	if err != nil {
		return ""
	}
	return t.Weekday().String()[:3]
}

// Record is one attendance record as delivered by a source. Date is kept raw;
// it may be a bare date or a full timestamp.
type Record struct {
	ID     string
	Date   string
	Status Status
}

// DisplayRow is one day of the reconciled month grid.
type DisplayRow struct {
	ID      *string     `json:"id"`
	Date    CalendarDay `json:"date"`
	Weekday string      `json:"day"`
	Status  Status      `json:"status"`
}

// MonthRange is the inclusive first and last day of a month.
type MonthRange struct {
	Year      int         `json:"year"`
	Month     int         `json:"month"`
	StartDate CalendarDay `json:"start_date"`
	EndDate   CalendarDay `json:"end_date"`
}

// ServerStats is the stats payload reported by a source. Every field is
// optional; a nil field means the source did not report it.
type ServerStats struct {
	TotalDays      *float64
	PresentDays    *float64
	AbsentDays     *float64
	HalfDays       *float64
	LeaveDays      *float64
	AttendanceRate *float64
}

// StatsInput holds the fallback counters used when the server omits a value.
type StatsInput struct {
	WorkingDays float64
	PresentDays float64
	AbsentDays  float64
	HalfDays    float64
	LeaveDays   float64
}

const (
	RateSourceServer   = "server"
	RateSourceComputed = "computed"
)

type AttendanceStats struct {
	WorkingDays    int     `json:"working_days"`
	PresentDays    int     `json:"present_days"`
	AbsentDays     int     `json:"absent_days"`
	HalfDays       int     `json:"half_days"`
	LeaveDays      int     `json:"leave_days"`
	AttendanceRate float64 `json:"attendance_rate"`
	RateDisplay    string  `json:"attendance_rate_display"`
	RateSource     string  `json:"rate_source"`
}
