package attendance

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/attendance"
)

// Timestamps carrying their own offset are converted into the calendar zone.
var zonedLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02T15:04Z07:00",
}

// Timestamps without an offset are wall-clock time in the calendar zone, so
// their written date is the calendar day.
var naiveLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
}

// DateKey normalises a raw record date onto a calendar day in loc.
//
// A bare YYYY-MM-DD is taken as that calendar date, never shifted through UTC.
// A value that parses as none of the known forms falls back to its first ten
// characters, so a malformed record still lands on some key.
func DateKey(raw string, loc *time.Location) attendance.CalendarDay {
	loc = locationOrLocal(loc)
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	if t, err := time.Parse(attendance.DateLayout, raw); err == nil {
		return attendance.NewCalendarDay(t)
	}
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return attendance.NewCalendarDay(t.In(loc))
		}
	}
	for _, layout := range naiveLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return attendance.NewCalendarDay(t)
		}
	}

	if len(raw) > len(attendance.DateLayout) {
		return attendance.CalendarDay(raw[:len(attendance.DateLayout)])
	}
	return attendance.CalendarDay(raw)
}

// IndexRecords keys records by calendar day. When two records share a day the
// later one in input order wins. Records with an empty date are skipped.
func IndexRecords(records []attendance.Record, loc *time.Location) map[attendance.CalendarDay]attendance.Record {
	index := make(map[attendance.CalendarDay]attendance.Record, len(records))
	for _, record := range records {
		key := DateKey(record.Date, loc)
		if key == "" {
			continue
		}
		index[key] = record
	}
	return index
}

// BuildGrid produces exactly one row per day, in the order of days. Days with
// no record get status NA and no id.
func BuildGrid(days []attendance.CalendarDay, index map[attendance.CalendarDay]attendance.Record) []attendance.DisplayRow {
	rows := make([]attendance.DisplayRow, 0, len(days))
	for _, day := range days {
		row := attendance.DisplayRow{
			Date:    day,
			Weekday: day.Weekday(),
			Status:  attendance.StatusNA,
		}

		if record, ok := index[day]; ok {
			if record.ID != "" {
				id := record.ID
				row.ID = &id
			}
			row.Status = record.Status
			if row.Status == "" {
				row.Status = attendance.StatusUnknown
			}
		}

		rows = append(rows, row)
	}
	return rows
}
