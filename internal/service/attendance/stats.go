package attendance

import (
	"math"

	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/attendance"
	"github.com/shopspring/decimal"
)

// NormalizeStats merges server-reported stats with fallback counters.
//
// A server rate that is present and not NaN is used as-is, even when it
// disagrees with the counters. Otherwise the rate is computed as
// (present + half/2) / workingDays as a percentage with one decimal.
// server may be nil.
func NormalizeStats(server *attendance.ServerStats, fallback attendance.StatsInput) attendance.AttendanceStats {
	counters := fallback
	if server != nil {
		counters.WorkingDays = valueOr(server.TotalDays, fallback.WorkingDays)
		counters.PresentDays = valueOr(server.PresentDays, fallback.PresentDays)
		counters.AbsentDays = valueOr(server.AbsentDays, fallback.AbsentDays)
		counters.HalfDays = valueOr(server.HalfDays, fallback.HalfDays)
		counters.LeaveDays = valueOr(server.LeaveDays, fallback.LeaveDays)
	}

	var rate float64
	source := attendance.RateSourceComputed
	if server != nil && server.AttendanceRate != nil && !math.IsNaN(*server.AttendanceRate) {
		rate = *server.AttendanceRate
		source = attendance.RateSourceServer
	} else {
		rate = ComputeRate(counters.PresentDays, counters.HalfDays, counters.WorkingDays)
	}
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		rate = 0
	}

	// A server rate is shown as reported; only computed rates are fixed to one decimal.
	display := decimal.NewFromFloat(rate).StringFixed(1)
	if source == attendance.RateSourceServer {
		display = decimal.NewFromFloat(rate).String()
	}

	return attendance.AttendanceStats{
		WorkingDays:    toCount(counters.WorkingDays),
		PresentDays:    toCount(counters.PresentDays),
		AbsentDays:     toCount(counters.AbsentDays),
		HalfDays:       toCount(counters.HalfDays),
		LeaveDays:      toCount(counters.LeaveDays),
		AttendanceRate: rate,
		RateDisplay:    display,
		RateSource:     source,
	}
}

// ComputeRate returns the attendance percentage rounded half-up to one decimal.
// Zero working days yields 0.
func ComputeRate(present, half, workingDays float64) float64 {
	if workingDays == 0 {
		return 0
	}
	effective := present + 0.5*half
	return math.Floor((effective/workingDays)*1000+0.5) / 10
}

// CountRows derives counters from a reconciled grid. Working days are the
// days that carry a record.
func CountRows(rows []attendance.DisplayRow) attendance.StatsInput {
	var in attendance.StatsInput
	for _, row := range rows {
		switch row.Status {
		case attendance.StatusNA:
			continue
		case attendance.StatusPresent:
			in.PresentDays++
		case attendance.StatusAbsent:
			in.AbsentDays++
		case attendance.StatusHalfDay:
			in.HalfDays++
		case attendance.StatusLeave:
			in.LeaveDays++
		}
		in.WorkingDays++
	}
	return in
}

func valueOr(v *float64, fallback float64) float64 {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return fallback
	}
	return *v
}

func toCount(v float64) int {
	return int(math.Round(v))
}
