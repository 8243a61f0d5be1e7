package attendance

import "errors"

// Attendance domain errors
var (
	ErrAttendanceAlreadyMarked = errors.New("attendance already marked for this date")
	ErrFutureDate              = errors.New("cannot mark attendance for a future date")
	ErrRecordsUnavailable      = errors.New("attendance records could not be loaded")
)
