package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/upstream"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// The upstream refused the request; pass its reason through
	var rejected *upstream.RejectedError
	if errors.As(err, &rejected) {
		BadRequest(w, rejected.Detail, nil)
		return
	}

	switch {
	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, "Employee with this ID already exists")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Employee with this email already exists")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceAlreadyMarked):
		Conflict(w, "Attendance already marked for this date")
	case errors.Is(err, attendance.ErrFutureDate):
		BadRequest(w, "Attendance date cannot be in the future", nil)

	// Upstream errors
	case errors.Is(err, upstream.ErrUnavailable), errors.Is(err, attendance.ErrRecordsUnavailable):
		slog.Error("Upstream source failed", "error", err)
		BadGateway(w, "Attendance source is unavailable, please retry")

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
