package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

// maxMarkBody bounds the mark-attendance request body.
const maxMarkBody = 1 << 20

type AttendanceHandler interface {
	GetMonthView(w http.ResponseWriter, r *http.Request)
	Mark(w http.ResponseWriter, r *http.Request)
	YearOptions(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// GetMonthView implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetMonthView(w http.ResponseWriter, r *http.Request) {
	req := attendance.MonthViewRequest{
		EmployeeID: chi.URLParam(r, "employee_id"),
	}

	var errs validator.ValidationErrors
	if year := r.URL.Query().Get("year"); year != "" {
		parsed, err := strconv.Atoi(year)
		if err != nil || !validator.IsNumeric(year) {
			errs = append(errs, validator.ValidationError{Field: "year", Message: "year must be a number"})
		} else if !validator.IsValidYear(parsed) {
			errs = append(errs, validator.ValidationError{Field: "year", Message: "year must be between 1 and 9999"})
		}
		req.Year = parsed
	}
	if month := r.URL.Query().Get("month"); month != "" {
		parsed, err := strconv.Atoi(month)
		if err != nil || !validator.IsNumeric(month) {
			errs = append(errs, validator.ValidationError{Field: "month", Message: "month must be a number"})
		} else if !validator.IsValidMonth(parsed) {
			errs = append(errs, validator.ValidationError{Field: "month", Message: "month must be between 1 and 12"})
		}
		req.Month = parsed
	}
	if len(errs) > 0 {
		response.HandleError(w, errs)
		return
	}

	view, err := h.attendanceService.GetMonthView(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, view)
}

// Mark implements AttendanceHandler.
func (h *attendanceHandlerImpl) Mark(w http.ResponseWriter, r *http.Request) {
	var req attendance.MarkAttendanceRequest

	r.Body = http.MaxBytesReader(w, r.Body, maxMarkBody)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Debug("Failed to decode mark attendance request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	record, err := h.attendanceService.MarkAttendance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Attendance marked successfully", record)
}

// YearOptions implements AttendanceHandler.
func (h *attendanceHandlerImpl) YearOptions(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.attendanceService.YearOptions(r.Context()))
}
