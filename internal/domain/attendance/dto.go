package attendance

import (
	"strings"

	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/validator"
)

type MonthViewRequest struct {
	EmployeeID string `json:"employee_id"`
	Year       int    `json:"year"`
	Month      int    `json:"month"`
}

func (r *MonthViewRequest) Validate() error {
	var errs validator.ValidationErrors

	r.EmployeeID = strings.ToUpper(strings.TrimSpace(r.EmployeeID))
	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	} else if !validator.IsValidEmployeeID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must look like EMP001",
		})
	}

	if !validator.IsValidYear(r.Year) {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be between 1 and 9999",
		})
	}
	if !validator.IsValidMonth(r.Month) {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeSummary struct {
	EmployeeID string  `json:"employee_id"`
	FullName   string  `json:"full_name"`
	Department *string `json:"department,omitempty"`
	Position   *string `json:"position,omitempty"`
}

type MonthViewResponse struct {
	Employee    EmployeeSummary `json:"employee"`
	Range       MonthRange      `json:"range"`
	Rows        []DisplayRow    `json:"rows"`
	Stats       AttendanceStats `json:"stats"`
	RecordCount int             `json:"record_count"`
}

type MarkAttendanceRequest struct {
	EmployeeID string  `json:"employee_id"`
	Date       string  `json:"date"`
	Status     string  `json:"status"`
	Notes      *string `json:"notes,omitempty"`
	MarkedBy   string  `json:"marked_by,omitempty"`
}

func (r *MarkAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	r.EmployeeID = strings.ToUpper(strings.TrimSpace(r.EmployeeID))
	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	} else if !validator.IsValidEmployeeID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must look like EMP001",
		})
	}

	r.Date = strings.TrimSpace(r.Date)
	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if _, valid := validator.IsValidDate(r.Date); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	r.Status = strings.ToLower(strings.TrimSpace(r.Status))
	if !validator.IsInSlice(string(ParseStatus(r.Status)), MarkableStatuses) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: present, absent, half-day, leave",
		})
	} else {
		r.Status = string(ParseStatus(r.Status))
	}

	if r.Notes != nil && len(*r.Notes) > 500 {
		errs = append(errs, validator.ValidationError{
			Field:   "notes",
			Message: "notes must not exceed 500 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RecordResponse struct {
	ID         string      `json:"id"`
	EmployeeID string      `json:"employee_id"`
	Date       CalendarDay `json:"date"`
	Status     Status      `json:"status"`
}

type YearOption struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}
