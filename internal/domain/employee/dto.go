package employee

import (
	"strings"
	"unicode/utf8"

	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/validator"
)

type EmployeeFilter struct {
	Search     *string `json:"search,omitempty"`
	Department *string `json:"department,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *EmployeeFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Search != nil {
		search := strings.TrimSpace(*f.Search)
		if search == "" {
			f.Search = nil
		} else {
			f.Search = &search
		}
	}
	if f.Department != nil {
		department := strings.TrimSpace(*f.Department)
		if department == "" {
			f.Department = nil
		} else {
			f.Department = &department
		}
	}

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1 // Default page
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20 // Default limit
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Offset is the number of rows skipped before the current page.
func (f EmployeeFilter) Offset() int {
	if f.Page < 1 {
		return 0
	}
	return (f.Page - 1) * f.Limit
}

type EmployeeResponse struct {
	ID         string  `json:"id"`
	EmployeeID string  `json:"employee_id"`
	FullName   string  `json:"full_name"`
	Email      string  `json:"email"`
	Department string  `json:"department"`
	Position   *string `json:"position,omitempty"`
	Status     string  `json:"status"`
	CreatedAt  *string `json:"created_at,omitempty"`
}

type ListEmployeeResponse struct {
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
	Showing    string             `json:"showing"`
	Employees  []EmployeeResponse `json:"employees"`
}

type CreateEmployeeRequest struct {
	EmployeeID string  `json:"employee_id"`
	FullName   string  `json:"full_name"`
	Email      string  `json:"email"`
	Department string  `json:"department"`
	Position   *string `json:"position,omitempty"`
	Status     string  `json:"status,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
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
			Message: "employee_id must be EMP followed by 1-6 digits",
		})
	}

	r.FullName = strings.TrimSpace(r.FullName)
	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name is required",
		})
	} else if n := utf8.RuneCountInString(r.FullName); n < 2 || n > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name must be between 2 and 100 characters",
		})
	}

	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "invalid email format",
		})
	}

	r.Department = strings.TrimSpace(r.Department)
	if validator.IsEmpty(r.Department) {
		errs = append(errs, validator.ValidationError{
			Field:   "department",
			Message: "department is required",
		})
	}

	if r.Position != nil {
		position := strings.TrimSpace(*r.Position)
		if position == "" {
			r.Position = nil
		} else {
			r.Position = &position
		}
	}

	r.Status = strings.ToLower(strings.TrimSpace(r.Status))
	if r.Status == "" {
		r.Status = string(EmployeeStatusActive)
	}
	if !validator.IsInSlice(r.Status, []string{string(EmployeeStatusActive), string(EmployeeStatusInactive)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: active, inactive",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
