package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/validator"
)

// MonthViewInvalidator drops cached month views of one employee.
type MonthViewInvalidator interface {
	Invalidate(employeeID string) int
}

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	monthViews   MonthViewInvalidator
}

// NewEmployeeService builds the directory service. monthViews may be nil when
// nothing caches per-employee views.
func NewEmployeeService(employeeRepo employee.EmployeeRepository, monthViews MonthViewInvalidator) employee.EmployeeService {
	return &EmployeeServiceImpl{
		employeeRepo: employeeRepo,
		monthViews:   monthViews,
	}
}

func mapEmployeeToResponse(emp employee.Employee) employee.EmployeeResponse {
	var createdAt *string
	if emp.CreatedAt != nil {
		s := emp.CreatedAt.Format(time.RFC3339)
		createdAt = &s
	}

	status := string(emp.Status)
	if status == "" {
		status = string(employee.EmployeeStatusActive)
	}

	return employee.EmployeeResponse{
		ID:         emp.ID,
		EmployeeID: emp.EmployeeID,
		FullName:   emp.FullName,
		Email:      emp.Email,
		Department: emp.Department,
		Position:   emp.Position,
		Status:     status,
		CreatedAt:  createdAt,
	}
}

func normalizeEmployeeID(employeeID string) (string, error) {
	employeeID = strings.ToUpper(strings.TrimSpace(employeeID))
	if !validator.IsValidEmployeeID(employeeID) {
		return "", validator.ValidationErrors{{
			Field:   "employee_id",
			Message: "employee_id must look like EMP001",
		}}
	}
	return employeeID, nil
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, employeeID string) (employee.EmployeeResponse, error) {
	employeeID, err := normalizeEmployeeID(employeeID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := s.employeeRepo.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return mapEmployeeToResponse(emp), nil
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	if err := filter.Validate(); err != nil {
		return employee.ListEmployeeResponse{}, err
	}

	employees, total, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return employee.ListEmployeeResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, mapEmployeeToResponse(emp))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))
	showing := fmt.Sprintf("%d-%d of %d", filter.Offset()+1, min(filter.Page*filter.Limit, int(total)), total)
	if total == 0 || len(responses) == 0 {
		showing = fmt.Sprintf("0 of %d", total)
	}

	return employee.ListEmployeeResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Showing:    showing,
		Employees:  responses,
	}, nil
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	created, err := s.employeeRepo.Create(ctx, employee.Employee{
		EmployeeID: req.EmployeeID,
		FullName:   req.FullName,
		Email:      req.Email,
		Department: req.Department,
		Position:   req.Position,
		Status:     employee.EmployeeStatus(req.Status),
	})
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to create employee: %w", err)
	}

	slog.Info("Employee created", "employee_id", created.EmployeeID)
	return mapEmployeeToResponse(created), nil
}

// DeleteEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, employeeID string) error {
	employeeID, err := normalizeEmployeeID(employeeID)
	if err != nil {
		return err
	}

	if err := s.employeeRepo.SoftDelete(ctx, employeeID); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	invalidated := 0
	if s.monthViews != nil {
		invalidated = s.monthViews.Invalidate(employeeID)
	}
	slog.Info("Employee deleted", "employee_id", employeeID, "invalidated_views", invalidated)
	return nil
}
