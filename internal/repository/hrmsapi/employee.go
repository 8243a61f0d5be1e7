package hrmsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/employee"
)

type employeeRepositoryImpl struct {
	client *Client
}

func NewEmployeeRepository(client *Client) employee.EmployeeRepository {
	return &employeeRepositoryImpl{client: client}
}

// employeePayload accepts the camelCase aliases and the snake_case names.
type employeePayload struct {
	ID            string  `json:"id"`
	MongoID       string  `json:"_id"`
	EmployeeID    string  `json:"employee_id"`
	EmployeeIDAlt string  `json:"employeeId"`
	FullName      string  `json:"full_name"`
	FullNameAlt   string  `json:"fullName"`
	Email         string  `json:"email"`
	Department    string  `json:"department"`
	Position      *string `json:"position"`
	Status        string  `json:"status"`
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func (p employeePayload) toEmployee() employee.Employee {
	status := employee.EmployeeStatus(strings.ToLower(p.Status))
	if status == "" {
		status = employee.EmployeeStatusActive
	}
	return employee.Employee{
		ID:         firstNonEmpty(p.ID, p.MongoID),
		EmployeeID: strings.ToUpper(firstNonEmpty(p.EmployeeID, p.EmployeeIDAlt)),
		FullName:   firstNonEmpty(p.FullName, p.FullNameAlt),
		Email:      p.Email,
		Department: p.Department,
		Position:   p.Position,
		Status:     status,
	}
}

type employeeListPayload struct {
	Total int64             `json:"total"`
	Data  []employeePayload `json:"data"`
}

// GetByEmployeeID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByEmployeeID(ctx context.Context, employeeID string) (employee.Employee, error) {
	var raw json.RawMessage
	path := "/api/v1/employees/" + url.PathEscape(employeeID)
	if err := r.client.do(ctx, http.MethodGet, path, nil, nil, &raw); err != nil {
		if errors.Is(err, errNotFound) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	var payload employeePayload
	if err := json.Unmarshal(unwrapData(raw), &payload); err != nil {
		return employee.Employee{}, fmt.Errorf("failed to decode employee: %w", err)
	}

	return payload.toEmployee(), nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	params := url.Values{}
	params.Set("skip", strconv.Itoa(filter.Offset()))
	params.Set("limit", strconv.Itoa(filter.Limit))
	if filter.Search != nil && *filter.Search != "" {
		params.Set("search", *filter.Search)
	}
	if filter.Department != nil && *filter.Department != "" {
		params.Set("department", *filter.Department)
	}

	var payload employeeListPayload
	if err := r.client.do(ctx, http.MethodGet, "/api/v1/employees", params, nil, &payload); err != nil {
		return nil, 0, fmt.Errorf("failed to list employees: %w", err)
	}

	employees := make([]employee.Employee, 0, len(payload.Data))
	for _, item := range payload.Data {
		employees = append(employees, item.toEmployee())
	}

	return employees, payload.Total, nil
}

type createEmployeePayload struct {
	EmployeeID string  `json:"employee_id"`
	FullName   string  `json:"full_name"`
	Email      string  `json:"email"`
	Department string  `json:"department"`
	Position   *string `json:"position,omitempty"`
	Status     string  `json:"status,omitempty"`
}

// Create implements employee.EmployeeRepository. Duplicates come back from
// the API as a rejection carrying its detail.
func (r *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	body := createEmployeePayload{
		EmployeeID: newEmployee.EmployeeID,
		FullName:   newEmployee.FullName,
		Email:      newEmployee.Email,
		Department: newEmployee.Department,
		Position:   newEmployee.Position,
		Status:     string(newEmployee.Status),
	}

	var raw json.RawMessage
	if err := r.client.do(ctx, http.MethodPost, "/api/v1/employees", nil, body, &raw); err != nil {
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	var payload employeePayload
	if err := json.Unmarshal(unwrapData(raw), &payload); err != nil {
		return employee.Employee{}, fmt.Errorf("failed to decode created employee: %w", err)
	}

	return payload.toEmployee(), nil
}

// SoftDelete implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) SoftDelete(ctx context.Context, employeeID string) error {
	path := "/api/v1/employees/" + url.PathEscape(employeeID)
	if err := r.client.do(ctx, http.MethodDelete, path, nil, nil, nil); err != nil {
		if errors.Is(err, errNotFound) {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	return nil
}
