package employee

import "context"

type EmployeeService interface {
	GetEmployee(ctx context.Context, employeeID string) (EmployeeResponse, error)
	ListEmployees(ctx context.Context, filter EmployeeFilter) (ListEmployeeResponse, error)
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	DeleteEmployee(ctx context.Context, employeeID string) error
}
