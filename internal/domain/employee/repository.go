package employee

import "context"

type EmployeeRepository interface {
	// GetByEmployeeID looks an employee up by its business id (EMP001).
	GetByEmployeeID(ctx context.Context, employeeID string) (Employee, error)
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, int64, error)
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	// SoftDelete hides the employee from lookups and lists.
	SoftDelete(ctx context.Context, employeeID string) error
}
