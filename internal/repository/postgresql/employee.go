package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{
		db: db,
	}
}

// GetByEmployeeID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByEmployeeID(ctx context.Context, employeeID string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT id::text, employee_id, full_name, email, department, position, status, created_at
		FROM employees
		WHERE UPPER(employee_id) = $1 AND deleted_at IS NULL
	`

	var emp employee.Employee
	err := q.QueryRow(ctx, query, strings.ToUpper(employeeID)).Scan(
		&emp.ID, &emp.EmployeeID, &emp.FullName, &emp.Email, &emp.Department,
		&emp.Position, &emp.Status, &emp.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by employee_id: %w", err)
	}

	return emp, nil
}

// List implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	q := GetQuerier(ctx, e.db)

	// Build WHERE conditions
	conditions := []string{"e.deleted_at IS NULL"}
	args := []interface{}{}
	argIdx := 1

	if filter.Search != nil && *filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(e.full_name ILIKE $%d OR e.employee_id ILIKE $%d OR e.email ILIKE $%d OR e.position ILIKE $%d)", argIdx, argIdx, argIdx, argIdx))
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}
	if filter.Department != nil && *filter.Department != "" {
		conditions = append(conditions, fmt.Sprintf("e.department = $%d", argIdx))
		args = append(args, *filter.Department)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	// Count query
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM employees e WHERE %s", whereClause)
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	// Main query with pagination
	query := fmt.Sprintf(`
		SELECT e.id::text, e.employee_id, e.full_name, e.email, e.department, e.position, e.status, e.created_at
		FROM employees e
		WHERE %s
		ORDER BY e.created_at DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, argIdx, argIdx+1)

	args = append(args, filter.Limit, filter.Offset())

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var emp employee.Employee
		err := rows.Scan(
			&emp.ID, &emp.EmployeeID, &emp.FullName, &emp.Email, &emp.Department,
			&emp.Position, &emp.Status, &emp.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate employees: %w", err)
	}

	return employees, total, nil
}

// Create implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	var created employee.Employee
	err := WithTransaction(ctx, e.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, e.db)

		var codeTaken, emailTaken bool
		if err := q.QueryRow(ctx, `
			SELECT
				EXISTS(SELECT 1 FROM employees WHERE UPPER(employee_id) = $1 AND deleted_at IS NULL),
				EXISTS(SELECT 1 FROM employees WHERE LOWER(email) = $2 AND deleted_at IS NULL)
		`, strings.ToUpper(newEmployee.EmployeeID), strings.ToLower(newEmployee.Email)).Scan(&codeTaken, &emailTaken); err != nil {
			return fmt.Errorf("failed to check existing employee: %w", err)
		}
		if codeTaken {
			return employee.ErrEmployeeCodeExists
		}
		if emailTaken {
			return employee.ErrEmailExists
		}

		// A soft deleted row still holds its employee_id; the unique index reports it.
		err := q.QueryRow(ctx, `
			INSERT INTO employees (employee_id, full_name, email, department, position, status)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id::text, employee_id, full_name, email, department, position, status, created_at
		`, newEmployee.EmployeeID, newEmployee.FullName, newEmployee.Email, newEmployee.Department,
			newEmployee.Position, newEmployee.Status,
		).Scan(
			&created.ID, &created.EmployeeID, &created.FullName, &created.Email, &created.Department,
			&created.Position, &created.Status, &created.CreatedAt,
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
				return employee.ErrEmployeeCodeExists
			}
			return fmt.Errorf("failed to insert employee: %w", err)
		}
		return nil
	})
	if err != nil {
		return employee.Employee{}, err
	}

	return created, nil
}

// SoftDelete implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) SoftDelete(ctx context.Context, employeeID string) error {
	q := GetQuerier(ctx, e.db)

	var id string
	err := q.QueryRow(ctx, `
		UPDATE employees
		SET deleted_at = NOW()
		WHERE UPPER(employee_id) = $1 AND deleted_at IS NULL
		RETURNING id::text
	`, strings.ToUpper(employeeID)).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	return nil
}
