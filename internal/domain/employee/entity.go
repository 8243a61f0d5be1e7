package employee

import (
	"time"
)

type Employee struct {
	ID         string
	EmployeeID string
	FullName   string
	Email      string
	Department string
	Position   *string
	Status     EmployeeStatus
	CreatedAt  *time.Time
}

type EmployeeStatus string

const (
	EmployeeStatusActive   EmployeeStatus = "active"
	EmployeeStatusInactive EmployeeStatus = "inactive"
)
