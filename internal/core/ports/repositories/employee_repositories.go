package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/psbook/internal/core/domain"
)

// EmployeeFilter narrows an employee listing.
type EmployeeFilter struct {
	Role           domain.EmployeeRole
	Status         domain.EmployeeStatus
	IncludeDeleted bool
	Limit          int
	Offset         int
}

// EmployeeReader defines read operations for employees. Soft-deleted employees are not found.
type EmployeeReader interface {
	FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error)
	// FindEmployeeByEmail expects an already normalised email.
	FindEmployeeByEmail(ctx context.Context, email string) (*domain.Employee, error)
	FindEmployeeByExternalID(ctx context.Context, externalID string) (*domain.Employee, error)
	ListEmployees(ctx context.Context, filter EmployeeFilter) ([]domain.Employee, error)
}

// EmployeeWriter defines write operations for employees.
type EmployeeWriter interface {
	SaveEmployee(ctx context.Context, employee domain.Employee) error
	UpdateEmployee(ctx context.Context, employee domain.Employee) error
	// SetExternalID links an identity only while the employee is unlinked. It reports whether a row changed.
	SetExternalID(ctx context.Context, employeeID, externalID string, at time.Time) (bool, error)
	MarkEmployeeDeleted(ctx context.Context, employeeID string, deletedAt time.Time, deletedBy string) error
}

// EmployeeRepositoryFacade combines all employee repository interfaces.
type EmployeeRepositoryFacade interface {
	EmployeeReader
	EmployeeWriter
}
