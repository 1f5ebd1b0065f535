package services

import (
	"context"

	"github.com/SscSPs/psbook/internal/core/domain"
	"github.com/SscSPs/psbook/internal/dto"
)

// EmployeeReaderSvc defines read operations for employees
type EmployeeReaderSvc interface {
	GetEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error)
	GetEmployeeByEmail(ctx context.Context, email string) (*domain.Employee, error)

	// GetEmployeeByExternalID resolves the employee behind an authenticated identity.
	GetEmployeeByExternalID(ctx context.Context, externalID string) (*domain.Employee, error)

	ListEmployees(ctx context.Context, params dto.ListEmployeesParams) ([]domain.Employee, error)
}

// EmployeeWriterSvc defines write operations for employees
type EmployeeWriterSvc interface {
	CreateEmployee(ctx context.Context, req dto.CreateEmployeeRequest, actorID string) (*domain.Employee, error)

	// InviteEmployee creates the employee and then asks the identity provider to send an invitation.
	// If the invitation fails the employee is still returned, together with the error.
	InviteEmployee(ctx context.Context, req dto.CreateEmployeeRequest, actorID string) (*domain.Employee, error)

	UpdateEmployee(ctx context.Context, employeeID string, req dto.UpdateEmployeeRequest, actorID string) (*domain.Employee, error)
	DeleteEmployee(ctx context.Context, employeeID string, actorID string) error
}

// IdentityLinkerSvc attaches external identities to employee placeholders.
type IdentityLinkerSvc interface {
	LinkExternalIdentity(ctx context.Context, email, externalID string) (domain.LinkOutcome, error)
}

// EmployeeSvcFacade combines all employee-related service interfaces
type EmployeeSvcFacade interface {
	EmployeeReaderSvc
	EmployeeWriterSvc
	IdentityLinkerSvc
}

// InvitationSender asks the identity provider to invite a new user by email.
type InvitationSender interface {
	SendInvitation(ctx context.Context, email string, metadata map[string]string) error
}
