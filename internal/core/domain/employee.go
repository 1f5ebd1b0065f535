package domain

import (
	"strings"
	"time"
)

// EmployeeRole determines what an employee may do.
type EmployeeRole string

const (
	RoleFieldStaff EmployeeRole = "field_staff"
	RoleAdmin      EmployeeRole = "admin"
	RoleSuperAdmin EmployeeRole = "super_admin"
)

// Valid reports whether r is a known role.
func (r EmployeeRole) Valid() bool {
	switch r {
	case RoleFieldStaff, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// EmployeeStatus is whether an employee may use the system.
type EmployeeStatus string

const (
	EmployeeActive   EmployeeStatus = "active"
	EmployeeInactive EmployeeStatus = "inactive"
)

// Valid reports whether s is a known employee status.
func (s EmployeeStatus) Valid() bool {
	return s == EmployeeActive || s == EmployeeInactive
}

// Employee is a member of staff. ExternalID links the record to the auth provider's user
// and is set once, when the invited user signs up.
type Employee struct {
	EmployeeID string         `json:"employeeID"`
	Name       string         `json:"name"`
	Email      string         `json:"email"`
	Phone      *string        `json:"phone,omitempty"`
	Role       EmployeeRole   `json:"role"`
	Status     EmployeeStatus `json:"status"`
	ExternalID *string        `json:"externalID,omitempty"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// IsAdmin reports whether the employee has admin rights.
func (e *Employee) IsAdmin() bool {
	return e.Role == RoleAdmin || e.Role == RoleSuperAdmin
}

// IsProtected reports whether the record is shielded from role changes, deactivation and deletion.
func (e *Employee) IsProtected() bool {
	return e.Role == RoleSuperAdmin
}

// IsLinked reports whether an external identity has been attached.
func (e *Employee) IsLinked() bool {
	return e.ExternalID != nil && *e.ExternalID != ""
}

// NormalizeEmail is the form emails are stored and compared in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// LinkOutcome is the result of attaching an external identity to an employee placeholder.
type LinkOutcome string

const (
	LinkLinked               LinkOutcome = "linked"
	LinkSkippedNotFound      LinkOutcome = "skipped_not_found"
	LinkSkippedAlreadyLinked LinkOutcome = "skipped_already_linked"
)
