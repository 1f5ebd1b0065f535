package models

import "time"

// Employee is the row stored in the employees table.
type Employee struct {
	EmployeeID string  `db:"employee_id"`
	Name       string  `db:"name"`
	Email      string  `db:"email"`
	Phone      *string `db:"phone"`
	Role       string  `db:"role"`
	Status     string  `db:"status"`
	ExternalID *string `db:"external_id"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}

// Route is the row stored in the routes table. NameLower and CodeLower are NULL on rows
// created before the shadow columns existed.
type Route struct {
	RouteID     string  `db:"route_id"`
	Name        string  `db:"name"`
	Code        string  `db:"code"`
	NameLower   *string `db:"name_lower"`
	CodeLower   *string `db:"code_lower"`
	Description string  `db:"description"`
	IsActive    bool    `db:"is_active"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}

// RouteAssignment is the row stored in the route_assignments table.
type RouteAssignment struct {
	AssignmentID string     `db:"assignment_id"`
	EmployeeID   string     `db:"employee_id"`
	RouteID      string     `db:"route_id"`
	Date         string     `db:"assignment_date"`
	Status       string     `db:"status"`
	Note         string     `db:"note"`
	CompletedAt  *time.Time `db:"completed_at"`
	CancelledAt  *time.Time `db:"cancelled_at"`
	AuditFields
}
