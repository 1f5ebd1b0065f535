package domain

import (
	"strings"
	"time"
)

// Route is a named delivery/collection round. NameLower and CodeLower are normalised shadow
// fields; rows created before they existed have them nil until the backfill runs.
type Route struct {
	RouteID     string  `json:"routeID"`
	Name        string  `json:"name"`
	Code        string  `json:"code"`
	NameLower   *string `json:"-"`
	CodeLower   *string `json:"-"`
	Description string  `json:"description"`
	IsActive    bool    `json:"isActive"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// NormalizeName trims and lowercases a route name or code for uniqueness checks.
func NormalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NeedsBackfill reports whether either shadow field is missing.
func (r *Route) NeedsBackfill() bool {
	return r.NameLower == nil || r.CodeLower == nil
}

// AssignmentStatus is the lifecycle state of a route assignment.
type AssignmentStatus string

const (
	AssignmentActive    AssignmentStatus = "active"
	AssignmentCompleted AssignmentStatus = "completed"
	AssignmentCancelled AssignmentStatus = "cancelled"
)

// Valid reports whether s is a known assignment status.
func (s AssignmentStatus) Valid() bool {
	switch s {
	case AssignmentActive, AssignmentCompleted, AssignmentCancelled:
		return true
	}
	return false
}

// RouteAssignment binds one employee to one route for one calendar date.
type RouteAssignment struct {
	AssignmentID string           `json:"assignmentID"`
	EmployeeID   string           `json:"employeeID"`
	RouteID      string           `json:"routeID"`
	Date         string           `json:"date"` // YYYY-MM-DD in the business time zone
	Status       AssignmentStatus `json:"status"`
	Note         string           `json:"note"`
	CompletedAt  *time.Time       `json:"completedAt,omitempty"`
	CancelledAt  *time.Time       `json:"cancelledAt,omitempty"`
	AuditFields
}
