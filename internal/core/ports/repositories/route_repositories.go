package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/psbook/internal/core/domain"
)

// RouteReader defines read operations for routes. Soft-deleted routes are not found.
type RouteReader interface {
	FindRouteByID(ctx context.Context, routeID string) (*domain.Route, error)
	ListRoutes(ctx context.Context, includeInactive bool) ([]domain.Route, error)
	// FindRouteByNameLower and FindRouteByCodeLower use the indexed shadow columns.
	// excludeID skips the route being updated; pass "" on create.
	FindRouteByNameLower(ctx context.Context, nameLower, excludeID string) (*domain.Route, error)
	FindRouteByCodeLower(ctx context.Context, codeLower, excludeID string) (*domain.Route, error)
	// FindLegacyRouteByName and FindLegacyRouteByCode scan rows whose shadow column is still NULL,
	// comparing lower(trim(...)) of the raw column.
	FindLegacyRouteByName(ctx context.Context, nameLower, excludeID string) (*domain.Route, error)
	FindLegacyRouteByCode(ctx context.Context, codeLower, excludeID string) (*domain.Route, error)
	ListRoutesNeedingBackfill(ctx context.Context, limit int) ([]domain.Route, error)
}

// RouteWriter defines write operations for routes.
type RouteWriter interface {
	SaveRoute(ctx context.Context, route domain.Route) error
	UpdateRoute(ctx context.Context, route domain.Route) error
	SetNormalizedNames(ctx context.Context, routeID, nameLower, codeLower string) error
	MarkRouteDeleted(ctx context.Context, routeID string, deletedAt time.Time, deletedBy string) error
}

// RouteRepositoryFacade combines all route repository interfaces.
type RouteRepositoryFacade interface {
	RouteReader
	RouteWriter
}

// AssignmentFilter narrows an assignment listing.
type AssignmentFilter struct {
	EmployeeID string
	RouteID    string
	Date       string
	Status     domain.AssignmentStatus
	Limit      int
	Offset     int
}

// AssignmentRepositoryFacade persists route assignments.
type AssignmentRepositoryFacade interface {
	SaveAssignment(ctx context.Context, assignment domain.RouteAssignment) error
	FindAssignmentByID(ctx context.Context, assignmentID string) (*domain.RouteAssignment, error)
	FindAssignmentByIDForUpdate(ctx context.Context, assignmentID string) (*domain.RouteAssignment, error)
	// FindActiveAssignment returns the employee's active assignment on date, or ErrNotFound.
	FindActiveAssignment(ctx context.Context, employeeID, date string) (*domain.RouteAssignment, error)
	// FindAssignmentForEmployeeOnDate prefers the active assignment, else the most recent one.
	FindAssignmentForEmployeeOnDate(ctx context.Context, employeeID, date string) (*domain.RouteAssignment, error)
	ListAssignments(ctx context.Context, filter AssignmentFilter) ([]domain.RouteAssignment, error)
	UpdateAssignmentStatus(ctx context.Context, assignment domain.RouteAssignment) error
}
