package services

import (
	"context"

	"github.com/SscSPs/psbook/internal/core/domain"
	"github.com/SscSPs/psbook/internal/dto"
)

// RouteSvcFacade manages routes and which shops are on them.
type RouteSvcFacade interface {
	CreateRoute(ctx context.Context, req dto.CreateRouteRequest, actorID string) (*domain.Route, error)
	GetRouteByID(ctx context.Context, routeID string) (*domain.Route, error)
	ListRoutes(ctx context.Context, includeInactive bool) ([]domain.Route, error)
	UpdateRoute(ctx context.Context, routeID string, req dto.UpdateRouteRequest, actorID string) (*domain.Route, error)
	DeleteRoute(ctx context.Context, routeID string, actorID string) error

	AssignShop(ctx context.Context, routeID, shopID string, actorID string) (*domain.Shop, error)
	UnassignShop(ctx context.Context, routeID, shopID string, actorID string) (*domain.Shop, error)
	ListRouteShops(ctx context.Context, routeID string) ([]domain.Shop, error)

	// BackfillNormalizedNames fills name_lower and code_lower on rows created before they existed.
	BackfillNormalizedNames(ctx context.Context) (*dto.BackfillResponse, error)
}

// AssignmentSvcFacade manages daily employee-to-route assignments.
type AssignmentSvcFacade interface {
	AssignRoute(ctx context.Context, req dto.CreateAssignmentRequest, actorID string) (*domain.RouteAssignment, error)
	CompleteAssignment(ctx context.Context, assignmentID string, req dto.UpdateAssignmentRequest, actorID string) (*domain.RouteAssignment, error)
	CancelAssignment(ctx context.Context, assignmentID string, req dto.UpdateAssignmentRequest, actorID string) (*domain.RouteAssignment, error)
	GetAssignmentByID(ctx context.Context, assignmentID string) (*domain.RouteAssignment, error)
	GetAssignmentForEmployeeOnDate(ctx context.Context, employeeID, date string) (*domain.RouteAssignment, error)
	ListAssignments(ctx context.Context, params dto.ListAssignmentsParams) ([]domain.RouteAssignment, error)
}
