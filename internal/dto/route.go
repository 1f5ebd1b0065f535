package dto

import (
	"github.com/SscSPs/psbook/internal/core/domain"
)

// CreateRouteRequest defines the data needed to create a route.
type CreateRouteRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Code        string `json:"code" binding:"required,max=32"`
	Description string `json:"description" binding:"max=500"`
}

// UpdateRouteRequest defines the route fields an admin may change.
type UpdateRouteRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=100"`
	Code        *string `json:"code" binding:"omitempty,min=1,max=32"`
	Description *string `json:"description" binding:"omitempty,max=500"`
	IsActive    *bool   `json:"isActive"`
}

// ListRoutesParams defines query parameters for listing routes.
type ListRoutesParams struct {
	IncludeInactive bool `form:"includeInactive"`
}

// AssignShopRequest names the shop to put on a route.
type AssignShopRequest struct {
	ShopID string `json:"shopID" binding:"required"`
}

// ListRoutesResponse wraps the list of routes.
type ListRoutesResponse struct {
	Routes []domain.Route `json:"routes"`
}

// BackfillResponse summarises a normalised-name backfill run.
type BackfillResponse struct {
	Scanned int `json:"scanned"`
	Updated int `json:"updated"`
}

// CreateAssignmentRequest assigns an employee to a route for a day.
type CreateAssignmentRequest struct {
	EmployeeID string `json:"employeeID" binding:"required"`
	RouteID    string `json:"routeID" binding:"required"`
	Date       string `json:"date" binding:"required,calendar_date"`
	Note       string `json:"note" binding:"max=500"`
}

// UpdateAssignmentRequest carries an optional note for complete and cancel.
type UpdateAssignmentRequest struct {
	Note *string `json:"note" binding:"omitempty,max=500"`
}

// ListAssignmentsParams defines query parameters for listing assignments.
type ListAssignmentsParams struct {
	EmployeeID string `form:"employeeID"`
	RouteID    string `form:"routeID"`
	Date       string `form:"date" binding:"omitempty,calendar_date"`
	Status     string `form:"status" binding:"omitempty,oneof=active completed cancelled"`
	Limit      int    `form:"limit,default=50"`
	Offset     int    `form:"offset,default=0"`
}

// ListAssignmentsResponse wraps the list of assignments.
type ListAssignmentsResponse struct {
	Assignments []domain.RouteAssignment `json:"assignments"`
}
