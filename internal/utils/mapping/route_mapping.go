package mapping

import (
	"github.com/SscSPs/psbook/internal/core/domain"
	"github.com/SscSPs/psbook/internal/models"
)

// ToModelRoute converts a domain Route to a model Route
func ToModelRoute(d domain.Route) models.Route {
	return models.Route{
		RouteID:     d.RouteID,
		Name:        d.Name,
		Code:        d.Code,
		NameLower:   d.NameLower,
		CodeLower:   d.CodeLower,
		Description: d.Description,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
		DeletedAt:   d.DeletedAt,
	}
}

// ToDomainRoute converts a model Route to a domain Route
func ToDomainRoute(m models.Route) domain.Route {
	return domain.Route{
		RouteID:     m.RouteID,
		Name:        m.Name,
		Code:        m.Code,
		NameLower:   m.NameLower,
		CodeLower:   m.CodeLower,
		Description: m.Description,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
		DeletedAt:   m.DeletedAt,
	}
}

// ToModelRouteAssignment converts a domain RouteAssignment to a model RouteAssignment
func ToModelRouteAssignment(d domain.RouteAssignment) models.RouteAssignment {
	return models.RouteAssignment{
		AssignmentID: d.AssignmentID,
		EmployeeID:   d.EmployeeID,
		RouteID:      d.RouteID,
		Date:         d.Date,
		Status:       string(d.Status),
		Note:         d.Note,
		CompletedAt:  d.CompletedAt,
		CancelledAt:  d.CancelledAt,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainRouteAssignment converts a model RouteAssignment to a domain RouteAssignment
func ToDomainRouteAssignment(m models.RouteAssignment) domain.RouteAssignment {
	return domain.RouteAssignment{
		AssignmentID: m.AssignmentID,
		EmployeeID:   m.EmployeeID,
		RouteID:      m.RouteID,
		Date:         m.Date,
		Status:       domain.AssignmentStatus(m.Status),
		Note:         m.Note,
		CompletedAt:  m.CompletedAt,
		CancelledAt:  m.CancelledAt,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}
