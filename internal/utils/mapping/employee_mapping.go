package mapping

import (
	"github.com/SscSPs/psbook/internal/core/domain"
	"github.com/SscSPs/psbook/internal/models"
)

// ToModelEmployee converts a domain Employee to a model Employee
func ToModelEmployee(d domain.Employee) models.Employee {
	return models.Employee{
		EmployeeID:  d.EmployeeID,
		Name:        d.Name,
		Email:       d.Email,
		Phone:       d.Phone,
		Role:        string(d.Role),
		Status:      string(d.Status),
		ExternalID:  d.ExternalID,
		AuditFields: ToModelAuditFields(d.AuditFields),
		DeletedAt:   d.DeletedAt,
	}
}

// ToDomainEmployee converts a model Employee to a domain Employee
func ToDomainEmployee(m models.Employee) domain.Employee {
	return domain.Employee{
		EmployeeID:  m.EmployeeID,
		Name:        m.Name,
		Email:       m.Email,
		Phone:       m.Phone,
		Role:        domain.EmployeeRole(m.Role),
		Status:      domain.EmployeeStatus(m.Status),
		ExternalID:  m.ExternalID,
		AuditFields: ToDomainAuditFields(m.AuditFields),
		DeletedAt:   m.DeletedAt,
	}
}
