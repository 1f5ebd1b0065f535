package dto

import (
	"time"

	"github.com/SscSPs/psbook/internal/core/domain"
)

// CreateEmployeeRequest defines the data needed to create an employee placeholder.
type CreateEmployeeRequest struct {
	Name  string              `json:"name" binding:"required,max=200"`
	Email string              `json:"email" binding:"required,email"`
	Phone *string             `json:"phone" binding:"omitempty,max=32"`
	Role  domain.EmployeeRole `json:"role" binding:"required,oneof=field_staff admin"`
}

// UpdateEmployeeRequest defines the data allowed for updating an employee.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateEmployeeRequest struct {
	Name   *string                `json:"name" binding:"omitempty,min=1,max=200"`
	Phone  *string                `json:"phone" binding:"omitempty,max=32"`
	Role   *domain.EmployeeRole   `json:"role" binding:"omitempty,oneof=field_staff admin super_admin"`
	Status *domain.EmployeeStatus `json:"status" binding:"omitempty,oneof=active inactive"`
}

// ListEmployeesParams defines query parameters for listing employees.
type ListEmployeesParams struct {
	Role   string `form:"role" binding:"omitempty,oneof=field_staff admin super_admin"`
	Status string `form:"status" binding:"omitempty,oneof=active inactive"`
	Limit  int    `form:"limit,default=50"`
	Offset int    `form:"offset,default=0"`
}

// EmployeeResponse defines the data returned for an employee.
type EmployeeResponse struct {
	EmployeeID    string                `json:"employeeID"`
	Name          string                `json:"name"`
	Email         string                `json:"email"`
	Phone         *string               `json:"phone,omitempty"`
	Role          domain.EmployeeRole   `json:"role"`
	Status        domain.EmployeeStatus `json:"status"`
	Linked        bool                  `json:"linked"`
	CreatedAt     time.Time             `json:"createdAt"`
	CreatedBy     string                `json:"createdBy"`
	LastUpdatedAt time.Time             `json:"lastUpdatedAt"`
	LastUpdatedBy string                `json:"lastUpdatedBy"`
}

// ListEmployeesResponse wraps the list of employees.
type ListEmployeesResponse struct {
	Employees []EmployeeResponse `json:"employees"`
}

// InviteEmployeeResponse reports the created employee and whether the invitation went out.
type InviteEmployeeResponse struct {
	Employee        EmployeeResponse `json:"employee"`
	InvitationSent  bool             `json:"invitationSent"`
	InvitationError string           `json:"invitationError,omitempty"`
}

// ToEmployeeResponse converts a domain.Employee to EmployeeResponse DTO
func ToEmployeeResponse(e *domain.Employee) EmployeeResponse {
	return EmployeeResponse{
		EmployeeID:    e.EmployeeID,
		Name:          e.Name,
		Email:         e.Email,
		Phone:         e.Phone,
		Role:          e.Role,
		Status:        e.Status,
		Linked:        e.IsLinked(),
		CreatedAt:     e.CreatedAt,
		CreatedBy:     e.CreatedBy,
		LastUpdatedAt: e.LastUpdatedAt,
		LastUpdatedBy: e.LastUpdatedBy,
	}
}

// ToListEmployeesResponse converts a slice of domain.Employee to ListEmployeesResponse DTO
func ToListEmployeesResponse(employees []domain.Employee) ListEmployeesResponse {
	resp := make([]EmployeeResponse, len(employees))
	for i := range employees {
		resp[i] = ToEmployeeResponse(&employees[i])
	}
	return ListEmployeesResponse{Employees: resp}
}
