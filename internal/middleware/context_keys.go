package middleware

import (
	"context"

	"github.com/SscSPs/psbook/internal/core/domain"
	"github.com/gin-gonic/gin"
)

const (
	employeeIDKey = contextKey("employeeID")
	roleKey       = contextKey("employeeRole")
)

// WithEmployee returns a copy of ctx carrying the authenticated employee's id and role.
func WithEmployee(ctx context.Context, employeeID string, role domain.EmployeeRole) context.Context {
	ctx = context.WithValue(ctx, employeeIDKey, employeeID)
	return context.WithValue(ctx, roleKey, role)
}

// GetEmployeeIDFromContext retrieves the authenticated employee ID from the request context.
// It returns the ID and a boolean indicating if it was found.
func GetEmployeeIDFromContext(c *gin.Context) (string, bool) {
	employeeID, ok := c.Request.Context().Value(employeeIDKey).(string)
	if !ok || employeeID == "" {
		return "", false
	}
	return employeeID, true
}

// GetRoleFromContext retrieves the authenticated employee's role.
func GetRoleFromContext(c *gin.Context) (domain.EmployeeRole, bool) {
	role, ok := c.Request.Context().Value(roleKey).(domain.EmployeeRole)
	return role, ok
}

// IsAdmin reports whether the caller holds admin or super_admin.
func IsAdmin(c *gin.Context) bool {
	role, ok := GetRoleFromContext(c)
	return ok && (role == domain.RoleAdmin || role == domain.RoleSuperAdmin)
}
