package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/psbook/internal/core/domain"
	portssvc "github.com/SscSPs/psbook/internal/core/ports/services"
	"github.com/SscSPs/psbook/internal/dto"
	"github.com/SscSPs/psbook/internal/middleware"
)

// employeeHandler handles HTTP requests related to employees.
type employeeHandler struct {
	employeeService portssvc.EmployeeSvcFacade
}

func newEmployeeHandler(es portssvc.EmployeeSvcFacade) *employeeHandler {
	return &employeeHandler{employeeService: es}
}

// registerEmployeeRoutes registers routes related to employees.
func registerEmployeeRoutes(rg *gin.RouterGroup, employeeService portssvc.EmployeeSvcFacade) {
	h := newEmployeeHandler(employeeService)

	rg.GET("/me", h.getMe)

	employees := rg.Group("/employees", middleware.RequireAdmin())
	{
		employees.GET("", h.listEmployees)
		employees.POST("", h.createEmployee)
		employees.POST("/invite", h.inviteEmployee)
		employees.GET("/lookup", h.getEmployeeByEmail)
		employees.GET("/:employeeID", h.getEmployee)
		employees.PUT("/:employeeID", h.updateEmployee)
		employees.DELETE("/:employeeID", h.deleteEmployee)
	}
}

// getMe godoc
// @Summary Get the calling employee
// @Tags employees
// @Produce json
// @Success 200 {object} dto.EmployeeResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /me [get]
func (h *employeeHandler) getMe(c *gin.Context) {
	caller, ok := actorID(c)
	if !ok {
		return
	}
	employee, err := h.employeeService.GetEmployeeByID(c.Request.Context(), caller)
	if err != nil {
		respondError(c, err, "Failed to retrieve employee")
		return
	}
	c.JSON(http.StatusOK, dto.ToEmployeeResponse(employee))
}

// createEmployee godoc
// @Summary Create an employee
// @Description Creates an unlinked employee record; the identity is attached when the person signs up
// @Tags employees
// @Accept json
// @Produce json
// @Param employee body dto.CreateEmployeeRequest true "Employee"
// @Success 201 {object} dto.EmployeeResponse
// @Failure 409 {object} map[string]string "Email already registered"
// @Security BearerAuth
// @Router /employees [post]
func (h *employeeHandler) createEmployee(c *gin.Context) {
	var req dto.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	actor, ok := actorID(c)
	if !ok {
		return
	}
	employee, err := h.employeeService.CreateEmployee(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, err, "Failed to create employee")
		return
	}
	c.JSON(http.StatusCreated, dto.ToEmployeeResponse(employee))
}

// inviteEmployee godoc
// @Summary Create and invite an employee
// @Description Creates the employee, then asks the identity provider to email an invitation. If the invitation fails the employee is kept and invitationSent is false.
// @Tags employees
// @Accept json
// @Produce json
// @Param employee body dto.CreateEmployeeRequest true "Employee"
// @Success 201 {object} dto.InviteEmployeeResponse
// @Failure 409 {object} map[string]string "Email already registered"
// @Security BearerAuth
// @Router /employees/invite [post]
func (h *employeeHandler) inviteEmployee(c *gin.Context) {
	var req dto.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	actor, ok := actorID(c)
	if !ok {
		return
	}

	employee, err := h.employeeService.InviteEmployee(c.Request.Context(), req, actor)
	if employee == nil {
		respondError(c, err, "Failed to invite employee")
		return
	}

	resp := dto.InviteEmployeeResponse{
		Employee:       dto.ToEmployeeResponse(employee),
		InvitationSent: err == nil,
	}
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Employee created but invitation failed",
			slog.String("employee_id", employee.EmployeeID), slog.String("error", err.Error()))
		resp.InvitationError = err.Error()
	}
	c.JSON(http.StatusCreated, resp)
}

// getEmployee godoc
// @Summary Get an employee
// @Tags employees
// @Produce json
// @Param employeeID path string true "Employee ID"
// @Success 200 {object} dto.EmployeeResponse
// @Failure 404 {object} map[string]string "Employee not found"
// @Security BearerAuth
// @Router /employees/{employeeID} [get]
func (h *employeeHandler) getEmployee(c *gin.Context) {
	employee, err := h.employeeService.GetEmployeeByID(c.Request.Context(), c.Param("employeeID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve employee")
		return
	}
	c.JSON(http.StatusOK, dto.ToEmployeeResponse(employee))
}

// getEmployeeByEmail godoc
// @Summary Find an employee by email
// @Tags employees
// @Produce json
// @Param email query string true "Email"
// @Success 200 {object} dto.EmployeeResponse
// @Failure 404 {object} map[string]string "Employee not found"
// @Security BearerAuth
// @Router /employees/lookup [get]
func (h *employeeHandler) getEmployeeByEmail(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email query parameter is required"})
		return
	}
	employee, err := h.employeeService.GetEmployeeByEmail(c.Request.Context(), email)
	if err != nil {
		respondError(c, err, "Failed to retrieve employee")
		return
	}
	c.JSON(http.StatusOK, dto.ToEmployeeResponse(employee))
}

// listEmployees godoc
// @Summary List employees
// @Tags employees
// @Produce json
// @Param role query string false "field_staff, admin or super_admin"
// @Param status query string false "active or inactive"
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListEmployeesResponse
// @Security BearerAuth
// @Router /employees [get]
func (h *employeeHandler) listEmployees(c *gin.Context) {
	var params dto.ListEmployeesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}
	employees, err := h.employeeService.ListEmployees(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list employees")
		return
	}
	c.JSON(http.StatusOK, dto.ToListEmployeesResponse(employees))
}

// updateEmployee godoc
// @Summary Update an employee
// @Description Super admins cannot be demoted or deactivated
// @Tags employees
// @Accept json
// @Produce json
// @Param employeeID path string true "Employee ID"
// @Param employee body dto.UpdateEmployeeRequest true "Fields to update"
// @Success 200 {object} dto.EmployeeResponse
// @Failure 409 {object} map[string]string "Protected employee"
// @Security BearerAuth
// @Router /employees/{employeeID} [put]
func (h *employeeHandler) updateEmployee(c *gin.Context) {
	var req dto.UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	actor, ok := actorID(c)
	if !ok {
		return
	}
	if req.Role != nil && *req.Role == domain.RoleSuperAdmin {
		if role, _ := middleware.GetRoleFromContext(c); role != domain.RoleSuperAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Only a super admin can grant super admin"})
			return
		}
	}
	employee, err := h.employeeService.UpdateEmployee(c.Request.Context(), c.Param("employeeID"), req, actor)
	if err != nil {
		respondError(c, err, "Failed to update employee")
		return
	}
	c.JSON(http.StatusOK, dto.ToEmployeeResponse(employee))
}

// deleteEmployee godoc
// @Summary Delete an employee
// @Tags employees
// @Param employeeID path string true "Employee ID"
// @Success 204 "No Content"
// @Failure 409 {object} map[string]string "Protected employee"
// @Security BearerAuth
// @Router /employees/{employeeID} [delete]
func (h *employeeHandler) deleteEmployee(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	if err := h.employeeService.DeleteEmployee(c.Request.Context(), c.Param("employeeID"), actor); err != nil {
		respondError(c, err, "Failed to delete employee")
		return
	}
	c.Status(http.StatusNoContent)
}
