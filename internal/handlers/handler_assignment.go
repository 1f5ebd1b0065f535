package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/psbook/internal/core/ports/services"
	"github.com/SscSPs/psbook/internal/dto"
	"github.com/SscSPs/psbook/internal/middleware"
)

type assignmentHandler struct {
	assignmentService portssvc.AssignmentSvcFacade
}

func registerAssignmentRoutes(rg *gin.RouterGroup, assignmentService portssvc.AssignmentSvcFacade) {
	h := &assignmentHandler{assignmentService: assignmentService}
	admin := middleware.RequireAdmin()

	assignments := rg.Group("/assignments")
	{
		assignments.GET("", h.listAssignments)
		assignments.POST("", admin, h.assignRoute)
		assignments.GET("/employee/:employeeID/date/:date", h.getAssignmentForEmployeeOnDate)
		assignments.GET("/:assignmentID", h.getAssignment)
		assignments.POST("/:assignmentID/complete", h.completeAssignment)
		assignments.POST("/:assignmentID/cancel", admin, h.cancelAssignment)
	}
}

// assignRoute godoc
// @Summary Assign a route for a day
// @Description An employee can hold one active assignment per date
// @Tags assignments
// @Accept json
// @Produce json
// @Param assignment body dto.CreateAssignmentRequest true "Assignment"
// @Success 201 {object} domain.RouteAssignment
// @Failure 404 {object} map[string]string "Employee or route not found"
// @Failure 409 {object} map[string]string "Employee already has an active assignment on that date"
// @Security BearerAuth
// @Router /assignments [post]
func (h *assignmentHandler) assignRoute(c *gin.Context) {
	var req dto.CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	actor, ok := actorID(c)
	if !ok {
		return
	}
	assignment, err := h.assignmentService.AssignRoute(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, err, "Failed to assign route")
		return
	}
	c.JSON(http.StatusCreated, assignment)
}

// completeAssignment godoc
// @Summary Complete an assignment
// @Description The assigned employee or an admin may complete an active assignment
// @Tags assignments
// @Accept json
// @Produce json
// @Param assignmentID path string true "Assignment ID"
// @Param update body dto.UpdateAssignmentRequest false "Optional note"
// @Success 200 {object} domain.RouteAssignment
// @Failure 409 {object} map[string]string "Assignment is not active"
// @Security BearerAuth
// @Router /assignments/{assignmentID}/complete [post]
func (h *assignmentHandler) completeAssignment(c *gin.Context) {
	req, ok := h.bindOptionalNote(c)
	if !ok {
		return
	}
	actor, ok := actorID(c)
	if !ok {
		return
	}
	assignmentID := c.Param("assignmentID")
	if !middleware.IsAdmin(c) {
		existing, err := h.assignmentService.GetAssignmentByID(c.Request.Context(), assignmentID)
		if err != nil {
			respondError(c, err, "Failed to retrieve assignment")
			return
		}
		if existing.EmployeeID != actor {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
	}
	assignment, err := h.assignmentService.CompleteAssignment(c.Request.Context(), assignmentID, req, actor)
	if err != nil {
		respondError(c, err, "Failed to complete assignment")
		return
	}
	c.JSON(http.StatusOK, assignment)
}

// cancelAssignment godoc
// @Summary Cancel an assignment
// @Tags assignments
// @Accept json
// @Produce json
// @Param assignmentID path string true "Assignment ID"
// @Param update body dto.UpdateAssignmentRequest false "Optional note"
// @Success 200 {object} domain.RouteAssignment
// @Failure 409 {object} map[string]string "Assignment is not active"
// @Security BearerAuth
// @Router /assignments/{assignmentID}/cancel [post]
func (h *assignmentHandler) cancelAssignment(c *gin.Context) {
	req, ok := h.bindOptionalNote(c)
	if !ok {
		return
	}
	actor, ok := actorID(c)
	if !ok {
		return
	}
	assignment, err := h.assignmentService.CancelAssignment(c.Request.Context(), c.Param("assignmentID"), req, actor)
	if err != nil {
		respondError(c, err, "Failed to cancel assignment")
		return
	}
	c.JSON(http.StatusOK, assignment)
}

// bindOptionalNote accepts an empty body.
func (h *assignmentHandler) bindOptionalNote(c *gin.Context) (dto.UpdateAssignmentRequest, bool) {
	var req dto.UpdateAssignmentRequest
	if c.Request.ContentLength == 0 {
		return req, true
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return req, false
	}
	return req, true
}

// getAssignment godoc
// @Summary Get an assignment
// @Tags assignments
// @Produce json
// @Param assignmentID path string true "Assignment ID"
// @Success 200 {object} domain.RouteAssignment
// @Failure 404 {object} map[string]string "Assignment not found"
// @Security BearerAuth
// @Router /assignments/{assignmentID} [get]
func (h *assignmentHandler) getAssignment(c *gin.Context) {
	assignment, err := h.assignmentService.GetAssignmentByID(c.Request.Context(), c.Param("assignmentID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve assignment")
		return
	}
	c.JSON(http.StatusOK, assignment)
}

// getAssignmentForEmployeeOnDate godoc
// @Summary Assignment for an employee on a date
// @Description Returns the active assignment if there is one, otherwise the most recent
// @Tags assignments
// @Produce json
// @Param employeeID path string true "Employee ID"
// @Param date path string true "YYYY-MM-DD"
// @Success 200 {object} domain.RouteAssignment
// @Failure 404 {object} map[string]string "No assignment"
// @Security BearerAuth
// @Router /assignments/employee/{employeeID}/date/{date} [get]
func (h *assignmentHandler) getAssignmentForEmployeeOnDate(c *gin.Context) {
	caller, ok := actorID(c)
	if !ok {
		return
	}
	employeeID := c.Param("employeeID")
	if !middleware.IsAdmin(c) && employeeID != caller {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}
	assignment, err := h.assignmentService.GetAssignmentForEmployeeOnDate(c.Request.Context(), employeeID, c.Param("date"))
	if err != nil {
		respondError(c, err, "Failed to retrieve assignment")
		return
	}
	c.JSON(http.StatusOK, assignment)
}

// listAssignments godoc
// @Summary List assignments
// @Description Field staff only see their own
// @Tags assignments
// @Produce json
// @Param employeeID query string false "Employee ID (admins only)"
// @Param routeID query string false "Route ID"
// @Param date query string false "YYYY-MM-DD"
// @Param status query string false "active, completed or cancelled"
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListAssignmentsResponse
// @Security BearerAuth
// @Router /assignments [get]
func (h *assignmentHandler) listAssignments(c *gin.Context) {
	var params dto.ListAssignmentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}
	caller, ok := actorID(c)
	if !ok {
		return
	}
	if !middleware.IsAdmin(c) {
		params.EmployeeID = caller
	}
	assignments, err := h.assignmentService.ListAssignments(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list assignments")
		return
	}
	c.JSON(http.StatusOK, dto.ListAssignmentsResponse{Assignments: assignments})
}
