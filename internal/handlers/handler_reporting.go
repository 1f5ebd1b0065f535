package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/psbook/internal/core/ports/services"
	"github.com/SscSPs/psbook/internal/dto"
	"github.com/SscSPs/psbook/internal/middleware"
)

type reportingHandler struct {
	reportingService portssvc.ReportingService
}

func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := &reportingHandler{reportingService: reportingService}
	rg.GET("/dashboard", middleware.RequireAdmin(), h.getDashboard)
}

// getDashboard godoc
// @Summary Admin dashboard
// @Description Outstanding balances, the day's collections and invoices, and cash held per employee
// @Tags reporting
// @Produce json
// @Param date query string false "YYYY-MM-DD, defaults to today in the business time zone"
// @Success 200 {object} dto.DashboardResponse
// @Failure 400 {object} map[string]string "Invalid date"
// @Security BearerAuth
// @Router /dashboard [get]
func (h *reportingHandler) getDashboard(c *gin.Context) {
	var params dto.DashboardParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}
	resp, err := h.reportingService.GetDashboard(c.Request.Context(), params.Date)
	if err != nil {
		respondError(c, err, "Failed to build dashboard")
		return
	}
	c.JSON(http.StatusOK, resp)
}
