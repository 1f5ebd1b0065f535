package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/psbook/internal/core/domain"
	portssvc "github.com/SscSPs/psbook/internal/core/ports/services"
	"github.com/SscSPs/psbook/internal/middleware"
)

type maintenanceHandler struct {
	routeService portssvc.RouteSvcFacade
}

func registerMaintenanceRoutes(rg *gin.RouterGroup, routeService portssvc.RouteSvcFacade) {
	h := &maintenanceHandler{routeService: routeService}
	maintenance := rg.Group("/maintenance", middleware.RequireRole(domain.RoleSuperAdmin))
	maintenance.POST("/backfill-route-names", h.backfillRouteNames)
}

// backfillRouteNames godoc
// @Summary Backfill normalised route names
// @Description Fills name_lower and code_lower on routes created before those columns existed
// @Tags maintenance
// @Produce json
// @Success 200 {object} dto.BackfillResponse
// @Security BearerAuth
// @Router /maintenance/backfill-route-names [post]
func (h *maintenanceHandler) backfillRouteNames(c *gin.Context) {
	resp, err := h.routeService.BackfillNormalizedNames(c.Request.Context())
	if err != nil {
		respondError(c, err, "Backfill failed")
		return
	}
	c.JSON(http.StatusOK, resp)
}
