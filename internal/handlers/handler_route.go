package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/psbook/internal/core/ports/services"
	"github.com/SscSPs/psbook/internal/dto"
	"github.com/SscSPs/psbook/internal/middleware"
)

type routeHandler struct {
	routeService portssvc.RouteSvcFacade
}

func registerRouteRoutes(rg *gin.RouterGroup, routeService portssvc.RouteSvcFacade) {
	h := &routeHandler{routeService: routeService}
	admin := middleware.RequireAdmin()

	routes := rg.Group("/routes")
	{
		routes.GET("", h.listRoutes)
		routes.POST("", admin, h.createRoute)
		routes.GET("/:routeID", h.getRoute)
		routes.PUT("/:routeID", admin, h.updateRoute)
		routes.DELETE("/:routeID", admin, h.deleteRoute)
		routes.GET("/:routeID/shops", h.listRouteShops)
		routes.POST("/:routeID/shops", admin, h.assignShop)
		routes.DELETE("/:routeID/shops/:shopID", admin, h.unassignShop)
	}
}

// createRoute godoc
// @Summary Create a route
// @Description Name and code must be unique, compared trimmed and case-insensitively
// @Tags routes
// @Accept json
// @Produce json
// @Param route body dto.CreateRouteRequest true "Route"
// @Success 201 {object} domain.Route
// @Failure 409 {object} map[string]string "Name or code already in use"
// @Security BearerAuth
// @Router /routes [post]
func (h *routeHandler) createRoute(c *gin.Context) {
	var req dto.CreateRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	actor, ok := actorID(c)
	if !ok {
		return
	}
	route, err := h.routeService.CreateRoute(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, err, "Failed to create route")
		return
	}
	c.JSON(http.StatusCreated, route)
}

// getRoute godoc
// @Summary Get a route
// @Tags routes
// @Produce json
// @Param routeID path string true "Route ID"
// @Success 200 {object} domain.Route
// @Failure 404 {object} map[string]string "Route not found"
// @Security BearerAuth
// @Router /routes/{routeID} [get]
func (h *routeHandler) getRoute(c *gin.Context) {
	route, err := h.routeService.GetRouteByID(c.Request.Context(), c.Param("routeID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve route")
		return
	}
	c.JSON(http.StatusOK, route)
}

// listRoutes godoc
// @Summary List routes
// @Tags routes
// @Produce json
// @Param includeInactive query bool false "Include inactive routes"
// @Success 200 {object} dto.ListRoutesResponse
// @Security BearerAuth
// @Router /routes [get]
func (h *routeHandler) listRoutes(c *gin.Context) {
	var params dto.ListRoutesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}
	routes, err := h.routeService.ListRoutes(c.Request.Context(), params.IncludeInactive)
	if err != nil {
		respondError(c, err, "Failed to list routes")
		return
	}
	c.JSON(http.StatusOK, dto.ListRoutesResponse{Routes: routes})
}

// updateRoute godoc
// @Summary Update a route
// @Tags routes
// @Accept json
// @Produce json
// @Param routeID path string true "Route ID"
// @Param route body dto.UpdateRouteRequest true "Fields to update"
// @Success 200 {object} domain.Route
// @Failure 404 {object} map[string]string "Route not found"
// @Failure 409 {object} map[string]string "Name or code already in use"
// @Security BearerAuth
// @Router /routes/{routeID} [put]
func (h *routeHandler) updateRoute(c *gin.Context) {
	var req dto.UpdateRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	actor, ok := actorID(c)
	if !ok {
		return
	}
	route, err := h.routeService.UpdateRoute(c.Request.Context(), c.Param("routeID"), req, actor)
	if err != nil {
		respondError(c, err, "Failed to update route")
		return
	}
	c.JSON(http.StatusOK, route)
}

// deleteRoute godoc
// @Summary Delete a route
// @Tags routes
// @Param routeID path string true "Route ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Route not found"
// @Security BearerAuth
// @Router /routes/{routeID} [delete]
func (h *routeHandler) deleteRoute(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	if err := h.routeService.DeleteRoute(c.Request.Context(), c.Param("routeID"), actor); err != nil {
		respondError(c, err, "Failed to delete route")
		return
	}
	c.Status(http.StatusNoContent)
}

// listRouteShops godoc
// @Summary Shops on a route
// @Tags routes
// @Produce json
// @Param routeID path string true "Route ID"
// @Success 200 {object} dto.ListShopsResponse
// @Failure 404 {object} map[string]string "Route not found"
// @Security BearerAuth
// @Router /routes/{routeID}/shops [get]
func (h *routeHandler) listRouteShops(c *gin.Context) {
	shops, err := h.routeService.ListRouteShops(c.Request.Context(), c.Param("routeID"))
	if err != nil {
		respondError(c, err, "Failed to list route shops")
		return
	}
	c.JSON(http.StatusOK, dto.ToListShopsResponse(shops))
}

// assignShop godoc
// @Summary Put a shop on a route
// @Tags routes
// @Accept json
// @Produce json
// @Param routeID path string true "Route ID"
// @Param shop body dto.AssignShopRequest true "Shop"
// @Success 200 {object} dto.ShopResponse
// @Failure 404 {object} map[string]string "Route or shop not found"
// @Security BearerAuth
// @Router /routes/{routeID}/shops [post]
func (h *routeHandler) assignShop(c *gin.Context) {
	var req dto.AssignShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	actor, ok := actorID(c)
	if !ok {
		return
	}
	shop, err := h.routeService.AssignShop(c.Request.Context(), c.Param("routeID"), req.ShopID, actor)
	if err != nil {
		respondError(c, err, "Failed to assign shop")
		return
	}
	c.JSON(http.StatusOK, dto.ToShopResponse(shop))
}

// unassignShop godoc
// @Summary Take a shop off a route
// @Tags routes
// @Produce json
// @Param routeID path string true "Route ID"
// @Param shopID path string true "Shop ID"
// @Success 200 {object} dto.ShopResponse
// @Failure 409 {object} map[string]string "Shop is not on this route"
// @Security BearerAuth
// @Router /routes/{routeID}/shops/{shopID} [delete]
func (h *routeHandler) unassignShop(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	shop, err := h.routeService.UnassignShop(c.Request.Context(), c.Param("routeID"), c.Param("shopID"), actor)
	if err != nil {
		respondError(c, err, "Failed to unassign shop")
		return
	}
	c.JSON(http.StatusOK, dto.ToShopResponse(shop))
}
