package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/psbook/internal/core/ports/services"
	"github.com/SscSPs/psbook/internal/dto"
	"github.com/SscSPs/psbook/internal/middleware"
)

type settlementHandler struct {
	settlementService portssvc.SettlementSvcFacade
	handoverService   portssvc.HandoverSvcFacade
}

func newSettlementHandler(ss portssvc.SettlementSvcFacade, hs portssvc.HandoverSvcFacade) *settlementHandler {
	return &settlementHandler{settlementService: ss, handoverService: hs}
}

// registerSettlementRoutes registers settlements and the handover shortcut. Both are admin-only
// except reading one's own pending handover.
func registerSettlementRoutes(rg *gin.RouterGroup, settlementService portssvc.SettlementSvcFacade, handoverService portssvc.HandoverSvcFacade) {
	h := newSettlementHandler(settlementService, handoverService)
	admin := middleware.RequireAdmin()

	settlements := rg.Group("/settlements", admin)
	{
		settlements.GET("", h.listSettlements)
		settlements.POST("", h.createSettlement)
		settlements.POST("/verify", h.verifySettlement)
		settlements.GET("/:settlementID", h.getSettlement)
		settlements.POST("/:settlementID/receive", h.receiveSettlement)
		settlements.PATCH("/:settlementID/status", h.updateSettlementStatus)
	}

	handover := rg.Group("/handover")
	{
		handover.GET("/:employeeID/pending", h.getPendingHandover)
		handover.POST("/:employeeID/verify", admin, h.verifyHandover)
	}
}

// createSettlement godoc
// @Summary Open a settlement
// @Description Creates a pending settlement. The expected amount is computed from the employee's completed cash transactions among those listed.
// @Tags settlements
// @Accept json
// @Produce json
// @Param settlement body dto.CreateSettlementRequest true "Settlement"
// @Success 201 {object} domain.Settlement
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Employee not found"
// @Security BearerAuth
// @Router /settlements [post]
func (h *settlementHandler) createSettlement(c *gin.Context) {
	var req dto.CreateSettlementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	actor, ok := actorID(c)
	if !ok {
		return
	}
	settlement, err := h.settlementService.CreateSettlement(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, err, "Failed to create settlement")
		return
	}
	c.JSON(http.StatusCreated, settlement)
}

// receiveSettlement godoc
// @Summary Receive a settlement
// @Description Records the amount received. An exact match resolves to received, anything else to discrepancy.
// @Tags settlements
// @Accept json
// @Produce json
// @Param settlementID path string true "Settlement ID"
// @Param receipt body dto.ReceiveSettlementRequest true "Amount received"
// @Success 200 {object} domain.Settlement
// @Failure 404 {object} map[string]string "Settlement not found"
// @Failure 409 {object} map[string]string "Settlement is not pending"
// @Security BearerAuth
// @Router /settlements/{settlementID}/receive [post]
func (h *settlementHandler) receiveSettlement(c *gin.Context) {
	var req dto.ReceiveSettlementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	actor, ok := actorID(c)
	if !ok {
		return
	}
	settlement, err := h.settlementService.ReceiveSettlement(c.Request.Context(), c.Param("settlementID"), req, actor)
	if err != nil {
		respondError(c, err, "Failed to receive settlement")
		return
	}
	c.JSON(http.StatusOK, settlement)
}

// verifySettlement godoc
// @Summary Create and resolve a settlement
// @Tags settlements
// @Accept json
// @Produce json
// @Param settlement body dto.VerifySettlementRequest true "Settlement and amount received"
// @Success 201 {object} domain.Settlement
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /settlements/verify [post]
func (h *settlementHandler) verifySettlement(c *gin.Context) {
	var req dto.VerifySettlementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	actor, ok := actorID(c)
	if !ok {
		return
	}
	settlement, err := h.settlementService.VerifySettlement(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, err, "Failed to verify settlement")
		return
	}
	c.JSON(http.StatusCreated, settlement)
}

// updateSettlementStatus godoc
// @Summary Override a settlement status
// @Tags settlements
// @Accept json
// @Produce json
// @Param settlementID path string true "Settlement ID"
// @Param status body dto.UpdateSettlementStatusRequest true "New status"
// @Success 200 {object} domain.Settlement
// @Failure 404 {object} map[string]string "Settlement not found"
// @Security BearerAuth
// @Router /settlements/{settlementID}/status [patch]
func (h *settlementHandler) updateSettlementStatus(c *gin.Context) {
	var req dto.UpdateSettlementStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	actor, ok := actorID(c)
	if !ok {
		return
	}
	settlement, err := h.settlementService.UpdateSettlementStatus(c.Request.Context(), c.Param("settlementID"), req, actor)
	if err != nil {
		respondError(c, err, "Failed to update settlement")
		return
	}
	c.JSON(http.StatusOK, settlement)
}

// getSettlement godoc
// @Summary Get a settlement
// @Tags settlements
// @Produce json
// @Param settlementID path string true "Settlement ID"
// @Success 200 {object} domain.Settlement
// @Failure 404 {object} map[string]string "Settlement not found"
// @Security BearerAuth
// @Router /settlements/{settlementID} [get]
func (h *settlementHandler) getSettlement(c *gin.Context) {
	settlement, err := h.settlementService.GetSettlementByID(c.Request.Context(), c.Param("settlementID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve settlement")
		return
	}
	c.JSON(http.StatusOK, settlement)
}

// listSettlements godoc
// @Summary List settlements
// @Tags settlements
// @Produce json
// @Param employeeID query string false "Employee ID"
// @Param status query string false "pending, received or discrepancy"
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListSettlementsResponse
// @Security BearerAuth
// @Router /settlements [get]
func (h *settlementHandler) listSettlements(c *gin.Context) {
	var params dto.ListSettlementsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}
	settlements, err := h.settlementService.ListSettlements(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list settlements")
		return
	}
	c.JSON(http.StatusOK, dto.ListSettlementsResponse{Settlements: settlements})
}

// getPendingHandover godoc
// @Summary Pending handover
// @Description Unverified completed cash held by an employee. Field staff may only read their own.
// @Tags handover
// @Produce json
// @Param employeeID path string true "Employee ID"
// @Success 200 {object} dto.PendingHandoverResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /handover/{employeeID}/pending [get]
func (h *settlementHandler) getPendingHandover(c *gin.Context) {
	caller, ok := actorID(c)
	if !ok {
		return
	}
	employeeID := c.Param("employeeID")
	if !middleware.IsAdmin(c) && employeeID != caller {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}
	resp, err := h.handoverService.GetPendingHandover(c.Request.Context(), employeeID)
	if err != nil {
		respondError(c, err, "Failed to load pending handover")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// verifyHandover godoc
// @Summary Verify a handover
// @Description Marks all of an employee's unverified cash as received at the office
// @Tags handover
// @Produce json
// @Param employeeID path string true "Employee ID"
// @Success 200 {object} dto.VerifyHandoverResponse
// @Failure 404 {object} map[string]string "Employee not found"
// @Security BearerAuth
// @Router /handover/{employeeID}/verify [post]
func (h *settlementHandler) verifyHandover(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	resp, err := h.handoverService.VerifyHandover(c.Request.Context(), c.Param("employeeID"), actor)
	if err != nil {
		respondError(c, err, "Failed to verify handover")
		return
	}
	c.JSON(http.StatusOK, resp)
}
