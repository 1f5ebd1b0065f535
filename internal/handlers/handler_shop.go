package handlers

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/psbook/internal/core/ports/services"
	"github.com/SscSPs/psbook/internal/dto"
	"github.com/SscSPs/psbook/internal/middleware"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// shopHandler handles HTTP requests related to shops and their ledgers.
type shopHandler struct {
	shopService   portssvc.ShopSvcFacade
	ledgerService portssvc.LedgerSvcFacade
}

func newShopHandler(ss portssvc.ShopSvcFacade, ls portssvc.LedgerSvcFacade) *shopHandler {
	return &shopHandler{shopService: ss, ledgerService: ls}
}

// registerShopRoutes registers routes related to shops.
func registerShopRoutes(rg *gin.RouterGroup, shopService portssvc.ShopSvcFacade, ledgerService portssvc.LedgerSvcFacade) {
	h := newShopHandler(shopService, ledgerService)
	admin := middleware.RequireAdmin()

	shops := rg.Group("/shops")
	{
		shops.GET("", h.listShops)
		shops.POST("", admin, h.createShop)
		shops.GET("/:shopID", h.getShop)
		shops.PUT("/:shopID", admin, h.updateShop)
		shops.DELETE("/:shopID", admin, h.deleteShop)

		shops.POST("/:shopID/balance-corrections", admin, h.correctBalance)
		shops.GET("/:shopID/ledger", h.listLedger)
		shops.GET("/:shopID/ledger/export", admin, h.exportLedger)
		shops.GET("/:shopID/ledger/verify", admin, h.verifyLedger)
	}
}

// createShop godoc
// @Summary Create a shop
// @Description Creates a shop with an optional opening balance
// @Tags shops
// @Accept json
// @Produce json
// @Param shop body dto.CreateShopRequest true "Shop details"
// @Success 201 {object} dto.ShopResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to create shop"
// @Security BearerAuth
// @Router /shops [post]
func (h *shopHandler) createShop(c *gin.Context) {
	var req dto.CreateShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	actor, ok := actorID(c)
	if !ok {
		return
	}

	shop, err := h.shopService.CreateShop(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, err, "Failed to create shop")
		return
	}
	c.JSON(http.StatusCreated, dto.ToShopResponse(shop))
}

// getShop godoc
// @Summary Get a shop
// @Tags shops
// @Produce json
// @Param shopID path string true "Shop ID"
// @Success 200 {object} dto.ShopResponse
// @Failure 404 {object} map[string]string "Shop not found"
// @Security BearerAuth
// @Router /shops/{shopID} [get]
func (h *shopHandler) getShop(c *gin.Context) {
	shop, err := h.shopService.GetShopByID(c.Request.Context(), c.Param("shopID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve shop")
		return
	}
	c.JSON(http.StatusOK, dto.ToShopResponse(shop))
}

// listShops godoc
// @Summary List shops
// @Tags shops
// @Produce json
// @Param routeID query string false "Route ID"
// @Param zone query string false "Zone"
// @Param search query string false "Matches name, address or phone"
// @Param includeDeleted query bool false "Include soft-deleted shops"
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListShopsResponse
// @Security BearerAuth
// @Router /shops [get]
func (h *shopHandler) listShops(c *gin.Context) {
	var params dto.ListShopsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}
	if !middleware.IsAdmin(c) {
		params.IncludeDeleted = false
	}

	shops, err := h.shopService.ListShops(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list shops")
		return
	}
	c.JSON(http.StatusOK, dto.ToListShopsResponse(shops))
}

// updateShop godoc
// @Summary Update a shop
// @Description Updates descriptive fields. The balance can only change through the ledger.
// @Tags shops
// @Accept json
// @Produce json
// @Param shopID path string true "Shop ID"
// @Param shop body dto.UpdateShopRequest true "Fields to update"
// @Success 200 {object} dto.ShopResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Shop not found"
// @Security BearerAuth
// @Router /shops/{shopID} [put]
func (h *shopHandler) updateShop(c *gin.Context) {
	var req dto.UpdateShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	actor, ok := actorID(c)
	if !ok {
		return
	}

	shop, err := h.shopService.UpdateShop(c.Request.Context(), c.Param("shopID"), req, actor)
	if err != nil {
		respondError(c, err, "Failed to update shop")
		return
	}
	c.JSON(http.StatusOK, dto.ToShopResponse(shop))
}

// deleteShop godoc
// @Summary Delete a shop
// @Tags shops
// @Param shopID path string true "Shop ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Shop not found"
// @Security BearerAuth
// @Router /shops/{shopID} [delete]
func (h *shopHandler) deleteShop(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		return
	}
	if err := h.shopService.DeleteShop(c.Request.Context(), c.Param("shopID"), actor); err != nil {
		respondError(c, err, "Failed to delete shop")
		return
	}
	c.Status(http.StatusNoContent)
}

// correctBalance godoc
// @Summary Correct a shop balance
// @Description Applies a signed, non-zero adjustment and records it in the ledger
// @Tags ledger
// @Accept json
// @Produce json
// @Param shopID path string true "Shop ID"
// @Param correction body dto.CorrectBalanceRequest true "Adjustment"
// @Success 200 {object} dto.BalanceChangeResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Shop not found"
// @Security BearerAuth
// @Router /shops/{shopID}/balance-corrections [post]
func (h *shopHandler) correctBalance(c *gin.Context) {
	var req dto.CorrectBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	actor, ok := actorID(c)
	if !ok {
		return
	}

	resp, err := h.ledgerService.CorrectBalance(c.Request.Context(), c.Param("shopID"), req, actor)
	if err != nil {
		respondError(c, err, "Failed to correct balance")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// listLedger godoc
// @Summary List a shop's ledger
// @Description Returns balance audit entries newest first, paginated with nextToken
// @Tags ledger
// @Produce json
// @Param shopID path string true "Shop ID"
// @Param limit query int false "Page size" default(50)
// @Param nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListLedgerResponse
// @Failure 400 {object} map[string]string "Invalid token"
// @Failure 404 {object} map[string]string "Shop not found"
// @Security BearerAuth
// @Router /shops/{shopID}/ledger [get]
func (h *shopHandler) listLedger(c *gin.Context) {
	var params dto.ListLedgerParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}
	resp, err := h.ledgerService.ListLedger(c.Request.Context(), c.Param("shopID"), params)
	if err != nil {
		respondError(c, err, "Failed to list ledger")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// exportLedger godoc
// @Summary Export a shop's ledger
// @Description Downloads the full ledger as an XLSX workbook
// @Tags ledger
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param shopID path string true "Shop ID"
// @Success 200 {file} file
// @Failure 404 {object} map[string]string "Shop not found"
// @Security BearerAuth
// @Router /shops/{shopID}/ledger/export [get]
func (h *shopHandler) exportLedger(c *gin.Context) {
	shopID := c.Param("shopID")
	var buf bytes.Buffer
	if err := h.ledgerService.ExportLedger(c.Request.Context(), shopID, &buf); err != nil {
		respondError(c, err, "Failed to export ledger")
		return
	}

	filename := fmt.Sprintf("ledger-%s-%s.xlsx", shopID, time.Now().UTC().Format("20060102"))
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Ledger exported", slog.String("shop_id", shopID), slog.Int("bytes", buf.Len()))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// verifyLedger godoc
// @Summary Verify a shop's ledger
// @Description Replays the ledger and compares the result with the stored balance
// @Tags ledger
// @Produce json
// @Param shopID path string true "Shop ID"
// @Success 200 {object} dto.LedgerVerificationResponse
// @Failure 404 {object} map[string]string "Shop not found"
// @Security BearerAuth
// @Router /shops/{shopID}/ledger/verify [get]
func (h *shopHandler) verifyLedger(c *gin.Context) {
	resp, err := h.ledgerService.VerifyLedger(c.Request.Context(), c.Param("shopID"))
	if err != nil {
		respondError(c, err, "Failed to verify ledger")
		return
	}
	c.JSON(http.StatusOK, resp)
}
