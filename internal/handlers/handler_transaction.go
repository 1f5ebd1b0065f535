package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/psbook/internal/core/ports/services"
	"github.com/SscSPs/psbook/internal/dto"
	"github.com/SscSPs/psbook/internal/middleware"
)

// transactionHandler handles HTTP requests related to collections.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
}

func newTransactionHandler(ts portssvc.TransactionSvcFacade) *transactionHandler {
	return &transactionHandler{transactionService: ts}
}

// RegisterTransactionRoutes registers routes related to transactions.
func RegisterTransactionRoutes(rg *gin.RouterGroup, transactionService portssvc.TransactionSvcFacade) {
	h := newTransactionHandler(transactionService)

	txns := rg.Group("/transactions")
	{
		txns.GET("", h.listTransactions)
		txns.POST("/collect", h.collectCash)
		txns.GET("/cash-in-hand", h.getCashInHand)
		txns.GET("/:transactionID", h.getTransaction)
		txns.POST("/:transactionID/reverse", middleware.RequireAdmin(), h.reverseTransaction)
	}
}

// collectCash godoc
// @Summary Record a collection
// @Description Records a cash, UPI or cheque payment collected by the caller and lowers the shop balance (never below zero)
// @Tags transactions
// @Accept json
// @Produce json
// @Param collection body dto.CollectCashRequest true "Collection details"
// @Success 201 {object} dto.CollectCashResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Shop not found"
// @Failure 500 {object} map[string]string "Failed to record collection"
// @Security BearerAuth
// @Router /transactions/collect [post]
func (h *transactionHandler) collectCash(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CollectCashRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	employeeID, ok := actorID(c)
	if !ok {
		return
	}

	logger.Info("Received collection", slog.String("shop_id", req.ShopID), slog.String("payment_mode", string(req.PaymentMode)))
	resp, err := h.transactionService.CollectCash(c.Request.Context(), req, employeeID)
	if err != nil {
		respondError(c, err, "Failed to record collection")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// reverseTransaction godoc
// @Summary Reverse a transaction
// @Description Restores the shop balance by the original amount. A transaction can be reversed once.
// @Tags transactions
// @Accept json
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Param reversal body dto.ReverseTransactionRequest true "Reason"
// @Success 200 {object} dto.BalanceChangeResponse
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 409 {object} map[string]string "Already reversed"
// @Security BearerAuth
// @Router /transactions/{transactionID}/reverse [post]
func (h *transactionHandler) reverseTransaction(c *gin.Context) {
	var req dto.ReverseTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	actor, ok := actorID(c)
	if !ok {
		return
	}

	resp, err := h.transactionService.ReverseTransaction(c.Request.Context(), c.Param("transactionID"), req, actor)
	if err != nil {
		respondError(c, err, "Failed to reverse transaction")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getTransaction godoc
// @Summary Get a transaction
// @Tags transactions
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Success 200 {object} domain.Transaction
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Security BearerAuth
// @Router /transactions/{transactionID} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	caller, ok := actorID(c)
	if !ok {
		return
	}
	txn, err := h.transactionService.GetTransactionByID(c.Request.Context(), c.Param("transactionID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve transaction")
		return
	}
	if !middleware.IsAdmin(c) && txn.EmployeeID != caller {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}
	c.JSON(http.StatusOK, txn)
}

// listTransactions godoc
// @Summary List transactions
// @Description Field staff only see their own collections
// @Tags transactions
// @Produce json
// @Param employeeID query string false "Employee ID (admins only)"
// @Param shopID query string false "Shop ID"
// @Param date query string false "Calendar day YYYY-MM-DD in the business time zone"
// @Param paymentMode query string false "cash, upi or cheque"
// @Param status query string false "completed, adjusted or reversed"
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} map[string]string "Invalid filter"
// @Security BearerAuth
// @Router /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	var params dto.ListTransactionsParams
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

	txns, err := h.transactionService.ListTransactions(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list transactions")
		return
	}
	c.JSON(http.StatusOK, dto.ListTransactionsResponse{Transactions: txns})
}

// getCashInHand godoc
// @Summary Cash in hand
// @Description Sum of today's completed cash collections. Admins may pass employeeID.
// @Tags transactions
// @Produce json
// @Param employeeID query string false "Employee ID (admins only)"
// @Success 200 {object} dto.CashInHandResponse
// @Security BearerAuth
// @Router /transactions/cash-in-hand [get]
func (h *transactionHandler) getCashInHand(c *gin.Context) {
	caller, ok := actorID(c)
	if !ok {
		return
	}
	employeeID := caller
	if requested := c.Query("employeeID"); requested != "" && middleware.IsAdmin(c) {
		employeeID = requested
	}

	resp, err := h.transactionService.GetEmployeeCashInHand(c.Request.Context(), employeeID)
	if err != nil {
		respondError(c, err, "Failed to compute cash in hand")
		return
	}
	c.JSON(http.StatusOK, resp)
}
