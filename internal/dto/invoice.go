package dto

import (
	"github.com/SscSPs/psbook/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest defines the data needed to issue an invoice.
type CreateInvoiceRequest struct {
	ShopID        string          `json:"shopID" binding:"required"`
	InvoiceNumber string          `json:"invoiceNumber" binding:"required,max=64"`
	Amount        decimal.Decimal `json:"amount" binding:"required,decimal_gt0"`
	IssueDate     string          `json:"issueDate" binding:"omitempty,calendar_date"` // Defaults to today in the business time zone
	Note          string          `json:"note" binding:"max=500"`
}

// ListInvoicesParams defines query parameters for listing invoices.
type ListInvoicesParams struct {
	ShopID   string `form:"shopID"`
	FromDate string `form:"fromDate" binding:"omitempty,calendar_date"`
	ToDate   string `form:"toDate" binding:"omitempty,calendar_date"`
	Limit    int    `form:"limit,default=50"`
	Offset   int    `form:"offset,default=0"`
}

// ListInvoicesResponse wraps the list of invoices.
type ListInvoicesResponse struct {
	Invoices []domain.Invoice `json:"invoices"`
}

// CreateInvoiceResponse returns the invoice and the shop's balance change.
type CreateInvoiceResponse struct {
	Invoice domain.Invoice `json:"invoice"`
	BalanceChangeResponse
}
