package dto

import (
	"github.com/SscSPs/psbook/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CollectCashRequest records a payment collected by the calling employee.
// All three payment modes are accepted.
type CollectCashRequest struct {
	ShopID      string             `json:"shopID" binding:"required"`
	Amount      decimal.Decimal    `json:"amount" binding:"required,decimal_gt0"`
	PaymentMode domain.PaymentMode `json:"paymentMode" binding:"required,oneof=cash upi cheque"`
	Reference   *string            `json:"reference" binding:"omitempty,max=100"`
	Latitude    *float64           `json:"latitude" binding:"omitempty,latitude"`
	Longitude   *float64           `json:"longitude" binding:"omitempty,longitude"`
	Note        string             `json:"note" binding:"max=500"`
}

// ReverseTransactionRequest carries the reason for a reversal.
type ReverseTransactionRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	EmployeeID  string `form:"employeeID"`
	ShopID      string `form:"shopID"`
	Date        string `form:"date" binding:"omitempty,calendar_date"`
	PaymentMode string `form:"paymentMode" binding:"omitempty,oneof=cash upi cheque"`
	Status      string `form:"status" binding:"omitempty,oneof=completed adjusted reversed"`
	Limit       int    `form:"limit,default=50"`
	Offset      int    `form:"offset,default=0"`
}

// ListTransactionsResponse wraps the list of transactions.
type ListTransactionsResponse struct {
	Transactions []domain.Transaction `json:"transactions"`
}

// CollectCashResponse returns the recorded transaction and the shop's balance change.
type CollectCashResponse struct {
	Transaction domain.Transaction `json:"transaction"`
	BalanceChangeResponse
}

// CashInHandResponse is the cash an employee collected today.
type CashInHandResponse struct {
	EmployeeID string          `json:"employeeID"`
	Date       string          `json:"date"`
	CashInHand decimal.Decimal `json:"cashInHand"`
}
