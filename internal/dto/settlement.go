package dto

import (
	"github.com/SscSPs/psbook/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateSettlementRequest opens a pending settlement over a set of transactions.
type CreateSettlementRequest struct {
	EmployeeID     string   `json:"employeeID" binding:"required"`
	TransactionIDs []string `json:"transactionIDs" binding:"required,min=1,dive,required"`
	Note           string   `json:"note" binding:"max=500"`
}

// ReceiveSettlementRequest records the cash the office actually received.
type ReceiveSettlementRequest struct {
	ReceivedAmount decimal.Decimal `json:"receivedAmount" binding:"required,decimal_gte0"`
	Note           string          `json:"note" binding:"max=500"`
}

// VerifySettlementRequest creates and resolves a settlement in one step.
type VerifySettlementRequest struct {
	EmployeeID     string          `json:"employeeID" binding:"required"`
	TransactionIDs []string        `json:"transactionIDs" binding:"required,min=1,dive,required"`
	ReceivedAmount decimal.Decimal `json:"receivedAmount" binding:"required,decimal_gte0"`
	Note           string          `json:"note" binding:"max=500"`
}

// UpdateSettlementStatusRequest forces a settlement status.
type UpdateSettlementStatusRequest struct {
	Status domain.SettlementStatus `json:"status" binding:"required,oneof=pending received discrepancy"`
	Note   string                  `json:"note" binding:"max=500"`
}

// ListSettlementsParams defines query parameters for listing settlements.
type ListSettlementsParams struct {
	EmployeeID string `form:"employeeID"`
	Status     string `form:"status" binding:"omitempty,oneof=pending received discrepancy"`
	Limit      int    `form:"limit,default=50"`
	Offset     int    `form:"offset,default=0"`
}

// ListSettlementsResponse wraps the list of settlements.
type ListSettlementsResponse struct {
	Settlements []domain.Settlement `json:"settlements"`
}

// PendingHandoverResponse is the cash an employee still holds.
type PendingHandoverResponse struct {
	EmployeeID   string               `json:"employeeID"`
	Transactions []domain.Transaction `json:"transactions"`
	Count        int                  `json:"count"`
	Amount       decimal.Decimal      `json:"amount"`
}

// VerifyHandoverResponse reports how many transactions were marked verified and their total.
type VerifyHandoverResponse struct {
	Verified int             `json:"verified"`
	Amount   decimal.Decimal `json:"amount"`
}
