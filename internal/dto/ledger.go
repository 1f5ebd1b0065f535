package dto

import (
	"github.com/SscSPs/psbook/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CorrectBalanceRequest is a manual signed adjustment of a shop balance.
type CorrectBalanceRequest struct {
	Delta decimal.Decimal `json:"delta" binding:"required,decimal_nonzero"`
	Note  string          `json:"note" binding:"required,max=500"`
}

// BalanceChangeResponse reports a balance before and after a change.
type BalanceChangeResponse struct {
	OldBalance decimal.Decimal `json:"oldBalance"`
	NewBalance decimal.Decimal `json:"newBalance"`
}

// ListLedgerParams defines query parameters for listing a shop's ledger.
type ListLedgerParams struct {
	Limit     int    `form:"limit,default=50"`
	NextToken string `form:"nextToken"`
}

// ListLedgerResponse is one page of ledger entries, newest first.
type ListLedgerResponse struct {
	Entries   []domain.BalanceAuditLog `json:"entries"`
	NextToken *string                  `json:"nextToken,omitempty"`
}

// LedgerVerificationResponse compares a shop's cached balance with its replayed ledger.
type LedgerVerificationResponse struct {
	ShopID          string          `json:"shopID"`
	CurrentBalance  decimal.Decimal `json:"currentBalance"`
	ComputedBalance decimal.Decimal `json:"computedBalance"`
	OpeningBalance  decimal.Decimal `json:"openingBalance"`
	Drift           decimal.Decimal `json:"drift"` // currentBalance - computedBalance
	Entries         int             `json:"entries"`
	BrokenLinks     int             `json:"brokenLinks"`
	Consistent      bool            `json:"consistent"`
}
