package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ChangeType classifies an entry in a shop's balance audit log.
type ChangeType string

const (
	ChangeCollection    ChangeType = "collection"
	ChangeInvoice       ChangeType = "invoice"
	ChangeInvoiceCancel ChangeType = "invoice_cancel" // reserved, nothing produces it yet
	ChangeAdjustment    ChangeType = "adjustment"
	ChangeReversal      ChangeType = "reversal"
)

// Valid reports whether c is a known change type.
func (c ChangeType) Valid() bool {
	switch c {
	case ChangeCollection, ChangeInvoice, ChangeInvoiceCancel, ChangeAdjustment, ChangeReversal:
		return true
	}
	return false
}

// BalanceAuditLog is one immutable entry in a shop's ledger.
// NewBalance always equals PreviousBalance + ChangeAmount.
type BalanceAuditLog struct {
	LogID           string          `json:"logID"`
	ShopID          string          `json:"shopID"`
	PreviousBalance decimal.Decimal `json:"previousBalance"`
	NewBalance      decimal.Decimal `json:"newBalance"`
	ChangeAmount    decimal.Decimal `json:"changeAmount"`
	ChangeType      ChangeType      `json:"changeType"`
	ReferenceID     *string         `json:"referenceID,omitempty"` // transaction or invoice that caused the change
	Note            string          `json:"note"`
	CreatedAt       time.Time       `json:"createdAt"`
	CreatedBy       string          `json:"createdBy"`
	Sequence        int64           `json:"sequence"` // assigned by storage, increases in creation order
}

// LedgerPosting is a request to move a shop's balance. Amount is the positive collected,
// invoiced or restored amount for collection, invoice and reversal; for adjustment it is the
// signed delta.
type LedgerPosting struct {
	ShopID      string
	ChangeType  ChangeType
	Amount      decimal.Decimal
	ReferenceID *string
	Actor       string
	Note        string
	At          time.Time
}

// ComputeNewBalance applies the balance policy for a change type.
//
//	collection: max(0, previous - amount)
//	invoice:    previous + amount
//	reversal:   previous + amount
//	adjustment: previous + amount (signed, unclamped)
func ComputeNewBalance(changeType ChangeType, previous, amount decimal.Decimal) (decimal.Decimal, error) {
	switch changeType {
	case ChangeCollection:
		if !amount.IsPositive() {
			return decimal.Zero, fmt.Errorf("collection amount must be positive, got %s", amount)
		}
		return decimal.Max(decimal.Zero, previous.Sub(amount)), nil
	case ChangeInvoice, ChangeReversal:
		if !amount.IsPositive() {
			return decimal.Zero, fmt.Errorf("%s amount must be positive, got %s", changeType, amount)
		}
		return previous.Add(amount), nil
	case ChangeAdjustment:
		if amount.IsZero() {
			return decimal.Zero, fmt.Errorf("adjustment delta must be non-zero")
		}
		return previous.Add(amount), nil
	case ChangeInvoiceCancel:
		return decimal.Zero, fmt.Errorf("change type %s is reserved", changeType)
	default:
		return decimal.Zero, fmt.Errorf("unknown change type %q", changeType)
	}
}

// NewBalanceAuditLog builds the audit entry for a posting applied on top of previous.
func NewBalanceAuditLog(logID string, posting LedgerPosting, previous, next decimal.Decimal) BalanceAuditLog {
	return BalanceAuditLog{
		LogID:           logID,
		ShopID:          posting.ShopID,
		PreviousBalance: previous,
		NewBalance:      next,
		ChangeAmount:    next.Sub(previous),
		ChangeType:      posting.ChangeType,
		ReferenceID:     posting.ReferenceID,
		Note:            posting.Note,
		CreatedAt:       posting.At,
		CreatedBy:       posting.Actor,
	}
}

// LedgerReplay is the result of recomputing a balance from audit entries.
type LedgerReplay struct {
	OpeningBalance  decimal.Decimal `json:"openingBalance"`
	ComputedBalance decimal.Decimal `json:"computedBalance"`
	Entries         int             `json:"entries"`
	BrokenLinks     int             `json:"brokenLinks"` // entries whose previousBalance does not follow the prior newBalance
}

// ReplayLedger recomputes a balance from entries in creation order: the first entry's
// previous balance plus every change amount.
func ReplayLedger(entries []BalanceAuditLog) LedgerReplay {
	var r LedgerReplay
	if len(entries) == 0 {
		return r
	}
	r.OpeningBalance = entries[0].PreviousBalance
	r.ComputedBalance = r.OpeningBalance
	for i, e := range entries {
		if i > 0 && !e.PreviousBalance.Equal(entries[i-1].NewBalance) {
			r.BrokenLinks++
		}
		r.ComputedBalance = r.ComputedBalance.Add(e.ChangeAmount)
		r.Entries++
	}
	return r
}
