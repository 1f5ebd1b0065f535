package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMode is how a shop paid a field employee.
type PaymentMode string

const (
	PaymentCash   PaymentMode = "cash"
	PaymentUPI    PaymentMode = "upi"
	PaymentCheque PaymentMode = "cheque"
)

// Valid reports whether m is a known payment mode.
func (m PaymentMode) Valid() bool {
	switch m {
	case PaymentCash, PaymentUPI, PaymentCheque:
		return true
	}
	return false
}

// TransactionStatus is the lifecycle state of a collection.
type TransactionStatus string

const (
	TransactionCompleted TransactionStatus = "completed"
	TransactionAdjusted  TransactionStatus = "adjusted"
	TransactionReversed  TransactionStatus = "reversed"
)

// Valid reports whether s is a known transaction status.
func (s TransactionStatus) Valid() bool {
	switch s {
	case TransactionCompleted, TransactionAdjusted, TransactionReversed:
		return true
	}
	return false
}

// GeoPoint is where a collection was recorded.
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Transaction is a payment collected from a shop by an employee. Amount is always positive.
type Transaction struct {
	TransactionID  string            `json:"transactionID"`
	ShopID         string            `json:"shopID"`
	EmployeeID     string            `json:"employeeID"`
	Amount         decimal.Decimal   `json:"amount"`
	PaymentMode    PaymentMode       `json:"paymentMode"`
	Reference      *string           `json:"reference,omitempty"` // UTR or cheque number
	Location       *GeoPoint         `json:"location,omitempty"`
	Status         TransactionStatus `json:"status"`
	Note           string            `json:"note"`
	CollectedAt    time.Time         `json:"collectedAt"`
	IsVerified     bool              `json:"isVerified"`
	VerifiedBy     *string           `json:"verifiedBy,omitempty"`
	VerifiedAt     *time.Time        `json:"verifiedAt,omitempty"`
	ReversedBy     *string           `json:"reversedBy,omitempty"`
	ReversedAt     *time.Time        `json:"reversedAt,omitempty"`
	ReversalReason *string           `json:"reversalReason,omitempty"`
	AuditFields
}

// IsSettleableCash reports whether the transaction counts towards cash an employee must hand over.
func (t *Transaction) IsSettleableCash() bool {
	return t.PaymentMode == PaymentCash && t.Status == TransactionCompleted
}
