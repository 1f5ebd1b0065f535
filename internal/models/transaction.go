package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the row stored in the transactions table.
// Latitude and Longitude are both set or both NULL.
type Transaction struct {
	TransactionID  string          `db:"transaction_id"`
	ShopID         string          `db:"shop_id"`
	EmployeeID     string          `db:"employee_id"`
	Amount         decimal.Decimal `db:"amount"`
	PaymentMode    string          `db:"payment_mode"`
	Reference      *string         `db:"reference"`
	Latitude       *float64        `db:"latitude"`
	Longitude      *float64        `db:"longitude"`
	Status         string          `db:"status"`
	Note           string          `db:"note"`
	CollectedAt    time.Time       `db:"collected_at"`
	IsVerified     bool            `db:"is_verified"`
	VerifiedBy     *string         `db:"verified_by"`
	VerifiedAt     *time.Time      `db:"verified_at"`
	ReversedBy     *string         `db:"reversed_by"`
	ReversedAt     *time.Time      `db:"reversed_at"`
	ReversalReason *string         `db:"reversal_reason"`
	AuditFields
}

// Invoice is the row stored in the invoices table.
type Invoice struct {
	InvoiceID     string          `db:"invoice_id"`
	ShopID        string          `db:"shop_id"`
	InvoiceNumber string          `db:"invoice_number"`
	Amount        decimal.Decimal `db:"amount"`
	IssueDate     string          `db:"issue_date"`
	Note          string          `db:"note"`
	AuditFields
}

// Settlement is the row stored in the settlements table.
type Settlement struct {
	SettlementID   string              `db:"settlement_id"`
	EmployeeID     string              `db:"employee_id"`
	ExpectedAmount decimal.Decimal     `db:"expected_amount"`
	ReceivedAmount decimal.NullDecimal `db:"received_amount"`
	Variance       decimal.NullDecimal `db:"variance"`
	Status         string              `db:"status"`
	TransactionIDs []string            `db:"transaction_ids"`
	ReceivedBy     *string             `db:"received_by"`
	ReceivedAt     *time.Time          `db:"received_at"`
	Note           string              `db:"note"`
	AuditFields
}
