package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Shop is the row stored in the shops table.
type Shop struct {
	ShopID           string          `db:"shop_id"`
	Name             string          `db:"name"`
	Address          string          `db:"address"`
	Phone            string          `db:"phone"`
	Zone             string          `db:"zone"`
	CurrentBalance   decimal.Decimal `db:"current_balance"`
	RouteID          *string         `db:"route_id"`
	LastCollectionAt *time.Time      `db:"last_collection_at"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}

// BalanceAuditLog is the row stored in the balance_audit_logs table.
type BalanceAuditLog struct {
	LogID           string          `db:"log_id"`
	ShopID          string          `db:"shop_id"`
	PreviousBalance decimal.Decimal `db:"previous_balance"`
	NewBalance      decimal.Decimal `db:"new_balance"`
	ChangeAmount    decimal.Decimal `db:"change_amount"`
	ChangeType      string          `db:"change_type"`
	ReferenceID     *string         `db:"reference_id"`
	Note            string          `db:"note"`
	CreatedAt       time.Time       `db:"created_at"`
	CreatedBy       string          `db:"created_by"`
	Sequence        int64           `db:"seq"`
}
