package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Shop is a customer of the business. CurrentBalance is positive when the shop owes money
// and is a cached mirror of the shop's balance audit log.
type Shop struct {
	ShopID           string          `json:"shopID"`
	Name             string          `json:"name"`
	Address          string          `json:"address"`
	Phone            string          `json:"phone"`
	Zone             string          `json:"zone"`
	CurrentBalance   decimal.Decimal `json:"currentBalance"`
	RouteID          *string         `json:"routeID,omitempty"`
	LastCollectionAt *time.Time      `json:"lastCollectionAt,omitempty"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// IsDeleted reports whether the shop has been soft deleted.
func (s *Shop) IsDeleted() bool {
	return s.DeletedAt != nil
}
