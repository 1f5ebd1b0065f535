package repositories

import (
	"context"

	"github.com/SscSPs/psbook/internal/core/domain"
)

// SettlementFilter narrows a settlement listing.
type SettlementFilter struct {
	EmployeeID string
	Status     domain.SettlementStatus
	Limit      int
	Offset     int
}

// SettlementRepositoryFacade persists settlements.
type SettlementRepositoryFacade interface {
	SaveSettlement(ctx context.Context, settlement domain.Settlement) error
	FindSettlementByID(ctx context.Context, settlementID string) (*domain.Settlement, error)
	FindSettlementByIDForUpdate(ctx context.Context, settlementID string) (*domain.Settlement, error)
	// UpdateSettlementResolution writes the received amount, variance, status, receiver and note.
	UpdateSettlementResolution(ctx context.Context, settlement domain.Settlement) error
	ListSettlements(ctx context.Context, filter SettlementFilter) ([]domain.Settlement, error)
}
