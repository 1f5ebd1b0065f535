package services

import (
	"context"

	"github.com/SscSPs/psbook/internal/core/domain"
	"github.com/SscSPs/psbook/internal/dto"
)

// SettlementSvcFacade reconciles the cash employees hand over.
type SettlementSvcFacade interface {
	// CreateSettlement opens a pending settlement. The expected amount is computed from the transactions.
	CreateSettlement(ctx context.Context, req dto.CreateSettlementRequest, actorID string) (*domain.Settlement, error)

	// ReceiveSettlement resolves a pending settlement against the amount received.
	ReceiveSettlement(ctx context.Context, settlementID string, req dto.ReceiveSettlementRequest, actorID string) (*domain.Settlement, error)

	// VerifySettlement creates and resolves a settlement in one step.
	VerifySettlement(ctx context.Context, req dto.VerifySettlementRequest, actorID string) (*domain.Settlement, error)

	// UpdateSettlementStatus forces a status regardless of variance.
	UpdateSettlementStatus(ctx context.Context, settlementID string, req dto.UpdateSettlementStatusRequest, actorID string) (*domain.Settlement, error)

	GetSettlementByID(ctx context.Context, settlementID string) (*domain.Settlement, error)
	ListSettlements(ctx context.Context, params dto.ListSettlementsParams) ([]domain.Settlement, error)
}

// HandoverSvcFacade is the bulk "cash received at the office" flag on transactions.
type HandoverSvcFacade interface {
	GetPendingHandover(ctx context.Context, employeeID string) (*dto.PendingHandoverResponse, error)
	VerifyHandover(ctx context.Context, employeeID string, actorID string) (*dto.VerifyHandoverResponse, error)
}
