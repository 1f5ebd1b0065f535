package services

import (
	"context"
	"io"

	"github.com/SscSPs/psbook/internal/core/domain"
	"github.com/SscSPs/psbook/internal/dto"
)

// ShopReaderSvc defines read operations for shops
type ShopReaderSvc interface {
	// GetShopByID retrieves a shop, including a soft-deleted one.
	GetShopByID(ctx context.Context, shopID string) (*domain.Shop, error)

	// ListShops retrieves shops matching the filter.
	ListShops(ctx context.Context, params dto.ListShopsParams) ([]domain.Shop, error)
}

// ShopWriterSvc defines write operations for shops
type ShopWriterSvc interface {
	CreateShop(ctx context.Context, req dto.CreateShopRequest, actorID string) (*domain.Shop, error)
	UpdateShop(ctx context.Context, shopID string, req dto.UpdateShopRequest, actorID string) (*domain.Shop, error)
	DeleteShop(ctx context.Context, shopID string, actorID string) error
}

// ShopSvcFacade combines all shop-related service interfaces
type ShopSvcFacade interface {
	ShopReaderSvc
	ShopWriterSvc
}

// LedgerSvcFacade exposes a shop's balance history and manual corrections.
type LedgerSvcFacade interface {
	// CorrectBalance applies a signed adjustment and records it in the ledger.
	CorrectBalance(ctx context.Context, shopID string, req dto.CorrectBalanceRequest, actorID string) (*dto.BalanceChangeResponse, error)

	// ListLedger returns one page of ledger entries, newest first.
	ListLedger(ctx context.Context, shopID string, params dto.ListLedgerParams) (*dto.ListLedgerResponse, error)

	// ExportLedger writes the shop's full ledger as an XLSX workbook.
	ExportLedger(ctx context.Context, shopID string, w io.Writer) error

	// VerifyLedger replays the ledger and compares it with the cached balance.
	VerifyLedger(ctx context.Context, shopID string) (*dto.LedgerVerificationResponse, error)
}
