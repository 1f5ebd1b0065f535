package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/psbook/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ShopFilter narrows a shop listing. Zero values mean "any".
type ShopFilter struct {
	RouteID        string
	Zone           string
	Search         string // matched against name, address and phone
	IncludeDeleted bool
	Limit          int
	Offset         int
}

// ShopReader defines read operations for shops.
type ShopReader interface {
	// FindShopByID returns the shop, including soft-deleted ones.
	FindShopByID(ctx context.Context, shopID string) (*domain.Shop, error)
	ListShops(ctx context.Context, filter ShopFilter) ([]domain.Shop, error)
}

// ShopWriter defines write operations for shops.
type ShopWriter interface {
	SaveShop(ctx context.Context, shop domain.Shop) error
	// UpdateShop writes the descriptive fields. The balance is never written here.
	UpdateShop(ctx context.Context, shop domain.Shop) error
	SetShopRoute(ctx context.Context, shopID string, routeID *string, actor string, at time.Time) error
	MarkShopDeleted(ctx context.Context, shopID string, deletedAt time.Time, deletedBy string) error
}

// ShopBalanceWriter is used only by the ledger write path.
type ShopBalanceWriter interface {
	// FindShopByIDForUpdate locks the shop row until the surrounding transaction ends.
	FindShopByIDForUpdate(ctx context.Context, shopID string) (*domain.Shop, error)
	UpdateShopBalance(ctx context.Context, shopID string, balance decimal.Decimal, lastCollectionAt *time.Time, actor string, at time.Time) error
}

// ShopRepositoryFacade combines all shop repository interfaces.
type ShopRepositoryFacade interface {
	ShopReader
	ShopWriter
	ShopBalanceWriter
}

// LedgerCursor is the sequence of the last entry a client has seen.
type LedgerCursor struct {
	Sequence int64
}

// LedgerRepositoryFacade persists the append-only balance audit log.
type LedgerRepositoryFacade interface {
	SaveBalanceAuditLog(ctx context.Context, entry domain.BalanceAuditLog) error
	// ListBalanceAuditLogs returns up to limit entries newest first, strictly after cursor when it is set.
	ListBalanceAuditLogs(ctx context.Context, shopID string, limit int, cursor *LedgerCursor) ([]domain.BalanceAuditLog, error)
	// ListAllBalanceAuditLogs returns every entry for the shop oldest first.
	ListAllBalanceAuditLogs(ctx context.Context, shopID string) ([]domain.BalanceAuditLog, error)
}
