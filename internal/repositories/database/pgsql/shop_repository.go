package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/psbook/internal/apperrors"
	"github.com/SscSPs/psbook/internal/core/domain"
	portsrepo "github.com/SscSPs/psbook/internal/core/ports/repositories"
	"github.com/SscSPs/psbook/internal/models"
	"github.com/SscSPs/psbook/internal/utils/mapping"
	"github.com/shopspring/decimal"
)

type PgxShopRepository struct {
	BaseRepository
}

func newPgxShopRepository(db DBTX) portsrepo.ShopRepositoryFacade {
	return &PgxShopRepository{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.ShopRepositoryFacade = (*PgxShopRepository)(nil)

const shopColumns = `shop_id, name, address, phone, zone, current_balance, route_id, last_collection_at,
	created_at, created_by, last_updated_at, last_updated_by, deleted_at`

func scanShop(row rowScanner) (domain.Shop, error) {
	var m models.Shop
	err := row.Scan(
		&m.ShopID,
		&m.Name,
		&m.Address,
		&m.Phone,
		&m.Zone,
		&m.CurrentBalance,
		&m.RouteID,
		&m.LastCollectionAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.DeletedAt,
	)
	if err != nil {
		return domain.Shop{}, err
	}
	return mapping.ToDomainShop(m), nil
}

func (r *PgxShopRepository) SaveShop(ctx context.Context, shop domain.Shop) error {
	m := mapping.ToModelShop(shop)
	query := `
		INSERT INTO shops (shop_id, name, address, phone, zone, current_balance, route_id,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.DB.Exec(ctx, query,
		m.ShopID,
		m.Name,
		m.Address,
		m.Phone,
		m.Zone,
		m.CurrentBalance,
		m.RouteID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return wrapWriteError(err, "insert shop "+m.ShopID)
	}
	return nil
}

func (r *PgxShopRepository) FindShopByID(ctx context.Context, shopID string) (*domain.Shop, error) {
	query := `SELECT ` + shopColumns + ` FROM shops WHERE shop_id = $1;`
	shop, err := scanShop(r.DB.QueryRow(ctx, query, shopID))
	if err != nil {
		return nil, wrapReadError(err, "shop "+shopID)
	}
	return &shop, nil
}

// FindShopByIDForUpdate skips soft-deleted shops: they can no longer take balance changes.
func (r *PgxShopRepository) FindShopByIDForUpdate(ctx context.Context, shopID string) (*domain.Shop, error) {
	query := `SELECT ` + shopColumns + ` FROM shops WHERE shop_id = $1 AND deleted_at IS NULL FOR UPDATE;`
	shop, err := scanShop(r.DB.QueryRow(ctx, query, shopID))
	if err != nil {
		return nil, wrapReadError(err, "shop "+shopID)
	}
	return &shop, nil
}

func (r *PgxShopRepository) ListShops(ctx context.Context, filter portsrepo.ShopFilter) ([]domain.Shop, error) {
	qb := &queryBuilder{}
	if !filter.IncludeDeleted {
		qb.addRaw("deleted_at IS NULL")
	}
	if filter.RouteID != "" {
		qb.add("route_id = $%d", filter.RouteID)
	}
	if filter.Zone != "" {
		qb.add("zone = $%d", filter.Zone)
	}
	if filter.Search != "" {
		qb.add("(name ILIKE $%[1]d OR address ILIKE $%[1]d OR phone ILIKE $%[1]d)", "%"+filter.Search+"%")
	}
	query := `SELECT ` + shopColumns + ` FROM shops` + qb.where() + ` ORDER BY name ASC, shop_id ASC` + qb.page(filter.Limit, filter.Offset)

	rows, err := r.DB.Query(ctx, query, qb.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query shops: %w", err)
	}
	defer rows.Close()

	shops := []domain.Shop{}
	for rows.Next() {
		shop, err := scanShop(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shop row: %w", err)
		}
		shops = append(shops, shop)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shop rows: %w", err)
	}
	return shops, nil
}

func (r *PgxShopRepository) UpdateShop(ctx context.Context, shop domain.Shop) error {
	m := mapping.ToModelShop(shop)
	query := `
		UPDATE shops
		SET name = $2, address = $3, phone = $4, zone = $5, route_id = $6,
			last_updated_at = $7, last_updated_by = $8
		WHERE shop_id = $1 AND deleted_at IS NULL;
	`
	tag, err := r.DB.Exec(ctx, query,
		m.ShopID,
		m.Name,
		m.Address,
		m.Phone,
		m.Zone,
		m.RouteID,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return wrapWriteError(err, "update shop "+m.ShopID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: shop %s", apperrors.ErrNotFound, m.ShopID)
	}
	return nil
}

func (r *PgxShopRepository) SetShopRoute(ctx context.Context, shopID string, routeID *string, actor string, at time.Time) error {
	query := `
		UPDATE shops SET route_id = $2, last_updated_at = $3, last_updated_by = $4
		WHERE shop_id = $1 AND deleted_at IS NULL;
	`
	tag, err := r.DB.Exec(ctx, query, shopID, routeID, at, actor)
	if err != nil {
		return wrapWriteError(err, "set route of shop "+shopID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: shop %s", apperrors.ErrNotFound, shopID)
	}
	return nil
}

func (r *PgxShopRepository) UpdateShopBalance(ctx context.Context, shopID string, balance decimal.Decimal, lastCollectionAt *time.Time, actor string, at time.Time) error {
	query := `
		UPDATE shops
		SET current_balance = $2,
			last_collection_at = COALESCE($3, last_collection_at),
			last_updated_at = $4, last_updated_by = $5
		WHERE shop_id = $1;
	`
	tag, err := r.DB.Exec(ctx, query, shopID, balance, lastCollectionAt, at, actor)
	if err != nil {
		return wrapWriteError(err, "update balance of shop "+shopID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: shop %s", apperrors.ErrNotFound, shopID)
	}
	return nil
}

func (r *PgxShopRepository) MarkShopDeleted(ctx context.Context, shopID string, deletedAt time.Time, deletedBy string) error {
	query := `
		UPDATE shops SET deleted_at = $2, last_updated_at = $2, last_updated_by = $3
		WHERE shop_id = $1 AND deleted_at IS NULL;
	`
	tag, err := r.DB.Exec(ctx, query, shopID, deletedAt, deletedBy)
	if err != nil {
		return wrapWriteError(err, "delete shop "+shopID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: shop %s", apperrors.ErrNotFound, shopID)
	}
	return nil
}
