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
)

type PgxRouteRepository struct {
	BaseRepository
}

func newPgxRouteRepository(db DBTX) portsrepo.RouteRepositoryFacade {
	return &PgxRouteRepository{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.RouteRepositoryFacade = (*PgxRouteRepository)(nil)

const routeColumns = `route_id, name, code, name_lower, code_lower, description, is_active,
	created_at, created_by, last_updated_at, last_updated_by, deleted_at`

func scanRoute(row rowScanner) (domain.Route, error) {
	var m models.Route
	err := row.Scan(
		&m.RouteID,
		&m.Name,
		&m.Code,
		&m.NameLower,
		&m.CodeLower,
		&m.Description,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.DeletedAt,
	)
	if err != nil {
		return domain.Route{}, err
	}
	return mapping.ToDomainRoute(m), nil
}

func (r *PgxRouteRepository) SaveRoute(ctx context.Context, route domain.Route) error {
	m := mapping.ToModelRoute(route)
	query := `
		INSERT INTO routes (route_id, name, code, name_lower, code_lower, description, is_active,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.DB.Exec(ctx, query,
		m.RouteID,
		m.Name,
		m.Code,
		m.NameLower,
		m.CodeLower,
		m.Description,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return wrapWriteError(err, "insert route "+m.Name)
	}
	return nil
}

func (r *PgxRouteRepository) findOne(ctx context.Context, where, what string, args ...any) (*domain.Route, error) {
	query := `SELECT ` + routeColumns + ` FROM routes WHERE ` + where + ` AND deleted_at IS NULL LIMIT 1;`
	route, err := scanRoute(r.DB.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, wrapReadError(err, what)
	}
	return &route, nil
}

func (r *PgxRouteRepository) FindRouteByID(ctx context.Context, routeID string) (*domain.Route, error) {
	return r.findOne(ctx, "route_id = $1", "route "+routeID, routeID)
}

func (r *PgxRouteRepository) FindRouteByNameLower(ctx context.Context, nameLower, excludeID string) (*domain.Route, error) {
	return r.findOne(ctx, "name_lower = $1 AND route_id <> $2", "route named "+nameLower, nameLower, excludeID)
}

func (r *PgxRouteRepository) FindRouteByCodeLower(ctx context.Context, codeLower, excludeID string) (*domain.Route, error) {
	return r.findOne(ctx, "code_lower = $1 AND route_id <> $2", "route with code "+codeLower, codeLower, excludeID)
}

// FindLegacyRouteByName scans rows that predate the name_lower column.
// Remove once the backfill has run everywhere.
func (r *PgxRouteRepository) FindLegacyRouteByName(ctx context.Context, nameLower, excludeID string) (*domain.Route, error) {
	return r.findOne(ctx, "name_lower IS NULL AND lower(btrim(name)) = $1 AND route_id <> $2", "legacy route named "+nameLower, nameLower, excludeID)
}

// FindLegacyRouteByCode scans rows that predate the code_lower column.
func (r *PgxRouteRepository) FindLegacyRouteByCode(ctx context.Context, codeLower, excludeID string) (*domain.Route, error) {
	return r.findOne(ctx, "code_lower IS NULL AND lower(btrim(code)) = $1 AND route_id <> $2", "legacy route with code "+codeLower, codeLower, excludeID)
}

func (r *PgxRouteRepository) ListRoutes(ctx context.Context, includeInactive bool) ([]domain.Route, error) {
	query := `SELECT ` + routeColumns + ` FROM routes WHERE deleted_at IS NULL`
	if !includeInactive {
		query += ` AND is_active = TRUE`
	}
	query += ` ORDER BY name ASC;`
	return r.queryRoutes(ctx, query)
}

func (r *PgxRouteRepository) ListRoutesNeedingBackfill(ctx context.Context, limit int) ([]domain.Route, error) {
	limit, _ = normalizePage(limit, 0)
	query := `SELECT ` + routeColumns + ` FROM routes
		WHERE name_lower IS NULL OR code_lower IS NULL
		ORDER BY created_at ASC LIMIT $1;`
	return r.queryRoutes(ctx, query, limit)
}

func (r *PgxRouteRepository) UpdateRoute(ctx context.Context, route domain.Route) error {
	m := mapping.ToModelRoute(route)
	query := `
		UPDATE routes
		SET name = $2, code = $3, name_lower = $4, code_lower = $5, description = $6, is_active = $7,
			last_updated_at = $8, last_updated_by = $9
		WHERE route_id = $1 AND deleted_at IS NULL;
	`
	tag, err := r.DB.Exec(ctx, query,
		m.RouteID,
		m.Name,
		m.Code,
		m.NameLower,
		m.CodeLower,
		m.Description,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return wrapWriteError(err, "update route "+m.RouteID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: route %s", apperrors.ErrNotFound, m.RouteID)
	}
	return nil
}

func (r *PgxRouteRepository) SetNormalizedNames(ctx context.Context, routeID, nameLower, codeLower string) error {
	query := `UPDATE routes SET name_lower = $2, code_lower = $3 WHERE route_id = $1;`
	if _, err := r.DB.Exec(ctx, query, routeID, nameLower, codeLower); err != nil {
		return wrapWriteError(err, "backfill route "+routeID)
	}
	return nil
}

func (r *PgxRouteRepository) MarkRouteDeleted(ctx context.Context, routeID string, deletedAt time.Time, deletedBy string) error {
	query := `
		UPDATE routes SET deleted_at = $2, is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE route_id = $1 AND deleted_at IS NULL;
	`
	tag, err := r.DB.Exec(ctx, query, routeID, deletedAt, deletedBy)
	if err != nil {
		return wrapWriteError(err, "delete route "+routeID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: route %s", apperrors.ErrNotFound, routeID)
	}
	return nil
}

func (r *PgxRouteRepository) queryRoutes(ctx context.Context, query string, args ...any) ([]domain.Route, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query routes: %w", err)
	}
	defer rows.Close()

	routes := []domain.Route{}
	for rows.Next() {
		route, err := scanRoute(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan route row: %w", err)
		}
		routes = append(routes, route)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating route rows: %w", err)
	}
	return routes, nil
}
