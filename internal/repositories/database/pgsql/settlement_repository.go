package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/psbook/internal/apperrors"
	"github.com/SscSPs/psbook/internal/core/domain"
	portsrepo "github.com/SscSPs/psbook/internal/core/ports/repositories"
	"github.com/SscSPs/psbook/internal/models"
	"github.com/SscSPs/psbook/internal/utils/mapping"
)

type PgxSettlementRepository struct {
	BaseRepository
}

func newPgxSettlementRepository(db DBTX) portsrepo.SettlementRepositoryFacade {
	return &PgxSettlementRepository{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.SettlementRepositoryFacade = (*PgxSettlementRepository)(nil)

const settlementColumns = `settlement_id, employee_id, expected_amount, received_amount, variance, status,
	transaction_ids, received_by, received_at, note, created_at, created_by, last_updated_at, last_updated_by`

func scanSettlement(row rowScanner) (domain.Settlement, error) {
	var m models.Settlement
	err := row.Scan(
		&m.SettlementID,
		&m.EmployeeID,
		&m.ExpectedAmount,
		&m.ReceivedAmount,
		&m.Variance,
		&m.Status,
		&m.TransactionIDs,
		&m.ReceivedBy,
		&m.ReceivedAt,
		&m.Note,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.Settlement{}, err
	}
	return mapping.ToDomainSettlement(m), nil
}

func (r *PgxSettlementRepository) SaveSettlement(ctx context.Context, settlement domain.Settlement) error {
	m := mapping.ToModelSettlement(settlement)
	query := `
		INSERT INTO settlements (settlement_id, employee_id, expected_amount, received_amount, variance, status,
			transaction_ids, received_by, received_at, note, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.DB.Exec(ctx, query,
		m.SettlementID,
		m.EmployeeID,
		m.ExpectedAmount,
		m.ReceivedAmount,
		m.Variance,
		m.Status,
		m.TransactionIDs,
		m.ReceivedBy,
		m.ReceivedAt,
		m.Note,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return wrapWriteError(err, "insert settlement "+m.SettlementID)
	}
	return nil
}

func (r *PgxSettlementRepository) FindSettlementByID(ctx context.Context, settlementID string) (*domain.Settlement, error) {
	query := `SELECT ` + settlementColumns + ` FROM settlements WHERE settlement_id = $1;`
	s, err := scanSettlement(r.DB.QueryRow(ctx, query, settlementID))
	if err != nil {
		return nil, wrapReadError(err, "settlement "+settlementID)
	}
	return &s, nil
}

func (r *PgxSettlementRepository) FindSettlementByIDForUpdate(ctx context.Context, settlementID string) (*domain.Settlement, error) {
	query := `SELECT ` + settlementColumns + ` FROM settlements WHERE settlement_id = $1 FOR UPDATE;`
	s, err := scanSettlement(r.DB.QueryRow(ctx, query, settlementID))
	if err != nil {
		return nil, wrapReadError(err, "settlement "+settlementID)
	}
	return &s, nil
}

func (r *PgxSettlementRepository) UpdateSettlementResolution(ctx context.Context, settlement domain.Settlement) error {
	m := mapping.ToModelSettlement(settlement)
	query := `
		UPDATE settlements
		SET received_amount = $2, variance = $3, status = $4, received_by = $5, received_at = $6, note = $7,
			last_updated_at = $8, last_updated_by = $9
		WHERE settlement_id = $1;
	`
	tag, err := r.DB.Exec(ctx, query,
		m.SettlementID,
		m.ReceivedAmount,
		m.Variance,
		m.Status,
		m.ReceivedBy,
		m.ReceivedAt,
		m.Note,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return wrapWriteError(err, "update settlement "+m.SettlementID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: settlement %s", apperrors.ErrNotFound, m.SettlementID)
	}
	return nil
}

func (r *PgxSettlementRepository) ListSettlements(ctx context.Context, filter portsrepo.SettlementFilter) ([]domain.Settlement, error) {
	qb := &queryBuilder{}
	if filter.EmployeeID != "" {
		qb.add("employee_id = $%d", filter.EmployeeID)
	}
	if filter.Status != "" {
		qb.add("status = $%d", string(filter.Status))
	}
	query := `SELECT ` + settlementColumns + ` FROM settlements` + qb.where() +
		` ORDER BY created_at DESC` + qb.page(filter.Limit, filter.Offset)

	rows, err := r.DB.Query(ctx, query, qb.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query settlements: %w", err)
	}
	defer rows.Close()

	settlements := []domain.Settlement{}
	for rows.Next() {
		s, err := scanSettlement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan settlement row: %w", err)
		}
		settlements = append(settlements, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating settlement rows: %w", err)
	}
	return settlements, nil
}
