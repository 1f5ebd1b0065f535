package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/psbook/internal/core/domain"
	portsrepo "github.com/SscSPs/psbook/internal/core/ports/repositories"
	"github.com/SscSPs/psbook/internal/models"
	"github.com/SscSPs/psbook/internal/utils/mapping"
)

// PgxLedgerRepository appends to and reads the balance audit log. Rows are never updated.
type PgxLedgerRepository struct {
	BaseRepository
}

func newPgxLedgerRepository(db DBTX) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

const ledgerColumns = `log_id, seq, shop_id, previous_balance, new_balance, change_amount, change_type,
	reference_id, note, created_at, created_by`

func scanBalanceAuditLog(row rowScanner) (domain.BalanceAuditLog, error) {
	var m models.BalanceAuditLog
	err := row.Scan(
		&m.LogID,
		&m.Sequence,
		&m.ShopID,
		&m.PreviousBalance,
		&m.NewBalance,
		&m.ChangeAmount,
		&m.ChangeType,
		&m.ReferenceID,
		&m.Note,
		&m.CreatedAt,
		&m.CreatedBy,
	)
	if err != nil {
		return domain.BalanceAuditLog{}, err
	}
	return mapping.ToDomainBalanceAuditLog(m), nil
}

func (r *PgxLedgerRepository) SaveBalanceAuditLog(ctx context.Context, entry domain.BalanceAuditLog) error {
	m := mapping.ToModelBalanceAuditLog(entry)
	query := `
		INSERT INTO balance_audit_logs (log_id, shop_id, previous_balance, new_balance, change_amount,
			change_type, reference_id, note, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.DB.Exec(ctx, query,
		m.LogID,
		m.ShopID,
		m.PreviousBalance,
		m.NewBalance,
		m.ChangeAmount,
		m.ChangeType,
		m.ReferenceID,
		m.Note,
		m.CreatedAt,
		m.CreatedBy,
	)
	if err != nil {
		return wrapWriteError(err, "insert balance audit log for shop "+m.ShopID)
	}
	return nil
}

func (r *PgxLedgerRepository) ListBalanceAuditLogs(ctx context.Context, shopID string, limit int, cursor *portsrepo.LedgerCursor) ([]domain.BalanceAuditLog, error) {
	limit, _ = normalizePage(limit, 0)
	args := []any{shopID, limit}
	query := `SELECT ` + ledgerColumns + ` FROM balance_audit_logs WHERE shop_id = $1`
	if cursor != nil {
		args = append(args, cursor.Sequence)
		query += ` AND seq < $3`
	}
	query += ` ORDER BY seq DESC LIMIT $2;`
	return r.queryEntries(ctx, query, args...)
}

func (r *PgxLedgerRepository) ListAllBalanceAuditLogs(ctx context.Context, shopID string) ([]domain.BalanceAuditLog, error) {
	query := `SELECT ` + ledgerColumns + ` FROM balance_audit_logs WHERE shop_id = $1 ORDER BY seq ASC;`
	return r.queryEntries(ctx, query, shopID)
}

func (r *PgxLedgerRepository) queryEntries(ctx context.Context, query string, args ...any) ([]domain.BalanceAuditLog, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query balance audit logs: %w", err)
	}
	defer rows.Close()

	entries := []domain.BalanceAuditLog{}
	for rows.Next() {
		entry, err := scanBalanceAuditLog(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan balance audit log row: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating balance audit log rows: %w", err)
	}
	return entries, nil
}
