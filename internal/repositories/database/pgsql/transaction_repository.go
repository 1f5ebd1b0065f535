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

type PgxTransactionRepository struct {
	BaseRepository
	timezone string
}

func newPgxTransactionRepository(db DBTX, timezone string) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{DB: db}, timezone: timezone}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

const transactionColumns = `transaction_id, shop_id, employee_id, amount, payment_mode, reference, latitude, longitude,
	status, note, collected_at, is_verified, verified_by, verified_at, reversed_by, reversed_at, reversal_reason,
	created_at, created_by, last_updated_at, last_updated_by`

func scanTransaction(row rowScanner) (domain.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.ShopID,
		&m.EmployeeID,
		&m.Amount,
		&m.PaymentMode,
		&m.Reference,
		&m.Latitude,
		&m.Longitude,
		&m.Status,
		&m.Note,
		&m.CollectedAt,
		&m.IsVerified,
		&m.VerifiedBy,
		&m.VerifiedAt,
		&m.ReversedBy,
		&m.ReversedAt,
		&m.ReversalReason,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.Transaction{}, err
	}
	return mapping.ToDomainTransaction(m), nil
}

// calendarDay matches column against a YYYY-MM-DD day in the repository's time zone.
func (r *PgxTransactionRepository) calendarDay(qb *queryBuilder, column, date string) {
	qb.args = append(qb.args, r.timezone, date)
	qb.addRaw(fmt.Sprintf("(%s AT TIME ZONE $%d)::date = $%d::date", column, len(qb.args)-1, len(qb.args)))
}

func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	query := `
		INSERT INTO transactions (transaction_id, shop_id, employee_id, amount, payment_mode, reference,
			latitude, longitude, status, note, collected_at, is_verified,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := r.DB.Exec(ctx, query,
		m.TransactionID,
		m.ShopID,
		m.EmployeeID,
		m.Amount,
		m.PaymentMode,
		m.Reference,
		m.Latitude,
		m.Longitude,
		m.Status,
		m.Note,
		m.CollectedAt,
		m.IsVerified,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return wrapWriteError(err, "insert transaction "+m.TransactionID)
	}
	return nil
}

func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`
	txn, err := scanTransaction(r.DB.QueryRow(ctx, query, transactionID))
	if err != nil {
		return nil, wrapReadError(err, "transaction "+transactionID)
	}
	return &txn, nil
}

func (r *PgxTransactionRepository) FindTransactionByIDForUpdate(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1 FOR UPDATE;`
	txn, err := scanTransaction(r.DB.QueryRow(ctx, query, transactionID))
	if err != nil {
		return nil, wrapReadError(err, "transaction "+transactionID)
	}
	return &txn, nil
}

func (r *PgxTransactionRepository) FindTransactionsByIDs(ctx context.Context, transactionIDs []string) ([]domain.Transaction, error) {
	if len(transactionIDs) == 0 {
		return []domain.Transaction{}, nil
	}
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = ANY($1) ORDER BY collected_at ASC;`
	return r.queryTransactions(ctx, query, transactionIDs)
}

func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, filter portsrepo.TransactionFilter) ([]domain.Transaction, error) {
	qb := &queryBuilder{}
	if filter.EmployeeID != "" {
		qb.add("employee_id = $%d", filter.EmployeeID)
	}
	if filter.ShopID != "" {
		qb.add("shop_id = $%d", filter.ShopID)
	}
	if filter.PaymentMode != "" {
		qb.add("payment_mode = $%d", string(filter.PaymentMode))
	}
	if filter.Status != "" {
		qb.add("status = $%d", string(filter.Status))
	}
	if filter.Date != "" {
		r.calendarDay(qb, "collected_at", filter.Date)
	}
	query := `SELECT ` + transactionColumns + ` FROM transactions` + qb.where() +
		` ORDER BY collected_at DESC, transaction_id DESC` + qb.page(filter.Limit, filter.Offset)
	return r.queryTransactions(ctx, query, qb.args...)
}

// unverifiedCashWhere selects cash an employee still holds; $1 is the employee id.
const unverifiedCashWhere = ` WHERE employee_id = $1 AND payment_mode = 'cash' AND status = 'completed' AND is_verified = FALSE`

func (r *PgxTransactionRepository) ListUnverifiedCash(ctx context.Context, employeeID string) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions` + unverifiedCashWhere + ` ORDER BY collected_at ASC;`
	return r.queryTransactions(ctx, query, employeeID)
}

func (r *PgxTransactionRepository) SumCompletedCash(ctx context.Context, employeeID, date string) (decimal.Decimal, error) {
	qb := &queryBuilder{}
	qb.add("employee_id = $%d", employeeID)
	qb.addRaw("payment_mode = 'cash'")
	qb.addRaw("status = 'completed'")
	r.calendarDay(qb, "collected_at", date)
	query := `SELECT COALESCE(SUM(amount), 0) FROM transactions` + qb.where() + `;`

	var total decimal.Decimal
	if err := r.DB.QueryRow(ctx, query, qb.args...).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum cash for employee %s: %w", employeeID, err)
	}
	return total, nil
}

func (r *PgxTransactionRepository) MarkTransactionReversed(ctx context.Context, txn domain.Transaction) error {
	query := `
		UPDATE transactions
		SET status = $2, reversed_by = $3, reversed_at = $4, reversal_reason = $5,
			last_updated_at = $6, last_updated_by = $7
		WHERE transaction_id = $1 AND status <> 'reversed';
	`
	tag, err := r.DB.Exec(ctx, query,
		txn.TransactionID,
		string(domain.TransactionReversed),
		txn.ReversedBy,
		txn.ReversedAt,
		txn.ReversalReason,
		txn.LastUpdatedAt,
		txn.LastUpdatedBy,
	)
	if err != nil {
		return wrapWriteError(err, "reverse transaction "+txn.TransactionID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: transaction %s is already reversed", apperrors.ErrInvalidState, txn.TransactionID)
	}
	return nil
}

func (r *PgxTransactionRepository) VerifyUnverifiedCash(ctx context.Context, employeeID, verifiedBy string, at time.Time) ([]domain.Transaction, error) {
	query := `UPDATE transactions
		SET is_verified = TRUE, verified_by = $2, verified_at = $3, last_updated_at = $3, last_updated_by = $2` +
		unverifiedCashWhere + ` RETURNING ` + transactionColumns + `;`
	txns, err := r.queryTransactions(ctx, query, employeeID, verifiedBy, at)
	if err != nil {
		return nil, wrapWriteError(err, "verify unverified cash")
	}
	return txns, nil
}

func (r *PgxTransactionRepository) queryTransactions(ctx context.Context, query string, args ...any) ([]domain.Transaction, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}
	return txns, nil
}
