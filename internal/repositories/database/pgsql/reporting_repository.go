package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/psbook/internal/core/domain"
	portsrepo "github.com/SscSPs/psbook/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PgxReportingRepository reads dashboard aggregates straight from the pool.
type PgxReportingRepository struct {
	db       *pgxpool.Pool
	timezone string
}

func newPgxReportingRepository(db *pgxpool.Pool, timezone string) portsrepo.ReportingRepository {
	return &PgxReportingRepository{db: db, timezone: timezone}
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

func (r *PgxReportingRepository) GetDashboardSummary(ctx context.Context, date string) (*domain.DashboardSummary, error) {
	summary := &domain.DashboardSummary{
		Date:                 date,
		CollectedTodayByMode: map[domain.PaymentMode]decimal.Decimal{},
	}

	shopQuery := `
		SELECT COUNT(*), COALESCE(SUM(current_balance) FILTER (WHERE current_balance > 0), 0)
		FROM shops WHERE deleted_at IS NULL;
	`
	if err := r.db.QueryRow(ctx, shopQuery).Scan(&summary.ActiveShops, &summary.TotalOutstanding); err != nil {
		return nil, fmt.Errorf("failed to aggregate shops: %w", err)
	}

	modeQuery := `
		SELECT payment_mode, COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE status = 'completed' AND (collected_at AT TIME ZONE $1)::date = $2::date
		GROUP BY payment_mode;
	`
	rows, err := r.db.Query(ctx, modeQuery, r.timezone, date)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate collections: %w", err)
	}
	defer rows.Close()
	summary.CollectedToday = decimal.Zero
	for rows.Next() {
		var mode string
		var total decimal.Decimal
		if err := rows.Scan(&mode, &total); err != nil {
			return nil, fmt.Errorf("failed to scan collection aggregate: %w", err)
		}
		summary.CollectedTodayByMode[domain.PaymentMode(mode)] = total
		summary.CollectedToday = summary.CollectedToday.Add(total)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating collection aggregates: %w", err)
	}

	otherQuery := `
		SELECT
			(SELECT COALESCE(SUM(amount), 0) FROM invoices WHERE issue_date = $1::date),
			(SELECT COALESCE(SUM(amount), 0) FROM transactions
				WHERE payment_mode = 'cash' AND status = 'completed' AND is_verified = FALSE),
			(SELECT COUNT(*) FROM settlements WHERE status = 'pending'),
			(SELECT COUNT(*) FROM route_assignments WHERE assignment_date = $1::date AND status = 'active');
	`
	err = r.db.QueryRow(ctx, otherQuery, date).Scan(
		&summary.InvoicedToday,
		&summary.UnverifiedCash,
		&summary.PendingSettlements,
		&summary.ActiveAssignmentsToday,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate dashboard counters: %w", err)
	}
	return summary, nil
}

func (r *PgxReportingRepository) ListEmployeeCash(ctx context.Context, date string) ([]domain.EmployeeCashSummary, error) {
	query := `
		SELECT e.employee_id, e.name,
			COALESCE(SUM(t.amount) FILTER (WHERE (t.collected_at AT TIME ZONE $1)::date = $2::date), 0),
			COALESCE(SUM(t.amount) FILTER (WHERE t.is_verified = FALSE), 0)
		FROM employees e
		LEFT JOIN transactions t
			ON t.employee_id = e.employee_id AND t.payment_mode = 'cash' AND t.status = 'completed'
		WHERE e.deleted_at IS NULL AND e.status = 'active'
		GROUP BY e.employee_id, e.name
		ORDER BY e.name ASC;
	`
	rows, err := r.db.Query(ctx, query, r.timezone, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query employee cash: %w", err)
	}
	defer rows.Close()

	out := []domain.EmployeeCashSummary{}
	for rows.Next() {
		var s domain.EmployeeCashSummary
		if err := rows.Scan(&s.EmployeeID, &s.EmployeeName, &s.CashInHand, &s.UnverifiedCash); err != nil {
			return nil, fmt.Errorf("failed to scan employee cash row: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating employee cash rows: %w", err)
	}
	return out, nil
}
