package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/psbook/internal/core/domain"
	portsrepo "github.com/SscSPs/psbook/internal/core/ports/repositories"
	"github.com/SscSPs/psbook/internal/models"
	"github.com/SscSPs/psbook/internal/utils/mapping"
)

type PgxInvoiceRepository struct {
	BaseRepository
}

func newPgxInvoiceRepository(db DBTX) portsrepo.InvoiceRepositoryFacade {
	return &PgxInvoiceRepository{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.InvoiceRepositoryFacade = (*PgxInvoiceRepository)(nil)

const invoiceColumns = `invoice_id, shop_id, invoice_number, amount, issue_date::text, note,
	created_at, created_by, last_updated_at, last_updated_by`

func scanInvoice(row rowScanner) (domain.Invoice, error) {
	var m models.Invoice
	err := row.Scan(
		&m.InvoiceID,
		&m.ShopID,
		&m.InvoiceNumber,
		&m.Amount,
		&m.IssueDate,
		&m.Note,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.Invoice{}, err
	}
	return mapping.ToDomainInvoice(m), nil
}

func (r *PgxInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	m := mapping.ToModelInvoice(invoice)
	query := `
		INSERT INTO invoices (invoice_id, shop_id, invoice_number, amount, issue_date, note,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5::date, $6, $7, $8, $9, $10);
	`
	_, err := r.DB.Exec(ctx, query,
		m.InvoiceID,
		m.ShopID,
		m.InvoiceNumber,
		m.Amount,
		m.IssueDate,
		m.Note,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return wrapWriteError(err, "insert invoice "+m.InvoiceNumber)
	}
	return nil
}

func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE invoice_id = $1;`
	inv, err := scanInvoice(r.DB.QueryRow(ctx, query, invoiceID))
	if err != nil {
		return nil, wrapReadError(err, "invoice "+invoiceID)
	}
	return &inv, nil
}

func (r *PgxInvoiceRepository) FindInvoiceByNumber(ctx context.Context, invoiceNumber string) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE upper(btrim(invoice_number)) = $1;`
	inv, err := scanInvoice(r.DB.QueryRow(ctx, query, domain.NormalizeInvoiceNumber(invoiceNumber)))
	if err != nil {
		return nil, wrapReadError(err, "invoice number "+invoiceNumber)
	}
	return &inv, nil
}

func (r *PgxInvoiceRepository) ListInvoices(ctx context.Context, filter portsrepo.InvoiceFilter) ([]domain.Invoice, error) {
	qb := &queryBuilder{}
	if filter.ShopID != "" {
		qb.add("shop_id = $%d", filter.ShopID)
	}
	if filter.FromDate != "" {
		qb.add("issue_date >= $%d::date", filter.FromDate)
	}
	if filter.ToDate != "" {
		qb.add("issue_date <= $%d::date", filter.ToDate)
	}
	query := `SELECT ` + invoiceColumns + ` FROM invoices` + qb.where() +
		` ORDER BY issue_date DESC, created_at DESC` + qb.page(filter.Limit, filter.Offset)

	rows, err := r.DB.Query(ctx, query, qb.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoices: %w", err)
	}
	defer rows.Close()

	invoices := []domain.Invoice{}
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice row: %w", err)
		}
		invoices = append(invoices, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invoice rows: %w", err)
	}
	return invoices, nil
}
