package repositories

import (
	"context"

	"github.com/SscSPs/psbook/internal/core/domain"
)

// InvoiceFilter narrows an invoice listing. Dates are inclusive YYYY-MM-DD bounds on the issue date.
type InvoiceFilter struct {
	ShopID   string
	FromDate string
	ToDate   string
	Limit    int
	Offset   int
}

// InvoiceRepositoryFacade persists invoices.
type InvoiceRepositoryFacade interface {
	SaveInvoice(ctx context.Context, invoice domain.Invoice) error
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)
	// FindInvoiceByNumber matches trimmed and case-insensitively.
	FindInvoiceByNumber(ctx context.Context, invoiceNumber string) (*domain.Invoice, error)
	ListInvoices(ctx context.Context, filter InvoiceFilter) ([]domain.Invoice, error)
}
