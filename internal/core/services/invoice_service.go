package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/psbook/internal/apperrors"
	"github.com/SscSPs/psbook/internal/core/domain"
	portsrepo "github.com/SscSPs/psbook/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/psbook/internal/core/ports/services"
	"github.com/SscSPs/psbook/internal/dto"
)

type invoiceService struct {
	BaseService
	repos portsrepo.Repositories
	uow   portsrepo.UnitOfWork
}

// NewInvoiceService creates a new InvoiceService.
func NewInvoiceService(repos portsrepo.Repositories, uow portsrepo.UnitOfWork, loc *time.Location) portssvc.InvoiceSvcFacade {
	return &invoiceService{
		BaseService: newBaseService(loc),
		repos:       repos,
		uow:         uow,
	}
}

var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

func (s *invoiceService) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, actorID string) (*dto.CreateInvoiceResponse, error) {
	number := strings.TrimSpace(req.InvoiceNumber)
	if number == "" {
		return nil, validationError("invoiceNumber is required")
	}
	if !req.Amount.IsPositive() {
		return nil, validationError("amount must be greater than zero")
	}
	issueDate := req.IssueDate
	if issueDate == "" {
		issueDate = s.Today()
	} else if _, err := domain.ParseDate(issueDate); err != nil {
		return nil, validationError("%v", err)
	}

	// The unique index on the normalised number catches the race this check leaves open.
	if existing, err := s.repos.Invoices.FindInvoiceByNumber(ctx, number); err == nil {
		s.GetLogger(ctx).Warn("Duplicate invoice number",
			slog.String("invoice_number", number),
			slog.String("existing_invoice_id", existing.InvoiceID))
		return nil, apperrors.ErrDuplicate
	} else if !isNotFound(err) {
		return nil, wrapRepoError(err, "find invoice by number")
	}

	now := time.Now().UTC()
	invoice := domain.Invoice{
		InvoiceID:     uuid.NewString(),
		ShopID:        req.ShopID,
		InvoiceNumber: number,
		Amount:        req.Amount,
		IssueDate:     issueDate,
		Note:          strings.TrimSpace(req.Note),
		AuditFields:   domain.NewAuditFields(actorID, now),
	}

	resp := &dto.CreateInvoiceResponse{}
	err := s.uow.WithinTransaction(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		previous, next, err := applyLedgerEntry(ctx, repos, domain.LedgerPosting{
			ShopID:      req.ShopID,
			ChangeType:  domain.ChangeInvoice,
			Amount:      req.Amount,
			ReferenceID: strPtr(invoice.InvoiceID),
			Actor:       actorID,
			Note:        "Invoice " + number,
			At:          now,
		})
		if err != nil {
			return err
		}
		if err := repos.Invoices.SaveInvoice(ctx, invoice); err != nil {
			return err
		}
		resp.OldBalance = previous
		resp.NewBalance = next
		return nil
	})
	if err != nil {
		if !isNotFound(err) {
			s.LogError(ctx, err, "Failed to create invoice", slog.String("invoice_number", number))
		}
		return nil, wrapRepoError(err, "create invoice")
	}

	resp.Invoice = invoice
	s.LogInfo(ctx, "Invoice issued",
		slog.String("invoice_id", invoice.InvoiceID),
		slog.String("shop_id", invoice.ShopID),
		slog.String("amount", invoice.Amount.String()))
	return resp, nil
}

func (s *invoiceService) GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	invoice, err := s.repos.Invoices.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, wrapRepoError(err, "find invoice")
	}
	return invoice, nil
}

func (s *invoiceService) GetInvoiceByNumber(ctx context.Context, invoiceNumber string) (*domain.Invoice, error) {
	invoice, err := s.repos.Invoices.FindInvoiceByNumber(ctx, strings.TrimSpace(invoiceNumber))
	if err != nil {
		return nil, wrapRepoError(err, "find invoice by number")
	}
	return invoice, nil
}

func (s *invoiceService) ListInvoices(ctx context.Context, params dto.ListInvoicesParams) ([]domain.Invoice, error) {
	if params.FromDate != "" && params.ToDate != "" && params.FromDate > params.ToDate {
		return nil, validationError("fromDate must not be after toDate")
	}
	invoices, err := s.repos.Invoices.ListInvoices(ctx, portsrepo.InvoiceFilter{
		ShopID:   params.ShopID,
		FromDate: params.FromDate,
		ToDate:   params.ToDate,
		Limit:    params.Limit,
		Offset:   params.Offset,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to list invoices")
		return nil, wrapRepoError(err, "list invoices")
	}
	if invoices == nil {
		invoices = []domain.Invoice{}
	}
	return invoices, nil
}
