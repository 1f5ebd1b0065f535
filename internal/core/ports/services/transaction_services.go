package services

import (
	"context"

	"github.com/SscSPs/psbook/internal/core/domain"
	"github.com/SscSPs/psbook/internal/dto"
)

// TransactionReaderSvc defines read operations for transactions
type TransactionReaderSvc interface {
	GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, params dto.ListTransactionsParams) ([]domain.Transaction, error)

	// GetEmployeeCashInHand sums today's completed cash collected by the employee.
	GetEmployeeCashInHand(ctx context.Context, employeeID string) (*dto.CashInHandResponse, error)
}

// TransactionWriterSvc defines write operations for transactions
type TransactionWriterSvc interface {
	// CollectCash records a collection by employeeID and lowers the shop balance.
	CollectCash(ctx context.Context, req dto.CollectCashRequest, employeeID string) (*dto.CollectCashResponse, error)

	// ReverseTransaction restores the shop balance and marks the transaction reversed, once.
	ReverseTransaction(ctx context.Context, transactionID string, req dto.ReverseTransactionRequest, actorID string) (*dto.BalanceChangeResponse, error)
}

// TransactionSvcFacade combines all transaction-related service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}

// InvoiceSvcFacade issues and reads invoices.
type InvoiceSvcFacade interface {
	CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, actorID string) (*dto.CreateInvoiceResponse, error)
	GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)
	GetInvoiceByNumber(ctx context.Context, invoiceNumber string) (*domain.Invoice, error)
	ListInvoices(ctx context.Context, params dto.ListInvoicesParams) ([]domain.Invoice, error)
}
