package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/psbook/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionFilter narrows a transaction listing. Date is a YYYY-MM-DD calendar day in the
// business time zone.
type TransactionFilter struct {
	EmployeeID  string
	ShopID      string
	Date        string
	PaymentMode domain.PaymentMode
	Status      domain.TransactionStatus
	Limit       int
	Offset      int
}

// TransactionReader defines read operations for transactions.
type TransactionReader interface {
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)
	FindTransactionsByIDs(ctx context.Context, transactionIDs []string) ([]domain.Transaction, error)
	ListTransactions(ctx context.Context, filter TransactionFilter) ([]domain.Transaction, error)
	// ListUnverifiedCash returns the employee's completed cash transactions not yet handed over.
	ListUnverifiedCash(ctx context.Context, employeeID string) ([]domain.Transaction, error)
	// SumCompletedCash totals the employee's completed cash collected on date (YYYY-MM-DD, business time zone).
	SumCompletedCash(ctx context.Context, employeeID, date string) (decimal.Decimal, error)
}

// TransactionWriter defines write operations for transactions.
type TransactionWriter interface {
	SaveTransaction(ctx context.Context, txn domain.Transaction) error
	// FindTransactionByIDForUpdate locks the row until the surrounding transaction ends.
	FindTransactionByIDForUpdate(ctx context.Context, transactionID string) (*domain.Transaction, error)
	MarkTransactionReversed(ctx context.Context, txn domain.Transaction) error
	// VerifyUnverifiedCash flags every row ListUnverifiedCash would return as handed over, checked
	// at write time, and returns exactly the rows it changed.
	VerifyUnverifiedCash(ctx context.Context, employeeID, verifiedBy string, at time.Time) ([]domain.Transaction, error)
}

// TransactionRepositoryFacade combines all transaction repository interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
