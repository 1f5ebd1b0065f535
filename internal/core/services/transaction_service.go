package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/psbook/internal/core/domain"
	portsrepo "github.com/SscSPs/psbook/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/psbook/internal/core/ports/services"
	"github.com/SscSPs/psbook/internal/dto"
)

type transactionService struct {
	BaseService
	repos portsrepo.Repositories
	uow   portsrepo.UnitOfWork
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(repos portsrepo.Repositories, uow portsrepo.UnitOfWork, loc *time.Location) portssvc.TransactionSvcFacade {
	return &transactionService{
		BaseService: newBaseService(loc),
		repos:       repos,
		uow:         uow,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

func (s *transactionService) CollectCash(ctx context.Context, req dto.CollectCashRequest, employeeID string) (*dto.CollectCashResponse, error) {
	logger := s.GetLogger(ctx)

	if !req.Amount.IsPositive() {
		return nil, validationError("amount must be greater than zero")
	}
	if !req.PaymentMode.Valid() {
		return nil, validationError("unknown payment mode %q", req.PaymentMode)
	}
	if (req.Latitude == nil) != (req.Longitude == nil) {
		return nil, validationError("latitude and longitude must be provided together")
	}

	now := time.Now().UTC()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		ShopID:        req.ShopID,
		EmployeeID:    employeeID,
		Amount:        req.Amount,
		PaymentMode:   req.PaymentMode,
		Status:        domain.TransactionCompleted,
		Note:          strings.TrimSpace(req.Note),
		CollectedAt:   now,
		AuditFields:   domain.NewAuditFields(employeeID, now),
	}
	if req.Reference != nil && strings.TrimSpace(*req.Reference) != "" {
		txn.Reference = strPtr(strings.TrimSpace(*req.Reference))
	}
	if req.Latitude != nil {
		txn.Location = &domain.GeoPoint{Latitude: *req.Latitude, Longitude: *req.Longitude}
	}

	resp := &dto.CollectCashResponse{}
	err := s.uow.WithinTransaction(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		previous, next, err := applyLedgerEntry(ctx, repos, domain.LedgerPosting{
			ShopID:      req.ShopID,
			ChangeType:  domain.ChangeCollection,
			Amount:      req.Amount,
			ReferenceID: strPtr(txn.TransactionID),
			Actor:       employeeID,
			Note:        txn.Note,
			At:          now,
		})
		if err != nil {
			return err
		}
		if err := repos.Transactions.SaveTransaction(ctx, txn); err != nil {
			return err
		}
		resp.OldBalance = previous
		resp.NewBalance = next
		return nil
	})
	if err != nil {
		if !isNotFound(err) {
			s.LogError(ctx, err, "Failed to record collection", slog.String("shop_id", req.ShopID))
		}
		return nil, wrapRepoError(err, "collect cash")
	}

	resp.Transaction = txn
	logger.Info("Collection recorded",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("shop_id", txn.ShopID),
		slog.String("amount", txn.Amount.String()),
		slog.String("payment_mode", string(txn.PaymentMode)),
		slog.String("new_balance", resp.NewBalance.String()))
	return resp, nil
}

func (s *transactionService) ReverseTransaction(ctx context.Context, transactionID string, req dto.ReverseTransactionRequest, actorID string) (*dto.BalanceChangeResponse, error) {
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return nil, validationError("reason is required")
	}

	var resp dto.BalanceChangeResponse
	err := s.uow.WithinTransaction(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		txn, err := repos.Transactions.FindTransactionByIDForUpdate(ctx, transactionID)
		if err != nil {
			return err
		}
		if txn.Status == domain.TransactionReversed {
			return invalidStateError("transaction %s is already reversed", transactionID)
		}

		now := time.Now().UTC()
		previous, next, err := applyLedgerEntry(ctx, repos, domain.LedgerPosting{
			ShopID:      txn.ShopID,
			ChangeType:  domain.ChangeReversal,
			Amount:      txn.Amount,
			ReferenceID: strPtr(txn.TransactionID),
			Actor:       actorID,
			Note:        reason,
			At:          now,
		})
		if err != nil {
			return err
		}

		txn.Status = domain.TransactionReversed
		txn.ReversedBy = strPtr(actorID)
		txn.ReversedAt = &now
		txn.ReversalReason = strPtr(reason)
		txn.LastUpdatedAt = now
		txn.LastUpdatedBy = actorID
		if err := repos.Transactions.MarkTransactionReversed(ctx, *txn); err != nil {
			return err
		}
		resp = dto.BalanceChangeResponse{OldBalance: previous, NewBalance: next}
		return nil
	})
	if err != nil {
		s.GetLogger(ctx).Warn("Reversal rejected or failed",
			slog.String("transaction_id", transactionID),
			slog.String("error", err.Error()))
		return nil, wrapRepoError(err, "reverse transaction")
	}

	s.LogInfo(ctx, "Transaction reversed",
		slog.String("transaction_id", transactionID),
		slog.String("new_balance", resp.NewBalance.String()))
	return &resp, nil
}

func (s *transactionService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	txn, err := s.repos.Transactions.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, wrapRepoError(err, "find transaction")
	}
	return txn, nil
}

func (s *transactionService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) ([]domain.Transaction, error) {
	txns, err := s.repos.Transactions.ListTransactions(ctx, portsrepo.TransactionFilter{
		EmployeeID:  params.EmployeeID,
		ShopID:      params.ShopID,
		Date:        params.Date,
		PaymentMode: domain.PaymentMode(params.PaymentMode),
		Status:      domain.TransactionStatus(params.Status),
		Limit:       params.Limit,
		Offset:      params.Offset,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions")
		return nil, wrapRepoError(err, "list transactions")
	}
	if txns == nil {
		txns = []domain.Transaction{}
	}
	return txns, nil
}

func (s *transactionService) GetEmployeeCashInHand(ctx context.Context, employeeID string) (*dto.CashInHandResponse, error) {
	today := s.Today()
	total, err := s.repos.Transactions.SumCompletedCash(ctx, employeeID, today)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum cash in hand", slog.String("employee_id", employeeID))
		return nil, wrapRepoError(err, "cash in hand")
	}
	return &dto.CashInHandResponse{EmployeeID: employeeID, Date: today, CashInHand: total}, nil
}
