package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/psbook/internal/core/domain"
	portsrepo "github.com/SscSPs/psbook/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/psbook/internal/core/ports/services"
	"github.com/SscSPs/psbook/internal/dto"
)

type settlementService struct {
	BaseService
	repos portsrepo.Repositories
	uow   portsrepo.UnitOfWork
}

// NewSettlementService creates a new SettlementService.
func NewSettlementService(repos portsrepo.Repositories, uow portsrepo.UnitOfWork) portssvc.SettlementSvcFacade {
	return &settlementService{repos: repos, uow: uow}
}

var _ portssvc.SettlementSvcFacade = (*settlementService)(nil)

// newPendingSettlement computes the expected amount from the stored transactions rather than
// trusting the caller. Only the employee's completed cash counts.
func newPendingSettlement(ctx context.Context, repos portsrepo.Repositories, employeeID string, transactionIDs []string, note, actorID string, now time.Time) (*domain.Settlement, error) {
	if _, err := repos.Employees.FindEmployeeByID(ctx, employeeID); err != nil {
		return nil, err
	}

	ids := dedupe(transactionIDs)
	if len(ids) == 0 {
		return nil, validationError("at least one transaction id is required")
	}
	txns, err := repos.Transactions.FindTransactionsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	expected, counted := domain.ExpectedCash(employeeID, txns)

	return &domain.Settlement{
		SettlementID:   uuid.NewString(),
		EmployeeID:     employeeID,
		ExpectedAmount: expected,
		Status:         domain.SettlementPending,
		TransactionIDs: counted,
		Note:           strings.TrimSpace(note),
		AuditFields:    domain.NewAuditFields(actorID, now),
	}, nil
}

func (s *settlementService) CreateSettlement(ctx context.Context, req dto.CreateSettlementRequest, actorID string) (*domain.Settlement, error) {
	var settlement *domain.Settlement
	err := s.uow.WithinTransaction(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		var err error
		settlement, err = newPendingSettlement(ctx, repos, req.EmployeeID, req.TransactionIDs, req.Note, actorID, time.Now().UTC())
		if err != nil {
			return err
		}
		return repos.Settlements.SaveSettlement(ctx, *settlement)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create settlement", slog.String("employee_id", req.EmployeeID))
		return nil, wrapRepoError(err, "create settlement")
	}

	s.LogInfo(ctx, "Settlement opened",
		slog.String("settlement_id", settlement.SettlementID),
		slog.String("expected", settlement.ExpectedAmount.String()),
		slog.Int("transactions", len(settlement.TransactionIDs)))
	return settlement, nil
}

func (s *settlementService) ReceiveSettlement(ctx context.Context, settlementID string, req dto.ReceiveSettlementRequest, actorID string) (*domain.Settlement, error) {
	if req.ReceivedAmount.IsNegative() {
		return nil, validationError("receivedAmount cannot be negative")
	}

	var settlement *domain.Settlement
	err := s.uow.WithinTransaction(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		var err error
		settlement, err = repos.Settlements.FindSettlementByIDForUpdate(ctx, settlementID)
		if err != nil {
			return err
		}
		if settlement.Status != domain.SettlementPending {
			return invalidStateError("settlement %s is already %s", settlementID, settlement.Status)
		}
		settlement.Resolve(req.ReceivedAmount, actorID, time.Now().UTC())
		if note := strings.TrimSpace(req.Note); note != "" {
			settlement.Note = note
		}
		return repos.Settlements.UpdateSettlementResolution(ctx, *settlement)
	})
	if err != nil {
		s.GetLogger(ctx).Warn("Settlement receive failed",
			slog.String("settlement_id", settlementID),
			slog.String("error", err.Error()))
		return nil, wrapRepoError(err, "receive settlement")
	}

	s.logResolution(ctx, settlement)
	return settlement, nil
}

func (s *settlementService) VerifySettlement(ctx context.Context, req dto.VerifySettlementRequest, actorID string) (*domain.Settlement, error) {
	if req.ReceivedAmount.IsNegative() {
		return nil, validationError("receivedAmount cannot be negative")
	}

	var settlement *domain.Settlement
	err := s.uow.WithinTransaction(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		now := time.Now().UTC()
		var err error
		settlement, err = newPendingSettlement(ctx, repos, req.EmployeeID, req.TransactionIDs, req.Note, actorID, now)
		if err != nil {
			return err
		}
		settlement.Resolve(req.ReceivedAmount, actorID, now)
		return repos.Settlements.SaveSettlement(ctx, *settlement)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to verify settlement", slog.String("employee_id", req.EmployeeID))
		return nil, wrapRepoError(err, "verify settlement")
	}

	s.logResolution(ctx, settlement)
	return settlement, nil
}

// UpdateSettlementStatus is an admin override: the status is set as given and the
// received amount and variance are left alone.
func (s *settlementService) UpdateSettlementStatus(ctx context.Context, settlementID string, req dto.UpdateSettlementStatusRequest, actorID string) (*domain.Settlement, error) {
	if !req.Status.Valid() {
		return nil, validationError("unknown settlement status %q", req.Status)
	}

	var settlement *domain.Settlement
	err := s.uow.WithinTransaction(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		var err error
		settlement, err = repos.Settlements.FindSettlementByIDForUpdate(ctx, settlementID)
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		settlement.Status = req.Status
		if note := strings.TrimSpace(req.Note); note != "" {
			settlement.Note = note
		}
		settlement.LastUpdatedAt = now
		settlement.LastUpdatedBy = actorID
		return repos.Settlements.UpdateSettlementResolution(ctx, *settlement)
	})
	if err != nil {
		return nil, wrapRepoError(err, "update settlement status")
	}

	s.LogInfo(ctx, "Settlement status overridden",
		slog.String("settlement_id", settlementID),
		slog.String("status", string(req.Status)))
	return settlement, nil
}

func (s *settlementService) GetSettlementByID(ctx context.Context, settlementID string) (*domain.Settlement, error) {
	settlement, err := s.repos.Settlements.FindSettlementByID(ctx, settlementID)
	if err != nil {
		return nil, wrapRepoError(err, "find settlement")
	}
	return settlement, nil
}

func (s *settlementService) ListSettlements(ctx context.Context, params dto.ListSettlementsParams) ([]domain.Settlement, error) {
	settlements, err := s.repos.Settlements.ListSettlements(ctx, portsrepo.SettlementFilter{
		EmployeeID: params.EmployeeID,
		Status:     domain.SettlementStatus(params.Status),
		Limit:      params.Limit,
		Offset:     params.Offset,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to list settlements")
		return nil, wrapRepoError(err, "list settlements")
	}
	if settlements == nil {
		settlements = []domain.Settlement{}
	}
	return settlements, nil
}

func (s *settlementService) logResolution(ctx context.Context, settlement *domain.Settlement) {
	variance := decimal.Zero
	if settlement.Variance != nil {
		variance = *settlement.Variance
	}
	s.LogInfo(ctx, "Settlement resolved",
		slog.String("settlement_id", settlement.SettlementID),
		slog.String("status", string(settlement.Status)),
		slog.String("expected", settlement.ExpectedAmount.String()),
		slog.String("variance", variance.String()))
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
