package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/psbook/internal/core/domain"
	portsrepo "github.com/SscSPs/psbook/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/psbook/internal/core/ports/services"
	"github.com/SscSPs/psbook/internal/dto"
)

// handoverService flags an employee's outstanding cash as received at the office.
// It runs alongside settlements and does not touch them.
type handoverService struct {
	BaseService
	repos portsrepo.Repositories
	uow   portsrepo.UnitOfWork
}

// NewHandoverService creates a new HandoverService.
func NewHandoverService(repos portsrepo.Repositories, uow portsrepo.UnitOfWork) portssvc.HandoverSvcFacade {
	return &handoverService{repos: repos, uow: uow}
}

var _ portssvc.HandoverSvcFacade = (*handoverService)(nil)

// handoverTotals counts and sums a set of unverified cash rows. Pending and verified
// figures both go through it so they always describe the same rows.
func handoverTotals(txns []domain.Transaction) (int, decimal.Decimal) {
	total := decimal.Zero
	for i := range txns {
		total = total.Add(txns[i].Amount)
	}
	return len(txns), total
}

func (s *handoverService) GetPendingHandover(ctx context.Context, employeeID string) (*dto.PendingHandoverResponse, error) {
	if _, err := s.repos.Employees.FindEmployeeByID(ctx, employeeID); err != nil {
		return nil, wrapRepoError(err, "find employee")
	}
	txns, err := s.repos.Transactions.ListUnverifiedCash(ctx, employeeID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list unverified cash", slog.String("employee_id", employeeID))
		return nil, wrapRepoError(err, "list unverified cash")
	}
	if txns == nil {
		txns = []domain.Transaction{}
	}
	count, amount := handoverTotals(txns)
	return &dto.PendingHandoverResponse{
		EmployeeID:   employeeID,
		Transactions: txns,
		Count:        count,
		Amount:       amount,
	}, nil
}

// VerifyHandover marks the employee's unverified cash as received. The reported amount is
// the sum of the rows the update changed, so rows verified or reversed concurrently are
// neither counted nor flagged.
func (s *handoverService) VerifyHandover(ctx context.Context, employeeID string, actorID string) (*dto.VerifyHandoverResponse, error) {
	resp := &dto.VerifyHandoverResponse{Amount: decimal.Zero}
	err := s.uow.WithinTransaction(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		if _, err := repos.Employees.FindEmployeeByID(ctx, employeeID); err != nil {
			return err
		}
		verified, err := repos.Transactions.VerifyUnverifiedCash(ctx, employeeID, actorID, time.Now().UTC())
		if err != nil {
			return err
		}
		resp.Verified, resp.Amount = handoverTotals(verified)
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to verify handover", slog.String("employee_id", employeeID))
		return nil, wrapRepoError(err, "verify handover")
	}

	s.LogInfo(ctx, "Handover verified",
		slog.String("employee_id", employeeID),
		slog.Int("verified", resp.Verified),
		slog.String("amount", resp.Amount.String()))
	return resp, nil
}
