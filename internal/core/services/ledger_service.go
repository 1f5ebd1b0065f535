package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/psbook/internal/apperrors"
	"github.com/SscSPs/psbook/internal/core/domain"
	portsrepo "github.com/SscSPs/psbook/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/psbook/internal/core/ports/services"
	"github.com/SscSPs/psbook/internal/dto"
	"github.com/SscSPs/psbook/internal/utils"
	"github.com/SscSPs/psbook/internal/utils/pagination"
)

// applyLedgerEntry is the only code path that changes a shop balance. It must run inside a
// unit of work: it locks the shop, applies the policy for the change type, writes the new
// balance and appends exactly one audit entry. It returns the balance before and after.
func applyLedgerEntry(ctx context.Context, repos portsrepo.Repositories, posting domain.LedgerPosting) (decimal.Decimal, decimal.Decimal, error) {
	shop, err := repos.Shops.FindShopByIDForUpdate(ctx, posting.ShopID)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	previous := shop.CurrentBalance
	next, err := domain.ComputeNewBalance(posting.ChangeType, previous, posting.Amount)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	var lastCollectionAt *time.Time
	if posting.ChangeType == domain.ChangeCollection {
		at := posting.At
		lastCollectionAt = &at
	}
	if err := repos.Shops.UpdateShopBalance(ctx, shop.ShopID, next, lastCollectionAt, posting.Actor, posting.At); err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	entry := domain.NewBalanceAuditLog(uuid.NewString(), posting, previous, next)
	if err := repos.Ledger.SaveBalanceAuditLog(ctx, entry); err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return previous, next, nil
}

type ledgerService struct {
	BaseService
	repos portsrepo.Repositories
	uow   portsrepo.UnitOfWork
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(repos portsrepo.Repositories, uow portsrepo.UnitOfWork) portssvc.LedgerSvcFacade {
	return &ledgerService{repos: repos, uow: uow}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func (s *ledgerService) CorrectBalance(ctx context.Context, shopID string, req dto.CorrectBalanceRequest, actorID string) (*dto.BalanceChangeResponse, error) {
	if req.Delta.IsZero() {
		return nil, validationError("delta must be non-zero")
	}

	var resp dto.BalanceChangeResponse
	err := s.uow.WithinTransaction(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		previous, next, err := applyLedgerEntry(ctx, repos, domain.LedgerPosting{
			ShopID:     shopID,
			ChangeType: domain.ChangeAdjustment,
			Amount:     req.Delta,
			Actor:      actorID,
			Note:       req.Note,
			At:         time.Now().UTC(),
		})
		if err != nil {
			return err
		}
		resp = dto.BalanceChangeResponse{OldBalance: previous, NewBalance: next}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to correct shop balance", slog.String("shop_id", shopID))
		return nil, wrapRepoError(err, "correct balance")
	}

	s.LogInfo(ctx, "Shop balance corrected",
		slog.String("shop_id", shopID),
		slog.String("delta", req.Delta.String()),
		slog.String("new_balance", resp.NewBalance.String()))
	return &resp, nil
}

func (s *ledgerService) ListLedger(ctx context.Context, shopID string, params dto.ListLedgerParams) (*dto.ListLedgerResponse, error) {
	if _, err := s.repos.Shops.FindShopByID(ctx, shopID); err != nil {
		return nil, wrapRepoError(err, "find shop")
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}

	var cursor *portsrepo.LedgerCursor
	if params.NextToken != "" {
		seq, err := pagination.DecodeSequenceToken(params.NextToken)
		if err != nil {
			return nil, validationError("invalid nextToken: %v", err)
		}
		cursor = &portsrepo.LedgerCursor{Sequence: seq}
	}

	// One extra row tells us whether another page exists.
	entries, err := s.repos.Ledger.ListBalanceAuditLogs(ctx, shopID, limit+1, cursor)
	if err != nil {
		s.LogError(ctx, err, "Failed to list ledger", slog.String("shop_id", shopID))
		return nil, wrapRepoError(err, "list ledger")
	}

	resp := &dto.ListLedgerResponse{Entries: entries}
	if len(entries) > limit {
		resp.Entries = entries[:limit]
		token := pagination.EncodeSequenceToken(resp.Entries[limit-1].Sequence)
		resp.NextToken = &token
	}
	if resp.Entries == nil {
		resp.Entries = []domain.BalanceAuditLog{}
	}
	return resp, nil
}

func (s *ledgerService) ExportLedger(ctx context.Context, shopID string, w io.Writer) error {
	shop, err := s.repos.Shops.FindShopByID(ctx, shopID)
	if err != nil {
		return wrapRepoError(err, "find shop")
	}
	entries, err := s.repos.Ledger.ListAllBalanceAuditLogs(ctx, shopID)
	if err != nil {
		return wrapRepoError(err, "list ledger")
	}
	if err := utils.WriteLedgerWorkbook(w, shop, entries); err != nil {
		s.LogError(ctx, err, "Failed to write ledger workbook", slog.String("shop_id", shopID))
		return err
	}
	return nil
}

func (s *ledgerService) VerifyLedger(ctx context.Context, shopID string) (*dto.LedgerVerificationResponse, error) {
	shop, err := s.repos.Shops.FindShopByID(ctx, shopID)
	if err != nil {
		return nil, wrapRepoError(err, "find shop")
	}
	entries, err := s.repos.Ledger.ListAllBalanceAuditLogs(ctx, shopID)
	if err != nil {
		return nil, wrapRepoError(err, "list ledger")
	}

	replay := domain.ReplayLedger(entries)
	if replay.Entries == 0 {
		// Nothing recorded yet: the balance is whatever the shop was opened with.
		replay.OpeningBalance = shop.CurrentBalance
		replay.ComputedBalance = shop.CurrentBalance
	}

	drift := shop.CurrentBalance.Sub(replay.ComputedBalance)
	resp := &dto.LedgerVerificationResponse{
		ShopID:          shop.ShopID,
		CurrentBalance:  shop.CurrentBalance,
		ComputedBalance: replay.ComputedBalance,
		OpeningBalance:  replay.OpeningBalance,
		Drift:           drift,
		Entries:         replay.Entries,
		BrokenLinks:     replay.BrokenLinks,
		Consistent:      drift.IsZero() && replay.BrokenLinks == 0,
	}
	if !resp.Consistent {
		s.GetLogger(ctx).Warn("Ledger drift detected",
			slog.String("shop_id", shopID),
			slog.String("drift", drift.String()),
			slog.Int("broken_links", replay.BrokenLinks))
	}
	return resp, nil
}

// isNotFound is shorthand used where a missing row is an expected outcome.
func isNotFound(err error) bool {
	return errors.Is(err, apperrors.ErrNotFound)
}
