package domain_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/psbook/internal/core/domain"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestComputeNewBalance(t *testing.T) {
	tests := []struct {
		name       string
		changeType domain.ChangeType
		previous   string
		amount     string
		want       string
		wantErr    bool
	}{
		{name: "collection reduces balance", changeType: domain.ChangeCollection, previous: "5000", amount: "2000", want: "3000"},
		{name: "collection clamps at zero", changeType: domain.ChangeCollection, previous: "300", amount: "500", want: "0"},
		{name: "collection of exact balance", changeType: domain.ChangeCollection, previous: "300.50", amount: "300.50", want: "0"},
		{name: "collection must be positive", changeType: domain.ChangeCollection, previous: "300", amount: "0", wantErr: true},
		{name: "invoice increases balance", changeType: domain.ChangeInvoice, previous: "3000", amount: "1500", want: "4500"},
		{name: "invoice must be positive", changeType: domain.ChangeInvoice, previous: "3000", amount: "-1", wantErr: true},
		{name: "reversal restores amount", changeType: domain.ChangeReversal, previous: "4500", amount: "2000", want: "6500"},
		{name: "negative adjustment is not clamped", changeType: domain.ChangeAdjustment, previous: "100", amount: "-250", want: "-150"},
		{name: "zero adjustment rejected", changeType: domain.ChangeAdjustment, previous: "100", amount: "0", wantErr: true},
		{name: "invoice cancel is reserved", changeType: domain.ChangeInvoiceCancel, previous: "100", amount: "10", wantErr: true},
		{name: "unknown type", changeType: domain.ChangeType("gift"), previous: "100", amount: "10", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.ComputeNewBalance(tt.changeType, d(tt.previous), d(tt.amount))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, d(tt.want).Equal(got), "want %s got %s", tt.want, got)
		})
	}
}

func TestNewBalanceAuditLog_ChangeAmountIsActualDelta(t *testing.T) {
	at := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	ref := "txn-1"
	posting := domain.LedgerPosting{
		ShopID:      "shop-1",
		ChangeType:  domain.ChangeCollection,
		Amount:      d("500"),
		ReferenceID: &ref,
		Actor:       "emp-1",
		Note:        "visit",
		At:          at,
	}

	entry := domain.NewBalanceAuditLog("log-1", posting, d("300"), d("0"))

	assert.Equal(t, "shop-1", entry.ShopID)
	assert.True(t, d("-300").Equal(entry.ChangeAmount), "clamped collection records the applied delta")
	assert.True(t, entry.PreviousBalance.Add(entry.ChangeAmount).Equal(entry.NewBalance))
	assert.Equal(t, domain.ChangeCollection, entry.ChangeType)
	assert.Equal(t, &ref, entry.ReferenceID)
	assert.Equal(t, "emp-1", entry.CreatedBy)
	assert.Equal(t, at, entry.CreatedAt)
}

func TestReplayLedger(t *testing.T) {
	t.Run("empty ledger", func(t *testing.T) {
		r := domain.ReplayLedger(nil)
		assert.Equal(t, 0, r.Entries)
		assert.True(t, r.ComputedBalance.IsZero())
	})

	t.Run("consistent chain", func(t *testing.T) {
		entries := []domain.BalanceAuditLog{
			{PreviousBalance: d("5000"), NewBalance: d("3000"), ChangeAmount: d("-2000")},
			{PreviousBalance: d("3000"), NewBalance: d("4500"), ChangeAmount: d("1500")},
			{PreviousBalance: d("4500"), NewBalance: d("6500"), ChangeAmount: d("2000")},
		}
		r := domain.ReplayLedger(entries)
		assert.Equal(t, 3, r.Entries)
		assert.Equal(t, 0, r.BrokenLinks)
		assert.True(t, d("5000").Equal(r.OpeningBalance))
		assert.True(t, d("6500").Equal(r.ComputedBalance))
	})

	t.Run("broken link is counted", func(t *testing.T) {
		entries := []domain.BalanceAuditLog{
			{PreviousBalance: d("100"), NewBalance: d("50"), ChangeAmount: d("-50")},
			{PreviousBalance: d("60"), NewBalance: d("80"), ChangeAmount: d("20")},
		}
		r := domain.ReplayLedger(entries)
		assert.Equal(t, 1, r.BrokenLinks)
		assert.True(t, d("70").Equal(r.ComputedBalance))
	})
}

func TestChangeType_Valid(t *testing.T) {
	assert.True(t, domain.ChangeReversal.Valid())
	assert.False(t, domain.ChangeType("").Valid())
}
