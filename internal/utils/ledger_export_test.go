package utils

import (
	"bytes"
	"testing"
	"time"

	"github.com/SscSPs/psbook/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteLedgerWorkbook(t *testing.T) {
	shop := &domain.Shop{ShopID: "shop-1", Name: "Corner Store", CurrentBalance: decimal.NewFromInt(3000)}
	ref := "txn-1"
	entries := []domain.BalanceAuditLog{
		{
			Sequence:        1,
			ShopID:          "shop-1",
			PreviousBalance: decimal.NewFromInt(5000),
			ChangeAmount:    decimal.NewFromInt(-2000),
			NewBalance:      decimal.NewFromInt(3000),
			ChangeType:      domain.ChangeCollection,
			ReferenceID:     &ref,
			CreatedAt:       time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
			CreatedBy:       "emp-1",
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteLedgerWorkbook(&buf, shop, entries))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	title, err := f.GetCellValue(ledgerSheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Corner Store (shop-1)", title)

	header, err := f.GetCellValue(ledgerSheet, "C4")
	require.NoError(t, err)
	assert.Equal(t, "Change Type", header)

	changeType, err := f.GetCellValue(ledgerSheet, "C5")
	require.NoError(t, err)
	assert.Equal(t, "collection", changeType)

	reference, err := f.GetCellValue(ledgerSheet, "G5")
	require.NoError(t, err)
	assert.Equal(t, "txn-1", reference)
}
