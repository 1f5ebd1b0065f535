package utils

import (
	"fmt"
	"io"

	"github.com/SscSPs/psbook/internal/core/domain"
	"github.com/xuri/excelize/v2"
)

const ledgerSheet = "Ledger"

var ledgerHeaders = []string{
	"Sequence", "Created At", "Change Type", "Previous Balance", "Change", "New Balance", "Reference", "Note", "Created By",
}

// WriteLedgerWorkbook renders a shop's audit entries, oldest first, as an xlsx workbook.
func WriteLedgerWorkbook(w io.Writer, shop *domain.Shop, entries []domain.BalanceAuditLog) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", ledgerSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	if err := f.SetCellValue(ledgerSheet, "A1", fmt.Sprintf("%s (%s)", shop.Name, shop.ShopID)); err != nil {
		return err
	}
	if err := f.SetCellValue(ledgerSheet, "A2", "Current balance"); err != nil {
		return err
	}
	if err := f.SetCellValue(ledgerSheet, "B2", shop.CurrentBalance.StringFixed(2)); err != nil {
		return err
	}

	headerRow := 4
	for i, h := range ledgerHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, headerRow)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(ledgerSheet, cell, h); err != nil {
			return err
		}
	}

	for i, e := range entries {
		ref := ""
		if e.ReferenceID != nil {
			ref = *e.ReferenceID
		}
		prev, _ := e.PreviousBalance.Float64()
		change, _ := e.ChangeAmount.Float64()
		next, _ := e.NewBalance.Float64()
		row := []any{
			e.Sequence,
			e.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
			string(e.ChangeType),
			prev,
			change,
			next,
			ref,
			e.Note,
			e.CreatedBy,
		}
		cell, err := excelize.CoordinatesToCellName(1, headerRow+1+i)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(ledgerSheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
