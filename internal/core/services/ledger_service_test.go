package services_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/psbook/internal/apperrors"
	"github.com/SscSPs/psbook/internal/core/domain"
	portssvc "github.com/SscSPs/psbook/internal/core/ports/services"
	"github.com/SscSPs/psbook/internal/core/services"
	"github.com/SscSPs/psbook/internal/dto"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type LedgerFlowTestSuite struct {
	suite.Suite
	ctx          context.Context
	store        *memStore
	ledger       portssvc.LedgerSvcFacade
	transactions portssvc.TransactionSvcFacade
	invoices     portssvc.InvoiceSvcFacade
}

func (suite *LedgerFlowTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.store = newMemStore()
	repos := suite.store.repos()
	suite.ledger = services.NewLedgerService(repos, suite.store)
	suite.transactions = services.NewTransactionService(repos, suite.store, time.UTC)
	suite.invoices = services.NewInvoiceService(repos, suite.store, time.UTC)
}

func (suite *LedgerFlowTestSuite) balanceOf(shopID string) decimal.Decimal {
	return suite.store.shop(shopID).CurrentBalance
}

func (suite *LedgerFlowTestSuite) collect(shopID, amount string) *dto.CollectCashResponse {
	resp, err := suite.transactions.CollectCash(suite.ctx, dto.CollectCashRequest{
		ShopID:      shopID,
		Amount:      dec(amount),
		PaymentMode: domain.PaymentCash,
	}, "emp-1")
	suite.Require().NoError(err)
	return resp
}

func (suite *LedgerFlowTestSuite) TestCollectInvoiceReverse_BalanceAndLedger() {
	suite.store.addShop("shop-1", "5000")

	collected := suite.collect("shop-1", "2000")
	suite.True(dec("5000").Equal(collected.OldBalance))
	suite.True(dec("3000").Equal(collected.NewBalance))
	suite.Equal(domain.TransactionCompleted, collected.Transaction.Status)

	invoiced, err := suite.invoices.CreateInvoice(suite.ctx, dto.CreateInvoiceRequest{
		ShopID:        "shop-1",
		InvoiceNumber: "inv-100",
		Amount:        dec("1500"),
	}, "admin-1")
	suite.Require().NoError(err)
	suite.True(dec("4500").Equal(invoiced.NewBalance))
	suite.Equal(time.Now().UTC().Format(domain.DateLayout), invoiced.Invoice.IssueDate)

	reversed, err := suite.transactions.ReverseTransaction(suite.ctx, collected.Transaction.TransactionID,
		dto.ReverseTransactionRequest{Reason: "wrong shop"}, "admin-1")
	suite.Require().NoError(err)
	suite.True(dec("4500").Equal(reversed.OldBalance))
	suite.True(dec("6500").Equal(reversed.NewBalance))
	suite.True(dec("6500").Equal(suite.balanceOf("shop-1")))

	entries := suite.store.ledgerFor("shop-1")
	suite.Require().Len(entries, 3)
	suite.Equal(domain.ChangeCollection, entries[0].ChangeType)
	suite.Equal(domain.ChangeInvoice, entries[1].ChangeType)
	suite.Equal(domain.ChangeReversal, entries[2].ChangeType)
	suite.Equal("Invoice inv-100", entries[1].Note)
	suite.Equal(collected.Transaction.TransactionID, *entries[2].ReferenceID)
	for _, e := range entries {
		suite.True(e.PreviousBalance.Add(e.ChangeAmount).Equal(e.NewBalance))
	}

	txn, err := suite.transactions.GetTransactionByID(suite.ctx, collected.Transaction.TransactionID)
	suite.Require().NoError(err)
	suite.Equal(domain.TransactionReversed, txn.Status)
	suite.Equal("wrong shop", *txn.ReversalReason)

	report, err := suite.ledger.VerifyLedger(suite.ctx, "shop-1")
	suite.Require().NoError(err)
	suite.True(report.Consistent)
	suite.True(dec("5000").Equal(report.OpeningBalance))
	suite.True(dec("6500").Equal(report.ComputedBalance))
	suite.Equal(3, report.Entries)
}

func (suite *LedgerFlowTestSuite) TestReverseTwice_Rejected() {
	suite.store.addShop("shop-1", "1000")
	collected := suite.collect("shop-1", "400")

	_, err := suite.transactions.ReverseTransaction(suite.ctx, collected.Transaction.TransactionID,
		dto.ReverseTransactionRequest{Reason: "duplicate entry"}, "admin-1")
	suite.Require().NoError(err)

	_, err = suite.transactions.ReverseTransaction(suite.ctx, collected.Transaction.TransactionID,
		dto.ReverseTransactionRequest{Reason: "again"}, "admin-1")
	suite.True(errors.Is(err, apperrors.ErrInvalidState))
	suite.True(dec("1000").Equal(suite.balanceOf("shop-1")))
	suite.Len(suite.store.ledgerFor("shop-1"), 2)
}

func (suite *LedgerFlowTestSuite) TestReverse_RequiresReason() {
	_, err := suite.transactions.ReverseTransaction(suite.ctx, "txn-1", dto.ReverseTransactionRequest{Reason: "  "}, "admin-1")
	suite.True(errors.Is(err, apperrors.ErrValidation))
}

func (suite *LedgerFlowTestSuite) TestCollect_ClampsAtZero() {
	suite.store.addShop("shop-1", "300")

	resp := suite.collect("shop-1", "500")

	suite.True(resp.NewBalance.IsZero())
	suite.True(dec("500").Equal(resp.Transaction.Amount), "transaction keeps the collected amount")
	entries := suite.store.ledgerFor("shop-1")
	suite.Require().Len(entries, 1)
	suite.True(dec("-300").Equal(entries[0].ChangeAmount))
	suite.NotNil(suite.store.shop("shop-1").LastCollectionAt)
}

func (suite *LedgerFlowTestSuite) TestCollect_Validation() {
	suite.store.addShop("shop-1", "300")
	lat := 12.9

	cases := []dto.CollectCashRequest{
		{ShopID: "shop-1", Amount: dec("0"), PaymentMode: domain.PaymentCash},
		{ShopID: "shop-1", Amount: dec("10"), PaymentMode: domain.PaymentMode("card")},
		{ShopID: "shop-1", Amount: dec("10"), PaymentMode: domain.PaymentUPI, Latitude: &lat},
	}
	for _, req := range cases {
		_, err := suite.transactions.CollectCash(suite.ctx, req, "emp-1")
		suite.True(errors.Is(err, apperrors.ErrValidation), "request %+v", req)
	}
	suite.Equal(0, suite.store.transactionCount())
}

func (suite *LedgerFlowTestSuite) TestCollect_UnknownOrDeletedShop() {
	_, err := suite.transactions.CollectCash(suite.ctx, dto.CollectCashRequest{
		ShopID: "missing", Amount: dec("10"), PaymentMode: domain.PaymentCash,
	}, "emp-1")
	suite.True(errors.Is(err, apperrors.ErrNotFound))

	suite.store.addShop("shop-2", "100")
	suite.Require().NoError(suite.store.MarkShopDeleted(suite.ctx, "shop-2", time.Now(), "admin-1"))
	_, err = suite.transactions.CollectCash(suite.ctx, dto.CollectCashRequest{
		ShopID: "shop-2", Amount: dec("10"), PaymentMode: domain.PaymentCash,
	}, "emp-1")
	suite.True(errors.Is(err, apperrors.ErrNotFound))
	suite.Equal(0, suite.store.transactionCount())
}

func (suite *LedgerFlowTestSuite) TestCollect_RollsBackWhenTransactionSaveFails() {
	suite.store.addShop("shop-1", "800")
	suite.store.failures["SaveTransaction"] = errors.New("connection reset")

	_, err := suite.transactions.CollectCash(suite.ctx, dto.CollectCashRequest{
		ShopID: "shop-1", Amount: dec("200"), PaymentMode: domain.PaymentCash,
	}, "emp-1")

	suite.Error(err)
	suite.True(dec("800").Equal(suite.balanceOf("shop-1")))
	suite.Empty(suite.store.ledgerFor("shop-1"))
}

func (suite *LedgerFlowTestSuite) TestCorrectBalance_AllowsNegative() {
	suite.store.addShop("shop-1", "100")

	resp, err := suite.ledger.CorrectBalance(suite.ctx, "shop-1", dto.CorrectBalanceRequest{
		Delta: dec("-250"),
		Note:  "advance payment",
	}, "admin-1")

	suite.Require().NoError(err)
	suite.True(dec("-150").Equal(resp.NewBalance))
	entries := suite.store.ledgerFor("shop-1")
	suite.Require().Len(entries, 1)
	suite.Equal(domain.ChangeAdjustment, entries[0].ChangeType)
	suite.Equal("advance payment", entries[0].Note)

	_, err = suite.ledger.CorrectBalance(suite.ctx, "shop-1", dto.CorrectBalanceRequest{Delta: decimal.Zero, Note: "noop"}, "admin-1")
	suite.True(errors.Is(err, apperrors.ErrValidation))
}

func (suite *LedgerFlowTestSuite) TestCreateInvoice_DuplicateNumber() {
	suite.store.addShop("shop-1", "0")
	suite.store.addShop("shop-2", "0")

	_, err := suite.invoices.CreateInvoice(suite.ctx, dto.CreateInvoiceRequest{
		ShopID: "shop-1", InvoiceNumber: "INV-7", Amount: dec("10"),
	}, "admin-1")
	suite.Require().NoError(err)

	_, err = suite.invoices.CreateInvoice(suite.ctx, dto.CreateInvoiceRequest{
		ShopID: "shop-2", InvoiceNumber: " inv-7 ", Amount: dec("10"),
	}, "admin-1")
	suite.True(errors.Is(err, apperrors.ErrDuplicate))
	suite.True(suite.balanceOf("shop-2").IsZero())

	found, err := suite.invoices.GetInvoiceByNumber(suite.ctx, "inv-7")
	suite.Require().NoError(err)
	suite.Equal("shop-1", found.ShopID)
}

func (suite *LedgerFlowTestSuite) TestCreateInvoice_BadDates() {
	_, err := suite.invoices.CreateInvoice(suite.ctx, dto.CreateInvoiceRequest{
		ShopID: "shop-1", InvoiceNumber: "INV-1", Amount: dec("10"), IssueDate: "2024-13-01",
	}, "admin-1")
	suite.True(errors.Is(err, apperrors.ErrValidation))

	_, err = suite.invoices.ListInvoices(suite.ctx, dto.ListInvoicesParams{FromDate: "2024-06-02", ToDate: "2024-06-01"})
	suite.True(errors.Is(err, apperrors.ErrValidation))
}

func (suite *LedgerFlowTestSuite) TestListLedger_Paginates() {
	suite.store.addShop("shop-1", "10000")
	suite.collect("shop-1", "100")
	suite.collect("shop-1", "200")
	suite.collect("shop-1", "300")

	first, err := suite.ledger.ListLedger(suite.ctx, "shop-1", dto.ListLedgerParams{Limit: 2})
	suite.Require().NoError(err)
	suite.Require().Len(first.Entries, 2)
	suite.Require().NotNil(first.NextToken)
	suite.True(dec("-300").Equal(first.Entries[0].ChangeAmount), "newest first")

	second, err := suite.ledger.ListLedger(suite.ctx, "shop-1", dto.ListLedgerParams{Limit: 2, NextToken: *first.NextToken})
	suite.Require().NoError(err)
	suite.Require().Len(second.Entries, 1)
	suite.Nil(second.NextToken)
	suite.True(dec("-100").Equal(second.Entries[0].ChangeAmount))

	_, err = suite.ledger.ListLedger(suite.ctx, "shop-1", dto.ListLedgerParams{NextToken: "!!not-a-token"})
	suite.True(errors.Is(err, apperrors.ErrValidation))

	_, err = suite.ledger.ListLedger(suite.ctx, "missing", dto.ListLedgerParams{})
	suite.True(errors.Is(err, apperrors.ErrNotFound))
}

func (suite *LedgerFlowTestSuite) TestVerifyLedger_DetectsDrift() {
	suite.store.addShop("shop-1", "1000")
	suite.collect("shop-1", "400")
	// Simulate a balance written outside the ledger path.
	suite.Require().NoError(suite.store.UpdateShopBalance(suite.ctx, "shop-1", dec("700"), nil, "script", time.Now()))

	report, err := suite.ledger.VerifyLedger(suite.ctx, "shop-1")

	suite.Require().NoError(err)
	suite.False(report.Consistent)
	suite.True(dec("600").Equal(report.ComputedBalance))
	suite.True(dec("100").Equal(report.Drift))
}

func (suite *LedgerFlowTestSuite) TestVerifyLedger_NoEntries() {
	suite.store.addShop("shop-1", "250")

	report, err := suite.ledger.VerifyLedger(suite.ctx, "shop-1")

	suite.Require().NoError(err)
	suite.True(report.Consistent)
	suite.True(dec("250").Equal(report.OpeningBalance))
	suite.Equal(0, report.Entries)
}

func (suite *LedgerFlowTestSuite) TestExportLedger_WritesWorkbook() {
	suite.store.addShop("shop-1", "1000")
	suite.collect("shop-1", "400")

	var buf bytes.Buffer
	suite.Require().NoError(suite.ledger.ExportLedger(suite.ctx, "shop-1", &buf))
	// xlsx files are zip archives
	suite.True(bytes.HasPrefix(buf.Bytes(), []byte("PK")))

	err := suite.ledger.ExportLedger(suite.ctx, "missing", &buf)
	suite.True(errors.Is(err, apperrors.ErrNotFound))
}

func (suite *LedgerFlowTestSuite) TestCashInHand_CountsTodaysCompletedCash() {
	suite.store.addShop("shop-1", "10000")
	suite.collect("shop-1", "400")
	suite.collect("shop-1", "350")
	_, err := suite.transactions.CollectCash(suite.ctx, dto.CollectCashRequest{
		ShopID: "shop-1", Amount: dec("999"), PaymentMode: domain.PaymentUPI,
	}, "emp-1")
	suite.Require().NoError(err)
	suite.store.addTransaction(domain.Transaction{
		TransactionID: "old", EmployeeID: "emp-1", Amount: dec("50"),
		PaymentMode: domain.PaymentCash, Status: domain.TransactionCompleted,
		CollectedAt: time.Now().UTC().AddDate(0, 0, -2),
	})

	resp, err := suite.transactions.GetEmployeeCashInHand(suite.ctx, "emp-1")

	suite.Require().NoError(err)
	suite.True(dec("750").Equal(resp.CashInHand), "got %s", resp.CashInHand)
	suite.Equal(time.Now().UTC().Format(domain.DateLayout), resp.Date)
}

func TestLedgerFlow(t *testing.T) {
	suite.Run(t, new(LedgerFlowTestSuite))
}
