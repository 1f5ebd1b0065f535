package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/psbook/internal/apperrors"
	"github.com/SscSPs/psbook/internal/core/domain"
	portssvc "github.com/SscSPs/psbook/internal/core/ports/services"
	"github.com/SscSPs/psbook/internal/core/services"
	"github.com/SscSPs/psbook/internal/dto"
)

type SettlementServiceTestSuite struct {
	suite.Suite
	ctx         context.Context
	store       *memStore
	settlements portssvc.SettlementSvcFacade
	handover    portssvc.HandoverSvcFacade
}

func (suite *SettlementServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.store = newMemStore()
	suite.settlements = services.NewSettlementService(suite.store.repos(), suite.store)
	suite.handover = services.NewHandoverService(suite.store.repos(), suite.store)

	suite.store.addEmployee(domain.Employee{EmployeeID: "emp-1", Name: "Ravi", Role: domain.RoleFieldStaff, Status: domain.EmployeeActive})
	suite.store.addEmployee(domain.Employee{EmployeeID: "emp-2", Name: "Asha", Role: domain.RoleFieldStaff, Status: domain.EmployeeActive})

	now := time.Now().UTC()
	for _, t := range []domain.Transaction{
		{TransactionID: "t1", EmployeeID: "emp-1", Amount: dec("500"), PaymentMode: domain.PaymentCash, Status: domain.TransactionCompleted},
		{TransactionID: "t2", EmployeeID: "emp-1", Amount: dec("300"), PaymentMode: domain.PaymentCash, Status: domain.TransactionCompleted},
		{TransactionID: "t3", EmployeeID: "emp-1", Amount: dec("200"), PaymentMode: domain.PaymentUPI, Status: domain.TransactionCompleted},
		{TransactionID: "t4", EmployeeID: "emp-2", Amount: dec("900"), PaymentMode: domain.PaymentCash, Status: domain.TransactionCompleted},
	} {
		t.CollectedAt = now
		suite.store.addTransaction(t)
	}
}

func (suite *SettlementServiceTestSuite) TestCreateThenReceive_ShortfallIsDiscrepancy() {
	created, err := suite.settlements.CreateSettlement(suite.ctx, dto.CreateSettlementRequest{
		EmployeeID:     "emp-1",
		TransactionIDs: []string{"t1", "t2", "t3", "t4", "t1", "unknown"},
	}, "admin-1")
	suite.Require().NoError(err)
	suite.Equal(domain.SettlementPending, created.Status)
	suite.True(dec("800").Equal(created.ExpectedAmount), "got %s", created.ExpectedAmount)
	suite.ElementsMatch([]string{"t1", "t2"}, created.TransactionIDs)
	suite.Nil(created.Variance)

	received, err := suite.settlements.ReceiveSettlement(suite.ctx, created.SettlementID, dto.ReceiveSettlementRequest{
		ReceivedAmount: dec("750"),
		Note:           "short by 50",
	}, "admin-1")
	suite.Require().NoError(err)
	suite.Equal(domain.SettlementDiscrepancy, received.Status)
	suite.True(dec("-50").Equal(*received.Variance))
	suite.Equal("admin-1", *received.ReceivedBy)
	suite.Equal("short by 50", received.Note)

	_, err = suite.settlements.ReceiveSettlement(suite.ctx, created.SettlementID, dto.ReceiveSettlementRequest{
		ReceivedAmount: dec("800"),
	}, "admin-1")
	suite.True(errors.Is(err, apperrors.ErrInvalidState))

	stored, err := suite.settlements.GetSettlementByID(suite.ctx, created.SettlementID)
	suite.Require().NoError(err)
	suite.True(dec("750").Equal(*stored.ReceivedAmount))
}

func (suite *SettlementServiceTestSuite) TestVerify_ExactMatchIsReceived() {
	settlement, err := suite.settlements.VerifySettlement(suite.ctx, dto.VerifySettlementRequest{
		EmployeeID:     "emp-1",
		TransactionIDs: []string{"t1", "t2"},
		ReceivedAmount: dec("800"),
	}, "admin-1")

	suite.Require().NoError(err)
	suite.Equal(domain.SettlementReceived, settlement.Status)
	suite.True(settlement.Variance.IsZero())

	list, err := suite.settlements.ListSettlements(suite.ctx, dto.ListSettlementsParams{EmployeeID: "emp-1"})
	suite.Require().NoError(err)
	suite.Len(list, 1)
}

func (suite *SettlementServiceTestSuite) TestCreate_Rejections() {
	_, err := suite.settlements.CreateSettlement(suite.ctx, dto.CreateSettlementRequest{
		EmployeeID: "ghost", TransactionIDs: []string{"t1"},
	}, "admin-1")
	suite.True(errors.Is(err, apperrors.ErrNotFound))

	_, err = suite.settlements.CreateSettlement(suite.ctx, dto.CreateSettlementRequest{
		EmployeeID: "emp-1", TransactionIDs: []string{" ", ""},
	}, "admin-1")
	suite.True(errors.Is(err, apperrors.ErrValidation))

	_, err = suite.settlements.ReceiveSettlement(suite.ctx, "missing", dto.ReceiveSettlementRequest{ReceivedAmount: dec("1")}, "admin-1")
	suite.True(errors.Is(err, apperrors.ErrNotFound))

	_, err = suite.settlements.ReceiveSettlement(suite.ctx, "missing", dto.ReceiveSettlementRequest{ReceivedAmount: dec("-1")}, "admin-1")
	suite.True(errors.Is(err, apperrors.ErrValidation))
}

func (suite *SettlementServiceTestSuite) TestUpdateStatus_Override() {
	created, err := suite.settlements.CreateSettlement(suite.ctx, dto.CreateSettlementRequest{
		EmployeeID: "emp-1", TransactionIDs: []string{"t1"},
	}, "admin-1")
	suite.Require().NoError(err)

	updated, err := suite.settlements.UpdateSettlementStatus(suite.ctx, created.SettlementID, dto.UpdateSettlementStatusRequest{
		Status: domain.SettlementReceived,
		Note:   "counted by hand",
	}, "admin-2")
	suite.Require().NoError(err)
	suite.Equal(domain.SettlementReceived, updated.Status)
	suite.Nil(updated.ReceivedAmount)
	suite.Equal("admin-2", updated.LastUpdatedBy)

	_, err = suite.settlements.UpdateSettlementStatus(suite.ctx, created.SettlementID, dto.UpdateSettlementStatusRequest{
		Status: domain.SettlementStatus("lost"),
	}, "admin-2")
	suite.True(errors.Is(err, apperrors.ErrValidation))
}

func (suite *SettlementServiceTestSuite) TestHandover_PendingThenVerify() {
	pending, err := suite.handover.GetPendingHandover(suite.ctx, "emp-1")
	suite.Require().NoError(err)
	suite.Equal(2, pending.Count)
	suite.True(dec("800").Equal(pending.Amount))

	verified, err := suite.handover.VerifyHandover(suite.ctx, "emp-1", "admin-1")
	suite.Require().NoError(err)
	suite.Equal(2, verified.Verified)
	suite.True(dec("800").Equal(verified.Amount))

	pending, err = suite.handover.GetPendingHandover(suite.ctx, "emp-1")
	suite.Require().NoError(err)
	suite.Equal(0, pending.Count)
	suite.True(pending.Amount.IsZero())
	suite.NotNil(pending.Transactions)

	again, err := suite.handover.VerifyHandover(suite.ctx, "emp-1", "admin-1")
	suite.Require().NoError(err)
	suite.Equal(0, again.Verified)

	other, err := suite.handover.GetPendingHandover(suite.ctx, "emp-2")
	suite.Require().NoError(err)
	suite.Equal(1, other.Count)

	_, err = suite.handover.GetPendingHandover(suite.ctx, "ghost")
	suite.True(errors.Is(err, apperrors.ErrNotFound))
}

func (suite *SettlementServiceTestSuite) TestVerifyHandover_CountsOnlyRowsItVerified() {
	pending, err := suite.handover.GetPendingHandover(suite.ctx, "emp-1")
	suite.Require().NoError(err)
	suite.True(dec("800").Equal(pending.Amount))

	// Another handover commits t1 after the pending figure was read.
	suite.store.beforeVerify = func(s *memState) {
		t := s.transactions["t1"]
		t.IsVerified = true
		s.transactions["t1"] = t
	}

	verified, err := suite.handover.VerifyHandover(suite.ctx, "emp-1", "admin-1")
	suite.Require().NoError(err)
	suite.Equal(1, verified.Verified)
	suite.True(dec("300").Equal(verified.Amount), "got %s", verified.Amount)
	suite.Equal("admin-1", *suite.store.transaction("t2").VerifiedBy)
	suite.Nil(suite.store.transaction("t1").VerifiedBy)
}

func (suite *SettlementServiceTestSuite) TestVerifyHandover_SkipsTransactionReversedMidway() {
	suite.store.beforeVerify = func(s *memState) {
		t := s.transactions["t2"]
		t.Status = domain.TransactionReversed
		s.transactions["t2"] = t
	}

	verified, err := suite.handover.VerifyHandover(suite.ctx, "emp-1", "admin-1")
	suite.Require().NoError(err)
	suite.Equal(1, verified.Verified)
	suite.True(dec("500").Equal(verified.Amount), "got %s", verified.Amount)
	suite.False(suite.store.transaction("t2").IsVerified)

	suite.store.beforeVerify = nil
	pending, err := suite.handover.GetPendingHandover(suite.ctx, "emp-1")
	suite.Require().NoError(err)
	suite.Equal(0, pending.Count)
	suite.True(pending.Amount.IsZero())
}

func TestSettlementService(t *testing.T) {
	suite.Run(t, new(SettlementServiceTestSuite))
}
