package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/psbook/internal/core/domain"
)

func TestExpectedCash(t *testing.T) {
	txns := []domain.Transaction{
		{TransactionID: "t1", EmployeeID: "emp-1", Amount: d("500"), PaymentMode: domain.PaymentCash, Status: domain.TransactionCompleted},
		{TransactionID: "t2", EmployeeID: "emp-1", Amount: d("300"), PaymentMode: domain.PaymentCash, Status: domain.TransactionCompleted},
		{TransactionID: "t3", EmployeeID: "emp-1", Amount: d("200"), PaymentMode: domain.PaymentUPI, Status: domain.TransactionCompleted},
		{TransactionID: "t4", EmployeeID: "emp-1", Amount: d("100"), PaymentMode: domain.PaymentCash, Status: domain.TransactionReversed},
		{TransactionID: "t5", EmployeeID: "emp-2", Amount: d("900"), PaymentMode: domain.PaymentCash, Status: domain.TransactionCompleted},
	}

	total, ids := domain.ExpectedCash("emp-1", txns)

	assert.True(t, d("800").Equal(total), "got %s", total)
	assert.Equal(t, []string{"t1", "t2"}, ids)
}

func TestSettlement_Resolve(t *testing.T) {
	at := time.Date(2024, 6, 1, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		expected     string
		received     string
		wantStatus   domain.SettlementStatus
		wantVariance string
	}{
		{name: "exact match", expected: "800", received: "800", wantStatus: domain.SettlementReceived, wantVariance: "0"},
		{name: "short", expected: "800", received: "750", wantStatus: domain.SettlementDiscrepancy, wantVariance: "-50"},
		{name: "over", expected: "800", received: "820", wantStatus: domain.SettlementDiscrepancy, wantVariance: "20"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &domain.Settlement{ExpectedAmount: d(tt.expected), Status: domain.SettlementPending}
			s.Resolve(d(tt.received), "admin-1", at)

			require.NotNil(t, s.Variance)
			require.NotNil(t, s.ReceivedAmount)
			assert.Equal(t, tt.wantStatus, s.Status)
			assert.True(t, d(tt.wantVariance).Equal(*s.Variance), "got %s", s.Variance)
			assert.Equal(t, "admin-1", *s.ReceivedBy)
			assert.Equal(t, at, *s.ReceivedAt)
		})
	}
}
