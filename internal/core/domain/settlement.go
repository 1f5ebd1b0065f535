package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SettlementStatus is the reconciliation state of a cash handover.
type SettlementStatus string

const (
	SettlementPending     SettlementStatus = "pending"
	SettlementReceived    SettlementStatus = "received"
	SettlementDiscrepancy SettlementStatus = "discrepancy"
)

// Valid reports whether s is a known settlement status.
func (s SettlementStatus) Valid() bool {
	switch s {
	case SettlementPending, SettlementReceived, SettlementDiscrepancy:
		return true
	}
	return false
}

// Settlement reconciles the cash an employee collected against what the office received.
type Settlement struct {
	SettlementID   string           `json:"settlementID"`
	EmployeeID     string           `json:"employeeID"`
	ExpectedAmount decimal.Decimal  `json:"expectedAmount"`
	ReceivedAmount *decimal.Decimal `json:"receivedAmount,omitempty"`
	Variance       *decimal.Decimal `json:"variance,omitempty"`
	Status         SettlementStatus `json:"status"`
	TransactionIDs []string         `json:"transactionIDs"`
	ReceivedBy     *string          `json:"receivedBy,omitempty"`
	ReceivedAt     *time.Time       `json:"receivedAt,omitempty"`
	Note           string           `json:"note"`
	AuditFields
}

// ExpectedCash sums the transactions that count towards an employee's settlement:
// cash, completed and collected by employeeID. It returns the sum and the ids that were counted.
func ExpectedCash(employeeID string, txns []Transaction) (decimal.Decimal, []string) {
	total := decimal.Zero
	ids := make([]string, 0, len(txns))
	for i := range txns {
		t := &txns[i]
		if t.EmployeeID != employeeID || !t.IsSettleableCash() {
			continue
		}
		total = total.Add(t.Amount)
		ids = append(ids, t.TransactionID)
	}
	return total, ids
}

// StatusForVariance is received for an exact match, discrepancy otherwise.
func StatusForVariance(variance decimal.Decimal) SettlementStatus {
	if variance.IsZero() {
		return SettlementReceived
	}
	return SettlementDiscrepancy
}

// Resolve records the received amount, the variance against ExpectedAmount and the resulting status.
func (s *Settlement) Resolve(received decimal.Decimal, receiverID string, at time.Time) {
	variance := received.Sub(s.ExpectedAmount)
	s.ReceivedAmount = &received
	s.Variance = &variance
	s.Status = StatusForVariance(variance)
	s.ReceivedBy = &receiverID
	s.ReceivedAt = &at
	s.LastUpdatedAt = at
	s.LastUpdatedBy = receiverID
}
