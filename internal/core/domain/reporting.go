package domain

import "github.com/shopspring/decimal"

// DashboardSummary is the admin overview for one business day.
type DashboardSummary struct {
	Date                   string                          `json:"date"`
	ActiveShops            int                             `json:"activeShops"`
	TotalOutstanding       decimal.Decimal                 `json:"totalOutstanding"`
	CollectedToday         decimal.Decimal                 `json:"collectedToday"`
	CollectedTodayByMode   map[PaymentMode]decimal.Decimal `json:"collectedTodayByMode"`
	InvoicedToday          decimal.Decimal                 `json:"invoicedToday"`
	UnverifiedCash         decimal.Decimal                 `json:"unverifiedCash"`
	PendingSettlements     int                             `json:"pendingSettlements"`
	ActiveAssignmentsToday int                             `json:"activeAssignmentsToday"`
}

// EmployeeCashSummary is one employee's cash position.
type EmployeeCashSummary struct {
	EmployeeID     string          `json:"employeeID"`
	EmployeeName   string          `json:"employeeName"`
	CashInHand     decimal.Decimal `json:"cashInHand"`     // today's completed cash
	UnverifiedCash decimal.Decimal `json:"unverifiedCash"` // all completed cash not yet handed over
}
