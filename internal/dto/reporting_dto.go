package dto

import "github.com/SscSPs/psbook/internal/core/domain"

// DashboardParams selects the business day to summarise.
type DashboardParams struct {
	Date string `form:"date" binding:"omitempty,calendar_date"` // Defaults to today
}

// DashboardResponse is the admin overview.
type DashboardResponse struct {
	Summary      domain.DashboardSummary      `json:"summary"`
	EmployeeCash []domain.EmployeeCashSummary `json:"employeeCash"`
}
