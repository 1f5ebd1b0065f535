package repositories

import (
	"context"

	"github.com/SscSPs/psbook/internal/core/domain"
)

// ReportingRepository reads aggregates for the admin dashboard.
type ReportingRepository interface {
	// GetDashboardSummary aggregates figures for date (YYYY-MM-DD, business time zone).
	GetDashboardSummary(ctx context.Context, date string) (*domain.DashboardSummary, error)
	// ListEmployeeCash reports every active employee's cash position on date.
	ListEmployeeCash(ctx context.Context, date string) ([]domain.EmployeeCashSummary, error)
}
