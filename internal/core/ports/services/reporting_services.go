package services

import (
	"context"

	"github.com/SscSPs/psbook/internal/dto"
)

// ReportingService builds the admin dashboard.
type ReportingService interface {
	// GetDashboard summarises date (YYYY-MM-DD); an empty date means today in the business time zone.
	GetDashboard(ctx context.Context, date string) (*dto.DashboardResponse, error)
}
