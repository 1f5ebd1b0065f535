package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/psbook/internal/core/domain"
	portsrepo "github.com/SscSPs/psbook/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/psbook/internal/core/ports/services"
	"github.com/SscSPs/psbook/internal/dto"
)

type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
}

// NewReportingService creates a new ReportingService.
func NewReportingService(reportingRepo portsrepo.ReportingRepository, loc *time.Location) portssvc.ReportingService {
	return &reportingService{
		BaseService:   newBaseService(loc),
		reportingRepo: reportingRepo,
	}
}

var _ portssvc.ReportingService = (*reportingService)(nil)

func (s *reportingService) GetDashboard(ctx context.Context, date string) (*dto.DashboardResponse, error) {
	if date == "" {
		date = s.Today()
	} else if _, err := domain.ParseDate(date); err != nil {
		return nil, validationError("%v", err)
	}

	summary, err := s.reportingRepo.GetDashboardSummary(ctx, date)
	if err != nil {
		s.LogError(ctx, err, "Failed to build dashboard summary", slog.String("date", date))
		return nil, wrapRepoError(err, "dashboard summary")
	}
	cash, err := s.reportingRepo.ListEmployeeCash(ctx, date)
	if err != nil {
		s.LogError(ctx, err, "Failed to list employee cash", slog.String("date", date))
		return nil, wrapRepoError(err, "employee cash")
	}
	if cash == nil {
		cash = []domain.EmployeeCashSummary{}
	}
	return &dto.DashboardResponse{Summary: *summary, EmployeeCash: cash}, nil
}
