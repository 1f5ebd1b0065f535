package services

import (
	portsrepo "github.com/SscSPs/psbook/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/psbook/internal/core/ports/services"
	"github.com/SscSPs/psbook/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// invitations may be nil when the auth provider's API key is not configured.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, invitations portssvc.InvitationSender) *portssvc.ServiceContainer {
	loc := cfg.BusinessLocation

	return &portssvc.ServiceContainer{
		Shop:        NewShopService(repos.Shops, repos.Routes, cfg.DefaultPhoneRegion),
		Ledger:      NewLedgerService(repos.Repositories, repos.UnitOfWork),
		Transaction: NewTransactionService(repos.Repositories, repos.UnitOfWork, loc),
		Invoice:     NewInvoiceService(repos.Repositories, repos.UnitOfWork, loc),
		Settlement:  NewSettlementService(repos.Repositories, repos.UnitOfWork),
		Handover:    NewHandoverService(repos.Repositories, repos.UnitOfWork),
		Route:       NewRouteService(repos.Routes, repos.Shops),
		Assignment:  NewAssignmentService(repos.Repositories, repos.UnitOfWork),
		Employee:    NewEmployeeService(repos.Employees, invitations, cfg.DefaultPhoneRegion),
		Reporting:   NewReportingService(repos.ReportingRepo, loc),
	}
}
