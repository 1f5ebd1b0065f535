package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Shop        ShopSvcFacade
	Ledger      LedgerSvcFacade
	Transaction TransactionSvcFacade
	Invoice     InvoiceSvcFacade
	Settlement  SettlementSvcFacade
	Handover    HandoverSvcFacade
	Route       RouteSvcFacade
	Assignment  AssignmentSvcFacade
	Employee    EmployeeSvcFacade
	Reporting   ReportingService
}
