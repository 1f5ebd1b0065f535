package repositories

// Repositories groups the entity repositories. Outside a unit of work they run against the
// connection pool; inside one they share its transaction.
type Repositories struct {
	Shops        ShopRepositoryFacade
	Ledger       LedgerRepositoryFacade
	Transactions TransactionRepositoryFacade
	Invoices     InvoiceRepositoryFacade
	Settlements  SettlementRepositoryFacade
	Employees    EmployeeRepositoryFacade
	Routes       RouteRepositoryFacade
	Assignments  AssignmentRepositoryFacade
}

// RepositoryProvider holds everything the service container needs from the persistence layer.
type RepositoryProvider struct {
	Repositories
	UnitOfWork    UnitOfWork
	ReportingRepo ReportingRepository
}
