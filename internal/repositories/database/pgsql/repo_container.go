package pgsql

import (
	portsrepo "github.com/SscSPs/psbook/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// newRepositories binds every entity repository to db. timezone is the IANA zone calendar
// days are evaluated in.
func newRepositories(db DBTX, timezone string) portsrepo.Repositories {
	return portsrepo.Repositories{
		Shops:        newPgxShopRepository(db),
		Ledger:       newPgxLedgerRepository(db),
		Transactions: newPgxTransactionRepository(db, timezone),
		Invoices:     newPgxInvoiceRepository(db),
		Settlements:  newPgxSettlementRepository(db),
		Employees:    newPgxEmployeeRepository(db),
		Routes:       newPgxRouteRepository(db),
		Assignments:  newPgxAssignmentRepository(db),
	}
}

// NewRepositoryProvider wires the pool-backed repositories, the unit of work and the reporting reader.
func NewRepositoryProvider(dbPool *pgxpool.Pool, timezone string) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		Repositories:  newRepositories(dbPool, timezone),
		UnitOfWork:    newPgxUnitOfWork(dbPool, timezone),
		ReportingRepo: newPgxReportingRepository(dbPool, timezone),
	}
}
