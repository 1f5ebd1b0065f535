package services_test

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/psbook/internal/apperrors"
	"github.com/SscSPs/psbook/internal/core/domain"
	portsrepo "github.com/SscSPs/psbook/internal/core/ports/repositories"
)

// memState is everything the in-memory store holds. Maps hold values so a shallow copy is a snapshot.
type memState struct {
	shops        map[string]domain.Shop
	ledger       []domain.BalanceAuditLog
	transactions map[string]domain.Transaction
	invoices     map[string]domain.Invoice
	settlements  map[string]domain.Settlement
	employees    map[string]domain.Employee
	routes       map[string]domain.Route
	assignments  map[string]domain.RouteAssignment
	seq          int64
}

func (s memState) clone() memState {
	out := s
	out.shops = cloneMap(s.shops)
	out.ledger = append([]domain.BalanceAuditLog(nil), s.ledger...)
	out.transactions = cloneMap(s.transactions)
	out.invoices = cloneMap(s.invoices)
	out.settlements = cloneMap(s.settlements)
	out.employees = cloneMap(s.employees)
	out.routes = cloneMap(s.routes)
	out.assignments = cloneMap(s.assignments)
	return out
}

func cloneMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// memStore implements every repository port plus a unit of work that restores a snapshot
// when the work function fails.
type memStore struct {
	mu    sync.Mutex
	state memState

	// failures injects errors by method name.
	failures map[string]error
	// failFor injects errors for a single id on SetNormalizedNames.
	failFor map[string]error
	// beforeVerify runs under the lock at the start of VerifyUnverifiedCash, standing in
	// for writes that commit between a handover read and its update.
	beforeVerify func(s *memState)
}

func newMemStore() *memStore {
	return &memStore{
		state: memState{
			shops:        map[string]domain.Shop{},
			transactions: map[string]domain.Transaction{},
			invoices:     map[string]domain.Invoice{},
			settlements:  map[string]domain.Settlement{},
			employees:    map[string]domain.Employee{},
			routes:       map[string]domain.Route{},
			assignments:  map[string]domain.RouteAssignment{},
		},
		failures: map[string]error{},
		failFor:  map[string]error{},
	}
}

func (m *memStore) repos() portsrepo.Repositories {
	return portsrepo.Repositories{
		Shops:        m,
		Ledger:       m,
		Transactions: m,
		Invoices:     m,
		Settlements:  m,
		Employees:    m,
		Routes:       m,
		Assignments:  m,
	}
}

func (m *memStore) WithinTransaction(ctx context.Context, fn portsrepo.TxFunc) error {
	m.mu.Lock()
	snapshot := m.state.clone()
	m.mu.Unlock()

	if err := fn(ctx, m.repos()); err != nil {
		m.mu.Lock()
		m.state = snapshot
		m.mu.Unlock()
		return err
	}
	return nil
}

func (m *memStore) fail(method string) error {
	return m.failures[method]
}

// --- seeding helpers ---

func (m *memStore) addShop(id string, balance string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.shops[id] = domain.Shop{ShopID: id, Name: "Shop " + id, CurrentBalance: decimal.RequireFromString(balance)}
}

func (m *memStore) addEmployee(e domain.Employee) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.employees[e.EmployeeID] = e
}

func (m *memStore) addTransaction(t domain.Transaction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.transactions[t.TransactionID] = t
}

func (m *memStore) addRoute(r domain.Route) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.routes[r.RouteID] = r
}

func (m *memStore) shop(id string) domain.Shop {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.shops[id]
}

func (m *memStore) ledgerFor(shopID string) []domain.BalanceAuditLog {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.BalanceAuditLog
	for _, e := range m.state.ledger {
		if e.ShopID == shopID {
			out = append(out, e)
		}
	}
	return out
}

func (m *memStore) transaction(id string) domain.Transaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.transactions[id]
}

func (m *memStore) transactionCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.state.transactions)
}

func notFound(kind, id string) error {
	return fmt.Errorf("%w: %s %s", apperrors.ErrNotFound, kind, id)
}

// --- shops ---

func (m *memStore) FindShopByID(_ context.Context, shopID string) (*domain.Shop, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.state.shops[shopID]
	if !ok {
		return nil, notFound("shop", shopID)
	}
	return &s, nil
}

func (m *memStore) ListShops(_ context.Context, filter portsrepo.ShopFilter) ([]domain.Shop, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Shop
	for _, s := range m.state.shops {
		if s.IsDeleted() && !filter.IncludeDeleted {
			continue
		}
		if filter.RouteID != "" && (s.RouteID == nil || *s.RouteID != filter.RouteID) {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ShopID < out[j].ShopID })
	return out, nil
}

func (m *memStore) SaveShop(_ context.Context, shop domain.Shop) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.shops[shop.ShopID] = shop
	return nil
}

func (m *memStore) UpdateShop(_ context.Context, shop domain.Shop) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.state.shops[shop.ShopID]
	if !ok {
		return notFound("shop", shop.ShopID)
	}
	shop.CurrentBalance = existing.CurrentBalance
	m.state.shops[shop.ShopID] = shop
	return nil
}

func (m *memStore) SetShopRoute(_ context.Context, shopID string, routeID *string, actor string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.state.shops[shopID]
	if !ok {
		return notFound("shop", shopID)
	}
	s.RouteID = routeID
	s.LastUpdatedBy = actor
	s.LastUpdatedAt = at
	m.state.shops[shopID] = s
	return nil
}

func (m *memStore) MarkShopDeleted(_ context.Context, shopID string, deletedAt time.Time, deletedBy string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.state.shops[shopID]
	if !ok || s.IsDeleted() {
		return notFound("shop", shopID)
	}
	s.DeletedAt = &deletedAt
	s.LastUpdatedBy = deletedBy
	m.state.shops[shopID] = s
	return nil
}

func (m *memStore) FindShopByIDForUpdate(_ context.Context, shopID string) (*domain.Shop, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.state.shops[shopID]
	if !ok || s.IsDeleted() {
		return nil, notFound("shop", shopID)
	}
	return &s, nil
}

func (m *memStore) UpdateShopBalance(_ context.Context, shopID string, balance decimal.Decimal, lastCollectionAt *time.Time, actor string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.state.shops[shopID]
	if !ok {
		return notFound("shop", shopID)
	}
	s.CurrentBalance = balance
	if lastCollectionAt != nil {
		s.LastCollectionAt = lastCollectionAt
	}
	s.LastUpdatedBy = actor
	s.LastUpdatedAt = at
	m.state.shops[shopID] = s
	return nil
}

// --- ledger ---

func (m *memStore) SaveBalanceAuditLog(_ context.Context, entry domain.BalanceAuditLog) error {
	if err := m.fail("SaveBalanceAuditLog"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.seq++
	entry.Sequence = m.state.seq
	m.state.ledger = append(m.state.ledger, entry)
	return nil
}

func (m *memStore) ListBalanceAuditLogs(_ context.Context, shopID string, limit int, cursor *portsrepo.LedgerCursor) ([]domain.BalanceAuditLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.BalanceAuditLog
	for i := len(m.state.ledger) - 1; i >= 0; i-- {
		e := m.state.ledger[i]
		if e.ShopID != shopID {
			continue
		}
		if cursor != nil && e.Sequence >= cursor.Sequence {
			continue
		}
		out = append(out, e)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *memStore) ListAllBalanceAuditLogs(_ context.Context, shopID string) ([]domain.BalanceAuditLog, error) {
	return m.ledgerFor(shopID), nil
}

// --- transactions ---

func (m *memStore) FindTransactionByID(_ context.Context, transactionID string) (*domain.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.state.transactions[transactionID]
	if !ok {
		return nil, notFound("transaction", transactionID)
	}
	return &t, nil
}

func (m *memStore) FindTransactionsByIDs(_ context.Context, transactionIDs []string) ([]domain.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Transaction
	for _, id := range transactionIDs {
		if t, ok := m.state.transactions[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *memStore) ListTransactions(_ context.Context, filter portsrepo.TransactionFilter) ([]domain.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Transaction
	for _, t := range m.state.transactions {
		if filter.EmployeeID != "" && t.EmployeeID != filter.EmployeeID {
			continue
		}
		if filter.ShopID != "" && t.ShopID != filter.ShopID {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (m *memStore) ListUnverifiedCash(_ context.Context, employeeID string) ([]domain.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Transaction
	for _, t := range m.state.transactions {
		if isUnverifiedCash(t, employeeID) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TransactionID < out[j].TransactionID })
	return out, nil
}

func (m *memStore) SumCompletedCash(_ context.Context, employeeID, date string) (decimal.Decimal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := decimal.Zero
	for _, t := range m.state.transactions {
		if t.EmployeeID == employeeID && t.IsSettleableCash() && domain.BusinessDate(t.CollectedAt, time.UTC) == date {
			total = total.Add(t.Amount)
		}
	}
	return total, nil
}

func (m *memStore) SaveTransaction(_ context.Context, txn domain.Transaction) error {
	if err := m.fail("SaveTransaction"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.transactions[txn.TransactionID] = txn
	return nil
}

func (m *memStore) FindTransactionByIDForUpdate(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	return m.FindTransactionByID(ctx, transactionID)
}

func (m *memStore) MarkTransactionReversed(_ context.Context, txn domain.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.state.transactions[txn.TransactionID]; !ok {
		return notFound("transaction", txn.TransactionID)
	}
	m.state.transactions[txn.TransactionID] = txn
	return nil
}

func isUnverifiedCash(t domain.Transaction, employeeID string) bool {
	return t.EmployeeID == employeeID && t.IsSettleableCash() && !t.IsVerified
}

func (m *memStore) VerifyUnverifiedCash(_ context.Context, employeeID, verifiedBy string, at time.Time) ([]domain.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.beforeVerify != nil {
		m.beforeVerify(&m.state)
	}
	var out []domain.Transaction
	for id, t := range m.state.transactions {
		if !isUnverifiedCash(t, employeeID) {
			continue
		}
		t.IsVerified = true
		t.VerifiedBy = &verifiedBy
		t.VerifiedAt = &at
		m.state.transactions[id] = t
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TransactionID < out[j].TransactionID })
	return out, nil
}

// --- invoices ---

func (m *memStore) SaveInvoice(_ context.Context, invoice domain.Invoice) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.invoices[invoice.InvoiceID] = invoice
	return nil
}

func (m *memStore) FindInvoiceByID(_ context.Context, invoiceID string) (*domain.Invoice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	inv, ok := m.state.invoices[invoiceID]
	if !ok {
		return nil, notFound("invoice", invoiceID)
	}
	return &inv, nil
}

func (m *memStore) FindInvoiceByNumber(_ context.Context, invoiceNumber string) (*domain.Invoice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	want := domain.NormalizeInvoiceNumber(invoiceNumber)
	for _, inv := range m.state.invoices {
		if domain.NormalizeInvoiceNumber(inv.InvoiceNumber) == want {
			return &inv, nil
		}
	}
	return nil, notFound("invoice", invoiceNumber)
}

func (m *memStore) ListInvoices(_ context.Context, filter portsrepo.InvoiceFilter) ([]domain.Invoice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Invoice
	for _, inv := range m.state.invoices {
		if filter.ShopID == "" || inv.ShopID == filter.ShopID {
			out = append(out, inv)
		}
	}
	return out, nil
}

// --- settlements ---

func (m *memStore) SaveSettlement(_ context.Context, settlement domain.Settlement) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.settlements[settlement.SettlementID] = settlement
	return nil
}

func (m *memStore) FindSettlementByID(_ context.Context, settlementID string) (*domain.Settlement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.state.settlements[settlementID]
	if !ok {
		return nil, notFound("settlement", settlementID)
	}
	return &s, nil
}

func (m *memStore) FindSettlementByIDForUpdate(ctx context.Context, settlementID string) (*domain.Settlement, error) {
	return m.FindSettlementByID(ctx, settlementID)
}

func (m *memStore) UpdateSettlementResolution(_ context.Context, settlement domain.Settlement) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.state.settlements[settlement.SettlementID]; !ok {
		return notFound("settlement", settlement.SettlementID)
	}
	m.state.settlements[settlement.SettlementID] = settlement
	return nil
}

func (m *memStore) ListSettlements(_ context.Context, filter portsrepo.SettlementFilter) ([]domain.Settlement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Settlement
	for _, s := range m.state.settlements {
		if filter.EmployeeID != "" && s.EmployeeID != filter.EmployeeID {
			continue
		}
		if filter.Status != "" && s.Status != filter.Status {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

// --- employees ---

func (m *memStore) FindEmployeeByID(_ context.Context, employeeID string) (*domain.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.state.employees[employeeID]
	if !ok || e.DeletedAt != nil {
		return nil, notFound("employee", employeeID)
	}
	return &e, nil
}

func (m *memStore) FindEmployeeByEmail(_ context.Context, email string) (*domain.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.state.employees {
		if e.Email == email && e.DeletedAt == nil {
			return &e, nil
		}
	}
	return nil, notFound("employee", email)
}

func (m *memStore) FindEmployeeByExternalID(_ context.Context, externalID string) (*domain.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.state.employees {
		if e.ExternalID != nil && *e.ExternalID == externalID && e.DeletedAt == nil {
			return &e, nil
		}
	}
	return nil, notFound("employee", externalID)
}

func (m *memStore) ListEmployees(_ context.Context, _ portsrepo.EmployeeFilter) ([]domain.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Employee
	for _, e := range m.state.employees {
		out = append(out, e)
	}
	return out, nil
}

func (m *memStore) SaveEmployee(_ context.Context, employee domain.Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.employees[employee.EmployeeID] = employee
	return nil
}

func (m *memStore) UpdateEmployee(_ context.Context, employee domain.Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.employees[employee.EmployeeID] = employee
	return nil
}

func (m *memStore) SetExternalID(_ context.Context, employeeID, externalID string, at time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.state.employees[employeeID]
	if !ok || e.IsLinked() {
		return false, nil
	}
	e.ExternalID = &externalID
	e.LastUpdatedAt = at
	e.LastUpdatedBy = domain.SystemActor
	m.state.employees[employeeID] = e
	return true, nil
}

func (m *memStore) MarkEmployeeDeleted(_ context.Context, employeeID string, deletedAt time.Time, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.state.employees[employeeID]
	if !ok {
		return notFound("employee", employeeID)
	}
	e.DeletedAt = &deletedAt
	m.state.employees[employeeID] = e
	return nil
}

// --- routes ---

func (m *memStore) FindRouteByID(_ context.Context, routeID string) (*domain.Route, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.state.routes[routeID]
	if !ok || r.DeletedAt != nil {
		return nil, notFound("route", routeID)
	}
	return &r, nil
}

func (m *memStore) ListRoutes(_ context.Context, includeInactive bool) ([]domain.Route, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Route
	for _, r := range m.state.routes {
		if r.DeletedAt == nil && (includeInactive || r.IsActive) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memStore) findRoute(match func(domain.Route) bool) (*domain.Route, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.state.routes {
		if r.DeletedAt == nil && match(r) {
			return &r, nil
		}
	}
	return nil, notFound("route", "")
}

func (m *memStore) FindRouteByNameLower(_ context.Context, nameLower, excludeID string) (*domain.Route, error) {
	return m.findRoute(func(r domain.Route) bool {
		return r.RouteID != excludeID && r.NameLower != nil && *r.NameLower == nameLower
	})
}

func (m *memStore) FindRouteByCodeLower(_ context.Context, codeLower, excludeID string) (*domain.Route, error) {
	return m.findRoute(func(r domain.Route) bool {
		return r.RouteID != excludeID && r.CodeLower != nil && *r.CodeLower == codeLower
	})
}

func (m *memStore) FindLegacyRouteByName(_ context.Context, nameLower, excludeID string) (*domain.Route, error) {
	return m.findRoute(func(r domain.Route) bool {
		return r.RouteID != excludeID && r.NameLower == nil && strings.ToLower(strings.TrimSpace(r.Name)) == nameLower
	})
}

func (m *memStore) FindLegacyRouteByCode(_ context.Context, codeLower, excludeID string) (*domain.Route, error) {
	return m.findRoute(func(r domain.Route) bool {
		return r.RouteID != excludeID && r.CodeLower == nil && strings.ToLower(strings.TrimSpace(r.Code)) == codeLower
	})
}

func (m *memStore) ListRoutesNeedingBackfill(_ context.Context, limit int) ([]domain.Route, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Route
	for _, r := range m.state.routes {
		if r.NeedsBackfill() {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RouteID < out[j].RouteID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memStore) SaveRoute(_ context.Context, route domain.Route) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.routes[route.RouteID] = route
	return nil
}

func (m *memStore) UpdateRoute(_ context.Context, route domain.Route) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.routes[route.RouteID] = route
	return nil
}

func (m *memStore) SetNormalizedNames(_ context.Context, routeID, nameLower, codeLower string) error {
	if err := m.failFor[routeID]; err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.state.routes[routeID]
	if !ok {
		return notFound("route", routeID)
	}
	r.NameLower = &nameLower
	r.CodeLower = &codeLower
	m.state.routes[routeID] = r
	return nil
}

func (m *memStore) MarkRouteDeleted(_ context.Context, routeID string, deletedAt time.Time, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.state.routes[routeID]
	if !ok {
		return notFound("route", routeID)
	}
	r.DeletedAt = &deletedAt
	m.state.routes[routeID] = r
	return nil
}

// --- assignments ---

func (m *memStore) SaveAssignment(_ context.Context, assignment domain.RouteAssignment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.assignments[assignment.AssignmentID] = assignment
	return nil
}

func (m *memStore) FindAssignmentByID(_ context.Context, assignmentID string) (*domain.RouteAssignment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.state.assignments[assignmentID]
	if !ok {
		return nil, notFound("assignment", assignmentID)
	}
	return &a, nil
}

func (m *memStore) FindAssignmentByIDForUpdate(ctx context.Context, assignmentID string) (*domain.RouteAssignment, error) {
	return m.FindAssignmentByID(ctx, assignmentID)
}

func (m *memStore) FindActiveAssignment(_ context.Context, employeeID, date string) (*domain.RouteAssignment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.state.assignments {
		if a.EmployeeID == employeeID && a.Date == date && a.Status == domain.AssignmentActive {
			return &a, nil
		}
	}
	return nil, notFound("assignment", employeeID+"/"+date)
}

func (m *memStore) FindAssignmentForEmployeeOnDate(ctx context.Context, employeeID, date string) (*domain.RouteAssignment, error) {
	if a, err := m.FindActiveAssignment(ctx, employeeID, date); err == nil {
		return a, nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var latest *domain.RouteAssignment
	for _, a := range m.state.assignments {
		if a.EmployeeID != employeeID || a.Date != date {
			continue
		}
		if latest == nil || a.CreatedAt.After(latest.CreatedAt) {
			a := a
			latest = &a
		}
	}
	if latest == nil {
		return nil, notFound("assignment", employeeID+"/"+date)
	}
	return latest, nil
}

func (m *memStore) ListAssignments(_ context.Context, filter portsrepo.AssignmentFilter) ([]domain.RouteAssignment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.RouteAssignment
	for _, a := range m.state.assignments {
		if filter.EmployeeID != "" && a.EmployeeID != filter.EmployeeID {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (m *memStore) UpdateAssignmentStatus(_ context.Context, assignment domain.RouteAssignment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.assignments[assignment.AssignmentID] = assignment
	return nil
}

var (
	_ portsrepo.ShopRepositoryFacade        = (*memStore)(nil)
	_ portsrepo.LedgerRepositoryFacade      = (*memStore)(nil)
	_ portsrepo.TransactionRepositoryFacade = (*memStore)(nil)
	_ portsrepo.InvoiceRepositoryFacade     = (*memStore)(nil)
	_ portsrepo.SettlementRepositoryFacade  = (*memStore)(nil)
	_ portsrepo.EmployeeRepositoryFacade    = (*memStore)(nil)
	_ portsrepo.RouteRepositoryFacade       = (*memStore)(nil)
	_ portsrepo.AssignmentRepositoryFacade  = (*memStore)(nil)
	_ portsrepo.UnitOfWork                  = (*memStore)(nil)
)
