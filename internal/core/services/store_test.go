package services_test

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/SscSPs/property_management_app/internal/apperrors"
	"github.com/SscSPs/property_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/property_management_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// memState is the table contents of memStore.
type memState struct {
	buildings     map[string]domain.Building
	houses        map[string]domain.House
	tenants       map[string]domain.Tenant
	payments      map[string]domain.Payment
	history       []domain.PaymentHistory
	confirmations map[string]domain.PaymentConfirmation
}

func (s memState) clone() memState {
	c := memState{
		buildings:     make(map[string]domain.Building, len(s.buildings)),
		houses:        make(map[string]domain.House, len(s.houses)),
		tenants:       make(map[string]domain.Tenant, len(s.tenants)),
		payments:      make(map[string]domain.Payment, len(s.payments)),
		history:       append([]domain.PaymentHistory(nil), s.history...),
		confirmations: make(map[string]domain.PaymentConfirmation, len(s.confirmations)),
	}
	for k, v := range s.buildings {
		c.buildings[k] = v
	}
	for k, v := range s.houses {
		c.houses[k] = v
	}
	for k, v := range s.tenants {
		c.tenants[k] = v
	}
	for k, v := range s.payments {
		c.payments[k] = v
	}
	for k, v := range s.confirmations {
		c.confirmations[k] = v
	}
	return c
}

// memStore is an in-memory record store with all-or-nothing transactions.
// It enforces the same unique keys as the database schema.
type memStore struct {
	memState
	snapshot *memState
	// failures makes the named operation return the given error.
	failures  map[string]error
	commits   int
	rollbacks int
}

func newMemStore() *memStore {
	return &memStore{
		memState: memState{}.clone(),
		failures: map[string]error{},
	}
}

func (m *memStore) provider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager:    m,
		BuildingRepo: m,
		HouseRepo:    m,
		TenantRepo:   m,
		PaymentRepo:  m,
	}
}

func (m *memStore) fail(op string) error {
	return m.failures[op]
}

// --- TransactionManager ---

func (m *memStore) Begin(ctx context.Context) (pgx.Tx, error) {
	if err := m.fail("Begin"); err != nil {
		return nil, err
	}
	snap := m.memState.clone()
	m.snapshot = &snap
	return nil, nil
}

func (m *memStore) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := m.fail("Commit"); err != nil {
		return err
	}
	m.snapshot = nil
	m.commits++
	return nil
}

func (m *memStore) Rollback(ctx context.Context, tx pgx.Tx) error {
	if m.snapshot != nil {
		m.memState = *m.snapshot
		m.snapshot = nil
		m.rollbacks++
	}
	return nil
}

// --- Buildings ---

func (m *memStore) FindBuildingByID(ctx context.Context, id string) (*domain.Building, error) {
	b, ok := m.buildings[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &b, nil
}

func (m *memStore) ListBuildings(ctx context.Context, limit, offset int) ([]domain.Building, error) {
	out := make([]domain.Building, 0, len(m.buildings))
	for _, b := range m.buildings {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memStore) SaveBuildingInTx(ctx context.Context, tx pgx.Tx, b domain.Building) error {
	m.buildings[b.BuildingID] = b
	return nil
}

func (m *memStore) FindBuildingByIDForUpdate(ctx context.Context, tx pgx.Tx, id string) (*domain.Building, error) {
	return m.FindBuildingByID(ctx, id)
}

func (m *memStore) UpdateBuildingInTx(ctx context.Context, tx pgx.Tx, b domain.Building) error {
	if err := m.fail("UpdateBuildingInTx"); err != nil {
		return err
	}
	if _, ok := m.buildings[b.BuildingID]; !ok {
		return apperrors.ErrNotFound
	}
	m.buildings[b.BuildingID] = b
	return nil
}

func (m *memStore) DeleteBuildingInTx(ctx context.Context, tx pgx.Tx, id string) error {
	if _, ok := m.buildings[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(m.buildings, id)
	for hid, h := range m.houses {
		if h.BuildingID == id {
			m.deleteHouse(hid)
		}
	}
	return nil
}

// --- Houses ---

func (m *memStore) withTenantCount(h domain.House) domain.House {
	h.TenantCount = m.activeTenants(h.HouseID, "")
	return h
}

func (m *memStore) FindHouseByID(ctx context.Context, id string) (*domain.House, error) {
	h, ok := m.houses[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	h = m.withTenantCount(h)
	return &h, nil
}

func (m *memStore) ListHouses(ctx context.Context, f portsrepo.HouseFilter) ([]domain.House, error) {
	var out []domain.House
	for _, h := range m.houses {
		if f.BuildingID != nil && h.BuildingID != *f.BuildingID {
			continue
		}
		if f.Occupied != nil && h.Occupied != *f.Occupied {
			continue
		}
		out = append(out, m.withTenantCount(h))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UnitNumber < out[j].UnitNumber })
	return out, nil
}

func (m *memStore) FindHouseByIDForUpdate(ctx context.Context, tx pgx.Tx, id string) (*domain.House, error) {
	return m.FindHouseByID(ctx, id)
}

func (m *memStore) ListHousesByBuildingInTx(ctx context.Context, tx pgx.Tx, buildingID string) ([]domain.House, error) {
	return m.ListHouses(ctx, portsrepo.HouseFilter{BuildingID: &buildingID})
}

func (m *memStore) SaveHouseInTx(ctx context.Context, tx pgx.Tx, h domain.House) error {
	if _, ok := m.buildings[h.BuildingID]; !ok {
		return apperrors.ErrNotFound
	}
	for _, other := range m.houses {
		if other.UnitNumber == h.UnitNumber {
			return apperrors.ErrDuplicate
		}
	}
	m.houses[h.HouseID] = h
	return nil
}

func (m *memStore) UpdateHouseInTx(ctx context.Context, tx pgx.Tx, h domain.House) error {
	if _, ok := m.houses[h.HouseID]; !ok {
		return apperrors.ErrNotFound
	}
	for id, other := range m.houses {
		if id != h.HouseID && other.UnitNumber == h.UnitNumber {
			return apperrors.ErrDuplicate
		}
	}
	h.TenantCount = 0
	m.houses[h.HouseID] = h
	return nil
}

func (m *memStore) DeleteHouseInTx(ctx context.Context, tx pgx.Tx, id string) error {
	if _, ok := m.houses[id]; !ok {
		return apperrors.ErrNotFound
	}
	m.deleteHouse(id)
	return nil
}

func (m *memStore) deleteHouse(id string) {
	delete(m.houses, id)
	for tid, t := range m.tenants {
		if t.HouseID == id {
			m.deleteTenant(tid)
		}
	}
}

// --- Tenants ---

func (m *memStore) activeTenants(houseID, exclude string) int {
	n := 0
	for _, t := range m.tenants {
		if t.HouseID == houseID && t.IsActive && t.TenantID != exclude {
			n++
		}
	}
	return n
}

func (m *memStore) FindTenantByID(ctx context.Context, id string) (*domain.Tenant, error) {
	t, ok := m.tenants[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &t, nil
}

func (m *memStore) FindTenantByPhone(ctx context.Context, phone string) (*domain.Tenant, error) {
	for _, t := range m.tenants {
		if t.Phone == phone {
			return &t, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (m *memStore) ListTenants(ctx context.Context, f portsrepo.TenantFilter) ([]domain.Tenant, error) {
	var out []domain.Tenant
	for _, t := range m.tenants {
		if f.IsActive != nil && t.IsActive != *f.IsActive {
			continue
		}
		if f.HouseID != nil && t.HouseID != *f.HouseID {
			continue
		}
		if f.Name != nil && !strings.Contains(strings.ToLower(t.Name), strings.ToLower(*f.Name)) {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if f.OrderBy == "-name" {
			return out[i].Name > out[j].Name
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (m *memStore) FindTenantByIDForUpdate(ctx context.Context, tx pgx.Tx, id string) (*domain.Tenant, error) {
	return m.FindTenantByID(ctx, id)
}

func (m *memStore) CountActiveTenantsInTx(ctx context.Context, tx pgx.Tx, houseID, exclude string) (int, error) {
	return m.activeTenants(houseID, exclude), nil
}

func (m *memStore) checkTenantKeys(t domain.Tenant) error {
	if _, ok := m.houses[t.HouseID]; !ok {
		return apperrors.ErrNotFound
	}
	for id, other := range m.tenants {
		if id != t.TenantID && (other.Phone == t.Phone || other.IDNumber == t.IDNumber) {
			return apperrors.ErrDuplicate
		}
	}
	return nil
}

func (m *memStore) SaveTenantInTx(ctx context.Context, tx pgx.Tx, t domain.Tenant) error {
	if err := m.checkTenantKeys(t); err != nil {
		return err
	}
	m.tenants[t.TenantID] = t
	return nil
}

func (m *memStore) UpdateTenantInTx(ctx context.Context, tx pgx.Tx, t domain.Tenant) error {
	current, ok := m.tenants[t.TenantID]
	if !ok {
		return apperrors.ErrNotFound
	}
	if err := m.checkTenantKeys(t); err != nil {
		return err
	}
	t.Balance = current.Balance
	m.tenants[t.TenantID] = t
	return nil
}

func (m *memStore) UpdateTenantBalanceInTx(ctx context.Context, tx pgx.Tx, id string, balance decimal.Decimal) error {
	t, ok := m.tenants[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	t.Balance = balance
	m.tenants[id] = t
	return nil
}

func (m *memStore) DeleteTenantInTx(ctx context.Context, tx pgx.Tx, id string) error {
	if _, ok := m.tenants[id]; !ok {
		return apperrors.ErrNotFound
	}
	m.deleteTenant(id)
	return nil
}

func (m *memStore) deleteTenant(id string) {
	delete(m.tenants, id)
	for pid, p := range m.payments {
		if p.TenantID == id {
			delete(m.payments, pid)
		}
	}
}

// --- Payments ---

func (m *memStore) FindPaymentByID(ctx context.Context, id string) (*domain.Payment, error) {
	p, ok := m.payments[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &p, nil
}

func (m *memStore) ListPayments(ctx context.Context, f portsrepo.PaymentFilter) ([]domain.Payment, *string, error) {
	var out []domain.Payment
	for _, p := range m.payments {
		if f.TenantID != nil && p.TenantID != *f.TenantID {
			continue
		}
		if f.Paid != nil && p.Paid != *f.Paid {
			continue
		}
		out = append(out, p)
	}
	sortByDueDate(out)
	return out, nil, nil
}

func (m *memStore) ListPaymentsByTenant(ctx context.Context, tenantID string) ([]domain.Payment, error) {
	out, _, err := m.ListPayments(ctx, portsrepo.PaymentFilter{TenantID: &tenantID})
	return out, err
}

func (m *memStore) FindPaymentByTenantMonth(ctx context.Context, tenantID string, month int) (*domain.Payment, error) {
	for _, p := range m.payments {
		if p.TenantID == tenantID && p.Month == month {
			return &p, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (m *memStore) ListPaymentHistory(ctx context.Context, paymentID string) ([]domain.PaymentHistory, error) {
	var out []domain.PaymentHistory
	for _, h := range m.history {
		if h.PaymentID == paymentID {
			out = append(out, h)
		}
	}
	return out, nil
}

func (m *memStore) FindConfirmation(ctx context.Context, ref string) (*domain.PaymentConfirmation, error) {
	c, ok := m.confirmations[ref]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &c, nil
}

func (m *memStore) FindPaymentByTenantMonthForUpdate(ctx context.Context, tx pgx.Tx, tenantID string, month int) (*domain.Payment, error) {
	return m.FindPaymentByTenantMonth(ctx, tenantID, month)
}

func (m *memStore) FindOldestUnpaidPaymentInTx(ctx context.Context, tx pgx.Tx, tenantID string) (*domain.Payment, error) {
	payments, _ := m.ListPaymentsByTenant(ctx, tenantID)
	var oldest *domain.Payment
	for i := range payments {
		p := payments[i]
		if p.Paid {
			continue
		}
		if oldest == nil || p.DueDate.Before(oldest.DueDate) {
			oldest = &p
		}
	}
	if oldest == nil {
		return nil, apperrors.ErrNotFound
	}
	return oldest, nil
}

func (m *memStore) ListPaymentsByTenantInTx(ctx context.Context, tx pgx.Tx, tenantID string) ([]domain.Payment, error) {
	return m.ListPaymentsByTenant(ctx, tenantID)
}

func (m *memStore) SavePaymentInTx(ctx context.Context, tx pgx.Tx, p domain.Payment) error {
	if _, ok := m.tenants[p.TenantID]; !ok {
		return apperrors.ErrNotFound
	}
	if _, err := m.FindPaymentByTenantMonth(ctx, p.TenantID, p.Month); err == nil {
		return apperrors.ErrDuplicate
	}
	m.payments[p.PaymentID] = p
	return nil
}

func (m *memStore) UpdatePaymentProgressInTx(ctx context.Context, tx pgx.Tx, p domain.Payment) error {
	if err := m.fail("UpdatePaymentProgressInTx"); err != nil {
		return err
	}
	if _, ok := m.payments[p.PaymentID]; !ok {
		return apperrors.ErrNotFound
	}
	m.payments[p.PaymentID] = p
	return nil
}

func (m *memStore) SavePaymentHistoryInTx(ctx context.Context, tx pgx.Tx, h domain.PaymentHistory) error {
	m.history = append(m.history, h)
	return nil
}

func (m *memStore) SaveConfirmationInTx(ctx context.Context, tx pgx.Tx, c domain.PaymentConfirmation) (bool, error) {
	if _, ok := m.confirmations[c.TransactionReference]; ok {
		return false, nil
	}
	m.confirmations[c.TransactionReference] = c
	return true, nil
}

func sortByDueDate(payments []domain.Payment) {
	sort.Slice(payments, func(i, j int) bool {
		if !payments[i].DueDate.Equal(payments[j].DueDate) {
			return payments[i].DueDate.After(payments[j].DueDate)
		}
		return payments[i].CreatedAt.After(payments[j].CreatedAt)
	})
}

// fixedClock pins the service clock.
func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
