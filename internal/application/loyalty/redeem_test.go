package loyalty_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ksalazar-dev/salon-api/internal/application/dto"
	"github.com/ksalazar-dev/salon-api/internal/application/loyalty"
	"github.com/ksalazar-dev/salon-api/internal/domain"
	"github.com/ksalazar-dev/salon-api/internal/domain/entity"
	"github.com/ksalazar-dev/salon-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria: el ledger es append-only y el saldo se deriva sumando.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	entries []*entity.PointsEntry
	audits  []*entity.AuditEntry
}

func (s *memStore) clone() *memStore {
	c := &memStore{}
	c.entries = append(c.entries, s.entries...)
	c.audits = append(c.audits, s.audits...)
	return c
}

type memPointsRepo struct{ store *memStore }

func (r *memPointsRepo) Create(_ context.Context, entry *entity.PointsEntry) error {
	r.store.entries = append(r.store.entries, entry)
	return nil
}
func (r *memPointsRepo) ListByCustomer(_ context.Context, customerID string, limit, offset int) ([]*entity.PointsEntry, error) {
	var out []*entity.PointsEntry
	for _, e := range r.store.entries {
		if e.CustomerID == customerID {
			out = append(out, e)
		}
	}
	return out, nil
}
func (r *memPointsRepo) Balance(_ context.Context, customerID string) (decimal.Decimal, error) {
	balance := decimal.Zero
	for _, e := range r.store.entries {
		if e.CustomerID == customerID {
			balance = balance.Add(e.Signed())
		}
	}
	return balance, nil
}
func (r *memPointsRepo) BalanceForUpdate(ctx context.Context, customerID string) (decimal.Decimal, error) {
	return r.Balance(ctx, customerID)
}

type memAuditRepo struct{ store *memStore }

func (r *memAuditRepo) Create(_ context.Context, entry *entity.AuditEntry) error {
	r.store.audits = append(r.store.audits, entry)
	return nil
}
func (r *memAuditRepo) List(_ context.Context, branchID, entityName string, limit, offset int) ([]*entity.AuditEntry, error) {
	return r.store.audits, nil
}

type memCustomerRepo struct{ customers map[string]*entity.Customer }

func (r *memCustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	r.customers[c.ID] = c
	return nil
}
func (r *memCustomerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	return r.customers[id], nil
}
func (r *memCustomerRepo) GetByCedula(context.Context, string, string) (*entity.Customer, error) {
	return nil, nil
}
func (r *memCustomerRepo) ListByBranch(context.Context, string, int, int) ([]*entity.Customer, error) {
	return nil, nil
}
func (r *memCustomerRepo) Update(context.Context, *entity.Customer) error { return nil }
func (r *memCustomerRepo) Delete(context.Context, string) error           { return nil }

type fakeTxRunner struct {
	store     *memStore
	rollbacks int
}

func (f *fakeTxRunner) RunLoyalty(ctx context.Context, fn func(
	pointsRepo repository.PointsRepository,
	auditRepo repository.AuditRepository,
) error) error {
	snapshot := f.store.clone()
	err := fn(&memPointsRepo{store: f.store}, &memAuditRepo{store: f.store})
	if err != nil {
		*f.store = *snapshot
		f.rollbacks++
		return err
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Harness: cliente cli-1 en suc-1 con 100 puntos acreditados.
// ──────────────────────────────────────────────────────────────────────────────

func newHarness() (*loyalty.RedeemUseCase, *memStore, *fakeTxRunner) {
	store := &memStore{entries: []*entity.PointsEntry{
		{ID: "p-1", CustomerID: "cli-1", BranchID: "suc-1", Type: entity.PointsEarn, Amount: decimal.NewFromInt(100)},
	}}
	customers := &memCustomerRepo{customers: map[string]*entity.Customer{
		"cli-1": {ID: "cli-1", BranchID: "suc-1", Name: "Laura Pérez", Cedula: "1020304050"},
	}}
	runner := &fakeTxRunner{store: store}
	uc := loyalty.NewRedeemUseCase(runner, customers, &memPointsRepo{store: store})
	return uc, store, runner
}

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// Canje normal: descuenta del saldo y audita el movimiento.
func TestRedeem_CanjeNormal(t *testing.T) {
	uc, store, _ := newHarness()

	res, err := uc.Redeem(context.Background(), "cli-1", "suc-1", "user-1", dto.RedeemPointsRequest{
		Amount: d(40), Reason: "descuento manicure",
	})
	require.NoError(t, err)
	assert.True(t, res.Balance.Equal(d(60)), "100 - 40 = 60")
	assert.True(t, res.Redeemed.Equal(d(40)))

	require.Len(t, store.entries, 2)
	assert.Equal(t, entity.PointsRedeem, store.entries[1].Type)
	require.Len(t, store.audits, 1)
	assert.Equal(t, entity.AuditActionRedeemed, store.audits[0].Action)
}

// Canje mayor al saldo: falla con ErrInsufficientPoints y no escribe nada.
func TestRedeem_SaldoInsuficiente(t *testing.T) {
	uc, store, runner := newHarness()

	_, err := uc.Redeem(context.Background(), "cli-1", "suc-1", "user-1", dto.RedeemPointsRequest{
		Amount: d(150),
	})
	require.ErrorIs(t, err, domain.ErrInsufficientPoints)
	assert.Len(t, store.entries, 1, "el ledger no debe cambiar")
	assert.Empty(t, store.audits)
	assert.Equal(t, 1, runner.rollbacks)
}

// Canje exacto del saldo completo: permitido, deja el saldo en cero.
func TestRedeem_SaldoExacto(t *testing.T) {
	uc, _, _ := newHarness()

	res, err := uc.Redeem(context.Background(), "cli-1", "suc-1", "user-1", dto.RedeemPointsRequest{
		Amount: d(100),
	})
	require.NoError(t, err)
	assert.True(t, res.Balance.IsZero())
}

// Cliente de otra sucursal → ErrBranchMismatch.
func TestRedeem_OtraSucursal(t *testing.T) {
	uc, _, runner := newHarness()

	_, err := uc.Redeem(context.Background(), "cli-1", "suc-OTRA", "user-1", dto.RedeemPointsRequest{
		Amount: d(10),
	})
	require.ErrorIs(t, err, domain.ErrBranchMismatch)
	assert.Equal(t, 0, runner.rollbacks)
}

// Cliente inexistente → ErrNotFound.
func TestRedeem_ClienteInexistente(t *testing.T) {
	uc, _, _ := newHarness()

	_, err := uc.Redeem(context.Background(), "cli-fantasma", "suc-1", "user-1", dto.RedeemPointsRequest{
		Amount: d(10),
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

// Monto no positivo es inválido.
func TestRedeem_MontoInvalido(t *testing.T) {
	uc, _, _ := newHarness()

	_, err := uc.Redeem(context.Background(), "cli-1", "suc-1", "user-1", dto.RedeemPointsRequest{
		Amount: d(0),
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Statement: saldo derivado del ledger más historial.
func TestStatement(t *testing.T) {
	uc, store, _ := newHarness()
	store.entries = append(store.entries, &entity.PointsEntry{
		ID: "p-2", CustomerID: "cli-1", BranchID: "suc-1", Type: entity.PointsRedeem, Amount: d(30),
	})

	res, err := uc.Statement(context.Background(), "cli-1", "suc-1", 20, 0)
	require.NoError(t, err)
	assert.True(t, res.Balance.Equal(d(70)), "100 earn - 30 redeem = 70")
	assert.Len(t, res.Entries, 2)
}
