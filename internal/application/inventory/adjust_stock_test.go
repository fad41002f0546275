package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ksalazar-dev/salon-api/internal/application/dto"
	"github.com/ksalazar-dev/salon-api/internal/application/inventory"
	"github.com/ksalazar-dev/salon-api/internal/domain"
	"github.com/ksalazar-dev/salon-api/internal/domain/entity"
	"github.com/ksalazar-dev/salon-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	stocks map[string]*entity.Stock // clave: branch|material
	audits []*entity.AuditEntry
}

func (s *memStore) clone() *memStore {
	c := &memStore{stocks: make(map[string]*entity.Stock, len(s.stocks))}
	for k, v := range s.stocks {
		cp := *v
		c.stocks[k] = &cp
	}
	c.audits = append(c.audits, s.audits...)
	return c
}

type memStockRepo struct{ store *memStore }

func stockKey(branchID, materialID string) string { return branchID + "|" + materialID }

func (r *memStockRepo) Get(_ context.Context, branchID, materialID string) (*entity.Stock, error) {
	return r.store.stocks[stockKey(branchID, materialID)], nil
}
func (r *memStockRepo) GetForUpdate(ctx context.Context, branchID, materialID string) (*entity.Stock, error) {
	return r.Get(ctx, branchID, materialID)
}
func (r *memStockRepo) Upsert(_ context.Context, stock *entity.Stock) error {
	cp := *stock
	r.store.stocks[stockKey(stock.BranchID, stock.MaterialID)] = &cp
	return nil
}
func (r *memStockRepo) ListByBranch(_ context.Context, branchID string, limit, offset int) ([]*entity.Stock, error) {
	var out []*entity.Stock
	for _, s := range r.store.stocks {
		if s.BranchID == branchID {
			out = append(out, s)
		}
	}
	return out, nil
}
func (r *memStockRepo) ListBelowMinimum(_ context.Context, branchID string) ([]*entity.Stock, error) {
	var out []*entity.Stock
	for _, s := range r.store.stocks {
		if s.BranchID == branchID && s.BelowMinimum() {
			out = append(out, s)
		}
	}
	return out, nil
}

type memAuditRepo struct{ store *memStore }

func (r *memAuditRepo) Create(_ context.Context, entry *entity.AuditEntry) error {
	r.store.audits = append(r.store.audits, entry)
	return nil
}
func (r *memAuditRepo) List(_ context.Context, branchID, entityName string, limit, offset int) ([]*entity.AuditEntry, error) {
	return r.store.audits, nil
}

type memMaterialRepo struct{ materials map[string]*entity.Material }

func (r *memMaterialRepo) Create(_ context.Context, m *entity.Material) error {
	r.materials[m.ID] = m
	return nil
}
func (r *memMaterialRepo) GetByID(_ context.Context, id string) (*entity.Material, error) {
	return r.materials[id], nil
}
func (r *memMaterialRepo) List(context.Context, int, int) ([]*entity.Material, error) { return nil, nil }
func (r *memMaterialRepo) Update(context.Context, *entity.Material) error { return nil }
func (r *memMaterialRepo) Delete(context.Context, string) error           { return nil }

// fakeTxRunner simula la transacción con snapshot + restore en fallo.
type fakeTxRunner struct {
	store     *memStore
	rollbacks int
}

func (f *fakeTxRunner) RunStock(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	auditRepo repository.AuditRepository,
) error) error {
	snapshot := f.store.clone()
	err := fn(&memStockRepo{store: f.store}, &memAuditRepo{store: f.store})
	if err != nil {
		*f.store = *snapshot
		f.rollbacks++
		return err
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Harness
// ──────────────────────────────────────────────────────────────────────────────

func newHarness() (*inventory.AdjustStockUseCase, *memStore, *fakeTxRunner) {
	store := &memStore{stocks: map[string]*entity.Stock{
		"suc-1|mat-1": {BranchID: "suc-1", MaterialID: "mat-1", Quantity: decimal.NewFromInt(50), Minimum: decimal.NewFromInt(10)},
	}}
	materials := &memMaterialRepo{materials: map[string]*entity.Material{
		"mat-1": {ID: "mat-1", Name: "Tinte 7.1", Unit: "ml"},
		"mat-2": {ID: "mat-2", Name: "Esmalte rojo", Unit: "unidad"},
	}}
	runner := &fakeTxRunner{store: store}
	uc := inventory.NewAdjustStockUseCase(runner, materials, &memStockRepo{store: store})
	return uc, store, runner
}

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// Reposición normal: el delta positivo se suma y queda auditado.
func TestAdjust_Reposicion(t *testing.T) {
	uc, store, _ := newHarness()

	res, err := uc.Adjust(context.Background(), "suc-1", "user-1", dto.AdjustStockRequest{
		MaterialID: "mat-1",
		Delta:      d(25),
		Reason:     "compra semanal",
	})
	require.NoError(t, err)
	assert.True(t, res.Quantity.Equal(d(75)), "50 + 25 = 75")
	require.Len(t, store.audits, 1)
	assert.Equal(t, entity.AuditActionAdjusted, store.audits[0].Action)
}

// Descuento que dejaría la cantidad negativa: falla y no escribe nada.
func TestAdjust_DescuentoBajoCero_Falla(t *testing.T) {
	uc, store, runner := newHarness()

	_, err := uc.Adjust(context.Background(), "suc-1", "user-1", dto.AdjustStockRequest{
		MaterialID: "mat-1",
		Delta:      d(-60),
		Reason:     "merma",
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, store.stocks["suc-1|mat-1"].Quantity.Equal(d(50)), "la existencia no debe cambiar")
	assert.Empty(t, store.audits, "un ajuste fallido no se audita")
	assert.Equal(t, 1, runner.rollbacks)
}

// Primera reposición de un material sin registro: crea la existencia desde cero.
func TestAdjust_PrimeraReposicion(t *testing.T) {
	uc, store, _ := newHarness()

	minimum := d(5)
	res, err := uc.Adjust(context.Background(), "suc-1", "user-1", dto.AdjustStockRequest{
		MaterialID: "mat-2",
		Delta:      d(30),
		Minimum:    &minimum,
		Reason:     "alta de producto",
	})
	require.NoError(t, err)
	assert.True(t, res.Quantity.Equal(d(30)))
	assert.True(t, res.Minimum.Equal(d(5)))
	require.NotNil(t, store.stocks["suc-1|mat-2"])
}

// Material inexistente en el catálogo → ErrNotFound sin tocar existencias.
func TestAdjust_MaterialInexistente(t *testing.T) {
	uc, _, runner := newHarness()

	_, err := uc.Adjust(context.Background(), "suc-1", "user-1", dto.AdjustStockRequest{
		MaterialID: "mat-fantasma",
		Delta:      d(10),
		Reason:     "compra",
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 0, runner.rollbacks, "no debe llegarse a abrir transacción")
}

// Reason vacío es inválido: el ajuste siempre deja rastro del motivo.
func TestAdjust_SinMotivo_Falla(t *testing.T) {
	uc, _, _ := newHarness()

	_, err := uc.Adjust(context.Background(), "suc-1", "user-1", dto.AdjustStockRequest{
		MaterialID: "mat-1",
		Delta:      d(10),
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ListBelowMinimum solo devuelve lo que está en o bajo el umbral.
func TestListBelowMinimum(t *testing.T) {
	uc, store, _ := newHarness()
	store.stocks["suc-1|mat-2"] = &entity.Stock{
		BranchID: "suc-1", MaterialID: "mat-2", Quantity: d(3), Minimum: d(5),
	}

	items, err := uc.ListBelowMinimum(context.Background(), "suc-1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "mat-2", items[0].MaterialID)
	assert.True(t, items[0].BelowMinimum)
}
