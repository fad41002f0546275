package appointment_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appt "github.com/ksalazar-dev/salon-api/internal/application/appointment"
	"github.com/ksalazar-dev/salon-api/internal/domain"
	"github.com/ksalazar-dev/salon-api/internal/domain/entity"
	"github.com/ksalazar-dev/salon-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
//
// memStore simula la base de datos; fakeTxRunner simula la transacción tomando
// un snapshot del estado antes de ejecutar el callback y restaurándolo si el
// callback falla (rollback). Así los tests verifican atomicidad de verdad:
// escrituras parciales de un cierre fallido nunca quedan visibles.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	appts       map[string]*entity.Appointment
	stocks      map[string]*entity.Stock // clave: branch|material
	points      []*entity.PointsEntry
	commissions []*entity.CommissionEntry
	audits      []*entity.AuditEntry
}

func newMemStore() *memStore {
	return &memStore{
		appts:  make(map[string]*entity.Appointment),
		stocks: make(map[string]*entity.Stock),
	}
}

func stockKey(branchID, materialID string) string { return branchID + "|" + materialID }

func (s *memStore) clone() *memStore {
	c := newMemStore()
	for k, v := range s.appts {
		cp := *v
		c.appts[k] = &cp
	}
	for k, v := range s.stocks {
		cp := *v
		c.stocks[k] = &cp
	}
	c.points = append([]*entity.PointsEntry(nil), s.points...)
	c.commissions = append([]*entity.CommissionEntry(nil), s.commissions...)
	c.audits = append([]*entity.AuditEntry(nil), s.audits...)
	return c
}

type memApptRepo struct{ s *memStore }

func (r *memApptRepo) Create(_ context.Context, a *entity.Appointment) error {
	cp := *a
	r.s.appts[a.ID] = &cp
	return nil
}

func (r *memApptRepo) GetByID(_ context.Context, id string) (*entity.Appointment, error) {
	a, ok := r.s.appts[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (r *memApptRepo) GetForUpdate(ctx context.Context, id string) (*entity.Appointment, error) {
	return r.GetByID(ctx, id)
}

func (r *memApptRepo) ListByBranch(context.Context, string, *time.Time, *time.Time, int, int) ([]*entity.Appointment, error) {
	return nil, nil
}

func (r *memApptRepo) Update(_ context.Context, a *entity.Appointment) error {
	cp := *a
	r.s.appts[a.ID] = &cp
	return nil
}

func (r *memApptRepo) UpdateState(_ context.Context, id, state string) error {
	a, ok := r.s.appts[id]
	if !ok {
		return domain.ErrNotFound
	}
	a.State = state
	return nil
}

type memStockRepo struct{ s *memStore }

func (r *memStockRepo) Get(_ context.Context, branchID, materialID string) (*entity.Stock, error) {
	st, ok := r.s.stocks[stockKey(branchID, materialID)]
	if !ok {
		return nil, nil
	}
	cp := *st
	return &cp, nil
}

func (r *memStockRepo) GetForUpdate(ctx context.Context, branchID, materialID string) (*entity.Stock, error) {
	return r.Get(ctx, branchID, materialID)
}

func (r *memStockRepo) Upsert(_ context.Context, st *entity.Stock) error {
	cp := *st
	r.s.stocks[stockKey(st.BranchID, st.MaterialID)] = &cp
	return nil
}

func (r *memStockRepo) ListByBranch(context.Context, string, int, int) ([]*entity.Stock, error) {
	return nil, nil
}
func (r *memStockRepo) ListBelowMinimum(context.Context, string) ([]*entity.Stock, error) {
	return nil, nil
}

type memPointsRepo struct{ s *memStore }

func (r *memPointsRepo) Create(_ context.Context, e *entity.PointsEntry) error {
	r.s.points = append(r.s.points, e)
	return nil
}

func (r *memPointsRepo) ListByCustomer(context.Context, string, int, int) ([]*entity.PointsEntry, error) {
	return nil, nil
}
func (r *memPointsRepo) Balance(context.Context, string) (decimal.Decimal, error) {
	return decimal.Zero, nil
}
func (r *memPointsRepo) BalanceForUpdate(context.Context, string) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

type memCommissionRepo struct{ s *memStore }

func (r *memCommissionRepo) Create(_ context.Context, e *entity.CommissionEntry) error {
	r.s.commissions = append(r.s.commissions, e)
	return nil
}

func (r *memCommissionRepo) ListByEmployee(context.Context, string, *time.Time, *time.Time, int, int) ([]*entity.CommissionEntry, error) {
	return nil, nil
}

func (r *memCommissionRepo) TotalByEmployee(context.Context, string, *time.Time, *time.Time) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

// memAuditRepo permite inyectar un fallo para simular un error de persistencia
// a mitad de la transacción.
type memAuditRepo struct {
	s       *memStore
	failErr error
}

func (r *memAuditRepo) Create(_ context.Context, e *entity.AuditEntry) error {
	if r.failErr != nil {
		return r.failErr
	}
	r.s.audits = append(r.s.audits, e)
	return nil
}

func (r *memAuditRepo) List(context.Context, string, string, int, int) ([]*entity.AuditEntry, error) {
	return nil, nil
}

type fakeTxRunner struct {
	s         *memStore
	auditErr  error
	rollbacks int
}

func (t *fakeTxRunner) Run(_ context.Context, fn func(
	apptRepo repository.AppointmentRepository,
	stockRepo repository.StockRepository,
	pointsRepo repository.PointsRepository,
	commissionRepo repository.CommissionRepository,
	auditRepo repository.AuditRepository,
) error) error {
	snapshot := t.s.clone()
	err := fn(
		&memApptRepo{s: t.s},
		&memStockRepo{s: t.s},
		&memPointsRepo{s: t.s},
		&memCommissionRepo{s: t.s},
		&memAuditRepo{s: t.s, failErr: t.auditErr},
	)
	if err != nil {
		*t.s = *snapshot // rollback
		t.rollbacks++
		return err
	}
	return nil
}

type memRecipeRepo struct {
	recipes map[string][]*entity.RecipeItem
}

func (r *memRecipeRepo) ListByService(_ context.Context, serviceID string) ([]*entity.RecipeItem, error) {
	return r.recipes[serviceID], nil
}

func (r *memRecipeRepo) Replace(context.Context, string, []*entity.RecipeItem) error { return nil }

type memEmployeeRepo struct {
	employees map[string]*entity.Employee
}

func (r *memEmployeeRepo) Create(context.Context, *entity.Employee) error { return nil }

func (r *memEmployeeRepo) GetByID(_ context.Context, id string) (*entity.Employee, error) {
	return r.employees[id], nil
}

func (r *memEmployeeRepo) ListByBranch(context.Context, string, int, int) ([]*entity.Employee, error) {
	return nil, nil
}
func (r *memEmployeeRepo) Update(context.Context, *entity.Employee) error { return nil }
func (r *memEmployeeRepo) Delete(context.Context, string) error           { return nil }

// ──────────────────────────────────────────────────────────────────────────────
// Escenario base: cita-1 en suc-1, servicio con receta de 10 unidades de mat-1,
// total 1000, empleado con 10% de comisión, tasa de puntos 0.05.
// ──────────────────────────────────────────────────────────────────────────────

const (
	citaID     = "cita-1"
	sucID      = "suc-1"
	clienteID  = "cli-1"
	empleadoID = "emp-1"
	servicioID = "srv-1"
	materialID = "mat-1"
)

type harness struct {
	store   *memStore
	tx      *fakeTxRunner
	recipes *memRecipeRepo
	empRepo *memEmployeeRepo
	uc      *appt.CloseAppointmentUseCase
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	store := newMemStore()
	tx := &fakeTxRunner{s: store}

	store.appts[citaID] = &entity.Appointment{
		ID:         citaID,
		BranchID:   sucID,
		CustomerID: clienteID,
		EmployeeID: empleadoID,
		ServiceIDs: []string{servicioID},
		Total:      decimal.NewFromInt(1000),
		State:      entity.AppointmentPending,
	}
	store.stocks[stockKey(sucID, materialID)] = &entity.Stock{
		BranchID:   sucID,
		MaterialID: materialID,
		Quantity:   decimal.NewFromInt(50),
		Minimum:    decimal.NewFromInt(5),
	}

	recipes := &memRecipeRepo{recipes: map[string][]*entity.RecipeItem{
		servicioID: {{ServiceID: servicioID, MaterialID: materialID, Quantity: decimal.NewFromInt(10)}},
	}}
	empRepo := &memEmployeeRepo{employees: map[string]*entity.Employee{
		empleadoID: {ID: empleadoID, BranchID: sucID, Name: "Laura", CommissionPct: decimal.NewFromInt(10), Active: true},
	}}

	uc := appt.NewCloseAppointmentUseCase(
		tx, &memApptRepo{s: store}, recipes, empRepo,
		decimal.RequireFromString("0.05"),
	)
	return &harness{store: store, tx: tx, recipes: recipes, empRepo: empRepo, uc: uc}
}

func (h *harness) stockQty() decimal.Decimal {
	return h.store.stocks[stockKey(sucID, materialID)].Quantity
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario A: cierre exitoso con stock suficiente.
// ──────────────────────────────────────────────────────────────────────────────

func TestClose_EscenarioA_CierreExitoso(t *testing.T) {
	h := newHarness(t)

	resp, err := h.uc.Close(context.Background(), citaID, sucID, "user-1")
	require.NoError(t, err)

	assert.Equal(t, citaID, resp.ID)
	assert.Equal(t, sucID, resp.BranchID)
	assert.Equal(t, entity.AppointmentClosed, resp.State)
	assert.NotEmpty(t, resp.Message)

	assert.Equal(t, entity.AppointmentClosed, h.store.appts[citaID].State,
		"la cita debe quedar cerrada")
	assert.True(t, h.stockQty().Equal(decimal.NewFromInt(40)),
		"50 - 10 de receta debe dejar 40, quedó %s", h.stockQty())

	require.Len(t, h.store.points, 1, "debe existir exactamente un movimiento de puntos")
	assert.Equal(t, entity.PointsEarn, h.store.points[0].Type)
	assert.True(t, h.store.points[0].Amount.Equal(decimal.NewFromInt(50)),
		"1000 * 0.05 debe acreditar 50 puntos")
	assert.Equal(t, clienteID, h.store.points[0].CustomerID)

	require.Len(t, h.store.commissions, 1, "debe existir exactamente una comisión")
	assert.True(t, h.store.commissions[0].Amount.Equal(decimal.NewFromInt(100)),
		"10%% de 1000 debe ser comisión de 100")
	assert.Equal(t, empleadoID, h.store.commissions[0].EmployeeID)

	require.Len(t, h.store.audits, 1, "debe existir exactamente un registro de auditoría")
	assert.Equal(t, "cita", h.store.audits[0].Entity)
	assert.Equal(t, entity.AuditActionClosed, h.store.audits[0].Action)
	assert.Equal(t, sucID, h.store.audits[0].BranchID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario B: stock insuficiente → conflicto sin escrituras.
// ──────────────────────────────────────────────────────────────────────────────

func TestClose_EscenarioB_StockInsuficiente(t *testing.T) {
	h := newHarness(t)
	h.store.stocks[stockKey(sucID, materialID)].Quantity = decimal.NewFromInt(2)

	_, err := h.uc.Close(context.Background(), citaID, sucID, "user-1")
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, entity.AppointmentPending, h.store.appts[citaID].State,
		"la cita debe seguir pendiente")
	assert.True(t, h.stockQty().Equal(decimal.NewFromInt(2)),
		"el stock no debe cambiar en un cierre fallido")
	assert.Empty(t, h.store.points, "no debe haber movimientos de puntos")
	assert.Empty(t, h.store.commissions, "no debe haber comisiones")
	assert.Empty(t, h.store.audits, "no debe haber auditoría en cierre fallido")
	assert.Equal(t, 1, h.tx.rollbacks, "la transacción debe hacer rollback")
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario C: sucursal equivocada → bad request sin escrituras.
// ──────────────────────────────────────────────────────────────────────────────

func TestClose_EscenarioC_SucursalEquivocada(t *testing.T) {
	h := newHarness(t)

	_, err := h.uc.Close(context.Background(), citaID, "suc-OTRA", "user-1")
	require.ErrorIs(t, err, domain.ErrBranchMismatch)

	assert.Equal(t, entity.AppointmentPending, h.store.appts[citaID].State)
	assert.True(t, h.stockQty().Equal(decimal.NewFromInt(50)))
	assert.Empty(t, h.store.points)
	assert.Empty(t, h.store.commissions)
	assert.Empty(t, h.store.audits)
	assert.Zero(t, h.tx.rollbacks, "la validación de sucursal ocurre antes de abrir transacción")
}

func TestClose_CitaInexistente(t *testing.T) {
	h := newHarness(t)

	_, err := h.uc.Close(context.Background(), "cita-fantasma", sucID, "user-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestClose_CitaYaCerrada_Conflicto(t *testing.T) {
	h := newHarness(t)
	h.store.appts[citaID].State = entity.AppointmentClosed

	_, err := h.uc.Close(context.Background(), citaID, sucID, "user-1")
	assert.ErrorIs(t, err, domain.ErrAppointmentNotPending)
}

func TestClose_CitaCancelada_Conflicto(t *testing.T) {
	h := newHarness(t)
	h.store.appts[citaID].State = entity.AppointmentCancelled

	_, err := h.uc.Close(context.Background(), citaID, sucID, "user-1")
	assert.ErrorIs(t, err, domain.ErrAppointmentNotPending)
}

// P3: dos cierres sobre la misma cita → el segundo observa el estado terminal
// y falla; el stock se descuenta una sola vez.
func TestClose_SegundoCierre_FallaYNoDescuentaDosVeces(t *testing.T) {
	h := newHarness(t)

	_, err := h.uc.Close(context.Background(), citaID, sucID, "user-1")
	require.NoError(t, err)

	_, err = h.uc.Close(context.Background(), citaID, sucID, "user-2")
	require.ErrorIs(t, err, domain.ErrAppointmentNotPending)

	assert.True(t, h.stockQty().Equal(decimal.NewFromInt(40)),
		"el stock solo debe descontarse en el cierre exitoso")
	assert.Len(t, h.store.points, 1)
	assert.Len(t, h.store.commissions, 1)
	assert.Len(t, h.store.audits, 1)
}

// Material requerido sin registro de existencia en la sucursal → conflicto.
func TestClose_MaterialSinRegistroDeExistencia(t *testing.T) {
	h := newHarness(t)
	h.recipes.recipes[servicioID] = append(h.recipes.recipes[servicioID],
		&entity.RecipeItem{ServiceID: servicioID, MaterialID: "mat-inexistente", Quantity: decimal.NewFromInt(1)})

	_, err := h.uc.Close(context.Background(), citaID, sucID, "user-1")
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.True(t, h.stockQty().Equal(decimal.NewFromInt(50)),
		"ningún material debe descontarse si falta alguno")
	assert.Equal(t, entity.AppointmentPending, h.store.appts[citaID].State)
}

// Receta vacía: no hay existencias que verificar, el cierre procede.
func TestClose_RecetaVacia_CierraSinTocarStock(t *testing.T) {
	h := newHarness(t)
	h.recipes.recipes[servicioID] = nil

	resp, err := h.uc.Close(context.Background(), citaID, sucID, "user-1")
	require.NoError(t, err)

	assert.Equal(t, entity.AppointmentClosed, resp.State)
	assert.True(t, h.stockQty().Equal(decimal.NewFromInt(50)))
	assert.Len(t, h.store.points, 1)
}

// Cita sin empleado asignado: cierra sin registrar comisión.
func TestClose_SinEmpleado_NoRegistraComision(t *testing.T) {
	h := newHarness(t)
	h.store.appts[citaID].EmployeeID = ""

	_, err := h.uc.Close(context.Background(), citaID, sucID, "user-1")
	require.NoError(t, err)

	assert.Empty(t, h.store.commissions, "sin empleado no debe haber comisión")
	assert.Len(t, h.store.points, 1, "los puntos se acreditan igual")
}

// Dos servicios que comparten material: las cantidades se agregan antes de
// verificar, y un total insuficiente para la suma rechaza el cierre completo.
func TestClose_CantidadesAgregadasPorMaterial(t *testing.T) {
	h := newHarness(t)
	h.store.appts[citaID].ServiceIDs = []string{servicioID, "srv-2"}
	h.recipes.recipes["srv-2"] = []*entity.RecipeItem{
		{ServiceID: "srv-2", MaterialID: materialID, Quantity: decimal.NewFromInt(45)},
	}

	// 10 + 45 = 55 > 50 disponibles
	_, err := h.uc.Close(context.Background(), citaID, sucID, "user-1")
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, h.stockQty().Equal(decimal.NewFromInt(50)))

	// Con stock suficiente para la suma, cierra y descuenta 55.
	h.store.stocks[stockKey(sucID, materialID)].Quantity = decimal.NewFromInt(60)
	_, err = h.uc.Close(context.Background(), citaID, sucID, "user-1")
	require.NoError(t, err)
	assert.True(t, h.stockQty().Equal(decimal.NewFromInt(5)),
		"60 - (10+45) debe dejar 5, quedó %s", h.stockQty())
}

// P1: un fallo de persistencia a mitad de la transacción (auditoría) revierte
// el descuento de stock, los puntos y la comisión ya escritos.
func TestClose_FalloDePersistencia_RevierteTodo(t *testing.T) {
	h := newHarness(t)
	h.tx.auditErr = errors.New("conexión perdida")

	_, err := h.uc.Close(context.Background(), citaID, sucID, "user-1")
	require.Error(t, err)
	require.NotErrorIs(t, err, domain.ErrInsufficientStock)

	assert.True(t, h.stockQty().Equal(decimal.NewFromInt(50)),
		"el rollback debe restaurar el stock")
	assert.Equal(t, entity.AppointmentPending, h.store.appts[citaID].State)
	assert.Empty(t, h.store.points)
	assert.Empty(t, h.store.commissions)
	assert.Empty(t, h.store.audits)
	assert.Equal(t, 1, h.tx.rollbacks)
}

// Una cita confirmada (empleado asignado) también se puede cerrar.
func TestClose_CitaConfirmada_TambienCierra(t *testing.T) {
	h := newHarness(t)
	h.store.appts[citaID].State = entity.AppointmentConfirmed

	resp, err := h.uc.Close(context.Background(), citaID, sucID, "user-1")
	require.NoError(t, err)
	assert.Equal(t, entity.AppointmentClosed, resp.State)
}

// P2: tras una mezcla de cierres exitosos y fallidos, ninguna existencia
// queda negativa.
func TestClose_StockNuncaNegativo(t *testing.T) {
	h := newHarness(t)
	h.store.stocks[stockKey(sucID, materialID)].Quantity = decimal.NewFromInt(15)

	// Primer cierre: 15 - 10 = 5.
	_, err := h.uc.Close(context.Background(), citaID, sucID, "user-1")
	require.NoError(t, err)

	// Segunda cita sobre el mismo material: 5 < 10 → rechazada.
	h.store.appts["cita-2"] = &entity.Appointment{
		ID:         "cita-2",
		BranchID:   sucID,
		CustomerID: clienteID,
		ServiceIDs: []string{servicioID},
		Total:      decimal.NewFromInt(500),
		State:      entity.AppointmentPending,
	}
	_, err = h.uc.Close(context.Background(), "cita-2", sucID, "user-1")
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	for _, st := range h.store.stocks {
		assert.False(t, st.Quantity.IsNegative(),
			"la existencia %s/%s no puede ser negativa", st.BranchID, st.MaterialID)
	}
}

// staleApptRepo simula una confirmación concurrente: la lectura inicial
// devuelve la cita sin empleado, pero la fila bloqueada dentro de la
// transacción ya lo tiene asignado.
type staleApptRepo struct {
	memApptRepo
	stale *entity.Appointment
}

func (r *staleApptRepo) GetByID(context.Context, string) (*entity.Appointment, error) {
	cp := *r.stale
	return &cp, nil
}

// Un empleado asignado entre la lectura inicial y el bloqueo de fila también
// genera su comisión: el cierre resuelve el empleado desde la fila bloqueada.
func TestClose_EmpleadoAsignadoConcurrentemente_GeneraComision(t *testing.T) {
	h := newHarness(t)

	stale := *h.store.appts[citaID]
	stale.EmployeeID = ""
	uc := appt.NewCloseAppointmentUseCase(
		h.tx, &staleApptRepo{memApptRepo: memApptRepo{s: h.store}, stale: &stale},
		h.recipes, h.empRepo,
		decimal.RequireFromString("0.05"),
	)

	_, err := uc.Close(context.Background(), citaID, sucID, "user-1")
	require.NoError(t, err)

	assert.Equal(t, entity.AppointmentClosed, h.store.appts[citaID].State)
	require.Len(t, h.store.commissions, 1,
		"la comisión debe salir del empleado de la fila bloqueada, no de la lectura inicial")
	assert.Equal(t, empleadoID, h.store.commissions[0].EmployeeID)
	assert.True(t, h.store.commissions[0].Amount.Equal(decimal.NewFromInt(100)),
		"10%% de 1000 debe ser comisión de 100")
}
