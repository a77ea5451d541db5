package stock_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/distribuidora-api/internal/application/ports"
	"github.com/jhoicas/distribuidora-api/internal/application/stock"
	"github.com/jhoicas/distribuidora-api/internal/domain"
	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/distribuidora-api/internal/domain/repository"
)

const (
	testCompany = "company-1"
	testUser    = "user-1"
)

// memProductRepo repositorio de productos en memoria.
type memProductRepo struct {
	byID map[string]*entity.Product
}

func newMemProductRepo(products ...*entity.Product) *memProductRepo {
	m := &memProductRepo{byID: make(map[string]*entity.Product)}
	for _, p := range products {
		m.byID[p.ID] = p
	}
	return m
}

func (m *memProductRepo) Create(p *entity.Product) error { m.byID[p.ID] = p; return nil }
func (m *memProductRepo) GetByID(id string) (*entity.Product, error) {
	return m.byID[id], nil
}
func (m *memProductRepo) GetByName(companyID, normalizedName string) (*entity.Product, error) {
	return nil, nil
}
func (m *memProductRepo) GetForUpdate(id string) (*entity.Product, error) { return m.byID[id], nil }
func (m *memProductRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}
func (m *memProductRepo) Update(p *entity.Product) error { m.byID[p.ID] = p; return nil }
func (m *memProductRepo) AdjustStock(id string, delta int) error {
	p, ok := m.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Stock += delta
	return nil
}

// memEquipmentRepo repositorio de equipos en memoria.
type memEquipmentRepo struct {
	byID map[string]*entity.Equipment
}

func newMemEquipmentRepo(items ...*entity.Equipment) *memEquipmentRepo {
	m := &memEquipmentRepo{byID: make(map[string]*entity.Equipment)}
	for _, e := range items {
		m.byID[e.ID] = e
	}
	return m
}

func (m *memEquipmentRepo) Create(e *entity.Equipment) error { m.byID[e.ID] = e; return nil }
func (m *memEquipmentRepo) GetByID(id string) (*entity.Equipment, error) {
	return m.byID[id], nil
}
func (m *memEquipmentRepo) GetByName(companyID, normalizedName string) (*entity.Equipment, error) {
	return nil, nil
}
func (m *memEquipmentRepo) GetForUpdate(id string) (*entity.Equipment, error) {
	return m.byID[id], nil
}
func (m *memEquipmentRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Equipment, error) {
	return nil, nil
}
func (m *memEquipmentRepo) Update(e *entity.Equipment) error { m.byID[e.ID] = e; return nil }
func (m *memEquipmentRepo) AdjustStock(id string, delta int) error {
	e, ok := m.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	e.Stock += delta
	return nil
}

// memMovementRepo repositorio de movimientos en memoria (append-only).
type memMovementRepo struct {
	movements []*entity.StockMovement
}

func (m *memMovementRepo) Create(mov *entity.StockMovement) error {
	m.movements = append(m.movements, mov)
	return nil
}
func (m *memMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	for _, mov := range m.movements {
		if mov.ID == id {
			return mov, nil
		}
	}
	return nil, nil
}
func (m *memMovementRepo) ListByItem(itemKind, itemID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, mov := range m.movements {
		if mov.ItemKind == itemKind && mov.ItemID == itemID {
			out = append(out, mov)
		}
	}
	return out, nil
}
func (m *memMovementRepo) ListByOrder(orderRef string) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, mov := range m.movements {
		if mov.OrderRef == orderRef {
			out = append(out, mov)
		}
	}
	return out, nil
}

// stubOrderRepo solo implementa SumReservedQuantity; el resto no se usa en
// estos tests.
type stubOrderRepo struct {
	repository.OrderRepository
	reserved int
}

func (s *stubOrderRepo) SumReservedQuantity(companyID, productID string, after time.Time) (int, error) {
	return s.reserved, nil
}

// passTxRunner ejecuta el callback directamente sobre los repos en memoria
// (sin transacción real).
type passTxRunner struct {
	mov   *memMovementRepo
	prod  *memProductRepo
	equip *memEquipmentRepo
}

func (r *passTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	equipmentRepo repository.EquipmentRepository,
) error) error {
	return fn(r.mov, r.prod, r.equip)
}

func newLedger(t *testing.T, prod *memProductRepo, equip *memEquipmentRepo, mov *memMovementRepo, reserved int, policy stock.Policy) *stock.LedgerUseCase {
	t.Helper()
	return stock.NewLedgerUseCase(
		&passTxRunner{mov: mov, prod: prod, equip: equip},
		&stubOrderRepo{reserved: reserved},
		prod, equip,
		ports.NopPublisher{}, policy,
	)
}

func testProduct(stockQty int) *entity.Product {
	return &entity.Product{
		ID:        "prod-1",
		CompanyID: testCompany,
		Name:      "Cerveja Pilsen 600ml",
		Price:     decimal.NewFromInt(10),
		Stock:     stockQty,
	}
}

func TestApplyMovement_ElConteoEsElFoldDeLosMovimientos(t *testing.T) {
	prod := newMemProductRepo(testProduct(100))
	mov := &memMovementRepo{}
	uc := newLedger(t, prod, newMemEquipmentRepo(), mov, 0, stock.Policy{})

	steps := []struct {
		movType  string
		quantity int
	}{
		{entity.MovementTypeSaleDeduction, 30},
		{entity.MovementTypeReturn, 5},
		{entity.MovementTypeAdjustment, 10},
		{entity.MovementTypeSaleDeduction, 15},
	}
	for _, s := range steps {
		resp, err := uc.ApplyMovement(context.Background(), stock.MovementInput{
			CompanyID: testCompany, UserID: testUser,
			ItemKind: entity.ItemKindProduct, ItemID: "prod-1",
			Type: s.movType, Quantity: s.quantity,
		})
		require.NoError(t, err)
		assert.Equal(t, s.quantity, resp.Quantity)
	}

	// 100 - 30 + 5 + 10 - 15 = 70
	p, _ := prod.GetByID("prod-1")
	assert.Equal(t, 70, p.Stock)

	// Cada movimiento quedó como fila inmutable con su delta reconstruible.
	require.Len(t, mov.movements, 4)
	total := 100
	for _, m := range mov.movements {
		total += m.Delta()
	}
	assert.Equal(t, p.Stock, total, "el conteo debe ser el fold de los movimientos")
}

func TestApplyMovement_ReportaNuevoStock(t *testing.T) {
	prod := newMemProductRepo(testProduct(10))
	uc := newLedger(t, prod, newMemEquipmentRepo(), &memMovementRepo{}, 0, stock.Policy{})

	resp, err := uc.ApplyMovement(context.Background(), stock.MovementInput{
		CompanyID: testCompany, UserID: testUser,
		ItemKind: entity.ItemKindProduct, ItemID: "prod-1",
		Type: entity.MovementTypeSaleDeduction, Quantity: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, 6, resp.NewStock)
	assert.Equal(t, testUser, resp.CreatedBy)
}

func TestApplyMovement_PermiteStockNegativo(t *testing.T) {
	// El libro registra la realidad: vender más de lo contado no es error.
	prod := newMemProductRepo(testProduct(3))
	uc := newLedger(t, prod, newMemEquipmentRepo(), &memMovementRepo{}, 0, stock.Policy{})

	resp, err := uc.ApplyMovement(context.Background(), stock.MovementInput{
		CompanyID: testCompany, UserID: testUser,
		ItemKind: entity.ItemKindProduct, ItemID: "prod-1",
		Type: entity.MovementTypeSaleDeduction, Quantity: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, -2, resp.NewStock)
}

func TestApplyMovement_EntradaInvalida(t *testing.T) {
	uc := newLedger(t, newMemProductRepo(testProduct(10)), newMemEquipmentRepo(), &memMovementRepo{}, 0, stock.Policy{})

	cases := []stock.MovementInput{
		{CompanyID: testCompany, ItemKind: entity.ItemKindProduct, ItemID: "prod-1", Type: "transfer", Quantity: 1},
		{CompanyID: testCompany, ItemKind: "warehouse", ItemID: "prod-1", Type: entity.MovementTypeReturn, Quantity: 1},
		{CompanyID: testCompany, ItemKind: entity.ItemKindProduct, ItemID: "prod-1", Type: entity.MovementTypeReturn, Quantity: 0},
		{CompanyID: testCompany, ItemKind: entity.ItemKindProduct, ItemID: "", Type: entity.MovementTypeReturn, Quantity: 1},
	}
	for _, in := range cases {
		_, err := uc.ApplyMovement(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestApplyMovement_ItemDeOtraEmpresa(t *testing.T) {
	other := testProduct(10)
	other.CompanyID = "company-2"
	uc := newLedger(t, newMemProductRepo(other), newMemEquipmentRepo(), &memMovementRepo{}, 0, stock.Policy{})

	_, err := uc.ApplyMovement(context.Background(), stock.MovementInput{
		CompanyID: testCompany, UserID: testUser,
		ItemKind: entity.ItemKindProduct, ItemID: "prod-1",
		Type: entity.MovementTypeAdjustment, Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApplyMovement_SobreEquipo(t *testing.T) {
	equip := newMemEquipmentRepo(&entity.Equipment{ID: "eq-1", CompanyID: testCompany, Name: "Barril 50L", Stock: 8})
	uc := newLedger(t, newMemProductRepo(), equip, &memMovementRepo{}, 0, stock.Policy{})

	resp, err := uc.ApplyMovement(context.Background(), stock.MovementInput{
		CompanyID: testCompany, UserID: testUser,
		ItemKind: entity.ItemKindEquipment, ItemID: "eq-1",
		Type: entity.MovementTypeReturn, Quantity: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, 10, resp.NewStock)
}

func TestAvailability_DescuentaReservas(t *testing.T) {
	uc := newLedger(t, newMemProductRepo(testProduct(10)), newMemEquipmentRepo(), &memMovementRepo{}, 4, stock.Policy{})

	resp, err := uc.Availability(context.Background(), testCompany, "prod-1")
	require.NoError(t, err)
	assert.Equal(t, 10, resp.Stock)
	assert.Equal(t, 4, resp.Reserved)
	assert.Equal(t, 6, resp.Available)
	assert.Empty(t, resp.Warning)
}

func TestCheckAvailability_AdvierteSinBloquear(t *testing.T) {
	uc := newLedger(t, newMemProductRepo(testProduct(10)), newMemEquipmentRepo(), &memMovementRepo{}, 4, stock.Policy{})

	warning, err := uc.CheckAvailability(context.Background(), testCompany, "prod-1", 8)
	require.NoError(t, err)
	assert.NotEmpty(t, warning, "pedir 8 con 6 disponibles debe advertir")

	warning, err = uc.CheckAvailability(context.Background(), testCompany, "prod-1", 6)
	require.NoError(t, err)
	assert.Empty(t, warning)
}

func TestCheckAvailability_PoliticaDura(t *testing.T) {
	uc := newLedger(t, newMemProductRepo(testProduct(10)), newMemEquipmentRepo(), &memMovementRepo{}, 4,
		stock.Policy{BlockOnInsufficient: true})

	_, err := uc.CheckAvailability(context.Background(), testCompany, "prod-1", 8)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}
