package orders_test

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
	domorders "github.com/jhoicas/distribuidora-api/internal/domain/orders"
	"github.com/jhoicas/distribuidora-api/internal/domain/repository"
)

// Repositorios en memoria para ejercitar el ciclo de vida completo sin base
// de datos. Lecturas y escrituras copian las entidades para imitar el ida y
// vuelta por filas de la implementación real.

type memOrderRepo struct {
	orders map[string]*entity.Order
	items  map[string][]*entity.OrderItem
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{
		orders: make(map[string]*entity.Order),
		items:  make(map[string][]*entity.OrderItem),
	}
}

func (r *memOrderRepo) Create(order *entity.Order) error {
	cp := *order
	r.orders[order.ID] = &cp
	return nil
}

func (r *memOrderRepo) GetByID(id string) (*entity.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (r *memOrderRepo) GetForUpdate(id string) (*entity.Order, error) {
	return r.GetByID(id)
}

func (r *memOrderRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Order, error) {
	var out []*entity.Order
	for _, o := range r.orders {
		if o.CompanyID == companyID {
			cp := *o
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AppointmentAt.After(out[j].AppointmentAt) })
	return out, nil
}

func (r *memOrderRepo) Update(order *entity.Order) error {
	cp := *order
	r.orders[order.ID] = &cp
	return nil
}

func (r *memOrderRepo) Delete(id string) error {
	delete(r.orders, id)
	delete(r.items, id)
	return nil
}

func (r *memOrderRepo) CreateItem(item *entity.OrderItem) error {
	cp := *item
	r.items[item.OrderID] = append(r.items[item.OrderID], &cp)
	return nil
}

func (r *memOrderRepo) ListItems(orderID string) ([]*entity.OrderItem, error) {
	out := make([]*entity.OrderItem, 0, len(r.items[orderID]))
	for _, it := range r.items[orderID] {
		cp := *it
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memOrderRepo) UpdateItem(item *entity.OrderItem) error {
	for i, it := range r.items[item.OrderID] {
		if it.ID == item.ID {
			cp := *item
			r.items[item.OrderID][i] = &cp
			return nil
		}
	}
	return nil
}

func (r *memOrderRepo) SumReservedQuantity(companyID, productID string, after time.Time) (int, error) {
	total := 0
	for _, o := range r.orders {
		if o.CompanyID != companyID || o.DeliveryStatus == entity.DeliveryStatusColetado || !o.AppointmentAt.After(after) {
			continue
		}
		for _, it := range r.items[o.ID] {
			if it.ItemKind == entity.ItemKindProduct && it.ItemID == productID {
				total += it.Quantity - it.ReturnedQuantity
			}
		}
	}
	return total, nil
}

var _ repository.OrderRepository = (*memOrderRepo)(nil)

type memCustomerRepo struct {
	customers map[string]*entity.Customer
}

func newMemCustomerRepo() *memCustomerRepo {
	return &memCustomerRepo{customers: make(map[string]*entity.Customer)}
}

func (r *memCustomerRepo) Create(customer *entity.Customer) error {
	cp := *customer
	r.customers[customer.ID] = &cp
	return nil
}

func (r *memCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *memCustomerRepo) GetByCompanyAndName(companyID, name string) (*entity.Customer, error) {
	for _, c := range r.customers {
		if c.CompanyID == companyID && c.Name == name {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memCustomerRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Customer, error) {
	var out []*entity.Customer
	for _, c := range r.customers {
		if c.CompanyID == companyID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memCustomerRepo) Update(customer *entity.Customer) error {
	cp := *customer
	r.customers[customer.ID] = &cp
	return nil
}

var _ repository.CustomerRepository = (*memCustomerRepo)(nil)

type memLoanRepo struct {
	loans   map[string]*entity.EquipmentLoan
	returns map[string][]*entity.LoanReturn
}

func newMemLoanRepo() *memLoanRepo {
	return &memLoanRepo{
		loans:   make(map[string]*entity.EquipmentLoan),
		returns: make(map[string][]*entity.LoanReturn),
	}
}

func (r *memLoanRepo) Create(loan *entity.EquipmentLoan) error {
	cp := *loan
	r.loans[loan.ID] = &cp
	return nil
}

func (r *memLoanRepo) GetByID(id string) (*entity.EquipmentLoan, error) {
	l, ok := r.loans[id]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (r *memLoanRepo) GetForUpdate(id string) (*entity.EquipmentLoan, error) {
	return r.GetByID(id)
}

func (r *memLoanRepo) Update(loan *entity.EquipmentLoan) error {
	cp := *loan
	r.loans[loan.ID] = &cp
	return nil
}

func (r *memLoanRepo) ListOpenByCustomer(companyID, customerID string) ([]*entity.EquipmentLoan, error) {
	var out []*entity.EquipmentLoan
	for _, l := range r.loans {
		if l.CompanyID == companyID && l.CustomerID == customerID && l.Open() {
			cp := *l
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LoanDate.Before(out[j].LoanDate) })
	return out, nil
}

func (r *memLoanRepo) ListByOrder(orderRef string) ([]*entity.EquipmentLoan, error) {
	var out []*entity.EquipmentLoan
	for _, l := range r.loans {
		if l.OrderRef == orderRef {
			cp := *l
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memLoanRepo) CreateReturn(ret *entity.LoanReturn) error {
	cp := *ret
	r.returns[ret.LoanID] = append(r.returns[ret.LoanID], &cp)
	return nil
}

func (r *memLoanRepo) ListReturns(loanID string) ([]*entity.LoanReturn, error) {
	return r.returns[loanID], nil
}

var _ repository.EquipmentLoanRepository = (*memLoanRepo)(nil)

type memMovementRepo struct {
	movements []*entity.StockMovement
}

func (r *memMovementRepo) Create(movement *entity.StockMovement) error {
	cp := *movement
	r.movements = append(r.movements, &cp)
	return nil
}

func (r *memMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	for _, m := range r.movements {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, nil
}

func (r *memMovementRepo) ListByItem(itemKind, itemID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.movements {
		if m.ItemKind == itemKind && m.ItemID == itemID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memMovementRepo) ListByOrder(orderRef string) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.movements {
		if m.OrderRef == orderRef {
			out = append(out, m)
		}
	}
	return out, nil
}

var _ repository.StockMovementRepository = (*memMovementRepo)(nil)

type memProductRepo struct {
	products map[string]*entity.Product
}

func newMemProductRepo(seed ...*entity.Product) *memProductRepo {
	r := &memProductRepo{products: make(map[string]*entity.Product)}
	for _, p := range seed {
		cp := *p
		r.products[p.ID] = &cp
	}
	return r
}

func (r *memProductRepo) get(id string) *entity.Product { return r.products[id] }

func (r *memProductRepo) Create(product *entity.Product) error {
	cp := *product
	r.products[product.ID] = &cp
	return nil
}

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) GetByName(companyID, normalizedName string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.CompanyID == companyID && domorders.NormalizeName(p.Name) == normalizedName {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *memProductRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}

func (r *memProductRepo) Update(product *entity.Product) error {
	cp := *product
	r.products[product.ID] = &cp
	return nil
}

func (r *memProductRepo) AdjustStock(id string, delta int) error {
	r.products[id].Stock += delta
	return nil
}

var _ repository.ProductRepository = (*memProductRepo)(nil)

type memEquipmentRepo struct {
	equipment map[string]*entity.Equipment
}

func newMemEquipmentRepo(seed ...*entity.Equipment) *memEquipmentRepo {
	r := &memEquipmentRepo{equipment: make(map[string]*entity.Equipment)}
	for _, e := range seed {
		cp := *e
		r.equipment[e.ID] = &cp
	}
	return r
}

func (r *memEquipmentRepo) get(id string) *entity.Equipment { return r.equipment[id] }

func (r *memEquipmentRepo) Create(equipment *entity.Equipment) error {
	cp := *equipment
	r.equipment[equipment.ID] = &cp
	return nil
}

func (r *memEquipmentRepo) GetByID(id string) (*entity.Equipment, error) {
	e, ok := r.equipment[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (r *memEquipmentRepo) GetByName(companyID, normalizedName string) (*entity.Equipment, error) {
	for _, e := range r.equipment {
		if e.CompanyID == companyID && domorders.NormalizeName(e.Name) == normalizedName {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memEquipmentRepo) GetForUpdate(id string) (*entity.Equipment, error) {
	return r.GetByID(id)
}

func (r *memEquipmentRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Equipment, error) {
	return nil, nil
}

func (r *memEquipmentRepo) Update(equipment *entity.Equipment) error {
	cp := *equipment
	r.equipment[equipment.ID] = &cp
	return nil
}

func (r *memEquipmentRepo) AdjustStock(id string, delta int) error {
	r.equipment[id].Stock += delta
	return nil
}

var _ repository.EquipmentRepository = (*memEquipmentRepo)(nil)

// passRunner ejecuta las funciones transaccionales directamente sobre los
// repositorios en memoria de la fixture (sin transacción real).
type passRunner struct {
	f *fixture
}

func (p *passRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	equipmentRepo repository.EquipmentRepository,
) error) error {
	return fn(p.f.movs, p.f.products, p.f.equipment)
}

func (p *passRunner) RunLoan(ctx context.Context, fn func(
	loanRepo repository.EquipmentLoanRepository,
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	equipmentRepo repository.EquipmentRepository,
) error) error {
	return fn(p.f.loanRepo, p.f.movs, p.f.products, p.f.equipment)
}

func (p *passRunner) RunOrder(ctx context.Context, fn func(
	orderRepo repository.OrderRepository,
	customerRepo repository.CustomerRepository,
	loanRepo repository.EquipmentLoanRepository,
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	equipmentRepo repository.EquipmentRepository,
) error) error {
	return fn(p.f.orders, p.f.customers, p.f.loanRepo, p.f.movs, p.f.products, p.f.equipment)
}
