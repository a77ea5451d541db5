// Package orders implementa el ciclo de vida de entrega del pedido
// (Entregar -> Coletar -> Coletado) y las devoluciones de mercadería
// vendida. Las transiciones son monótonas: cada una valida sus guardas,
// ejecuta sus efectos (préstamos, movimientos de stock) y avanza el estado
// en una sola transacción.
package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/distribuidora-api/internal/application/dto"
	"github.com/jhoicas/distribuidora-api/internal/application/ports"
	"github.com/jhoicas/distribuidora-api/internal/domain"
	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
	domorders "github.com/jhoicas/distribuidora-api/internal/domain/orders"
	"github.com/jhoicas/distribuidora-api/internal/domain/repository"
)

// LifecycleUseCase conduce un pedido por sus estados de entrega.
type LifecycleUseCase struct {
	txRunner      TxRunner
	orderRepo     repository.OrderRepository
	customerRepo  repository.CustomerRepository
	loanRepo      repository.EquipmentLoanRepository
	productRepo   repository.ProductRepository
	equipmentRepo repository.EquipmentRepository
	ledger        StockLedger
	loans         LoanTracker
	availability  AvailabilityChecker
	events        ports.EventPublisher
}

// NewLifecycleUseCase construye el caso de uso.
func NewLifecycleUseCase(
	txRunner TxRunner,
	orderRepo repository.OrderRepository,
	customerRepo repository.CustomerRepository,
	loanRepo repository.EquipmentLoanRepository,
	productRepo repository.ProductRepository,
	equipmentRepo repository.EquipmentRepository,
	ledger StockLedger,
	loans LoanTracker,
	availability AvailabilityChecker,
	events ports.EventPublisher,
) *LifecycleUseCase {
	return &LifecycleUseCase{
		txRunner:      txRunner,
		orderRepo:     orderRepo,
		customerRepo:  customerRepo,
		loanRepo:      loanRepo,
		productRepo:   productRepo,
		equipmentRepo: equipmentRepo,
		ledger:        ledger,
		loans:         loans,
		availability:  availability,
		events:        events,
	}
}

// CreateOrder crea el pedido con sus líneas. El precio de línea queda
// congelado (precio de catálogo si el request trae cero) y el texto de
// productos se deriva de las líneas. La disponibilidad se verifica de forma
// consultiva: las advertencias acompañan la respuesta, no bloquean.
func (uc *LifecycleUseCase) CreateOrder(ctx context.Context, companyID, userID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if in.CustomerName == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.Freight.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	order := &entity.Order{
		ID:              uuid.New().String(),
		CompanyID:       companyID,
		CustomerName:    in.CustomerName,
		Freight:         in.Freight,
		TotalPayed:      decimal.Zero,
		PaymentStatus:   entity.PaymentStatusUnpaid,
		PaymentMethod:   in.PaymentMethod,
		DeliveryStatus:  entity.DeliveryStatusEntregar,
		AppointmentAt:   in.AppointmentAt,
		AppointmentSite: in.AppointmentSite,
		IssueDate:       now,
		DueDate:         in.DueDate,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	var warnings []string
	total := in.Freight
	items := make([]*entity.OrderItem, 0, len(in.Items))
	lineRefs := make([]domorders.LineRef, 0, len(in.Items))
	for _, it := range in.Items {
		if it.Quantity <= 0 || it.ItemID == "" {
			return nil, domain.ErrInvalidInput
		}
		item := &entity.OrderItem{
			ID:        uuid.New().String(),
			OrderID:   order.ID,
			ItemKind:  it.ItemKind,
			ItemID:    it.ItemID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		}
		switch it.ItemKind {
		case entity.ItemKindProduct:
			product, err := uc.productRepo.GetByID(it.ItemID)
			if err != nil {
				return nil, err
			}
			if product == nil || product.CompanyID != companyID {
				return nil, domain.ErrNotFound
			}
			item.ItemName = product.Name
			if item.UnitPrice.IsZero() {
				item.UnitPrice = product.Price
			}
			warning, err := uc.availability.CheckAvailability(ctx, companyID, it.ItemID, it.Quantity)
			if err != nil {
				return nil, err
			}
			if warning != "" {
				warnings = append(warnings, warning)
			}
		case entity.ItemKindEquipment:
			equipment, err := uc.equipmentRepo.GetByID(it.ItemID)
			if err != nil {
				return nil, err
			}
			if equipment == nil || equipment.CompanyID != companyID {
				return nil, domain.ErrNotFound
			}
			item.ItemName = equipment.Name
		default:
			return nil, domain.ErrInvalidInput
		}
		if item.UnitPrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		total = total.Add(item.Subtotal())
		items = append(items, item)
		lineRefs = append(lineRefs, domorders.LineRef{Name: item.ItemName, Quantity: item.Quantity})
	}
	order.Total = total
	order.ProductsText = domorders.FormatProductList(lineRefs)

	err := uc.txRunner.RunOrder(ctx, func(
		orderRepo repository.OrderRepository,
		_ repository.CustomerRepository,
		_ repository.EquipmentLoanRepository,
		_ repository.StockMovementRepository,
		_ repository.ProductRepository,
		_ repository.EquipmentRepository,
	) error {
		if err := orderRepo.Create(order); err != nil {
			return err
		}
		for _, item := range items {
			if err := orderRepo.CreateItem(item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := uc.toResponse(order, items)
	resp.StockWarnings = warnings
	return resp, nil
}

// CaptureSignature guarda la firma del cliente. Una firma existente solo se
// sobreescribe con Overwrite explícito (confirmación del operador).
func (uc *LifecycleUseCase) CaptureSignature(ctx context.Context, companyID, orderID string, in dto.CaptureSignatureRequest) error {
	if len(in.Signature) == 0 {
		return domain.ErrInvalidInput
	}
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if order == nil || order.CompanyID != companyID {
		return domain.ErrNotFound
	}
	if order.Signed() && !in.Overwrite {
		return domain.ErrConflict
	}
	order.Signature = in.Signature
	order.UpdatedAt = time.Now()
	return uc.orderRepo.Update(order)
}

// PrepareDelivery devuelve la vista previa de la confirmación de entrega:
// el equipo del pedido que quedará en préstamo al cliente. Solo lectura.
func (uc *LifecycleUseCase) PrepareDelivery(ctx context.Context, companyID, orderID string) (*dto.DeliveryPreviewResponse, error) {
	order, items, err := uc.getOrderWithItems(companyID, orderID)
	if err != nil {
		return nil, err
	}
	if order.DeliveryStatus != entity.DeliveryStatusEntregar {
		return nil, domain.ErrPreconditionFailed
	}
	preview := &dto.DeliveryPreviewResponse{OrderID: order.ID, CustomerName: order.CustomerName}
	for _, item := range items {
		if item.ItemKind == entity.ItemKindEquipment {
			preview.Equipment = append(preview.Equipment, toItemResponse(item))
		}
	}
	return preview, nil
}

// ConfirmDelivery ejecuta la transición Entregar -> Coletar: resuelve (o
// crea) el cliente, registra los préstamos del equipo del pedido y avanza el
// estado, todo en una transacción. Guardas: firma capturada y nombre de
// cliente resoluble; cualquier fallo deja el pedido intacto. Sobre un pedido
// ya Coletado es un no-op.
func (uc *LifecycleUseCase) ConfirmDelivery(ctx context.Context, companyID, userID, orderID string) (*dto.AdvanceResult, error) {
	now := time.Now()
	var result *dto.AdvanceResult
	var advanced *entity.Order
	err := uc.txRunner.RunOrder(ctx, func(
		orderRepo repository.OrderRepository,
		customerRepo repository.CustomerRepository,
		loanRepo repository.EquipmentLoanRepository,
		_ repository.StockMovementRepository,
		_ repository.ProductRepository,
		equipmentRepo repository.EquipmentRepository,
	) error {
		order, err := orderRepo.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil || order.CompanyID != companyID {
			return domain.ErrNotFound
		}
		if order.DeliveryStatus == entity.DeliveryStatusColetado {
			result = noOpResult(order)
			return nil
		}
		if order.DeliveryStatus != entity.DeliveryStatusEntregar {
			return domain.ErrPreconditionFailed
		}
		if !order.Signed() {
			return domain.ErrSignatureMissing
		}

		customer, err := uc.resolveOrCreateCustomer(customerRepo, companyID, order.CustomerName, now)
		if err != nil {
			return err
		}

		items, err := orderRepo.ListItems(order.ID)
		if err != nil {
			return err
		}
		for _, item := range items {
			if item.ItemKind != entity.ItemKindEquipment {
				continue
			}
			// Lectura por el repositorio de la transacción: toda la
			// transición ve el mismo snapshot.
			equipment, err := equipmentRepo.GetByID(item.ItemID)
			if err != nil {
				return err
			}
			if equipment == nil {
				return domain.ErrNotFound
			}
			if _, err := uc.loans.RegisterLoanInTx(loanRepo, companyID, customer.ID, equipment, item.Quantity, order.ID, now); err != nil {
				return err
			}
		}

		order.CustomerID = customer.ID
		order.DeliveryStatus = entity.DeliveryStatusColetar
		order.UpdatedAt = now
		if err := orderRepo.Update(order); err != nil {
			return err
		}
		advanced = order
		result = &dto.AdvanceResult{
			OrderID:        order.ID,
			DeliveryStatus: order.DeliveryStatus,
			Message:        "entrega confirmada: equipo en préstamo registrado",
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if advanced != nil {
		uc.events.DeliveryAdvanced(ctx, advanced)
	}
	return result, nil
}

// PrepareCollection devuelve los préstamos abiertos del cliente del pedido
// para confirmarlos en la coleta. Solo lectura.
func (uc *LifecycleUseCase) PrepareCollection(ctx context.Context, companyID, orderID string) ([]*dto.LoanResponse, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil || order.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	if order.DeliveryStatus != entity.DeliveryStatusColetar {
		return nil, domain.ErrPreconditionFailed
	}
	if order.CustomerID == "" {
		return nil, domain.ErrCustomerNotFound
	}
	loans, err := uc.loanRepo.ListOpenByCustomer(companyID, order.CustomerID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.LoanResponse, 0, len(loans))
	for _, l := range loans {
		out = append(out, &dto.LoanResponse{
			ID:               l.ID,
			CustomerID:       l.CustomerID,
			EquipmentID:      l.EquipmentID,
			EquipmentName:    l.EquipmentName,
			Quantity:         l.Quantity,
			ReturnedQuantity: l.ReturnedQuantity,
			Outstanding:      l.Outstanding(),
			Status:           l.Status,
			OrderRef:         l.OrderRef,
			LoanDate:         l.LoanDate,
			ReturnDate:       l.ReturnDate,
		})
	}
	return out, nil
}

// ConfirmCollection ejecuta la transición Coletar -> Coletado: aplica las
// devoluciones de préstamo confirmadas y descuenta del stock cada línea de
// producto consumible del pedido. La mercadería viaja "en tránsito" hasta
// cerrar el ciclo, por eso el descuento ocurre aquí y no en la entrega.
// Sobre un pedido ya Coletado es un no-op (sin movimientos nuevos).
func (uc *LifecycleUseCase) ConfirmCollection(ctx context.Context, companyID, userID, orderID string, in dto.ConfirmCollectionRequest) (*dto.AdvanceResult, error) {
	now := time.Now()
	var result *dto.AdvanceResult
	var advanced *entity.Order
	err := uc.txRunner.RunOrder(ctx, func(
		orderRepo repository.OrderRepository,
		_ repository.CustomerRepository,
		loanRepo repository.EquipmentLoanRepository,
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		equipmentRepo repository.EquipmentRepository,
	) error {
		order, err := orderRepo.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil || order.CompanyID != companyID {
			return domain.ErrNotFound
		}
		if order.DeliveryStatus == entity.DeliveryStatusColetado {
			result = noOpResult(order)
			return nil
		}
		if order.DeliveryStatus != entity.DeliveryStatusColetar {
			return domain.ErrPreconditionFailed
		}
		if !order.Signed() {
			return domain.ErrSignatureMissing
		}
		if order.CustomerID == "" {
			return domain.ErrCustomerNotFound
		}

		for _, ret := range in.Returns {
			loan, err := loanRepo.GetByID(ret.LoanID)
			if err != nil {
				return err
			}
			if loan == nil || loan.CustomerID != order.CustomerID {
				return domain.ErrNotFound
			}
			if _, err := uc.loans.ReturnLoanInTx(loanRepo, movRepo, productRepo, equipmentRepo, companyID, userID, ret.LoanID, ret.Quantity, now); err != nil {
				return err
			}
		}

		items, err := orderRepo.ListItems(order.ID)
		if err != nil {
			return err
		}
		for _, item := range items {
			if item.ItemKind != entity.ItemKindProduct {
				continue
			}
			if err := uc.ledger.ApplyInTx(
				movRepo, productRepo, equipmentRepo,
				companyID, userID,
				entity.ItemKindProduct, item.ItemID, entity.MovementTypeSaleDeduction,
				item.Quantity, order.ID, fmt.Sprintf("venta coletada: %s", item.ItemName), now,
			); err != nil {
				return err
			}
		}

		order.DeliveryStatus = entity.DeliveryStatusColetado
		order.UpdatedAt = now
		if err := orderRepo.Update(order); err != nil {
			return err
		}
		advanced = order
		result = &dto.AdvanceResult{
			OrderID:        order.ID,
			DeliveryStatus: order.DeliveryStatus,
			Message:        "coleta confirmada: stock descontado y préstamos actualizados",
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if advanced != nil {
		uc.events.DeliveryAdvanced(ctx, advanced)
	}
	return result, nil
}

// GetOrder devuelve el pedido con sus líneas.
func (uc *LifecycleUseCase) GetOrder(ctx context.Context, companyID, orderID string) (*dto.OrderResponse, error) {
	order, items, err := uc.getOrderWithItems(companyID, orderID)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(order, items), nil
}

// ListOrders lista los pedidos de la empresa.
func (uc *LifecycleUseCase) ListOrders(ctx context.Context, companyID string, limit, offset int) ([]*dto.OrderResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.orderRepo.ListByCompany(companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, uc.toResponse(o, nil))
	}
	return out, nil
}

func (uc *LifecycleUseCase) getOrderWithItems(companyID, orderID string) (*entity.Order, []*entity.OrderItem, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, nil, err
	}
	if order == nil || order.CompanyID != companyID {
		return nil, nil, domain.ErrNotFound
	}
	items, err := uc.orderRepo.ListItems(orderID)
	if err != nil {
		return nil, nil, err
	}
	return order, items, nil
}

// resolveOrCreateCustomer busca el cliente por el nombre guardado en el
// pedido; si no existe lo crea en la misma transacción. Nombre vacío es
// irresoluble (cliente no encontrado, la transición aborta).
func (uc *LifecycleUseCase) resolveOrCreateCustomer(customerRepo repository.CustomerRepository, companyID, name string, now time.Time) (*entity.Customer, error) {
	if name == "" {
		return nil, domain.ErrCustomerNotFound
	}
	customer, err := customerRepo.GetByCompanyAndName(companyID, name)
	if err != nil {
		return nil, err
	}
	if customer != nil {
		return customer, nil
	}
	customer = &entity.Customer{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := customerRepo.Create(customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func noOpResult(order *entity.Order) *dto.AdvanceResult {
	return &dto.AdvanceResult{
		OrderID:        order.ID,
		DeliveryStatus: order.DeliveryStatus,
		NoOp:           true,
		Message:        "el pedido ya está coletado; sin cambios",
	}
}

func toItemResponse(item *entity.OrderItem) dto.OrderItemResponse {
	return dto.OrderItemResponse{
		ID:        item.ID,
		ItemKind:  item.ItemKind,
		ItemID:    item.ItemID,
		ItemName:  item.ItemName,
		Quantity:  item.Quantity,
		UnitPrice: item.UnitPrice,
	}
}

func (uc *LifecycleUseCase) toResponse(order *entity.Order, items []*entity.OrderItem) *dto.OrderResponse {
	resp := &dto.OrderResponse{
		ID:              order.ID,
		CustomerID:      order.CustomerID,
		CustomerName:    order.CustomerName,
		ProductsText:    order.ProductsText,
		Freight:         order.Freight,
		Total:           order.Total,
		TotalPayed:      order.TotalPayed,
		Remaining:       order.Remaining(),
		PaymentStatus:   order.PaymentStatus,
		PaymentMethod:   order.PaymentMethod,
		DeliveryStatus:  order.DeliveryStatus,
		Signed:          order.Signed(),
		AppointmentAt:   order.AppointmentAt,
		AppointmentSite: order.AppointmentSite,
		IssueDate:       order.IssueDate,
		DueDate:         order.DueDate,
	}
	for _, item := range items {
		resp.Items = append(resp.Items, toItemResponse(item))
	}
	return resp
}
