package orders

import (
	"context"
	"strings"

	"github.com/jhoicas/distribuidora-api/internal/application/dto"
	"github.com/jhoicas/distribuidora-api/internal/domain"
	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
	domorders "github.com/jhoicas/distribuidora-api/internal/domain/orders"
)

// ImportLegacyOrder crea un pedido a partir del texto de productos del
// sistema anterior, que no guardaba líneas. Parsea el formato "Nombre (Nx)"
// y resuelve cada nombre contra el catálogo de forma insensible a mayúsculas
// y acentos (productos primero, equipo después). Las líneas resueltas crean
// el pedido por el camino normal (precio de catálogo congelado, texto
// canónico re-derivado); los segmentos malformados o sin correspondencia se
// devuelven en Skipped. Si ningún segmento resuelve no hay pedido que crear.
func (uc *LifecycleUseCase) ImportLegacyOrder(ctx context.Context, companyID, userID string, in dto.ImportLegacyOrderRequest) (*dto.ImportLegacyOrderResponse, error) {
	if in.CustomerName == "" || strings.TrimSpace(in.ProductsText) == "" {
		return nil, domain.ErrInvalidInput
	}

	parsed := domorders.ParseProductList(in.ProductsText)
	skipped := append([]string(nil), parsed.Skipped...)

	items := make([]dto.OrderItemRequest, 0, len(parsed.Lines))
	for _, line := range parsed.Lines {
		normalized := domorders.NormalizeName(line.Name)
		product, err := uc.productRepo.GetByName(companyID, normalized)
		if err != nil {
			return nil, err
		}
		if product != nil {
			items = append(items, dto.OrderItemRequest{
				ItemKind: entity.ItemKindProduct,
				ItemID:   product.ID,
				Quantity: line.Quantity,
			})
			continue
		}
		equipment, err := uc.equipmentRepo.GetByName(companyID, normalized)
		if err != nil {
			return nil, err
		}
		if equipment != nil {
			items = append(items, dto.OrderItemRequest{
				ItemKind: entity.ItemKindEquipment,
				ItemID:   equipment.ID,
				Quantity: line.Quantity,
			})
			continue
		}
		skipped = append(skipped, line.Name)
	}
	if len(items) == 0 {
		return nil, domain.ErrInvalidInput
	}

	order, err := uc.CreateOrder(ctx, companyID, userID, dto.CreateOrderRequest{
		CustomerName:    in.CustomerName,
		Items:           items,
		Freight:         in.Freight,
		PaymentMethod:   in.PaymentMethod,
		AppointmentAt:   in.AppointmentAt,
		AppointmentSite: in.AppointmentSite,
		DueDate:         in.DueDate,
	})
	if err != nil {
		return nil, err
	}
	return &dto.ImportLegacyOrderResponse{Order: order, Skipped: skipped}, nil
}
