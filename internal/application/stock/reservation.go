package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/distribuidora-api/internal/application/dto"
	"github.com/jhoicas/distribuidora-api/internal/domain"
)

// ReservedStock suma las unidades del producto comprometidas en pedidos con
// cita futura que aún no llegan a Coletado. Es un cálculo consultivo de
// planeación, no una reserva dura.
func (uc *LedgerUseCase) ReservedStock(ctx context.Context, companyID, productID string) (int, error) {
	if productID == "" {
		return 0, domain.ErrInvalidInput
	}
	return uc.orderRepo.SumReservedQuantity(companyID, productID, time.Now())
}

// Availability devuelve stock físico, reservado y disponible del producto.
func (uc *LedgerUseCase) Availability(ctx context.Context, companyID, productID string) (*dto.AvailabilityResponse, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil || product.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	reserved, err := uc.ReservedStock(ctx, companyID, productID)
	if err != nil {
		return nil, err
	}
	resp := &dto.AvailabilityResponse{
		ProductID: productID,
		Stock:     product.Stock,
		Reserved:  reserved,
		Available: product.Stock - reserved,
	}
	if resp.Available < 0 {
		resp.Warning = fmt.Sprintf("el producto %q tiene %d unidades comprometidas de más", product.Name, -resp.Available)
	}
	return resp, nil
}

// CheckAvailability evalúa si una cantidad pedida cabe en el disponible.
// Devuelve una advertencia cuando no alcanza; solo bloquea (ErrInsufficientStock)
// si la política lo pide explícitamente.
func (uc *LedgerUseCase) CheckAvailability(ctx context.Context, companyID, productID string, wanted int) (string, error) {
	avail, err := uc.Availability(ctx, companyID, productID)
	if err != nil {
		return "", err
	}
	if wanted <= avail.Available {
		return "", nil
	}
	if uc.policy.BlockOnInsufficient {
		return "", domain.ErrInsufficientStock
	}
	return fmt.Sprintf("producto %s: pedido de %d unidades con solo %d disponibles (%d en stock, %d reservadas)",
		productID, wanted, avail.Available, avail.Stock, avail.Reserved), nil
}
