package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/distribuidora-api/internal/application/dto"
	"github.com/jhoicas/distribuidora-api/internal/application/finance"
)

// FinanceHandler maneja el libro financiero unificado y los registros
// manuales (protegido).
type FinanceHandler struct {
	uc *finance.ReconcilerUseCase
}

// NewFinanceHandler construye el handler.
func NewFinanceHandler(uc *finance.ReconcilerUseCase) *FinanceHandler {
	return &FinanceHandler{uc: uc}
}

// Ledger godoc
// @Summary      Libro financiero unificado
// @Description  Pedidos y registros manuales proyectados en un solo libro,
//
//	agrupados por mes (descendente) con totales derivados.
//
// @Tags         finance
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CombinedLedgerResponse
// @Router       /api/finance/ledger [get]
func (h *FinanceHandler) Ledger(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	resp, err := h.uc.Ledger(c.Context(), companyID)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(resp)
}

// CreateRecord godoc
// @Summary      Crear registro financiero manual
// @Tags         finance
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateFinancialRecordRequest  true  "counterparty, type, amount, issue_date"
// @Success      201  {object}  dto.FinancialRecordResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/finance/records [post]
func (h *FinanceHandler) CreateRecord(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateFinancialRecordRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.CreateRecord(c.Context(), companyID, in)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// ListRecords godoc
// @Summary      Listar registros financieros manuales
// @Tags         finance
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.FinancialRecordResponse
// @Router       /api/finance/records [get]
func (h *FinanceHandler) ListRecords(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)
	list, err := h.uc.ListRecords(c.Context(), companyID, limit, offset)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(list)
}

// RegisterPayment godoc
// @Summary      Registrar abono a un registro financiero
// @Tags         finance
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID del registro"
// @Param        body  body  dto.RegisterPaymentRequest  true  "amount"
// @Success      200  {object}  dto.FinancialRecordResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/finance/records/{id}/payments [post]
func (h *FinanceHandler) RegisterPayment(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.RegisterPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.RegisterPayment(c.Context(), companyID, c.Params("id"), in.Amount)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(resp)
}

// DeleteRecord godoc
// @Summary      Eliminar registro financiero manual
// @Tags         finance
// @Security     Bearer
// @Param        id  path  string  true  "ID del registro"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/finance/records/{id} [delete]
func (h *FinanceHandler) DeleteRecord(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	if err := h.uc.DeleteRecord(c.Context(), companyID, c.Params("id")); err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "registro eliminado"})
}
