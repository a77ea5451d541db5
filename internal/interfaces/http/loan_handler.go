package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/distribuidora-api/internal/application/dto"
	"github.com/jhoicas/distribuidora-api/internal/application/loans"
)

// LoanHandler maneja préstamos de equipo retornable (protegido).
type LoanHandler struct {
	uc *loans.TrackerUseCase
}

// NewLoanHandler construye el handler.
func NewLoanHandler(uc *loans.TrackerUseCase) *LoanHandler {
	return &LoanHandler{uc: uc}
}

// Register godoc
// @Summary      Registrar préstamo manual de equipo
// @Tags         loans
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterLoanRequest  true  "customer_id, equipment_id, quantity"
// @Success      201  {object}  dto.LoanResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/loans [post]
func (h *LoanHandler) Register(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	if companyID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.RegisterLoanRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.RegisterLoan(c.Context(), companyID, userID, in)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Return godoc
// @Summary      Devolver unidades de un préstamo
// @Description  Acepta devolución parcial; acredita el stock del equipo en la
//
//	misma transacción. Devolver más de lo pendiente es rechazado.
//
// @Tags         loans
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del préstamo"
// @Param        body  body  dto.LoanReturnRequest  true  "quantity"
// @Success      200  {object}  dto.LoanResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/loans/{id}/return [post]
func (h *LoanHandler) Return(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	if companyID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.LoanReturnRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.ReturnLoan(c.Context(), companyID, userID, c.Params("id"), in.Quantity)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(resp)
}

// ListOpenByCustomer godoc
// @Summary      Préstamos abiertos de un cliente
// @Tags         loans
// @Security     Bearer
// @Produce      json
// @Param        customer_id  query  string  true  "ID del cliente"
// @Success      200  {array}  dto.LoanResponse
// @Router       /api/loans [get]
func (h *LoanHandler) ListOpenByCustomer(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	customerID := c.Query("customer_id")
	if customerID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "customer_id requerido"})
	}
	list, err := h.uc.ListOpenByCustomer(c.Context(), companyID, customerID)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(list)
}

// ListReturns godoc
// @Summary      Auditoría de devoluciones de un préstamo
// @Tags         loans
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del préstamo"
// @Success      200  {array}   dto.LoanReturnAudit
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/loans/{id}/returns [get]
func (h *LoanHandler) ListReturns(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	list, err := h.uc.ListReturns(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(list)
}
