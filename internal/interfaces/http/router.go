package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/distribuidora-api/internal/application/auth"
	"github.com/jhoicas/distribuidora-api/internal/application/finance"
	"github.com/jhoicas/distribuidora-api/internal/application/loans"
	"github.com/jhoicas/distribuidora-api/internal/application/orders"
	"github.com/jhoicas/distribuidora-api/internal/application/stock"
	"github.com/jhoicas/distribuidora-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	ProductUC   *usecase.ProductUseCase
	EquipmentUC *usecase.EquipmentUseCase
	CustomerUC  *usecase.CustomerUseCase
	StockUC     *stock.LedgerUseCase
	LoanUC      *loans.TrackerUseCase
	OrderUC     *orders.LifecycleUseCase
	FinanceUC   *finance.ReconcilerUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)

	// Equipment (protegido)
	equipment := protected.Group("/equipment")
	equipmentHandler := NewEquipmentHandler(deps.EquipmentUC)
	equipment.Post("/", equipmentHandler.Create)
	equipment.Get("/", equipmentHandler.List)
	equipment.Get("/:id", equipmentHandler.GetByID)

	// Customers (protegido)
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)

	// Stock ledger (protegido)
	stockGroup := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.StockUC)
	stockGroup.Post("/movements", stockHandler.ApplyMovement)
	stockGroup.Get("/movements", stockHandler.ListMovements)
	stockGroup.Get("/availability/:id", stockHandler.Availability)

	// Equipment loans (protegido)
	loansGroup := protected.Group("/loans")
	loanHandler := NewLoanHandler(deps.LoanUC)
	loansGroup.Post("/", loanHandler.Register)
	loansGroup.Get("/", loanHandler.ListOpenByCustomer)
	loansGroup.Post("/:id/return", loanHandler.Return)
	loansGroup.Get("/:id/returns", loanHandler.ListReturns)

	// Orders (protegido)
	ordersGroup := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC)
	ordersGroup.Post("/", orderHandler.Create)
	ordersGroup.Post("/import", orderHandler.ImportLegacy)
	ordersGroup.Get("/", orderHandler.List)
	ordersGroup.Get("/:id", orderHandler.GetByID)
	ordersGroup.Delete("/:id", RequireRole("admin"), orderHandler.Delete)
	ordersGroup.Put("/:id/signature", orderHandler.CaptureSignature)
	ordersGroup.Get("/:id/prepare-delivery", orderHandler.PrepareDelivery)
	ordersGroup.Post("/:id/confirm-delivery", orderHandler.ConfirmDelivery)
	ordersGroup.Get("/:id/prepare-collection", orderHandler.PrepareCollection)
	ordersGroup.Post("/:id/confirm-collection", orderHandler.ConfirmCollection)
	ordersGroup.Post("/:id/product-return", orderHandler.ProductReturn)
	ordersGroup.Post("/:id/payments", orderHandler.RegisterPayment)

	// Finance (protegido)
	financeGroup := protected.Group("/finance")
	financeHandler := NewFinanceHandler(deps.FinanceUC)
	financeGroup.Get("/ledger", financeHandler.Ledger)
	financeGroup.Post("/records", financeHandler.CreateRecord)
	financeGroup.Get("/records", financeHandler.ListRecords)
	financeGroup.Post("/records/:id/payments", financeHandler.RegisterPayment)
	financeGroup.Delete("/records/:id", RequireRole("admin"), financeHandler.DeleteRecord)
}
