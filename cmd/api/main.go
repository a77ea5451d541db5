package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/distribuidora-api/internal/application/auth"
	"github.com/jhoicas/distribuidora-api/internal/application/finance"
	"github.com/jhoicas/distribuidora-api/internal/application/loans"
	"github.com/jhoicas/distribuidora-api/internal/application/orders"
	"github.com/jhoicas/distribuidora-api/internal/application/ports"
	"github.com/jhoicas/distribuidora-api/internal/application/stock"
	"github.com/jhoicas/distribuidora-api/internal/application/usecase"
	"github.com/jhoicas/distribuidora-api/internal/infrastructure/events"
	"github.com/jhoicas/distribuidora-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/distribuidora-api/internal/interfaces/http"
	"github.com/jhoicas/distribuidora-api/pkg/config"
	"github.com/jhoicas/distribuidora-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	equipmentRepo := postgres.NewEquipmentRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	loanRepo := postgres.NewEquipmentLoanRepository(pool)
	recordRepo := postgres.NewFinancialRecordRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Eventos: RabbitMQ si hay URL configurada, si no publisher nulo.
	var publisher ports.EventPublisher = ports.NopPublisher{}
	if cfg.AMQP.URL != "" {
		amqpPub, err := events.NewAMQPPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange, log)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a RabbitMQ")
		}
		defer amqpPub.Close()
		publisher = amqpPub
	}

	stockUC := stock.NewLedgerUseCase(txRunner, orderRepo, productRepo, equipmentRepo, publisher, stock.Policy{
		BlockOnInsufficient: cfg.Stock.BlockOnInsufficient,
	})
	loanUC := loans.NewTrackerUseCase(txRunner, stockUC, loanRepo, customerRepo, equipmentRepo, publisher)
	orderUC := orders.NewLifecycleUseCase(
		txRunner, orderRepo, customerRepo, loanRepo, productRepo, equipmentRepo,
		stockUC, loanUC, stockUC, publisher,
	)
	financeUC := finance.NewReconcilerUseCase(txRunner, orderRepo, recordRepo)
	productUC := usecase.NewProductUseCase(productRepo)
	equipmentUC := usecase.NewEquipmentUseCase(equipmentRepo)
	customerUC := usecase.NewCustomerUseCase(customerRepo)
	authUC := auth.NewAuthUseCase(userRepo, companyRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Distribuidora API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ProductUC:   productUC,
		EquipmentUC: equipmentUC,
		CustomerUC:  customerUC,
		StockUC:     stockUC,
		LoanUC:      loanUC,
		OrderUC:     orderUC,
		FinanceUC:   financeUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("apagando servidor")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}
