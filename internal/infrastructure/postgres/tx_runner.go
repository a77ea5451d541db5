package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/distribuidora-api/internal/application/finance"
	"github.com/jhoicas/distribuidora-api/internal/application/loans"
	"github.com/jhoicas/distribuidora-api/internal/application/orders"
	"github.com/jhoicas/distribuidora-api/internal/application/stock"
	"github.com/jhoicas/distribuidora-api/internal/domain/repository"
)

// Ensure TxRunner implementa los runners de stock, préstamos, pedidos y
// asientos financieros.
var _ stock.TxRunner = (*TxRunner)(nil)
var _ loans.TxRunner = (*TxRunner)(nil)
var _ orders.TxRunner = (*TxRunner)(nil)
var _ finance.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL. Es la
// unidad compensable del motor: movimiento + conteo, préstamos + avance de
// estado, devolución + descuento de total caen (o se revierten) juntos.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción con los repositorios del libro de stock.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	equipmentRepo repository.EquipmentRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewStockMovementRepository(tx), NewProductRepository(tx), NewEquipmentRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunLoan inicia una transacción con los repositorios de préstamos.
func (r *TxRunner) RunLoan(ctx context.Context, fn func(
	loanRepo repository.EquipmentLoanRepository,
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	equipmentRepo repository.EquipmentRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewEquipmentLoanRepository(tx), NewStockMovementRepository(tx), NewProductRepository(tx), NewEquipmentRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunRecord inicia una transacción con el repositorio de asientos
// financieros (abonos con fila bloqueada).
func (r *TxRunner) RunRecord(ctx context.Context, fn func(recordRepo repository.FinancialRecordRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewFinancialRecordRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunOrder inicia una transacción con todos los repositorios que puede
// tocar una transición del ciclo de vida del pedido.
func (r *TxRunner) RunOrder(ctx context.Context, fn func(
	orderRepo repository.OrderRepository,
	customerRepo repository.CustomerRepository,
	loanRepo repository.EquipmentLoanRepository,
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	equipmentRepo repository.EquipmentRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(
		NewOrderRepository(tx),
		NewCustomerRepository(tx),
		NewEquipmentLoanRepository(tx),
		NewStockMovementRepository(tx),
		NewProductRepository(tx),
		NewEquipmentRepository(tx),
	); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
