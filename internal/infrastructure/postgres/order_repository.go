package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/distribuidora-api/internal/domain"
	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/distribuidora-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación del puerto OrderRepository sobre PostgreSQL (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de persistencia para pedidos. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `id, company_id, customer_id, customer_name, products_text, freight, total, total_payed,
		payment_status, payment_method, delivery_status, signature, appointment_at, appointment_site,
		issue_date, due_date, created_at, updated_at`

// Create persiste un nuevo pedido (las líneas van por CreateItem en la misma
// transacción).
func (r *OrderRepo) Create(order *entity.Order) error {
	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.CompanyID, order.CustomerID, order.CustomerName, order.ProductsText,
		order.Freight, order.Total, order.TotalPayed, order.PaymentStatus, order.PaymentMethod,
		order.DeliveryStatus, order.Signature, order.AppointmentAt, order.AppointmentSite,
		order.IssueDate, order.DueDate, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// GetByID obtiene un pedido por ID.
func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetForUpdate obtiene un pedido con lock de fila (FOR UPDATE). Serializa
// las transiciones de estado concurrentes sobre el mismo pedido.
func (r *OrderRepo) GetForUpdate(id string) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// ListByCompany lista pedidos por empresa, cita más próxima primero.
func (r *OrderRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders
		WHERE company_id = $1 ORDER BY appointment_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var list []*entity.Order
	for rows.Next() {
		o, err := r.scanOrder(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

// Update actualiza un pedido existente (estado, firma, totales, cliente).
func (r *OrderRepo) Update(order *entity.Order) error {
	query := `
		UPDATE orders SET customer_id = NULLIF($2, ''), customer_name = $3, products_text = $4,
			freight = $5, total = $6, total_payed = $7, payment_status = $8, payment_method = $9,
			delivery_status = $10, signature = $11, appointment_at = $12, appointment_site = $13,
			issue_date = $14, due_date = $15, updated_at = $16
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		order.ID, order.CustomerID, order.CustomerName, order.ProductsText,
		order.Freight, order.Total, order.TotalPayed, order.PaymentStatus, order.PaymentMethod,
		order.DeliveryStatus, order.Signature, order.AppointmentAt, order.AppointmentSite,
		order.IssueDate, order.DueDate, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un pedido y sus líneas (ON DELETE CASCADE). Los movimientos
// y préstamos referencian por order_ref y sobreviven como rastro.
func (r *OrderRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CreateItem persiste una línea del pedido.
func (r *OrderRepo) CreateItem(item *entity.OrderItem) error {
	query := `
		INSERT INTO order_items (id, order_id, item_kind, item_id, item_name, quantity, returned_quantity, unit_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.OrderID, item.ItemKind, item.ItemID, item.ItemName,
		item.Quantity, item.ReturnedQuantity, item.UnitPrice,
	)
	if err != nil {
		return fmt.Errorf("insert order item: %w", err)
	}
	return nil
}

// ListItems lista las líneas de un pedido en orden de inserción.
func (r *OrderRepo) ListItems(orderID string) ([]*entity.OrderItem, error) {
	query := `
		SELECT id, order_id, item_kind, item_id, item_name, quantity, returned_quantity, unit_price
		FROM order_items WHERE order_id = $1 ORDER BY item_name`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()

	var items []*entity.OrderItem
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ItemKind, &it.ItemID, &it.ItemName,
			&it.Quantity, &it.ReturnedQuantity, &it.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

// UpdateItem actualiza la cantidad devuelta de una línea.
func (r *OrderRepo) UpdateItem(item *entity.OrderItem) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE order_items SET returned_quantity = $2 WHERE id = $1`,
		item.ID, item.ReturnedQuantity,
	)
	if err != nil {
		return fmt.Errorf("update order item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SumReservedQuantity suma las unidades de un producto comprometidas en
// pedidos con cita posterior a `after` que aún no fueron coletados.
func (r *OrderRepo) SumReservedQuantity(companyID, productID string, after time.Time) (int, error) {
	query := `
		SELECT COALESCE(SUM(oi.quantity - oi.returned_quantity), 0)
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE o.company_id = $1
		  AND oi.item_kind = 'product'
		  AND oi.item_id = $2
		  AND o.appointment_at > $3
		  AND o.delivery_status <> 'Coletado'`
	var total int
	if err := r.q.QueryRow(context.Background(), query, companyID, productID, after).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum reserved quantity: %w", err)
	}
	return total, nil
}

func (r *OrderRepo) scanOne(row pgx.Row) (*entity.Order, error) {
	o, err := scanOrderRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

func (r *OrderRepo) scanOrder(rows pgx.Rows) (*entity.Order, error) {
	o, err := scanOrderRow(rows)
	if err != nil {
		return nil, fmt.Errorf("scan order: %w", err)
	}
	return o, nil
}

func scanOrderRow(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	var customerID *string
	err := row.Scan(
		&o.ID, &o.CompanyID, &customerID, &o.CustomerName, &o.ProductsText,
		&o.Freight, &o.Total, &o.TotalPayed, &o.PaymentStatus, &o.PaymentMethod,
		&o.DeliveryStatus, &o.Signature, &o.AppointmentAt, &o.AppointmentSite,
		&o.IssueDate, &o.DueDate, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if customerID != nil {
		o.CustomerID = *customerID
	}
	return &o, nil
}
