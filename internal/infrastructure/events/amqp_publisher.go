package events

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/jhoicas/distribuidora-api/internal/application/ports"
	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/distribuidora-api/pkg/logger"
)

var _ ports.EventPublisher = (*AMQPPublisher)(nil)

// AMQPPublisher publica eventos de negocio en un exchange topic de RabbitMQ.
// Fire-and-forget: los errores se registran en el log y nunca se propagan a
// la transacción que originó el evento.
type AMQPPublisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
	log      *logger.Logger
}

// NewAMQPPublisher conecta al broker y declara el exchange.
func NewAMQPPublisher(url, exchange string, log *logger.Logger) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	return &AMQPPublisher{conn: conn, ch: ch, exchange: exchange, log: log}, nil
}

// Close cierra canal y conexión.
func (p *AMQPPublisher) Close() {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}

// MovementRegistered publica stock.movement.registered.
func (p *AMQPPublisher) MovementRegistered(ctx context.Context, movement *entity.StockMovement) {
	p.publish(ctx, "stock.movement.registered", map[string]any{
		"movement_id": movement.ID,
		"company_id":  movement.CompanyID,
		"item_kind":   movement.ItemKind,
		"item_id":     movement.ItemID,
		"type":        movement.Type,
		"quantity":    movement.Quantity,
		"order_ref":   movement.OrderRef,
		"created_at":  movement.CreatedAt,
	})
}

// LoanRegistered publica loan.registered.
func (p *AMQPPublisher) LoanRegistered(ctx context.Context, loan *entity.EquipmentLoan) {
	p.publish(ctx, "loan.registered", map[string]any{
		"loan_id":      loan.ID,
		"company_id":   loan.CompanyID,
		"customer_id":  loan.CustomerID,
		"equipment_id": loan.EquipmentID,
		"quantity":     loan.Quantity,
		"order_ref":    loan.OrderRef,
		"loan_date":    loan.LoanDate,
	})
}

// LoanReturned publica loan.returned.
func (p *AMQPPublisher) LoanReturned(ctx context.Context, loan *entity.EquipmentLoan, returnedQty int) {
	p.publish(ctx, "loan.returned", map[string]any{
		"loan_id":     loan.ID,
		"company_id":  loan.CompanyID,
		"customer_id": loan.CustomerID,
		"quantity":    returnedQty,
		"outstanding": loan.Outstanding(),
		"status":      loan.Status,
	})
}

// DeliveryAdvanced publica order.delivery.advanced.
func (p *AMQPPublisher) DeliveryAdvanced(ctx context.Context, order *entity.Order) {
	p.publish(ctx, "order.delivery.advanced", map[string]any{
		"order_id":        order.ID,
		"company_id":      order.CompanyID,
		"customer_id":     order.CustomerID,
		"delivery_status": order.DeliveryStatus,
	})
}

func (p *AMQPPublisher) publish(ctx context.Context, routingKey string, payload map[string]any) {
	body, err := json.Marshal(payload)
	if err != nil {
		p.log.Error().Err(err).Str("routing_key", routingKey).Msg("marshal event")
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	err = p.ch.PublishWithContext(ctx, p.exchange, routingKey, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
		Timestamp:   time.Now(),
	})
	if err != nil {
		p.log.Error().Err(err).Str("routing_key", routingKey).Msg("publish event")
	}
}
