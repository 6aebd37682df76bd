package ordering

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

// OrderCreatedEvent — payload события order.created в outbox.
type OrderCreatedEvent struct {
	OrderID     string           `json:"order_id"`
	CustomerID  string           `json:"customer_id"`
	AmountMinor int64            `json:"amount_minor"`
	Lines       []OrderEventLine `json:"lines"`
	CreatedAt   time.Time        `json:"created_at"`
}

// OrderEventLine — позиция заказа в событии.
type OrderEventLine struct {
	ProductID  string `json:"product_id"`
	Quantity   int64  `json:"quantity"`
	PriceMinor int64  `json:"price_minor"`
}

func newOrderCreatedMessage(order domain.Order) (domain.OutboxMessage, error) {
	event := OrderCreatedEvent{
		OrderID:     order.ID,
		CustomerID:  order.CustomerID,
		AmountMinor: order.AmountMinor,
		Lines:       make([]OrderEventLine, 0, len(order.Lines)),
		CreatedAt:   order.CreatedAt,
	}
	for _, line := range order.Lines {
		event.Lines = append(event.Lines, OrderEventLine{
			ProductID:  line.ProductID,
			Quantity:   line.Quantity,
			PriceMinor: line.PriceMinor,
		})
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return domain.OutboxMessage{}, fmt.Errorf("marshal order created event: %w", err)
	}

	return domain.OutboxMessage{
		AggregateType: domain.AggregateTypeOrder,
		AggregateID:   order.ID,
		EventType:     domain.EventTypeOrderCreated,
		Payload:       payload,
		CreatedAt:     order.CreatedAt,
	}, nil
}
