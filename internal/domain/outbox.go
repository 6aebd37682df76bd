package domain

import "time"

const (
	// AggregateTypeOrder — тип агрегата для событий заказа в outbox.
	AggregateTypeOrder = "order"
	// EventTypeOrderCreated публикуется после успешного оформления заказа.
	EventTypeOrderCreated = "order.created"
)

// OutboxMessage хранит данные для публикуемого события.
type OutboxMessage struct {
	ID            string
	AggregateType string
	AggregateID   string
	EventType     string
	Payload       []byte
	CreatedAt     time.Time
}

// OutboxStats описывает текущее состояние backlog transactional outbox.
type OutboxStats struct {
	PendingCount    int
	OldestPendingAt time.Time
}
