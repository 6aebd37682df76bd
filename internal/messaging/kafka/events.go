package kafka

import "github.com/vladislavdragonenkov/orders/internal/domain"

// Topics для Kafka.
const (
	TopicOrderEvents     = "orders.events"
	TopicDeadLetterQueue = "orders.dlq"
)

// Заголовки сообщений.
const (
	HeaderEventType     = "x-event-type"
	HeaderAggregateType = "x-aggregate-type"
	HeaderOutboxID      = "x-outbox-id"
)

func envelopeHeaders(event domain.OutboxMessage) map[string]string {
	return map[string]string{
		HeaderEventType:     event.EventType,
		HeaderAggregateType: event.AggregateType,
		HeaderOutboxID:      event.ID,
	}
}
