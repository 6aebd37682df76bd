// Package messaging содержит общий формат событий для брокеров.
package messaging

import (
	"encoding/json"
	"time"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

// Envelope — формат сообщения в брокере: метаданные outbox и исходный payload.
type Envelope struct {
	ID            string          `json:"id"`
	AggregateType string          `json:"aggregate_type"`
	AggregateID   string          `json:"aggregate_id"`
	EventType     string          `json:"event_type"`
	Payload       json.RawMessage `json:"payload"`
	OccurredAt    time.Time       `json:"occurred_at"`
	PublishedAt   time.Time       `json:"published_at"`
}

// NewEnvelope оборачивает outbox-сообщение.
func NewEnvelope(event domain.OutboxMessage, publishedAt time.Time) Envelope {
	payload := json.RawMessage(event.Payload)
	if len(payload) == 0 {
		payload = json.RawMessage("null")
	}
	return Envelope{
		ID:            event.ID,
		AggregateType: event.AggregateType,
		AggregateID:   event.AggregateID,
		EventType:     event.EventType,
		Payload:       payload,
		OccurredAt:    event.CreatedAt,
		PublishedAt:   publishedAt,
	}
}

// Marshal сериализует конверт события.
func Marshal(event domain.OutboxMessage) ([]byte, error) {
	return json.Marshal(NewEnvelope(event, time.Now().UTC()))
}
