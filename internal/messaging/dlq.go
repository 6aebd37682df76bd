package messaging

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

// DLQRecord описывает сообщение в dead letter queue: исходное событие и причину отказа.
type DLQRecord struct {
	OutboxID       string          `json:"outbox_id"`
	AggregateType  string          `json:"aggregate_type"`
	AggregateID    string          `json:"aggregate_id"`
	EventType      string          `json:"event_type"`
	Payload        json.RawMessage `json:"payload"`
	PublishError   string          `json:"publish_error"`
	CreatedAt      time.Time       `json:"created_at"`
	DLQPublishedAt time.Time       `json:"dlq_published_at"`
}

// NewDLQRecord описывает событие, которое не удалось опубликовать.
func NewDLQRecord(event domain.OutboxMessage, publishErr error, at time.Time) DLQRecord {
	record := DLQRecord{
		OutboxID:       event.ID,
		AggregateType:  event.AggregateType,
		AggregateID:    event.AggregateID,
		EventType:      event.EventType,
		Payload:        json.RawMessage(event.Payload),
		CreatedAt:      event.CreatedAt.UTC(),
		DLQPublishedAt: at.UTC(),
	}
	if len(record.Payload) == 0 {
		record.Payload = json.RawMessage("null")
	}
	if publishErr != nil {
		record.PublishError = publishErr.Error()
	}
	return record
}

// Message упаковывает запись в outbox-сообщение для DLQ publisher.
// ID и ключ агрегата совпадают с исходным событием.
func (r DLQRecord) Message() (domain.OutboxMessage, error) {
	payload, err := json.Marshal(r)
	if err != nil {
		return domain.OutboxMessage{}, fmt.Errorf("marshal dlq record: %w", err)
	}
	return domain.OutboxMessage{
		ID:            r.OutboxID,
		AggregateType: r.AggregateType,
		AggregateID:   r.AggregateID,
		EventType:     r.EventType,
		Payload:       payload,
		CreatedAt:     r.CreatedAt,
	}, nil
}

// DecodeDLQ восстанавливает исходное outbox-сообщение из тела DLQ-сообщения.
// Пустые поля записи берутся из конверта.
func DecodeDLQ(value []byte) (domain.OutboxMessage, error) {
	var envelope Envelope
	if err := json.Unmarshal(value, &envelope); err != nil {
		return domain.OutboxMessage{}, fmt.Errorf("decode envelope: %w", err)
	}

	var record DLQRecord
	if err := json.Unmarshal(envelope.Payload, &record); err != nil {
		return domain.OutboxMessage{}, fmt.Errorf("decode dlq record: %w", err)
	}
	if len(record.Payload) == 0 || string(record.Payload) == "null" {
		return domain.OutboxMessage{}, errors.New("dlq record has no original payload")
	}

	createdAt := record.CreatedAt
	if createdAt.IsZero() {
		createdAt = envelope.OccurredAt
	}
	return domain.OutboxMessage{
		ID:            orDefault(record.OutboxID, envelope.ID),
		AggregateType: orDefault(record.AggregateType, envelope.AggregateType),
		AggregateID:   orDefault(record.AggregateID, envelope.AggregateID),
		EventType:     orDefault(record.EventType, envelope.EventType),
		Payload:       []byte(record.Payload),
		CreatedAt:     createdAt,
	}, nil
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}
