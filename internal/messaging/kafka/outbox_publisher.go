package kafka

import (
	"context"
	"fmt"

	"github.com/vladislavdragonenkov/orders/internal/domain"
	"github.com/vladislavdragonenkov/orders/internal/messaging"
)

// OutboxTopicPublisher публикует outbox-сообщения в заданный Kafka topic.
type OutboxTopicPublisher struct {
	producer *Producer
	topic    string
}

// NewOutboxPublisher создаёт Kafka-паблишер для transactional outbox.
func NewOutboxPublisher(producer *Producer, topic string) *OutboxTopicPublisher {
	if topic == "" {
		topic = TopicOrderEvents
	}
	return &OutboxTopicPublisher{
		producer: producer,
		topic:    topic,
	}
}

// NewDLQPublisher создаёт паблишер в dead letter topic.
func NewDLQPublisher(producer *Producer) *OutboxTopicPublisher {
	return NewOutboxPublisher(producer, TopicDeadLetterQueue)
}

// Publish отправляет событие, ключ партиционирования — идентификатор агрегата.
func (p *OutboxTopicPublisher) Publish(ctx context.Context, event domain.OutboxMessage) error {
	if p == nil || p.producer == nil {
		return fmt.Errorf("kafka outbox publisher is not initialized")
	}

	key := event.AggregateID
	if key == "" {
		key = event.ID
	}

	value, err := messaging.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal envelope: %w", err)
	}

	return p.producer.Send(ctx, p.topic, key, value, envelopeHeaders(event))
}

// Topic возвращает целевой topic.
func (p *OutboxTopicPublisher) Topic() string {
	return p.topic
}

var _ domain.OutboxPublisher = (*OutboxTopicPublisher)(nil)
