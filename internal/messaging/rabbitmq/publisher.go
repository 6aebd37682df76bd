package rabbitmq

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orders/internal/domain"
	"github.com/vladislavdragonenkov/orders/internal/messaging"
)

const (
	// DefaultQueue — очередь событий заказов по умолчанию.
	DefaultQueue   = "orders.events"
	publishTimeout = 3 * time.Second
)

// channel — подмножество amqp.Channel, используемое publisher.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher публикует outbox-сообщения в durable очередь через default exchange.
type Publisher struct {
	conn   *amqp.Connection
	ch     channel
	queue  string
	logger *log.Entry
}

// Dial подключается к брокеру, объявляет очередь и возвращает publisher.
func Dial(url, queue string, logger *log.Entry) (*Publisher, error) {
	if queue == "" {
		queue = DefaultQueue
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	// Объявляем очередь заранее, чтобы публикация не зависела от внешней настройки.
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare %s: %w", queue, err)
	}

	p := newPublisher(ch, queue, logger)
	p.conn = conn
	return p, nil
}

func newPublisher(ch channel, queue string, logger *log.Entry) *Publisher {
	if logger == nil {
		logger = log.WithField("component", "rabbitmq-publisher")
	}
	return &Publisher{ch: ch, queue: queue, logger: logger}
}

// Publish отправляет событие как persistent JSON-сообщение.
func (p *Publisher) Publish(ctx context.Context, event domain.OutboxMessage) error {
	body, err := messaging.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}

	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = p.ch.PublishWithContext(pubCtx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.ID,
		Type:         event.EventType,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		p.logger.WithError(err).WithField("outbox_id", event.ID).Error("failed to publish message to rabbitmq")
		return fmt.Errorf("publish to %s: %w", p.queue, err)
	}
	return nil
}

// Close закрывает канал и соединение.
func (p *Publisher) Close() error {
	chErr := p.ch.Close()
	if p.conn != nil {
		if err := p.conn.Close(); err != nil {
			return fmt.Errorf("close rabbitmq connection: %w", err)
		}
	}
	if chErr != nil {
		return fmt.Errorf("close rabbitmq channel: %w", chErr)
	}
	return nil
}

var _ domain.OutboxPublisher = (*Publisher)(nil)
