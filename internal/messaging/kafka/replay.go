package kafka

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/IBM/sarama"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orders/internal/messaging"
)

const (
	defaultReplayLimit       = 100
	defaultReplayIdleTimeout = 2 * time.Second
)

// ReplayConfig задаёт параметры переотправки из DLQ.
type ReplayConfig struct {
	SourceTopic string
	TargetTopic string
	Limit       int
	// Execute=false — dry-run: кандидаты только логируются.
	Execute     bool
	FromNewest  bool
	IdleTimeout time.Duration
}

func (c *ReplayConfig) normalize() {
	if strings.TrimSpace(c.SourceTopic) == "" {
		c.SourceTopic = TopicDeadLetterQueue
	}
	if strings.TrimSpace(c.TargetTopic) == "" {
		c.TargetTopic = TopicOrderEvents
	}
	if c.Limit <= 0 {
		c.Limit = defaultReplayLimit
	}
	if c.IdleTimeout <= 0 {
		c.IdleTimeout = defaultReplayIdleTimeout
	}
}

// ReplayReport считает итог прохода по DLQ.
type ReplayReport struct {
	Processed int
	Replayed  int
	Skipped   int
}

type offsetClient interface {
	GetOffset(topic string, partition int32, time int64) (int64, error)
	Partitions(topic string) ([]int32, error)
}

type partitionConsumer interface {
	Messages() <-chan *sarama.ConsumerMessage
	Errors() <-chan *sarama.ConsumerError
	Close() error
}

type partitionSource interface {
	ConsumePartition(topic string, partition int32, offset int64) (partitionConsumer, error)
}

type saramaConsumerAdapter struct {
	consumer sarama.Consumer
}

func (a saramaConsumerAdapter) ConsumePartition(topic string, partition int32, offset int64) (partitionConsumer, error) {
	return a.consumer.ConsumePartition(topic, partition, offset)
}

// Replayer читает сообщения outbox из DLQ и публикует исходные события повторно.
type Replayer struct {
	client   offsetClient
	consumer partitionSource
	producer *Producer
	logger   *log.Entry
	closers  []func() error
}

// NewReplayer подключается к Kafka. Producer создаётся только при execute.
func NewReplayer(brokers []string, execute bool, logger *log.Entry) (*Replayer, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("kafka brokers are not configured")
	}

	cfg := sarama.NewConfig()
	cfg.ClientID = defaultClientID
	cfg.Consumer.Return.Errors = true

	client, err := sarama.NewClient(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	consumer, err := sarama.NewConsumerFromClient(client)
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("create kafka consumer: %w", err)
	}

	r := newReplayer(client, saramaConsumerAdapter{consumer: consumer}, nil, logger)
	r.closers = append(r.closers, consumer.Close, client.Close)

	if execute {
		producer, err := NewProducer(ProducerConfig{Brokers: brokers}, logger)
		if err != nil {
			_ = r.Close()
			return nil, err
		}
		r.producer = producer
		r.closers = append([]func() error{producer.Close}, r.closers...)
	}
	return r, nil
}

func newReplayer(client offsetClient, consumer partitionSource, producer *Producer, logger *log.Entry) *Replayer {
	if logger == nil {
		logger = log.WithField("component", "dlq-replay")
	}
	return &Replayer{client: client, consumer: consumer, producer: producer, logger: logger}
}

// Close освобождает producer, consumer и client.
func (r *Replayer) Close() error {
	var errs []error
	for _, closeFn := range r.closers {
		if err := closeFn(); err != nil {
			errs = append(errs, err)
		}
	}
	r.closers = nil
	return errors.Join(errs...)
}

// Run проходит по партициям DLQ, пока не наберёт Limit сообщений или не дойдёт до конца.
func (r *Replayer) Run(ctx context.Context, cfg ReplayConfig) (ReplayReport, error) {
	cfg.normalize()
	var report ReplayReport
	if cfg.Execute && r.producer == nil {
		return report, fmt.Errorf("producer is required in execute mode")
	}

	partitions, err := r.client.Partitions(cfg.SourceTopic)
	if err != nil {
		return report, fmt.Errorf("get partitions for topic %s: %w", cfg.SourceTopic, err)
	}
	sort.Slice(partitions, func(i, j int) bool { return partitions[i] < partitions[j] })

	var publisher *OutboxTopicPublisher
	if cfg.Execute {
		publisher = NewOutboxPublisher(r.producer, cfg.TargetTopic)
	}

	for _, partition := range partitions {
		if report.Processed >= cfg.Limit {
			break
		}
		if err := r.replayPartition(ctx, cfg, publisher, partition, &report); err != nil {
			return report, err
		}
	}

	r.logger.WithFields(log.Fields{
		"execute":   cfg.Execute,
		"processed": report.Processed,
		"replayed":  report.Replayed,
		"skipped":   report.Skipped,
	}).Info("dlq replay finished")
	return report, nil
}

func (r *Replayer) replayPartition(ctx context.Context, cfg ReplayConfig, publisher *OutboxTopicPublisher, partition int32, report *ReplayReport) error {
	limit := cfg.Limit - report.Processed

	oldest, err := r.client.GetOffset(cfg.SourceTopic, partition, sarama.OffsetOldest)
	if err != nil {
		return fmt.Errorf("get oldest offset for partition %d: %w", partition, err)
	}
	newest, err := r.client.GetOffset(cfg.SourceTopic, partition, sarama.OffsetNewest)
	if err != nil {
		return fmt.Errorf("get newest offset for partition %d: %w", partition, err)
	}
	if newest <= oldest {
		return nil
	}

	start := oldest
	if cfg.FromNewest {
		start = max(newest-int64(limit), oldest)
	}

	pc, err := r.consumer.ConsumePartition(cfg.SourceTopic, partition, start)
	if err != nil {
		return fmt.Errorf("consume partition %d: %w", partition, err)
	}
	defer func() { _ = pc.Close() }()

	idle := time.NewTimer(cfg.IdleTimeout)
	defer idle.Stop()

	for seen := 0; seen < limit; {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-idle.C:
			return nil
		case consumerErr := <-pc.Errors():
			if consumerErr != nil {
				return fmt.Errorf("partition %d consumer error: %w", partition, consumerErr)
			}
		case msg, ok := <-pc.Messages():
			if !ok || msg == nil || msg.Offset >= newest {
				return nil
			}
			idle.Reset(cfg.IdleTimeout)
			seen++
			report.Processed++
			last := msg.Offset+1 >= newest

			event, err := messaging.DecodeDLQ(msg.Value)
			if err != nil {
				report.Skipped++
				r.logger.WithError(err).WithFields(log.Fields{
					"partition": msg.Partition,
					"offset":    msg.Offset,
				}).Warn("skip unsupported dlq message")
				if last {
					return nil
				}
				continue
			}

			if publisher != nil {
				if err := publisher.Publish(ctx, event); err != nil {
					return fmt.Errorf("replay outbox %s: %w", event.ID, err)
				}
			} else {
				r.logger.WithFields(log.Fields{
					"partition":    msg.Partition,
					"offset":       msg.Offset,
					"outbox_id":    event.ID,
					"target_topic": cfg.TargetTopic,
				}).Info("dlq replay candidate")
			}
			report.Replayed++

			if last {
				return nil
			}
		}
	}
	return nil
}
