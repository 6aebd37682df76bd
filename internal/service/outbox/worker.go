package outbox

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orders/internal/domain"
	"github.com/vladislavdragonenkov/orders/internal/messaging"
	"github.com/vladislavdragonenkov/orders/internal/metrics"
)

const (
	defaultPollInterval   = time.Second
	defaultBatchSize      = 100
	defaultMaxAttempts    = 3
	defaultRetryBaseDelay = 50 * time.Millisecond
)

// settings собирает параметры воркера из опций.
type settings struct {
	logger         *log.Entry
	dlq            domain.OutboxPublisher
	metrics        *metrics.OutboxMetrics
	pollInterval   time.Duration
	batchSize      int
	maxAttempts    int
	retryBaseDelay time.Duration
	now            func() time.Time
}

// Option настраивает Worker.
type Option func(*settings)

// WithLogger задаёт logger для воркера.
func WithLogger(logger *log.Entry) Option {
	return func(s *settings) { s.logger = logger }
}

// WithDLQPublisher задаёт publisher, куда уходят сообщения после исчерпания попыток.
func WithDLQPublisher(publisher domain.OutboxPublisher) Option {
	return func(s *settings) { s.dlq = publisher }
}

// WithMetrics задаёт метрики воркера.
func WithMetrics(m *metrics.OutboxMetrics) Option {
	return func(s *settings) { s.metrics = m }
}

// WithPollInterval задаёт частоту опроса outbox.
func WithPollInterval(interval time.Duration) Option {
	return func(s *settings) { s.pollInterval = interval }
}

// WithBatchSize задаёт число сообщений за один опрос.
func WithBatchSize(batchSize int) Option {
	return func(s *settings) { s.batchSize = batchSize }
}

// WithMaxAttempts задаёт число попыток публикации одного сообщения.
func WithMaxAttempts(maxAttempts int) Option {
	return func(s *settings) { s.maxAttempts = maxAttempts }
}

// WithRetryBaseDelay задаёт первую паузу между попытками, дальше она удваивается.
func WithRetryBaseDelay(delay time.Duration) Option {
	return func(s *settings) { s.retryBaseDelay = delay }
}

func (s *settings) normalize() {
	if s.logger == nil {
		s.logger = log.WithField("component", "outbox-worker")
	}
	if s.pollInterval <= 0 {
		s.pollInterval = defaultPollInterval
	}
	if s.batchSize <= 0 {
		s.batchSize = defaultBatchSize
	}
	if s.maxAttempts <= 0 {
		s.maxAttempts = defaultMaxAttempts
	}
	if s.retryBaseDelay < 0 {
		s.retryBaseDelay = 0
	}
	if s.now == nil {
		s.now = func() time.Time { return time.Now().UTC() }
	}
}

// Worker переносит pending-сообщения из outbox в брокер.
type Worker struct {
	repo      domain.OutboxRepository
	publisher domain.OutboxPublisher
	settings
}

// NewWorker создаёт outbox worker.
func NewWorker(repo domain.OutboxRepository, publisher domain.OutboxPublisher, options ...Option) *Worker {
	s := settings{
		pollInterval:   defaultPollInterval,
		batchSize:      defaultBatchSize,
		maxAttempts:    defaultMaxAttempts,
		retryBaseDelay: defaultRetryBaseDelay,
	}
	for _, option := range options {
		option(&s)
	}
	s.normalize()

	return &Worker{repo: repo, publisher: publisher, settings: s}
}

// Run опрашивает outbox до отмены ctx и возвращает nil после остановки.
func (w *Worker) Run(ctx context.Context) error {
	if w.repo == nil || w.publisher == nil {
		w.logger.Warn("outbox worker is disabled: repo or publisher is nil")
		return nil
	}

	w.logger.WithFields(log.Fields{
		"poll_interval": w.pollInterval,
		"batch_size":    w.batchSize,
		"max_attempts":  w.maxAttempts,
		"dlq":           w.dlq != nil,
	}).Info("outbox worker started")
	defer w.logger.Info("outbox worker stopped")

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		w.ProcessOnce(ctx)

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// ProcessOnce обрабатывает один батч и возвращает число опубликованных сообщений.
func (w *Worker) ProcessOnce(ctx context.Context) int {
	if ctx.Err() != nil {
		return 0
	}
	defer w.observeBacklog(ctx)

	batch, err := w.repo.PullPending(ctx, w.batchSize)
	if err != nil {
		w.logger.WithError(err).Warn("failed to pull pending outbox messages")
		return 0
	}

	sent := 0
	for _, event := range batch {
		if ctx.Err() != nil {
			break
		}
		if w.deliver(ctx, event) {
			sent++
		}
	}
	return sent
}

// deliver публикует одно сообщение и переводит его в sent или failed.
// При отмене ctx во время попыток сообщение остаётся pending.
func (w *Worker) deliver(ctx context.Context, event domain.OutboxMessage) bool {
	entry := w.logger.WithFields(log.Fields{
		"outbox_id":  event.ID,
		"event_type": event.EventType,
	})

	err := w.publish(ctx, event)
	switch {
	case err == nil:
		if markErr := w.repo.MarkSent(ctx, event.ID); markErr != nil {
			entry.WithError(markErr).Warn("failed to mark outbox as sent")
		}
		return true
	case ctx.Err() != nil:
		return false
	}

	entry.WithError(err).Error("outbox publish failed after retries")
	w.metrics.ObservePublish(metrics.PublishResultFailed)

	if dlqErr := w.moveToDLQ(ctx, event, err); dlqErr != nil {
		entry.WithError(dlqErr).Warn("failed to publish to DLQ")
		w.metrics.ObservePublish(metrics.PublishResultDLQFailed)
	}
	if markErr := w.repo.MarkFailed(ctx, event.ID); markErr != nil {
		entry.WithError(markErr).Warn("failed to mark outbox as failed")
	}
	return false
}

func (w *Worker) publish(ctx context.Context, event domain.OutboxMessage) error {
	var lastErr error
	for attempt := 1; attempt <= w.maxAttempts; attempt++ {
		if attempt > 1 {
			if err := sleep(ctx, w.retryBackoff(attempt-1)); err != nil {
				return err
			}
		}

		lastErr = w.publisher.Publish(ctx, event)
		if lastErr == nil {
			w.metrics.ObservePublish(metrics.PublishResultSent)
			return nil
		}
		w.metrics.ObservePublish(metrics.PublishResultRetryError)
	}
	return fmt.Errorf("publish failed after %d attempts: %w", w.maxAttempts, lastErr)
}

func (w *Worker) moveToDLQ(ctx context.Context, event domain.OutboxMessage, cause error) error {
	if w.dlq == nil {
		return nil
	}

	msg, err := messaging.NewDLQRecord(event, cause, w.now()).Message()
	if err != nil {
		return err
	}
	if err := w.dlq.Publish(ctx, msg); err != nil {
		return fmt.Errorf("publish to dlq: %w", err)
	}
	w.metrics.ObserveDLQ()
	return nil
}

func (w *Worker) observeBacklog(ctx context.Context) {
	if w.metrics == nil {
		return
	}
	stats, err := w.repo.Stats(ctx)
	if err != nil {
		w.logger.WithError(err).Warn("failed to collect outbox backlog stats")
		return
	}

	var age time.Duration
	if !stats.OldestPendingAt.IsZero() {
		age = w.now().Sub(stats.OldestPendingAt)
	}
	w.metrics.SetBacklog(stats.PendingCount, age)
}

// retryBackoff возвращает паузу после попытки attempt: base * 2^(attempt-1).
func (w *Worker) retryBackoff(attempt int) time.Duration {
	const maxDelay = time.Duration(1<<63 - 1)

	delay := w.retryBaseDelay
	if delay <= 0 {
		return 0
	}
	for i := 1; i < attempt; i++ {
		if delay > maxDelay/2 {
			return maxDelay
		}
		delay *= 2
	}
	return delay
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
