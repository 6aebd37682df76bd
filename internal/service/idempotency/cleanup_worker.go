// Package idempotency содержит фоновую очистку просроченных ключей идемпотентности.
package idempotency

import (
	"context"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orders/internal/metrics"
)

const (
	defaultCleanupInterval  = 10 * time.Minute
	defaultCleanupBatchSize = 500
)

// ExpiredKeyStore удаляет просроченные ключи.
// Реализуется domain.IdempotencyRepository.
type ExpiredKeyStore interface {
	DeleteExpired(ctx context.Context, before time.Time, limit int) (int, error)
}

// CleanupOption настраивает CleanupWorker.
type CleanupOption func(*CleanupWorker)

// WithLogger задаёт logger для воркера.
func WithLogger(logger *log.Entry) CleanupOption {
	return func(w *CleanupWorker) { w.logger = logger }
}

// WithInterval задаёт паузу между проходами очистки.
func WithInterval(interval time.Duration) CleanupOption {
	return func(w *CleanupWorker) { w.interval = interval }
}

// WithBatchSize задаёт число ключей, удаляемых одним запросом.
func WithBatchSize(batchSize int) CleanupOption {
	return func(w *CleanupWorker) { w.batchSize = batchSize }
}

// WithMetrics задаёт метрики очистки.
func WithMetrics(m *metrics.CleanupMetrics) CleanupOption {
	return func(w *CleanupWorker) { w.metrics = m }
}

// WithClock подменяет источник текущего времени.
func WithClock(now func() time.Time) CleanupOption {
	return func(w *CleanupWorker) { w.now = now }
}

// CleanupWorker удаляет ключи, у которых истёк TTL.
type CleanupWorker struct {
	store     ExpiredKeyStore
	logger    *log.Entry
	metrics   *metrics.CleanupMetrics
	now       func() time.Time
	interval  time.Duration
	batchSize int
}

// NewCleanupWorker создаёт воркер очистки.
func NewCleanupWorker(store ExpiredKeyStore, options ...CleanupOption) *CleanupWorker {
	w := &CleanupWorker{store: store}
	for _, option := range options {
		option(w)
	}

	if w.logger == nil {
		w.logger = log.WithField("component", "idempotency-cleanup-worker")
	}
	if w.now == nil {
		w.now = func() time.Time { return time.Now().UTC() }
	}
	if w.interval <= 0 {
		w.interval = defaultCleanupInterval
	}
	if w.batchSize <= 0 {
		w.batchSize = defaultCleanupBatchSize
	}
	return w
}

// Run выполняет проход сразу и затем каждые interval до отмены ctx.
func (w *CleanupWorker) Run(ctx context.Context) error {
	if w.store == nil {
		w.logger.Warn("idempotency cleanup worker is disabled: store is nil")
		return nil
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		w.sweep(ctx)

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *CleanupWorker) sweep(ctx context.Context) {
	deleted, err := w.DeleteExpired(ctx, w.now())
	if errors.Is(err, context.Canceled) {
		return
	}
	w.metrics.ObserveSweep(deleted, err)

	switch {
	case err != nil:
		w.logger.WithError(err).WithField("deleted", deleted).Warn("idempotency cleanup run failed")
	case deleted > 0:
		w.logger.WithField("deleted", deleted).Info("idempotency cleanup completed")
	}
}

// DeleteExpired удаляет все ключи с TTL не позже before.
// Удаление идёт порциями, пока хранилище возвращает полную порцию.
func (w *CleanupWorker) DeleteExpired(ctx context.Context, before time.Time) (int, error) {
	if before.IsZero() {
		before = w.now()
	}

	total := 0
	for ctx.Err() == nil {
		deleted, err := w.store.DeleteExpired(ctx, before, w.batchSize)
		total += deleted
		if err != nil {
			return total, err
		}
		if deleted < w.batchSize {
			return total, nil
		}
	}
	return total, ctx.Err()
}
