package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Результаты публикации outbox-сообщения для метки result.
const (
	PublishResultSent       = "sent"
	PublishResultRetryError = "retry_error"
	PublishResultFailed     = "failed"
	PublishResultDLQFailed  = "dlq_failed"
)

// OutboxMetrics содержит метрики outbox worker.
type OutboxMetrics struct {
	attempts   *prometheus.CounterVec
	pending    prometheus.Gauge
	oldestAge  prometheus.Gauge
	dlqRecords prometheus.Counter
}

// NewOutboxMetricsWithRegisterer создаёт метрики outbox в переданном registerer.
func NewOutboxMetricsWithRegisterer(registerer prometheus.Registerer) *OutboxMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &OutboxMetrics{
		attempts: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "orders_outbox_publish_attempts_total",
			Help: "Total number of outbox publish attempts grouped by result.",
		}, []string{"result"}),
		pending: registerGauge(registerer, prometheus.GaugeOpts{
			Name: "orders_outbox_pending_records",
			Help: "Current number of pending records in transactional outbox.",
		}),
		oldestAge: registerGauge(registerer, prometheus.GaugeOpts{
			Name: "orders_outbox_oldest_pending_age_seconds",
			Help: "Age in seconds of the oldest pending outbox record.",
		}),
		dlqRecords: registerCounter(registerer, prometheus.CounterOpts{
			Name: "orders_outbox_dlq_records_total",
			Help: "Total number of outbox records moved to the dead letter queue.",
		}),
	}
}

// ObservePublish учитывает попытку публикации с результатом result.
func (m *OutboxMetrics) ObservePublish(result string) {
	if m == nil {
		return
	}
	m.attempts.WithLabelValues(result).Inc()
}

// ObserveDLQ учитывает запись, отправленную в DLQ.
func (m *OutboxMetrics) ObserveDLQ() {
	if m == nil {
		return
	}
	m.dlqRecords.Inc()
}

// SetBacklog обновляет размер backlog и возраст самой старой pending-записи.
func (m *OutboxMetrics) SetBacklog(pending int, oldestAge time.Duration) {
	if m == nil {
		return
	}
	if oldestAge < 0 || pending == 0 {
		oldestAge = 0
	}
	m.pending.Set(float64(pending))
	m.oldestAge.Set(oldestAge.Seconds())
}

// CleanupMetrics содержит метрики очистки ключей идемпотентности.
type CleanupMetrics struct {
	runs        *prometheus.CounterVec
	deleted     prometheus.Counter
	lastDeleted prometheus.Gauge
}

// NewCleanupMetricsWithRegisterer создаёт метрики очистки в переданном registerer.
func NewCleanupMetricsWithRegisterer(registerer prometheus.Registerer) *CleanupMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &CleanupMetrics{
		runs: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "orders_idempotency_cleanup_runs_total",
			Help: "Total number of idempotency cleanup sweeps grouped by result.",
		}, []string{"result"}),
		deleted: registerCounter(registerer, prometheus.CounterOpts{
			Name: "orders_idempotency_cleanup_deleted_total",
			Help: "Total number of expired idempotency keys removed.",
		}),
		lastDeleted: registerGauge(registerer, prometheus.GaugeOpts{
			Name: "orders_idempotency_cleanup_last_deleted",
			Help: "Number of keys removed by the last cleanup sweep.",
		}),
	}
}

// ObserveSweep фиксирует результат одного прохода очистки.
func (m *CleanupMetrics) ObserveSweep(deleted int, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.runs.WithLabelValues("error").Inc()
		return
	}
	m.runs.WithLabelValues("ok").Inc()
	m.deleted.Add(float64(deleted))
	m.lastDeleted.Set(float64(deleted))
}
