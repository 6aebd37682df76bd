package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Причины отказа в оформлении заказа для метки reason.
const (
	RejectReasonValidation        = "validation"
	RejectReasonCustomerNotFound  = "customer_not_found"
	RejectReasonInvalidProducts   = "invalid_products"
	RejectReasonInsufficientStock = "insufficient_stock"
	RejectReasonInternal          = "internal"
)

// OrderMetrics содержит метрики оформления заказов.
type OrderMetrics struct {
	ordersCreated  prometheus.Counter
	ordersRejected *prometheus.CounterVec
	createDuration prometheus.Histogram
	orderedUnits   prometheus.Counter
	orderLines     prometheus.Histogram
}

// NewOrderMetrics создаёт метрики в DefaultRegisterer.
func NewOrderMetrics() *OrderMetrics {
	return NewOrderMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

// NewOrderMetricsWithRegisterer создаёт метрики в переданном registerer.
func NewOrderMetricsWithRegisterer(registerer prometheus.Registerer) *OrderMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &OrderMetrics{
		ordersCreated: registerCounter(registerer, prometheus.CounterOpts{
			Name: "orders_created_total",
			Help: "Total number of orders created",
		}),
		ordersRejected: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "orders_rejected_total",
			Help: "Total number of rejected order requests grouped by reason",
		}, []string{"reason"}),
		createDuration: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "orders_create_duration_seconds",
			Help:    "Duration of the order creation workflow in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5},
		}),
		orderedUnits: registerCounter(registerer, prometheus.CounterOpts{
			Name: "orders_stock_units_decremented_total",
			Help: "Total number of stock units taken by created orders",
		}),
		orderLines: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "orders_lines_per_order",
			Help:    "Number of distinct product lines per created order",
			Buckets: []float64{1, 2, 3, 5, 10, 20, 50},
		}),
	}
}

// RecordCreated учитывает успешно созданный заказ.
func (m *OrderMetrics) RecordCreated(lines int, units int64) {
	m.ordersCreated.Inc()
	m.orderLines.Observe(float64(lines))
	m.orderedUnits.Add(float64(units))
}

// RecordRejected учитывает отказ с указанной причиной.
func (m *OrderMetrics) RecordRejected(reason string) {
	m.ordersRejected.WithLabelValues(reason).Inc()
}

// RecordDuration записывает длительность workflow.
func (m *OrderMetrics) RecordDuration(duration time.Duration) {
	m.createDuration.Observe(duration.Seconds())
}
