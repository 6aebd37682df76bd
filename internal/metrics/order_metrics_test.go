package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func histogramCount(t *testing.T, h prometheus.Histogram) uint64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, h.Write(&m))
	return m.GetHistogram().GetSampleCount()
}

func TestOrderMetrics_Record(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewOrderMetricsWithRegisterer(reg)

	m.RecordCreated(2, 7)
	m.RecordCreated(1, 3)
	m.RecordRejected(RejectReasonInsufficientStock)
	m.RecordDuration(15 * time.Millisecond)

	assert.Equal(t, 2.0, counterValue(t, m.ordersCreated))
	assert.Equal(t, 10.0, counterValue(t, m.orderedUnits))
	assert.Equal(t, 1.0, counterValue(t, m.ordersRejected.WithLabelValues(RejectReasonInsufficientStock)))
	assert.Equal(t, uint64(1), histogramCount(t, m.createDuration))
	assert.Equal(t, uint64(2), histogramCount(t, m.orderLines))
}

func TestOrderMetrics_RegisterTwiceReusesCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first := NewOrderMetricsWithRegisterer(reg)
	second := NewOrderMetricsWithRegisterer(reg)

	first.RecordCreated(1, 1)
	second.RecordCreated(1, 1)

	assert.Equal(t, 2.0, counterValue(t, first.ordersCreated))
}

func TestHTTPMetrics_Observe(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetricsWithRegisterer(reg)

	m.Observe("/orders", "POST", 201, time.Millisecond)
	m.Observe("/orders", "POST", 400, time.Millisecond)

	assert.Equal(t, 1.0, counterValue(t, m.requests.WithLabelValues("/orders", "POST", "201")))
	assert.Equal(t, 1.0, counterValue(t, m.requests.WithLabelValues("/orders", "POST", "400")))

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.Len(t, families, 2)
}
