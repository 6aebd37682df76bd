package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/orders/internal/domain"
	"github.com/vladislavdragonenkov/orders/internal/metrics"
	"github.com/vladislavdragonenkov/orders/internal/storage/memory"
)

func enqueueOrderCreated(t *testing.T, repo domain.OutboxRepository, orderID string) domain.OutboxMessage {
	t.Helper()
	msg, err := repo.Enqueue(context.Background(), domain.OutboxMessage{
		AggregateType: domain.AggregateTypeOrder,
		AggregateID:   orderID,
		EventType:     domain.EventTypeOrderCreated,
		Payload:       []byte(`{"order_id":"` + orderID + `"}`),
	})
	require.NoError(t, err)
	return msg
}

func pendingCount(t *testing.T, repo domain.OutboxRepository) int {
	t.Helper()
	stats, err := repo.Stats(context.Background())
	require.NoError(t, err)
	return stats.PendingCount
}

func TestWorker_ProcessOnce_MarkSent(t *testing.T) {
	repo := memory.NewOutboxRepository()
	msg := enqueueOrderCreated(t, repo, "order-1")
	publisher := &stubPublisher{}

	worker := NewWorker(repo, publisher, WithRetryBaseDelay(0), WithMaxAttempts(3))

	sent := worker.ProcessOnce(context.Background())

	assert.Equal(t, 1, sent)
	assert.Equal(t, 1, publisher.calls())
	assert.Equal(t, msg.ID, publisher.last().ID)
	assert.Zero(t, pendingCount(t, repo))
}

func TestWorker_ProcessOnce_MarkFailedAndDLQAfterRetries(t *testing.T) {
	repo := memory.NewOutboxRepository()
	msg := enqueueOrderCreated(t, repo, "order-2")
	publisher := &stubPublisher{err: errors.New("broker unavailable")}
	dlq := &stubPublisher{}

	worker := NewWorker(repo, publisher,
		WithDLQPublisher(dlq),
		WithRetryBaseDelay(0),
		WithMaxAttempts(3),
	)

	sent := worker.ProcessOnce(context.Background())

	assert.Zero(t, sent)
	assert.Equal(t, 3, publisher.calls())
	require.Equal(t, 1, dlq.calls())
	assert.Zero(t, pendingCount(t, repo), "failed message must leave the backlog")

	var payload map[string]any
	require.NoError(t, json.Unmarshal(dlq.last().Payload, &payload))
	assert.Equal(t, msg.ID, payload["outbox_id"])
	assert.Contains(t, payload["publish_error"], "broker unavailable")
	assert.Equal(t, domain.EventTypeOrderCreated, payload["event_type"])
}

func TestWorker_ProcessOnce_SuccessAfterRetry(t *testing.T) {
	repo := memory.NewOutboxRepository()
	enqueueOrderCreated(t, repo, "order-3")
	publisher := &stubPublisher{
		sequenceErrors: []error{errors.New("attempt 1"), errors.New("attempt 2"), nil},
	}

	worker := NewWorker(repo, publisher, WithRetryBaseDelay(0), WithMaxAttempts(3))

	assert.Equal(t, 1, worker.ProcessOnce(context.Background()))
	assert.Equal(t, 3, publisher.calls())
	assert.Zero(t, pendingCount(t, repo))
}

func TestWorker_ProcessOnce_CanceledDuringRetryKeepsPending(t *testing.T) {
	repo := memory.NewOutboxRepository()
	enqueueOrderCreated(t, repo, "order-4")

	ctx, cancel := context.WithCancel(context.Background())
	publisher := &stubPublisher{err: errors.New("broker unavailable"), onPublish: cancel}

	worker := NewWorker(repo, publisher, WithRetryBaseDelay(time.Hour), WithMaxAttempts(5))

	assert.Zero(t, worker.ProcessOnce(ctx))
	assert.Equal(t, 1, publisher.calls())
	assert.Equal(t, 1, pendingCount(t, repo))
}

func TestWorker_RunStopsOnCancel(t *testing.T) {
	repo := memory.NewOutboxRepository()
	enqueueOrderCreated(t, repo, "order-5")
	publisher := &stubPublisher{}

	ctx, cancel := context.WithCancel(context.Background())
	worker := NewWorker(repo, publisher, WithPollInterval(5*time.Millisecond))

	done := make(chan error, 1)
	go func() { done <- worker.Run(ctx) }()

	require.Eventually(t, func() bool { return publisher.calls() == 1 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after cancel")
	}
}

func TestWorker_MetricsTrackDLQAndBacklog(t *testing.T) {
	repo := memory.NewOutboxRepository()
	enqueueOrderCreated(t, repo, "order-6")
	enqueueOrderCreated(t, repo, "order-7")

	registry := prometheus.NewRegistry()
	publisher := &stubPublisher{sequenceErrors: []error{nil, errors.New("down"), errors.New("down")}}
	worker := NewWorker(repo, publisher,
		WithDLQPublisher(&stubPublisher{}),
		WithMetrics(metrics.NewOutboxMetricsWithRegisterer(registry)),
		WithRetryBaseDelay(0),
		WithMaxAttempts(2),
	)

	assert.Equal(t, 1, worker.ProcessOnce(context.Background()))

	count, err := testutil.GatherAndCount(registry, "orders_outbox_dlq_records_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	families, err := registry.Gather()
	require.NoError(t, err)
	values := map[string]float64{}
	for _, family := range families {
		for _, metric := range family.GetMetric() {
			switch {
			case metric.GetCounter() != nil:
				key := family.GetName()
				for _, label := range metric.GetLabel() {
					key += ":" + label.GetValue()
				}
				values[key] = metric.GetCounter().GetValue()
			case metric.GetGauge() != nil:
				values[family.GetName()] = metric.GetGauge().GetValue()
			}
		}
	}
	assert.Equal(t, 1.0, values["orders_outbox_dlq_records_total"])
	assert.Equal(t, 1.0, values["orders_outbox_publish_attempts_total:sent"])
	assert.Equal(t, 2.0, values["orders_outbox_publish_attempts_total:retry_error"])
	assert.Equal(t, 1.0, values["orders_outbox_publish_attempts_total:failed"])
	assert.Zero(t, values["orders_outbox_pending_records"])
}

func TestWorker_DLQPublishFailureStillMarksFailed(t *testing.T) {
	repo := memory.NewOutboxRepository()
	enqueueOrderCreated(t, repo, "order-8")

	worker := NewWorker(repo, &stubPublisher{err: errors.New("down")},
		WithDLQPublisher(&stubPublisher{err: errors.New("dlq down")}),
		WithRetryBaseDelay(0),
		WithMaxAttempts(1),
	)

	assert.Zero(t, worker.ProcessOnce(context.Background()))
	assert.Zero(t, pendingCount(t, repo))
}

func TestWorker_RetryBackoff(t *testing.T) {
	worker := NewWorker(nil, nil, WithRetryBaseDelay(10*time.Millisecond))

	assert.Equal(t, 10*time.Millisecond, worker.retryBackoff(1))
	assert.Equal(t, 20*time.Millisecond, worker.retryBackoff(2))
	assert.Equal(t, 40*time.Millisecond, worker.retryBackoff(3))
	assert.Equal(t, time.Duration(1<<63-1), worker.retryBackoff(80))
	assert.Zero(t, NewWorker(nil, nil, WithRetryBaseDelay(0)).retryBackoff(3))
}

func TestWorker_DisabledWithoutPublisher(t *testing.T) {
	worker := NewWorker(memory.NewOutboxRepository(), nil)
	require.NoError(t, worker.Run(context.Background()))
}

func TestLogPublisher_NeverFails(t *testing.T) {
	publisher := NewLogPublisher(nil)
	require.NoError(t, publisher.Publish(context.Background(), domain.OutboxMessage{ID: "msg"}))
}

type stubPublisher struct {
	mu             sync.Mutex
	err            error
	sequenceErrors []error
	published      []domain.OutboxMessage
	attempts       int
	onPublish      func()
}

func (s *stubPublisher) Publish(_ context.Context, event domain.OutboxMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.attempts++
	if s.onPublish != nil {
		s.onPublish()
	}
	if len(s.sequenceErrors) > 0 {
		err := s.sequenceErrors[0]
		s.sequenceErrors = s.sequenceErrors[1:]
		if err != nil {
			return err
		}
		s.published = append(s.published, event)
		return nil
	}
	if s.err != nil {
		return s.err
	}
	s.published = append(s.published, event)
	return nil
}

func (s *stubPublisher) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attempts
}

func (s *stubPublisher) last() domain.OutboxMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.published) == 0 {
		return domain.OutboxMessage{}
	}
	return s.published[len(s.published)-1]
}
