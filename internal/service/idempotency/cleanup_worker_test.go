package idempotency

import (
	"context"
	"errors"
	"fmt"
	"strings"
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

func TestCleanupWorker_DeleteExpired_Batches(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewIdempotencyRepository()
	expired := time.Now().UTC().Add(-time.Minute)
	for i := 0; i < 5; i++ {
		_, err := repo.CreateProcessing(ctx, fmt.Sprintf("expired-%d", i), "hash", expired)
		require.NoError(t, err)
	}
	_, err := repo.CreateProcessing(ctx, "active", "hash", time.Now().UTC().Add(time.Hour))
	require.NoError(t, err)

	store := &countingStore{ExpiredKeyStore: repo}
	worker := NewCleanupWorker(store, WithBatchSize(2))

	deleted, err := worker.DeleteExpired(ctx, time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, 5, deleted)
	assert.Equal(t, 3, store.calls, "2 + 2 + 1")

	_, err = repo.Get(ctx, "active")
	require.NoError(t, err)
}

func TestCleanupWorker_DeleteExpired_UsesClockForZeroBefore(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewIdempotencyRepository()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	_, err := repo.CreateProcessing(ctx, "old", "hash", now.Add(-time.Second))
	require.NoError(t, err)
	_, err = repo.CreateProcessing(ctx, "fresh", "hash", now.Add(time.Second))
	require.NoError(t, err)

	worker := NewCleanupWorker(repo, WithClock(func() time.Time { return now }))

	deleted, err := worker.DeleteExpired(ctx, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)

	_, err = repo.Get(ctx, "old")
	assert.ErrorIs(t, err, domain.ErrIdempotencyKeyNotFound)
}

func TestCleanupWorker_DeleteExpired_Error(t *testing.T) {
	boom := errors.New("boom")
	worker := NewCleanupWorker(&failingStore{err: boom})

	deleted, err := worker.DeleteExpired(context.Background(), time.Now().UTC())
	require.ErrorIs(t, err, boom)
	assert.Zero(t, deleted)
}

func TestCleanupWorker_DeleteExpired_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	worker := NewCleanupWorker(memory.NewIdempotencyRepository())
	_, err := worker.DeleteExpired(ctx, time.Now().UTC())
	require.ErrorIs(t, err, context.Canceled)
}

func TestCleanupWorker_SweepMetrics(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewIdempotencyRepository()
	for i := 0; i < 3; i++ {
		_, err := repo.CreateProcessing(ctx, fmt.Sprintf("k-%d", i), "hash", time.Now().UTC().Add(-time.Minute))
		require.NoError(t, err)
	}

	registry := prometheus.NewRegistry()
	m := metrics.NewCleanupMetricsWithRegisterer(registry)

	NewCleanupWorker(repo, WithMetrics(m)).sweep(ctx)
	NewCleanupWorker(&failingStore{err: errors.New("db down")}, WithMetrics(m)).sweep(ctx)

	expected := `
# HELP orders_idempotency_cleanup_deleted_total Total number of expired idempotency keys removed.
# TYPE orders_idempotency_cleanup_deleted_total counter
orders_idempotency_cleanup_deleted_total 3
# HELP orders_idempotency_cleanup_runs_total Total number of idempotency cleanup sweeps grouped by result.
# TYPE orders_idempotency_cleanup_runs_total counter
orders_idempotency_cleanup_runs_total{result="error"} 1
orders_idempotency_cleanup_runs_total{result="ok"} 1
`
	require.NoError(t, testutil.GatherAndCompare(registry, strings.NewReader(expected),
		"orders_idempotency_cleanup_deleted_total",
		"orders_idempotency_cleanup_runs_total",
	))
}

func TestCleanupWorker_Run_StopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	store := &countingStore{ExpiredKeyStore: memory.NewIdempotencyRepository()}
	worker := NewCleanupWorker(store, WithInterval(5*time.Millisecond))

	done := make(chan error, 1)
	go func() { done <- worker.Run(ctx) }()

	require.Eventually(t, func() bool { return store.count() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("cleanup worker did not stop after cancel")
	}
}

func TestCleanupWorker_Run_DisabledWithoutStore(t *testing.T) {
	require.NoError(t, NewCleanupWorker(nil).Run(context.Background()))
}

type countingStore struct {
	ExpiredKeyStore
	mu    sync.Mutex
	calls int
}

func (s *countingStore) DeleteExpired(ctx context.Context, before time.Time, limit int) (int, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	return s.ExpiredKeyStore.DeleteExpired(ctx, before, limit)
}

func (s *countingStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type failingStore struct {
	err error
}

func (f *failingStore) DeleteExpired(context.Context, time.Time, int) (int, error) {
	return 0, f.err
}
