package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

// idempotencyKeys хранит ключи идемпотентности в map под мьютексом.
// Записи отдаются наружу копиями, чтобы вызывающий не менял ResponseBody.
type idempotencyKeys struct {
	mu      sync.Mutex
	records map[string]domain.IdempotencyRecord
	now     func() time.Time
}

// NewIdempotencyRepository создаёт in-memory реализацию IdempotencyRepository.
func NewIdempotencyRepository() domain.IdempotencyRepository {
	return newIdempotencyRepository()
}

func newIdempotencyRepository() *idempotencyKeys {
	return &idempotencyKeys{
		records: make(map[string]domain.IdempotencyRecord),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// CreateProcessing занимает ключ. Просроченная запись с тем же ключом заменяется.
func (s *idempotencyKeys) CreateProcessing(_ context.Context, key, requestHash string, ttlAt time.Time) (domain.IdempotencyRecord, error) {
	record, err := domain.NewIdempotencyRecord(key, requestHash, ttlAt, s.now())
	if err != nil {
		return domain.IdempotencyRecord{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.records[record.Key]; ok && !existing.Expired(record.CreatedAt) {
		return copyRecord(existing), existing.ConflictWith(record.RequestHash)
	}
	s.records[record.Key] = record
	return copyRecord(record), nil
}

func (s *idempotencyKeys) Get(_ context.Context, key string) (domain.IdempotencyRecord, error) {
	key, err := requireKey(key)
	if err != nil {
		return domain.IdempotencyRecord{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[key]
	if !ok {
		return domain.IdempotencyRecord{}, domain.ErrIdempotencyKeyNotFound
	}
	return copyRecord(record), nil
}

func (s *idempotencyKeys) MarkDone(_ context.Context, key string, responseBody []byte, httpStatus int) error {
	return s.finish(key, domain.IdempotencyStatusDone, responseBody, httpStatus)
}

func (s *idempotencyKeys) MarkFailed(_ context.Context, key string, responseBody []byte, httpStatus int) error {
	return s.finish(key, domain.IdempotencyStatusFailed, responseBody, httpStatus)
}

// DeleteExpired удаляет до limit записей с TTL не позже before, начиная с самых старых.
// limit <= 0 снимает ограничение.
func (s *idempotencyKeys) DeleteExpired(_ context.Context, before time.Time, limit int) (int, error) {
	if before.IsZero() {
		before = s.now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	expired := make([]domain.IdempotencyRecord, 0)
	for _, record := range s.records {
		if record.Expired(before) {
			expired = append(expired, record)
		}
	}
	sort.Slice(expired, func(i, j int) bool {
		return expired[i].TTLAt.Before(expired[j].TTLAt)
	})
	if limit > 0 && len(expired) > limit {
		expired = expired[:limit]
	}

	for _, record := range expired {
		delete(s.records, record.Key)
	}
	return len(expired), nil
}

func (s *idempotencyKeys) finish(key string, status domain.IdempotencyStatus, responseBody []byte, httpStatus int) error {
	key, err := requireKey(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[key]
	if !ok {
		return domain.ErrIdempotencyKeyNotFound
	}
	record.Status = status
	record.ResponseBody = append([]byte(nil), responseBody...)
	record.HTTPStatus = httpStatus
	record.UpdatedAt = s.now()
	s.records[key] = record
	return nil
}

func requireKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", domain.ErrIdempotencyKeyRequired
	}
	return key, nil
}

func copyRecord(record domain.IdempotencyRecord) domain.IdempotencyRecord {
	record.ResponseBody = append([]byte(nil), record.ResponseBody...)
	return record
}

var _ domain.IdempotencyRepository = (*idempotencyKeys)(nil)
