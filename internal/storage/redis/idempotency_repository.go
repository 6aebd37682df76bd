package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

const (
	keyPrefix      = "orders:idempotency:"
	defaultTTL     = 24 * time.Hour
	minKeyLifetime = time.Millisecond
)

// record — JSON-представление IdempotencyRecord в Redis.
type record struct {
	Key          string    `json:"key"`
	RequestHash  string    `json:"request_hash"`
	ResponseBody []byte    `json:"response_body,omitempty"`
	HTTPStatus   int       `json:"http_status,omitempty"`
	Status       string    `json:"status"`
	TTLAt        time.Time `json:"ttl_at"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IdempotencyRepository хранит ключи идемпотентности в Redis. Срок жизни
// ключа совпадает с TTL записи, поэтому просроченные ключи удаляет сам Redis.
type IdempotencyRepository struct {
	client goredis.UniversalClient
}

// NewClient создаёт клиента Redis и проверяет подключение.
func NewClient(ctx context.Context, addr string) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return client, nil
}

// NewIdempotencyRepository создаёт Redis-реализацию IdempotencyRepository.
func NewIdempotencyRepository(client goredis.UniversalClient) *IdempotencyRepository {
	return &IdempotencyRepository{client: client}
}

func redisKey(key string) string {
	return keyPrefix + key
}

// keyLifetime переводит абсолютный TTL в относительный срок жизни ключа.
func keyLifetime(ttlAt, now time.Time) time.Duration {
	lifetime := ttlAt.Sub(now)
	if lifetime < minKeyLifetime {
		return minKeyLifetime
	}
	return lifetime
}

func (r *IdempotencyRepository) CreateProcessing(ctx context.Context, key, requestHash string, ttlAt time.Time) (domain.IdempotencyRecord, error) {
	key = strings.TrimSpace(key)
	requestHash = strings.TrimSpace(requestHash)

	if key == "" {
		return domain.IdempotencyRecord{}, domain.ErrIdempotencyKeyRequired
	}
	if requestHash == "" {
		return domain.IdempotencyRecord{}, domain.ErrIdempotencyRequestHashRequired
	}

	now := time.Now().UTC()
	if ttlAt.IsZero() {
		ttlAt = now.Add(defaultTTL)
	}

	rec := record{
		Key:         key,
		RequestHash: requestHash,
		Status:      string(domain.IdempotencyStatusProcessing),
		TTLAt:       ttlAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return domain.IdempotencyRecord{}, fmt.Errorf("marshal idempotency record: %w", err)
	}

	ok, err := r.client.SetNX(ctx, redisKey(key), data, keyLifetime(ttlAt, now)).Result()
	if err != nil {
		return domain.IdempotencyRecord{}, fmt.Errorf("create idempotency record: %w", err)
	}
	if !ok {
		existing, getErr := r.Get(ctx, key)
		if getErr != nil {
			return domain.IdempotencyRecord{}, domain.ErrIdempotencyKeyAlreadyExists
		}
		if existing.RequestHash != requestHash {
			return existing, domain.ErrIdempotencyHashMismatch
		}
		return existing, domain.ErrIdempotencyKeyAlreadyExists
	}

	return rec.toDomain(), nil
}

func (r *IdempotencyRepository) Get(ctx context.Context, key string) (domain.IdempotencyRecord, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return domain.IdempotencyRecord{}, domain.ErrIdempotencyKeyRequired
	}

	rec, err := r.load(ctx, key)
	if err != nil {
		return domain.IdempotencyRecord{}, err
	}
	return rec.toDomain(), nil
}

func (r *IdempotencyRepository) MarkDone(ctx context.Context, key string, responseBody []byte, httpStatus int) error {
	return r.markStatus(ctx, key, domain.IdempotencyStatusDone, responseBody, httpStatus)
}

func (r *IdempotencyRepository) MarkFailed(ctx context.Context, key string, responseBody []byte, httpStatus int) error {
	return r.markStatus(ctx, key, domain.IdempotencyStatusFailed, responseBody, httpStatus)
}

// DeleteExpired ничего не делает: ключи истекают через EXPIRE.
func (r *IdempotencyRepository) DeleteExpired(context.Context, time.Time, int) (int, error) {
	return 0, nil
}

// Ping проверяет доступность Redis.
func (r *IdempotencyRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *IdempotencyRepository) markStatus(ctx context.Context, key string, status domain.IdempotencyStatus, responseBody []byte, httpStatus int) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return domain.ErrIdempotencyKeyRequired
	}

	rec, err := r.load(ctx, key)
	if err != nil {
		return err
	}
	rec.Status = string(status)
	rec.ResponseBody = append([]byte(nil), responseBody...)
	rec.HTTPStatus = httpStatus
	rec.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal idempotency record: %w", err)
	}

	// XX + KEEPTTL: обновляем только существующий ключ и не сбрасываем его срок.
	err = r.client.SetArgs(ctx, redisKey(key), data, goredis.SetArgs{Mode: "XX", KeepTTL: true}).Err()
	if errors.Is(err, goredis.Nil) {
		return domain.ErrIdempotencyKeyNotFound
	}
	if err != nil {
		return fmt.Errorf("mark idempotency key status: %w", err)
	}
	return nil
}

func (r *IdempotencyRepository) load(ctx context.Context, key string) (record, error) {
	data, err := r.client.Get(ctx, redisKey(key)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return record{}, domain.ErrIdempotencyKeyNotFound
	}
	if err != nil {
		return record{}, fmt.Errorf("get idempotency record: %w", err)
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return record{}, fmt.Errorf("decode idempotency record %s: %w", key, err)
	}
	if !domain.IdempotencyStatus(rec.Status).Valid() {
		return record{}, fmt.Errorf("invalid idempotency status %q for key %s", rec.Status, key)
	}
	return rec, nil
}

func (rec record) toDomain() domain.IdempotencyRecord {
	return domain.IdempotencyRecord{
		Key:          rec.Key,
		RequestHash:  rec.RequestHash,
		ResponseBody: append([]byte(nil), rec.ResponseBody...),
		HTTPStatus:   rec.HTTPStatus,
		Status:       domain.IdempotencyStatus(rec.Status),
		TTLAt:        rec.TTLAt,
		CreatedAt:    rec.CreatedAt,
		UpdatedAt:    rec.UpdatedAt,
	}
}

var _ domain.IdempotencyRepository = (*IdempotencyRepository)(nil)
