package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

const pingTimeout = 5 * time.Second

// poolConfig задаёт пул соединений database/sql.
type poolConfig struct {
	maxOpen     int
	maxIdle     int
	maxLifetime time.Duration
	maxIdleTime time.Duration
}

func defaultPoolConfig() poolConfig {
	return poolConfig{
		maxOpen:     25,
		maxIdle:     25,
		maxLifetime: 30 * time.Minute,
		maxIdleTime: 5 * time.Minute,
	}
}

// Option настраивает пул соединений Store.
type Option func(*poolConfig)

// WithMaxConns ограничивает число открытых и простаивающих соединений.
func WithMaxConns(n int) Option {
	return func(c *poolConfig) {
		if n > 0 {
			c.maxOpen = n
			c.maxIdle = n
		}
	}
}

// WithConnLifetime задаёт максимальное время жизни соединения.
func WithConnLifetime(d time.Duration) Option {
	return func(c *poolConfig) {
		if d > 0 {
			c.maxLifetime = d
		}
	}
}

// Store держит пул соединений с PostgreSQL и реализует UnitOfWork.
type Store struct {
	db  *sql.DB
	dsn string
}

// Open открывает пул через драйвер pgx и проверяет доступность базы.
func Open(ctx context.Context, dsn string, opts ...Option) (*Store, error) {
	cfg := defaultPoolConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres connection: %w", err)
	}
	db.SetMaxOpenConns(cfg.maxOpen)
	db.SetMaxIdleConns(cfg.maxIdle)
	db.SetConnMaxLifetime(cfg.maxLifetime)
	db.SetConnMaxIdleTime(cfg.maxIdleTime)

	store := &Store{db: db, dsn: dsn}
	if err := store.Ping(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return store, nil
}

// DB возвращает пул для низкоуровневого доступа.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Ping проверяет доступность базы.
func (s *Store) Ping(ctx context.Context) error {
	if s == nil || s.db == nil {
		return errors.New("postgres store is not initialized")
	}

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return s.db.PingContext(ctx)
}

// Do выполняет fn в одной транзакции. Ошибка или паника в fn её откатывают.
func (s *Store) Do(ctx context.Context, fn func(ctx context.Context, repos domain.TxRepositories) error) error {
	return runInTx(ctx, s.db, func(q queryer) error {
		return fn(ctx, domain.TxRepositories{
			Orders:   &orderRepository{q: q},
			Products: &productRepository{q: q},
			Outbox:   &outboxRepository{q: q},
		})
	})
}

// Close закрывает пул.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

var _ domain.UnitOfWork = (*Store)(nil)
