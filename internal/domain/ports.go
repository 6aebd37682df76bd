package domain

import (
	"context"
	"time"
)

// CustomerRepository описывает хранилище клиентов.
type CustomerRepository interface {
	// Create сохраняет клиента, ErrCustomerEmailTaken при занятом email.
	Create(ctx context.Context, customer Customer) error
	// Get возвращает клиента или ErrCustomerNotFound.
	Get(ctx context.Context, id string) (Customer, error)
	// FindByEmail возвращает клиента по email или ErrCustomerNotFound.
	FindByEmail(ctx context.Context, email string) (Customer, error)
}

// ProductRepository описывает хранилище товаров и их остатков.
type ProductRepository interface {
	// Create сохраняет товар, ErrProductNameTaken при занятом названии.
	Create(ctx context.Context, product Product) error
	// Get возвращает товар или ErrProductNotFound.
	Get(ctx context.Context, id string) (Product, error)
	// FindByIDs возвращает только найденные товары, отсутствующие пропускаются.
	FindByIDs(ctx context.Context, ids []string) ([]Product, error)
	// DecrementStock списывает остатки целиком или не списывает ничего.
	// ErrInsufficientStock, если хотя бы один остаток ушёл бы в минус.
	DecrementStock(ctx context.Context, changes []StockChange) error
}

// OrderRepository описывает требования к хранилищу заказов.
type OrderRepository interface {
	// Create сохраняет новый заказ. ErrOrderAlreadyExists, если такой ID уже есть.
	Create(ctx context.Context, order Order) error
	// Get возвращает заказ по идентификатору или ErrOrderNotFound, если его нет.
	Get(ctx context.Context, id string) (Order, error)
	// ListByCustomer возвращает заказы клиента, новые первыми.
	ListByCustomer(ctx context.Context, customerID string, limit int) ([]Order, error)
}

// OutboxRepository позволяет сохранять события для последующей публикации.
type OutboxRepository interface {
	Enqueue(ctx context.Context, msg OutboxMessage) (OutboxMessage, error)
	PullPending(ctx context.Context, limit int) ([]OutboxMessage, error)
	Stats(ctx context.Context) (OutboxStats, error)
	MarkSent(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string) error
}

// OutboxPublisher публикует события из transactional outbox.
type OutboxPublisher interface {
	// Publish передаёт событие наружу; должен быть идемпотентным.
	Publish(ctx context.Context, event OutboxMessage) error
}

// IdempotencyRepository хранит состояние обработки запросов по idempotency-key.
type IdempotencyRepository interface {
	CreateProcessing(ctx context.Context, key, requestHash string, ttlAt time.Time) (IdempotencyRecord, error)
	Get(ctx context.Context, key string) (IdempotencyRecord, error)
	MarkDone(ctx context.Context, key string, responseBody []byte, httpStatus int) error
	MarkFailed(ctx context.Context, key string, responseBody []byte, httpStatus int) error
	DeleteExpired(ctx context.Context, before time.Time, limit int) (int, error)
}

// TxRepositories — репозитории, привязанные к одной транзакции.
type TxRepositories struct {
	Orders   OrderRepository
	Products ProductRepository
	Outbox   OutboxRepository
}

// UnitOfWork выполняет fn атомарно: ошибка из fn откатывает все записи,
// сделанные через переданные репозитории.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context, repos TxRepositories) error) error
}
