package memory

import (
	"context"
	"sync"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

// Store объединяет in-memory репозитории и реализует UnitOfWork поверх них.
type Store struct {
	txMu sync.Mutex

	customers   *customerRepositoryInMemory
	products    *productRepositoryInMemory
	orders      *orderRepositoryInMemory
	outbox      *outboxRepositoryInMemory
	idempotency *idempotencyKeys
}

// NewStore создаёт пустое in-memory хранилище.
func NewStore() *Store {
	return &Store{
		customers:   newCustomerRepository(),
		products:    newProductRepository(),
		orders:      newOrderRepository(),
		outbox:      newOutboxRepository(),
		idempotency: newIdempotencyRepository(),
	}
}

func (s *Store) Customers() domain.CustomerRepository      { return s.customers }
func (s *Store) Products() domain.ProductRepository        { return s.products }
func (s *Store) Orders() domain.OrderRepository            { return s.orders }
func (s *Store) Outbox() domain.OutboxRepository           { return s.outbox }
func (s *Store) Idempotency() domain.IdempotencyRepository { return s.idempotency }

// OrderCount возвращает число сохранённых заказов.
func (s *Store) OrderCount() int {
	return s.orders.count()
}

// Do выполняет fn под общим мьютексом. Записи через TxRepositories
// журналируются и при ошибке откатываются в обратном порядке.
func (s *Store) Do(ctx context.Context, fn func(ctx context.Context, repos domain.TxRepositories) error) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	j := &journal{}
	defer func() {
		if p := recover(); p != nil {
			j.rollback()
			panic(p)
		}
		if err != nil {
			j.rollback()
		}
	}()

	repos := domain.TxRepositories{
		Orders:   &txOrders{repo: s.orders, j: j},
		Products: &txProducts{repo: s.products, j: j},
		Outbox:   &txOutbox{repo: s.outbox, j: j},
	}
	return fn(ctx, repos)
}

type journal struct {
	undo []func()
}

func (j *journal) record(fn func()) {
	j.undo = append(j.undo, fn)
}

func (j *journal) rollback() {
	for i := len(j.undo) - 1; i >= 0; i-- {
		j.undo[i]()
	}
	j.undo = nil
}

type txOrders struct {
	repo *orderRepositoryInMemory
	j    *journal
}

func (t *txOrders) Create(ctx context.Context, order domain.Order) error {
	if err := t.repo.Create(ctx, order); err != nil {
		return err
	}
	t.j.record(func() { t.repo.delete(order.ID) })
	return nil
}

func (t *txOrders) Get(ctx context.Context, id string) (domain.Order, error) {
	return t.repo.Get(ctx, id)
}

func (t *txOrders) ListByCustomer(ctx context.Context, customerID string, limit int) ([]domain.Order, error) {
	return t.repo.ListByCustomer(ctx, customerID, limit)
}

type txProducts struct {
	repo *productRepositoryInMemory
	j    *journal
}

func (t *txProducts) Create(ctx context.Context, product domain.Product) error {
	if err := t.repo.Create(ctx, product); err != nil {
		return err
	}
	t.j.record(func() { t.repo.delete(product.ID) })
	return nil
}

func (t *txProducts) Get(ctx context.Context, id string) (domain.Product, error) {
	return t.repo.Get(ctx, id)
}

func (t *txProducts) FindByIDs(ctx context.Context, ids []string) ([]domain.Product, error) {
	return t.repo.FindByIDs(ctx, ids)
}

func (t *txProducts) DecrementStock(ctx context.Context, changes []domain.StockChange) error {
	if err := t.repo.DecrementStock(ctx, changes); err != nil {
		return err
	}
	applied := append([]domain.StockChange(nil), changes...)
	t.j.record(func() { t.repo.restock(applied) })
	return nil
}

type txOutbox struct {
	repo *outboxRepositoryInMemory
	j    *journal
}

func (t *txOutbox) Enqueue(ctx context.Context, msg domain.OutboxMessage) (domain.OutboxMessage, error) {
	stored, err := t.repo.Enqueue(ctx, msg)
	if err != nil {
		return stored, err
	}
	t.j.record(func() { t.repo.delete(stored.ID) })
	return stored, nil
}

func (t *txOutbox) PullPending(ctx context.Context, limit int) ([]domain.OutboxMessage, error) {
	return t.repo.PullPending(ctx, limit)
}

func (t *txOutbox) Stats(ctx context.Context) (domain.OutboxStats, error) {
	return t.repo.Stats(ctx)
}

func (t *txOutbox) MarkSent(ctx context.Context, id string) error {
	return t.repo.MarkSent(ctx, id)
}

func (t *txOutbox) MarkFailed(ctx context.Context, id string) error {
	return t.repo.MarkFailed(ctx, id)
}

var _ domain.UnitOfWork = (*Store)(nil)
