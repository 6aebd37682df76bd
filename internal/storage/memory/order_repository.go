package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

// orderRepositoryInMemory хранит заказы и индекс заказов по клиенту.
type orderRepositoryInMemory struct {
	mu         sync.RWMutex
	orders     map[string]domain.Order
	byCustomer map[string]map[string]struct{}
}

// NewOrderRepository возвращает in-memory репозиторий заказов.
func NewOrderRepository() domain.OrderRepository {
	return newOrderRepository()
}

func newOrderRepository() *orderRepositoryInMemory {
	return &orderRepositoryInMemory{
		orders:     make(map[string]domain.Order),
		byCustomer: make(map[string]map[string]struct{}),
	}
}

// Create сохраняет заказ. Занятый ID даёт ErrOrderAlreadyExists.
func (r *orderRepositoryInMemory) Create(_ context.Context, order domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.orders[order.ID]; exists {
		return domain.ErrOrderAlreadyExists
	}
	r.orders[order.ID] = copyOrder(order)

	ids, ok := r.byCustomer[order.CustomerID]
	if !ok {
		ids = make(map[string]struct{})
		r.byCustomer[order.CustomerID] = ids
	}
	ids[order.ID] = struct{}{}
	return nil
}

func (r *orderRepositoryInMemory) Get(_ context.Context, id string) (domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return copyOrder(order), nil
}

// ListByCustomer отдаёт заказы клиента от новых к старым; limit <= 0 снимает ограничение.
func (r *orderRepositoryInMemory) ListByCustomer(_ context.Context, customerID string, limit int) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.byCustomer[customerID]
	result := make([]domain.Order, 0, len(ids))
	for id := range ids {
		result = append(result, copyOrder(r.orders[id]))
	}
	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if a.CreatedAt.Equal(b.CreatedAt) {
			return a.ID > b.ID
		}
		return a.CreatedAt.After(b.CreatedAt)
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// delete используется при откате транзакции Store.
func (r *orderRepositoryInMemory) delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return
	}
	delete(r.orders, id)
	if ids := r.byCustomer[order.CustomerID]; ids != nil {
		delete(ids, id)
		if len(ids) == 0 {
			delete(r.byCustomer, order.CustomerID)
		}
	}
}

func (r *orderRepositoryInMemory) count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.orders)
}

func copyOrder(order domain.Order) domain.Order {
	order.Lines = append([]domain.OrderLine(nil), order.Lines...)
	return order
}

var _ domain.OrderRepository = (*orderRepositoryInMemory)(nil)
