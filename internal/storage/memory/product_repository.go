package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

type productRepositoryInMemory struct {
	mu     sync.RWMutex
	items  map[string]domain.Product
	byName map[string]string
}

// NewProductRepository создаёт in-memory реализацию ProductRepository.
func NewProductRepository() domain.ProductRepository {
	return newProductRepository()
}

func newProductRepository() *productRepositoryInMemory {
	return &productRepositoryInMemory{
		items:  make(map[string]domain.Product),
		byName: make(map[string]string),
	}
}

func (r *productRepositoryInMemory) Create(_ context.Context, product domain.Product) error {
	name := strings.ToLower(product.Name)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byName[name]; taken {
		return domain.ErrProductNameTaken
	}
	r.items[product.ID] = product
	r.byName[name] = product.ID
	return nil
}

func (r *productRepositoryInMemory) Get(_ context.Context, id string) (domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.items[id]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return product, nil
}

// FindByIDs возвращает найденные товары в порядке ids, пропуская отсутствующие.
func (r *productRepositoryInMemory) FindByIDs(_ context.Context, ids []string) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Product, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if product, ok := r.items[id]; ok {
			result = append(result, product)
		}
	}
	return result, nil
}

// DecrementStock сначала проверяет все изменения и только потом применяет их.
func (r *productRepositoryInMemory) DecrementStock(_ context.Context, changes []domain.StockChange) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	need := make(map[string]int64, len(changes))
	for _, change := range changes {
		if change.Quantity <= 0 {
			return domain.ErrQuantityInvalid
		}
		need[change.ProductID] += change.Quantity
	}

	for id, qty := range need {
		product, ok := r.items[id]
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrProductNotFound, id)
		}
		if product.Quantity < qty {
			return fmt.Errorf("%w: %s", domain.ErrInsufficientStock, id)
		}
	}

	now := time.Now().UTC()
	for id, qty := range need {
		product := r.items[id]
		product.Quantity -= qty
		product.UpdatedAt = now
		r.items[id] = product
	}
	return nil
}

// restock возвращает списанный остаток, используется при откате unit of work.
func (r *productRepositoryInMemory) restock(changes []domain.StockChange) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, change := range changes {
		product, ok := r.items[change.ProductID]
		if !ok {
			continue
		}
		product.Quantity += change.Quantity
		r.items[change.ProductID] = product
	}
}

func (r *productRepositoryInMemory) delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product, ok := r.items[id]; ok {
		delete(r.byName, strings.ToLower(product.Name))
		delete(r.items, id)
	}
}

var _ domain.ProductRepository = (*productRepositoryInMemory)(nil)
