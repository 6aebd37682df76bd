package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

type customerRepositoryInMemory struct {
	mu      sync.RWMutex
	items   map[string]domain.Customer
	byEmail map[string]string
}

// NewCustomerRepository создаёт in-memory реализацию CustomerRepository.
func NewCustomerRepository() domain.CustomerRepository {
	return newCustomerRepository()
}

func newCustomerRepository() *customerRepositoryInMemory {
	return &customerRepositoryInMemory{
		items:   make(map[string]domain.Customer),
		byEmail: make(map[string]string),
	}
}

func (r *customerRepositoryInMemory) Create(_ context.Context, customer domain.Customer) error {
	email := strings.ToLower(customer.Email)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[email]; taken {
		return domain.ErrCustomerEmailTaken
	}
	r.items[customer.ID] = customer
	r.byEmail[email] = customer.ID
	return nil
}

func (r *customerRepositoryInMemory) Get(_ context.Context, id string) (domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	customer, ok := r.items[id]
	if !ok {
		return domain.Customer{}, domain.ErrCustomerNotFound
	}
	return customer, nil
}

func (r *customerRepositoryInMemory) FindByEmail(_ context.Context, email string) (domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return domain.Customer{}, domain.ErrCustomerNotFound
	}
	return r.items[id], nil
}

var _ domain.CustomerRepository = (*customerRepositoryInMemory)(nil)
