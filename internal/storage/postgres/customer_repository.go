package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

type customerRepository struct {
	q queryer
}

// NewCustomerRepository создаёт PostgreSQL-реализацию CustomerRepository.
func NewCustomerRepository(store *Store) domain.CustomerRepository {
	return &customerRepository{q: store.DB()}
}

func (r *customerRepository) Create(ctx context.Context, customer domain.Customer) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	_, err := r.q.ExecContext(ctx, `
		INSERT INTO customers (id, name, email, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5)
	`,
		customer.ID, customer.Name, customer.Email, customer.CreatedAt, customer.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrCustomerEmailTaken
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

func (r *customerRepository) Get(ctx context.Context, id string) (domain.Customer, error) {
	return r.selectOne(ctx, `WHERE id = $1`, id)
}

func (r *customerRepository) FindByEmail(ctx context.Context, email string) (domain.Customer, error) {
	return r.selectOne(ctx, `WHERE LOWER(email) = LOWER($1)`, email)
}

func (r *customerRepository) selectOne(ctx context.Context, where string, arg any) (domain.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var customer domain.Customer
	err := r.q.QueryRowContext(ctx, `
		SELECT id, name, email, created_at, updated_at
		FROM customers
	`+where, arg).Scan(
		&customer.ID, &customer.Name, &customer.Email, &customer.CreatedAt, &customer.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Customer{}, domain.ErrCustomerNotFound
		}
		return domain.Customer{}, fmt.Errorf("select customer: %w", err)
	}
	return customer, nil
}

var _ domain.CustomerRepository = (*customerRepository)(nil)
