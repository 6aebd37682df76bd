package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

type productRepository struct {
	q queryer
}

// NewProductRepository создаёт PostgreSQL-реализацию ProductRepository.
func NewProductRepository(store *Store) domain.ProductRepository {
	return &productRepository{q: store.DB()}
}

func (r *productRepository) Create(ctx context.Context, product domain.Product) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	_, err := r.q.ExecContext(ctx, `
		INSERT INTO products (id, name, price_minor, quantity, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6)
	`,
		product.ID, product.Name, product.PriceMinor, product.Quantity, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrProductNameTaken
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *productRepository) Get(ctx context.Context, id string) (domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var product domain.Product
	err := r.q.QueryRowContext(ctx, `
		SELECT id, name, price_minor, quantity, created_at, updated_at
		FROM products
		WHERE id = $1
	`, id).Scan(
		&product.ID, &product.Name, &product.PriceMinor, &product.Quantity, &product.CreatedAt, &product.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, domain.ErrProductNotFound
		}
		return domain.Product{}, fmt.Errorf("select product: %w", err)
	}
	return product, nil
}

// FindByIDs возвращает найденные товары в порядке ids.
func (r *productRepository) FindByIDs(ctx context.Context, ids []string) ([]domain.Product, error) {
	if len(ids) == 0 {
		return []domain.Product{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	rows, err := r.q.QueryContext(ctx, `
		SELECT id, name, price_minor, quantity, created_at, updated_at
		FROM products
		WHERE id = ANY($1)
	`, ids)
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}
	defer rows.Close()

	found := make(map[string]domain.Product, len(ids))
	for rows.Next() {
		var product domain.Product
		if err := rows.Scan(
			&product.ID, &product.Name, &product.PriceMinor, &product.Quantity, &product.CreatedAt, &product.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		found[product.ID] = product
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}

	result := make([]domain.Product, 0, len(found))
	for _, id := range ids {
		product, ok := found[id]
		if !ok {
			continue
		}
		result = append(result, product)
		delete(found, id)
	}
	return result, nil
}

// DecrementStock списывает остатки условным UPDATE: строка меняется только
// при достаточном остатке. Строки блокируются в порядке id.
func (r *productRepository) DecrementStock(ctx context.Context, changes []domain.StockChange) error {
	need := make(map[string]int64, len(changes))
	for _, change := range changes {
		if change.Quantity <= 0 {
			return domain.ErrQuantityInvalid
		}
		need[change.ProductID] += change.Quantity
	}
	ids := make([]string, 0, len(need))
	for id := range need {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	return runInTx(ctx, r.q, func(q queryer) error {
		now := time.Now().UTC()
		for _, id := range ids {
			res, err := q.ExecContext(ctx, `
				UPDATE products
				SET quantity = quantity - $2,
				    updated_at = $3
				WHERE id = $1
				  AND quantity >= $2
			`, id, need[id], now)
			if err != nil {
				return fmt.Errorf("decrement product stock: %w", err)
			}

			affected, err := res.RowsAffected()
			if err != nil {
				return fmt.Errorf("rows affected for product stock: %w", err)
			}
			if affected == 1 {
				continue
			}

			var exists bool
			if err := q.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, id).Scan(&exists); err != nil {
				return fmt.Errorf("check product existence: %w", err)
			}
			if !exists {
				return fmt.Errorf("%w: %s", domain.ErrProductNotFound, id)
			}
			return fmt.Errorf("%w: %s", domain.ErrInsufficientStock, id)
		}
		return nil
	})
}

var _ domain.ProductRepository = (*productRepository)(nil)
