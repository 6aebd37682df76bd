package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

type orderRepository struct {
	q queryer
}

// NewOrderRepository создаёт PostgreSQL-реализацию OrderRepository.
func NewOrderRepository(store *Store) domain.OrderRepository {
	return &orderRepository{q: store.DB()}
}

func (r *orderRepository) Create(ctx context.Context, order domain.Order) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	return runInTx(ctx, r.q, func(q queryer) error {
		_, err := q.ExecContext(ctx, `
			INSERT INTO orders (id, customer_id, amount_minor, created_at, updated_at)
			VALUES ($1,$2,$3,$4,$5)
		`,
			order.ID, order.CustomerID, order.AmountMinor, order.CreatedAt, order.UpdatedAt,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrOrderAlreadyExists
			}
			return fmt.Errorf("insert order: %w", err)
		}

		for pos, line := range order.Lines {
			if _, err := q.ExecContext(ctx, `
				INSERT INTO order_lines (
					id, order_id, position, product_id, quantity, price_minor, created_at
				) VALUES ($1,$2,$3,$4,$5,$6,$7)
			`,
				line.ID, order.ID, pos, line.ProductID, line.Quantity, line.PriceMinor, line.CreatedAt,
			); err != nil {
				if isUniqueViolation(err) {
					return domain.ErrDuplicateOrderLine
				}
				return fmt.Errorf("insert order line: %w", err)
			}
		}
		return nil
	})
}

func (r *orderRepository) Get(ctx context.Context, id string) (domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var order domain.Order
	err := r.q.QueryRowContext(ctx, `
		SELECT id, customer_id, amount_minor, created_at, updated_at
		FROM orders
		WHERE id = $1
	`, id).Scan(
		&order.ID, &order.CustomerID, &order.AmountMinor, &order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Order{}, domain.ErrOrderNotFound
		}
		return domain.Order{}, fmt.Errorf("select order: %w", err)
	}

	lines, err := r.loadLines(ctx, []string{order.ID})
	if err != nil {
		return domain.Order{}, err
	}
	order.Lines = lines[order.ID]

	return order, nil
}

func (r *orderRepository) ListByCustomer(ctx context.Context, customerID string, limit int) ([]domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	query := `
		SELECT id, customer_id, amount_minor, created_at, updated_at
		FROM orders
		WHERE customer_id = $1
		ORDER BY created_at DESC, id DESC
	`

	var (
		rows *sql.Rows
		err  error
	)
	if limit > 0 {
		rows, err = r.q.QueryContext(ctx, query+" LIMIT $2", customerID, limit)
	} else {
		rows, err = r.q.QueryContext(ctx, query, customerID)
	}
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(
			&order.ID, &order.CustomerID, &order.AmountMinor, &order.CreatedAt, &order.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order rows: %w", err)
	}
	if len(orders) == 0 {
		return orders, nil
	}

	ids := make([]string, 0, len(orders))
	for _, order := range orders {
		ids = append(ids, order.ID)
	}
	lines, err := r.loadLines(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Lines = lines[orders[i].ID]
	}

	return orders, nil
}

// loadLines загружает позиции нескольких заказов одним запросом.
func (r *orderRepository) loadLines(ctx context.Context, orderIDs []string) (map[string][]domain.OrderLine, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT order_id, id, product_id, quantity, price_minor, created_at
		FROM order_lines
		WHERE order_id = ANY($1)
		ORDER BY order_id, position
	`, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("select order lines: %w", err)
	}
	defer rows.Close()

	result := make(map[string][]domain.OrderLine, len(orderIDs))
	for rows.Next() {
		var (
			orderID string
			line    domain.OrderLine
		)
		if err := rows.Scan(
			&orderID, &line.ID, &line.ProductID, &line.Quantity, &line.PriceMinor, &line.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		result[orderID] = append(result[orderID], line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order lines: %w", err)
	}

	return result, nil
}

var _ domain.OrderRepository = (*orderRepository)(nil)
