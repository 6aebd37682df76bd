package ordering

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orders/internal/domain"
	"github.com/vladislavdragonenkov/orders/internal/metrics"
)

const defaultListLimit = 100

// Options задаёт необязательные зависимости сервиса.
type Options struct {
	Logger  *log.Entry
	Metrics *metrics.OrderMetrics
	Now     func() time.Time
	NewID   func() string
}

// Option настраивает Service.
type Option func(*Options)

// WithLogger задаёт logger сервиса.
func WithLogger(logger *log.Entry) Option {
	return func(opts *Options) {
		opts.Logger = logger
	}
}

// WithMetrics включает метрики оформления заказов.
func WithMetrics(m *metrics.OrderMetrics) Option {
	return func(opts *Options) {
		opts.Metrics = m
	}
}

// WithClock подменяет источник времени (используется в тестах).
func WithClock(now func() time.Time) Option {
	return func(opts *Options) {
		opts.Now = now
	}
}

// WithIDGenerator подменяет генератор идентификаторов.
func WithIDGenerator(newID func() string) Option {
	return func(opts *Options) {
		opts.NewID = newID
	}
}

// CreateOrderCommand — запрос на оформление заказа.
type CreateOrderCommand struct {
	CustomerID string
	Lines      []domain.LineRequest
}

// Service проверяет и оформляет заказы.
type Service struct {
	customers domain.CustomerRepository
	products  domain.ProductRepository
	orders    domain.OrderRepository
	uow       domain.UnitOfWork
	logger    *log.Entry
	metrics   *metrics.OrderMetrics
	now       func() time.Time
	newID     func() string
}

// NewService собирает сервис из репозиториев и unit of work.
func NewService(
	customers domain.CustomerRepository,
	products domain.ProductRepository,
	orders domain.OrderRepository,
	uow domain.UnitOfWork,
	options ...Option,
) *Service {
	opts := Options{
		Now:   func() time.Time { return time.Now().UTC() },
		NewID: uuid.NewString,
	}
	for _, option := range options {
		option(&opts)
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.WithField("component", "ordering")
	}

	return &Service{
		customers: customers,
		products:  products,
		orders:    orders,
		uow:       uow,
		logger:    logger,
		metrics:   opts.Metrics,
		now:       opts.Now,
		newID:     opts.NewID,
	}
}

// CreateOrder проверяет клиента, товары и остатки, затем атомарно сохраняет
// заказ, списывает остатки и ставит событие order.created в outbox.
// До успешной проверки никаких изменений не делается.
func (s *Service) CreateOrder(ctx context.Context, cmd CreateOrderCommand) (domain.Order, error) {
	started := time.Now()
	order, err := s.createOrder(ctx, cmd)
	if s.metrics != nil {
		s.metrics.RecordDuration(time.Since(started))
	}

	if err != nil {
		reason := rejectReason(err)
		if s.metrics != nil {
			s.metrics.RecordRejected(reason)
		}
		entry := s.logger.WithError(err).WithFields(log.Fields{
			"customer_id": cmd.CustomerID,
			"reason":      reason,
		})
		if reason == metrics.RejectReasonInternal {
			entry.Error("order creation failed")
		} else {
			entry.Info("order rejected")
		}
		return domain.Order{}, err
	}

	if s.metrics != nil {
		var units int64
		for _, line := range order.Lines {
			units += line.Quantity
		}
		s.metrics.RecordCreated(len(order.Lines), units)
	}
	s.logger.WithFields(log.Fields{
		"order_id":     order.ID,
		"customer_id":  order.CustomerID,
		"lines":        len(order.Lines),
		"amount_minor": order.AmountMinor,
	}).Info("order created")

	return order, nil
}

func (s *Service) createOrder(ctx context.Context, cmd CreateOrderCommand) (domain.Order, error) {
	req, err := normalize(cmd)
	if err != nil {
		return domain.Order{}, err
	}

	if _, err := s.customers.Get(ctx, req.customerID); err != nil {
		if errors.Is(err, domain.ErrCustomerNotFound) {
			return domain.Order{}, domain.ErrCustomerNotFound
		}
		return domain.Order{}, fmt.Errorf("load customer: %w", err)
	}

	products, err := s.products.FindByIDs(ctx, req.productIDs())
	if err != nil {
		return domain.Order{}, fmt.Errorf("load products: %w", err)
	}
	if len(products) != len(req.lines) {
		return domain.Order{}, fmt.Errorf("%w: unknown product ids %v", domain.ErrInvalidProducts, req.missing(products))
	}

	order, changes, err := s.buildOrder(req, products)
	if err != nil {
		return domain.Order{}, err
	}

	err = s.uow.Do(ctx, func(ctx context.Context, repos domain.TxRepositories) error {
		if err := repos.Orders.Create(ctx, order); err != nil {
			return fmt.Errorf("persist order: %w", err)
		}
		if err := repos.Products.DecrementStock(ctx, changes); err != nil {
			return fmt.Errorf("decrement stock: %w", err)
		}
		msg, err := newOrderCreatedMessage(order)
		if err != nil {
			return err
		}
		if _, err := repos.Outbox.Enqueue(ctx, msg); err != nil {
			return fmt.Errorf("enqueue order event: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.Order{}, err
	}

	return order, nil
}

// buildOrder сверяет остатки и строит позиции с ценой из карточки товара.
func (s *Service) buildOrder(req request, products []domain.Product) (domain.Order, []domain.StockChange, error) {
	requested := make(map[string]int64, len(req.lines))
	position := make(map[string]int, len(req.lines))
	for i, line := range req.lines {
		requested[line.ProductID] = line.Quantity
		position[line.ProductID] = i
	}

	var short []string
	for _, product := range products {
		qty, ok := requested[product.ID]
		if !ok {
			return domain.Order{}, nil, fmt.Errorf("%w: %s", domain.ErrOrderLineMismatch, product.ID)
		}
		if qty > product.Quantity {
			short = append(short, product.ID)
		}
	}
	if len(short) > 0 {
		return domain.Order{}, nil, fmt.Errorf("%w: %v", domain.ErrInsufficientStock, short)
	}

	now := s.now()
	orderID := s.newID()
	lines := make([]domain.OrderLine, len(req.lines))
	for _, product := range products {
		lines[position[product.ID]] = domain.OrderLine{
			ID:         s.newID(),
			ProductID:  product.ID,
			Quantity:   requested[product.ID],
			PriceMinor: product.PriceMinor,
			CreatedAt:  now,
		}
	}

	changes := make([]domain.StockChange, 0, len(lines))
	for _, line := range lines {
		changes = append(changes, domain.StockChange{ProductID: line.ProductID, Quantity: line.Quantity})
	}

	order := domain.Order{
		ID:         orderID,
		CustomerID: req.customerID,
		Lines:      lines,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	amount, err := order.CalculateAmount()
	if err != nil {
		return domain.Order{}, nil, err
	}
	order.AmountMinor = amount

	if errs := order.ValidateInvariants(); len(errs) > 0 {
		return domain.Order{}, nil, fmt.Errorf("order invariants violated: %w", errors.Join(errs...))
	}

	return order, changes, nil
}

// GetOrder возвращает заказ по идентификатору.
func (s *Service) GetOrder(ctx context.Context, id string) (domain.Order, error) {
	if id == "" {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return s.orders.Get(ctx, id)
}

// ListCustomerOrders возвращает последние заказы клиента.
func (s *Service) ListCustomerOrders(ctx context.Context, customerID string, limit int) ([]domain.Order, error) {
	if customerID == "" {
		return nil, domain.ErrCustomerIDRequired
	}
	if limit <= 0 || limit > defaultListLimit {
		limit = defaultListLimit
	}
	if _, err := s.customers.Get(ctx, customerID); err != nil {
		return nil, err
	}
	return s.orders.ListByCustomer(ctx, customerID, limit)
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrCustomerNotFound):
		return metrics.RejectReasonCustomerNotFound
	case errors.Is(err, domain.ErrInvalidProducts):
		return metrics.RejectReasonInvalidProducts
	case errors.Is(err, domain.ErrInsufficientStock):
		return metrics.RejectReasonInsufficientStock
	case domain.IsValidationError(err):
		return metrics.RejectReasonValidation
	default:
		return metrics.RejectReasonInternal
	}
}
