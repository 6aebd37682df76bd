package product

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

// Service регистрирует товары каталога.
type Service struct {
	repo   domain.ProductRepository
	logger *log.Entry
	now    func() time.Time
}

// NewService создаёт сервис товаров.
func NewService(repo domain.ProductRepository, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.WithField("component", "products")
	}
	return &Service{
		repo:   repo,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// CreateProduct создаёт товар с уникальным названием и начальным остатком.
func (s *Service) CreateProduct(ctx context.Context, name string, priceMinor, quantity int64) (domain.Product, error) {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		return domain.Product{}, domain.ErrProductNameRequired
	case priceMinor < 0:
		return domain.Product{}, domain.ErrProductPriceInvalid
	case quantity < 0:
		return domain.Product{}, domain.ErrProductQuantityInvalid
	}

	now := s.now()
	product := domain.Product{
		ID:         uuid.NewString(),
		Name:       name,
		PriceMinor: priceMinor,
		Quantity:   quantity,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.Create(ctx, product); err != nil {
		if errors.Is(err, domain.ErrProductNameTaken) {
			return domain.Product{}, err
		}
		return domain.Product{}, fmt.Errorf("create product: %w", err)
	}

	s.logger.WithFields(log.Fields{
		"product_id": product.ID,
		"quantity":   product.Quantity,
	}).Info("product created")
	return product, nil
}

// GetProduct возвращает товар по идентификатору.
func (s *Service) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	return s.repo.Get(ctx, strings.TrimSpace(id))
}
