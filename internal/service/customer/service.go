package customer

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

// Service регистрирует клиентов.
type Service struct {
	repo   domain.CustomerRepository
	logger *log.Entry
	now    func() time.Time
}

// NewService создаёт сервис клиентов.
func NewService(repo domain.CustomerRepository, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.WithField("component", "customers")
	}
	return &Service{
		repo:   repo,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// CreateCustomer создаёт клиента с уникальным email.
func (s *Service) CreateCustomer(ctx context.Context, name, email string) (domain.Customer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Customer{}, domain.ErrCustomerNameRequired
	}

	addr, err := mail.ParseAddress(strings.TrimSpace(email))
	if err != nil {
		return domain.Customer{}, domain.ErrCustomerEmailInvalid
	}
	email = strings.ToLower(addr.Address)

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return domain.Customer{}, domain.ErrCustomerEmailTaken
	} else if !errors.Is(err, domain.ErrCustomerNotFound) {
		return domain.Customer{}, fmt.Errorf("find customer by email: %w", err)
	}

	now := s.now()
	customer := domain.Customer{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, customer); err != nil {
		if errors.Is(err, domain.ErrCustomerEmailTaken) {
			return domain.Customer{}, err
		}
		return domain.Customer{}, fmt.Errorf("create customer: %w", err)
	}

	s.logger.WithField("customer_id", customer.ID).Info("customer created")
	return customer, nil
}

// GetCustomer возвращает клиента по идентификатору.
func (s *Service) GetCustomer(ctx context.Context, id string) (domain.Customer, error) {
	return s.repo.Get(ctx, strings.TrimSpace(id))
}
