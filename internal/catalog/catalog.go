package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

// Catalog — начальный набор клиентов и товаров.
type Catalog struct {
	Customers []Customer `yaml:"customers"`
	Products  []Product  `yaml:"products"`
}

type Customer struct {
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
}

type Product struct {
	Name string `yaml:"name"`
	// Price — цена в минимальных денежных единицах.
	Price    int64 `yaml:"price"`
	Quantity int64 `yaml:"quantity"`
}

// Load читает каталог из YAML-файла.
func Load(path string) (Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("open catalog %s: %w", path, err)
	}
	defer f.Close()

	cat, err := Parse(f)
	if err != nil {
		return Catalog{}, fmt.Errorf("catalog %s: %w", path, err)
	}
	return cat, nil
}

// Parse разбирает и проверяет каталог.
func Parse(r io.Reader) (Catalog, error) {
	var cat Catalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cat); err != nil && !errors.Is(err, io.EOF) {
		return Catalog{}, fmt.Errorf("decode yaml: %w", err)
	}
	if err := cat.Validate(); err != nil {
		return Catalog{}, err
	}
	return cat, nil
}

// Validate проверяет записи до обращения к хранилищу.
func (c Catalog) Validate() error {
	var errs []error
	for i, customer := range c.Customers {
		if strings.TrimSpace(customer.Name) == "" {
			errs = append(errs, fmt.Errorf("customers[%d]: %w", i, domain.ErrCustomerNameRequired))
		}
		if strings.TrimSpace(customer.Email) == "" {
			errs = append(errs, fmt.Errorf("customers[%d]: %w", i, domain.ErrCustomerEmailInvalid))
		}
	}
	for i, product := range c.Products {
		if strings.TrimSpace(product.Name) == "" {
			errs = append(errs, fmt.Errorf("products[%d]: %w", i, domain.ErrProductNameRequired))
		}
		if product.Price < 0 {
			errs = append(errs, fmt.Errorf("products[%d]: %w", i, domain.ErrProductPriceInvalid))
		}
		if product.Quantity < 0 {
			errs = append(errs, fmt.Errorf("products[%d]: %w", i, domain.ErrProductQuantityInvalid))
		}
	}
	return errors.Join(errs...)
}

// CustomerRegistrar регистрирует клиента.
type CustomerRegistrar interface {
	CreateCustomer(ctx context.Context, name, email string) (domain.Customer, error)
}

// ProductRegistrar регистрирует товар.
type ProductRegistrar interface {
	CreateProduct(ctx context.Context, name string, priceMinor, quantity int64) (domain.Product, error)
}

// Report считает созданные и пропущенные записи каталога.
type Report struct {
	CustomersCreated int
	ProductsCreated  int
	Skipped          int
}

// Apply регистрирует каталог. Уже существующие записи пропускаются.
func Apply(ctx context.Context, cat Catalog, customers CustomerRegistrar, products ProductRegistrar, logger *log.Entry) (Report, error) {
	if logger == nil {
		logger = log.WithField("component", "catalog")
	}

	var report Report
	for _, c := range cat.Customers {
		created, err := customers.CreateCustomer(ctx, c.Name, c.Email)
		switch {
		case errors.Is(err, domain.ErrCustomerEmailTaken):
			report.Skipped++
			logger.WithField("email", c.Email).Debug("customer already exists, skipped")
		case err != nil:
			return report, fmt.Errorf("seed customer %s: %w", c.Email, err)
		default:
			report.CustomersCreated++
			logger.WithField("customer_id", created.ID).Debug("customer seeded")
		}
	}

	for _, p := range cat.Products {
		created, err := products.CreateProduct(ctx, p.Name, p.Price, p.Quantity)
		switch {
		case errors.Is(err, domain.ErrProductNameTaken):
			report.Skipped++
			logger.WithField("name", p.Name).Debug("product already exists, skipped")
		case err != nil:
			return report, fmt.Errorf("seed product %s: %w", p.Name, err)
		default:
			report.ProductsCreated++
			logger.WithField("product_id", created.ID).Debug("product seeded")
		}
	}

	logger.WithFields(log.Fields{
		"customers": report.CustomersCreated,
		"products":  report.ProductsCreated,
		"skipped":   report.Skipped,
	}).Info("catalog applied")
	return report, nil
}
