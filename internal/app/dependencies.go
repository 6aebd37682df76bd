package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orders/internal/catalog"
	"github.com/vladislavdragonenkov/orders/internal/domain"
	"github.com/vladislavdragonenkov/orders/internal/health"
	"github.com/vladislavdragonenkov/orders/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/orders/internal/messaging/rabbitmq"
	"github.com/vladislavdragonenkov/orders/internal/metrics"
	"github.com/vladislavdragonenkov/orders/internal/service/customer"
	"github.com/vladislavdragonenkov/orders/internal/service/ordering"
	"github.com/vladislavdragonenkov/orders/internal/service/outbox"
	"github.com/vladislavdragonenkov/orders/internal/service/product"
	"github.com/vladislavdragonenkov/orders/internal/storage/memory"
	"github.com/vladislavdragonenkov/orders/internal/storage/postgres"
	redisstore "github.com/vladislavdragonenkov/orders/internal/storage/redis"
)

// Dependencies содержит все зависимости приложения.
type Dependencies struct {
	Customers *customer.Service
	Products  *product.Service
	Orders    *ordering.Service

	Outbox      domain.OutboxRepository
	Idempotency domain.IdempotencyRepository
	Publisher   domain.OutboxPublisher
	// DLQ задан только для Kafka.
	DLQ domain.OutboxPublisher

	Checkers map[string]health.Checker
	Logger   *log.Entry

	closers []func() error
}

type storageRepos struct {
	customers   domain.CustomerRepository
	products    domain.ProductRepository
	orders      domain.OrderRepository
	outbox      domain.OutboxRepository
	idempotency domain.IdempotencyRepository
	uow         domain.UnitOfWork
}

// NewDependencies собирает хранилище, брокер и сервисы по конфигурации.
// При ошибке уже открытые ресурсы закрываются.
func NewDependencies(ctx context.Context, cfg Config, registerer prometheus.Registerer, logger *log.Entry) (deps *Dependencies, err error) {
	if logger == nil {
		logger = log.WithField("component", "app")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	deps = &Dependencies{
		Checkers: make(map[string]health.Checker),
		Logger:   logger,
	}
	defer func() {
		if err != nil {
			_ = deps.Close()
			deps = nil
		}
	}()

	repos, err := deps.initStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.RedisAddr != "" {
		client, err := redisstore.NewClient(ctx, cfg.RedisAddr)
		if err != nil {
			return nil, err
		}
		deps.closers = append(deps.closers, client.Close)
		repo := redisstore.NewIdempotencyRepository(client)
		repos.idempotency = repo
		deps.Checkers["redis"] = health.NewPingChecker("redis", repo)
		logger.WithField("addr", cfg.RedisAddr).Info("idempotency keys are stored in redis")
	}

	if err := deps.initBroker(cfg); err != nil {
		return nil, err
	}

	deps.Outbox = repos.outbox
	deps.Idempotency = repos.idempotency
	deps.Customers = customer.NewService(repos.customers, logger.WithField("component", "customers"))
	deps.Products = product.NewService(repos.products, logger.WithField("component", "products"))
	deps.Orders = ordering.NewService(
		repos.customers, repos.products, repos.orders, repos.uow,
		ordering.WithLogger(logger.WithField("component", "ordering")),
		ordering.WithMetrics(metrics.NewOrderMetricsWithRegisterer(registerer)),
	)

	if cfg.SeedFile != "" {
		cat, err := catalog.Load(cfg.SeedFile)
		if err != nil {
			return nil, err
		}
		if _, err := catalog.Apply(ctx, cat, deps.Customers, deps.Products, logger.WithField("component", "catalog")); err != nil {
			return nil, err
		}
	}

	return deps, nil
}

func (d *Dependencies) initStorage(ctx context.Context, cfg Config) (storageRepos, error) {
	switch cfg.StorageDriver {
	case StoragePostgres:
		store, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return storageRepos{}, err
		}
		d.closers = append(d.closers, store.Close)

		if cfg.PostgresAutoMigrate {
			if err := store.MigrateUp(ctx, 0); err != nil {
				return storageRepos{}, err
			}
		}
		d.Checkers["postgres"] = health.NewPingChecker("postgres", store)
		d.Logger.Info("using postgres storage")

		return storageRepos{
			customers:   postgres.NewCustomerRepository(store),
			products:    postgres.NewProductRepository(store),
			orders:      postgres.NewOrderRepository(store),
			outbox:      postgres.NewOutboxRepository(store),
			idempotency: postgres.NewIdempotencyRepository(store),
			uow:         store,
		}, nil
	default:
		store := memory.NewStore()
		d.Logger.Info("using in-memory storage")

		return storageRepos{
			customers:   store.Customers(),
			products:    store.Products(),
			orders:      store.Orders(),
			outbox:      store.Outbox(),
			idempotency: store.Idempotency(),
			uow:         store,
		}, nil
	}
}

func (d *Dependencies) initBroker(cfg Config) error {
	switch {
	case len(cfg.KafkaBrokers) > 0:
		producer, err := kafka.NewProducer(kafka.ProducerConfig{Brokers: cfg.KafkaBrokers}, d.Logger.WithField("component", "kafka"))
		if err != nil {
			return fmt.Errorf("init kafka producer: %w", err)
		}
		d.closers = append(d.closers, producer.Close)
		d.Publisher = kafka.NewOutboxPublisher(producer, cfg.KafkaTopic)
		d.DLQ = kafka.NewDLQPublisher(producer)
		d.Logger.WithField("brokers", cfg.KafkaBrokers).Info("outbox publishes to kafka")
	case cfg.RabbitMQURL != "":
		publisher, err := rabbitmq.Dial(cfg.RabbitMQURL, cfg.RabbitMQQueue, d.Logger.WithField("component", "rabbitmq"))
		if err != nil {
			return fmt.Errorf("init rabbitmq publisher: %w", err)
		}
		d.closers = append(d.closers, publisher.Close)
		d.Publisher = publisher
		d.Logger.Info("outbox publishes to rabbitmq")
	default:
		d.Publisher = outbox.NewLogPublisher(d.Logger.WithField("component", "outbox-log"))
		d.Logger.Warn("no broker configured, outbox events are only logged")
	}
	return nil
}

// Close освобождает ресурсы в обратном порядке открытия.
func (d *Dependencies) Close() error {
	var errs []error
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	d.closers = nil
	return errors.Join(errs...)
}
