package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orders/internal/domain"
	"github.com/vladislavdragonenkov/orders/internal/metrics"
)

// RouterConfig задаёт необязательные части роутера.
type RouterConfig struct {
	Logger      *log.Entry
	Metrics     *metrics.HTTPMetrics
	Idempotency domain.IdempotencyRepository
	// IdempotencyTTL — срок хранения ответа по Idempotency-Key.
	IdempotencyTTL time.Duration
}

// NewRouter собирает HTTP API сервиса заказов.
func NewRouter(h *Handler, cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = log.WithField("component", "http")
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)
	if cfg.Metrics != nil {
		r.Use(observe(cfg.Metrics))
	}

	idem := newIdempotency(cfg.Idempotency, cfg.IdempotencyTTL, logger)

	r.Route("/customers", func(r chi.Router) {
		r.With(idem.middleware).Post("/", h.CreateCustomer)
		r.Get("/{customerID}", h.GetCustomer)
		r.Get("/{customerID}/orders", h.ListCustomerOrders)
	})
	r.Route("/products", func(r chi.Router) {
		r.With(idem.middleware).Post("/", h.CreateProduct)
		r.Get("/{productID}", h.GetProduct)
	})
	r.Route("/orders", func(r chi.Router) {
		r.With(idem.middleware).Post("/", h.CreateOrder)
		r.Get("/{orderID}", h.GetOrder)
	})

	return r
}
