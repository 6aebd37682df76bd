package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orders/internal/domain"
	"github.com/vladislavdragonenkov/orders/internal/service/ordering"
)

// Customers — регистрация и чтение клиентов.
type Customers interface {
	CreateCustomer(ctx context.Context, name, email string) (domain.Customer, error)
	GetCustomer(ctx context.Context, id string) (domain.Customer, error)
}

// Products — регистрация и чтение товаров.
type Products interface {
	CreateProduct(ctx context.Context, name string, priceMinor, quantity int64) (domain.Product, error)
	GetProduct(ctx context.Context, id string) (domain.Product, error)
}

// Orders — оформление и чтение заказов.
type Orders interface {
	CreateOrder(ctx context.Context, cmd ordering.CreateOrderCommand) (domain.Order, error)
	GetOrder(ctx context.Context, id string) (domain.Order, error)
	ListCustomerOrders(ctx context.Context, customerID string, limit int) ([]domain.Order, error)
}

// Handler обслуживает REST-маршруты.
type Handler struct {
	customers Customers
	products  Products
	orders    Orders
	logger    *log.Entry
}

func NewHandler(customers Customers, products Products, orders Orders, logger *log.Entry) *Handler {
	if logger == nil {
		logger = log.WithField("component", "http")
	}
	return &Handler{customers: customers, products: products, orders: orders, logger: logger}
}

type createCustomerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type customerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type createProductRequest struct {
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int64  `json:"quantity"`
}

type productResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Price     int64     `json:"price"`
	Quantity  int64     `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type orderProductRequest struct {
	ID       string `json:"id"`
	Quantity int64  `json:"quantity"`
}

type createOrderRequest struct {
	CustomerID string                `json:"customer_id"`
	Products   []orderProductRequest `json:"products"`
}

type orderLineResponse struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
	Price     int64  `json:"price"`
}

type orderResponse struct {
	ID         string              `json:"id"`
	CustomerID string              `json:"customer_id"`
	Amount     int64               `json:"amount"`
	Lines      []orderLineResponse `json:"lines"`
	CreatedAt  time.Time           `json:"created_at"`
}

func (h *Handler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req createCustomerRequest
	if !decodeBody(w, r, &req) {
		return
	}

	customer, err := h.customers.CreateCustomer(r.Context(), req.Name, req.Email)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCustomerResponse(customer))
}

func (h *Handler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	customer, err := h.customers.GetCustomer(r.Context(), chi.URLParam(r, "customerID"))
	if err != nil {
		h.writeLookupError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toCustomerResponse(customer))
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if !decodeBody(w, r, &req) {
		return
	}

	product, err := h.products.CreateProduct(r.Context(), req.Name, req.Price, req.Quantity)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toProductResponse(product))
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.products.GetProduct(r.Context(), chi.URLParam(r, "productID"))
	if err != nil {
		h.writeLookupError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(product))
}

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if !decodeBody(w, r, &req) {
		return
	}

	lines := make([]domain.LineRequest, 0, len(req.Products))
	for _, p := range req.Products {
		lines = append(lines, domain.LineRequest{ProductID: p.ID, Quantity: p.Quantity})
	}

	order, err := h.orders.CreateOrder(r.Context(), ordering.CreateOrderCommand{
		CustomerID: req.CustomerID,
		Lines:      lines,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toOrderResponse(order))
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.GetOrder(r.Context(), chi.URLParam(r, "orderID"))
	if err != nil {
		h.writeLookupError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

func (h *Handler) ListCustomerOrders(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "limit must be a non-negative integer"})
			return
		}
		limit = parsed
	}

	orders, err := h.orders.ListCustomerOrders(r.Context(), chi.URLParam(r, "customerID"), limit)
	if err != nil {
		h.writeLookupError(w, r, err)
		return
	}

	result := make([]orderResponse, 0, len(orders))
	for _, order := range orders {
		result = append(result, toOrderResponse(order))
	}
	writeJSON(w, http.StatusOK, map[string]any{"orders": result})
}

// writeLookupError отвечает 404, если сущность из пути не найдена.
func (h *Handler) writeLookupError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrCustomerNotFound) || domain.IsNotFound(err) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
		return
	}
	h.writeError(w, r, err)
}

func toCustomerResponse(c domain.Customer) customerResponse {
	return customerResponse{ID: c.ID, Name: c.Name, Email: c.Email, CreatedAt: c.CreatedAt}
}

func toProductResponse(p domain.Product) productResponse {
	return productResponse{
		ID:        p.ID,
		Name:      p.Name,
		Price:     p.PriceMinor,
		Quantity:  p.Quantity,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toOrderResponse(o domain.Order) orderResponse {
	lines := make([]orderLineResponse, 0, len(o.Lines))
	for _, line := range o.Lines {
		lines = append(lines, orderLineResponse{
			ID:        line.ID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     line.PriceMinor,
		})
	}
	return orderResponse{
		ID:         o.ID,
		CustomerID: o.CustomerID,
		Amount:     o.AmountMinor,
		Lines:      lines,
		CreatedAt:  o.CreatedAt,
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeBodyError(w, err)
		return false
	}
	return true
}

func writeBodyError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "request body too large"})
		return
	}
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
}
