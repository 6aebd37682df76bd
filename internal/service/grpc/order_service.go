package grpcsvc

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"

	"github.com/vladislavdragonenkov/orders/internal/domain"
	"github.com/vladislavdragonenkov/orders/internal/service/ordering"
	ordersv1 "github.com/vladislavdragonenkov/orders/proto/orders/v1"
)

// Orders — операции оформления и чтения заказов, которые обслуживает сервис.
type Orders interface {
	CreateOrder(ctx context.Context, cmd ordering.CreateOrderCommand) (domain.Order, error)
	GetOrder(ctx context.Context, id string) (domain.Order, error)
	ListCustomerOrders(ctx context.Context, customerID string, limit int) ([]domain.Order, error)
}

// OrderService реализует gRPC API поверх сервиса заказов.
type OrderService struct {
	ordersv1.UnimplementedOrderServiceServer

	orders   Orders
	idemRepo domain.IdempotencyRepository
	idemTTL  time.Duration
	logger   *log.Entry
}

const idempotencyKeyHeader = "idempotency-key"

var _ ordersv1.OrderServiceServer = (*OrderService)(nil)

// NewOrderService конструирует сервис. idemRepo может быть nil: тогда
// повторы по idempotency-key не дедуплицируются.
func NewOrderService(orders Orders, idemRepo domain.IdempotencyRepository, idemTTL time.Duration, logger *log.Entry) *OrderService {
	if logger == nil {
		logger = log.WithField("component", "grpc-order-service")
	}
	if idemTTL <= 0 {
		idemTTL = domain.DefaultIdempotencyTTL
	}
	return &OrderService{
		orders:   orders,
		idemRepo: idemRepo,
		idemTTL:  idemTTL,
		logger:   logger,
	}
}

// CreateOrder оформляет заказ.
func (s *OrderService) CreateOrder(ctx context.Context, req *ordersv1.CreateOrderRequest) (*ordersv1.CreateOrderResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	return withIdempotency(s, ctx, ordersv1.OrderService_CreateOrder_FullMethodName, req,
		func() *ordersv1.CreateOrderResponse { return &ordersv1.CreateOrderResponse{} },
		func(ctx context.Context) (*ordersv1.CreateOrderResponse, error) {
			lines := make([]domain.LineRequest, 0, len(req.GetLines()))
			for _, line := range req.GetLines() {
				lines = append(lines, domain.LineRequest{ProductID: line.GetProductId(), Quantity: line.GetQuantity()})
			}

			order, err := s.orders.CreateOrder(ctx, ordering.CreateOrderCommand{
				CustomerID: req.GetCustomerId(),
				Lines:      lines,
			})
			if err != nil {
				return nil, s.toStatus(err, "CreateOrder")
			}
			return &ordersv1.CreateOrderResponse{Order: toProtoOrder(order)}, nil
		})
}

// GetOrder возвращает заказ по идентификатору.
func (s *OrderService) GetOrder(ctx context.Context, req *ordersv1.GetOrderRequest) (*ordersv1.GetOrderResponse, error) {
	if strings.TrimSpace(req.GetOrderId()) == "" {
		return nil, status.Error(codes.InvalidArgument, "order_id is required")
	}

	order, err := s.orders.GetOrder(ctx, req.GetOrderId())
	if err != nil {
		return nil, s.toStatus(err, "GetOrder")
	}
	return &ordersv1.GetOrderResponse{Order: toProtoOrder(order)}, nil
}

// ListCustomerOrders возвращает заказы клиента, новые первыми.
func (s *OrderService) ListCustomerOrders(ctx context.Context, req *ordersv1.ListCustomerOrdersRequest) (*ordersv1.ListCustomerOrdersResponse, error) {
	if strings.TrimSpace(req.GetCustomerId()) == "" {
		return nil, status.Error(codes.InvalidArgument, "customer_id is required")
	}

	orders, err := s.orders.ListCustomerOrders(ctx, req.GetCustomerId(), int(req.GetPageSize()))
	if err != nil {
		return nil, s.toStatus(err, "ListCustomerOrders")
	}

	result := make([]*ordersv1.Order, 0, len(orders))
	for _, order := range orders {
		result = append(result, toProtoOrder(order))
	}
	return &ordersv1.ListCustomerOrdersResponse{Orders: result}, nil
}

// toStatus переводит доменную ошибку в gRPC-статус. Текст инфраструктурных
// ошибок наружу не отдаётся.
func (s *OrderService) toStatus(err error, operation string) error {
	switch {
	case errors.Is(err, domain.ErrCustomerNotFound),
		errors.Is(err, domain.ErrOrderNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, domain.ErrInsufficientStock):
		return status.Error(codes.FailedPrecondition, err.Error())
	case domain.IsValidationError(err):
		return status.Error(codes.InvalidArgument, err.Error())
	case domain.IsConflict(err):
		return status.Error(codes.AlreadyExists, err.Error())
	default:
		s.logger.WithError(err).WithField("operation", operation).Error("order operation failed")
		return status.Error(codes.Internal, "internal error")
	}
}

type idempotencyErrorPayload struct {
	Code    int32  `json:"code"`
	Message string `json:"message"`
}

func withIdempotency[T proto.Message](
	s *OrderService,
	ctx context.Context,
	method string,
	req proto.Message,
	newResp func() T,
	handler func(context.Context) (T, error),
) (T, error) {
	var zero T

	idemKey := readIdempotencyKey(ctx)
	if s.idemRepo == nil || idemKey == "" {
		return handler(ctx)
	}

	reqHash, err := buildIdempotencyRequestHash(method, req)
	if err != nil {
		s.logger.WithError(err).WithField("method", method).Warn("failed to build idempotency request hash")
		return zero, status.Error(codes.Internal, "failed to initialize idempotency request")
	}

	record, err := s.idemRepo.CreateProcessing(ctx, idemKey, reqHash, time.Now().UTC().Add(s.idemTTL))
	if err != nil {
		return replayIdempotency(s, err, record, newResp)
	}

	// Запись о завершении не должна зависеть от отмены вызова клиентом.
	doneCtx := context.WithoutCancel(ctx)
	defer func() {
		if p := recover(); p != nil {
			s.cacheIdempotencyFailure(doneCtx, idemKey, status.Error(codes.Internal, "internal error"))
			panic(p)
		}
	}()

	resp, runErr := handler(ctx)
	if runErr != nil {
		s.cacheIdempotencyFailure(doneCtx, idemKey, runErr)
		return resp, runErr
	}

	if cacheErr := s.cacheIdempotencySuccess(doneCtx, idemKey, resp); cacheErr != nil {
		s.logger.WithError(cacheErr).WithField("idempotency_key", idemKey).Warn("failed to store idempotent success response")
	}

	return resp, nil
}

func replayIdempotency[T proto.Message](
	s *OrderService,
	createErr error,
	record domain.IdempotencyRecord,
	newResp func() T,
) (T, error) {
	var zero T

	switch {
	case errors.Is(createErr, domain.ErrIdempotencyHashMismatch):
		return zero, status.Error(codes.AlreadyExists, "idempotency key is already used with different request payload")
	case errors.Is(createErr, domain.ErrIdempotencyKeyAlreadyExists):
		switch record.Status {
		case domain.IdempotencyStatusDone:
			resp := newResp()
			if err := protojson.Unmarshal(record.ResponseBody, resp); err != nil {
				s.logger.WithError(err).WithField("idempotency_key", record.Key).Warn("failed to decode cached idempotency response")
				return zero, status.Error(codes.Internal, "failed to decode cached idempotency response")
			}
			return resp, nil
		case domain.IdempotencyStatusProcessing:
			return zero, status.Error(codes.Aborted, "request with the same idempotency key is already processing")
		case domain.IdempotencyStatusFailed:
			return zero, decodeIdempotencyFailure(record)
		default:
			return zero, status.Error(codes.Internal, "unknown idempotency record status")
		}
	default:
		s.logger.WithError(createErr).Warn("failed to create idempotency record")
		return zero, status.Error(codes.Internal, "failed to initialize idempotency request")
	}
}

func (s *OrderService) cacheIdempotencySuccess(ctx context.Context, key string, resp proto.Message) error {
	data, err := protojson.Marshal(resp)
	if err != nil {
		return err
	}
	return s.idemRepo.MarkDone(ctx, key, data, int(codes.OK))
}

func (s *OrderService) cacheIdempotencyFailure(ctx context.Context, key string, runErr error) {
	st := status.Convert(runErr)
	code := st.Code()
	if code == codes.OK {
		code = codes.Internal
	}

	payload, err := json.Marshal(idempotencyErrorPayload{
		Code:    int32(code), //nolint:gosec // codes.Code is a bounded enum value.
		Message: st.Message(),
	})
	if err != nil {
		payload = nil
	}

	if err := s.idemRepo.MarkFailed(ctx, key, payload, int(code)); err != nil {
		s.logger.WithError(err).WithField("idempotency_key", key).Warn("failed to store idempotency failure response")
	}
}

func decodeIdempotencyFailure(record domain.IdempotencyRecord) error {
	if len(record.ResponseBody) > 0 {
		var payload idempotencyErrorPayload
		if err := json.Unmarshal(record.ResponseBody, &payload); err == nil {
			if payload.Code > int32(codes.OK) && payload.Code <= int32(codes.Unauthenticated) {
				if payload.Message == "" {
					payload.Message = "previous request with the same idempotency key failed"
				}
				return status.Error(codes.Code(uint32(payload.Code)), payload.Message)
			}
		}
	}

	return status.Error(codes.Internal, "previous request with the same idempotency key failed")
}

func readIdempotencyKey(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	values := md.Get(idempotencyKeyHeader)
	if len(values) == 0 {
		return ""
	}
	return strings.TrimSpace(values[0])
}

func buildIdempotencyRequestHash(method string, req proto.Message) (string, error) {
	if req == nil {
		return "", fmt.Errorf("request is nil")
	}

	data, err := proto.MarshalOptions{Deterministic: true}.Marshal(req)
	if err != nil {
		return "", err
	}

	payload := make([]byte, 0, len(method)+1+len(data))
	payload = append(payload, method...)
	payload = append(payload, ':')
	payload = append(payload, data...)
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}

func toProtoOrder(order domain.Order) *ordersv1.Order {
	lines := make([]*ordersv1.OrderLine, 0, len(order.Lines))
	for _, line := range order.Lines {
		lines = append(lines, &ordersv1.OrderLine{
			Id:         line.ID,
			ProductId:  line.ProductID,
			Quantity:   line.Quantity,
			PriceMinor: line.PriceMinor,
		})
	}

	return &ordersv1.Order{
		Id:            order.ID,
		CustomerId:    order.CustomerID,
		AmountMinor:   order.AmountMinor,
		Lines:         lines,
		CreatedAtUnix: order.CreatedAt.Unix(),
	}
}
