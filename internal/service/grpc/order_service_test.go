package grpcsvc_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	reflectionpb "google.golang.org/grpc/reflection/grpc_reflection_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/vladislavdragonenkov/orders/internal/domain"
	"github.com/vladislavdragonenkov/orders/internal/metrics"
	grpcsvc "github.com/vladislavdragonenkov/orders/internal/service/grpc"
	"github.com/vladislavdragonenkov/orders/internal/service/ordering"
	"github.com/vladislavdragonenkov/orders/internal/storage/memory"
	ordersv1 "github.com/vladislavdragonenkov/orders/proto/orders/v1"
)

type harness struct {
	client ordersv1.OrderServiceClient
	conn   *grpc.ClientConn
	store  *memory.Store
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return newHarnessWith(t, nil)
}

// newHarnessWith поднимает сервер поверх bufconn. Если orders == nil,
// используется настоящий сервис заказов на памяти.
func newHarnessWith(t *testing.T, orders grpcsvc.Orders) *harness {
	t.Helper()
	ctx := context.Background()

	store := memory.NewStore()
	require.NoError(t, store.Customers().Create(ctx, domain.Customer{ID: "C1", Name: "Ann", Email: "ann@example.com"}))
	require.NoError(t, store.Products().Create(ctx, domain.Product{ID: "P1", Name: "Keyboard", PriceMinor: 500, Quantity: 10}))
	require.NoError(t, store.Products().Create(ctx, domain.Product{ID: "P2", Name: "Mouse", PriceMinor: 250, Quantity: 2}))

	if orders == nil {
		orders = ordering.NewService(
			store.Customers(), store.Products(), store.Orders(), store,
			ordering.WithMetrics(metrics.NewOrderMetricsWithRegisterer(prometheus.NewRegistry())),
		)
	}
	svc := grpcsvc.NewOrderService(orders, store.Idempotency(), time.Hour, nil)
	server, _ := grpcsvc.NewServer(svc, nil, nil)

	lis := bufconn.Listen(1 << 20)
	go func() {
		_ = server.Serve(lis)
	}()
	t.Cleanup(server.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return &harness{client: ordersv1.NewOrderServiceClient(conn), conn: conn, store: store}
}

func TestOrderService_CreateAndGet(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	created, err := h.client.CreateOrder(ctx, &ordersv1.CreateOrderRequest{
		CustomerId: "C1",
		Lines: []*ordersv1.OrderLineInput{
			{ProductId: "P1", Quantity: 2},
			{ProductId: "P2", Quantity: 1},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, created.Order)
	assert.Equal(t, int64(1250), created.GetOrder().GetAmountMinor())
	require.Len(t, created.Order.Lines, 2)
	assert.NotZero(t, created.GetOrder().GetCreatedAtUnix())
	assert.Equal(t, "P1", created.Order.Lines[0].GetProductId())
	assert.Equal(t, int64(500), created.Order.Lines[0].GetPriceMinor())

	got, err := h.client.GetOrder(ctx, &ordersv1.GetOrderRequest{OrderId: created.GetOrder().GetId()})
	require.NoError(t, err)
	assert.Equal(t, created.GetOrder().GetId(), got.GetOrder().GetId())

	list, err := h.client.ListCustomerOrders(ctx, &ordersv1.ListCustomerOrdersRequest{CustomerId: "C1"})
	require.NoError(t, err)
	assert.Len(t, list.Orders, 1)
}

func TestOrderService_ErrorCodes(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	cases := []struct {
		name string
		req  *ordersv1.CreateOrderRequest
		code codes.Code
	}{
		{
			name: "unknown customer",
			req:  &ordersv1.CreateOrderRequest{CustomerId: "nobody", Lines: []*ordersv1.OrderLineInput{{ProductId: "P1", Quantity: 1}}},
			code: codes.NotFound,
		},
		{
			name: "unknown product",
			req:  &ordersv1.CreateOrderRequest{CustomerId: "C1", Lines: []*ordersv1.OrderLineInput{{ProductId: "P9", Quantity: 1}}},
			code: codes.InvalidArgument,
		},
		{
			name: "insufficient stock",
			req:  &ordersv1.CreateOrderRequest{CustomerId: "C1", Lines: []*ordersv1.OrderLineInput{{ProductId: "P2", Quantity: 3}}},
			code: codes.FailedPrecondition,
		},
		{
			name: "empty order",
			req:  &ordersv1.CreateOrderRequest{CustomerId: "C1"},
			code: codes.InvalidArgument,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := h.client.CreateOrder(ctx, tc.req)
			assert.Equal(t, tc.code, status.Code(err), "err: %v", err)
		})
	}

	_, err := h.client.GetOrder(ctx, &ordersv1.GetOrderRequest{OrderId: "missing"})
	assert.Equal(t, codes.NotFound, status.Code(err))

	_, err = h.client.GetOrder(ctx, &ordersv1.GetOrderRequest{})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestOrderService_IdempotentReplay(t *testing.T) {
	h := newHarness(t)
	ctx := metadata.AppendToOutgoingContext(context.Background(), "idempotency-key", "grpc-key-1")
	req := &ordersv1.CreateOrderRequest{CustomerId: "C1", Lines: []*ordersv1.OrderLineInput{{ProductId: "P1", Quantity: 1}}}

	first, err := h.client.CreateOrder(ctx, req)
	require.NoError(t, err)
	second, err := h.client.CreateOrder(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, first.GetOrder().GetId(), second.GetOrder().GetId())
	assert.Equal(t, 1, h.store.OrderCount())

	product, err := h.store.Products().Get(context.Background(), "P1")
	require.NoError(t, err)
	assert.Equal(t, int64(9), product.Quantity)

	_, err = h.client.CreateOrder(ctx, &ordersv1.CreateOrderRequest{CustomerId: "C1", Lines: []*ordersv1.OrderLineInput{{ProductId: "P1", Quantity: 2}}})
	assert.Equal(t, codes.AlreadyExists, status.Code(err))
}

func TestOrderService_FailureIsReplayed(t *testing.T) {
	h := newHarness(t)
	ctx := metadata.AppendToOutgoingContext(context.Background(), "idempotency-key", "grpc-key-2")
	req := &ordersv1.CreateOrderRequest{CustomerId: "C1", Lines: []*ordersv1.OrderLineInput{{ProductId: "P2", Quantity: 5}}}

	_, err := h.client.CreateOrder(ctx, req)
	require.Equal(t, codes.FailedPrecondition, status.Code(err))

	_, err = h.client.CreateOrder(ctx, req)
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))
}

func TestServer_HealthServing(t *testing.T) {
	h := newHarness(t)

	resp, err := healthpb.NewHealthClient(h.conn).Check(context.Background(), &healthpb.HealthCheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())
}

type panickingOrders struct {
	grpcsvc.Orders
}

func (panickingOrders) CreateOrder(context.Context, ordering.CreateOrderCommand) (domain.Order, error) {
	panic("order pipeline exploded")
}

func TestOrderService_PanicReleasesIdempotencyKey(t *testing.T) {
	h := newHarnessWith(t, panickingOrders{})
	ctx := metadata.AppendToOutgoingContext(context.Background(), "idempotency-key", "grpc-key-panic")
	req := &ordersv1.CreateOrderRequest{CustomerId: "C1", Lines: []*ordersv1.OrderLineInput{{ProductId: "P1", Quantity: 1}}}

	_, err := h.client.CreateOrder(ctx, req)
	require.Equal(t, codes.Internal, status.Code(err))

	record, err := h.store.Idempotency().Get(context.Background(), "grpc-key-panic")
	require.NoError(t, err)
	assert.Equal(t, domain.IdempotencyStatusFailed, record.Status)

	_, err = h.client.CreateOrder(ctx, req)
	assert.Equal(t, codes.Internal, status.Code(err), "retry must replay the failure instead of Aborted")
}

func TestServer_ReflectionResolvesOrderService(t *testing.T) {
	h := newHarness(t)

	stream, err := reflectionpb.NewServerReflectionClient(h.conn).ServerReflectionInfo(context.Background())
	require.NoError(t, err)

	require.NoError(t, stream.Send(&reflectionpb.ServerReflectionRequest{
		MessageRequest: &reflectionpb.ServerReflectionRequest_FileContainingSymbol{
			FileContainingSymbol: ordersv1.OrderService_ServiceDesc.ServiceName,
		},
	}))
	resp, err := stream.Recv()
	require.NoError(t, err)
	require.NoError(t, stream.CloseSend())

	files := resp.GetFileDescriptorResponse().GetFileDescriptorProto()
	require.NotEmpty(t, files, "error: %v", resp.GetErrorResponse())

	var fd descriptorpb.FileDescriptorProto
	require.NoError(t, proto.Unmarshal(files[0], &fd))
	assert.Equal(t, "orders.v1", fd.GetPackage())
	require.Len(t, fd.GetService(), 1)
	assert.Equal(t, "OrderService", fd.GetService()[0].GetName())
}
