package grpcsvc

import (
	"context"
	"time"

	promgrpc "github.com/grpc-ecosystem/go-grpc-prometheus"
	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"

	ordersv1 "github.com/vladislavdragonenkov/orders/proto/orders/v1"
)

// NewServer собирает gRPC-сервер с сервисом заказов, health и reflection.
// metrics может быть nil.
func NewServer(svc ordersv1.OrderServiceServer, metrics *promgrpc.ServerMetrics, logger *log.Entry) (*grpc.Server, *health.Server) {
	if logger == nil {
		logger = log.WithField("component", "grpc")
	}

	interceptors := []grpc.UnaryServerInterceptor{recoveryInterceptor(logger)}
	if metrics != nil {
		interceptors = append(interceptors, metrics.UnaryServerInterceptor())
	}
	interceptors = append(interceptors, loggingInterceptor(logger))

	server := grpc.NewServer(grpc.ChainUnaryInterceptor(interceptors...))
	ordersv1.RegisterOrderServiceServer(server, svc)

	healthServer := health.NewServer()
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(ordersv1.OrderService_ServiceDesc.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(server, healthServer)

	reflection.Register(server)
	if metrics != nil {
		metrics.InitializeMetrics(server)
	}

	return server, healthServer
}

func loggingInterceptor(logger *log.Entry) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		entry := logger.WithFields(log.Fields{
			"method":      info.FullMethod,
			"code":        status.Code(err).String(),
			"duration_ms": time.Since(start).Milliseconds(),
		})
		if err != nil && status.Code(err) == codes.Internal {
			entry.Warn("grpc request failed")
		} else {
			entry.Debug("grpc request served")
		}
		return resp, err
	}
}

func recoveryInterceptor(logger *log.Entry) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
		defer func() {
			if p := recover(); p != nil {
				logger.WithFields(log.Fields{
					"method": info.FullMethod,
					"panic":  p,
				}).Error("grpc handler panicked")
				err = status.Error(codes.Internal, "internal error")
			}
		}()
		return handler(ctx, req)
	}
}
