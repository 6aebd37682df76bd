package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	promgrpc "github.com/grpc-ecosystem/go-grpc-prometheus"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	healthcheck "github.com/vladislavdragonenkov/orders/internal/health"
	"github.com/vladislavdragonenkov/orders/internal/metrics"
	grpcsvc "github.com/vladislavdragonenkov/orders/internal/service/grpc"
	httpapi "github.com/vladislavdragonenkov/orders/internal/service/http"
	"github.com/vladislavdragonenkov/orders/internal/service/idempotency"
	"github.com/vladislavdragonenkov/orders/internal/service/outbox"
	"github.com/vladislavdragonenkov/orders/internal/version"
)

const shutdownTimeout = 5 * time.Second

// Registry — registerer и gatherer одного реестра метрик.
type Registry interface {
	prometheus.Registerer
	prometheus.Gatherer
}

// Run запускает сервис и блокируется до отмены ctx или падения одного из компонентов.
func Run(ctx context.Context, cfg Config) error {
	return RunWithRegistry(ctx, cfg, defaultRegistry{
		Registerer: prometheus.DefaultRegisterer,
		Gatherer:   prometheus.DefaultGatherer,
	})
}

type defaultRegistry struct {
	prometheus.Registerer
	prometheus.Gatherer
}

// RunWithRegistry запускает сервис с отдельным реестром метрик.
func RunWithRegistry(ctx context.Context, cfg Config, registry Registry) error {
	logger := log.WithField("component", "app")

	deps, err := NewDependencies(ctx, cfg, registry, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := deps.Close(); err != nil {
			logger.WithError(err).Warn("failed to release dependencies")
		}
	}()

	healthHandler := healthcheck.NewHandler(version.GetVersion())
	for name, checker := range deps.Checkers {
		healthHandler.RegisterChecker(name, checker)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)
	// abort останавливает уже запущенные серверы, если следующий не смог стартовать.
	abort := func(err error) error {
		cancel()
		_ = g.Wait()
		return err
	}

	if cfg.HTTPAddr != "" {
		handler := httpapi.NewRouter(
			httpapi.NewHandler(deps.Customers, deps.Products, deps.Orders, logger.WithField("layer", "http")),
			httpapi.RouterConfig{
				Logger:         logger.WithField("layer", "http"),
				Metrics:        metrics.NewHTTPMetricsWithRegisterer(registry),
				Idempotency:    deps.Idempotency,
				IdempotencyTTL: cfg.IdempotencyTTL,
			},
		)
		if err := serveHTTP(gctx, g, "api", cfg.HTTPAddr, handler, logger); err != nil {
			return abort(err)
		}
	}

	if cfg.GRPCAddr != "" {
		if err := serveGRPC(gctx, g, cfg, deps, registry, logger); err != nil {
			return abort(err)
		}
	}

	if cfg.MetricsAddr != "" {
		if err := serveHTTP(gctx, g, "metrics", cfg.MetricsAddr, metricsMux(registry, healthHandler), logger); err != nil {
			return abort(err)
		}
	}

	outboxWorker := outbox.NewWorker(deps.Outbox, deps.Publisher,
		outbox.WithLogger(logger.WithField("component", "outbox-worker")),
		outbox.WithDLQPublisher(deps.DLQ),
		outbox.WithMetrics(metrics.NewOutboxMetricsWithRegisterer(registry)),
		outbox.WithPollInterval(cfg.OutboxPollInterval),
		outbox.WithBatchSize(cfg.OutboxBatchSize),
		outbox.WithMaxAttempts(cfg.OutboxMaxAttempts),
		outbox.WithRetryBaseDelay(cfg.OutboxRetryDelay),
	)
	g.Go(func() error { return outboxWorker.Run(gctx) })

	cleanupWorker := idempotency.NewCleanupWorker(deps.Idempotency,
		idempotency.WithLogger(logger.WithField("component", "idempotency-cleanup")),
		idempotency.WithMetrics(metrics.NewCleanupMetricsWithRegisterer(registry)),
		idempotency.WithInterval(cfg.IdempotencyCleanupInterval),
		idempotency.WithBatchSize(cfg.IdempotencyCleanupBatchSize),
	)
	g.Go(func() error { return cleanupWorker.Run(gctx) })

	logger.WithFields(log.Fields{
		"http_addr":    cfg.HTTPAddr,
		"grpc_addr":    cfg.GRPCAddr,
		"metrics_addr": cfg.MetricsAddr,
		"storage":      cfg.StorageDriver,
		"version":      version.String(),
	}).Info("order service started")

	err = g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func metricsMux(gatherer prometheus.Gatherer, healthHandler *healthcheck.Handler) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	mux.Handle("/healthz", healthHandler)
	mux.HandleFunc("/readyz", healthHandler.ReadinessHandler)
	mux.HandleFunc("/livez", healthcheck.LivenessHandler)
	return mux
}

// serveHTTP слушает addr сразу, чтобы ошибка порта вернулась до старта группы.
func serveHTTP(ctx context.Context, g *errgroup.Group, name, addr string, handler http.Handler, logger *log.Entry) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	srv := &http.Server{Handler: handler, ReadHeaderTimeout: 5 * time.Second}
	entry := logger.WithFields(log.Fields{"server": name, "addr": lis.Addr().String()})

	g.Go(func() error {
		entry.Info("http server listening")
		if err := srv.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			entry.WithError(err).Warn("http shutdown with error")
		}
		return nil
	})
	return nil
}

func serveGRPC(ctx context.Context, g *errgroup.Group, cfg Config, deps *Dependencies, registerer prometheus.Registerer, logger *log.Entry) error {
	grpcMetrics := promgrpc.NewServerMetrics()
	if err := registerer.Register(grpcMetrics); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*promgrpc.ServerMetrics); ok {
				grpcMetrics = existing
			}
		} else {
			logger.WithError(err).Warn("failed to register grpc metrics")
		}
	}

	svc := grpcsvc.NewOrderService(deps.Orders, deps.Idempotency, cfg.IdempotencyTTL, logger.WithField("layer", "grpc"))
	server, healthServer := grpcsvc.NewServer(svc, grpcMetrics, logger.WithField("layer", "grpc"))

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		return err
	}

	g.Go(func() error {
		logger.WithField("addr", lis.Addr().String()).Info("grpc server listening")
		if err := server.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		healthServer.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)

		stopped := make(chan struct{})
		go func() {
			server.GracefulStop()
			close(stopped)
		}()
		select {
		case <-stopped:
		case <-time.After(shutdownTimeout):
			logger.Warn("grpc graceful stop timed out, forcing stop")
			server.Stop()
		}
		return nil
	})
	return nil
}
