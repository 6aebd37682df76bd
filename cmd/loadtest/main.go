// Command loadtest нагружает gRPC API заказов и печатает сводку задержек.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"

	ordersv1 "github.com/vladislavdragonenkov/orders/proto/orders/v1"
)

const idempotencyHeader = "idempotency-key"

type loadMode string

const (
	modeCreate    loadMode = "create"
	modeCreateGet loadMode = "create-get"
)

type config struct {
	addr        string
	total       int
	concurrency int
	connections int
	timeout     time.Duration
	mode        loadMode
	customerID  string
	productID   string
	quantity    int64
	outputPath  string
}

func (c config) validate() error {
	switch {
	case strings.TrimSpace(c.addr) == "":
		return errors.New("addr is required")
	case c.customerID == "" || c.productID == "":
		return errors.New("customer and product are required")
	case c.total <= 0, c.concurrency <= 0, c.connections <= 0:
		return errors.New("total, concurrency and connections must be positive")
	case c.timeout <= 0:
		return errors.New("timeout must be positive")
	case c.quantity <= 0:
		return errors.New("quantity must be positive")
	}
	return nil
}

func parseConfig(fs *flag.FlagSet, args []string) (config, error) {
	cfg := config{mode: modeCreate}
	fs.StringVar(&cfg.addr, "addr", "localhost:50051", "адрес gRPC API")
	fs.IntVar(&cfg.total, "total", 400, "число сценариев")
	fs.IntVar(&cfg.concurrency, "concurrency", 40, "число параллельных сценариев")
	fs.IntVar(&cfg.connections, "connections", 4, "число gRPC-соединений")
	fs.DurationVar(&cfg.timeout, "timeout", 5*time.Second, "таймаут одного вызова")
	fs.Func("mode", "create | create-get", func(raw string) error {
		switch mode := loadMode(strings.ToLower(strings.TrimSpace(raw))); mode {
		case modeCreate, modeCreateGet:
			cfg.mode = mode
			return nil
		default:
			return fmt.Errorf("unsupported mode %q", raw)
		}
	})
	fs.StringVar(&cfg.customerID, "customer", "", "ID существующего клиента")
	fs.StringVar(&cfg.productID, "product", "", "ID существующего товара")
	fs.Int64Var(&cfg.quantity, "quantity", 1, "количество товара в заказе")
	fs.StringVar(&cfg.outputPath, "output", "", "файл для JSON-отчёта")

	if err := fs.Parse(args); err != nil {
		return config{}, err
	}
	if err := cfg.validate(); err != nil {
		return config{}, err
	}
	return cfg, nil
}

type orderClient interface {
	CreateOrder(ctx context.Context, req *ordersv1.CreateOrderRequest, opts ...grpc.CallOption) (*ordersv1.CreateOrderResponse, error)
	GetOrder(ctx context.Context, req *ordersv1.GetOrderRequest, opts ...grpc.CallOption) (*ordersv1.GetOrderResponse, error)
}

func main() {
	if err := realMain(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "loadtest:", err)
		os.Exit(1)
	}
}

func realMain() error {
	cfg, err := parseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		return err
	}

	clients := make([]orderClient, 0, cfg.connections)
	for range cfg.connections {
		conn, err := grpc.NewClient(cfg.addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
		if err != nil {
			return fmt.Errorf("dial %s: %w", cfg.addr, err)
		}
		defer conn.Close()
		clients = append(clients, ordersv1.NewOrderServiceClient(conn))
	}

	report := run(context.Background(), cfg, clients)
	printReport(os.Stdout, report, cfg.mode)
	if cfg.outputPath != "" {
		if err := writeReport(cfg.outputPath, report); err != nil {
			return err
		}
	}
	if report.FailedScenarios > 0 {
		return fmt.Errorf("%d of %d scenarios failed", report.FailedScenarios, report.TotalScenarios)
	}
	return nil
}

// run выполняет cfg.total сценариев, распределяя их по соединениям по кругу.
// Ошибка сценария учитывается в отчёте и не останавливает остальные.
func run(ctx context.Context, cfg config, clients []orderClient) Report {
	startedAt := time.Now()
	runID := fmt.Sprintf("%d-%d", startedAt.UnixNano(), os.Getpid())
	rec := newRecorder()

	var g errgroup.Group
	g.SetLimit(cfg.concurrency)
	for i := range cfg.total {
		client := clients[i%len(clients)]
		key := fmt.Sprintf("load-%s-%d", runID, i)
		g.Go(func() error {
			started := time.Now()
			err := scenario(ctx, client, cfg, key, rec)
			rec.observe(scenarioOp, started, err)
			return nil
		})
	}
	_ = g.Wait()

	return rec.report(startedAt, time.Since(startedAt))
}

// scenario оформляет заказ со своим idempotency-key и в режиме create-get читает его.
func scenario(ctx context.Context, client orderClient, cfg config, key string, rec *recorder) error {
	createCtx, cancel := context.WithTimeout(metadata.AppendToOutgoingContext(ctx, idempotencyHeader, key), cfg.timeout)
	started := time.Now()
	created, err := client.CreateOrder(createCtx, &ordersv1.CreateOrderRequest{
		CustomerId: cfg.customerID,
		Lines:      []*ordersv1.OrderLineInput{{ProductId: cfg.productID, Quantity: cfg.quantity}},
	})
	cancel()
	rec.observe("CreateOrder", started, err)
	if err != nil || cfg.mode == modeCreate {
		return err
	}

	getCtx, cancel := context.WithTimeout(ctx, cfg.timeout)
	defer cancel()
	started = time.Now()
	_, err = client.GetOrder(getCtx, &ordersv1.GetOrderRequest{OrderId: created.GetOrder().GetId()})
	rec.observe("GetOrder", started, err)
	return err
}
