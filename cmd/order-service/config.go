package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/vladislavdragonenkov/orders/internal/app"
)

const (
	envHTTPAddr                    = "ORDERS_HTTP_ADDR"
	envGRPCAddr                    = "ORDERS_GRPC_ADDR"
	envMetricsAddr                 = "ORDERS_METRICS_ADDR"
	envStorageDriver               = "ORDERS_STORAGE_DRIVER"
	envPostgresDSN                 = "ORDERS_POSTGRES_DSN"
	envPostgresAutoMigrate         = "ORDERS_POSTGRES_AUTO_MIGRATE"
	envRedisAddr                   = "ORDERS_REDIS_ADDR"
	envKafkaBrokers                = "ORDERS_KAFKA_BROKERS"
	envKafkaTopic                  = "ORDERS_KAFKA_TOPIC"
	envRabbitMQURL                 = "ORDERS_RABBITMQ_URL"
	envRabbitMQQueue               = "ORDERS_RABBITMQ_QUEUE"
	envOutboxPollInterval          = "ORDERS_OUTBOX_POLL_INTERVAL"
	envOutboxBatchSize             = "ORDERS_OUTBOX_BATCH_SIZE"
	envOutboxMaxAttempts           = "ORDERS_OUTBOX_MAX_ATTEMPTS"
	envOutboxRetryDelay            = "ORDERS_OUTBOX_RETRY_DELAY"
	envIdempotencyTTL              = "ORDERS_IDEMPOTENCY_TTL"
	envIdempotencyCleanupInterval  = "ORDERS_IDEMPOTENCY_CLEANUP_INTERVAL"
	envIdempotencyCleanupBatchSize = "ORDERS_IDEMPOTENCY_CLEANUP_BATCH_SIZE"
	envSeedFile                    = "ORDERS_SEED_FILE"
	envLogLevel                    = "ORDERS_LOG_LEVEL"
	envLogFormat                   = "ORDERS_LOG_FORMAT"
)

type envLookup func(string) (string, bool)

// readConfigFromEnv накладывает переменные окружения на конфигурацию по умолчанию.
// Некорректные значения игнорируются, по каждому возвращается предупреждение.
func readConfigFromEnv(lookup envLookup) (app.Config, []string) {
	cfg := app.DefaultConfig()
	var warnings []string

	warn := func(key, value string, err error) {
		warnings = append(warnings, fmt.Sprintf("ignore %s=%q: %v", key, value, err))
	}

	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}

	str(envHTTPAddr, &cfg.HTTPAddr)
	str(envGRPCAddr, &cfg.GRPCAddr)
	str(envMetricsAddr, &cfg.MetricsAddr)
	str(envPostgresDSN, &cfg.PostgresDSN)
	str(envRedisAddr, &cfg.RedisAddr)
	str(envKafkaTopic, &cfg.KafkaTopic)
	str(envRabbitMQURL, &cfg.RabbitMQURL)
	str(envRabbitMQQueue, &cfg.RabbitMQQueue)
	str(envSeedFile, &cfg.SeedFile)
	str(envLogLevel, &cfg.LogLevel)
	str(envLogFormat, &cfg.LogFormat)

	if v, ok := lookup(envStorageDriver); ok && strings.TrimSpace(v) != "" {
		cfg.StorageDriver = strings.ToLower(strings.TrimSpace(v))
	}

	if v, ok := lookup(envKafkaBrokers); ok {
		cfg.KafkaBrokers = splitList(v)
	}

	if v, ok := lookup(envPostgresAutoMigrate); ok {
		parsed, err := parseBool(v)
		if err != nil {
			warn(envPostgresAutoMigrate, v, err)
		} else {
			cfg.PostgresAutoMigrate = parsed
		}
	}

	positive := func(v int) bool { return v > 0 }
	ints := []struct {
		key string
		dst *int
	}{
		{envOutboxBatchSize, &cfg.OutboxBatchSize},
		{envOutboxMaxAttempts, &cfg.OutboxMaxAttempts},
		{envIdempotencyCleanupBatchSize, &cfg.IdempotencyCleanupBatchSize},
	}
	for _, item := range ints {
		v, ok := lookup(item.key)
		if !ok {
			continue
		}
		parsed, err := parseInt(v, positive, "must be > 0")
		if err != nil {
			warn(item.key, v, err)
			continue
		}
		*item.dst = parsed
	}

	durations := []struct {
		key     string
		dst     *time.Duration
		valid   func(time.Duration) bool
		message string
	}{
		{envOutboxPollInterval, &cfg.OutboxPollInterval, func(d time.Duration) bool { return d > 0 }, "must be > 0"},
		{envOutboxRetryDelay, &cfg.OutboxRetryDelay, func(d time.Duration) bool { return d >= 0 }, "must be >= 0"},
		{envIdempotencyTTL, &cfg.IdempotencyTTL, func(d time.Duration) bool { return d > 0 }, "must be > 0"},
		{envIdempotencyCleanupInterval, &cfg.IdempotencyCleanupInterval, func(d time.Duration) bool { return d > 0 }, "must be > 0"},
	}
	for _, item := range durations {
		v, ok := lookup(item.key)
		if !ok {
			continue
		}
		parsed, err := parseDuration(v, item.valid, item.message)
		if err != nil {
			warn(item.key, v, err)
			continue
		}
		*item.dst = parsed
	}

	return cfg, warnings
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseBool(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid bool value")
	}
}

func parseInt(raw string, valid func(int) bool, message string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, err
	}
	if !valid(value) {
		return 0, fmt.Errorf("%s", message)
	}
	return value, nil
}

func parseDuration(raw string, valid func(time.Duration) bool, message string) (time.Duration, error) {
	value, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return 0, err
	}
	if !valid(value) {
		return 0, fmt.Errorf("%s", message)
	}
	return value, nil
}
