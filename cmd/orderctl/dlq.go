package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vladislavdragonenkov/orders/internal/messaging/kafka"
)

const envKafkaBrokers = "ORDERS_KAFKA_BROKERS"

func newDLQCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dlq",
		Short: "Операции с dead letter topic",
	}
	cmd.AddCommand(newDLQReplayCmd())
	return cmd
}

func newDLQReplayCmd() *cobra.Command {
	var (
		brokers string
		cfg     kafka.ReplayConfig
	)

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Переотправить события из DLQ (по умолчанию dry-run)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list := parseBrokers(brokers)
			if len(list) == 0 {
				list = parseBrokers(os.Getenv(envKafkaBrokers))
			}
			if len(list) == 0 {
				return fmt.Errorf("kafka brokers are required (--brokers or %s)", envKafkaBrokers)
			}
			if cfg.Limit <= 0 {
				return fmt.Errorf("limit must be > 0")
			}

			replayer, err := kafka.NewReplayer(list, cfg.Execute, log.WithField("component", "dlq-replay"))
			if err != nil {
				return err
			}
			defer replayer.Close()

			report, err := replayer.Run(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "dlq replay: processed=%d replayed=%d skipped=%d execute=%t\n",
				report.Processed, report.Replayed, report.Skipped, cfg.Execute)
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&brokers, "brokers", "", "Kafka brokers через запятую (fallback: "+envKafkaBrokers+")")
	flags.StringVar(&cfg.SourceTopic, "source-topic", kafka.TopicDeadLetterQueue, "DLQ topic")
	flags.StringVar(&cfg.TargetTopic, "target-topic", kafka.TopicOrderEvents, "topic для повторной публикации")
	flags.IntVar(&cfg.Limit, "limit", 100, "максимум сообщений за запуск")
	flags.BoolVar(&cfg.Execute, "execute", false, "публиковать, а не только показывать кандидатов")
	flags.BoolVar(&cfg.FromNewest, "from-newest", false, "начинать с последних сообщений")
	flags.DurationVar(&cfg.IdleTimeout, "idle-timeout", 2*time.Second, "таймаут ожидания сообщений в партиции")
	return cmd
}

func parseBrokers(raw string) []string {
	var brokers []string
	for _, chunk := range strings.Split(raw, ",") {
		if broker := strings.TrimSpace(chunk); broker != "" {
			brokers = append(brokers, broker)
		}
	}
	return brokers
}
