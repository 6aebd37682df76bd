package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const (
	envPostgresDSN = "ORDERS_POSTGRES_DSN"
	commandTimeout = 30 * time.Second
	// Команды orderctl выполняют запросы последовательно.
	cliMaxConns = 2
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "orderctl",
		Short:         "Утилиты обслуживания order service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			log.SetOutput(cmd.ErrOrStderr())
			log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
		},
	}
	cmd.AddCommand(newMigrateCmd())
	cmd.AddCommand(newSeedCmd())
	cmd.AddCommand(newDLQCmd())
	cmd.AddCommand(newVersionCmd())
	return cmd
}

// resolveDSN берёт DSN из флага, иначе из окружения.
func resolveDSN(flagValue string) (string, error) {
	if dsn := strings.TrimSpace(flagValue); dsn != "" {
		return dsn, nil
	}
	if dsn := strings.TrimSpace(os.Getenv(envPostgresDSN)); dsn != "" {
		return dsn, nil
	}
	return "", fmt.Errorf("%s (or --dsn) is required", envPostgresDSN)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
