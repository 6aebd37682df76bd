package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vladislavdragonenkov/orders/internal/storage/postgres"
)

func newMigrateCmd() *cobra.Command {
	var (
		dsn   string
		steps int
	)

	cmd := &cobra.Command{
		Use:       "migrate up|down|status",
		Short:     "Применить, откатить или показать миграции PostgreSQL",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down", "status"},
		RunE: func(cmd *cobra.Command, args []string) error {
			resolved, err := resolveDSN(dsn)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			store, err := postgres.Open(ctx, resolved, postgres.WithMaxConns(cliMaxConns))
			if err != nil {
				return fmt.Errorf("open postgres store: %w", err)
			}
			defer store.Close()

			return runMigrate(ctx, store, args[0], steps, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&dsn, "dsn", "", "PostgreSQL DSN (fallback: "+envPostgresDSN+")")
	cmd.Flags().IntVar(&steps, "steps", 0, "число миграций (0 = все для up, 1 для down)")
	return cmd
}

type migrator interface {
	MigrateUp(ctx context.Context, steps int) error
	MigrateDown(ctx context.Context, steps int) error
	MigrationStatus(ctx context.Context) (postgres.MigrationStatus, error)
}

func runMigrate(ctx context.Context, m migrator, direction string, steps int, out io.Writer) error {
	switch direction {
	case "up":
		if err := m.MigrateUp(ctx, steps); err != nil {
			return fmt.Errorf("migrate up: %w", err)
		}
	case "down":
		if steps <= 0 {
			steps = 1
		}
		if err := m.MigrateDown(ctx, steps); err != nil {
			return fmt.Errorf("migrate down: %w", err)
		}
	case "status":
	default:
		return fmt.Errorf("unsupported direction %q (use up|down|status)", direction)
	}

	status, err := m.MigrationStatus(ctx)
	if err != nil {
		return fmt.Errorf("migration status: %w", err)
	}
	_, err = fmt.Fprintf(out, "migrate %s ok: version=%d applied=%t dirty=%t\n", direction, status.Version, status.Applied, status.Dirty)
	return err
}
