package main

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vladislavdragonenkov/orders/internal/catalog"
	"github.com/vladislavdragonenkov/orders/internal/service/customer"
	"github.com/vladislavdragonenkov/orders/internal/service/product"
	"github.com/vladislavdragonenkov/orders/internal/storage/postgres"
)

func newSeedCmd() *cobra.Command {
	var (
		file         string
		dsn          string
		validateOnly bool
	)

	cmd := &cobra.Command{
		Use:   "seed --file catalog.yaml",
		Short: "Зарегистрировать клиентов и товары из YAML-каталога",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := catalog.Load(file)
			if err != nil {
				return err
			}
			if validateOnly {
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "catalog ok: customers=%d products=%d\n", len(cat.Customers), len(cat.Products))
				return err
			}

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

			logger := log.WithField("component", "orderctl-seed")
			report, err := catalog.Apply(ctx, cat,
				customer.NewService(postgres.NewCustomerRepository(store), logger),
				product.NewService(postgres.NewProductRepository(store), logger),
				logger,
			)
			if err != nil {
				return err
			}
			return printReport(cmd, report)
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "путь к YAML-каталогу")
	cmd.Flags().StringVar(&dsn, "dsn", "", "PostgreSQL DSN (fallback: "+envPostgresDSN+")")
	cmd.Flags().BoolVar(&validateOnly, "validate-only", false, "только проверить каталог")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func printReport(cmd *cobra.Command, report catalog.Report) error {
	_, err := fmt.Fprintf(cmd.OutOrStdout(), "seed ok: customers=%d products=%d skipped=%d\n",
		report.CustomersCreated, report.ProductsCreated, report.Skipped)
	return err
}
