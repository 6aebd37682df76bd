package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vladislavdragonenkov/orders/internal/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Показать версию",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "orderctl %s\n", version.String())
			return err
		},
	}
}
