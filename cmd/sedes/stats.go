package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kmantas/sedes/internal/cli"
)

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show per-work scansion outcomes from the database",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			stats, err := store.GetStats(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Print(cli.RenderWorkStats(stats))
			return nil
		},
	}
}
