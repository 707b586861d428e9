package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/kmantas/sedes/internal/web"
)

func serveCmd() *cobra.Command {
	var (
		addr      string
		knownPath string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the scansion pipeline as a JSON API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			analyzer, err := buildAnalyzer(knownPath)
			if err != nil {
				return err
			}
			server := web.NewServer(addr, analyzer, slog.Default())

			errc := make(chan error, 1)
			go func() { errc <- server.ListenAndServe() }()

			select {
			case err := <-errc:
				return err
			case <-cmd.Context().Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					return err
				}
				return <-errc
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&knownPath, "known", "", "YAML override table of hand-vetted scansions")
	return cmd
}
