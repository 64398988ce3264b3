package main

import (
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"greenhalal/backend/internal/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API and evaluation websocket",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		port := cfg.Server.Port
		if p, _ := cmd.Flags().GetString("port"); p != "" {
			port = p
		}

		if err := os.MkdirAll(filepath.Dir(cfg.Store.Path), 0o755); err != nil {
			return eris.Wrap(err, "create data directory")
		}
		server, err := api.NewServer(api.ConfigFrom(cfg))
		if err != nil {
			return eris.Wrap(err, "create server")
		}
		defer server.Close()

		return server.ListenAndServe(ctx, port)
	},
}

func init() {
	serveCmd.Flags().String("port", "", "listen port (overrides server.port)")
	rootCmd.AddCommand(serveCmd)
}
