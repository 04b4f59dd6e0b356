package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hyperjump/vekta/internal/server"
)

const shutdownTimeout = 10 * time.Second

func newServerCmd(a *app) *cobra.Command {
	var host string
	var port int
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP API",
		Long:  "Serve POST /api/v1/vectorize, /api/v1/cluster and /api/v1/analyze, plus GET /health.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("host") {
				a.cfg.Server.Host = host
			}
			if cmd.Flags().Changed("port") {
				a.cfg.Server.Port = port
			}
			return runServer(cmd.Context(), a)
		},
	}
	cmd.Flags().StringVar(&host, "host", "", "listen host (overrides config)")
	cmd.Flags().IntVar(&port, "port", 0, "listen port (overrides config)")
	return cmd
}

func runServer(ctx context.Context, a *app) error {
	c := a.components()
	srv := server.NewServer(c.Embedder, c.Engine, &a.cfg.Server, a.logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	a.logger.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		a.logger.Warn("Graceful shutdown failed", zap.Error(err))
		return err
	}
	return nil
}
