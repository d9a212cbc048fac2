package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vinnie071015/sleeping-disorder-mlops/pkg/config"
	"github.com/vinnie071015/sleeping-disorder-mlops/pkg/serve"
)

func (c *CLI) newServeCommand() *cobra.Command {
	var (
		modelDir string
		port     int
		loglevel string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve /ping and /invocations for a trained model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := serve.Load(modelDir, c.logger)
			e := serve.BuildServer(svc, loglevel)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				c.logger.Info("listening", "port", port)
				errCh <- e.Start(fmt.Sprintf(":%d", port))
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			c.logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return e.Shutdown(shutdownCtx)
		},
	}

	defaultDir := os.Getenv(config.EnvModelDir)
	if defaultDir == "" {
		defaultDir = "/opt/ml/model"
	}
	cmd.Flags().StringVar(&modelDir, "model-dir", defaultDir, "Directory holding the trained artifacts")
	cmd.Flags().IntVar(&port, "port", 8080, "Port to listen on")
	cmd.Flags().StringVar(&loglevel, "loglevel", "info", "HTTP log level: debug, info, warn, error or off")
	return cmd
}
