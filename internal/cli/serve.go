package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the blog JSON API, sitemap and feed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			module, err := moduleFrom(cmd.Context())
			if err != nil {
				return err
			}
			handler, err := module.Handler()
			if err != nil {
				return err
			}
			cfg := module.Config()
			if addr == "" {
				addr = cfg.HTTP.Addr
			}
			srv := &http.Server{
				Addr:         addr,
				Handler:      handler,
				ReadTimeout:  cfg.HTTP.ReadTimeout,
				WriteTimeout: cfg.HTTP.WriteTimeout,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			logger := module.Logger("cli")

			go func() {
				if err := module.Watch(ctx); err != nil {
					logger.Error("blog.watch.failed", "error", err)
				}
			}()
			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				logger.Info("blog.http.shutdown")
				if err := srv.Shutdown(shutdownCtx); err != nil {
					logger.Error("blog.http.shutdown_failed", "error", err)
				}
			}()

			logger.Info("blog.http.listening", "addr", addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (defaults to http.addr)")
	return cmd
}
