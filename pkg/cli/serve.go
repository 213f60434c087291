package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/e-minguez/suse-edge-support-matrix/pkg/cli/config"
	controller "github.com/e-minguez/suse-edge-support-matrix/pkg/controller/http"
)

func cmdServe() *cli.Command {
	var (
		serverCfg config.Server
		p         pipeline
	)

	flags := append(serverCfg.Flags(), p.generateFlags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Serve the generated files and regenerate them on signed refresh hooks",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := p.load(c); err != nil {
				return err
			}

			logger := ctxlog.From(ctx)
			logger.Info("Starting edge-matrix server",
				slog.String("addr", serverCfg.Addr),
				slog.String("output_dir", p.output.Dir),
				slog.Bool("refresh_hook", serverCfg.RefreshSecret != ""),
			)

			generateUC, closer, err := p.generate(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to set up generation")
			}
			defer closer()

			server, err := controller.NewServer(
				ctx,
				generateUC,
				controller.WithAddr(serverCfg.Addr),
				controller.WithOutputDir(p.output.Dir),
				controller.WithRefreshSecret(serverCfg.RefreshSecret),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server error", slog.Any("error", err))
				}
			}()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
