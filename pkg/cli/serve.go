package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/mtgdump/pkg/cli/config"
	controller "github.com/m-mizutani/mtgdump/pkg/controller/http"
	"github.com/m-mizutani/mtgdump/pkg/domain/types"
	"github.com/m-mizutani/mtgdump/pkg/usecase"
	"github.com/m-mizutani/mtgdump/pkg/utils/async"
	"github.com/urfave/cli/v3"
)

func cmdServe(configPath *string) *cli.Command {
	var serverCfg config.Server

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Serve an extracted dump directory with a stats API",
		Flags:   serverCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			file, err := loadConfigFile(*configPath)
			if err != nil {
				return err
			}
			file.ApplyServer(c.IsSet, &serverCfg)

			logger.Info("Starting mtgdump server",
				slog.String("addr", serverCfg.Addr),
				slog.String("dir", serverCfg.Dir),
			)

			serverOpts := []controller.Option{
				controller.WithAddr(serverCfg.Addr),
				controller.WithDir(serverCfg.Dir),
			}

			if serverCfg.SentryDSN != "" {
				if err := sentry.Init(sentry.ClientOptions{
					Dsn:     serverCfg.SentryDSN,
					Release: types.ServiceName + "@" + types.Version,
				}); err != nil {
					return goerr.Wrap(err, "failed to initialize Sentry")
				}
				defer sentry.Flush(2 * time.Second)
				serverOpts = append(serverOpts, controller.WithSentry())
			}

			statsUC := usecase.NewStats(serverCfg.Dir)

			// Warm-up scan so the first stats request does not pay for
			// a cold directory walk, and the log shows what is served
			async.Dispatch(ctx, func(ctx context.Context) error {
				stats, err := statsUC.Stats(ctx)
				if err != nil {
					return err
				}
				ctxlog.From(ctx).Info("Dump directory scanned",
					slog.Int("file_count", stats.FileCount),
					slog.String("total_size", stats.TotalHuman),
				)
				return nil
			})

			// Create HTTP server with options
			server, err := controller.NewServer(ctx, statsUC, serverOpts...)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			// Start server in goroutine
			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server error", slog.Any("error", err))
				}
			}()

			// Wait for interrupt signal
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			// Graceful shutdown
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
