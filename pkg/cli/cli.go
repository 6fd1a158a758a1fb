package cli

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/mtgdump/pkg/cli/config"
	"github.com/m-mizutani/mtgdump/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

// Run runs the CLI application
func Run(ctx context.Context, args []string) error {
	var loggerCfg config.Logger
	var logger *slog.Logger
	var configPath string

	flags := append(loggerCfg.Flags(),
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "TOML configuration file (flags and env vars take precedence)",
			Destination: &configPath,
			Sources:     cli.EnvVars("MTGDUMP_CONFIG"),
		},
	)

	app := &cli.Command{
		Name:    "mtgdump",
		Usage:   "Download and extract MTGJSON archives",
		Version: types.Version,
		Flags:   flags,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			var err error
			logger, err = loggerCfg.Configure()
			if err != nil {
				return nil, err
			}

			slog.SetDefault(logger)
			ctx = ctxlog.With(ctx, logger)
			return ctx, nil
		},
		Commands: []*cli.Command{
			cmdPull(&configPath),
			cmdExtract(&configPath),
			cmdLs(),
			cmdServe(&configPath),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		if logger == nil {
			logger = slog.Default()
		}
		logger.Error("CLI execution failed", slog.Any("error", err))
		return err
	}

	return nil
}

// loadConfigFile loads the optional TOML configuration file; a blank path
// means no file was requested
func loadConfigFile(path string) (*config.File, error) {
	if path == "" {
		return &config.File{}, nil
	}
	return config.LoadFile(path)
}
