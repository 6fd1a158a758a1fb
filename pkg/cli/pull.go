package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/mtgdump/pkg/archive"
	"github.com/m-mizutani/mtgdump/pkg/cli/config"
	"github.com/m-mizutani/mtgdump/pkg/domain/types"
	"github.com/m-mizutani/mtgdump/pkg/infra/remote"
	"github.com/m-mizutani/mtgdump/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdPull(configPath *string) *cli.Command {
	var (
		sourceCfg config.Source
		outputCfg config.Output
	)

	flags := append(sourceCfg.Flags(), outputCfg.Flags()...)

	return &cli.Command{
		Name:    "pull",
		Aliases: []string{"p"},
		Usage:   "Download the remote archive and extract it",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			file, err := loadConfigFile(*configPath)
			if err != nil {
				return err
			}
			if err := file.ApplySource(c.IsSet, &sourceCfg); err != nil {
				return err
			}
			file.ApplyOutput(c.IsSet, &outputCfg)

			logger.Info("Starting pull",
				slog.String("url", sourceCfg.URL),
				slog.String("dir", outputCfg.Dir),
			)

			extractor, err := newExtractor(&outputCfg)
			if err != nil {
				return err
			}

			source := remote.NewClient(sourceCfg.URL,
				remote.WithAuthToken(sourceCfg.AuthToken),
				remote.WithMaxAttempts(sourceCfg.MaxAttempts),
				remote.WithTimeout(sourceCfg.Timeout),
			)

			var pullOpts []usecase.PullOption
			if outputCfg.Progress {
				pullOpts = append(pullOpts, usecase.WithProgress())
			}
			if outputCfg.Receipt != "" {
				pullOpts = append(pullOpts, usecase.WithReceipt(outputCfg.Receipt))
			}

			uc := usecase.NewPull(source, extractor, pullOpts...)
			if _, err := uc.Pull(ctx); err != nil {
				return err
			}

			return nil
		},
	}
}

// newExtractor builds the extraction engine from output configuration,
// creating the destination directory if needed
func newExtractor(cfg *config.Output) (*archive.Extractor, error) {
	if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
		return nil, goerr.Wrap(err, "failed to create output directory",
			goerr.T(types.ErrTagIO),
			goerr.V("dir", cfg.Dir))
	}

	maxFile, maxTotal, err := cfg.Limits()
	if err != nil {
		return nil, err
	}

	opts := []archive.Option{
		archive.WithDest(cfg.Dir),
	}
	if cfg.KeepPaths {
		opts = append(opts, archive.WithKeepPaths())
	}
	if maxFile > 0 {
		opts = append(opts, archive.WithMaxFileSize(maxFile))
	}
	if maxTotal > 0 {
		opts = append(opts, archive.WithMaxTotalSize(maxTotal))
	}

	return archive.New(opts...), nil
}
