package cli

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/mtgdump/pkg/cli/config"
	"github.com/m-mizutani/mtgdump/pkg/infra/remote"
	"github.com/m-mizutani/mtgdump/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdExtract(configPath *string) *cli.Command {
	var outputCfg config.Output

	return &cli.Command{
		Name:      "extract",
		Aliases:   []string{"x"},
		Usage:     "Extract a local archive file",
		ArgsUsage: "<archive.tar.gz>",
		Flags:     outputCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			path := c.Args().First()
			if path == "" {
				return goerr.New("archive file path is required")
			}

			file, err := loadConfigFile(*configPath)
			if err != nil {
				return err
			}
			file.ApplyOutput(c.IsSet, &outputCfg)

			logger.Info("Extracting local archive",
				slog.String("path", path),
				slog.String("dir", outputCfg.Dir),
			)

			extractor, err := newExtractor(&outputCfg)
			if err != nil {
				return err
			}

			var pullOpts []usecase.PullOption
			if outputCfg.Receipt != "" {
				pullOpts = append(pullOpts, usecase.WithReceipt(outputCfg.Receipt))
			}

			uc := usecase.NewPull(remote.NewFileSource(path), extractor, pullOpts...)
			if _, err := uc.Pull(ctx); err != nil {
				return err
			}

			return nil
		},
	}
}
