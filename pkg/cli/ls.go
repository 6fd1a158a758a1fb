package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/m-mizutani/mtgdump/pkg/archive"
	"github.com/m-mizutani/mtgdump/pkg/cli/config"
	"github.com/m-mizutani/mtgdump/pkg/domain/interfaces"
	"github.com/m-mizutani/mtgdump/pkg/infra/remote"
	"github.com/urfave/cli/v3"
)

func cmdLs() *cli.Command {
	var sourceCfg config.Source

	return &cli.Command{
		Name:      "ls",
		Usage:     "List archive entries without extracting",
		ArgsUsage: "[archive.tar.gz | URL]",
		Flags:     sourceCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			target := c.Args().First()
			if target == "" {
				target = sourceCfg.URL
			}

			var source interfaces.Source
			if strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") {
				source = remote.NewClient(target,
					remote.WithAuthToken(sourceCfg.AuthToken),
					remote.WithMaxAttempts(sourceCfg.MaxAttempts),
					remote.WithTimeout(sourceCfg.Timeout),
				)
			} else {
				source = remote.NewFileSource(target)
			}

			body, _, err := source.Open(ctx)
			if err != nil {
				return err
			}
			defer body.Close()

			entries, err := archive.List(ctx, body, source.Name())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%s\t%s\n", e.Type, humanize.Bytes(uint64(e.Size)), e.Path)
			}
			return w.Flush()
		},
	}
}
