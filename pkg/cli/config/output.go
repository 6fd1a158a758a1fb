package config

import (
	"github.com/dustin/go-humanize"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Output holds extraction output configuration
type Output struct {
	Dir          string
	KeepPaths    bool
	MaxFileSize  string
	MaxTotalSize string
	Progress     bool
	Receipt      string
}

// Flags returns CLI flags for output configuration
func (c *Output) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "dir",
			Aliases:     []string{"d"},
			Usage:       "Output directory",
			Value:       ".",
			Destination: &c.Dir,
			Sources:     cli.EnvVars("MTGDUMP_DIR"),
		},
		&cli.BoolFlag{
			Name:        "keep-paths",
			Usage:       "Preserve archive directory layout instead of flattening",
			Destination: &c.KeepPaths,
			Sources:     cli.EnvVars("MTGDUMP_KEEP_PATHS"),
		},
		&cli.StringFlag{
			Name:        "max-file-size",
			Usage:       "Per-entry size limit (e.g. 512MB, empty = unlimited)",
			Destination: &c.MaxFileSize,
			Sources:     cli.EnvVars("MTGDUMP_MAX_FILE_SIZE"),
		},
		&cli.StringFlag{
			Name:        "max-total-size",
			Usage:       "Total extracted size limit (e.g. 2GB, empty = unlimited)",
			Destination: &c.MaxTotalSize,
			Sources:     cli.EnvVars("MTGDUMP_MAX_TOTAL_SIZE"),
		},
		&cli.BoolFlag{
			Name:        "progress",
			Usage:       "Show a download progress bar on stderr",
			Destination: &c.Progress,
			Sources:     cli.EnvVars("MTGDUMP_PROGRESS"),
		},
		&cli.StringFlag{
			Name:        "receipt",
			Usage:       "Write a JSON receipt of the run to this path",
			Destination: &c.Receipt,
			Sources:     cli.EnvVars("MTGDUMP_RECEIPT"),
		},
	}
}

// Limits parses the humanized size limit strings. Empty strings mean
// unlimited and parse to zero.
func (c *Output) Limits() (maxFile, maxTotal int64, err error) {
	if c.MaxFileSize != "" {
		n, err := humanize.ParseBytes(c.MaxFileSize)
		if err != nil {
			return 0, 0, goerr.Wrap(err, "invalid max-file-size", goerr.V("value", c.MaxFileSize))
		}
		maxFile = int64(n)
	}
	if c.MaxTotalSize != "" {
		n, err := humanize.ParseBytes(c.MaxTotalSize)
		if err != nil {
			return 0, 0, goerr.Wrap(err, "invalid max-total-size", goerr.V("value", c.MaxTotalSize))
		}
		maxTotal = int64(n)
	}
	return maxFile, maxTotal, nil
}
