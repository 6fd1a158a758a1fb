package config

import (
	"time"

	"github.com/m-mizutani/mtgdump/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

// Source holds archive source configuration
type Source struct {
	URL         string
	AuthToken   string
	MaxAttempts uint
	Timeout     time.Duration
}

// Flags returns CLI flags for source configuration
func (c *Source) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "url",
			Usage:       "Archive URL",
			Value:       types.DefaultArchiveURL,
			Destination: &c.URL,
			Sources:     cli.EnvVars("MTGDUMP_URL"),
		},
		&cli.StringFlag{
			Name:        "auth-token",
			Usage:       "Bearer token for mirrors that require authentication",
			Destination: &c.AuthToken,
			Sources:     cli.EnvVars("MTGDUMP_AUTH_TOKEN"),
		},
		&cli.UintFlag{
			Name:        "max-attempts",
			Usage:       "Fetch attempts before giving up (1 = no retry)",
			Value:       1,
			Destination: &c.MaxAttempts,
			Sources:     cli.EnvVars("MTGDUMP_MAX_ATTEMPTS"),
		},
		&cli.DurationFlag{
			Name:        "timeout",
			Usage:       "HTTP client timeout",
			Value:       30 * time.Minute,
			Destination: &c.Timeout,
			Sources:     cli.EnvVars("MTGDUMP_TIMEOUT"),
		},
	}
}
