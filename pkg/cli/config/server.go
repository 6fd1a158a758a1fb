package config

import "github.com/urfave/cli/v3"

// Server holds server configuration
type Server struct {
	Addr      string
	Dir       string
	SentryDSN string
}

// Flags returns CLI flags for server configuration
func (c *Server) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Server address",
			Value:       "localhost:8090",
			Destination: &c.Addr,
			Sources:     cli.EnvVars("MTGDUMP_ADDR"),
		},
		&cli.StringFlag{
			Name:        "dir",
			Aliases:     []string{"d"},
			Usage:       "Extracted dump directory to serve",
			Value:       ".",
			Destination: &c.Dir,
			Sources:     cli.EnvVars("MTGDUMP_DIR"),
		},
		&cli.StringFlag{
			Name:        "sentry-dsn",
			Usage:       "Sentry DSN for error reporting (empty = disabled)",
			Destination: &c.SentryDSN,
			Sources:     cli.EnvVars("MTGDUMP_SENTRY_DSN"),
		},
	}
}
