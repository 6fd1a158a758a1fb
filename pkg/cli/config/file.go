package config

import (
	"os"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
)

// File holds optional configuration loaded from a TOML file. File values
// only fill in settings the user did not set via flag or environment
// variable: explicit flags and env vars always win.
type File struct {
	Source struct {
		URL         string `toml:"url"`
		AuthToken   string `toml:"auth_token"`
		MaxAttempts uint   `toml:"max_attempts"`
		Timeout     string `toml:"timeout"`
	} `toml:"source"`

	Output struct {
		Dir          string `toml:"dir"`
		KeepPaths    bool   `toml:"keep_paths"`
		MaxFileSize  string `toml:"max_file_size"`
		MaxTotalSize string `toml:"max_total_size"`
	} `toml:"output"`

	Server struct {
		Addr      string `toml:"addr"`
		Dir       string `toml:"dir"`
		SentryDSN string `toml:"sentry_dsn"`
	} `toml:"server"`
}

// LoadFile reads and parses a TOML configuration file
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V("path", path))
	}

	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, goerr.Wrap(err, "failed to parse config file", goerr.V("path", path))
	}

	return &f, nil
}

// ApplySource fills source settings not set on the command line. isSet
// reports whether a flag was set explicitly (cli.Command.IsSet).
func (f *File) ApplySource(isSet func(string) bool, cfg *Source) error {
	if f.Source.URL != "" && !isSet("url") {
		cfg.URL = f.Source.URL
	}
	if f.Source.AuthToken != "" && !isSet("auth-token") {
		cfg.AuthToken = f.Source.AuthToken
	}
	if f.Source.MaxAttempts > 0 && !isSet("max-attempts") {
		cfg.MaxAttempts = f.Source.MaxAttempts
	}
	if f.Source.Timeout != "" && !isSet("timeout") {
		d, err := time.ParseDuration(f.Source.Timeout)
		if err != nil {
			return goerr.Wrap(err, "invalid source.timeout in config file",
				goerr.V("value", f.Source.Timeout))
		}
		cfg.Timeout = d
	}
	return nil
}

// ApplyOutput fills output settings not set on the command line
func (f *File) ApplyOutput(isSet func(string) bool, cfg *Output) {
	if f.Output.Dir != "" && !isSet("dir") {
		cfg.Dir = f.Output.Dir
	}
	if f.Output.KeepPaths && !isSet("keep-paths") {
		cfg.KeepPaths = true
	}
	if f.Output.MaxFileSize != "" && !isSet("max-file-size") {
		cfg.MaxFileSize = f.Output.MaxFileSize
	}
	if f.Output.MaxTotalSize != "" && !isSet("max-total-size") {
		cfg.MaxTotalSize = f.Output.MaxTotalSize
	}
}

// ApplyServer fills server settings not set on the command line
func (f *File) ApplyServer(isSet func(string) bool, cfg *Server) {
	if f.Server.Addr != "" && !isSet("addr") {
		cfg.Addr = f.Server.Addr
	}
	if f.Server.Dir != "" && !isSet("dir") {
		cfg.Dir = f.Server.Dir
	}
	if f.Server.SentryDSN != "" && !isSet("sentry-dsn") {
		cfg.SentryDSN = f.Server.SentryDSN
	}
}
