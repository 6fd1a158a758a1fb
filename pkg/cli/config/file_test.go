package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/mtgdump/pkg/cli/config"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "mtgdump.toml")
	gt.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func notSet(string) bool { return false }

func TestLoadFile(t *testing.T) {
	path := writeConfigFile(t, `
[source]
url = "https://mirror.example.com/AllSets.json.tar.gz"
auth_token = "file-token"
max_attempts = 3
timeout = "5m"

[output]
dir = "/var/lib/mtgdump"
keep_paths = true
max_file_size = "512MB"

[server]
addr = "0.0.0.0:9000"
`)

	f, err := config.LoadFile(path)
	gt.NoError(t, err)

	gt.String(t, f.Source.URL).Equal("https://mirror.example.com/AllSets.json.tar.gz")
	gt.Number(t, f.Source.MaxAttempts).Equal(uint(3))
	gt.True(t, f.Output.KeepPaths)
	gt.String(t, f.Server.Addr).Equal("0.0.0.0:9000")
}

func TestLoadFile_Invalid(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := config.LoadFile(filepath.Join(t.TempDir(), "nope.toml"))
		gt.Error(t, err)
	})

	t.Run("broken toml", func(t *testing.T) {
		path := writeConfigFile(t, "[source\nurl =")
		_, err := config.LoadFile(path)
		gt.Error(t, err)
	})
}

func TestFile_ApplySource(t *testing.T) {
	path := writeConfigFile(t, `
[source]
url = "https://mirror.example.com/dump.tar.gz"
auth_token = "file-token"
max_attempts = 5
timeout = "10m"
`)
	f, err := config.LoadFile(path)
	gt.NoError(t, err)

	t.Run("fills unset flags", func(t *testing.T) {
		cfg := config.Source{
			URL:         "https://mtgjson.com/files/AllSets.json.tar.gz",
			MaxAttempts: 1,
			Timeout:     30 * time.Minute,
		}

		gt.NoError(t, f.ApplySource(notSet, &cfg))

		gt.String(t, cfg.URL).Equal("https://mirror.example.com/dump.tar.gz")
		gt.String(t, cfg.AuthToken).Equal("file-token")
		gt.Number(t, cfg.MaxAttempts).Equal(uint(5))
		gt.Value(t, cfg.Timeout).Equal(10 * time.Minute)
	})

	t.Run("explicit flags win", func(t *testing.T) {
		cfg := config.Source{
			URL:         "https://flag.example.com/dump.tar.gz",
			MaxAttempts: 2,
		}
		isSet := func(name string) bool {
			return name == "url" || name == "max-attempts"
		}

		gt.NoError(t, f.ApplySource(isSet, &cfg))

		gt.String(t, cfg.URL).Equal("https://flag.example.com/dump.tar.gz")
		gt.Number(t, cfg.MaxAttempts).Equal(uint(2))
		// Unset fields still come from the file
		gt.String(t, cfg.AuthToken).Equal("file-token")
	})

	t.Run("invalid timeout", func(t *testing.T) {
		path := writeConfigFile(t, `
[source]
timeout = "soon"
`)
		bad, err := config.LoadFile(path)
		gt.NoError(t, err)

		var cfg config.Source
		gt.Error(t, bad.ApplySource(notSet, &cfg))
	})
}

func TestFile_ApplyOutputAndServer(t *testing.T) {
	path := writeConfigFile(t, `
[output]
dir = "/data/dump"
max_total_size = "2GB"

[server]
addr = "127.0.0.1:8888"
sentry_dsn = "https://key@sentry.example.com/1"
`)
	f, err := config.LoadFile(path)
	gt.NoError(t, err)

	var outCfg config.Output
	f.ApplyOutput(notSet, &outCfg)
	gt.String(t, outCfg.Dir).Equal("/data/dump")
	gt.String(t, outCfg.MaxTotalSize).Equal("2GB")

	var srvCfg config.Server
	f.ApplyServer(notSet, &srvCfg)
	gt.String(t, srvCfg.Addr).Equal("127.0.0.1:8888")
	gt.String(t, srvCfg.SentryDSN).Equal("https://key@sentry.example.com/1")
}

func TestOutput_Limits(t *testing.T) {
	t.Run("parses humanized sizes", func(t *testing.T) {
		cfg := config.Output{
			MaxFileSize:  "512MB",
			MaxTotalSize: "2GB",
		}

		maxFile, maxTotal, err := cfg.Limits()
		gt.NoError(t, err)
		gt.Number(t, maxFile).Equal(int64(512 * 1000 * 1000))
		gt.Number(t, maxTotal).Equal(int64(2 * 1000 * 1000 * 1000))
	})

	t.Run("empty means unlimited", func(t *testing.T) {
		var cfg config.Output

		maxFile, maxTotal, err := cfg.Limits()
		gt.NoError(t, err)
		gt.Number(t, maxFile).Equal(int64(0))
		gt.Number(t, maxTotal).Equal(int64(0))
	})

	t.Run("rejects garbage", func(t *testing.T) {
		cfg := config.Output{MaxFileSize: "lots"}
		_, _, err := cfg.Limits()
		gt.Error(t, err)
	})
}
