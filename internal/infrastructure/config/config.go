package config

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/kelseyhightower/envconfig"

	"github.com/emiliopalmerini/tonal/internal/util"
)

const prefix = "TONAL"

// OTEL holds metrics exporter configuration.
type OTEL struct {
	Enabled  bool   `envconfig:"ENABLED" default:"false" desc:"export generation metrics over OTLP/gRPC"`
	Endpoint string `envconfig:"ENDPOINT" desc:"collector host:port"`
	Insecure bool   `envconfig:"INSECURE" default:"false" desc:"disable TLS to the collector"`
}

// Config holds everything tonal reads from the environment.
type Config struct {
	// DatabaseURL is a libsql URL. Empty means a local file in the XDG data dir.
	DatabaseURL    string `envconfig:"DATABASE_URL" desc:"libsql URL (file: or libsql://)"`
	AuthToken      string `envconfig:"AUTH_TOKEN" desc:"auth token for remote databases"`
	Workers        int    `envconfig:"WORKERS" default:"4" desc:"concurrent stop/palette workers"`
	LogLevel       string `envconfig:"LOG_LEVEL" default:"info" desc:"debug, info, warn or error"`
	DefaultPattern string `envconfig:"DEFAULT_PATTERN" default:"default" desc:"pattern used when none is named"`
	OTEL           OTEL   `envconfig:"OTEL"`
}

// Load reads TONAL_* environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.Workers < 1 {
		return nil, fmt.Errorf("%s_WORKERS must be at least 1, got %d", prefix, cfg.Workers)
	}

	if cfg.DatabaseURL == "" {
		dir, err := util.GetXDGDataDir()
		if err != nil {
			return nil, err
		}
		cfg.DatabaseURL = "file:" + filepath.Join(dir, "tonal.db")
	}

	return &cfg, nil
}

// IsLocal reports whether the database is a local file.
func (c *Config) IsLocal() bool {
	return strings.HasPrefix(c.DatabaseURL, "file:")
}

// LocalPath returns the filesystem path of a local database, or "" for remote ones.
func (c *Config) LocalPath() string {
	if !c.IsLocal() {
		return ""
	}
	path := strings.TrimPrefix(c.DatabaseURL, "file:")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	return path
}

// Usage writes a table of the recognised environment variables to w.
func Usage(w io.Writer) error {
	var cfg Config
	return envconfig.Usagef(prefix, &cfg, w, envconfig.DefaultTableFormat)
}
