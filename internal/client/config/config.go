package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the blog CLI.
//
// Fields:
//   - ServerURL: scheme and host of the blog backend.
//   - StorePath: SQLite file holding the session token.
//   - RequestTimeout: per-request limit of the HTTP gateway.
//   - MaxImageBytes: largest attachment the client will read.
//   - LogLevel, LogFormat: see logging.New.
type Config struct {
	ServerURL      string
	StorePath      string
	RequestTimeout time.Duration
	MaxImageBytes  int64
	LogLevel       string
	LogFormat      string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:8000"
	c.StorePath = "gophblog.db"
	c.RequestTimeout = 10 * time.Second
	c.MaxImageBytes = 5 << 20
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// LoadConfig applies defaults, then the environment (and .env), then the
// JSON file, then command-line flags. Later sources take precedence.
// Malformed input panics.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg, os.Args[1:])
	parseFlags(cfg, os.Args[1:])
	return cfg
}
