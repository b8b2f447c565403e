package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvServerURL      = "GOPHBLOG_SERVER_URL"
	EnvStorePath      = "GOPHBLOG_STORE_PATH"
	EnvRequestTimeout = "GOPHBLOG_REQUEST_TIMEOUT"
	EnvMaxImageBytes  = "GOPHBLOG_MAX_IMAGE_BYTES"
	EnvLogLevel       = "GOPHBLOG_LOG_LEVEL"
	EnvLogFormat      = "GOPHBLOG_LOG_FORMAT"
)

// parseEnv overlays cfg with GOPHBLOG_* variables. The given dotenv files
// (".env" when none) are loaded first; they never override variables that
// are already set, and a missing file is not an error.
func parseEnv(cfg *Config, files ...string) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(fmt.Errorf("load dotenv: %w", err))
	}

	if v, ok := os.LookupEnv(EnvServerURL); ok && v != "" {
		cfg.ServerURL = v
	}
	if v, ok := os.LookupEnv(EnvStorePath); ok && v != "" {
		cfg.StorePath = v
	}
	if v, ok := os.LookupEnv(EnvRequestTimeout); ok && v != "" {
		cfg.RequestTimeout = parseTimeout(v)
	}
	if v, ok := os.LookupEnv(EnvMaxImageBytes); ok && v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			panic(fmt.Errorf("%s: invalid byte count %q", EnvMaxImageBytes, v))
		}
		cfg.MaxImageBytes = n
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok && v != "" {
		cfg.LogLevel = v
	}
	if v, ok := os.LookupEnv(EnvLogFormat); ok && v != "" {
		cfg.LogFormat = v
	}
}

// parseTimeout accepts a Go duration ("15s") or a whole number of seconds.
func parseTimeout(v string) time.Duration {
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	secs, err := strconv.Atoi(v)
	if err != nil {
		panic(fmt.Errorf("%s: invalid duration %q", EnvRequestTimeout, v))
	}
	return time.Duration(secs) * time.Second
}
